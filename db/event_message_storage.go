package db

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/TheVovchenskiy/sportify-tg-bot/models"
)

var ErrNotFoundEventMessage = errors.New("not found event message")

// EventMessageStorage maps a backend event id to the Telegram message that
// displays it. In-memory only: a restart loses every mapping, so updates and
// deletes for events created before the restart resolve to not found.
type EventMessageStorage struct {
	mu       sync.RWMutex
	messages map[string]models.EventMessage
}

func NewEventMessageStorage() *EventMessageStorage {
	return &EventMessageStorage{
		messages: make(map[string]models.EventMessage),
	}
}

// Put is an unconditional upsert.
func (s *EventMessageStorage) Put(_ context.Context, eventID string, message models.EventMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.messages[eventID] = message

	return nil
}

func (s *EventMessageStorage) Get(_ context.Context, eventID string) (models.EventMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	message, ok := s.messages[eventID]
	if !ok {
		return models.EventMessage{}, ErrNotFoundEventMessage
	}

	return message, nil
}

// Remove is idempotent, removing an absent key is not an error here.
func (s *EventMessageStorage) Remove(_ context.Context, eventID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.messages, eventID)

	return nil
}

// EvictExpired drops entries whose event finished more than ttl before now
// and reports how many were dropped. The start time stands in for events
// without an end time.
func (s *EventMessageStorage) EvictExpired(_ context.Context, now time.Time, ttl time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	evicted := 0

	for eventID, message := range s.messages {
		endTime := message.Event.DateAndTime.StartTime
		if message.Event.DateAndTime.EndTime != nil {
			endTime = *message.Event.DateAndTime.EndTime
		}

		if now.Sub(endTime) > ttl {
			delete(s.messages, eventID)
			evicted++
		}
	}

	return evicted
}
