package app

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/TheVovchenskiy/sportify-tg-bot/db"
	"github.com/TheVovchenskiy/sportify-tg-bot/models"
	"github.com/TheVovchenskiy/sportify-tg-bot/pkg/keymutex"
	"github.com/TheVovchenskiy/sportify-tg-bot/pkg/mylogger"
)

// ErrOutboundDelivery marks a failed call to the Telegram API, as opposed to
// a render or correlation failure.
var ErrOutboundDelivery = errors.New("outbound delivery")

type TgAPI interface {
	SendEventMessage(ctx context.Context, chatID int64, eventID string, text string, urlPreview *string) (int, error)
	EditEventMessage(ctx context.Context, chatID int64, messageID int, eventID string, text string, hasPhoto bool) error
	DeleteMessage(ctx context.Context, chatID int64, messageID int) error
	SendDirectMessage(ctx context.Context, tgID int64, text string) error
}

type EventMessageStorage interface {
	Put(ctx context.Context, eventID string, message models.EventMessage) error
	Get(ctx context.Context, eventID string) (models.EventMessage, error)
	Remove(ctx context.Context, eventID string) error
}

var _ EventMessageStorage = (*db.EventMessageStorage)(nil)

type App struct {
	tgAPI      TgAPI
	storage    EventMessageStorage
	eventLocks *keymutex.KeyMutex
	logger     *mylogger.MyLogger
}

func NewApp(tgAPI TgAPI, storage EventMessageStorage, logger *mylogger.MyLogger) *App {
	return &App{
		tgAPI:      tgAPI,
		storage:    storage,
		eventLocks: keymutex.New(),
		logger:     logger,
	}
}

// EventCreated renders the event, posts it to the chat and records the
// resulting message reference. The send and the store write are not
// transactional: a crash in between orphans the posted message.
func (a *App) EventCreated(ctx context.Context, tgChatID int64, event *models.BotEvent) (int, error) {
	a.eventLocks.Lock(event.ID)
	defer a.eventLocks.Unlock(event.ID)

	text, err := RenderEvent(event)
	if err != nil {
		return 0, err
	}

	tgMessageID, err := a.tgAPI.SendEventMessage(ctx, tgChatID, event.ID, text, event.URLPreview)
	if err != nil {
		return 0, fmt.Errorf("%w: send event message: %w", ErrOutboundDelivery, err)
	}

	err = a.storage.Put(ctx, event.ID, models.EventMessage{
		Event:       *event,
		TgChatID:    tgChatID,
		TgMessageID: tgMessageID,
	})
	if err != nil {
		return 0, fmt.Errorf("put event message %s: %w", event.ID, err)
	}

	return tgMessageID, nil
}

// EventUpdated edits the previously posted message in place and refreshes
// the stored snapshot, then notifies subscribers best-effort.
func (a *App) EventUpdated(ctx context.Context, event *models.BotEvent) error {
	a.eventLocks.Lock(event.ID)
	defer a.eventLocks.Unlock(event.ID)

	eventMessage, err := a.storage.Get(ctx, event.ID)
	if err != nil {
		return fmt.Errorf("get event message %s: %w", event.ID, err)
	}

	text, err := RenderEvent(event)
	if err != nil {
		return err
	}

	err = a.tgAPI.EditEventMessage(
		ctx, eventMessage.TgChatID, eventMessage.TgMessageID, event.ID, text, eventMessage.HasPhoto(),
	)
	if err != nil {
		return fmt.Errorf("%w: edit event message: %w", ErrOutboundDelivery, err)
	}

	err = a.storage.Put(ctx, event.ID, models.EventMessage{
		Event:       *event,
		TgChatID:    eventMessage.TgChatID,
		TgMessageID: eventMessage.TgMessageID,
	})
	if err != nil {
		return fmt.Errorf("put event message %s: %w", event.ID, err)
	}

	a.notifySubscribers(ctx, event)

	return nil
}

// EventDeleted removes the posted message and the correlation entry.
func (a *App) EventDeleted(ctx context.Context, eventID string) error {
	a.eventLocks.Lock(eventID)
	defer a.eventLocks.Unlock(eventID)

	eventMessage, err := a.storage.Get(ctx, eventID)
	if err != nil {
		return fmt.Errorf("get event message %s: %w", eventID, err)
	}

	err = a.tgAPI.DeleteMessage(ctx, eventMessage.TgChatID, eventMessage.TgMessageID)
	if err != nil {
		return fmt.Errorf("%w: delete event message: %w", ErrOutboundDelivery, err)
	}

	if err = a.storage.Remove(ctx, eventID); err != nil {
		return fmt.Errorf("remove event message %s: %w", eventID, err)
	}

	return nil
}

// notifySubscribers fans out a direct message to every subscriber with a
// known Telegram id. Per-recipient failures are logged and never fail the
// parent update.
func (a *App) notifySubscribers(ctx context.Context, event *models.BotEvent) {
	notice, err := RenderEventUpdatedNotice(event)
	if err != nil {
		a.logger.WithCtx(ctx).Errorf("skip subscriber fan-out: %v", err)

		return
	}

	var wg sync.WaitGroup

	for i := range event.Subscribers {
		subscriber := event.Subscribers[i]
		if subscriber.TgID == nil {
			continue
		}

		wg.Add(1)

		go func() {
			defer wg.Done()

			if err := a.tgAPI.SendDirectMessage(ctx, *subscriber.TgID, notice); err != nil {
				a.logger.WithCtx(ctx).Errorf("notify subscriber %s: %v", subscriber.ID, err)
			}
		}()
	}

	wg.Wait()
}
