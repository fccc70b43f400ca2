package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/TheVovchenskiy/sportify-tg-bot/pkg/mylogger"
)

// ChatID tolerates both a bare number and a quoted one: the backend sends
// int64, older producers send strings.
type ChatID int64

func (c *ChatID) UnmarshalJSON(raw []byte) error {
	raw = bytes.Trim(raw, `"`)

	value, err := strconv.ParseInt(string(raw), 10, 64)
	if err != nil {
		return fmt.Errorf("%w: tg_chat_id %q", ErrMissingField, string(raw))
	}

	*c = ChatID(value)

	return nil
}

type EventCreatedBotRequest struct {
	TgChatID *ChatID   `json:"tg_chat_id"`
	Event    *BotEvent `json:"event"`
}

func (r *EventCreatedBotRequest) Validate() error {
	if r.TgChatID == nil {
		return newMissingFieldError("tg_chat_id")
	}

	if r.Event == nil {
		return newMissingFieldError("event")
	}

	return nil
}

type EventUpdatedBotRequest struct {
	Event *BotEvent `json:"event"`
}

func (r *EventUpdatedBotRequest) Validate() error {
	if r.Event == nil {
		return newMissingFieldError("event")
	}

	return nil
}

type EventDeletedBotRequest struct {
	EventID *string `json:"event_id"`
}

func (r *EventDeletedBotRequest) Validate() error {
	if r.EventID == nil {
		return newMissingFieldError("event_id")
	}

	return nil
}

const (
	StatusSuccess = "success"
	StatusFail    = "fail"
)

type ResponseEventCreated struct {
	Status      string `json:"status"`
	TgChatID    int64  `json:"tg_chat_id"`
	TgMessageID int    `json:"tg_message_id"`
}

func NewResponseEventCreated(tgChatID int64, tgMessageID int) ResponseEventCreated {
	return ResponseEventCreated{
		Status:      StatusSuccess,
		TgChatID:    tgChatID,
		TgMessageID: tgMessageID,
	}
}

type ResponseSuccess struct {
	Status string `json:"status"`
}

func NewResponseSuccess() ResponseSuccess {
	return ResponseSuccess{Status: StatusSuccess}
}

type ResponseFail struct {
	Status string `json:"status"`
	Reason string `json:"reason"`
}

func NewResponseFail(reason string) ResponseFail {
	return ResponseFail{Status: StatusFail, Reason: reason}
}

const (
	InternalServerErrMessage = "Internal server error"
	NotFoundEventErrMessage  = "Event not found"
)

func WriteJSONResponse(w http.ResponseWriter, statusCode int, response any) {
	logger, err := mylogger.Get()
	if err != nil {
		logger = mylogger.NewNop()
	}

	body, err := json.Marshal(response)
	if err != nil {
		logger.Errorf("marshal response: %v", err)
		w.WriteHeader(http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if _, err = w.Write(body); err != nil {
		logger.Errorf("write response body: %v", err)
	}
}
