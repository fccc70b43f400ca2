package models

import "encoding/json"

type botEventAPI struct {
	ID          *string      `json:"id"`
	Creator     *BotUser     `json:"creator"`
	SportType   *SportType   `json:"sport_type"`
	Address     *string      `json:"address"`
	DateAndTime *DateAndTime `json:"date_and_time"`
	Price       *int         `json:"price"`
	IsFree      *bool        `json:"is_free"`
	GameLevels  *[]GameLevel `json:"game_levels"`
	Capacity    *int         `json:"capacity"`
	Busy        *int         `json:"busy"`
	Subscribers *[]BotUser   `json:"subscribers"`
	Description *string      `json:"description"`
	URLPreview  *string      `json:"url_preview"`
	Latitude    *string      `json:"latitude"`
	Longitude   *string      `json:"longitude"`
	Hashtags    []string     `json:"hashtags"`
}

// BotEvent is a wholesale snapshot of a backend event. An update carries a
// full replacement value, never a partial patch.
type BotEvent struct {
	ID          string      `json:"id"`
	Creator     BotUser     `json:"creator"`
	SportType   SportType   `json:"sport_type"`
	Address     string      `json:"address"`
	DateAndTime DateAndTime `json:"date_and_time"`
	Price       *int        `json:"price"`
	IsFree      bool        `json:"is_free"`
	GameLevels  []GameLevel `json:"game_levels"`
	Capacity    *int        `json:"capacity"`
	Busy        int         `json:"busy"`
	Subscribers []BotUser   `json:"subscribers"`
	Description *string     `json:"description"`
	URLPreview  *string     `json:"url_preview"`
	Latitude    *string     `json:"latitude"`
	Longitude   *string     `json:"longitude"`
	Hashtags    []string    `json:"hashtags"`
}

func (e *BotEvent) UnmarshalJSON(raw []byte) error {
	var wire botEventAPI

	if err := json.Unmarshal(raw, &wire); err != nil {
		return err
	}

	switch {
	case wire.ID == nil:
		return newMissingFieldError("id")
	case wire.Creator == nil:
		return newMissingFieldError("creator")
	case wire.SportType == nil:
		return newMissingFieldError("sport_type")
	case wire.Address == nil:
		return newMissingFieldError("address")
	case wire.DateAndTime == nil:
		return newMissingFieldError("date_and_time")
	case wire.IsFree == nil:
		return newMissingFieldError("is_free")
	case wire.GameLevels == nil:
		return newMissingFieldError("game_levels")
	case wire.Busy == nil:
		return newMissingFieldError("busy")
	case wire.Subscribers == nil:
		return newMissingFieldError("subscribers")
	}

	e.ID = *wire.ID
	e.Creator = *wire.Creator
	e.SportType = *wire.SportType
	e.Address = *wire.Address
	e.DateAndTime = *wire.DateAndTime
	e.Price = wire.Price
	e.IsFree = *wire.IsFree
	e.GameLevels = *wire.GameLevels
	e.Capacity = wire.Capacity
	e.Busy = *wire.Busy
	e.Subscribers = *wire.Subscribers
	e.Description = wire.Description
	e.URLPreview = wire.URLPreview
	e.Latitude = wire.Latitude
	e.Longitude = wire.Longitude
	e.Hashtags = wire.Hashtags

	return nil
}

// EventMessage pairs an event snapshot with the Telegram message that
// currently displays it.
type EventMessage struct {
	Event       BotEvent
	TgChatID    int64
	TgMessageID int
}

func (m *EventMessage) HasPhoto() bool {
	return m.Event.URLPreview != nil && *m.Event.URLPreview != ""
}
