package models

import (
	"encoding/json"
	"errors"
	"fmt"
)

var ErrMissingField = errors.New("missing required field")

func newMissingFieldError(name string) error {
	return fmt.Errorf("%w: %s", ErrMissingField, name)
}

type botUserAPI struct {
	ID       *string `json:"id"`
	Username *string `json:"username"`
	TgID     *int64  `json:"tg_id"`
}

// BotUser identifiers are opaque backend ids, the bot never generates or
// interprets them.
type BotUser struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	TgID     *int64 `json:"tg_id"`
}

func (u *BotUser) UnmarshalJSON(raw []byte) error {
	var wire botUserAPI

	if err := json.Unmarshal(raw, &wire); err != nil {
		return err
	}

	if wire.ID == nil {
		return newMissingFieldError("id")
	}

	if wire.Username == nil {
		return newMissingFieldError("username")
	}

	u.ID = *wire.ID
	u.Username = *wire.Username
	u.TgID = wire.TgID

	return nil
}
