package models

import (
	"errors"
	"fmt"
)

type SportType string

const (
	SportTypeVolleyball  SportType = "volleyball"
	SportTypeBasketball  SportType = "basketball"
	SportTypeFootball    SportType = "football"
	SportTypeTennis      SportType = "tennis"
	SportTypeTableTennis SportType = "table_tennis"
	SportTypeRunning     SportType = "running"
	SportTypeHockey      SportType = "hockey"
	SportTypeSkating     SportType = "skating"
	SportTypeSkiing      SportType = "skiing"
)

var ErrUnknownEnumValue = errors.New("unknown enum value")

// Localize maps a wire sport type code to its display label. Codes outside
// the closed set are an error, never a default.
func (s SportType) Localize() (string, error) {
	switch s {
	case SportTypeVolleyball:
		return "волейбол", nil
	case SportTypeBasketball:
		return "баскетбол", nil
	case SportTypeFootball:
		return "футбол", nil
	case SportTypeTennis:
		return "теннис", nil
	case SportTypeTableTennis:
		return "настольный теннис", nil
	case SportTypeRunning:
		return "бег", nil
	case SportTypeHockey:
		return "хоккей", nil
	case SportTypeSkating:
		return "катание на коньках", nil
	case SportTypeSkiing:
		return "катание на лыжах", nil
	}

	return "", fmt.Errorf("%w: sport type %q", ErrUnknownEnumValue, string(s))
}
