package models

import "fmt"

type GameLevel string

const (
	GameLevelLow      GameLevel = "low"
	GameLevelLowPlus  GameLevel = "low_plus"
	GameLevelMidMinus GameLevel = "mid_minus"
	GameLevelMid      GameLevel = "mid"
	GameLevelMidPlus  GameLevel = "mid_plus"
	GameLevelHigh     GameLevel = "high"
	GameLevelHighPlus GameLevel = "high_plus"
)

// Localize maps a wire game level code to its display label.
func (g GameLevel) Localize() (string, error) {
	switch g {
	case GameLevelLow:
		return "начальный", nil
	case GameLevelLowPlus:
		return "начальный плюс", nil
	case GameLevelMidMinus:
		return "средний минус", nil
	case GameLevelMid:
		return "средний", nil
	case GameLevelMidPlus:
		return "средний плюс", nil
	case GameLevelHigh:
		return "полу-профи", nil
	case GameLevelHighPlus:
		return "профи", nil
	}

	return "", fmt.Errorf("%w: game level %q", ErrUnknownEnumValue, string(g))
}
