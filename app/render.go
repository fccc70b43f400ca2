package app

import (
	"fmt"
	"strings"

	"github.com/TheVovchenskiy/sportify-tg-bot/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const (
	formatDisplayDate = "02.01.2006"
	formatDisplayTime = "15:04"

	freePriceLabel = "БЕСПЛАТНО"
)

func escapeMarkdown(text string) string {
	return tgbotapi.EscapeText(tgbotapi.ModeMarkdownV2, text)
}

// RenderUser renders a user as a mention link when the Telegram id is known,
// an escaped plain name otherwise.
func RenderUser(user *models.BotUser) string {
	if user.TgID != nil {
		return fmt.Sprintf("[%s](tg://user?id=%d)", escapeMarkdown(user.Username), *user.TgID)
	}

	return escapeMarkdown(user.Username)
}

func renderGameLevels(gameLevels []models.GameLevel) (string, error) {
	labels := make([]string, 0, len(gameLevels))

	for _, gameLevel := range gameLevels {
		label, err := gameLevel.Localize()
		if err != nil {
			return "", err
		}

		labels = append(labels, "`"+escapeMarkdown(label)+"`")
	}

	return strings.Join(labels, ", "), nil
}

func renderSubscribers(subscribers []models.BotUser) string {
	lines := make([]string, 0, len(subscribers))

	for i := range subscribers {
		lines = append(lines, escapeMarkdown("- ")+RenderUser(&subscribers[i]))
	}

	return strings.Join(lines, "\n")
}

// RenderEvent converts an event into a MarkdownV2 caption. Free-text fields
// pass through markdown escaping, absent fields drop their lines entirely,
// an unlocalizable enum code fails the whole render.
func RenderEvent(event *models.BotEvent) (string, error) {
	sportType, err := event.SportType.Localize()
	if err != nil {
		return "", fmt.Errorf("render event %s: %w", event.ID, err)
	}

	gameLevels, err := renderGameLevels(event.GameLevels)
	if err != nil {
		return "", fmt.Errorf("render event %s: %w", event.ID, err)
	}

	// The backend treats a nil or zero price as free, so a priced event
	// always carries a value; zero is a safe fallback.
	price := freePriceLabel
	if !event.IsFree {
		priceValue := 0
		if event.Price != nil {
			priceValue = *event.Price
		}

		price = escapeMarkdown(fmt.Sprintf("%d ₽", priceValue))
	}

	lines := make([]string, 0, 16)

	lines = append(lines,
		"🎉 *Событие*",
		"👤 *Автор:* "+RenderUser(&event.Creator),
		"🏀 *Вид спорта:* "+sportType,
		"📍 *Адрес:* "+escapeMarkdown(event.Address),
		"📅 *Дата:* "+escapeMarkdown(event.DateAndTime.Date.Format(formatDisplayDate)),
		"🕒 *Начало:* "+escapeMarkdown(event.DateAndTime.StartTime.Format(formatDisplayTime)),
	)

	if event.DateAndTime.EndTime != nil {
		lines = append(lines, "🕓 *Окончание:* "+escapeMarkdown(event.DateAndTime.EndTime.Format(formatDisplayTime)))
	}

	lines = append(lines, "💰 *Цена:* "+price)

	if gameLevels != "" {
		lines = append(lines, "📊 *Уровень игры:* "+gameLevels)
	}

	if event.Capacity != nil {
		lines = append(lines, fmt.Sprintf("🔢 *Вместимость:* %d", *event.Capacity))
	}

	lines = append(lines, fmt.Sprintf("✅ *Занято мест:* %d", event.Busy))

	if len(event.Subscribers) != 0 {
		lines = append(lines, "👥 *Участники:*\n"+renderSubscribers(event.Subscribers))
	}

	if event.Description != nil && *event.Description != "" {
		lines = append(lines, "📝 *Описание:*\n"+escapeMarkdown(*event.Description))
	}

	if len(event.Hashtags) != 0 {
		lines = append(lines, "🔖 *Хэштеги:*\n"+escapeMarkdown(strings.Join(event.Hashtags, " ")))
	}

	return strings.Join(lines, "\n"), nil
}

// RenderEventUpdatedNotice is the short plain-text direct message sent to
// subscribers when an event changes. No markdown, no escaping needed.
func RenderEventUpdatedNotice(event *models.BotEvent) (string, error) {
	sportType, err := event.SportType.Localize()
	if err != nil {
		return "", fmt.Errorf("render updated notice %s: %w", event.ID, err)
	}

	return fmt.Sprintf(
		"🔔 Событие обновилось: %s, %s, %s %s",
		sportType,
		event.Address,
		event.DateAndTime.Date.Format(formatDisplayDate),
		event.DateAndTime.StartTime.Format(formatDisplayTime),
	), nil
}
