package bot

import (
	"context"
	"fmt"

	"github.com/TheVovchenskiy/sportify-tg-bot/app"
	"github.com/TheVovchenskiy/sportify-tg-bot/pkg/mylogger"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const updateTimeoutSeconds = 60

// Backend is the slice of the sportify REST API the bot needs for commands
// and button taps.
type Backend interface {
	LoginUser(ctx context.Context, token string, tgID int64, username string) error
	EnsureUser(ctx context.Context, tgID int64, username string) error
	IsSubscribed(ctx context.Context, eventID string, tgID int64) (bool, error)
	SubscribeEvent(ctx context.Context, eventID string, tgID int64, subscribe bool) error
}

type Bot struct {
	api         *tgbotapi.BotAPI
	backend     Backend
	frontendURL string
	logger      *mylogger.MyLogger
}

var _ app.TgAPI = (*Bot)(nil)

func NewBot(token, frontendURL string, backend Backend, logger *mylogger.MyLogger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("new bot api: %w", err)
	}

	return &Bot{
		api:         api,
		backend:     backend,
		frontendURL: frontendURL,
		logger:      logger,
	}, nil
}

// Run consumes the long-polling update channel until the context is done.
// Every update is handled in its own goroutine, so a hung backend call
// stalls only its own update.
func (b *Bot) Run(ctx context.Context) {
	b.logger.Infof("authorized as %s", b.api.Self.UserName)

	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = updateTimeoutSeconds

	updates := b.api.GetUpdatesChan(updateConfig)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()

			return
		case update := <-updates:
			switch {
			case update.Message != nil:
				go b.handleMessage(ctx, update.Message)
			case update.CallbackQuery != nil:
				go b.handleCallbackQuery(ctx, update.CallbackQuery)
			}
		}
	}
}

func subscribeKeyboard(eventID string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✍️ Подписаться/отписаться", callbackPrefixSubscribe+eventID),
		),
	)
}

// SendEventMessage posts the rendered event, as a photo with caption when a
// preview URL is present, and returns the new message id.
func (b *Bot) SendEventMessage(
	_ context.Context, chatID int64, eventID string, text string, urlPreview *string,
) (int, error) {
	keyboard := subscribeKeyboard(eventID)

	var message tgbotapi.Message
	var err error

	if urlPreview != nil && *urlPreview != "" {
		photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileURL(*urlPreview))
		photo.Caption = text
		photo.ParseMode = tgbotapi.ModeMarkdownV2
		photo.ReplyMarkup = keyboard

		message, err = b.api.Send(photo)
	} else {
		msg := tgbotapi.NewMessage(chatID, text)
		msg.ParseMode = tgbotapi.ModeMarkdownV2
		msg.ReplyMarkup = keyboard

		message, err = b.api.Send(msg)
	}

	if err != nil {
		return 0, fmt.Errorf("send event message: %w", err)
	}

	return message.MessageID, nil
}

// EditEventMessage rewrites a previously posted event message in place.
// Photo messages carry the text as a caption, plain ones as message text.
func (b *Bot) EditEventMessage(
	_ context.Context, chatID int64, messageID int, eventID string, text string, hasPhoto bool,
) error {
	keyboard := subscribeKeyboard(eventID)

	var err error

	if hasPhoto {
		edit := tgbotapi.NewEditMessageCaption(chatID, messageID, text)
		edit.ParseMode = tgbotapi.ModeMarkdownV2
		edit.ReplyMarkup = &keyboard

		_, err = b.api.Send(edit)
	} else {
		edit := tgbotapi.NewEditMessageText(chatID, messageID, text)
		edit.ParseMode = tgbotapi.ModeMarkdownV2
		edit.ReplyMarkup = &keyboard

		_, err = b.api.Send(edit)
	}

	if err != nil {
		return fmt.Errorf("edit event message: %w", err)
	}

	return nil
}

func (b *Bot) DeleteMessage(_ context.Context, chatID int64, messageID int) error {
	if _, err := b.api.Request(tgbotapi.NewDeleteMessage(chatID, messageID)); err != nil {
		return fmt.Errorf("delete message: %w", err)
	}

	return nil
}

func (b *Bot) SendDirectMessage(_ context.Context, tgID int64, text string) error {
	if _, err := b.api.Send(tgbotapi.NewMessage(tgID, text)); err != nil {
		return fmt.Errorf("send direct message: %w", err)
	}

	return nil
}
