package bot

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const callbackPrefixSubscribe = "subscribe__"

const (
	loginSuccessReply = "✅ Вы успешно вошли, вернитесь на сайт"
	loginFailReply    = "❌ Произошла ошибка входа, попробуйте еще раз."
	startMenuReply    = "Выберете действие"
	helpReply         = "Используйте /start, чтобы начать."
)

func (b *Bot) handleMessage(ctx context.Context, message *tgbotapi.Message) {
	if !message.IsCommand() {
		return
	}

	switch message.Command() {
	case "start":
		b.handleStart(ctx, message)
	case "help":
		b.handleHelp(ctx, message)
	}
}

func (b *Bot) reply(ctx context.Context, chatID int64, text string) {
	if _, err := b.api.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		b.logger.WithCtx(ctx).Errorf("send reply to chat %d: %v", chatID, err)
	}
}

// handleStart either forwards a deep-link token to the backend registration
// endpoint or, without a token, shows the deep-link menu. The user always
// gets a fixed localized reply, never the backend error body.
func (b *Bot) handleStart(ctx context.Context, message *tgbotapi.Message) {
	token := message.CommandArguments()

	if token != "" {
		err := b.backend.LoginUser(ctx, token, message.From.ID, message.From.UserName)
		if err != nil {
			b.logger.WithCtx(ctx).Errorf("login user %d: %v", message.From.ID, err)
			b.reply(ctx, message.Chat.ID, loginFailReply)

			return
		}

		b.reply(ctx, message.Chat.ID, loginSuccessReply)

		return
	}

	keyboard := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonURL("Главная", b.frontendURL+"?startapp=main"),
			tgbotapi.NewInlineKeyboardButtonURL(
				"Создать событие",
				fmt.Sprintf("%s?startapp=create_event__%d", b.frontendURL, message.Chat.ID),
			),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonURL("Карта", b.frontendURL+"?startapp=map"),
		),
	)

	msg := tgbotapi.NewMessage(message.Chat.ID, startMenuReply)
	msg.ReplyMarkup = keyboard

	if _, err := b.api.Send(msg); err != nil {
		b.logger.WithCtx(ctx).Errorf("send start menu to chat %d: %v", message.Chat.ID, err)
	}
}

func (b *Bot) handleHelp(ctx context.Context, message *tgbotapi.Message) {
	b.reply(ctx, message.Chat.ID, helpReply)
}

// handleCallbackQuery processes subscribe-button taps. The tap is always
// acknowledged silently, backend failures are logged and never surfaced to
// the tapping user.
func (b *Bot) handleCallbackQuery(ctx context.Context, query *tgbotapi.CallbackQuery) {
	defer func() {
		if _, err := b.api.Request(tgbotapi.NewCallback(query.ID, "")); err != nil {
			b.logger.WithCtx(ctx).Errorf("answer callback %s: %v", query.ID, err)
		}
	}()

	if !strings.HasPrefix(query.Data, callbackPrefixSubscribe) {
		return
	}

	eventID := strings.TrimPrefix(query.Data, callbackPrefixSubscribe)
	if eventID == "" {
		b.logger.WithCtx(ctx).Errorf("empty event id in callback %q", query.Data)

		return
	}

	tgID := query.From.ID

	if err := b.backend.EnsureUser(ctx, tgID, query.From.UserName); err != nil {
		b.logger.WithCtx(ctx).Errorf("ensure user %d: %v", tgID, err)

		return
	}

	subscribed, err := b.backend.IsSubscribed(ctx, eventID, tgID)
	if err != nil {
		b.logger.WithCtx(ctx).Errorf("is subscribed %s for user %d: %v", eventID, tgID, err)

		return
	}

	if err = b.backend.SubscribeEvent(ctx, eventID, tgID, !subscribed); err != nil {
		b.logger.WithCtx(ctx).Errorf("subscribe event %s for user %d: %v", eventID, tgID, err)
	}
}
