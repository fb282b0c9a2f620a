package bot

import (
	"context"
	"strings"
	"time"

	tg "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

const sendSpinnerInterval = 3 * time.Second

func (b *Bot) sendMessage(ctx context.Context, text string, keyboard [][]models.InlineKeyboardButton) error {
	normalizedText := strings.ToValidUTF8(text, "?")
	if normalizedText != text {
		b.log.WarnContext(ctx, "Message text had invalid UTF-8 and was normalized",
			"chatID", b.ownerChatID,
			"originalLen", len(text),
			"normalizedLen", len(normalizedText))
	}

	params := &tg.SendMessageParams{
		ChatID:             b.ownerChatID,
		Text:               normalizedText,
		ParseMode:          models.ParseModeMarkdown,
		LinkPreviewOptions: &models.LinkPreviewOptions{IsDisabled: tg.True()},
	}
	if len(keyboard) != 0 {
		params.ReplyMarkup = &models.InlineKeyboardMarkup{InlineKeyboard: keyboard}
	}

	return b.rateLimiter.Do(ctx, b.ownerChatID, func(ctx context.Context) error {
		_, err := b.api.SendMessage(ctx, params)
		return err
	})
}

func (b *Bot) sendPhoto(
	ctx context.Context,
	photoURL string,
	caption string,
	keyboard [][]models.InlineKeyboardButton,
) error {
	params := &tg.SendPhotoParams{
		ChatID:    b.ownerChatID,
		Photo:     &models.InputFileString{Data: photoURL},
		Caption:   strings.ToValidUTF8(caption, "?"),
		ParseMode: models.ParseModeMarkdown,
	}
	if len(keyboard) != 0 {
		params.ReplyMarkup = &models.InlineKeyboardMarkup{InlineKeyboard: keyboard}
	}

	return b.rateLimiter.Do(ctx, b.ownerChatID, func(ctx context.Context) error {
		_, err := b.api.SendPhoto(ctx, params)
		return err
	})
}

func (b *Bot) deleteMessage(ctx context.Context, messageID int) {
	_, err := b.api.DeleteMessage(ctx, &tg.DeleteMessageParams{
		ChatID:    b.ownerChatID,
		MessageID: messageID,
	})
	if err != nil {
		b.log.WarnContext(ctx, "Failed to delete message with credentials",
			"error", err,
			"messageID", messageID)
	}
}

func (b *Bot) sendTyping(ctx context.Context) {
	_, err := b.api.SendChatAction(ctx, &tg.SendChatActionParams{
		ChatID: b.ownerChatID,
		Action: models.ChatActionTyping,
	})
	if err != nil && ctx.Err() == nil {
		b.log.ErrorContext(ctx, "Failed to send chat action",
			"error", err)
	}
}

func (b *Bot) withSpinner(ctx context.Context, fn func() error) error {
	spinnerCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	go func() {
		b.sendTyping(spinnerCtx)

		t := time.NewTicker(sendSpinnerInterval)
		defer t.Stop()

		for {
			select {
			case <-spinnerCtx.Done():
				return
			case <-t.C:
				b.sendTyping(spinnerCtx)
			}
		}
	}()

	return fn()
}

// renderScreen sends the screen the shell currently shows.
func (b *Bot) renderScreen(ctx context.Context) error {
	v := render(b.currentShell())

	if v.photo != "" {
		return b.sendPhoto(ctx, v.photo, v.text, v.keyboard)
	}

	return b.sendMessage(ctx, v.text, v.keyboard)
}

func truncate(s string, maxRunes int) string {
	runes := []rune(s)
	if len(runes) <= maxRunes {
		return s
	}

	return string(runes[:maxRunes]) + "…"
}
