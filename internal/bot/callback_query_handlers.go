package bot

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"feedgate/internal/app"

	tg "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

func (b *Bot) handleCallbackQuery(ctx context.Context, callback *models.CallbackQuery) error {
	var errs []error

	if _, err := b.api.AnswerCallbackQuery(ctx, &tg.AnswerCallbackQueryParams{
		CallbackQueryID: callback.ID,
	}); err != nil {
		errs = append(errs, fmt.Errorf("answer callback query: %w", err))
	}

	err := b.withSpinner(ctx, func() error {
		return b.dispatchCallback(ctx, strings.TrimSpace(callback.Data))
	})
	if err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

func (b *Bot) dispatchCallback(ctx context.Context, data string) error {
	shell := b.currentShell()

	var err error

	switch data {
	case callbackRegister:
		err = shell.OpenRegister(ctx)
	case callbackLogin:
		err = shell.OpenLogin(ctx)
	case callbackMore:
		err = shell.LoadMore(ctx)
	case callbackRefresh:
		err = shell.Refresh(ctx)
	case callbackSettings:
		err = shell.OpenSettings(ctx)
	case callbackRetry:
		err = shell.RetryDetails(ctx)
	case callbackLogout:
		err = shell.Logout(ctx)
	case callbackBack:
		shell.Back(ctx)
	default:
		if idStr, ok := strings.CutPrefix(data, callbackPostPrefix); ok {
			id, parseErr := strconv.ParseInt(idStr, 10, 64)
			if parseErr != nil {
				return fmt.Errorf("parse post id: %w", parseErr)
			}
			err = shell.OpenDetails(ctx, id)
			break
		}

		if lang, ok := strings.CutPrefix(data, callbackLanguagePrefix); ok {
			err = shell.ChangeLanguage(ctx, lang)
			break
		}

		b.log.WarnContext(ctx, "Unknown callback data",
			"data", data)
	}

	if errors.Is(err, app.ErrDropped) {
		b.log.DebugContext(ctx, "Callback action is dropped so the screen is kept",
			"data", data)

		return nil
	}

	if err != nil {
		b.log.DebugContext(ctx, "Callback action failed",
			"error", err,
			"data", data)
	}

	if renderErr := b.renderScreen(ctx); renderErr != nil {
		return fmt.Errorf("render screen: %w", renderErr)
	}

	return nil
}
