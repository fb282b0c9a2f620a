package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"feedgate/internal/app"
	"feedgate/internal/i18n"

	tg "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

func (b *Bot) handleMessage(ctx context.Context, message *models.Message) error {
	fields := strings.Fields(message.Text)
	if len(fields) == 0 {
		return b.renderScreen(ctx)
	}

	command, _, _ := strings.Cut(fields[0], "@")

	switch command {
	case "/login":
		b.deleteMessage(ctx, message.ID)
		return b.handleLoginCommand(ctx, fields[1:])
	case "/register":
		b.deleteMessage(ctx, message.ID)
		return b.handleRegisterCommand(ctx, fields[1:])
	default:
		return b.renderScreen(ctx)
	}
}

func (b *Bot) handleLoginCommand(ctx context.Context, args []string) error {
	shell := b.currentShell()

	if len(args) != 2 {
		return b.sendMessage(ctx, tg.EscapeMarkdown(shell.T(i18n.KeyLoginUsage)), nil)
	}

	return b.withSpinner(ctx, func() error {
		return b.afterAction(ctx, shell.SubmitLogin(ctx, args[0], args[1]))
	})
}

func (b *Bot) handleRegisterCommand(ctx context.Context, args []string) error {
	shell := b.currentShell()

	if len(args) != 3 {
		return b.sendMessage(ctx, tg.EscapeMarkdown(shell.T(i18n.KeyRegisterUsage)), nil)
	}

	return b.withSpinner(ctx, func() error {
		return b.afterAction(ctx, shell.SubmitRegister(ctx, args[0], args[1], args[2]))
	})
}

// afterAction shows the resulting screen. Rejected forms already produced an
// alert and keep their screen, so nothing more is sent for them.
func (b *Bot) afterAction(ctx context.Context, err error) error {
	switch {
	case err == nil, errors.Is(err, app.ErrWrongScreen):
		if renderErr := b.renderScreen(ctx); renderErr != nil {
			return fmt.Errorf("render screen: %w", renderErr)
		}
		return nil
	default:
		b.log.DebugContext(ctx, "Action is rejected",
			"error", err,
			"screen", b.currentShell().Current().Destination)
		return nil
	}
}
