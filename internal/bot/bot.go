package bot

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"feedgate/internal/app"
	"feedgate/internal/domain"
	"feedgate/internal/feed"
	"feedgate/internal/nav"
	"feedgate/internal/ratelimiter"

	tg "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

const updateProcessingTimeout = 60 * time.Second

// Shell is the part of the app the chat drives.
type Shell interface {
	Launch(ctx context.Context) domain.Destination
	Current() nav.Screen
	Feed() feed.State
	Details() app.DetailsState
	T(key string) string

	OpenRegister(ctx context.Context) error
	OpenLogin(ctx context.Context) error
	SubmitLogin(ctx context.Context, email, password string) error
	SubmitRegister(ctx context.Context, email, password, confirmPassword string) error
	LoadMore(ctx context.Context) error
	Refresh(ctx context.Context) error
	OpenDetails(ctx context.Context, id int64) error
	RetryDetails(ctx context.Context) error
	OpenSettings(ctx context.Context) error
	ChangeLanguage(ctx context.Context, lang string) error
	Logout(ctx context.Context) error
	Back(ctx context.Context) bool
}

type messenger interface {
	SendMessage(ctx context.Context, params *tg.SendMessageParams) (*models.Message, error)
	SendPhoto(ctx context.Context, params *tg.SendPhotoParams) (*models.Message, error)
	DeleteMessage(ctx context.Context, params *tg.DeleteMessageParams) (bool, error)
	AnswerCallbackQuery(ctx context.Context, params *tg.AnswerCallbackQueryParams) (bool, error)
	SendChatAction(ctx context.Context, params *tg.SendChatActionParams) (bool, error)
}

type limiter interface {
	Do(ctx context.Context, chatID int64, call func(ctx context.Context) error) error
}

// Bot presents the app in a single Telegram chat. Messages from any other
// chat are ignored.
type Bot struct {
	client      *tg.Bot
	api         messenger
	rateLimiter limiter
	stop        func()
	ownerChatID int64

	mu    sync.RWMutex
	shell Shell

	log *slog.Logger
}

func New(token string, ownerChatID int64, log *slog.Logger) (*Bot, error) {
	rateLimiter := ratelimiter.New(log)

	b := newBot(nil, rateLimiter, ownerChatID, log)
	b.stop = rateLimiter.Stop

	client, err := tg.New(strings.TrimSpace(token),
		tg.WithDefaultHandler(func(ctx context.Context, _ *tg.Bot, update *models.Update) {
			b.handleUpdate(ctx, update)
		}),
		tg.WithErrorsHandler(func(err error) {
			log.Error("Failed to get updates",
				"error", err)
		}),
	)
	if err != nil {
		rateLimiter.Stop()
		return nil, fmt.Errorf("create bot: %w", err)
	}

	b.client = client
	b.api = client

	return b, nil
}

func newBot(api messenger, rateLimiter limiter, ownerChatID int64, log *slog.Logger) *Bot {
	return &Bot{
		api:         api,
		rateLimiter: rateLimiter,
		ownerChatID: ownerChatID,
		log:         log,
	}
}

// Start launches shell, shows its first screen and polls updates until ctx
// is done.
func (b *Bot) Start(ctx context.Context, shell Shell) {
	b.attach(ctx, shell)

	b.log.InfoContext(ctx, "Bot is started",
		"ownerChatID", b.ownerChatID)

	b.client.Start(ctx)

	b.log.InfoContext(ctx, "Bot context is done",
		"error", ctx.Err())
}

func (b *Bot) Stop() {
	if b.stop != nil {
		b.stop()
	}
}

func (b *Bot) attach(ctx context.Context, shell Shell) {
	b.mu.Lock()
	b.shell = shell
	b.mu.Unlock()

	dest := shell.Launch(ctx)
	b.log.InfoContext(ctx, "Start destination is resolved",
		"destination", dest)

	if err := b.renderScreen(ctx); err != nil {
		b.log.ErrorContext(ctx, "Failed to render start screen",
			"error", err)
	}
}

func (b *Bot) currentShell() Shell {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return b.shell
}

// Alert sends a standalone message to the owner chat.
func (b *Bot) Alert(ctx context.Context, title string, message string) {
	text := "*" + tg.EscapeMarkdown(title) + "*\n\n" + tg.EscapeMarkdown(message)

	if err := b.sendMessage(ctx, text, nil); err != nil {
		b.log.ErrorContext(ctx, "Failed to send alert",
			"error", err,
			"title", title)
	}
}

func (b *Bot) handleUpdate(ctx context.Context, update *models.Update) {
	updateCtx, cancel := context.WithTimeout(ctx, updateProcessingTimeout)
	defer cancel()

	if b.currentShell() == nil {
		b.log.WarnContext(updateCtx, "Update is received before the app is started",
			"updateID", update.ID)
		return
	}

	switch {
	case update.Message != nil:
		chatID := update.Message.Chat.ID
		if chatID != b.ownerChatID {
			b.log.DebugContext(updateCtx, "Chat is not allowed",
				"chatID", chatID,
				"chatType", update.Message.Chat.Type)

			return
		}

		if err := b.handleMessage(updateCtx, update.Message); err != nil {
			b.log.ErrorContext(updateCtx, "Failed to handle message",
				"error", err,
				"chatID", chatID,
				"messageID", update.Message.ID)
		}

	case update.CallbackQuery != nil:
		chatID := callbackChatID(update.CallbackQuery)
		if chatID != b.ownerChatID {
			b.log.DebugContext(updateCtx, "Chat is not allowed",
				"chatID", chatID,
				"userID", update.CallbackQuery.From.ID,
				"data", update.CallbackQuery.Data)

			return
		}

		if err := b.handleCallbackQuery(updateCtx, update.CallbackQuery); err != nil {
			b.log.ErrorContext(updateCtx, "Failed to handle callback query",
				"error", err,
				"chatID", chatID,
				"data", update.CallbackQuery.Data)
		}
	}
}

func callbackChatID(cb *models.CallbackQuery) int64 {
	if cb.Message.Message != nil {
		return cb.Message.Message.Chat.ID
	}
	if cb.Message.InaccessibleMessage != nil {
		return cb.Message.InaccessibleMessage.Chat.ID
	}

	return cb.From.ID
}
