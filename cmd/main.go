package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"feedgate/internal/app"
	"feedgate/internal/auth"
	"feedgate/internal/bot"
	"feedgate/internal/config"
	"feedgate/internal/database"
	"feedgate/internal/feed"
	"feedgate/internal/i18n"
	"feedgate/internal/session"
)

const redisKeyPrefix = "feedgate:"

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(log)

	start := time.Now()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.ErrorContext(ctx, "Failed to load config",
			"error", err)

		return
	}

	db, err := database.New(ctx, cfg.DBPath, log)
	if err != nil {
		log.ErrorContext(ctx, "Failed to initialize db",
			"error", err,
			"dbPath", cfg.DBPath)

		return
	}
	defer func() {
		if err = db.Close(); err != nil {
			log.ErrorContext(ctx, "Failed to close db",
				"error", err,
				"dbPath", cfg.DBPath)
		}
	}()
	log.InfoContext(ctx, "DB is initialized",
		"dbPath", cfg.DBPath)

	kv, closeKV := initSessionKV(ctx, cfg, db, log)
	defer closeKV()

	botInst, err := bot.New(cfg.Token, cfg.OwnerChatID, log)
	if err != nil {
		log.ErrorContext(ctx, "Failed to initialize bot",
			"error", err,
			"ownerChatID", cfg.OwnerChatID)

		return
	}
	log.InfoContext(ctx, "Bot is initialized",
		"ownerChatID", cfg.OwnerChatID)

	shell := app.New(app.Deps{
		Sessions:  session.NewStore(kv, log),
		Auth:      auth.NewGateway(initAuthProvider(ctx, cfg, db, log), log),
		Source:    initFeedSource(ctx, cfg, log),
		Localizer: i18n.New(cfg.Language),
		Alerts:    botInst,
	}, log)

	go func() {
		botInst.Start(ctx, shell)
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	sig := <-c
	log.InfoContext(ctx, "Shutdown signal is received",
		"signal", sig.String())
	cancel()

	log.InfoContext(ctx, "Exiting...",
		"signal", sig.String(),
		"uptimeSeconds", time.Since(start).Seconds())

	botInst.Stop()
	log.InfoContext(ctx, "Bot is stopped",
		"uptimeSeconds", time.Since(start).Seconds())
}

// initSessionKV prefers Redis when it is configured and reachable, and falls
// back to the SQLite key-value table otherwise.
func initSessionKV(
	ctx context.Context,
	cfg config.Config,
	db *database.Database,
	log *slog.Logger,
) (session.KV, func()) {
	noop := func() {}

	redisKV := session.NewRedisKV(cfg.RedisAddr, cfg.RedisPassword, redisKeyPrefix)
	if redisKV == nil {
		log.InfoContext(ctx, "REDIS_ADDR is missing so sessions are stored in db",
			"envVar", "REDIS_ADDR")

		return db, noop
	}

	if err := redisKV.Ping(ctx); err != nil {
		log.ErrorContext(ctx, "Failed to reach redis so sessions are stored in db",
			"error", err,
			"redisAddr", cfg.RedisAddr)

		if err = redisKV.Close(); err != nil {
			log.ErrorContext(ctx, "Failed to close redis client",
				"error", err)
		}

		return db, noop
	}

	log.InfoContext(ctx, "Sessions are stored in redis",
		"redisAddr", cfg.RedisAddr)

	return redisKV, func() {
		if err := redisKV.Close(); err != nil {
			log.ErrorContext(ctx, "Failed to close redis client",
				"error", err)
		}
	}
}

func initAuthProvider(
	ctx context.Context,
	cfg config.Config,
	db *database.Database,
	log *slog.Logger,
) auth.Provider {
	if cfg.AuthProvider == config.AuthProviderFirebase {
		log.InfoContext(ctx, "Firebase auth provider is initialized",
			"baseURL", cfg.FirebaseBaseURL)

		return auth.NewFirebaseProvider(cfg.FirebaseBaseURL, cfg.FirebaseAPIKey)
	}

	log.InfoContext(ctx, "Local auth provider is initialized",
		"dbPath", cfg.DBPath)

	return auth.NewLocalProvider(db)
}

func initFeedSource(ctx context.Context, cfg config.Config, log *slog.Logger) feed.Source {
	if cfg.FeedRSSURL != "" {
		log.InfoContext(ctx, "RSS feed source is initialized",
			"feedURL", cfg.FeedRSSURL,
			"timeout", cfg.FeedHTTPTimeout)

		return feed.NewRSSSource(cfg.FeedRSSURL, cfg.FeedHTTPTimeout)
	}

	log.InfoContext(ctx, "HTTP feed source is initialized",
		"baseURL", cfg.FeedBaseURL,
		"timeout", cfg.FeedHTTPTimeout)

	return feed.NewHTTPSource(cfg.FeedBaseURL, cfg.FeedHTTPTimeout)
}
