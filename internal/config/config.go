package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

const (
	AuthProviderLocal    = "local"
	AuthProviderFirebase = "firebase"
)

type Config struct {
	Token       string `env:"TOKEN,required,notEmpty"`
	OwnerChatID int64  `env:"OWNER_CHAT_ID,required"`
	DBPath      string `env:"DB_PATH"                 envDefault:"db.sqlite"`

	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`

	FeedBaseURL     string        `env:"FEED_BASE_URL"     envDefault:"https://jsonplaceholder.typicode.com"`
	FeedRSSURL      string        `env:"FEED_RSS_URL"`
	FeedHTTPTimeout time.Duration `env:"FEED_HTTP_TIMEOUT" envDefault:"20s"`

	AuthProvider    string `env:"AUTH_PROVIDER"     envDefault:"local"`
	FirebaseAPIKey  string `env:"FIREBASE_API_KEY"`
	FirebaseBaseURL string `env:"FIREBASE_BASE_URL" envDefault:"https://identitytoolkit.googleapis.com"`

	Language string `env:"LANGUAGE" envDefault:"en"`
}

func LoadConfig() (Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, err
	}

	if err = cfg.validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) validate() error {
	switch c.AuthProvider {
	case AuthProviderLocal:
	case AuthProviderFirebase:
		if c.FirebaseAPIKey == "" {
			return errors.New("FIREBASE_API_KEY is required when AUTH_PROVIDER is firebase")
		}
	default:
		return fmt.Errorf("AUTH_PROVIDER must be %q or %q (got %q)",
			AuthProviderLocal, AuthProviderFirebase, c.AuthProvider)
	}

	return nil
}
