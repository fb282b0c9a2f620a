package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"feedgate/internal/domain"
)

// Key is the single key whose presence marks a logged in user.
const Key = "user"

type KV interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key string, value string) error
	Remove(ctx context.Context, key string) error
}

type Store struct {
	kv  KV
	log *slog.Logger
}

func NewStore(kv KV, log *slog.Logger) *Store {
	return &Store{kv: kv, log: log}
}

// HasSession reports whether a non-empty session marker is stored.
func (s *Store) HasSession(ctx context.Context) (bool, error) {
	value, ok, err := s.kv.Get(ctx, Key)
	if err != nil {
		return false, fmt.Errorf("get session marker: %w", err)
	}

	return ok && strings.TrimSpace(value) != "", nil
}

// Current returns the stored session, if any.
func (s *Store) Current(ctx context.Context) (domain.Session, bool, error) {
	value, ok, err := s.kv.Get(ctx, Key)
	if err != nil {
		return "", false, fmt.Errorf("get session marker: %w", err)
	}

	value = strings.TrimSpace(value)
	if !ok || value == "" {
		return "", false, nil
	}

	return domain.Session(value), true, nil
}

func (s *Store) StartSession(ctx context.Context, email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return errors.New("session email is empty")
	}

	if err := s.kv.Set(ctx, Key, email); err != nil {
		return fmt.Errorf("set session marker: %w", err)
	}

	s.log.InfoContext(ctx, "Session is started",
		"email", email)

	return nil
}

func (s *Store) EndSession(ctx context.Context) error {
	if err := s.kv.Remove(ctx, Key); err != nil {
		return fmt.Errorf("remove session marker: %w", err)
	}

	s.log.InfoContext(ctx, "Session is ended")

	return nil
}
