package auth

import (
	"context"
	"errors"
	"fmt"

	"feedgate/internal/database"

	"golang.org/x/crypto/bcrypt"
)

type credentialStore interface {
	CreateUser(ctx context.Context, email string, passwordHash string) error
	GetUserPasswordHash(ctx context.Context, email string) (string, error)
}

// LocalProvider keeps bcrypt credentials in the local database.
type LocalProvider struct {
	store credentialStore
	cost  int
}

func NewLocalProvider(store credentialStore) *LocalProvider {
	return &LocalProvider{store: store, cost: bcrypt.DefaultCost}
}

func (p *LocalProvider) SignIn(ctx context.Context, email, password string) error {
	hash, err := p.store.GetUserPasswordHash(ctx, email)
	if errors.Is(err, database.ErrUserNotFound) {
		return &ProviderError{Code: CodeUserNotFound}
	}
	if err != nil {
		return fmt.Errorf("get password hash: %w", err)
	}

	if err = bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return &ProviderError{Code: CodeWrongPassword}
	}

	return nil
}

func (p *LocalProvider) SignUp(ctx context.Context, email, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), p.cost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	err = p.store.CreateUser(ctx, email, string(hash))
	if errors.Is(err, database.ErrUserExists) {
		return &ProviderError{Code: CodeEmailInUse}
	}
	if err != nil {
		return fmt.Errorf("create user: %w", err)
	}

	return nil
}
