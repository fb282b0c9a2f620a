package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUserExists   = errors.New("user already exists")
	ErrUserNotFound = errors.New("user not found")
)

// Get returns the value stored under key and whether it exists.
func (d *Database) Get(ctx context.Context, key string) (string, bool, error) {
	query := "select value from kv where key = ?"

	var value string
	err := d.db.QueryRowContext(ctx, query, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to execute query: %w", err)
	}

	return value, true, nil
}

func (d *Database) Set(ctx context.Context, key string, value string) error {
	query := `insert into kv (key, value)
	values (?, ?)
	on conflict (key) do update
	set value = excluded.value`

	_, err := d.db.ExecContext(ctx, query, key, value)

	return err
}

func (d *Database) Remove(ctx context.Context, key string) error {
	query := "delete from kv where key = ?"

	_, err := d.db.ExecContext(ctx, query, key)

	return err
}

func (d *Database) CreateUser(ctx context.Context, email string, passwordHash string) error {
	email = normalizeEmail(email)
	if email == "" {
		return errors.New("email is empty")
	}

	query := "insert or ignore into users (email, password_hash) values (?, ?)"

	res, err := d.db.ExecContext(ctx, query, email, passwordHash)
	if err != nil {
		return fmt.Errorf("failed to execute query: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if affected == 0 {
		return ErrUserExists
	}

	return nil
}

func (d *Database) GetUserPasswordHash(ctx context.Context, email string) (string, error) {
	query := "select password_hash from users where email = ?"

	var hash string
	err := d.db.QueryRowContext(ctx, query, normalizeEmail(email)).Scan(&hash)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrUserNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to execute query: %w", err)
	}

	return hash, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
