package session_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"feedgate/internal/session"

	"github.com/alicebob/miniredis/v2"
)

type memoryKV struct {
	values map[string]string
	err    error
}

func (m *memoryKV) Get(_ context.Context, key string) (string, bool, error) {
	if m.err != nil {
		return "", false, m.err
	}
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *memoryKV) Set(_ context.Context, key string, value string) error {
	if m.err != nil {
		return m.err
	}
	m.values[key] = value
	return nil
}

func (m *memoryKV) Remove(_ context.Context, key string) error {
	if m.err != nil {
		return m.err
	}
	delete(m.values, key)
	return nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestStoreLifecycle(t *testing.T) {
	ctx := context.Background()
	kv := &memoryKV{values: map[string]string{}}
	store := session.NewStore(kv, discardLogger())

	if ok, err := store.HasSession(ctx); err != nil || ok {
		t.Fatalf("expected no session, got ok=%v err=%v", ok, err)
	}

	if err := store.StartSession(ctx, "a@b.com"); err != nil {
		t.Fatalf("start session: %v", err)
	}
	if kv.values[session.Key] != "a@b.com" {
		t.Fatalf("expected marker under %q, got %v", session.Key, kv.values)
	}

	current, ok, err := store.Current(ctx)
	if err != nil || !ok || current != "a@b.com" {
		t.Fatalf("unexpected current session %q ok=%v err=%v", current, ok, err)
	}

	if err = store.EndSession(ctx); err != nil {
		t.Fatalf("end session: %v", err)
	}
	if ok, _ = store.HasSession(ctx); ok {
		t.Fatalf("expected session to be ended")
	}
}

func TestStoreEmptyMarkerIsNoSession(t *testing.T) {
	kv := &memoryKV{values: map[string]string{session.Key: "  "}}
	store := session.NewStore(kv, discardLogger())

	if ok, err := store.HasSession(context.Background()); err != nil || ok {
		t.Fatalf("expected blank marker to count as no session, got ok=%v err=%v", ok, err)
	}
}

func TestStoreRejectsEmptyEmail(t *testing.T) {
	store := session.NewStore(&memoryKV{values: map[string]string{}}, discardLogger())

	if err := store.StartSession(context.Background(), " "); err == nil {
		t.Fatalf("expected error for empty email")
	}
}

func TestStoreWrapsKVErrors(t *testing.T) {
	kvErr := errors.New("disk on fire")
	store := session.NewStore(&memoryKV{err: kvErr}, discardLogger())

	if _, err := store.HasSession(context.Background()); !errors.Is(err, kvErr) {
		t.Fatalf("expected wrapped KV error, got %v", err)
	}
	if err := store.EndSession(context.Background()); !errors.Is(err, kvErr) {
		t.Fatalf("expected wrapped KV error, got %v", err)
	}
}

func TestNewRedisKVEmptyAddr(t *testing.T) {
	if kv := session.NewRedisKV("", "", ""); kv != nil {
		t.Fatalf("expected nil KV when addr is empty")
	}
}

func TestRedisKVBacksStore(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)

	kv := session.NewRedisKV(mr.Addr(), "", "feedgate:")
	defer kv.Close()

	if err := kv.Ping(ctx); err != nil {
		t.Fatalf("ping: %v", err)
	}

	store := session.NewStore(kv, discardLogger())
	if err := store.StartSession(ctx, "a@b.com"); err != nil {
		t.Fatalf("start session: %v", err)
	}

	got, err := mr.Get("feedgate:" + session.Key)
	if err != nil {
		t.Fatalf("miniredis get: %v", err)
	}
	if got != "a@b.com" {
		t.Fatalf("unexpected stored marker: %q", got)
	}

	if err = store.EndSession(ctx); err != nil {
		t.Fatalf("end session: %v", err)
	}
	if mr.Exists("feedgate:" + session.Key) {
		t.Fatalf("expected marker to be removed")
	}
}
