package ratelimiter

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"
)

func newTestLimiter(t *testing.T, privateRate, groupRate time.Duration) *RateLimiter {
	t.Helper()

	rl := newRateLimiter(privateRate, groupRate, slog.New(slog.NewTextHandler(io.Discard, nil)))
	t.Cleanup(rl.Stop)

	return rl
}

func TestDoReturnsCallError(t *testing.T) {
	rl := newTestLimiter(t, 0, 0)
	want := errors.New("telegram says no")

	err := rl.Do(context.Background(), 1, func(context.Context) error { return want })
	if !errors.Is(err, want) {
		t.Fatalf("expected call error, got %v", err)
	}
}

func TestDoSpacesCallsToSameChat(t *testing.T) {
	const rate = 50 * time.Millisecond
	rl := newTestLimiter(t, rate, rate)

	var sent []time.Time
	for range 3 {
		err := rl.Do(context.Background(), 42, func(context.Context) error {
			sent = append(sent, time.Now())
			return nil
		})
		if err != nil {
			t.Fatalf("do: %v", err)
		}
	}

	for i := 1; i < len(sent); i++ {
		if gap := sent[i].Sub(sent[i-1]); gap < rate-5*time.Millisecond {
			t.Fatalf("calls %d and %d are only %s apart", i-1, i, gap)
		}
	}
}

func TestDoDoesNotDelayOtherChats(t *testing.T) {
	rl := newTestLimiter(t, time.Hour, time.Hour)

	noop := func(context.Context) error { return nil }
	if err := rl.Do(context.Background(), 1, noop); err != nil {
		t.Fatalf("do: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	if err := rl.Do(ctx, 2, noop); err != nil {
		t.Fatalf("expected other chat to go through immediately, got %v", err)
	}
}

func TestDoHonorsContext(t *testing.T) {
	rl := newTestLimiter(t, time.Hour, time.Hour)

	noop := func(context.Context) error { return nil }
	if err := rl.Do(context.Background(), 1, noop); err != nil {
		t.Fatalf("do: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	if err := rl.Do(ctx, 1, noop); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
}

func TestDoAfterStopReturns(t *testing.T) {
	rl := newTestLimiter(t, 0, 0)
	rl.Stop()

	called := make(chan struct{}, 1)
	done := make(chan error, 1)
	go func() {
		done <- rl.Do(context.Background(), 1, func(context.Context) error {
			called <- struct{}{}
			return nil
		})
	}()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected canceled, got %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("do is blocked after stop")
	}

	if len(called) != 0 {
		t.Fatal("call must not run after stop")
	}
}

func TestGroupChatsUseSlowerRate(t *testing.T) {
	rl := newTestLimiter(t, time.Second, 3*time.Second)
	now := time.Now()

	if d := rl.delay(-100, now); d <= 2*time.Second {
		t.Fatalf("expected group delay close to 3s, got %s", d)
	}
	if d := rl.delay(100, now); d > time.Second {
		t.Fatalf("expected private delay of at most 1s, got %s", d)
	}
}
