package ratelimiter

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

const (
	privateChatRate = time.Second
	groupChatRate   = 3 * time.Second
	queueSize       = 1000
)

type request struct {
	ctx      context.Context
	chatID   int64
	call     func(ctx context.Context) error
	response chan error
}

// RateLimiter serializes outgoing Telegram calls and spaces the ones aimed
// at the same chat so that flood limits are not hit.
type RateLimiter struct {
	queue    chan request
	lastSent map[int64]time.Time
	mu       sync.Mutex

	privateRate time.Duration
	groupRate   time.Duration

	ctx    context.Context
	cancel context.CancelFunc
	log    *slog.Logger
}

func New(log *slog.Logger) *RateLimiter {
	return newRateLimiter(privateChatRate, groupChatRate, log)
}

func newRateLimiter(privateRate, groupRate time.Duration, log *slog.Logger) *RateLimiter {
	ctx, cancel := context.WithCancel(context.Background())

	rl := &RateLimiter{
		queue:       make(chan request, queueSize),
		lastSent:    make(map[int64]time.Time),
		privateRate: privateRate,
		groupRate:   groupRate,
		ctx:         ctx,
		cancel:      cancel,
		log:         log,
	}

	go rl.processQueue()

	return rl
}

// Do runs call once the chat is allowed to receive another message and
// returns its error.
func (rl *RateLimiter) Do(ctx context.Context, chatID int64, call func(ctx context.Context) error) error {
	req := request{
		ctx:      ctx,
		chatID:   chatID,
		call:     call,
		response: make(chan error, 1),
	}

	select {
	case rl.queue <- req:
	case <-rl.ctx.Done():
		return rl.ctx.Err()
	case <-ctx.Done():
		return ctx.Err()
	}

	// After Stop the queue may no longer be drained.
	select {
	case err := <-req.response:
		return err
	case <-rl.ctx.Done():
		return rl.ctx.Err()
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (rl *RateLimiter) Stop() {
	rl.cancel()
}

func (rl *RateLimiter) processQueue() {
	for {
		select {
		case req := <-rl.queue:
			rl.handleRequest(req)
		case <-rl.ctx.Done():
			for {
				select {
				case req := <-rl.queue:
					req.response <- rl.ctx.Err()
				default:
					return
				}
			}
		}
	}
}

func (rl *RateLimiter) handleRequest(req request) {
	if rl.ctx.Err() != nil {
		req.response <- rl.ctx.Err()
		return
	}
	if req.ctx.Err() != nil {
		req.response <- req.ctx.Err()
		return
	}

	rl.mu.Lock()
	lastSent, exists := rl.lastSent[req.chatID]
	rl.mu.Unlock()

	if exists {
		if delay := rl.delay(req.chatID, lastSent); delay > 0 {
			rl.log.DebugContext(req.ctx, "Rate limiting message",
				"chatID", req.chatID,
				"delay", delay,
				"queueLen", len(rl.queue))

			timer := time.NewTimer(delay)
			select {
			case <-timer.C:
			case <-rl.ctx.Done():
				timer.Stop()
				req.response <- rl.ctx.Err()
				return
			case <-req.ctx.Done():
				timer.Stop()
				req.response <- req.ctx.Err()
				return
			}
		}
	}

	err := req.call(req.ctx)

	rl.mu.Lock()
	rl.lastSent[req.chatID] = time.Now()
	rl.mu.Unlock()

	req.response <- err
}

func (rl *RateLimiter) delay(chatID int64, lastSent time.Time) time.Duration {
	elapsed := time.Since(lastSent)
	rate := rl.privateRate
	if chatID < 0 {
		rate = rl.groupRate
	}

	return max(rate-elapsed, 0)
}
