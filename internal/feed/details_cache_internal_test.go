package feed

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"feedgate/internal/domain"
)

type countingSource struct {
	entry domain.FeedEntry
	calls int
}

func (c *countingSource) FetchPage(context.Context, int, int) ([]domain.Post, error) {
	return nil, nil
}

func (c *countingSource) FetchThumbnails(context.Context) (domain.ThumbnailMap, error) {
	return nil, nil
}

func (c *countingSource) FetchPost(context.Context, int64) (domain.FeedEntry, error) {
	c.calls++
	return c.entry, nil
}

func entryWithID(id int64) domain.FeedEntry {
	return domain.FeedEntry{Post: domain.Post{ID: id}}
}

func TestDetailsCacheGetSet(t *testing.T) {
	cache := newDetailsCache(2)
	if cache == nil {
		t.Fatalf("expected cache instance")
	}

	now := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	cache.set(entryWithID(1), now.Add(time.Hour))

	entry, ok := cache.get(1, now)
	if !ok {
		t.Fatalf("expected cached entry to be present")
	}

	if entry.ID != 1 {
		t.Fatalf("unexpected entry: %+v", entry)
	}
}

func TestDetailsCacheExpiresEntries(t *testing.T) {
	cache := newDetailsCache(2)
	now := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	cache.set(entryWithID(1), now.Add(time.Minute))

	if _, ok := cache.get(1, now.Add(2*time.Minute)); ok {
		t.Fatalf("expected cache entry to expire")
	}

	if len(cache.entries) != 0 {
		t.Fatalf("expected expired cache entry to be removed")
	}
}

func TestDetailsCacheEvictsLeastRecentlyUsed(t *testing.T) {
	cache := newDetailsCache(2)
	now := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	expiresAt := now.Add(time.Hour)

	cache.set(entryWithID(1), expiresAt)
	cache.set(entryWithID(2), expiresAt)

	if _, ok := cache.get(1, now); !ok {
		t.Fatalf("expected entry 1 to exist before eviction check")
	}

	cache.set(entryWithID(3), expiresAt)

	if _, ok := cache.get(1, now); !ok {
		t.Fatalf("expected entry 1 to remain after evicting least recently used")
	}

	if _, ok := cache.get(2, now); ok {
		t.Fatalf("expected entry 2 to be evicted")
	}

	if _, ok := cache.get(3, now); !ok {
		t.Fatalf("expected entry 3 to be cached")
	}
}

func TestDetailsCacheClear(t *testing.T) {
	cache := newDetailsCache(2)
	now := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	cache.set(entryWithID(1), now.Add(time.Hour))

	cache.clear()

	if _, ok := cache.get(1, now); ok {
		t.Fatalf("expected cleared cache to be empty")
	}
}

func TestDetailsLoaderServesFromCache(t *testing.T) {
	src := &countingSource{entry: entryWithID(5)}
	loader := NewDetailsLoader(src, slog.New(slog.NewTextHandler(io.Discard, nil)))

	now := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	loader.now = func() time.Time { return now }

	for range 3 {
		if _, err := loader.Load(t.Context(), 5); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if src.calls != 1 {
		t.Fatalf("expected one fetch, got %d", src.calls)
	}

	now = now.Add(detailsCacheTTL + time.Second)
	if _, err := loader.Load(t.Context(), 5); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if src.calls != 2 {
		t.Fatalf("expected expired entry to be fetched again, got %d calls", src.calls)
	}
}
