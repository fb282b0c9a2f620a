package feed

import (
	"container/list"
	"sync"
	"time"

	"feedgate/internal/domain"
)

const (
	detailsCacheMaxEntries = 256
	detailsCacheTTL        = 5 * time.Minute
)

type detailsCache struct {
	mu         sync.Mutex
	entries    map[int64]*list.Element
	order      *list.List
	maxEntries int
}

type detailsCacheEntry struct {
	id        int64
	entry     domain.FeedEntry
	expiresAt time.Time
}

func newDetailsCache(maxEntries int) *detailsCache {
	if maxEntries <= 0 {
		return nil
	}

	return &detailsCache{
		entries:    make(map[int64]*list.Element, maxEntries),
		order:      list.New(),
		maxEntries: maxEntries,
	}
}

func (c *detailsCache) get(id int64, now time.Time) (domain.FeedEntry, bool) {
	if c == nil {
		return domain.FeedEntry{}, false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.entries[id]
	if !ok {
		return domain.FeedEntry{}, false
	}

	cached := elem.Value.(*detailsCacheEntry)
	if now.After(cached.expiresAt) {
		c.remove(elem)
		return domain.FeedEntry{}, false
	}

	c.order.MoveToFront(elem)

	return cached.entry, true
}

func (c *detailsCache) set(entry domain.FeedEntry, expiresAt time.Time) {
	if c == nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.entries[entry.ID]; ok {
		cached := elem.Value.(*detailsCacheEntry)
		cached.entry = entry
		cached.expiresAt = expiresAt
		c.order.MoveToFront(elem)

		return
	}

	c.entries[entry.ID] = c.order.PushFront(&detailsCacheEntry{
		id:        entry.ID,
		entry:     entry,
		expiresAt: expiresAt,
	})

	for len(c.entries) > c.maxEntries {
		c.remove(c.order.Back())
	}
}

func (c *detailsCache) clear() {
	if c == nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	clear(c.entries)
	c.order.Init()
}

func (c *detailsCache) remove(elem *list.Element) {
	cached := elem.Value.(*detailsCacheEntry)
	delete(c.entries, cached.id)
	c.order.Remove(elem)
}
