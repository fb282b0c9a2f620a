package feed

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"feedgate/internal/domain"
)

// DetailsLoader fetches single posts for the details screen. Successful
// fetches are cached for a few minutes; failures are not, so a retry always
// goes back to the source.
type DetailsLoader struct {
	source Source
	cache  *detailsCache
	now    func() time.Time
	log    *slog.Logger
}

func NewDetailsLoader(source Source, log *slog.Logger) *DetailsLoader {
	return &DetailsLoader{
		source: source,
		cache:  newDetailsCache(detailsCacheMaxEntries),
		now:    time.Now,
		log:    log,
	}
}

func (d *DetailsLoader) Load(ctx context.Context, id int64) (domain.FeedEntry, error) {
	now := d.now()

	if entry, ok := d.cache.get(id, now); ok {
		return entry, nil
	}

	entry, err := d.source.FetchPost(ctx, id)
	if err != nil {
		d.log.ErrorContext(ctx, "Failed to load post details",
			"error", err,
			"postID", id)

		return domain.FeedEntry{}, fmt.Errorf("%w: %w", ErrFetchFailed, err)
	}

	d.cache.set(entry, now.Add(detailsCacheTTL))

	return entry, nil
}

// Forget drops every cached post.
func (d *DetailsLoader) Forget() {
	d.cache.clear()
}
