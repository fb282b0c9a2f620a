package feed

import (
	"context"
	"errors"

	"feedgate/internal/domain"
)

// PageSize is the number of posts requested per page.
const PageSize = 10

var ErrNotFound = errors.New("not found")

// Source provides the two remote collections the feed is assembled from.
type Source interface {
	FetchPage(ctx context.Context, page, size int) ([]domain.Post, error)
	// FetchThumbnails returns the whole photo collection as a lookup table.
	// It has no per-page filter.
	FetchThumbnails(ctx context.Context) (domain.ThumbnailMap, error)
	FetchPost(ctx context.Context, id int64) (domain.FeedEntry, error)
}

// Join attaches thumbnails to posts by identical ID, keeping post order.
func Join(posts []domain.Post, thumbnails domain.ThumbnailMap) []domain.FeedEntry {
	entries := make([]domain.FeedEntry, 0, len(posts))

	for _, post := range posts {
		entries = append(entries, domain.FeedEntry{
			Post:      post,
			Thumbnail: thumbnails[post.ID],
		})
	}

	return entries
}
