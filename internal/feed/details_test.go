package feed_test

import (
	"context"
	"testing"

	"feedgate/internal/domain"
	"feedgate/internal/feed"

	"github.com/stretchr/testify/require"
)

func TestDetailsLoaderJoinsThumbnail(t *testing.T) {
	src := newStubSource()
	src.pages[1] = []domain.Post{{ID: 4, Title: "four"}}
	src.thumbnails[4] = "thumb-4"

	loader := feed.NewDetailsLoader(src, discardLogger())

	entry, err := loader.Load(context.Background(), 4)
	require.NoError(t, err)
	require.Equal(t, "four", entry.Title)
	require.Equal(t, "thumb-4", entry.Thumbnail)
}

func TestDetailsLoaderWrapsFailures(t *testing.T) {
	loader := feed.NewDetailsLoader(newStubSource(), discardLogger())

	_, err := loader.Load(context.Background(), 99)
	require.ErrorIs(t, err, feed.ErrFetchFailed)
	require.ErrorIs(t, err, feed.ErrNotFound)
}
