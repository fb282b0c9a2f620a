package feed

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"feedgate/internal/domain"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"
	ext "github.com/mmcdole/gofeed/extensions"
)

// RSSSource exposes an RSS, Atom or JSON feed as a paged post collection.
// Post IDs are 1-based item ordinals and thumbnails come from the item image,
// a media thumbnail, an image enclosure or the first image in the item body.
type RSSSource struct {
	feedURL string
	parser  *gofeed.Parser
}

func NewRSSSource(feedURL string, timeout time.Duration) *RSSSource {
	if timeout <= 0 {
		timeout = defaultHTTPTimeout
	}

	parser := gofeed.NewParser()
	parser.Client = &http.Client{Timeout: timeout}

	return &RSSSource{
		feedURL: strings.TrimSpace(feedURL),
		parser:  parser,
	}
}

func (s *RSSSource) FetchPage(ctx context.Context, page, size int) ([]domain.Post, error) {
	if page < 1 {
		return nil, fmt.Errorf("page must be positive (page = %d)", page)
	}

	items, err := s.items(ctx)
	if err != nil {
		return nil, err
	}

	start := (page - 1) * size
	if start >= len(items) {
		return []domain.Post{}, nil
	}
	end := min(start+size, len(items))

	posts := make([]domain.Post, 0, end-start)
	for i := start; i < end; i++ {
		posts = append(posts, itemPost(int64(i+1), items[i]))
	}

	return posts, nil
}

func (s *RSSSource) FetchThumbnails(ctx context.Context) (domain.ThumbnailMap, error) {
	items, err := s.items(ctx)
	if err != nil {
		return nil, err
	}

	thumbnails := make(domain.ThumbnailMap, len(items))
	for i, item := range items {
		if thumbnail := itemThumbnail(item); thumbnail != "" {
			thumbnails[int64(i+1)] = thumbnail
		}
	}

	return thumbnails, nil
}

func (s *RSSSource) FetchPost(ctx context.Context, id int64) (domain.FeedEntry, error) {
	items, err := s.items(ctx)
	if err != nil {
		return domain.FeedEntry{}, err
	}

	if id < 1 || id > int64(len(items)) {
		return domain.FeedEntry{}, ErrNotFound
	}

	item := items[id-1]

	return domain.FeedEntry{
		Post:      itemPost(id, item),
		Thumbnail: itemThumbnail(item),
	}, nil
}

func (s *RSSSource) items(ctx context.Context) ([]*gofeed.Item, error) {
	parsed, err := s.parser.ParseURLWithContext(s.feedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("parse feed (URL = %s): %w", s.feedURL, err)
	}

	return parsed.Items, nil
}

func itemPost(id int64, item *gofeed.Item) domain.Post {
	body := item.Content
	if strings.TrimSpace(body) == "" {
		body = item.Description
	}

	return domain.Post{
		ID:    id,
		Title: strings.TrimSpace(item.Title),
		Body:  htmlText(body),
	}
}

func itemThumbnail(item *gofeed.Item) string {
	if item.Image != nil && strings.TrimSpace(item.Image.URL) != "" {
		return strings.TrimSpace(item.Image.URL)
	}

	if u := mediaThumbnail(item.Extensions); u != "" {
		return u
	}

	for _, enclosure := range item.Enclosures {
		if enclosure == nil {
			continue
		}
		if strings.HasPrefix(enclosure.Type, "image/") && strings.TrimSpace(enclosure.URL) != "" {
			return strings.TrimSpace(enclosure.URL)
		}
	}

	for _, html := range []string{item.Content, item.Description} {
		if u := firstImageSrc(html); u != "" {
			return u
		}
	}

	return ""
}

func mediaThumbnail(extensions ext.Extensions) string {
	media, ok := extensions["media"]
	if !ok {
		return ""
	}

	for _, thumbnail := range media["thumbnail"] {
		if u := strings.TrimSpace(thumbnail.Attrs["url"]); u != "" {
			return u
		}
	}

	for _, content := range media["content"] {
		if content.Attrs["medium"] != "image" {
			continue
		}
		if u := strings.TrimSpace(content.Attrs["url"]); u != "" {
			return u
		}
	}

	return ""
}

func htmlText(html string) string {
	if strings.TrimSpace(html) == "" {
		return ""
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return strings.Join(strings.Fields(html), " ")
	}

	return strings.Join(strings.Fields(doc.Text()), " ")
}

func firstImageSrc(html string) string {
	if strings.TrimSpace(html) == "" {
		return ""
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}

	src, _ := doc.Find("img[src]").First().Attr("src")

	return strings.TrimSpace(src)
}
