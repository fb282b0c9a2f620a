package feed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"feedgate/internal/domain"

	jsoniter "github.com/json-iterator/go"
	"github.com/tidwall/gjson"
)

const (
	defaultHTTPTimeout = 20 * time.Second
	maxResponseBytes   = 32 << 20
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// HTTPSource reads posts and photos from a JSONPlaceholder-style API.
type HTTPSource struct {
	baseURL string
	client  *http.Client
}

func NewHTTPSource(baseURL string, timeout time.Duration) *HTTPSource {
	if timeout <= 0 {
		timeout = defaultHTTPTimeout
	}

	return &HTTPSource{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

func (s *HTTPSource) FetchPage(ctx context.Context, page, size int) ([]domain.Post, error) {
	if page < 1 {
		return nil, fmt.Errorf("page must be positive (page = %d)", page)
	}

	query := url.Values{}
	query.Set("_page", strconv.Itoa(page))
	query.Set("_limit", strconv.Itoa(size))

	body, err := s.get(ctx, "/posts?"+query.Encode())
	if err != nil {
		return nil, fmt.Errorf("get posts page: %w", err)
	}

	var posts []domain.Post
	if err = json.Unmarshal(body, &posts); err != nil {
		return nil, fmt.Errorf("decode posts page (page = %d): %w", page, err)
	}

	return posts, nil
}

func (s *HTTPSource) FetchThumbnails(ctx context.Context) (domain.ThumbnailMap, error) {
	body, err := s.get(ctx, "/photos")
	if err != nil {
		return nil, fmt.Errorf("get photos: %w", err)
	}

	if !gjson.ValidBytes(body) {
		return nil, errors.New("decode photos: invalid JSON")
	}

	photos := gjson.ParseBytes(body)
	if !photos.IsArray() {
		return nil, errors.New("decode photos: not an array")
	}

	thumbnails := make(domain.ThumbnailMap)
	photos.ForEach(func(_, photo gjson.Result) bool {
		id := photo.Get("id")
		if id.Type != gjson.Number {
			return true
		}

		// First photo with a given ID wins.
		if _, ok := thumbnails[id.Int()]; !ok {
			thumbnails[id.Int()] = photo.Get("thumbnailUrl").String()
		}

		return true
	})

	return thumbnails, nil
}

func (s *HTTPSource) FetchPost(ctx context.Context, id int64) (domain.FeedEntry, error) {
	body, err := s.get(ctx, "/posts/"+strconv.FormatInt(id, 10))
	if err != nil {
		return domain.FeedEntry{}, fmt.Errorf("get post: %w", err)
	}

	var post struct {
		domain.Post
		ThumbnailURL string `json:"thumbnailUrl"`
	}
	if err = json.Unmarshal(body, &post); err != nil {
		return domain.FeedEntry{}, fmt.Errorf("decode post (ID = %d): %w", id, err)
	}

	return domain.FeedEntry{Post: post.Post, Thumbnail: post.ThumbnailURL}, nil
}

func (s *HTTPSource) get(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status (path = %s, status = %d)", path, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	return body, nil
}
