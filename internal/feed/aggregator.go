package feed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"feedgate/internal/domain"

	"golang.org/x/sync/errgroup"
)

const firstPage = 1

// ErrFetchFailed wraps every page or thumbnail fetch failure.
var ErrFetchFailed = errors.New("fetch failed")

type ErrorKind int

const (
	ErrorNone ErrorKind = iota
	ErrorFetchFailed
)

type State struct {
	Entries      []domain.FeedEntry
	CurrentPage  int
	IsLoading    bool
	IsRefreshing bool
	LastError    ErrorKind
}

func initialState() State {
	return State{CurrentPage: firstPage}
}

func (s State) clone() State {
	s.Entries = slices.Clone(s.Entries)
	return s
}

func beginLoad(s State, refreshing bool) State {
	s.IsLoading = true
	s.IsRefreshing = refreshing
	s.LastError = ErrorNone
	return s
}

// completeLoad commits a fetched page. Page 1 replaces the entries, later
// pages are appended after the existing ones.
func completeLoad(s State, page int, entries []domain.FeedEntry) State {
	if page == firstPage {
		s.Entries = slices.Clone(entries)
	} else {
		s.Entries = append(slices.Clone(s.Entries), entries...)
	}
	s.CurrentPage = page + 1
	return s
}

func failLoad(s State) State {
	s.LastError = ErrorFetchFailed
	return s
}

func endLoad(s State) State {
	s.IsLoading = false
	s.IsRefreshing = false
	return s
}

// Aggregator accumulates thumbnail-enriched pages of posts.
//
// isLoading doubles as a mutual exclusion flag: LoadNext and Refresh calls made
// while a fetch is in flight are dropped, not queued. Reset bumps a generation
// counter so that fetches started before it are discarded when they complete.
type Aggregator struct {
	source   Source
	pageSize int

	mu         sync.Mutex
	state      State
	generation uint64
	onChange   func(State)

	log *slog.Logger
}

func NewAggregator(source Source, log *slog.Logger) *Aggregator {
	return &Aggregator{
		source:   source,
		pageSize: PageSize,
		state:    initialState(),
		log:      log,
	}
}

// OnChange registers fn to receive every committed state.
func (a *Aggregator) OnChange(fn func(State)) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.onChange = fn
}

func (a *Aggregator) State() State {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.state.clone()
}

// LoadNext fetches the current page and appends it. It reports false when
// the load was dropped because another one was in flight, or when its result
// was discarded by Reset. The error wraps ErrFetchFailed when the page could
// not be fetched; the same page is retried by the next call.
func (a *Aggregator) LoadNext(ctx context.Context) (bool, error) {
	page, generation, ok := a.begin(false)
	if !ok {
		a.log.DebugContext(ctx, "Load is dropped because another one is in flight")
		return false, nil
	}

	return a.load(ctx, page, generation)
}

// Refresh reloads the first page and replaces all accumulated entries. It
// reports false when a load was already in flight and the refresh was dropped,
// or when its result was discarded by Reset.
func (a *Aggregator) Refresh(ctx context.Context) (bool, error) {
	_, generation, ok := a.begin(true)
	if !ok {
		a.log.DebugContext(ctx, "Refresh is dropped because a load is in flight")
		return false, nil
	}

	return a.load(ctx, firstPage, generation)
}

// Reset discards all state. Fetches still in flight will not touch it.
func (a *Aggregator) Reset() {
	a.mu.Lock()
	a.generation++
	a.state = initialState()
	snapshot, notify := a.state.clone(), a.onChange
	a.mu.Unlock()

	if notify != nil {
		notify(snapshot)
	}
}

func (a *Aggregator) begin(refreshing bool) (int, uint64, bool) {
	a.mu.Lock()

	if a.state.IsLoading {
		a.mu.Unlock()
		return 0, 0, false
	}

	a.state = beginLoad(a.state, refreshing)
	page, generation := a.state.CurrentPage, a.generation
	snapshot, notify := a.state.clone(), a.onChange
	a.mu.Unlock()

	if notify != nil {
		notify(snapshot)
	}

	return page, generation, true
}

func (a *Aggregator) load(ctx context.Context, page int, generation uint64) (bool, error) {
	entries, fetchErr := a.fetch(ctx, page)

	a.mu.Lock()

	if generation != a.generation {
		a.mu.Unlock()
		a.log.DebugContext(ctx, "Stale page is discarded",
			"page", page,
			"generation", generation)
		return false, nil
	}

	if fetchErr != nil {
		a.state = endLoad(failLoad(a.state))
	} else {
		a.state = endLoad(completeLoad(a.state, page, entries))
	}
	snapshot, notify := a.state.clone(), a.onChange
	a.mu.Unlock()

	if notify != nil {
		notify(snapshot)
	}

	if fetchErr != nil {
		a.log.ErrorContext(ctx, "Failed to load feed page",
			"error", fetchErr,
			"page", page)

		return true, fmt.Errorf("%w: %w", ErrFetchFailed, fetchErr)
	}

	a.log.DebugContext(ctx, "Feed page is loaded",
		"page", page,
		"entryCount", len(entries),
		"totalEntries", len(snapshot.Entries))

	return true, nil
}

// fetch requests the page and the whole thumbnail collection concurrently
// and joins them once both have arrived. The thumbnail collection is
// downloaded again for every page because the source cannot filter it.
func (a *Aggregator) fetch(ctx context.Context, page int) ([]domain.FeedEntry, error) {
	var (
		posts      []domain.Post
		thumbnails domain.ThumbnailMap
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		posts, err = a.source.FetchPage(gctx, page, a.pageSize)
		if err != nil {
			return fmt.Errorf("fetch page (page = %d): %w", page, err)
		}
		return nil
	})

	g.Go(func() error {
		var err error
		thumbnails, err = a.source.FetchThumbnails(gctx)
		if err != nil {
			return fmt.Errorf("fetch thumbnails: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return Join(posts, thumbnails), nil
}
