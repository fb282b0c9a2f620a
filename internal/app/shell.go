package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"feedgate/internal/auth"
	"feedgate/internal/domain"
	"feedgate/internal/feed"
	"feedgate/internal/i18n"
	"feedgate/internal/nav"
)

// ErrWrongScreen is returned for input that does not belong to the screen
// currently shown, e.g. a stale button press.
var ErrWrongScreen = errors.New("action is not available on the current screen")

// ErrDropped is returned when an action had no effect: another load was in
// flight, or the result arrived after the screen it belonged to was left.
var ErrDropped = errors.New("action is dropped")

// Alerter shows a modal message to the user.
type Alerter interface {
	Alert(ctx context.Context, title string, message string)
}

type SessionStore interface {
	nav.SessionStore
	StartSession(ctx context.Context, email string) error
}

type DetailsState struct {
	PostID    int64
	Entry     domain.FeedEntry
	IsLoading bool
	Failed    bool
}

type Deps struct {
	Sessions  SessionStore
	Auth      *auth.Gateway
	Source    feed.Source
	Localizer *i18n.Localizer
	Alerts    Alerter
}

// Shell wires the navigation gate, the feed aggregator and the auth gateway
// into the operations a screen can trigger.
type Shell struct {
	gate      *nav.Gate
	sessions  SessionStore
	auth      *auth.Gateway
	feed      *feed.Aggregator
	details   *feed.DetailsLoader
	localizer *i18n.Localizer
	alerts    Alerter

	// navMu makes a screen check and the transition that follows it atomic.
	navMu sync.Mutex

	mu           sync.Mutex
	detailsState DetailsState
	detailsGen   uint64

	log *slog.Logger
}

func New(deps Deps, log *slog.Logger) *Shell {
	return &Shell{
		gate:      nav.NewGate(deps.Sessions, log),
		sessions:  deps.Sessions,
		auth:      deps.Auth,
		feed:      feed.NewAggregator(deps.Source, log),
		details:   feed.NewDetailsLoader(deps.Source, log),
		localizer: deps.Localizer,
		alerts:    deps.Alerts,
		log:       log,
	}
}

// Launch resolves the first screen. When it is the feed, the first page is
// loaded before returning.
func (s *Shell) Launch(ctx context.Context) domain.Destination {
	dest := s.gate.Resolve(ctx)

	if dest == domain.DestinationFeed {
		s.enterFeed(ctx)
	}

	return dest
}

func (s *Shell) Current() nav.Screen {
	return s.gate.Current()
}

func (s *Shell) Feed() feed.State {
	return s.feed.State()
}

// OnFeedChange registers fn to receive every committed feed state.
func (s *Shell) OnFeedChange(fn func(feed.State)) {
	s.feed.OnChange(fn)
}

func (s *Shell) Details() DetailsState {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.detailsState
}

func (s *Shell) Localizer() *i18n.Localizer {
	return s.localizer
}

func (s *Shell) T(key string) string {
	return s.localizer.T(key)
}

func (s *Shell) OpenRegister(ctx context.Context) error {
	return s.move(domain.DestinationLogin, func() {
		s.gate.Navigate(ctx, domain.DestinationRegister, domain.Params{})
	})
}

func (s *Shell) OpenLogin(ctx context.Context) error {
	return s.move(domain.DestinationRegister, func() {
		s.gate.Navigate(ctx, domain.DestinationLogin, domain.Params{})
	})
}

// SubmitLogin validates and sends the login form. On success the session is
// stored and the feed replaces the login screen.
func (s *Shell) SubmitLogin(ctx context.Context, email, password string) error {
	if err := s.require(domain.DestinationLogin); err != nil {
		return err
	}

	session, err := s.auth.Login(ctx, email, password)
	if err != nil {
		s.alertError(ctx, s.authMessage(err))
		return err
	}

	// The login screen may have been left while the provider was answering.
	// The session is only stored if it is still shown.
	if err = s.move(domain.DestinationLogin, func() {
		if storeErr := s.sessions.StartSession(ctx, string(session)); storeErr != nil {
			s.log.ErrorContext(ctx, "Failed to store session so it will not survive a restart",
				"error", storeErr,
				"email", session)
		}

		s.gate.Replace(ctx, domain.DestinationFeed)
	}); err != nil {
		return err
	}

	s.enterFeed(ctx)

	return nil
}

// SubmitRegister validates and sends the registration form. Success leads
// back to Login without creating a session.
func (s *Shell) SubmitRegister(ctx context.Context, email, password, confirmPassword string) error {
	if err := s.require(domain.DestinationRegister); err != nil {
		return err
	}

	if err := s.auth.Register(ctx, email, password, confirmPassword); err != nil {
		s.alertError(ctx, s.authMessage(err))
		return err
	}

	s.alerts.Alert(ctx, s.T(i18n.KeySuccess), s.T(i18n.KeyAccountCreated))

	return s.move(domain.DestinationRegister, func() {
		s.gate.Navigate(ctx, domain.DestinationLogin, domain.Params{})
	})
}

// LoadMore is triggered when the end of the feed is reached. It returns
// ErrDropped when a load is already in flight or the feed was reset meanwhile.
func (s *Shell) LoadMore(ctx context.Context) error {
	if err := s.require(domain.DestinationFeed); err != nil {
		return err
	}

	return s.loadNext(ctx)
}

func (s *Shell) Refresh(ctx context.Context) error {
	if err := s.require(domain.DestinationFeed); err != nil {
		return err
	}

	applied, err := s.feed.Refresh(ctx)
	if err != nil {
		s.alertError(ctx, s.T(i18n.KeyLoadFeedFailed))
		return err
	}
	if !applied {
		return ErrDropped
	}

	return nil
}

// OpenDetails shows the post with id and loads it.
func (s *Shell) OpenDetails(ctx context.Context, id int64) error {
	if err := s.move(domain.DestinationFeed, func() {
		s.gate.Navigate(ctx, domain.DestinationDetails, domain.Params{PostID: id})
	}); err != nil {
		return err
	}

	return s.loadDetails(ctx, id)
}

func (s *Shell) RetryDetails(ctx context.Context) error {
	if err := s.require(domain.DestinationDetails); err != nil {
		return err
	}

	return s.loadDetails(ctx, s.gate.Current().Params.PostID)
}

func (s *Shell) OpenSettings(ctx context.Context) error {
	return s.move(domain.DestinationFeed, func() {
		s.gate.Navigate(ctx, domain.DestinationSettings, domain.Params{})
	})
}

func (s *Shell) ChangeLanguage(ctx context.Context, lang string) error {
	if err := s.require(domain.DestinationSettings); err != nil {
		return err
	}

	tag := s.localizer.SetLanguage(lang)
	s.log.InfoContext(ctx, "Language is changed",
		"requested", lang,
		"language", tag.String())

	return nil
}

// Logout ends the session and returns to Login. Feed and details state is
// discarded; fetches still in flight are ignored when they complete.
func (s *Shell) Logout(ctx context.Context) error {
	if err := s.move(domain.DestinationSettings, func() {
		s.gate.Logout(ctx)
	}); err != nil {
		return err
	}

	s.feed.Reset()
	s.details.Forget()

	s.mu.Lock()
	s.detailsGen++
	s.detailsState = DetailsState{}
	s.mu.Unlock()

	return nil
}

// Back returns to the previous screen, if there is one.
func (s *Shell) Back(ctx context.Context) bool {
	s.navMu.Lock()
	defer s.navMu.Unlock()

	from := s.gate.Current().Destination
	if !s.gate.Back() {
		return false
	}

	if from == domain.DestinationDetails {
		s.mu.Lock()
		s.detailsGen++
		s.detailsState = DetailsState{}
		s.mu.Unlock()
	}

	s.log.DebugContext(ctx, "Back is handled",
		"from", from,
		"to", s.gate.Current().Destination)

	return true
}

func (s *Shell) enterFeed(ctx context.Context) {
	if len(s.feed.State().Entries) != 0 {
		return
	}

	_ = s.loadNext(ctx)
}

func (s *Shell) loadNext(ctx context.Context) error {
	applied, err := s.feed.LoadNext(ctx)
	if err != nil {
		s.alertError(ctx, s.T(i18n.KeyLoadFeedFailed))
		return err
	}
	if !applied {
		return ErrDropped
	}

	return nil
}

func (s *Shell) loadDetails(ctx context.Context, id int64) error {
	s.mu.Lock()
	s.detailsGen++
	gen := s.detailsGen
	s.detailsState = DetailsState{PostID: id, IsLoading: true}
	s.mu.Unlock()

	entry, err := s.details.Load(ctx, id)

	s.mu.Lock()
	if gen != s.detailsGen {
		s.mu.Unlock()
		return ErrDropped
	}
	s.detailsState = DetailsState{PostID: id, Entry: entry, Failed: err != nil}
	s.mu.Unlock()

	if err != nil {
		s.alertError(ctx, s.T(i18n.KeyFetchDetails))
		return err
	}

	return nil
}

func (s *Shell) move(from domain.Destination, transition func()) error {
	s.navMu.Lock()
	defer s.navMu.Unlock()

	if err := s.require(from); err != nil {
		return err
	}

	transition()

	return nil
}

func (s *Shell) require(d domain.Destination) error {
	if current := s.gate.Current().Destination; current != d {
		return fmt.Errorf("%w (screen = %q, want %q)", ErrWrongScreen, current, d)
	}
	return nil
}

func (s *Shell) alertError(ctx context.Context, message string) {
	s.alerts.Alert(ctx, s.T(i18n.KeyError), message)
}

func (s *Shell) authMessage(err error) string {
	var validationErr *auth.ValidationError
	if errors.As(err, &validationErr) {
		switch validationErr.Kind {
		case auth.ValidationInvalidEmail:
			return s.T(i18n.KeyInvalidEmail)
		case auth.ValidationWeakPassword:
			return s.T(i18n.KeyInvalidPassword)
		default:
			return s.T(i18n.KeyPasswordMismatch)
		}
	}

	var authErr *auth.Error
	if errors.As(err, &authErr) {
		switch authErr.Kind {
		case auth.KindWrongPassword:
			return s.T(i18n.KeyWrongPassword)
		case auth.KindUserNotFound:
			return s.T(i18n.KeyUserNotFound)
		case auth.KindInvalidEmail:
			return s.T(i18n.KeyInvalidEmailForm)
		case auth.KindEmailInUse:
			return s.T(i18n.KeyEmailInUse)
		default:
			if authErr.Message != "" {
				return authErr.Message
			}
		}
	}

	return err.Error()
}
