package nav

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"feedgate/internal/domain"
)

type State int

const (
	StateResolving State = iota
	StateUnauthenticated
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StateUnauthenticated:
		return "Unauthenticated"
	case StateAuthenticated:
		return "Authenticated"
	default:
		return "Resolving"
	}
}

type SessionStore interface {
	HasSession(ctx context.Context) (bool, error)
	EndSession(ctx context.Context) error
}

type Screen struct {
	Destination domain.Destination
	Params      domain.Params
}

type edge struct {
	from domain.Destination
	to   domain.Destination
}

type edgeMode int

const (
	modeAny edgeMode = iota
	// modeReplace edges cross the authentication boundary and must not leave
	// the previous screen reachable with Back.
	modeReplace
)

var edges = map[edge]edgeMode{
	{domain.DestinationLogin, domain.DestinationRegister}: modeAny,
	{domain.DestinationRegister, domain.DestinationLogin}: modeAny,
	{domain.DestinationLogin, domain.DestinationFeed}:     modeReplace,
	{domain.DestinationFeed, domain.DestinationDetails}:   modeAny,
	{domain.DestinationFeed, domain.DestinationSettings}:  modeAny,
	{domain.DestinationDetails, domain.DestinationFeed}:   modeAny,
	{domain.DestinationSettings, domain.DestinationFeed}:  modeAny,
	{domain.DestinationSettings, domain.DestinationLogin}: modeReplace,
}

// TransitionError is the panic value for a transition the graph does not
// allow.
type TransitionError struct {
	From    domain.Destination
	To      domain.Destination
	Replace bool
}

func (e *TransitionError) Error() string {
	verb := "navigate"
	if e.Replace {
		verb = "replace"
	}
	return fmt.Sprintf("nav: cannot %s from %q to %q", verb, e.From, e.To)
}

func stateOf(d domain.Destination) State {
	switch d {
	case domain.DestinationLogin, domain.DestinationRegister:
		return StateUnauthenticated
	default:
		return StateAuthenticated
	}
}

// Gate decides the first screen from the stored session and then only allows
// moves along a fixed graph of destinations.
type Gate struct {
	sessions SessionStore

	mu       sync.Mutex
	resolved bool
	initial  domain.Destination
	history  []Screen

	log *slog.Logger
}

func NewGate(sessions SessionStore, log *slog.Logger) *Gate {
	return &Gate{sessions: sessions, log: log}
}

// Resolve checks the session once and returns the initial destination. Any
// storage failure counts as logged out. Later calls return the first result.
func (g *Gate) Resolve(ctx context.Context) domain.Destination {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.resolved {
		return g.initial
	}

	hasSession, err := g.sessions.HasSession(ctx)
	if err != nil {
		g.log.ErrorContext(ctx, "Failed to check session so login is required",
			"error", err)

		hasSession = false
	}

	g.initial = domain.DestinationLogin
	if hasSession {
		g.initial = domain.DestinationFeed
	}

	g.resolved = true
	g.history = []Screen{{Destination: g.initial}}

	g.log.InfoContext(ctx, "Initial destination is resolved",
		"destination", g.initial,
		"hasSession", hasSession)

	return g.initial
}

func (g *Gate) State() State {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.resolved {
		return StateResolving
	}
	return stateOf(g.current().Destination)
}

func (g *Gate) Current() Screen {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.resolved {
		return Screen{}
	}
	return g.current()
}

func (g *Gate) History() []Screen {
	g.mu.Lock()
	defer g.mu.Unlock()

	return slices.Clone(g.history)
}

// CanNavigate reports whether Navigate to d would be accepted.
func (g *Gate) CanNavigate(d domain.Destination) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.resolved {
		return false
	}
	mode, ok := edges[edge{g.current().Destination, d}]
	return ok && mode == modeAny
}

// Navigate pushes d on top of the history. It panics with *TransitionError
// when the edge does not exist.
func (g *Gate) Navigate(ctx context.Context, d domain.Destination, params domain.Params) {
	g.transition(ctx, Screen{Destination: d, Params: params}, false)
}

// Replace moves to d and drops the whole history, so Back cannot return to a
// screen from before the move. Leaving Settings for Login ends the session.
func (g *Gate) Replace(ctx context.Context, d domain.Destination) {
	g.transition(ctx, Screen{Destination: d}, true)
}

// Logout ends the session and replaces Settings with Login.
func (g *Gate) Logout(ctx context.Context) {
	g.Replace(ctx, domain.DestinationLogin)
}

// Back pops the current screen. It returns false when there is nothing to
// return to.
func (g *Gate) Back() bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if len(g.history) < 2 {
		return false
	}

	g.history = g.history[:len(g.history)-1]

	return true
}

func (g *Gate) transition(ctx context.Context, to Screen, replace bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.resolved {
		panic(&TransitionError{To: to.Destination, Replace: replace})
	}

	from := g.current().Destination

	mode, ok := edges[edge{from, to.Destination}]
	if !ok || (mode == modeReplace && !replace) {
		panic(&TransitionError{From: from, To: to.Destination, Replace: replace})
	}

	if from == domain.DestinationSettings && to.Destination == domain.DestinationLogin {
		// Logout is best effort: a failed clear is logged and the user still
		// lands on Login.
		if err := g.sessions.EndSession(ctx); err != nil {
			g.log.ErrorContext(ctx, "Failed to end session on logout",
				"error", err)
		}
	}

	if replace {
		g.history = []Screen{to}
	} else {
		g.history = append(g.history, to)
	}

	g.log.DebugContext(ctx, "Screen is changed",
		"from", from,
		"to", to.Destination,
		"replace", replace)
}

func (g *Gate) current() Screen {
	return g.history[len(g.history)-1]
}
