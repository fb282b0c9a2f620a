package auth

import (
	"context"
	"log/slog"
	"strings"

	"feedgate/internal/domain"
)

// Provider is a credential backend. Rejections are returned as
// *ProviderError, anything else is treated as an unclassified failure.
type Provider interface {
	SignIn(ctx context.Context, email, password string) error
	SignUp(ctx context.Context, email, password string) error
}

type Gateway struct {
	provider Provider
	log      *slog.Logger
}

func NewGateway(provider Provider, log *slog.Logger) *Gateway {
	return &Gateway{provider: provider, log: log}
}

// Login returns the session for email on success, a *ValidationError when the
// form is rejected locally, or an *Error when the provider rejects it.
func (g *Gateway) Login(ctx context.Context, email, password string) (domain.Session, error) {
	email = strings.TrimSpace(email)

	if err := validateLogin(email); err != nil {
		return "", err
	}

	if err := g.provider.SignIn(ctx, email, password); err != nil {
		classified := Classify(err)
		g.log.WarnContext(ctx, "Login is rejected",
			"error", err,
			"kind", classified.Kind.String(),
			"email", email)

		return "", classified
	}

	g.log.InfoContext(ctx, "Login is accepted",
		"email", email)

	return domain.Session(email), nil
}

// Register creates a credential. It never creates a session.
func (g *Gateway) Register(ctx context.Context, email, password, confirmPassword string) error {
	email = strings.TrimSpace(email)

	if err := validateRegistration(email, password, confirmPassword); err != nil {
		return err
	}

	if err := g.provider.SignUp(ctx, email, password); err != nil {
		classified := Classify(err)
		g.log.WarnContext(ctx, "Registration is rejected",
			"error", err,
			"kind", classified.Kind.String(),
			"email", email)

		return classified
	}

	g.log.InfoContext(ctx, "Registration is accepted",
		"email", email)

	return nil
}
