package auth_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"feedgate/internal/auth"
)

type stubProvider struct {
	signInErr   error
	signUpErr   error
	signInCalls int
	signUpCalls int
}

func (s *stubProvider) SignIn(_ context.Context, _, _ string) error {
	s.signInCalls++
	return s.signInErr
}

func (s *stubProvider) SignUp(_ context.Context, _, _ string) error {
	s.signUpCalls++
	return s.signUpErr
}

func newGateway(p auth.Provider) *auth.Gateway {
	return auth.NewGateway(p, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestValidPassword(t *testing.T) {
	cases := map[string]bool{
		"abc123":  false,
		"Abc123":  true,
		"ABCDEFG": false,
		"Ab1":     false,
		"":        false,
		"Ünïc0de": false,
		"Éabc12":  false,
		"Abcdef٣": false,
		"ÉAbc12":  true,
	}

	for password, want := range cases {
		if got := auth.ValidPassword(password); got != want {
			t.Fatalf("ValidPassword(%q) = %v, want %v", password, got, want)
		}
	}
}

func TestValidEmail(t *testing.T) {
	cases := map[string]bool{
		"a@b.com":         true,
		"first.last@x.io": true,
		"a@b":             false,
		"ab.com":          false,
		"":                false,
	}

	for email, want := range cases {
		if got := auth.ValidEmail(email); got != want {
			t.Fatalf("ValidEmail(%q) = %v, want %v", email, got, want)
		}
	}
}

func TestLoginSuccessReturnsSession(t *testing.T) {
	p := &stubProvider{}

	session, err := newGateway(p).Login(context.Background(), " a@b.com ", "Secret1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if session != "a@b.com" {
		t.Fatalf("unexpected session: %q", session)
	}
	if p.signInCalls != 1 {
		t.Fatalf("expected one provider call, got %d", p.signInCalls)
	}
}

func TestLoginInvalidEmailSkipsProvider(t *testing.T) {
	p := &stubProvider{}

	_, err := newGateway(p).Login(context.Background(), "not-an-email", "Secret1")

	var validationErr *auth.ValidationError
	if !errors.As(err, &validationErr) || validationErr.Kind != auth.ValidationInvalidEmail {
		t.Fatalf("expected invalid email validation error, got %v", err)
	}
	if p.signInCalls != 0 {
		t.Fatalf("expected no provider call, got %d", p.signInCalls)
	}
}

func TestLoginClassifiesUserNotFound(t *testing.T) {
	p := &stubProvider{signInErr: &auth.ProviderError{Code: "auth/user-not-found"}}

	_, err := newGateway(p).Login(context.Background(), "a@b.com", "Secret1")

	var authErr *auth.Error
	if !errors.As(err, &authErr) {
		t.Fatalf("expected *auth.Error, got %v", err)
	}
	if authErr.Kind != auth.KindUserNotFound {
		t.Fatalf("expected UserNotFound, got %s", authErr.Kind)
	}
}

func TestClassify(t *testing.T) {
	cases := []struct {
		err  error
		want auth.Kind
	}{
		{&auth.ProviderError{Code: "auth/wrong-password"}, auth.KindWrongPassword},
		{&auth.ProviderError{Code: "user-not-found"}, auth.KindUserNotFound},
		{&auth.ProviderError{Code: "auth/invalid-email"}, auth.KindInvalidEmail},
		{&auth.ProviderError{Code: "auth/email-already-in-use"}, auth.KindEmailInUse},
		{&auth.ProviderError{Code: "auth/too-many-requests", Message: "slow down"}, auth.KindOther},
		{errors.New("connection reset"), auth.KindOther},
	}

	for _, tc := range cases {
		if got := auth.Classify(tc.err); got.Kind != tc.want {
			t.Fatalf("Classify(%v) = %s, want %s", tc.err, got.Kind, tc.want)
		}
	}

	other := auth.Classify(&auth.ProviderError{Code: "auth/too-many-requests", Message: "slow down"})
	if other.Message != "slow down" {
		t.Fatalf("expected provider message to be kept, got %q", other.Message)
	}

	if auth.Classify(nil) != nil {
		t.Fatalf("expected nil for nil error")
	}
}

func TestRegisterValidation(t *testing.T) {
	cases := []struct {
		name     string
		email    string
		password string
		confirm  string
		want     auth.ValidationKind
	}{
		{"bad email", "nope", "Abc123", "Abc123", auth.ValidationInvalidEmail},
		{"no uppercase", "a@b.com", "abc123", "abc123", auth.ValidationWeakPassword},
		{"no digit", "a@b.com", "ABCDEFG", "ABCDEFG", auth.ValidationWeakPassword},
		{"mismatch", "a@b.com", "Abc123", "Abc124", auth.ValidationPasswordMismatch},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := &stubProvider{}

			err := newGateway(p).Register(context.Background(), tc.email, tc.password, tc.confirm)

			var validationErr *auth.ValidationError
			if !errors.As(err, &validationErr) || validationErr.Kind != tc.want {
				t.Fatalf("expected validation kind %d, got %v", tc.want, err)
			}
			if p.signUpCalls != 0 {
				t.Fatalf("expected no provider call, got %d", p.signUpCalls)
			}
		})
	}
}

func TestRegisterClassifiesEmailInUse(t *testing.T) {
	p := &stubProvider{signUpErr: &auth.ProviderError{Code: "auth/email-already-in-use"}}

	err := newGateway(p).Register(context.Background(), "a@b.com", "Abc123", "Abc123")

	var authErr *auth.Error
	if !errors.As(err, &authErr) || authErr.Kind != auth.KindEmailInUse {
		t.Fatalf("expected EmailInUse, got %v", err)
	}
}
