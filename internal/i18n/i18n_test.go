package i18n_test

import (
	"testing"

	"feedgate/internal/i18n"
)

func TestTranslatesCurrentLanguage(t *testing.T) {
	l := i18n.New("en")

	if got := l.T(i18n.KeyLogout); got != "Logout" {
		t.Fatalf("unexpected English text: %q", got)
	}

	if tag := l.SetLanguage("es"); tag != i18n.Spanish {
		t.Fatalf("expected Spanish, got %s", tag)
	}
	if got := l.T(i18n.KeyLogout); got != "Cerrar sesión" {
		t.Fatalf("unexpected Spanish text: %q", got)
	}
}

func TestUnsupportedLanguageFallsBackToEnglish(t *testing.T) {
	l := i18n.New("xx-invalid-!!")

	if l.Language() != i18n.English {
		t.Fatalf("expected English fallback, got %s", l.Language())
	}

	l.SetLanguage("ja")
	if l.Language() != i18n.English {
		t.Fatalf("expected English fallback for Japanese, got %s", l.Language())
	}
}

func TestRegionalVariantMatchesBaseLanguage(t *testing.T) {
	l := i18n.New("es-MX")

	if got := l.T(i18n.KeyRetry); got != "Reintentar" {
		t.Fatalf("expected Spanish text for es-MX, got %q", got)
	}
}

func TestUnknownKeyResolvesToItself(t *testing.T) {
	l := i18n.New("es")

	if got := l.T("missingKey"); got != "missingKey" {
		t.Fatalf("expected key itself, got %q", got)
	}
}
