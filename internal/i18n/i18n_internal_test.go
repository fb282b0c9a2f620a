package i18n

import (
	"testing"

	"golang.org/x/text/language"
)

func TestPercentSignIsPrintedLiterally(t *testing.T) {
	cat, err := buildCatalog(map[language.Tag]map[string]string{
		English: {"progress": "100% done"},
		Spanish: {"progress": "100 %s hecho"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	l := newLocalizer(cat, "en")
	if got := l.T("progress"); got != "100% done" {
		t.Fatalf("unexpected English text: %q", got)
	}

	l.SetLanguage("es")
	if got := l.T("progress"); got != "100 %s hecho" {
		t.Fatalf("unexpected Spanish text: %q", got)
	}
}

func TestBuiltinTranslationsCoverEveryKey(t *testing.T) {
	for key := range translations[English] {
		if _, ok := translations[Spanish][key]; !ok {
			t.Fatalf("missing Spanish text for %q", key)
		}
	}
}
