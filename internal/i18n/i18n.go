package i18n

import (
	"fmt"
	"strings"
	"sync"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

var (
	English = language.English
	Spanish = language.Spanish

	supported = []language.Tag{English, Spanish}
	matcher   = language.NewMatcher(supported)

	builtin = mustBuildCatalog(translations)
)

// Localizer resolves message keys in the current language. Unknown keys
// resolve to themselves.
type Localizer struct {
	catalog catalog.Catalog

	mu      sync.RWMutex
	tag     language.Tag
	printer *message.Printer
}

func New(lang string) *Localizer {
	return newLocalizer(builtin, lang)
}

func newLocalizer(cat catalog.Catalog, lang string) *Localizer {
	l := &Localizer{catalog: cat}
	l.SetLanguage(lang)

	return l
}

// buildCatalog registers every text as a literal message, so a % in a text
// is printed as is.
func buildCatalog(messages map[language.Tag]map[string]string) (*catalog.Builder, error) {
	b := catalog.NewBuilder(catalog.Fallback(English))

	for tag, texts := range messages {
		for key, text := range texts {
			if err := b.SetString(tag, key, strings.ReplaceAll(text, "%", "%%")); err != nil {
				return nil, fmt.Errorf("set message (language = %s, key = %q): %w", tag, key, err)
			}
		}
	}

	return b, nil
}

func mustBuildCatalog(messages map[language.Tag]map[string]string) *catalog.Builder {
	b, err := buildCatalog(messages)
	if err != nil {
		panic(err)
	}
	return b
}

// SetLanguage switches the language and returns the one picked. Anything
// unsupported falls back to English.
func (l *Localizer) SetLanguage(lang string) language.Tag {
	tag := English

	if parsed, err := language.Parse(lang); err == nil {
		_, idx, confidence := matcher.Match(parsed)
		if confidence != language.No {
			tag = supported[idx]
		}
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.tag = tag
	l.printer = message.NewPrinter(tag, message.Catalog(l.catalog))

	return tag
}

func (l *Localizer) Language() language.Tag {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return l.tag
}

func (l *Localizer) T(key string) string {
	l.mu.RLock()
	p := l.printer
	l.mu.RUnlock()

	return p.Sprintf(key)
}
