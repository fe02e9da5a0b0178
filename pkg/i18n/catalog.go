package i18n

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrMissingTranslator is reported when a lookup runs without a translator.
	ErrMissingTranslator = errors.New("i18n: translator is nil")
	// ErrMissingKey is reported when no catalog defines the requested key.
	ErrMissingKey = errors.New("i18n: key not found")
)

// FallbackOrder lists the languages tried after the preferred one.
var FallbackOrder = []string{"en", "de", "ar"}

// Translator resolves a key for a locale.
type Translator interface {
	Translate(locale, key string, args ...any) (string, error)
}

// MissingTranslationHandler decides what to show when a key cannot be
// resolved. args carries an optional map with a "default" entry.
type MissingTranslationHandler func(locale, key string, args []any, err error) string

// Catalog is a flat key to message map for one language.
type Catalog map[string]string

// Get returns the message for key, or fallback when the key is absent or blank.
func (c Catalog) Get(key, fallback string) string {
	if c != nil {
		if msg, ok := c[key]; ok && strings.TrimSpace(msg) != "" {
			return msg
		}
	}
	return fallback
}

// Translate implements Translator, ignoring the locale.
func (c Catalog) Translate(_ string, key string, args ...any) (string, error) {
	msg, ok := c[key]
	if !ok || strings.TrimSpace(msg) == "" {
		return "", fmt.Errorf("%w: %s", ErrMissingKey, key)
	}
	return format(msg, args), nil
}

// Bundle groups the catalogs of one form by language.
type Bundle struct {
	catalogs map[string]Catalog
}

// NewBundle wraps the provided catalogs. Language codes are lower-cased.
func NewBundle(catalogs map[string]Catalog) *Bundle {
	b := &Bundle{catalogs: make(map[string]Catalog, len(catalogs))}
	for lang, catalog := range catalogs {
		lang = normalizeLang(lang)
		if lang == "" {
			continue
		}
		b.catalogs[lang] = catalog
	}
	return b
}

// Languages returns the available language codes sorted alphabetically.
func (b *Bundle) Languages() []string {
	if b == nil {
		return nil
	}
	out := make([]string, 0, len(b.catalogs))
	for lang := range b.catalogs {
		out = append(out, lang)
	}
	sort.Strings(out)
	return out
}

// Has reports whether a catalog exists for lang.
func (b *Bundle) Has(lang string) bool {
	if b == nil {
		return false
	}
	_, ok := b.catalogs[normalizeLang(lang)]
	return ok
}

// Catalog picks the catalog for preferred, then walks FallbackOrder and
// finally the first available language. The chosen language is returned with
// the catalog; both are empty when the bundle has no catalogs.
func (b *Bundle) Catalog(preferred string) (Catalog, string) {
	if b == nil || len(b.catalogs) == 0 {
		return Catalog{}, ""
	}
	candidates := append([]string{normalizeLang(preferred)}, FallbackOrder...)
	for _, lang := range candidates {
		if catalog, ok := b.catalogs[lang]; ok {
			return catalog, lang
		}
	}
	first := b.Languages()[0]
	return b.catalogs[first], first
}

// Exact returns the catalog for lang without falling back.
func (b *Bundle) Exact(lang string) (Catalog, bool) {
	if b == nil {
		return nil, false
	}
	catalog, ok := b.catalogs[normalizeLang(lang)]
	return catalog, ok
}

// Translate implements Translator using the fallback chain of Catalog.
func (b *Bundle) Translate(locale, key string, args ...any) (string, error) {
	catalog, _ := b.Catalog(locale)
	return catalog.Translate(locale, key, args...)
}

// Lookup resolves key through t, falling back to fallback and finally to the
// key itself. onMissing may be nil.
func Lookup(t Translator, locale, key, fallback string, onMissing MissingTranslationHandler) string {
	key = strings.TrimSpace(key)
	if key == "" {
		return fallback
	}

	var err error
	if t == nil {
		err = ErrMissingTranslator
	} else {
		var msg string
		msg, err = t.Translate(locale, key)
		if err == nil && strings.TrimSpace(msg) != "" {
			return msg
		}
	}

	if onMissing != nil {
		return onMissing(locale, key, []any{map[string]any{"default": fallback}}, err)
	}
	return MissingDefault(locale, key, []any{map[string]any{"default": fallback}}, err)
}

// MissingDefault returns the "default" argument when present, else the key.
func MissingDefault(_ string, key string, args []any, _ error) string {
	for _, arg := range args {
		if values, ok := arg.(map[string]any); ok {
			if fallback, ok := values["default"].(string); ok && strings.TrimSpace(fallback) != "" {
				return fallback
			}
		}
	}
	return key
}

func format(msg string, args []any) string {
	if len(args) == 0 || !strings.Contains(msg, "%") {
		return msg
	}
	return fmt.Sprintf(msg, args...)
}

func normalizeLang(lang string) string {
	lang = strings.ToLower(strings.TrimSpace(lang))
	if idx := strings.IndexAny(lang, "-_"); idx > 0 {
		lang = lang[:idx]
	}
	return lang
}
