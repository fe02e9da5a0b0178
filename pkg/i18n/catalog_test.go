package i18n_test

import (
	"errors"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formdoc/pkg/i18n"
)

func TestBundleCatalogFallback(t *testing.T) {
	bundle := i18n.NewBundle(map[string]i18n.Catalog{
		"de": {"app.title": "Vollmacht"},
		"AR": {"app.title": "توكيل"},
	})

	tests := []struct {
		preferred string
		wantLang  string
	}{
		{preferred: "ar", wantLang: "ar"},
		{preferred: "de-DE", wantLang: "de"},
		{preferred: "en", wantLang: "de"},
		{preferred: "fr", wantLang: "de"},
		{preferred: "", wantLang: "de"},
	}
	for _, tt := range tests {
		_, lang := bundle.Catalog(tt.preferred)
		if lang != tt.wantLang {
			t.Errorf("Catalog(%q) lang = %q, want %q", tt.preferred, lang, tt.wantLang)
		}
	}

	if diff := cmp.Diff([]string{"ar", "de"}, bundle.Languages()); diff != "" {
		t.Fatalf("languages mismatch (-want +got):\n%s", diff)
	}
}

func TestBundleCatalogFirstAvailable(t *testing.T) {
	bundle := i18n.NewBundle(map[string]i18n.Catalog{
		"tr": {"k": "tr"},
		"fr": {"k": "fr"},
	})
	catalog, lang := bundle.Catalog("en")
	if lang != "fr" || catalog.Get("k", "") != "fr" {
		t.Fatalf("expected first sorted language fr, got %q", lang)
	}

	empty := i18n.NewBundle(nil)
	if _, lang := empty.Catalog("de"); lang != "" {
		t.Fatalf("expected no language for empty bundle, got %q", lang)
	}
}

func TestLookupFallbacks(t *testing.T) {
	catalog := i18n.Catalog{"field.name": "Name", "blank": "  "}

	if got := i18n.Lookup(catalog, "de", "field.name", "x", nil); got != "Name" {
		t.Fatalf("expected catalog value, got %q", got)
	}
	if got := i18n.Lookup(catalog, "de", "blank", "Fallback", nil); got != "Fallback" {
		t.Fatalf("expected fallback for blank message, got %q", got)
	}
	if got := i18n.Lookup(catalog, "de", "missing", "", nil); got != "missing" {
		t.Fatalf("expected key when nothing else is available, got %q", got)
	}
	if got := i18n.Lookup(nil, "de", "missing", "Label", nil); got != "Label" {
		t.Fatalf("expected fallback without translator, got %q", got)
	}

	var gotErr error
	handler := func(locale, key string, args []any, err error) string {
		gotErr = err
		return "[" + locale + ":" + key + "]"
	}
	if got := i18n.Lookup(catalog, "ar", "missing", "", handler); got != "[ar:missing]" {
		t.Fatalf("unexpected handler output %q", got)
	}
	if !errors.Is(gotErr, i18n.ErrMissingKey) {
		t.Fatalf("expected ErrMissingKey, got %v", gotErr)
	}
}

func TestCatalogTranslateFormatsArgs(t *testing.T) {
	catalog := i18n.Catalog{"upload.limit": "max %s"}
	got, err := catalog.Translate("de", "upload.limit", "2 MiB")
	if err != nil {
		t.Fatalf("translate: %v", err)
	}
	if got != "max 2 MiB" {
		t.Fatalf("unexpected message %q", got)
	}
}

func TestLoadFS(t *testing.T) {
	fsys := fstest.MapFS{
		"forms/kontakt/i18n.de.json": {Data: []byte(`{"app.title":"Kontakt"}`)},
		"forms/kontakt/i18n.en.json": {Data: []byte(`{"app.title":"Contact"}`)},
		"forms/kontakt/schema.json":  {Data: []byte(`{}`)},
		"forms/kontakt/i18n..json":   {Data: []byte(`{}`)},
	}

	bundle, err := i18n.LoadFS(fsys, "forms/kontakt")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff([]string{"de", "en"}, bundle.Languages()); diff != "" {
		t.Fatalf("languages mismatch (-want +got):\n%s", diff)
	}
	catalog, _ := bundle.Catalog("en")
	if got := catalog.Get("app.title", ""); got != "Contact" {
		t.Fatalf("unexpected title %q", got)
	}
}

func TestLoadFSInvalidJSON(t *testing.T) {
	fsys := fstest.MapFS{
		"f/i18n.de.json": {Data: []byte(`{`)},
	}
	if _, err := i18n.LoadFS(fsys, "f"); err == nil {
		t.Fatal("expected parse error")
	}
}
