package forms_test

import (
	"errors"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"
	"github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"

	"github.com/goliatone/go-formdoc/pkg/forms"
)

func sampleFS() fstest.MapFS {
	return fstest.MapFS{
		"forms/vollmacht/schema.json":  {Data: []byte(`{"title":"Vollmacht","sections":[{"key":"vg","fields":[{"key":"name","label_i18n":"vg.name"}]}]}`)},
		"forms/vollmacht/i18n.de.json": {Data: []byte(`{"app.title":"Vollmacht (DE)","vg.name":"Name"}`)},
		"forms/vollmacht/i18n.ar.json": {Data: []byte(`{"app.title":"توكيل"}`)},
		"forms/kontakt/schema.yaml":    {Data: []byte("title: Kontakt\nsections:\n  - key: person\n    fields:\n      - key: email\n        type: email\n")},
		"forms/kontakt/layout.json":    {Data: []byte(`{"fields":[{"name":"person_email","x":10,"y":10,"w":100,"h":16}]}`)},
		"forms/broken/schema.json":     {Data: []byte(`{"sections":[{"fields":[]}]}`)},
		"forms/assets/readme.txt":      {Data: []byte("no schema here")},
		"forms/notes.txt":              {Data: []byte("ignored")},
	}
}

func TestDiscover(t *testing.T) {
	got, err := forms.Discover(sampleFS(), "forms")

	var keys []string
	for _, form := range got {
		keys = append(keys, form.Key)
	}
	if diff := cmp.Diff([]string{"kontakt", "vollmacht"}, keys); diff != "" {
		t.Fatalf("keys mismatch (-want +got):\n%s", diff)
	}

	var merr *multierror.Error
	if !errors.As(err, &merr) || len(merr.Errors) != 1 {
		t.Fatalf("expected one aggregated error, got %v", err)
	}
	if !strings.Contains(merr.Errors[0].Error(), "broken") {
		t.Fatalf("expected error to name the form, got %v", merr.Errors[0])
	}

	kontakt := got[0]
	if kontakt.Layout == nil || len(kontakt.Layout.Fields) != 1 {
		t.Fatalf("expected layout for kontakt, got %+v", kontakt.Layout)
	}
	if kontakt.Name("de") != "Kontakt" {
		t.Fatalf("expected schema title as name, got %q", kontakt.Name("de"))
	}

	vollmacht := got[1]
	if vollmacht.Layout != nil {
		t.Fatal("vollmacht has no layout")
	}
	if diff := cmp.Diff([]string{"ar", "de"}, vollmacht.Languages()); diff != "" {
		t.Fatalf("languages mismatch (-want +got):\n%s", diff)
	}
	if got := vollmacht.Name("en"); got != "Vollmacht (DE)" {
		t.Fatalf("expected de fallback for en, got %q", got)
	}
	if got := vollmacht.Name("ar"); got != "توكيل" {
		t.Fatalf("expected arabic title, got %q", got)
	}
}

func TestDiscoverMissingRoot(t *testing.T) {
	if _, err := forms.Discover(fstest.MapFS{}, "forms"); err == nil {
		t.Fatal("expected error for missing root")
	}
}

func TestPDFCatalogFallsBackToUILanguage(t *testing.T) {
	got, _ := forms.Discover(sampleFS(), "forms")
	vollmacht := got[1]

	catalog, lang := vollmacht.PDFCatalog("de", "ar")
	if lang != "de" || catalog.Get("vg.name", "") != "Name" {
		t.Fatalf("expected german catalog, got %q", lang)
	}

	fs := fstest.MapFS{
		"f/only/schema.json":  {Data: []byte(`{"sections":[]}`)},
		"f/only/i18n.en.json": {Data: []byte(`{"app.title":"Only English"}`)},
	}
	only, err := forms.Discover(fs, "f")
	if err != nil {
		t.Fatalf("discover: %v", err)
	}
	if _, lang := only[0].PDFCatalog("de", "ar"); lang != "en" {
		t.Fatalf("expected UI fallback to en, got %q", lang)
	}
}

func TestLoaderReload(t *testing.T) {
	logger, hook := logtest.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	reg := forms.NewRegistry()

	loader := &forms.Loader{FS: sampleFS(), Root: "forms", Registry: reg, Logger: logger}
	if err := loader.Reload(); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if diff := cmp.Diff([]string{"kontakt", "vollmacht"}, reg.List()); diff != "" {
		t.Fatalf("registry mismatch (-want +got):\n%s", diff)
	}

	var warned bool
	for _, entry := range hook.AllEntries() {
		if entry.Level == logrus.WarnLevel && entry.Message == "form skipped" {
			warned = true
		}
	}
	if !warned {
		t.Fatal("expected a warning for the broken form")
	}

	empty := &forms.Loader{FS: fstest.MapFS{"forms/x/readme.txt": {Data: []byte("x")}}, Root: "forms", Registry: reg}
	if err := empty.Reload(); err == nil {
		t.Fatal("expected error when no forms load")
	}
	if reg.Len() != 2 {
		t.Fatal("registry must be kept when a reload finds nothing")
	}
}
