package formdoc_test

import (
	"context"
	"errors"
	"io/fs"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	logtest "github.com/sirupsen/logrus/hooks/test"

	"github.com/goliatone/go-formdoc"
	"github.com/goliatone/go-formdoc/pkg/orchestrator"
	"github.com/goliatone/go-formdoc/pkg/signature"
	"github.com/goliatone/go-formdoc/pkg/testsupport"
)

func bundled(t *testing.T) *orchestrator.Orchestrator {
	t.Helper()
	logger, _ := logtest.NewNullLogger()
	registry, err := formdoc.LoadForms("", logger)
	if err != nil {
		t.Fatalf("load forms: %v", err)
	}
	return formdoc.NewOrchestrator(orchestrator.WithForms(registry), orchestrator.WithLogger(logger))
}

func TestLoadForms_Bundled(t *testing.T) {
	gen := bundled(t)

	want := []string{"kontakt", "obdachlosigkeit", "vollmacht", "wohnsitz_aenderung"}
	if diff := cmp.Diff(want, gen.Forms().List()); diff != "" {
		t.Fatalf("bundled forms mismatch (-want +got):\n%s", diff)
	}
	for _, key := range want {
		form, err := gen.Forms().Get(key)
		if err != nil {
			t.Fatalf("get %s: %v", key, err)
		}
		if diff := cmp.Diff([]string{"ar", "de", "en"}, form.Languages()); diff != "" {
			t.Fatalf("%s languages mismatch (-want +got):\n%s", key, diff)
		}
	}

	kontakt, _ := gen.Forms().Get("kontakt")
	if kontakt.Layout == nil {
		t.Fatal("expected kontakt layout to be loaded")
	}
}

func TestLoadForms_MissingDir(t *testing.T) {
	logger, _ := logtest.NewNullLogger()
	if _, err := formdoc.LoadForms(t.TempDir(), logger); err == nil {
		t.Fatal("expected error for a directory without forms")
	}
}

func TestGeneratePDF_BundledForms(t *testing.T) {
	gen := bundled(t)
	sig, err := signature.FromUpload("unterschrift.png", testsupport.SignaturePNG(t, 120, 40))
	if err != nil {
		t.Fatalf("signature: %v", err)
	}

	cases := map[string]struct {
		values map[string]any
		texts  []string
		images int
	}{
		"vollmacht": {
			values: map[string]any{
				"vg_name": "Müller", "vg_vorname": "Jürgen", "vg_geb": "01.01.1980", "vg_addr": "Hauptstraße 1\n10115 Berlin",
				"b_name": "Muster", "b_vorname": "Max", "b_geb": "02.02.1982", "b_addr": "Nebenstr. 2\n10115 Berlin",
			},
			texts:  []string{"Müller", "Jürgen", "Hauptstraße 1", "bevollmächtige"},
			images: 1,
		},
		"wohnsitz_aenderung": {
			values: map[string]any{
				"person_name": "Erika Schäfer", "person_geb": "01.01.1980",
				"person_alt_addr": "Gartenstraße 1", "person_neu_addr": "Nebenstr. 2",
			},
			texts:  []string{"Erika Schäfer", "Gartenstraße 1"},
			images: 1,
		},
		"obdachlosigkeit": {
			values: map[string]any{
				"person_name": "Jörg Weiß", "person_geb": "01.01.1980",
				"wechsel_checked": true, "wechsel_gruende": "Lärm",
			},
			texts:  []string{"Jörg Weiß", "Angehörige", "Lärm"},
			images: 1,
		},
		"kontakt": {
			values: map[string]any{
				"person_name": "Erika Müller", "person_email": "erika@example.org", "person_ok": true,
				"person_anrede": "frau", "person_nachricht": "Grüße",
			},
			texts: []string{"Erika Müller", "erika@example.org", "Grüße"},
		},
	}
	for key, tc := range cases {
		t.Run(key, func(t *testing.T) {
			out, err := formdoc.GeneratePDF(context.Background(), gen, key, "en", formdoc.RenderOptions{
				Values:    tc.values,
				Signature: sig,
			})
			if err != nil {
				t.Fatalf("generate: %v", err)
			}
			testsupport.AssertPDF(t, out)
			testsupport.AssertPDFText(t, out, tc.texts...)
			// kontakt does not take a signature
			if got := testsupport.PDFImageCount(out); got != tc.images {
				t.Fatalf("expected %d images, got %d", tc.images, got)
			}
		})
	}
}

func TestGeneratePDF_ValidationError(t *testing.T) {
	gen := bundled(t)

	_, err := formdoc.GeneratePDF(context.Background(), gen, "kontakt", "en", formdoc.RenderOptions{})
	var verr *orchestrator.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if diff := cmp.Diff([]string{"Name", "Email", "I agree to the processing of my details."}, verr.Result.Labels()); diff != "" {
		t.Fatalf("labels mismatch (-want +got):\n%s", diff)
	}
}

func TestGenerateHTML(t *testing.T) {
	gen := bundled(t)

	out, err := formdoc.GenerateHTML(context.Background(), gen, "obdachlosigkeit", "ar", formdoc.RenderOptions{})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	html := string(out)
	for _, fragment := range []string{`dir="rtl"`, "تغيير المأوى", `name="wechsel_gruende"`} {
		if !strings.Contains(html, fragment) {
			t.Fatalf("expected %q in page", fragment)
		}
	}
}

func TestEmbeddedFS(t *testing.T) {
	if _, err := fs.Stat(formdoc.FormsFS(), "forms/vollmacht/schema.json"); err != nil {
		t.Fatalf("bundled schema missing: %v", err)
	}
	if _, err := fs.Stat(formdoc.AssetsFS(), "formdoc.css"); err != nil {
		t.Fatalf("stylesheet missing: %v", err)
	}
	entries, err := fs.ReadDir(formdoc.EmbeddedTemplates(), ".")
	if err != nil || len(entries) == 0 {
		t.Fatalf("expected embedded templates, got %v entries (err=%v)", len(entries), err)
	}
}
