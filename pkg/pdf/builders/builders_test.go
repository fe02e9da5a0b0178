package builders_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formdoc/pkg/i18n"
	"github.com/goliatone/go-formdoc/pkg/model"
	"github.com/goliatone/go-formdoc/pkg/pdf"
	"github.com/goliatone/go-formdoc/pkg/pdf/builders"
	"github.com/goliatone/go-formdoc/pkg/signature"
	"github.com/goliatone/go-formdoc/pkg/testsupport"
)

func TestNewRegistryRegistersBundledBuilders(t *testing.T) {
	reg := builders.NewRegistry()
	want := []string{"generic", "layout", "obdachlosigkeit", "vollmacht", "wohnsitz_aenderung"}
	if diff := cmp.Diff(want, reg.List()); diff != "" {
		t.Fatalf("builders mismatch (-want +got):\n%s", diff)
	}
	if err := builders.RegisterDefaults(reg); err == nil {
		t.Fatal("expected duplicate registration error")
	}
}

func TestBundledBuilders(t *testing.T) {
	sig := &signature.Signature{Data: testsupport.SignaturePNG(t, 240, 90), Meta: signature.Meta{Source: signature.SourceDraw}}
	created := time.Date(2025, 3, 4, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		build   pdf.BuilderFunc
		data    model.Values
		catalog i18n.Catalog
		texts   []string
		marks   int
	}{
		{
			name:  "vollmacht",
			build: builders.BuildVollmacht,
			data: model.Values{
				"vg_name": "Müller", "vg_vorname": "Jürgen", "vg_geb": "01.01.1980", "vg_addr": "Hauptstraße 1, 10115 Berlin",
				"b_name": "Muster", "b_vorname": "Max", "b_geb": "02.02.1990", "b_addr": "Nebenstr. 2",
				"stadt": "München", "datum": "04.03.2025",
			},
			catalog: i18n.Catalog{"app.title": "Vollmacht"},
			texts:   []string{"Vollmacht", "Müller", "Jürgen", "Hauptstraße 1, 10115 Berlin", "bevollmächtige", "München, den 04.03.2025", "Unterschrift des Vollmachtgebers"},
		},
		{
			name:  "wohnsitz_aenderung",
			build: builders.BuildWohnsitzAenderung,
			data: model.Values{
				"person_name": "Erika Schäfer", "person_geb": "01.01.1980", "person_id_number": "L01X00T47",
				"person_customer_number": "123", "person_alt_addr": "Gartenstraße 1", "person_neu_addr": "Bahnhofsweg 2",
				"person_reason": "Umzug wegen Familienzuwachs", "stadt": "Köln", "datum": "04.03.2025",
			},
			catalog: i18n.Catalog{
				"person.name": "Name", "declaration.text": "Ich versichere die Richtigkeit meiner Angaben.",
				"field.ort": "Ort", "field.datum": "Datum", "signature.title": "Unterschrift", "signature.official": "Behörde",
			},
			texts: []string{
				"Antrag auf Wohnsitzänderung", "Erika Schäfer", "Gartenstraße 1", "Bahnhofsweg 2",
				"Ich versichere die Richtigkeit meiner Angaben.", "Ort: Köln    Datum: 04.03.2025", "Behörde",
			},
		},
		{
			name:  "obdachlosigkeit",
			build: builders.BuildObdachlosigkeit,
			data: model.Values{
				"person_name": "Jörg Weiß", "person_geb": "01.01.1980",
				"person_has_relatives": true, "person_relatives_text": "Tochter",
				"erst_checked": true, "erst_gruende": "Kündigung wegen Eigenbedarf",
				"verl_checked": "ja", "verl_endet_am": "31.03.2025",
				"wechsel_checked": false, "wechsel_gruende": "",
				"stadt": "Düsseldorf", "datum": "04.03.2025",
			},
			texts: []string{
				"Jörg Weiß", "Angehörige", "keine Angehörige", "Angehörige: Tochter", "Kündigung wegen Eigenbedarf",
				"Die Zuweisung für das Wohnheim endet/e am: 31.03.2025", "Ort: Düsseldorf    Datum: 04.03.2025",
			},
			marks: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := tt.build(context.Background(), pdf.Request{
				Form:      model.FormModel{Key: tt.name},
				Data:      tt.data,
				Catalog:   tt.catalog,
				Signature: sig,
				CreatedAt: created,
			})
			if err != nil {
				t.Fatalf("build: %v", err)
			}
			testsupport.AssertPDF(t, data)
			if testsupport.PDFPageCount(data) < 1 {
				t.Fatal("expected at least one page")
			}
			testsupport.AssertPDFText(t, data, tt.texts...)
			if got := testsupport.PDFImageCount(data); got != 1 {
				t.Fatalf("expected the signature image, got %d images", got)
			}
			if tt.marks > 0 {
				if got := strings.Count(testsupport.PDFContent(t, data), "(X)Tj"); got != tt.marks {
					t.Fatalf("expected %d checked boxes, got %d", tt.marks, got)
				}
			}
		})
	}
}

func TestBundledBuildersWithoutSignature(t *testing.T) {
	for _, build := range []pdf.BuilderFunc{builders.BuildVollmacht, builders.BuildWohnsitzAenderung, builders.BuildObdachlosigkeit} {
		data, err := build(context.Background(), pdf.Request{Data: model.Values{"person_name": "Özdemir"}})
		if err != nil {
			t.Fatalf("build: %v", err)
		}
		testsupport.AssertPDF(t, data)
		if got := testsupport.PDFImageCount(data); got != 0 {
			t.Fatalf("expected no images, got %d", got)
		}
	}
}

func TestBuildersStopOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for _, build := range []pdf.BuilderFunc{builders.BuildVollmacht, builders.BuildWohnsitzAenderung, builders.BuildObdachlosigkeit} {
		if _, err := build(ctx, pdf.Request{Data: model.Values{}}); err == nil {
			t.Fatal("expected context error")
		}
	}
}
