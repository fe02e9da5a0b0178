package schema_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formdoc/pkg/schema"
)

func TestParse_JSONNormalizesTypes(t *testing.T) {
	raw := []byte(`{
	  "title": "Vollmacht",
	  "sections": [
	    {"key": "vg", "title_i18n": "section.vg", "fields": [
	      {"key": "name", "label_i18n": "field.name", "required": true},
	      {"key": "note", "type": "multiline"},
	      {"key": "agree", "type": "Boolean"},
	      {"key": "color", "type": "colour-picker"}
	    ]}
	  ],
	  "misc": {"stadt_default": "Potsdam", "signature_required": false}
	}`)

	doc, err := schema.Parse(raw, "schema.json")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	var types []string
	for _, field := range doc.Sections[0].Fields {
		types = append(types, field.Type)
	}
	want := []string{schema.TypeText, schema.TypeTextarea, schema.TypeCheckbox, schema.TypeText}
	if diff := cmp.Diff(want, types); diff != "" {
		t.Fatalf("field types mismatch (-want +got):\n%s", diff)
	}
	if doc.Misc.City() != "Potsdam" {
		t.Fatalf("expected city Potsdam, got %q", doc.Misc.City())
	}
	if doc.Misc.WantsSignature() {
		t.Fatalf("expected signature to be disabled")
	}
}

func TestParse_YAMLFallback(t *testing.T) {
	raw := []byte(`
title: Kontakt
sections:
  - key: person
    fields:
      - key: email
        type: email
        required: true
`)
	doc, err := schema.Parse(raw, "schema.yaml")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if doc.Title != "Kontakt" {
		t.Fatalf("unexpected title %q", doc.Title)
	}
	if got := doc.Sections[0].Fields[0]; got.Type != schema.TypeEmail || !got.Required {
		t.Fatalf("unexpected field %#v", got)
	}
	if doc.Misc.City() != schema.DefaultCity {
		t.Fatalf("expected default city, got %q", doc.Misc.City())
	}
	if !doc.Misc.WantsSignature() {
		t.Fatalf("expected signature to default to required")
	}
}

func TestParse_Errors(t *testing.T) {
	cases := map[string]struct {
		raw  string
		want string
	}{
		"empty":           {raw: "  ", want: "is empty"},
		"missing section": {raw: `{"sections":[{"fields":[]}]}`, want: "has no key"},
		"missing field":   {raw: `{"sections":[{"key":"a","fields":[{"type":"text"}]}]}`, want: "has no key"},
		"duplicate":       {raw: `{"sections":[{"key":"a","fields":[{"key":"x"},{"key":"x"}]}]}`, want: `duplicate field "a_x"`},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := schema.Parse([]byte(tc.raw), "schema.json")
			if err == nil {
				t.Fatalf("expected error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected error containing %q, got %v", tc.want, err)
			}
		})
	}
}

func TestParseLayout(t *testing.T) {
	raw := []byte(`{
	  "fields": [
	    {"name": "person_name", "type": "text", "x": 330, "y": 750, "w": 200, "h": 16},
	    {"type": "line", "page": 2, "x1": 10, "y1": 10, "x2": 100, "y2": 10},
	    {"type": "signature", "x": 330, "y": 135, "w": 150, "h": 30}
	  ]
	}`)

	layout, err := schema.ParseLayout(raw, "layout.json")
	if err != nil {
		t.Fatalf("parse layout: %v", err)
	}
	if !layout.Boxes() {
		t.Fatalf("expected boxes to default to true")
	}
	if layout.Fields[0].PageNumber() != 1 || layout.Fields[1].PageNumber() != 2 {
		t.Fatalf("unexpected page numbers")
	}

	if _, err := schema.ParseLayout([]byte(`{"fields":[{"type":"circle"}]}`), "layout.json"); err == nil {
		t.Fatalf("expected unknown type error")
	}
	if _, err := schema.ParseLayout([]byte(`{"fields":[{"type":"text"}]}`), "layout.json"); err == nil {
		t.Fatalf("expected missing name error")
	}
}
