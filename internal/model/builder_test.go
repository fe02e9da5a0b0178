package model_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formdoc/internal/model"
	"github.com/goliatone/go-formdoc/pkg/i18n"
	"github.com/goliatone/go-formdoc/pkg/schema"
)

func sampleDocument() schema.Document {
	return schema.Document{
		Title: "Vollmacht",
		Sections: []schema.Section{
			{
				Key:       "vg",
				TitleI18n: "section.vg",
				Fields: []schema.Field{
					{Key: "name", Type: "text", LabelI18n: "vg.name", Required: true},
					{Key: "addr", Type: "textarea", Label: "Anschrift"},
				},
			},
			{
				Key: "consent",
				Fields: []schema.Field{
					{Key: "ok", Type: "checkbox", LabelI18n: "consent.ok", HelpI18n: "consent.help", Required: true},
					{Key: "channel", Type: "select", Options: []schema.Option{
						{Value: "mail", LabelI18n: "channel.mail"},
						{Value: "phone", Label: "Telefon"},
					}},
				},
			},
		},
	}
}

func TestBuilderLocalizesLabels(t *testing.T) {
	catalog := i18n.Catalog{
		"app.title":    "Power of attorney",
		"section.vg":   "Principal",
		"vg.name":      "Last name",
		"consent.ok":   "I agree",
		"channel.mail": "E-mail",
	}

	form, err := model.New(model.Options{}).Build("vollmacht", sampleDocument(), catalog, "en")
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	want := model.FormModel{
		Key:   "vollmacht",
		Name:  "Power of attorney",
		Title: "Vollmacht",
		Misc:  model.Misc{City: schema.DefaultCity, SignatureRequired: true},
		Sections: []model.Section{
			{
				Key:   "vg",
				Title: "Principal",
				Fields: []model.Field{
					{Name: "vg_name", Key: "name", Section: "vg", Type: schema.TypeText, Label: "Last name", Required: true},
					{Name: "vg_addr", Key: "addr", Section: "vg", Type: schema.TypeTextarea, Label: "Anschrift", Rows: 4},
				},
			},
			{
				Key:   "consent",
				Title: "consent",
				Fields: []model.Field{
					{Name: "consent_ok", Key: "ok", Section: "consent", Type: schema.TypeCheckbox, Label: "I agree", Required: true},
					{Name: "consent_channel", Key: "channel", Section: "consent", Type: schema.TypeSelect, Label: "channel", Options: []model.Option{
						{Value: "mail", Label: "E-mail"},
						{Value: "phone", Label: "Telefon"},
					}},
				},
			},
		},
	}

	if diff := cmp.Diff(want, form); diff != "" {
		t.Fatalf("form mismatch (-want +got):\n%s", diff)
	}
}

func TestBuilderNameFallsBackToTitleThenKey(t *testing.T) {
	builder := model.New(model.Options{})

	form, err := builder.Build("vollmacht", sampleDocument(), i18n.Catalog{}, "de")
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if form.Name != "Vollmacht" {
		t.Fatalf("expected schema title, got %q", form.Name)
	}

	form, err = builder.Build("kontakt", schema.Document{}, nil, "de")
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if form.Name != "kontakt" {
		t.Fatalf("expected key, got %q", form.Name)
	}
}

func TestBuilderRequiresKey(t *testing.T) {
	if _, err := model.New(model.Options{}).Build("  ", schema.Document{}, nil, "de"); err == nil {
		t.Fatal("expected error for empty key")
	}
}

func TestBuilderCustomLabeler(t *testing.T) {
	builder := model.New(model.Options{Labeler: func(key string) string { return "<" + key + ">" }})
	form, err := builder.Build("vollmacht", sampleDocument(), nil, "de")
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	field, ok := form.Field("vg_name")
	if !ok {
		t.Fatal("expected vg_name field")
	}
	if field.Label != "<name>" {
		t.Fatalf("unexpected label %q", field.Label)
	}
}
