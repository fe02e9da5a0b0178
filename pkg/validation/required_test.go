package validation_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formdoc/pkg/i18n"
	"github.com/goliatone/go-formdoc/pkg/model"
	"github.com/goliatone/go-formdoc/pkg/validation"
)

func sampleForm() model.FormModel {
	return model.FormModel{
		Key: "vollmacht",
		Sections: []model.Section{
			{Key: "vg", Fields: []model.Field{
				{Name: "vg_name", Type: "text", Label: "Name", Required: true},
				{Name: "vg_addr", Type: "textarea", Label: "Anschrift"},
				{Name: "vg_geb", Type: "date", Label: "Geburtsdatum", Required: true},
			}},
			{Key: "ok", Fields: []model.Field{
				{Name: "ok_consent", Type: "checkbox", Label: "Einverstanden", Required: true},
			}},
		},
	}
}

func TestValidateRequiredReportsFieldsInFormOrder(t *testing.T) {
	result := validation.ValidateRequired(sampleForm(), map[string]any{
		"vg_name":    "   ",
		"ok_consent": false,
	})

	if result.Valid {
		t.Fatal("expected invalid result")
	}
	if diff := cmp.Diff([]string{"Name", "Geburtsdatum", "Einverstanden"}, result.Labels()); diff != "" {
		t.Fatalf("labels mismatch (-want +got):\n%s", diff)
	}
	for _, issue := range result.Issues {
		if issue.Message == "" {
			t.Errorf("expected message for %s", issue.Field)
		}
	}
}

func TestValidateRequiredAcceptsCompleteValues(t *testing.T) {
	result := validation.ValidateRequired(sampleForm(), map[string]any{
		"vg_name":    "Muster",
		"vg_geb":     "01.01.1990",
		"ok_consent": "on",
	})
	if !result.Valid || len(result.Issues) != 0 {
		t.Fatalf("expected valid result, got %+v", result)
	}
}

func TestValidateRequiredNoRequiredFields(t *testing.T) {
	form := model.FormModel{Sections: []model.Section{{Key: "a", Fields: []model.Field{{Name: "a_b", Type: "text"}}}}}
	if result := validation.ValidateRequired(form, nil); !result.Valid {
		t.Fatalf("expected valid result, got %+v", result)
	}
}

func TestResultMessage(t *testing.T) {
	result := validation.ValidateRequired(sampleForm(), map[string]any{"vg_geb": "x", "ok_consent": true})

	if got := result.Message(nil, "de"); got != "Bitte Pflichtfelder ausfüllen.\n- Name" {
		t.Fatalf("unexpected default message %q", got)
	}

	catalog := i18n.Catalog{validation.MessageKey: "Please fill in the required fields."}
	if got := result.Message(catalog, "en"); got != "Please fill in the required fields.\n- Name" {
		t.Fatalf("unexpected localized message %q", got)
	}

	if diff := cmp.Diff(map[string]string{"vg_name": result.Issues[0].Message}, result.FieldErrors()); diff != "" {
		t.Fatalf("field errors mismatch (-want +got):\n%s", diff)
	}

	if got := (validation.Result{Valid: true}).Message(nil, "de"); got != "" {
		t.Fatalf("expected empty message, got %q", got)
	}
}

func TestRequiredSchema(t *testing.T) {
	schema := validation.RequiredSchema(sampleForm())
	if diff := cmp.Diff([]string{"vg_name", "vg_geb", "ok_consent"}, schema.Required); diff != "" {
		t.Fatalf("required mismatch (-want +got):\n%s", diff)
	}
	if _, ok := schema.Properties["vg_addr"]; ok {
		t.Fatal("optional field must not be part of the schema")
	}
}
