package validation

import (
	"errors"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formdoc/pkg/i18n"
	"github.com/goliatone/go-formdoc/pkg/model"
	"github.com/goliatone/go-formdoc/pkg/schema"
)

const (
	// MessageKey is the catalog key of the summary shown above missing fields.
	MessageKey = "validation.required"
	// DefaultMessage is used when the catalog does not define MessageKey.
	DefaultMessage = "Bitte Pflichtfelder ausfüllen."
)

// Issue describes a single missing or invalid field.
type Issue struct {
	Field   string `json:"field"`
	Label   string `json:"label"`
	Message string `json:"message"`
}

// Result captures validation outcomes.
type Result struct {
	Valid  bool    `json:"valid"`
	Issues []Issue `json:"issues,omitempty"`
}

// FieldErrors maps field names to their issue message.
func (r Result) FieldErrors() map[string]string {
	if len(r.Issues) == 0 {
		return nil
	}
	out := make(map[string]string, len(r.Issues))
	for _, issue := range r.Issues {
		out[issue.Field] = issue.Message
	}
	return out
}

// Labels returns the labels of the failing fields in form order.
func (r Result) Labels() []string {
	out := make([]string, 0, len(r.Issues))
	for _, issue := range r.Issues {
		out = append(out, issue.Label)
	}
	return out
}

// Message renders the localized summary followed by one "- label" line per
// failing field. It returns "" for a valid result.
func (r Result) Message(t i18n.Translator, locale string) string {
	if r.Valid || len(r.Issues) == 0 {
		return ""
	}
	header := i18n.Lookup(t, locale, MessageKey, DefaultMessage, nil)
	return header + "\n- " + strings.Join(r.Labels(), "\n- ")
}

// RequiredSchema projects the required fields of form onto an object schema:
// text-like fields need a non-empty string and checkboxes must be true.
func RequiredSchema(form model.FormModel) *openapi3.Schema {
	root := openapi3.NewObjectSchema()
	for _, field := range form.Fields() {
		if !field.Required {
			continue
		}
		if schema.IsBoolean(field.Type) {
			root.WithProperty(field.Name, openapi3.NewBoolSchema().WithEnum(true))
		} else {
			root.WithProperty(field.Name, openapi3.NewStringSchema().WithMinLength(1))
		}
		root.Required = append(root.Required, field.Name)
	}
	return root
}

// ValidateRequired checks values against the required fields of form.
// Whitespace-only strings count as empty.
func ValidateRequired(form model.FormModel, values map[string]any) Result {
	doc := make(map[string]any)
	for _, field := range form.Fields() {
		if !field.Required {
			continue
		}
		raw, ok := values[field.Name]
		if !ok || raw == nil {
			continue
		}
		if schema.IsBoolean(field.Type) {
			doc[field.Name] = model.Truthy(raw)
			continue
		}
		doc[field.Name] = model.Values{field.Name: raw}.String(field.Name)
	}

	err := RequiredSchema(form).VisitJSON(doc, openapi3.MultiErrors())
	if err == nil {
		return Result{Valid: true}
	}

	failing := make(map[string]string)
	for _, schemaErr := range flatten(err) {
		name := fieldFromError(schemaErr)
		if name == "" {
			continue
		}
		if _, seen := failing[name]; !seen {
			failing[name] = strings.TrimSpace(schemaErr.Reason)
		}
	}

	result := Result{Valid: true}
	for _, field := range form.Fields() {
		reason, ok := failing[field.Name]
		if !ok {
			continue
		}
		result.Valid = false
		result.Issues = append(result.Issues, Issue{
			Field:   field.Name,
			Label:   field.Label,
			Message: reason,
		})
	}
	return result
}

func flatten(err error) []*openapi3.SchemaError {
	var multi openapi3.MultiError
	if errors.As(err, &multi) {
		var out []*openapi3.SchemaError
		for _, inner := range multi {
			out = append(out, flatten(inner)...)
		}
		return out
	}
	var schemaErr *openapi3.SchemaError
	if errors.As(err, &schemaErr) {
		return []*openapi3.SchemaError{schemaErr}
	}
	return nil
}

func fieldFromError(err *openapi3.SchemaError) string {
	if pointer := err.JSONPointer(); len(pointer) > 0 {
		return pointer[0]
	}
	return ""
}
