package render

import (
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/goliatone/go-formdoc/pkg/model"
	"github.com/goliatone/go-formdoc/pkg/schema"
)

// Names of the hidden inputs every HTML form carries.
const (
	HiddenLanguage      = "lang"
	HiddenForm          = "form"
	HiddenSignatureData = "signature_data"
)

// HiddenField represents a hidden form input emitted alongside the visible
// fields.
type HiddenField struct {
	Name  string
	Value string
}

// Hidden returns a HiddenField for an arbitrary name/value pair.
func Hidden(name string, value any) HiddenField {
	return HiddenField{
		Name:  strings.TrimSpace(name),
		Value: fmt.Sprint(value),
	}
}

// MergeHiddenFields returns a copy of base with the provided fields applied.
// Empty names are ignored; later fields win on name collisions.
func MergeHiddenFields(base map[string]string, fields ...HiddenField) map[string]string {
	out := make(map[string]string, len(base)+len(fields))
	for key, value := range base {
		if trimmed := strings.TrimSpace(key); trimmed != "" {
			out[trimmed] = value
		}
	}
	for _, field := range fields {
		if field.Name == "" {
			continue
		}
		out[field.Name] = field.Value
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// SortedHiddenFields returns the fields ordered by name for deterministic
// rendering.
func SortedHiddenFields(fields map[string]string) []HiddenField {
	if len(fields) == 0 {
		return nil
	}
	names := make([]string, 0, len(fields))
	for name := range fields {
		if strings.TrimSpace(name) != "" {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	result := make([]HiddenField, 0, len(names))
	for _, name := range names {
		result = append(result, HiddenField{Name: strings.TrimSpace(name), Value: fields[name]})
	}
	return result
}

// SubmittedValues extracts the raw values of form from a posted url.Values.
// Checkboxes that were not posted are reported as false; the place and date
// inputs are included when present.
func SubmittedValues(form model.FormModel, posted url.Values) map[string]any {
	out := make(map[string]any)
	for _, field := range form.Fields() {
		values, ok := posted[field.Name]
		if schema.IsBoolean(field.Type) {
			out[field.Name] = ok && model.Truthy(values)
			continue
		}
		if ok && len(values) > 0 {
			out[field.Name] = values[0]
		}
	}
	for _, key := range []string{model.KeyCity, model.KeyDate} {
		if values, ok := posted[key]; ok && len(values) > 0 {
			out[key] = values[0]
		}
	}
	return out
}
