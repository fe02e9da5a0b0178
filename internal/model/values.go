package model

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-formdoc/pkg/schema"
)

// Reserved value keys that sit outside the schema sections.
const (
	KeyCity = "stadt"
	KeyDate = "datum"
)

// Values is the normalized submission handed to validation and PDF builders.
type Values map[string]any

// String returns the value under key as a trimmed string. Booleans render as
// "true"/"false"; missing keys return "".
func (v Values) String(key string) string {
	raw, ok := v[key]
	if !ok || raw == nil {
		return ""
	}
	switch value := raw.(type) {
	case string:
		return strings.TrimSpace(value)
	case bool:
		if value {
			return "true"
		}
		return "false"
	default:
		return strings.TrimSpace(fmt.Sprint(value))
	}
}

// Bool reports whether the value under key is truthy.
func (v Values) Bool(key string) bool {
	return Truthy(v[key])
}

// aliases maps convenience keys to the section/field they mirror.
var aliases = []struct{ key, section, field string }{
	{"vg_name", "vg", "name"},
	{"vg_vorname", "vg", "vorname"},
	{"vg_geb", "vg", "geb"},
	{"vg_addr", "vg", "addr"},
	{"b_name", "b", "name"},
	{"b_vorname", "b", "vorname"},
	{"b_geb", "b", "geb"},
	{"b_addr", "b", "addr"},
	{"person_name", "person", "name"},
	{"person_email", "person", "email"},
}

// Normalize turns raw submitted values into Values for form. Checkbox fields
// become booleans, every other field a trimmed string. Keys that do not belong
// to the form are dropped except for the city and date entries. The city
// defaults to the form's configured city when it was not submitted at all.
func Normalize(form FormModel, raw map[string]any) Values {
	out := make(Values, len(raw)+len(aliases)+2)
	for _, field := range form.Fields() {
		value, ok := raw[field.Name]
		if schema.IsBoolean(field.Type) {
			out[field.Name] = ok && Truthy(value)
			continue
		}
		if !ok || value == nil {
			out[field.Name] = ""
			continue
		}
		out[field.Name] = strings.TrimSpace(toString(value))
	}

	city, ok := raw[KeyCity]
	if ok {
		out[KeyCity] = strings.TrimSpace(toString(city))
	} else {
		out[KeyCity] = form.Misc.City
	}
	out[KeyDate] = strings.TrimSpace(toString(raw[KeyDate]))

	for _, alias := range aliases {
		if _, exists := out[alias.key]; exists {
			continue
		}
		out[alias.key] = strings.TrimSpace(toString(raw[schema.FieldName(alias.section, alias.field)]))
	}
	return out
}

// Truthy reports whether v represents a checked box. Booleans are returned
// as-is; strings match 1, true, ja, yes, y, on, x, ✓ and checked.
func Truthy(v any) bool {
	switch value := v.(type) {
	case nil:
		return false
	case bool:
		return value
	case []string:
		return len(value) > 0 && Truthy(value[len(value)-1])
	}
	switch strings.ToLower(strings.TrimSpace(toString(v))) {
	case "1", "true", "ja", "yes", "y", "on", "x", "✓", "checked":
		return true
	}
	return false
}

func toString(v any) string {
	switch value := v.(type) {
	case nil:
		return ""
	case string:
		return value
	case []string:
		if len(value) == 0 {
			return ""
		}
		return value[0]
	default:
		return fmt.Sprint(value)
	}
}
