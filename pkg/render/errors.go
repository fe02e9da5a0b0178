package render

import (
	"strings"

	"github.com/goliatone/go-formdoc/pkg/i18n"
	"github.com/goliatone/go-formdoc/pkg/model"
	"github.com/goliatone/go-formdoc/pkg/validation"
)

// Catalog key and default of the inline message shown next to a missing field.
const (
	FieldMessageKey     = "validation.field"
	DefaultFieldMessage = "Pflichtfeld"
)

// ErrorMapping splits an error payload into field-level and form-level
// messages keyed by field name.
type ErrorMapping struct {
	Fields map[string][]string
	Form   []string
}

// MergeFormErrors concatenates form-level messages, trimming whitespace and
// dropping duplicates while preserving order.
func MergeFormErrors(existing []string, extras ...string) []string {
	combined := make([]string, 0, len(existing)+len(extras))
	combined = append(combined, existing...)
	combined = append(combined, extras...)
	return normalizeMessages(combined)
}

// MapErrorPayload assigns messages to form fields. Keys may be plain field
// names or JSON pointers ("/person_name", "#/person_name"); anything that does
// not resolve to a field of form becomes a form-level message.
func MapErrorPayload(form model.FormModel, payload map[string][]string) ErrorMapping {
	mapping := ErrorMapping{Fields: make(map[string][]string)}
	for raw, messages := range payload {
		normalized := normalizeMessages(messages)
		if len(normalized) == 0 {
			continue
		}
		name := fieldFromPath(raw)
		if _, ok := form.Field(name); !ok {
			mapping.Form = append(mapping.Form, normalized...)
			continue
		}
		mapping.Fields[name] = append(mapping.Fields[name], normalized...)
	}
	if len(mapping.Fields) == 0 {
		mapping.Fields = nil
	}
	mapping.Form = normalizeMessages(mapping.Form)
	return mapping
}

// FromValidation converts a validation result into inline field errors plus
// the localized summary as a form-level message.
func FromValidation(result validation.Result, t i18n.Translator, locale string) ErrorMapping {
	if result.Valid || len(result.Issues) == 0 {
		return ErrorMapping{}
	}
	mapping := ErrorMapping{Fields: make(map[string][]string, len(result.Issues))}
	message := i18n.Lookup(t, locale, FieldMessageKey, DefaultFieldMessage, nil)
	for _, issue := range result.Issues {
		mapping.Fields[issue.Field] = append(mapping.Fields[issue.Field], message)
	}
	mapping.Form = normalizeMessages([]string{result.Message(t, locale)})
	return mapping
}

func fieldFromPath(raw string) string {
	clean := strings.TrimSpace(raw)
	clean = strings.TrimPrefix(clean, "#")
	clean = strings.TrimPrefix(clean, "$.")
	clean = strings.Trim(clean, "/.")
	if idx := strings.IndexAny(clean, "/.["); idx >= 0 {
		clean = clean[:idx]
	}
	clean = strings.ReplaceAll(clean, "~1", "/")
	return strings.ReplaceAll(clean, "~0", "~")
}

func normalizeMessages(messages []string) []string {
	if len(messages) == 0 {
		return nil
	}
	out := make([]string, 0, len(messages))
	seen := make(map[string]struct{}, len(messages))
	for _, message := range messages {
		trimmed := strings.TrimSpace(message)
		if trimmed == "" {
			continue
		}
		if _, exists := seen[trimmed]; exists {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
