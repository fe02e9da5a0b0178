package schema

import "strings"

// Canonical field types.
const (
	TypeText     = "text"
	TypeTextarea = "textarea"
	TypeCheckbox = "checkbox"
	TypeDate     = "date"
	TypeEmail    = "email"
	TypeSelect   = "select"
	TypeRadio    = "radio"
)

var typeAliases = map[string]string{
	"":          TypeText,
	"text":      TypeText,
	"input":     TypeText,
	"string":    TypeText,
	"textarea":  TypeTextarea,
	"multiline": TypeTextarea,
	"checkbox":  TypeCheckbox,
	"bool":      TypeCheckbox,
	"boolean":   TypeCheckbox,
	"date":      TypeDate,
	"email":     TypeEmail,
	"select":    TypeSelect,
	"radio":     TypeRadio,
}

// NormalizeType maps aliases onto the canonical field types. Unknown types
// degrade to a plain text input.
func NormalizeType(raw string) string {
	if canonical, ok := typeAliases[strings.ToLower(strings.TrimSpace(raw))]; ok {
		return canonical
	}
	return TypeText
}

// IsBoolean reports whether values of the given type are booleans.
func IsBoolean(fieldType string) bool {
	return NormalizeType(fieldType) == TypeCheckbox
}
