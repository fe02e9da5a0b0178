package schema

import "strings"

// DefaultCity is used for the "Ort" input when the schema does not provide one.
const DefaultCity = "Berlin"

// Document is the parsed representation of a form schema file.
type Document struct {
	Title    string    `json:"title,omitempty" yaml:"title,omitempty"`
	Builder  string    `json:"builder,omitempty" yaml:"builder,omitempty"`
	Sections []Section `json:"sections" yaml:"sections"`
	Misc     Misc      `json:"misc,omitempty" yaml:"misc,omitempty"`
}

// Section groups fields under a translated heading.
type Section struct {
	Key       string  `json:"key" yaml:"key"`
	Title     string  `json:"title,omitempty" yaml:"title,omitempty"`
	TitleI18n string  `json:"title_i18n,omitempty" yaml:"title_i18n,omitempty"`
	Fields    []Field `json:"fields" yaml:"fields"`
}

// Field describes a single input.
type Field struct {
	Key         string   `json:"key" yaml:"key"`
	Type        string   `json:"type,omitempty" yaml:"type,omitempty"`
	Label       string   `json:"label,omitempty" yaml:"label,omitempty"`
	LabelI18n   string   `json:"label_i18n,omitempty" yaml:"label_i18n,omitempty"`
	HelpI18n    string   `json:"help_i18n,omitempty" yaml:"help_i18n,omitempty"`
	Placeholder string   `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	Required    bool     `json:"required,omitempty" yaml:"required,omitempty"`
	Rows        int      `json:"rows,omitempty" yaml:"rows,omitempty"`
	Options     []Option `json:"options,omitempty" yaml:"options,omitempty"`
	Default     any      `json:"default,omitempty" yaml:"default,omitempty"`
}

// Option is a choice for select and radio fields.
type Option struct {
	Value     string `json:"value" yaml:"value"`
	Label     string `json:"label,omitempty" yaml:"label,omitempty"`
	LabelI18n string `json:"label_i18n,omitempty" yaml:"label_i18n,omitempty"`
}

// Misc carries form-wide settings that are not tied to a section.
type Misc struct {
	StadtDefault      string `json:"stadt_default,omitempty" yaml:"stadt_default,omitempty"`
	DatePlaceholder   string `json:"date_placeholder,omitempty" yaml:"date_placeholder,omitempty"`
	SignatureRequired *bool  `json:"signature_required,omitempty" yaml:"signature_required,omitempty"`
}

// City returns the default city, falling back to DefaultCity.
func (m Misc) City() string {
	if city := strings.TrimSpace(m.StadtDefault); city != "" {
		return city
	}
	return DefaultCity
}

// WantsSignature reports whether the signature panel should be shown. The
// signature is requested unless the schema disables it explicitly.
func (m Misc) WantsSignature() bool {
	if m.SignatureRequired == nil {
		return true
	}
	return *m.SignatureRequired
}

// FieldName composes the value key used for a field inside a section.
func FieldName(section, field string) string {
	return strings.TrimSpace(section) + "_" + strings.TrimSpace(field)
}
