package model

// FormModel is the localized representation renderers and PDF builders consume.
type FormModel struct {
	Key       string    `json:"key"`
	Name      string    `json:"name"`
	Title     string    `json:"title,omitempty"`
	Builder   string    `json:"builder,omitempty"`
	Sections  []Section `json:"sections"`
	Misc      Misc      `json:"misc"`
	HasLayout bool      `json:"hasLayout,omitempty"`
}

// Section groups fields under a localized heading.
type Section struct {
	Key    string  `json:"key"`
	Title  string  `json:"title"`
	Fields []Field `json:"fields"`
}

// Field models an individual input. Name is the submission key
// (<section>_<field>) shared by the web form, validation and PDF builders.
type Field struct {
	Name        string   `json:"name"`
	Key         string   `json:"key"`
	Section     string   `json:"section"`
	Type        string   `json:"type"`
	Widget      string   `json:"widget,omitempty"`
	Label       string   `json:"label"`
	Help        string   `json:"help,omitempty"`
	Placeholder string   `json:"placeholder,omitempty"`
	Required    bool     `json:"required"`
	Rows        int      `json:"rows,omitempty"`
	Options     []Option `json:"options,omitempty"`
	Default     any      `json:"default,omitempty"`
}

// Option is a localized choice for select and radio fields.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Misc carries the form-wide settings rendered next to the sections.
type Misc struct {
	City              string `json:"city"`
	DatePlaceholder   string `json:"datePlaceholder,omitempty"`
	SignatureRequired bool   `json:"signatureRequired"`
}

// Fields returns every field in section order.
func (f FormModel) Fields() []Field {
	var out []Field
	for _, section := range f.Sections {
		out = append(out, section.Fields...)
	}
	return out
}

// Field looks up a field by submission name.
func (f FormModel) Field(name string) (Field, bool) {
	for _, section := range f.Sections {
		for _, field := range section.Fields {
			if field.Name == name {
				return field, true
			}
		}
	}
	return Field{}, false
}
