package model

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-formdoc/pkg/i18n"
	"github.com/goliatone/go-formdoc/pkg/schema"
)

// Builder converts parsed schema documents into localized form models.
type Builder struct {
	opts Options
}

// New creates a Builder with the supplied options.
func New(options Options) *Builder {
	opts := defaultOptions()
	if options.Labeler != nil {
		opts.Labeler = options.Labeler
	}
	return &Builder{opts: opts}
}

// Build resolves every translation key of doc for locale. Labels fall back to
// the literal schema text and finally to the raw key.
func (b *Builder) Build(key string, doc schema.Document, translator i18n.Translator, locale string) (FormModel, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return FormModel{}, fmt.Errorf("model: form key is required")
	}

	lookup := func(i18nKey, fallback string) string {
		if strings.TrimSpace(i18nKey) == "" {
			return fallback
		}
		return i18n.Lookup(translator, locale, i18nKey, fallback, keepFallback)
	}

	form := FormModel{
		Key:     key,
		Title:   doc.Title,
		Builder: strings.TrimSpace(doc.Builder),
		Misc: Misc{
			City:              doc.Misc.City(),
			DatePlaceholder:   doc.Misc.DatePlaceholder,
			SignatureRequired: doc.Misc.WantsSignature(),
		},
	}
	form.Name = firstNonEmpty(lookup("app.title", ""), doc.Title, key)

	for _, section := range doc.Sections {
		out := Section{
			Key:   section.Key,
			Title: firstNonEmpty(lookup(section.TitleI18n, section.Title), b.opts.Labeler(section.Key)),
		}
		for _, field := range section.Fields {
			out.Fields = append(out.Fields, b.buildField(section.Key, field, lookup))
		}
		form.Sections = append(form.Sections, out)
	}

	return form, nil
}

func (b *Builder) buildField(section string, field schema.Field, lookup func(string, string) string) Field {
	out := Field{
		Name:        schema.FieldName(section, field.Key),
		Key:         field.Key,
		Section:     section,
		Type:        schema.NormalizeType(field.Type),
		Label:       firstNonEmpty(lookup(field.LabelI18n, field.Label), b.opts.Labeler(field.Key)),
		Help:        lookup(field.HelpI18n, ""),
		Placeholder: field.Placeholder,
		Required:    field.Required,
		Rows:        field.Rows,
		Default:     field.Default,
	}
	if out.Type == schema.TypeTextarea && out.Rows <= 0 {
		out.Rows = defaultTextareaRows
	}
	for _, option := range field.Options {
		out.Options = append(out.Options, Option{
			Value: option.Value,
			Label: firstNonEmpty(lookup(option.LabelI18n, option.Label), option.Value),
		})
	}
	return out
}

const defaultTextareaRows = 4

func keepFallback(_ string, _ string, args []any, _ error) string {
	for _, arg := range args {
		if values, ok := arg.(map[string]any); ok {
			if fallback, ok := values["default"].(string); ok {
				return fallback
			}
		}
	}
	return ""
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if strings.TrimSpace(value) != "" {
			return value
		}
	}
	return ""
}
