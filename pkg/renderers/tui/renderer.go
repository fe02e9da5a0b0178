package tui

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-formdoc/pkg/i18n"
	"github.com/goliatone/go-formdoc/pkg/model"
	"github.com/goliatone/go-formdoc/pkg/render"
	"github.com/goliatone/go-formdoc/pkg/widgets"
)

// Renderer collects form values in a terminal and formats the collected
// values as a summary.
type Renderer struct {
	driver       PromptDriver
	outputFormat OutputFormat
	theme        Theme
}

// New constructs a TUI renderer with defaults (survey driver, JSON output).
func New(options ...Option) *Renderer {
	r := &Renderer{
		driver:       NewSurveyDriver(),
		outputFormat: OutputFormatJSON,
	}
	for _, opt := range options {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// Collect prompts for every field of form in section order followed by the
// place and date. opts.Values provide the defaults, opts.Errors are printed
// before the field they belong to and opts.FormErrors before the first prompt.
func (r *Renderer) Collect(ctx context.Context, form model.FormModel, opts render.RenderOptions) (map[string]any, error) {
	if ctx == nil {
		return nil, errors.New("tui: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.driver == nil {
		return nil, errors.New("tui: prompt driver is nil")
	}

	for _, message := range opts.FormErrors {
		if err := r.driver.Info(ctx, r.theme.ErrorPrefix+message); err != nil {
			return nil, err
		}
	}

	defaults := model.Values(opts.Values)
	values := make(map[string]any)
	for _, section := range form.Sections {
		if title := strings.TrimSpace(section.Title); title != "" {
			if err := r.driver.Info(ctx, r.theme.InfoPrefix+title); err != nil {
				return nil, err
			}
		}
		for _, field := range section.Fields {
			for _, message := range opts.Errors[field.Name] {
				if err := r.driver.Info(ctx, r.theme.ErrorPrefix+field.Label+": "+message); err != nil {
					return nil, err
				}
			}
			value, err := r.promptField(ctx, field, defaults)
			if err != nil {
				return nil, fmt.Errorf("tui: field %s: %w", field.Name, err)
			}
			values[field.Name] = value
		}
	}

	city := form.Misc.City
	if _, ok := defaults[model.KeyCity]; ok {
		city = defaults.String(model.KeyCity)
	}
	stadt, err := r.driver.Input(ctx, InputConfig{Message: opts.Text("field.ort", "Ort"), Default: city})
	if err != nil {
		return nil, fmt.Errorf("tui: field %s: %w", model.KeyCity, err)
	}
	datum, err := r.driver.Input(ctx, InputConfig{
		Message: opts.Text("field.datum", "Datum"),
		Default: defaults.String(model.KeyDate),
		Help:    form.Misc.DatePlaceholder,
	})
	if err != nil {
		return nil, fmt.Errorf("tui: field %s: %w", model.KeyDate, err)
	}
	values[model.KeyCity] = strings.TrimSpace(stadt)
	values[model.KeyDate] = strings.TrimSpace(datum)
	return values, nil
}

func (r *Renderer) promptField(ctx context.Context, field model.Field, defaults model.Values) (any, error) {
	message := field.Label
	if field.Required {
		message += " *"
	}
	current := defaults.String(field.Name)
	if _, ok := defaults[field.Name]; !ok && field.Default != nil {
		current = model.Values{field.Name: field.Default}.String(field.Name)
	}
	validator := requiredValidator(field)

	switch field.Widget {
	case widgets.WidgetCheckbox:
		return r.driver.Confirm(ctx, ConfirmConfig{Message: message, Help: field.Help, Default: model.Truthy(current)})
	case widgets.WidgetTextarea:
		return r.driver.TextArea(ctx, TextAreaConfig{Message: message, Help: field.Help, Default: current, Validator: validator})
	case widgets.WidgetSelect, widgets.WidgetRadio:
		if len(field.Options) == 0 {
			break
		}
		labels := make([]string, len(field.Options))
		selected := 0
		for i, option := range field.Options {
			labels[i] = option.Label
			if option.Value == current {
				selected = i
			}
		}
		idx, err := r.driver.Select(ctx, SelectConfig{Message: message, Help: field.Help, Options: labels, DefaultIndex: selected})
		if err != nil {
			return nil, err
		}
		if idx < 0 || idx >= len(field.Options) {
			return "", nil
		}
		return field.Options[idx].Value, nil
	case widgets.WidgetEmail:
		return r.driver.Input(ctx, InputConfig{Message: message, Help: field.Help, Default: current, Validator: emailValidator(field)})
	}
	help := field.Help
	if help == "" {
		help = field.Placeholder
	}
	return r.driver.Input(ctx, InputConfig{Message: message, Help: help, Default: current, Validator: validator})
}

func requiredValidator(field model.Field) func(string) error {
	if !field.Required {
		return nil
	}
	return func(value string) error {
		if strings.TrimSpace(value) == "" {
			return fmt.Errorf("%s is required", field.Label)
		}
		return nil
	}
}

func emailValidator(field model.Field) func(string) error {
	required := requiredValidator(field)
	return func(value string) error {
		if required != nil {
			if err := required(value); err != nil {
				return err
			}
		}
		value = strings.TrimSpace(value)
		if value != "" && !strings.Contains(value, "@") {
			return fmt.Errorf("%s is not an e-mail address", field.Label)
		}
		return nil
	}
}

// Summary formats values in the configured output format. Pretty output
// prints one "label: value" line per field followed by place and date.
func (r *Renderer) Summary(form model.FormModel, values map[string]any, catalog i18n.Catalog) ([]byte, error) {
	if r.outputFormat != OutputFormatPrettyText {
		out, err := json.MarshalIndent(values, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("tui: encode summary: %w", err)
		}
		return append(out, '\n'), nil
	}
	var b strings.Builder
	for _, field := range form.Fields() {
		fmt.Fprintf(&b, "%s: %v\n", field.Label, values[field.Name])
	}
	fmt.Fprintf(&b, "%s: %v\n", catalog.Get("field.ort", "Ort"), values[model.KeyCity])
	fmt.Fprintf(&b, "%s: %v\n", catalog.Get("field.datum", "Datum"), values[model.KeyDate])
	return []byte(b.String()), nil
}
