package tui

import (
	"fmt"
	"strings"
)

// OutputFormat controls how Summary formats collected values.
type OutputFormat string

const (
	// OutputFormatJSON emits an indented JSON object.
	OutputFormatJSON OutputFormat = "json"
	// OutputFormatPrettyText emits one "label: value" line per field.
	OutputFormatPrettyText OutputFormat = "pretty"
)

// ParseOutputFormat accepts "json" or "pretty".
func ParseOutputFormat(name string) (OutputFormat, error) {
	switch format := OutputFormat(strings.ToLower(strings.TrimSpace(name))); format {
	case OutputFormatJSON, OutputFormatPrettyText:
		return format, nil
	default:
		return "", fmt.Errorf("tui: unknown output format %q", name)
	}
}

// Theme captures optional message prefixes.
type Theme struct {
	InfoPrefix  string
	ErrorPrefix string
}

// Option configures the TUI renderer.
type Option func(*Renderer)

// WithPromptDriver overrides the prompt driver used by the renderer.
func WithPromptDriver(driver PromptDriver) Option {
	return func(r *Renderer) {
		if driver != nil {
			r.driver = driver
		}
	}
}

// WithOutputFormat selects the summary format.
func WithOutputFormat(format OutputFormat) Option {
	return func(r *Renderer) {
		if format != "" {
			r.outputFormat = format
		}
	}
}

// WithTheme applies optional message prefixes.
func WithTheme(theme Theme) Option {
	return func(r *Renderer) {
		r.theme = theme
	}
}
