package render

import (
	"io/fs"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formdoc/pkg/i18n"
	"github.com/goliatone/go-formdoc/pkg/pdf"
	"github.com/goliatone/go-formdoc/pkg/schema"
	"github.com/goliatone/go-formdoc/pkg/signature"
)

// Text directions used by the HTML renderer.
const (
	DirectionLTR = "ltr"
	DirectionRTL = "rtl"
)

// FormLink is one entry of the form selector.
type FormLink struct {
	Key    string `json:"key"`
	Name   string `json:"name"`
	Active bool   `json:"active"`
}

// Language is one entry of the language selector.
type Language struct {
	Code   string `json:"code"`
	Label  string `json:"label"`
	Active bool   `json:"active"`
}

// RenderOptions carries per-request data that is not part of the form model.
type RenderOptions struct {
	// Locale is the language of the UI (or of the document for PDF output).
	Locale    string
	Direction string
	Languages []Language
	Forms     []FormLink

	// Values holds the submitted or prefilled values keyed by field name.
	Values map[string]any
	// Errors maps field names to inline error messages.
	Errors     map[string][]string
	FormErrors []string
	// Message is a success notice shown above the form.
	Message string
	// Download is the URL of a generated document, if any.
	Download string

	Catalog   i18n.Catalog
	Signature *signature.Signature
	// SignatureSizing carries the upload sizing controls.
	SignatureSizing signature.Sizing
	PDFOptions      pdf.Options
	// Layout and Assets feed the coordinate builder of forms with a layout.
	Layout *schema.Layout
	Assets fs.FS

	Theme  *theme.RendererConfig
	Hidden map[string]string
}

// DirectionFor returns the text direction of a language code.
func DirectionFor(lang string) string {
	if lang == "ar" {
		return DirectionRTL
	}
	return DirectionLTR
}

// Text resolves key through the options catalog.
func (o RenderOptions) Text(key, fallback string) string {
	return o.Catalog.Get(key, fallback)
}
