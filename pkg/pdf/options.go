package pdf

import (
	"strings"

	"github.com/goliatone/go-formdoc/pkg/signature"
)

// Default page margins in points.
const (
	DefaultLeftMargin   = 40.0
	DefaultRightMargin  = 40.0
	DefaultTopMargin    = 36.0
	DefaultBottomMargin = 36.0
)

// Default signature box in points.
const (
	DefaultSignatureWidth  = 180.0
	DefaultSignatureHeight = 80.0
)

// DefaultTitleKey is the catalog key used for document titles.
const DefaultTitleKey = "app.title"

// Options mirrors the pdf_options block of the setup configuration. Pointer
// fields distinguish "unset" from zero so layered options merge cleanly.
type Options struct {
	TitleI18n    string   `json:"title_i18n,omitempty" yaml:"title_i18n,omitempty"`
	Author       string   `json:"author,omitempty" yaml:"author,omitempty"`
	LeftMargin   *float64 `json:"leftMargin,omitempty" yaml:"leftMargin,omitempty"`
	RightMargin  *float64 `json:"rightMargin,omitempty" yaml:"rightMargin,omitempty"`
	TopMargin    *float64 `json:"topMargin,omitempty" yaml:"topMargin,omitempty"`
	BottomMargin *float64 `json:"bottomMargin,omitempty" yaml:"bottomMargin,omitempty"`
	FontSize     float64  `json:"font_size,omitempty" yaml:"font_size,omitempty"`

	SignatureBoxWidth  *float64 `json:"signature_box_w_pt,omitempty" yaml:"signature_box_w_pt,omitempty"`
	SignatureBoxHeight *float64 `json:"signature_box_h_pt,omitempty" yaml:"signature_box_h_pt,omitempty"`
	// Legacy keys, consulted when the box keys are absent.
	SignatureWidth     *float64 `json:"signature_width_pt,omitempty" yaml:"signature_width_pt,omitempty"`
	SignatureMaxHeight *float64 `json:"signature_max_height_pt,omitempty" yaml:"signature_max_height_pt,omitempty"`
	SignatureScaleMode string   `json:"signature_scale_mode,omitempty" yaml:"signature_scale_mode,omitempty"`
	SignatureAlign     string   `json:"signature_align,omitempty" yaml:"signature_align,omitempty"`
	SignatureTrim      *bool    `json:"signature_trim,omitempty" yaml:"signature_trim,omitempty"`
}

// Float returns a pointer to v.
func Float(v float64) *float64 { return &v }

// Bool returns a pointer to v.
func Bool(v bool) *bool { return &v }

// Merge returns o with every field set in over taking precedence.
func (o Options) Merge(over Options) Options {
	out := o
	if over.TitleI18n != "" {
		out.TitleI18n = over.TitleI18n
	}
	if over.Author != "" {
		out.Author = over.Author
	}
	if over.FontSize > 0 {
		out.FontSize = over.FontSize
	}
	if over.SignatureScaleMode != "" {
		out.SignatureScaleMode = over.SignatureScaleMode
	}
	if over.SignatureAlign != "" {
		out.SignatureAlign = over.SignatureAlign
	}
	mergeFloat(&out.LeftMargin, over.LeftMargin)
	mergeFloat(&out.RightMargin, over.RightMargin)
	mergeFloat(&out.TopMargin, over.TopMargin)
	mergeFloat(&out.BottomMargin, over.BottomMargin)
	mergeFloat(&out.SignatureBoxWidth, over.SignatureBoxWidth)
	mergeFloat(&out.SignatureBoxHeight, over.SignatureBoxHeight)
	mergeFloat(&out.SignatureWidth, over.SignatureWidth)
	mergeFloat(&out.SignatureMaxHeight, over.SignatureMaxHeight)
	if over.SignatureTrim != nil {
		out.SignatureTrim = Bool(*over.SignatureTrim)
	}
	return out
}

func mergeFloat(dst **float64, src *float64) {
	if src != nil {
		*dst = Float(*src)
	}
}

// WithSignature layers user-selected signature placement over o.
func (o Options) WithSignature(sig signature.Options) Options {
	over := Options{
		SignatureScaleMode: sig.ScaleMode,
		SignatureAlign:     sig.Align,
		SignatureTrim:      sig.Trim,
	}
	if sig.BoxWidth > 0 {
		over.SignatureBoxWidth = Float(sig.BoxWidth)
	}
	if sig.BoxHeight > 0 {
		over.SignatureBoxHeight = Float(sig.BoxHeight)
	}
	return o.Merge(over)
}

// Margins returns left, top, right and bottom margins.
func (o Options) Margins() (left, top, right, bottom float64) {
	return floatOr(o.LeftMargin, DefaultLeftMargin),
		floatOr(o.TopMargin, DefaultTopMargin),
		floatOr(o.RightMargin, DefaultRightMargin),
		floatOr(o.BottomMargin, DefaultBottomMargin)
}

// TitleKey returns the catalog key of the document title.
func (o Options) TitleKey() string {
	if key := strings.TrimSpace(o.TitleI18n); key != "" {
		return key
	}
	return DefaultTitleKey
}

// Signature resolves the signature placement. defWidth and defHeight are the
// builder defaults used when neither the box nor the legacy keys are set.
func (o Options) Signature(defWidth, defHeight float64) signature.Options {
	width := floatOr(o.SignatureBoxWidth, floatOr(o.SignatureWidth, defWidth))
	height := floatOr(o.SignatureBoxHeight, floatOr(o.SignatureMaxHeight, defHeight))
	trim := o.SignatureTrim == nil || *o.SignatureTrim
	return signature.Options{
		BoxWidth:  width,
		BoxHeight: height,
		ScaleMode: signature.NormalizeScaleMode(o.SignatureScaleMode),
		Align:     signature.NormalizeAlign(o.SignatureAlign),
		Trim:      &trim,
	}
}

func floatOr(v *float64, fallback float64) float64 {
	if v == nil {
		return fallback
	}
	return *v
}
