package signature

import "strings"

// CMToPt converts centimetres to PDF points.
const CMToPt = 28.3465

// Scale modes.
const (
	ScaleFit     = "fit"
	ScaleStretch = "stretch"
)

// Alignments.
const (
	AlignLeft   = "LEFT"
	AlignCenter = "CENTER"
	AlignRight  = "RIGHT"
)

// Upload sizing bounds and defaults, in centimetres.
const (
	MinSizeCM       = 0.5
	MaxSizeCM       = 20.0
	DefaultWidthCM  = 2.0
	DefaultHeightCM = 3.0
)

// Options control how a signature is placed in its box.
type Options struct {
	BoxWidth  float64 `json:"box_w_pt,omitempty" yaml:"box_w_pt,omitempty"`
	BoxHeight float64 `json:"box_h_pt,omitempty" yaml:"box_h_pt,omitempty"`
	ScaleMode string  `json:"scale_mode,omitempty" yaml:"scale_mode,omitempty"`
	Align     string  `json:"align,omitempty" yaml:"align,omitempty"`
	Trim      *bool   `json:"trim,omitempty" yaml:"trim,omitempty"`
}

// ShouldTrim reports whether margins are cropped; defaults to true.
func (o Options) ShouldTrim() bool {
	return o.Trim == nil || *o.Trim
}

// Sizing is the user-facing size selection offered for uploaded signatures.
type Sizing struct {
	KeepRatio bool    `json:"keep_ratio"`
	WidthCM   float64 `json:"width_cm"`
	HeightCM  float64 `json:"height_cm"`
	ScaleMode string  `json:"scale_mode"`
	Align     string  `json:"align"`
	Trim      bool    `json:"trim"`
}

// DefaultSizing returns the initial upload sizing.
func DefaultSizing() Sizing {
	return Sizing{
		KeepRatio: true,
		WidthCM:   DefaultWidthCM,
		HeightCM:  DefaultHeightCM,
		ScaleMode: ScaleFit,
		Align:     AlignLeft,
		Trim:      true,
	}
}

// Options converts the sizing into box options for an image of the given
// pixel size. With KeepRatio and a known size the height follows the width.
func (s Sizing) Options(meta Meta) Options {
	width := clampCM(s.WidthCM, DefaultWidthCM)
	height := clampCM(s.HeightCM, DefaultHeightCM)
	if s.KeepRatio && meta.Width > 0 && meta.Height > 0 {
		height = width * float64(meta.Height) / float64(meta.Width)
	}
	trim := s.Trim
	return Options{
		BoxWidth:  width * CMToPt,
		BoxHeight: height * CMToPt,
		ScaleMode: NormalizeScaleMode(s.ScaleMode),
		Align:     NormalizeAlign(s.Align),
		Trim:      &trim,
	}
}

func clampCM(value, fallback float64) float64 {
	if value <= 0 {
		return fallback
	}
	if value < MinSizeCM {
		return MinSizeCM
	}
	if value > MaxSizeCM {
		return MaxSizeCM
	}
	return value
}

// NormalizeAlign maps unknown alignments to LEFT.
func NormalizeAlign(align string) string {
	switch value := strings.ToUpper(strings.TrimSpace(align)); value {
	case AlignLeft, AlignCenter, AlignRight:
		return value
	default:
		return AlignLeft
	}
}

// NormalizeScaleMode maps unknown modes to fit.
func NormalizeScaleMode(mode string) string {
	if strings.ToLower(strings.TrimSpace(mode)) == ScaleStretch {
		return ScaleStretch
	}
	return ScaleFit
}

// Fit computes the drawn size of a w×h image inside a boxW×boxH box. Stretch
// fills the box; fit keeps the aspect ratio, preferring the full box width.
func Fit(w, h int, boxW, boxH float64, mode string) (float64, float64) {
	if NormalizeScaleMode(mode) == ScaleStretch {
		return boxW, boxH
	}
	aspect := 1.0
	if w > 0 {
		aspect = float64(h) / float64(w)
	}
	outW := boxW
	outH := outW * aspect
	if outH > boxH {
		outH = boxH
		if aspect > 0 {
			outW = outH / aspect
		}
	}
	return outW, outH
}

// OffsetX returns the horizontal offset of a drawn image of width drawn inside
// an area of width avail for the given alignment.
func OffsetX(avail, drawn float64, align string) float64 {
	switch NormalizeAlign(align) {
	case AlignCenter:
		return (avail - drawn) / 2
	case AlignRight:
		return avail - drawn
	default:
		return 0
	}
}
