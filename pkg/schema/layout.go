package schema

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Layout item kinds.
const (
	LayoutText      = "text"
	LayoutTextarea  = "textarea"
	LayoutCheckbox  = "checkbox"
	LayoutSignature = "signature"
	LayoutRect      = "rect"
	LayoutLine      = "line"
	LayoutLabel     = "label"
)

// Layout places values at explicit coordinates. Coordinates are expressed in
// points with the origin at the bottom-left corner of the page.
type Layout struct {
	PageSize    string       `json:"pagesize,omitempty"`
	DrawBoxes   *bool        `json:"draw_boxes,omitempty"`
	Backgrounds []string     `json:"backgrounds,omitempty"`
	Fields      []LayoutItem `json:"fields"`
}

// LayoutItem is one positioned primitive or value box.
type LayoutItem struct {
	Name      string  `json:"name,omitempty"`
	Type      string  `json:"type,omitempty"`
	LabelI18n string  `json:"label_i18n,omitempty"`
	Text      string  `json:"text,omitempty"`
	TextI18n  string  `json:"text_i18n,omitempty"`
	Page      int     `json:"page,omitempty"`
	X         float64 `json:"x,omitempty"`
	Y         float64 `json:"y,omitempty"`
	W         float64 `json:"w,omitempty"`
	H         float64 `json:"h,omitempty"`
	X1        float64 `json:"x1,omitempty"`
	Y1        float64 `json:"y1,omitempty"`
	X2        float64 `json:"x2,omitempty"`
	Y2        float64 `json:"y2,omitempty"`
	Width     float64 `json:"width,omitempty"`
	Size      float64 `json:"size,omitempty"`
	Bold      bool    `json:"bold,omitempty"`
}

// Boxes reports whether value boxes should be outlined.
func (l Layout) Boxes() bool {
	if l.DrawBoxes == nil {
		return true
	}
	return *l.DrawBoxes
}

// Kind returns the normalised item type, defaulting to text.
func (i LayoutItem) Kind() string {
	kind := strings.ToLower(strings.TrimSpace(i.Type))
	if kind == "" {
		return LayoutText
	}
	return kind
}

// PageNumber returns the 1-based page index of the item.
func (i LayoutItem) PageNumber() int {
	if i.Page < 1 {
		return 1
	}
	return i.Page
}

// ParseLayout decodes a layout.json payload.
func ParseLayout(data []byte, source string) (Layout, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return Layout{}, fmt.Errorf("schema: layout %s is empty", source)
	}
	var layout Layout
	if err := json.Unmarshal(data, &layout); err != nil {
		return Layout{}, fmt.Errorf("schema: parse layout %s: %w", source, err)
	}
	for idx, item := range layout.Fields {
		switch item.Kind() {
		case LayoutText, LayoutTextarea, LayoutCheckbox, LayoutSignature:
			if strings.TrimSpace(item.Name) == "" && item.Kind() != LayoutSignature {
				return Layout{}, fmt.Errorf("schema: layout %s: item %d (%s) has no name", source, idx, item.Kind())
			}
		case LayoutRect, LayoutLine, LayoutLabel:
		default:
			return Layout{}, fmt.Errorf("schema: layout %s: item %d has unknown type %q", source, idx, item.Type)
		}
	}
	return layout, nil
}
