package pdf

import (
	"context"

	"github.com/goliatone/go-formdoc/pkg/schema"
)

// Generic lays out every section as a heading followed by a label/value
// table, then the place/date line and the signature block.
func Generic(ctx context.Context, req Request) ([]byte, error) {
	title := req.Title(req.Form.Name)
	c := req.Canvas(title)
	c.Title(title)

	labelWidth := c.ContentWidth() * 0.35
	widths := []float64{labelWidth, c.ContentWidth() - labelWidth}

	for _, section := range req.Form.Sections {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if len(section.Fields) == 0 {
			continue
		}
		c.Heading(section.Title)

		rows := make([][]Cell, 0, len(section.Fields))
		for _, field := range section.Fields {
			value := Cell{Text: req.Value(field.Name)}
			switch {
			case schema.IsBoolean(field.Type):
				value = Cell{Checks: []Check{{Checked: req.Checked(field.Name)}}}
			case len(field.Options) > 0:
				for _, option := range field.Options {
					if option.Value == value.Text {
						value.Text = option.Label
						break
					}
				}
			}
			rows = append(rows, []Cell{{Text: field.Label}, value})
		}
		c.Table(widths, rows)
		c.Spacer(10)
	}

	c.Spacer(12)
	c.Paragraph(req.PlaceDate())
	c.Spacer(18)
	req.SignatureBlock(c, req.Text("signature.title", "Unterschrift"), DefaultSignatureWidth, DefaultSignatureHeight)

	return c.Bytes()
}
