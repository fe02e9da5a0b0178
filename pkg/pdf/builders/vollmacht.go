package builders

import (
	"context"
	"fmt"

	"github.com/goliatone/go-formdoc/pkg/model"
	"github.com/goliatone/go-formdoc/pkg/pdf"
)

// Default signature box of the power of attorney: 2 × 3 cm.
const (
	vollmachtSignatureWidth  = 56.7
	vollmachtSignatureHeight = 85.05
)

var personColumns = []float64{100, 350}

// BuildVollmacht draws the power of attorney for collecting a residence
// permit or travel document.
func BuildVollmacht(ctx context.Context, req pdf.Request) ([]byte, error) {
	title := req.Title("Vollmacht")
	c := req.Canvas(title)

	c.Title(title)
	c.Paragraph("zur Abholung und Beantragung des Aufenthaltstitels/Reiseausweises")
	c.Spacer(12)
	c.Paragraph("Ich:")
	c.Paragraph("Vollmachtgeber")
	c.Table(personColumns, personRows(req.Data, "vg"))
	c.Spacer(12)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c.Paragraph("bevollmächtige")
	c.Paragraph("Bevollmächtigter/-r")
	c.Table(personColumns, personRows(req.Data, "b"))
	c.Spacer(12)

	c.RichParagraph("den Aufenthaltstitel und Reiseausweis zu beantragen/abzuholen, " +
		"unter Vorlage <u>meines</u> Personaldokuments.")
	c.RichParagraph("<b>Hinweis:</b> Der Bevollmächtigte muss sich bei Vorsprache zur " +
		"Abholung durch Vorlage eines eigenen Personaldokuments ausweisen.")
	c.Spacer(24)
	c.Paragraph(fmt.Sprintf("%s, den %s", req.Value(model.KeyCity), req.Value(model.KeyDate)))
	c.Spacer(18)

	req.SignatureBlock(c, "Unterschrift des Vollmachtgebers", vollmachtSignatureWidth, vollmachtSignatureHeight)
	return c.Bytes()
}

func personRows(values model.Values, prefix string) [][]pdf.Cell {
	return pdf.LabelValue(
		[2]string{"Name:", values.String(prefix + "_name")},
		[2]string{"Vorname:", values.String(prefix + "_vorname")},
		[2]string{"Geburtsdatum:", values.String(prefix + "_geb")},
		[2]string{"Anschrift:", values.String(prefix + "_addr")},
	)
}
