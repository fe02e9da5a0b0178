package builders

import (
	"context"
	"strings"

	"github.com/goliatone/go-formdoc/pkg/pdf"
)

const authorityHeader = "<b>Bürgeramt / Meldebehörde</b><br>Musterstraße 12, 10115 Berlin<br>Tel: 030 123456"

var wohnsitzColumns = []float64{180, 320}

// BuildWohnsitzAenderung draws the change-of-residence application addressed
// to the registration office.
func BuildWohnsitzAenderung(ctx context.Context, req pdf.Request) ([]byte, error) {
	title := req.Title("Antrag auf Wohnsitzänderung")
	c := req.Canvas(title)

	c.RichParagraph(authorityHeader)
	c.Spacer(12)
	c.Title(title)
	c.Spacer(12)

	row := func(key string) [2]string {
		return [2]string{req.Text(key, key), req.Value(strings.ReplaceAll(key, ".", "_"))}
	}
	c.Table(wohnsitzColumns, pdf.LabelValue(
		row("person.name"),
		row("person.geb"),
		row("person.id_number"),
		row("person.customer_number"),
		row("person.alt_addr"),
		row("person.neu_addr"),
		row("person.reason"),
	))
	c.Spacer(16)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c.Paragraph(req.Text("declaration.text", ""))
	c.Spacer(12)
	c.Paragraph(req.PlaceDate())
	c.Spacer(12)

	req.SignatureBlock(c, req.Text("signature.title", "Unterschrift"), pdf.DefaultSignatureWidth, pdf.DefaultSignatureHeight)

	c.Spacer(20)
	c.Paragraph(req.Text("signature.official", "Unterschrift der Behörde"))
	c.Spacer(30)
	c.Paragraph("_________________________")

	return c.Bytes()
}
