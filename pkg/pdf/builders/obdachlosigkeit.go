package builders

import (
	"context"
	"fmt"

	"github.com/goliatone/go-formdoc/pkg/pdf"
)

const wechselBoxHeight = 170.08

var obdachlosigkeitColumns = []float64{220, 120, 180}

// BuildObdachlosigkeit draws the notice of involuntary homelessness with its
// four request sections.
func BuildObdachlosigkeit(ctx context.Context, req pdf.Request) ([]byte, error) {
	title := req.Title("Anzeige von unfreiwilliger Obdachlosigkeit")
	c := req.Canvas(title)

	c.Title(title)
	c.Spacer(8)

	hasRelatives := req.Checked("person_has_relatives")
	c.Table(obdachlosigkeitColumns, [][]pdf.Cell{
		{
			{Text: req.Text("person.name", "Name, Vorname")},
			{Text: req.Text("person.geb", "Geburtsdatum")},
			{Text: "Angehörige"},
		},
		{
			{Text: req.Value("person_name")},
			{Text: req.Value("person_geb")},
			{Checks: []pdf.Check{
				{Label: "keine Angehörige", Checked: !hasRelatives},
				{Label: fmt.Sprintf("Angehörige: %s", req.Value("person_relatives_text")), Checked: hasRelatives},
			}},
		},
	})
	c.Spacer(14)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c.SectionHeader(req.Text("section.erst", "Erstzuweisung"), req.Checked("erst_checked"))
	c.Spacer(4)
	c.Paragraph("Ich/ Meine Familie benötigt einen Platz im Wohnheim, um nicht auf der Straße schlafen zu müssen.")
	c.Spacer(4)
	c.Paragraph(req.Text("erst.gruende", "Gründe …"))
	c.BoxLine(req.Value("erst_gruende"), 0)
	c.Spacer(10)

	c.SectionHeader(req.Text("section.unterb", "Zuweisung nach Unterbrechung"), req.Checked("unterb_checked"))
	c.Spacer(4)
	c.Paragraph(req.Text("unterb.gruende", "Gründe …"))
	c.BoxLine(req.Value("unterb_gruende"), 0)
	c.Spacer(10)

	c.SectionHeader(req.Text("section.verl", "Verlängerung der Zuweisung"), req.Checked("verl_checked"))
	c.Spacer(4)
	c.Paragraph("Die Zuweisung für das Wohnheim endet/e am: " + req.Value("verl_endet_am"))
	c.Paragraph("Es ist mir nicht gelungen, eine Wohnung anzumieten oder woanders unterzukommen.")
	c.Spacer(10)

	c.SectionHeader(req.Text("section.wechsel", "Wechsel des Wohnheimes"), req.Checked("wechsel_checked"))
	c.Spacer(4)
	c.Paragraph(req.Text("wechsel.gruende", "Ich/Wir benötige/n aus folgenden Gründen einen neuen Wohnheimplatz"))
	c.BoxLine(req.Value("wechsel_gruende"), wechselBoxHeight)

	c.Paragraph(req.PlaceDate())
	c.Spacer(12)

	req.SignatureBlock(c, "Unterschrift der wohnungslosen Person", pdf.DefaultSignatureWidth, pdf.DefaultSignatureHeight)
	return c.Bytes()
}
