package pdf

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"

	"github.com/goliatone/go-formdoc/pkg/signature"
)

// signatureOverlap pulls the rule line up under the image.
const signatureOverlap = 12.0

// SignatureBlock is an optional image above a rule line and a label.
type SignatureBlock struct {
	Signature *signature.Signature
	Options   signature.Options
	Label     string
}

// Signature draws block, keeping image, rule and label on one page. An image
// that cannot be decoded is skipped; the rule and label are always drawn. The
// returned error reports the skipped image, if any.
func (c *Canvas) Signature(block SignatureBlock) error {
	var (
		prepared signature.Prepared
		skipped  error
		w, h     float64
	)
	if !block.Signature.Empty() {
		var err error
		prepared, err = signature.Prepare(block.Signature.Data, block.Options.ShouldTrim())
		if err != nil {
			skipped = err
		} else {
			w, h = signature.Fit(prepared.Width, prepared.Height, block.Options.BoxWidth, block.Options.BoxHeight, block.Options.ScaleMode)
		}
	}

	needed := 2 * c.lineHeight
	if len(prepared.PNG) > 0 {
		needed += maxFloat(h-signatureOverlap, 0)
	}
	c.ensureSpace(needed)

	if len(prepared.PNG) > 0 && w > 0 && h > 0 {
		x := c.left + signature.OffsetX(c.ContentWidth(), w, block.Options.Align)
		y := c.pdf.GetY()
		c.drawPNG(prepared.PNG, x, y, w, h)
		c.pdf.SetXY(c.left, y+h-signatureOverlap)
	}

	c.Paragraph(signatureRule)
	c.Paragraph(block.Label)
	if skipped != nil {
		return fmt.Errorf("pdf: signature skipped: %w", skipped)
	}
	return nil
}

func (c *Canvas) drawPNG(data []byte, x, y, w, h float64) {
	c.drawImage(data, "PNG", x, y, w, h)
}

func (c *Canvas) drawImage(data []byte, imageType string, x, y, w, h float64) {
	c.images++
	name := fmt.Sprintf("img%d", c.images)
	opts := fpdf.ImageOptions{ImageType: imageType}
	c.pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(data))
	c.pdf.ImageOptions(name, x, y, w, h, false, opts, 0, "")
}
