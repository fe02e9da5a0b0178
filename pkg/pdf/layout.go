package pdf

import (
	"context"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/goliatone/go-formdoc/pkg/schema"
	"github.com/goliatone/go-formdoc/pkg/signature"
)

const defaultRuleWidth = 0.8

// FromLayout draws the form at the coordinates of its layout.json. Layout
// coordinates use a bottom-left origin; values are printed into their boxes.
func FromLayout(ctx context.Context, req Request) ([]byte, error) {
	if req.Layout == nil {
		return nil, fmt.Errorf("pdf: form %q has no layout", req.Form.Key)
	}
	layout := *req.Layout

	c := req.Canvas(req.Title(req.Form.Name))
	doc := c.Fpdf()
	doc.SetAutoPageBreak(false, 0)
	_, pageHeight := c.PageSize()

	page := 1
	c.background(req, layout, page)

	for _, item := range layout.Fields {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		for item.PageNumber() > page {
			doc.AddPage()
			page++
			c.background(req, layout, page)
		}

		// top-left corner of the item box in fpdf coordinates
		top := pageHeight - item.Y - item.H

		switch item.Kind() {
		case schema.LayoutRect:
			doc.SetLineWidth(boxLineWidth)
			doc.Rect(item.X, top, item.W, item.H, "D")
		case schema.LayoutLine:
			width := item.Width
			if width <= 0 {
				width = defaultRuleWidth
			}
			doc.SetLineWidth(width)
			doc.Line(item.X1, pageHeight-item.Y1, item.X2, pageHeight-item.Y2)
		case schema.LayoutLabel:
			text := item.Text
			if item.TextI18n != "" {
				text = req.Text(item.TextI18n, item.Text)
			}
			size := item.Size
			if size <= 0 {
				size = c.fontSize
			}
			style := ""
			if item.Bold {
				style = "B"
			}
			c.withFont(style, size, func() {
				doc.Text(item.X, pageHeight-item.Y, c.tr(text))
			})
		case schema.LayoutCheckbox:
			size := item.H
			if item.W > 0 && item.W < size {
				size = item.W
			}
			if layout.Boxes() {
				c.fillBox(item.X, top, size, size)
			}
			c.Checkbox(item.X, top, size, req.Checked(item.Name))
		case schema.LayoutSignature:
			c.layoutSignature(req, item, top)
		case schema.LayoutTextarea:
			if layout.Boxes() {
				c.fillBox(item.X, top, item.W, item.H)
			}
			doc.SetXY(item.X+2, top+2)
			doc.MultiCell(item.W-4, c.lineHeight, c.tr(req.Value(item.Name)), "", "L", false)
		default:
			if layout.Boxes() {
				c.fillBox(item.X, top, item.W, item.H)
			}
			doc.SetXY(item.X+2, top)
			doc.CellFormat(item.W-4, item.H, c.tr(req.Value(item.Name)), "", 0, "LM", false, 0, "")
		}
	}

	return c.Bytes()
}

func (c *Canvas) fillBox(x, y, w, h float64) {
	c.pdf.SetFillColor(fieldFill[0], fieldFill[1], fieldFill[2])
	c.pdf.SetLineWidth(boxLineWidth)
	c.pdf.Rect(x, y, w, h, "FD")
	c.pdf.SetFillColor(255, 255, 255)
}

func (c *Canvas) background(req Request, layout schema.Layout, page int) {
	if page < 1 || page > len(layout.Backgrounds) || req.Assets == nil {
		return
	}
	ref := strings.TrimSpace(layout.Backgrounds[page-1])
	if ref == "" {
		return
	}
	data, err := readAsset(req.Assets, ref)
	if err != nil {
		if req.Logger != nil {
			req.Logger.WithError(err).WithField("background", ref).Warn("layout background skipped")
		}
		return
	}
	imageType := imageTypeFor(ref)
	if imageType == "" {
		return
	}
	c.drawImage(data, imageType, 0, 0, c.pageWidth, c.pageHeight)
}

func (c *Canvas) layoutSignature(req Request, item schema.LayoutItem, top float64) {
	if req.Signature.Empty() {
		return
	}
	opts := req.Options.Signature(item.W, item.H)
	prepared, err := signature.Prepare(req.Signature.Data, opts.ShouldTrim())
	if err != nil {
		if req.Logger != nil {
			req.Logger.WithError(err).WithField("form", req.Form.Key).Warn("signature image not drawn")
		}
		return
	}
	w, h := signature.Fit(prepared.Width, prepared.Height, item.W, item.H, opts.ScaleMode)
	x := item.X + signature.OffsetX(item.W, w, opts.Align)
	c.drawPNG(prepared.PNG, x, top+item.H-h, w, h)
}

// readAsset resolves ref inside fsys, falling back to its base name so
// repository-relative paths like forms/<key>/bg.png keep working.
func readAsset(fsys fs.FS, ref string) ([]byte, error) {
	ref = strings.TrimPrefix(path.Clean("/"+strings.ReplaceAll(ref, "\\", "/")), "/")
	data, err := fs.ReadFile(fsys, ref)
	if err == nil {
		return data, nil
	}
	if base := path.Base(ref); base != ref {
		if data, baseErr := fs.ReadFile(fsys, base); baseErr == nil {
			return data, nil
		}
	}
	return nil, err
}

func imageTypeFor(name string) string {
	switch strings.ToLower(path.Ext(name)) {
	case ".png":
		return "PNG"
	case ".jpg", ".jpeg":
		return "JPG"
	default:
		return ""
	}
}
