package pdf

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
)

const (
	fontFamily       = "Helvetica"
	defaultFontSize  = 10.0
	lineHeightFactor = 1.2
	titleFontSize    = 16.0
	headingFontSize  = 11.0

	cellPadding   = 6.0
	boxLineWidth  = 1.0
	gridLineWidth = 0.5
	checkboxSize  = 12.0

	signatureRule = "_________________________"
)

// fieldFill is the light blue used behind fillable boxes.
var fieldFill = [3]int{217, 227, 255}

// Meta sets document information entries.
type Meta struct {
	Title     string
	Author    string
	CreatedAt time.Time
}

// Canvas is a flowing A4 page in points. The cursor starts at the top margin
// and moves down as primitives are drawn; pages break automatically.
type Canvas struct {
	pdf        *fpdf.Fpdf
	tr         func(string) string
	fontSize   float64
	lineHeight float64

	left, top, right, bottom float64
	pageWidth, pageHeight    float64

	images int
}

// NewCanvas creates a document with a first page already added.
func NewCanvas(opts Options, meta Meta) *Canvas {
	doc := fpdf.New("P", "pt", "A4", "")
	c := &Canvas{pdf: doc, tr: doc.UnicodeTranslatorFromDescriptor("")}

	c.left, c.top, c.right, c.bottom = opts.Margins()
	c.fontSize = opts.FontSize
	if c.fontSize <= 0 {
		c.fontSize = defaultFontSize
	}
	c.lineHeight = c.fontSize * lineHeightFactor
	c.pageWidth, c.pageHeight = doc.GetPageSize()

	doc.SetMargins(c.left, c.top, c.right)
	doc.SetAutoPageBreak(true, c.bottom)
	doc.SetCellMargin(0)
	if meta.Title != "" {
		doc.SetTitle(meta.Title, true)
	}
	author := meta.Author
	if author == "" {
		author = opts.Author
	}
	if author != "" {
		doc.SetAuthor(author, true)
	}
	if !meta.CreatedAt.IsZero() {
		doc.SetCreationDate(meta.CreatedAt)
		doc.SetModificationDate(meta.CreatedAt)
	}
	doc.SetFont(fontFamily, "", c.fontSize)
	doc.AddPage()
	return c
}

// Fpdf exposes the underlying document for builders that need raw access.
func (c *Canvas) Fpdf() *fpdf.Fpdf { return c.pdf }

// ContentWidth is the printable width between the side margins.
func (c *Canvas) ContentWidth() float64 { return c.pageWidth - c.left - c.right }

// PageSize returns the page width and height.
func (c *Canvas) PageSize() (float64, float64) { return c.pageWidth, c.pageHeight }

// LineHeight is the height of one line of body text.
func (c *Canvas) LineHeight() float64 { return c.lineHeight }

// Y returns the cursor position.
func (c *Canvas) Y() float64 { return c.pdf.GetY() }

// Title draws a bold, centered document title.
func (c *Canvas) Title(text string) {
	c.withFont("B", titleFontSize, func() {
		c.pdf.SetX(c.left)
		c.pdf.MultiCell(0, titleFontSize*lineHeightFactor, c.tr(text), "", "C", false)
	})
	c.pdf.Ln(6)
}

// Heading draws a bold left-aligned line.
func (c *Canvas) Heading(text string) {
	c.ensureSpace(headingFontSize*lineHeightFactor + c.lineHeight)
	c.withFont("B", headingFontSize, func() {
		c.pdf.SetX(c.left)
		c.pdf.MultiCell(0, headingFontSize*lineHeightFactor, c.tr(text), "", "L", false)
	})
	c.pdf.Ln(2)
}

// Paragraph draws wrapped plain text.
func (c *Canvas) Paragraph(text string) {
	c.pdf.SetX(c.left)
	c.pdf.MultiCell(0, c.lineHeight, c.tr(text), "", "L", false)
}

// RichParagraph draws wrapped text with <b>, <i>, <u> and <br> markup.
func (c *Canvas) RichParagraph(markup string) {
	c.pdf.SetX(c.left)
	html := c.pdf.HTMLBasicNew()
	html.Write(c.lineHeight, c.tr(markup))
	c.pdf.Ln(c.lineHeight)
	c.pdf.SetFont(fontFamily, "", c.fontSize)
}

// Spacer moves the cursor down by h; negative values move it up.
func (c *Canvas) Spacer(h float64) {
	if h >= 0 {
		c.pdf.Ln(h)
		return
	}
	c.pdf.SetXY(c.left, c.pdf.GetY()+h)
}

// Checkbox draws a size×size box at x, y with an X when checked.
func (c *Canvas) Checkbox(x, y, size float64, checked bool) {
	c.pdf.SetLineWidth(boxLineWidth)
	c.pdf.Rect(x, y, size, size, "D")
	if !checked {
		return
	}
	c.withFont("B", size, func() {
		c.pdf.SetXY(x, y)
		c.pdf.CellFormat(size, size, "X", "", 0, "CM", false, 0, "")
	})
}

// CheckboxRow draws a checkbox followed by label on its own line.
func (c *Canvas) CheckboxRow(label string, checked bool) {
	c.checkLine(label, checked, "", c.fontSize)
}

// SectionHeader draws a checkbox followed by a bold section title.
func (c *Canvas) SectionHeader(title string, checked bool) {
	c.checkLine(title, checked, "B", headingFontSize)
}

func (c *Canvas) checkLine(label string, checked bool, style string, size float64) {
	height := maxFloat(checkboxSize, size*lineHeightFactor)
	c.ensureSpace(height + 4)
	y := c.pdf.GetY()
	c.Checkbox(c.left, y+(height-checkboxSize)/2, checkboxSize, checked)
	c.withFont(style, size, func() {
		c.pdf.SetXY(c.left+checkboxSize+6, y)
		c.pdf.CellFormat(0, height, c.tr(label), "", 1, "LM", false, 0, "")
	})
	c.pdf.Ln(4)
}

// BoxLine draws text inside a full-width bordered box of at least minHeight.
func (c *Canvas) BoxLine(text string, minHeight float64) {
	c.Table([]float64{c.ContentWidth()}, [][]Cell{{{Text: text, MinHeight: minHeight}}})
}

// Bytes renders the document.
func (c *Canvas) Bytes() ([]byte, error) {
	if err := c.pdf.Error(); err != nil {
		return nil, fmt.Errorf("pdf: draw: %w", err)
	}
	var buf bytes.Buffer
	if err := c.pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf: output: %w", err)
	}
	return buf.Bytes(), nil
}

// ensureSpace starts a new page when fewer than h points remain. It reports
// whether a page was added.
func (c *Canvas) ensureSpace(h float64) bool {
	if c.fits(c.pdf.GetY(), h) {
		return false
	}
	c.pdf.AddPage()
	return true
}

func (c *Canvas) fits(y, h float64) bool {
	return y+h <= c.pageHeight-c.bottom
}

func (c *Canvas) withFont(style string, size float64, fn func()) {
	c.pdf.SetFont(fontFamily, style, size)
	fn()
	c.pdf.SetFont(fontFamily, "", c.fontSize)
}

func (c *Canvas) lines(text string, width float64) int {
	text = strings.TrimRight(text, "\n")
	if text == "" || width <= 0 {
		return 1
	}
	n := len(c.pdf.SplitLines([]byte(c.tr(text)), width))
	if n == 0 {
		return 1
	}
	return n
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
