package pdf

// Cell is one table cell. Checks render as stacked checkbox rows instead of
// text when present.
type Cell struct {
	Text      string
	Bold      bool
	Checks    []Check
	MinHeight float64
}

// Check is a labelled checkbox inside a cell.
type Check struct {
	Label   string
	Checked bool
}

// LabelValue builds two-column rows from label/value pairs.
func LabelValue(pairs ...[2]string) [][]Cell {
	rows := make([][]Cell, 0, len(pairs))
	for _, pair := range pairs {
		rows = append(rows, []Cell{{Text: pair[0]}, {Text: pair[1]}})
	}
	return rows
}

// Table draws bordered rows: a 1pt outer box, 0.5pt inner grid and 6pt
// padding, contents vertically centered. Rows move to a new page as a whole.
func (c *Canvas) Table(widths []float64, rows [][]Cell) {
	if len(widths) == 0 || len(rows) == 0 {
		return
	}
	total := 0.0
	for _, w := range widths {
		total += w
	}

	segmentTop := c.pdf.GetY()
	y := segmentTop
	for _, row := range rows {
		height := c.rowHeight(widths, row)
		if !c.fits(y, height) {
			c.outline(segmentTop, total, y-segmentTop)
			c.pdf.AddPage()
			segmentTop = c.pdf.GetY()
			y = segmentTop
		}

		x := c.left
		for idx, w := range widths {
			c.pdf.SetLineWidth(gridLineWidth)
			c.pdf.Rect(x, y, w, height, "D")
			if idx < len(row) {
				c.drawCell(row[idx], x, y, w, height)
			}
			x += w
		}
		y += height
	}
	c.outline(segmentTop, total, y-segmentTop)
	c.pdf.SetXY(c.left, y)
}

func (c *Canvas) outline(top, width, height float64) {
	if height <= 0 {
		return
	}
	c.pdf.SetLineWidth(boxLineWidth)
	c.pdf.Rect(c.left, top, width, height, "D")
}

func (c *Canvas) rowHeight(widths []float64, row []Cell) float64 {
	height := 0.0
	for idx, w := range widths {
		if idx >= len(row) {
			continue
		}
		cell := row[idx]
		h := c.cellContentHeight(cell, w) + 2*cellPadding
		h = maxFloat(h, cell.MinHeight)
		height = maxFloat(height, h)
	}
	return height
}

func (c *Canvas) checkRowHeight() float64 {
	return maxFloat(checkboxSize, c.lineHeight) + 4
}

func (c *Canvas) cellContentHeight(cell Cell, width float64) float64 {
	if len(cell.Checks) > 0 {
		return float64(len(cell.Checks)) * c.checkRowHeight()
	}
	return float64(c.lines(cell.Text, width-2*cellPadding)) * c.lineHeight
}

func (c *Canvas) drawCell(cell Cell, x, y, w, h float64) {
	content := c.cellContentHeight(cell, w)
	top := y + (h-content)/2

	if len(cell.Checks) > 0 {
		rowH := c.checkRowHeight()
		for idx, check := range cell.Checks {
			rowY := top + float64(idx)*rowH
			c.Checkbox(x+cellPadding, rowY+(rowH-checkboxSize)/2, checkboxSize, check.Checked)
			if check.Label != "" {
				c.pdf.SetXY(x+cellPadding+checkboxSize+4, rowY)
				c.pdf.CellFormat(w-2*cellPadding-checkboxSize-4, rowH, c.tr(check.Label), "", 0, "LM", false, 0, "")
			}
		}
		return
	}

	if cell.Text == "" {
		return
	}
	style := ""
	if cell.Bold {
		style = "B"
	}
	c.withFont(style, c.fontSize, func() {
		c.pdf.SetXY(x+cellPadding, top)
		c.pdf.MultiCell(w-2*cellPadding, c.lineHeight, c.tr(cell.Text), "", "L", false)
	})
}
