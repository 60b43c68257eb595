package report

import "github.com/go-pdf/fpdf"

type cell struct {
	text  string
	align string
	fill  Color
	color Color
	bold  bool
}

type tableRow []cell

type tableSpec struct {
	x, y     float64
	widths   []float64
	rows     []tableRow
	fontSize float64
	padding  float64
}

// rowHeight matches a single line of text plus 3pt above and below.
func (t tableSpec) rowHeight() float64 {
	return (t.fontSize*1.2 + 6) * ptToMM
}

// drawTable draws a gridded table with its top-left corner at (x, y) and
// returns the y coordinate below the last row.
func drawTable(pdf *fpdf.Fpdf, tr func(string) string, t tableSpec) float64 {
	h := t.rowHeight()
	pdf.SetDrawColor(gridColor.R, gridColor.G, gridColor.B)
	pdf.SetLineWidth(0.25 * ptToMM)
	pdf.SetCellMargin(t.padding)

	y := t.y
	for _, row := range t.rows {
		x := t.x
		for i, c := range row {
			if i >= len(t.widths) {
				break
			}
			w := t.widths[i]
			style := ""
			if c.bold {
				style = "B"
			}
			pdf.SetFont(fontFamily, style, t.fontSize)
			pdf.SetFillColor(c.fill.R, c.fill.G, c.fill.B)
			pdf.SetTextColor(c.color.R, c.color.G, c.color.B)
			pdf.SetXY(x, y)
			pdf.CellFormat(w, h, fit(pdf, tr, c.text, w-2*t.padding), "1", 0, c.align, true, 0, "")
			x += w
		}
		y += h
	}
	return y
}

// fit translates text for the core fonts, shortening it with a trailing
// ellipsis until it fits width.
func fit(pdf *fpdf.Fpdf, tr func(string) string, text string, width float64) string {
	out := tr(text)
	if width <= 0 || pdf.GetStringWidth(out) <= width {
		return out
	}
	runes := []rune(text)
	for len(runes) > 0 {
		runes = runes[:len(runes)-1]
		out = tr(string(runes) + "...")
		if pdf.GetStringWidth(out) <= width {
			return out
		}
	}
	return ""
}
