// Package report draws the ranked result table and the summary page into a
// paginated PDF over a background template.
package report

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/nonsonwune/result_report/models"
)

const (
	backgroundName = "background"
	fontFamily     = "Helvetica"
	summaryTitle   = "SUMMARY & ANALYSIS OF THE TEST"
)

// Document is everything drawn into one report.
type Document struct {
	ReportID   string
	Title      string
	Subjects   []models.SubjectDefinition
	TotalMax   int
	Candidates []models.CandidateResult
	Summary    models.SummaryStatistics
	Background *Background
}

// Result describes a rendered report.
type Result struct {
	Pages     int
	MainPages int
}

// Renderer writes result reports.
type Renderer struct {
	layout Layout
}

func NewRenderer(layout Layout) *Renderer {
	if layout.RowsPerPage <= 0 {
		layout.RowsPerPage = DefaultRowsPerPage
	}
	if layout.PassMark <= 0 {
		layout.PassMark = 50
	}
	return &Renderer{layout: layout}
}

// Layout returns the effective layout.
func (r *Renderer) Layout() Layout { return r.layout }

// Render draws the main pages and the trailing summary page and writes the PDF to w.
func (r *Renderer) Render(w io.Writer, doc Document) (Result, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	r.setInfo(pdf, doc)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	if doc.Background != nil && len(doc.Background.JPEG) > 0 {
		pdf.RegisterImageOptionsReader(backgroundName, fpdf.ImageOptions{ImageType: "JPG"}, bytes.NewReader(doc.Background.JPEG))
	}

	mainPages := MainPages(len(doc.Candidates), r.layout.RowsPerPage)
	totalPages := mainPages + 1

	longest := 0
	for _, c := range doc.Candidates {
		longest = max(longest, len([]rune(c.Name)))
	}
	widths := ColumnWidths(PageWidth-marginLeft-marginRight, len(doc.Subjects), longest)

	for p := 0; p < mainPages; p++ {
		r.drawMainPage(pdf, tr, doc, widths, p, totalPages)
	}
	r.drawSummaryPage(pdf, tr, doc, totalPages)

	if pdf.Err() {
		return Result{}, fmt.Errorf("render report: %w", pdf.Error())
	}
	pages := pdf.PageNo()
	if err := pdf.Output(w); err != nil {
		return Result{}, fmt.Errorf("write pdf: %w", err)
	}
	return Result{Pages: pages, MainPages: mainPages}, nil
}

func (r *Renderer) setInfo(pdf *fpdf.Fpdf, doc Document) {
	pdf.SetTitle(doc.Title, true)
	pdf.SetSubject("Exam result report", true)
	pdf.SetCreator("result_report", true)
	if r.layout.Author != "" {
		pdf.SetAuthor(r.layout.Author, true)
	}
	if doc.ReportID != "" {
		pdf.SetKeywords("report-id:"+doc.ReportID, true)
	}
	created := r.layout.Created
	if created.IsZero() {
		created = time.Now()
	}
	pdf.SetCreationDate(created)
}

func (r *Renderer) drawMainPage(pdf *fpdf.Fpdf, tr func(string) string, doc Document, widths []float64, page, totalPages int) {
	pdf.AddPage()
	drawBackground(pdf, doc)
	drawTitle(pdf, tr, doc.Title)

	fontSize := 8.5
	if len(doc.Subjects) > 4 {
		fontSize = 7.0
	}
	rows := r.mainRows(doc, page)
	tableWidth := sum(widths)
	drawTable(pdf, tr, tableSpec{
		x:        (PageWidth - tableWidth) / 2,
		y:        titleFromTop + tableGapAfterTitle,
		widths:   widths,
		rows:     rows,
		fontSize: fontSize,
		padding:  4 * ptToMM,
	})

	for _, l := range r.layout.Links {
		pdf.LinkString(l.X1, PageHeight-l.Y2, l.X2-l.X1, l.Y2-l.Y1, l.URL)
	}
	drawPageNumber(pdf, page+1, totalPages)
}

// mainRows builds the header and the candidate rows of one main page.
func (r *Renderer) mainRows(doc Document, page int) []tableRow {
	header := []string{"No", "Rank", "Student Name"}
	for _, s := range doc.Subjects {
		header = append(header, s.Name)
	}
	header = append(header, "Total", "%")

	rows := make([]tableRow, 0, r.layout.RowsPerPage+1)
	head := make(tableRow, len(header))
	for i, h := range header {
		head[i] = cell{text: h, align: "CM", fill: headBlue, color: white, bold: true}
	}
	rows = append(rows, head)

	start := page * r.layout.RowsPerPage
	end := min(start+r.layout.RowsPerPage, len(doc.Candidates))
	for i := start; i < end; i++ {
		c := doc.Candidates[i]
		fill := RowColor(c.Percentage, len(rows)%2 == 0)

		texts := []string{fmt.Sprint(i + 1), fmt.Sprint(c.Rank), strings.TrimSpace(c.Name)}
		for _, s := range doc.Subjects {
			texts = append(texts, fmt.Sprintf("%d/%d", c.Score(s.Name), s.MaxMarks))
		}
		texts = append(texts, fmt.Sprintf("%d/%d", c.Total, doc.TotalMax), fmt.Sprintf("%.1f%%", c.Percentage))

		row := make(tableRow, len(texts))
		for j, t := range texts {
			align := "CM"
			if j == 2 {
				align = "LM"
			}
			row[j] = cell{text: t, align: align, fill: fill, color: black}
		}
		rows = append(rows, row)
	}
	return rows
}

func (r *Renderer) drawSummaryPage(pdf *fpdf.Fpdf, tr func(string) string, doc Document, totalPages int) {
	pdf.AddPage()
	drawBackground(pdf, doc)
	drawTitle(pdf, tr, summaryTitle)

	tableWidth := PageWidth - marginLeft - marginRight
	widths := []float64{75, 45, tableWidth - 120}
	drawTable(pdf, tr, tableSpec{
		x:        (PageWidth - tableWidth) / 2,
		y:        titleFromTop + tableGapAfterTitle,
		widths:   widths,
		rows:     styleSummary(SummaryRows(doc, r.layout.PassMark)),
		fontSize: 9,
		padding:  6 * ptToMM,
	})
	drawPageNumber(pdf, totalPages, totalPages)
}

func drawBackground(pdf *fpdf.Fpdf, doc Document) {
	if doc.Background == nil || len(doc.Background.JPEG) == 0 {
		return
	}
	pdf.ImageOptions(backgroundName, 0, 0, PageWidth, PageHeight, false, fpdf.ImageOptions{ImageType: "JPG"}, 0, "")
}

func drawTitle(pdf *fpdf.Fpdf, tr func(string) string, title string) {
	pdf.SetFont(fontFamily, "B", 15)
	pdf.SetTextColor(black.R, black.G, black.B)
	t := tr(title)
	pdf.Text((PageWidth-pdf.GetStringWidth(t))/2, titleFromTop, t)
}

func drawPageNumber(pdf *fpdf.Fpdf, page, total int) {
	pdf.SetFont(fontFamily, "", 8)
	pdf.SetTextColor(black.R, black.G, black.B)
	s := fmt.Sprintf("Page %d/%d", page, total)
	pdf.Text(PageWidth-pageNoFromRight-pdf.GetStringWidth(s), PageHeight-pageNoFromBottom, s)
}

func sum(vs []float64) float64 {
	total := 0.0
	for _, v := range vs {
		total += v
	}
	return total
}
