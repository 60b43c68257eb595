package report

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/nonsonwune/result_report/models"
)

func TestRowColor(t *testing.T) {
	cases := []struct {
		pct  float64
		even bool
		want string
	}{
		{95, true, "#E8F5E9"},
		{80, false, "#C8E6C9"},
		{79.9, true, "#FFFDE7"},
		{50, false, "#FFF9C4"},
		{49.9, true, "#FFEBEE"},
		{0, false, "#FFCDD2"},
	}
	for _, tc := range cases {
		if got := RowColor(tc.pct, tc.even); got != MustHex(tc.want) {
			t.Errorf("RowColor(%v, %v) = %v, want %s", tc.pct, tc.even, got, tc.want)
		}
	}
}

func TestParseHex(t *testing.T) {
	c, err := ParseHex("#0f5f9a")
	if err != nil || c != (Color{15, 95, 154}) {
		t.Fatalf("ParseHex = %v, %v", c, err)
	}
	for _, bad := range []string{"", "#fff", "#zzzzzz"} {
		if _, err := ParseHex(bad); err == nil {
			t.Errorf("ParseHex(%q) succeeded", bad)
		}
	}
}

func TestMainPages(t *testing.T) {
	cases := []struct{ n, rows, want int }{
		{0, 23, 1},
		{1, 23, 1},
		{23, 23, 1},
		{24, 23, 2},
		{47, 23, 3},
		{10, 0, 1},
	}
	for _, tc := range cases {
		if got := MainPages(tc.n, tc.rows); got != tc.want {
			t.Errorf("MainPages(%d, %d) = %d, want %d", tc.n, tc.rows, got, tc.want)
		}
	}
}

func TestColumnWidths(t *testing.T) {
	widths := ColumnWidths(174, 3, 30)
	if len(widths) != 8 {
		t.Fatalf("len = %d, want 8", len(widths))
	}
	if math.Abs(sum(widths)-174) > 1e-9 {
		t.Fatalf("sum = %v, want 174", sum(widths))
	}
	if widths[2] <= widths[3] {
		t.Fatalf("name column %v not wider than subject column %v", widths[2], widths[3])
	}
	short := ColumnWidths(174, 3, 2)
	floor := ColumnWidths(174, 3, 12)
	if short[2] != floor[2] {
		t.Fatalf("short names should use the minimum name width")
	}
}

func TestDefaultLinks(t *testing.T) {
	links := DefaultLinks("", "https://example.com/ig")
	if len(links) != 2 || links[0].URL != DefaultTelegramLink || links[1].URL != "https://example.com/ig" {
		t.Fatalf("links = %+v", links)
	}
}

func sampleDocument(n int) Document {
	subjects := models.DefaultSubjects()
	candidates := make([]models.CandidateResult, n)
	for i := range candidates {
		total := 50 - i%50
		candidates[i] = models.CandidateResult{
			Name:          fmt.Sprintf("Candidate %d", i+1),
			SubjectScores: map[string]int{"Maths": total / 2, "Reasoning": total - total/2},
			Total:         total,
			Percentage:    float64(total) * 2,
			Rank:          i%50 + 1,
		}
	}
	var top, bottom []models.CandidateResult
	if n > 0 {
		top = candidates[:min(5, n)]
		bottom = candidates[max(0, n-5):]
	}
	return Document{
		ReportID:   "test-report",
		Title:      "WEEKLY TEST RESULT | DATE: 01/02/2026",
		Subjects:   subjects,
		TotalMax:   50,
		Candidates: candidates,
		Summary: models.SummaryStatistics{
			Count:           n,
			SubjectAverages: map[string]float64{"Maths": 12.5, "Reasoning": 12.5},
			Top:             top,
			Bottom:          bottom,
		},
	}
}

func TestRenderPageCount(t *testing.T) {
	cases := []struct{ candidates, wantPages int }{
		{0, 2},
		{23, 2},
		{24, 3},
		{60, 4},
	}
	r := NewRenderer(Layout{Created: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)})
	for _, tc := range cases {
		var buf bytes.Buffer
		res, err := r.Render(&buf, sampleDocument(tc.candidates))
		if err != nil {
			t.Fatalf("Render(%d): %v", tc.candidates, err)
		}
		if res.Pages != tc.wantPages || res.MainPages != tc.wantPages-1 {
			t.Errorf("Render(%d) pages = %d/%d, want %d", tc.candidates, res.Pages, res.MainPages, tc.wantPages)
		}
		if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF")) {
			t.Errorf("Render(%d) output is not a PDF", tc.candidates)
		}
	}
}

func TestRenderWithBackground(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 60, 80))
	for y := 0; y < 80; y++ {
		for x := 0; x < 60; x++ {
			img.Set(x, y, color.NRGBA{R: 20, G: 90, B: 160, A: uint8(x * 4)})
		}
	}
	var raw bytes.Buffer
	if err := png.Encode(&raw, img); err != nil {
		t.Fatal(err)
	}
	bg, err := PrepareBackground(raw.Bytes())
	if err != nil {
		t.Fatalf("PrepareBackground: %v", err)
	}
	if bg.Format != "png" || bg.Width != 60 || bg.Height != 80 {
		t.Fatalf("background = %s %dx%d", bg.Format, bg.Width, bg.Height)
	}

	doc := sampleDocument(5)
	doc.Background = bg
	var buf bytes.Buffer
	if _, err := NewRenderer(DefaultLayout()).Render(&buf, doc); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(buf.String(), "/URI") {
		t.Fatal("expected link annotations in output")
	}
}

func TestPrepareBackgroundScalesDown(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, MaxBackgroundEdge*2, 10))
	var raw bytes.Buffer
	if err := png.Encode(&raw, img); err != nil {
		t.Fatal(err)
	}
	bg, err := PrepareBackground(raw.Bytes())
	if err != nil {
		t.Fatalf("PrepareBackground: %v", err)
	}
	if bg.Width != MaxBackgroundEdge || bg.Height != 5 {
		t.Fatalf("size = %dx%d", bg.Width, bg.Height)
	}
}

func TestPrepareBackgroundRejectsGarbage(t *testing.T) {
	if _, err := PrepareBackground([]byte("not an image")); err == nil {
		t.Fatal("expected decode error")
	}
	if _, err := PrepareBackground(nil); err == nil {
		t.Fatal("expected error for empty data")
	}
}

func TestSummaryRows(t *testing.T) {
	doc := sampleDocument(3)
	doc.Summary.Qualified = 3
	rows := SummaryRows(doc, 50)

	if rows[0].Cells[0] != "Section / Student" {
		t.Fatalf("header = %v", rows[0].Cells)
	}
	var sections []string
	performers := 0
	for _, r := range rows {
		if r.Section != "" {
			sections = append(sections, r.Section)
		}
		if r.Percentage != nil {
			performers++
		}
	}
	want := []string{SectionMetrics, SectionSubjects, SectionTop, SectionBottom}
	if strings.Join(sections, "|") != strings.Join(want, "|") {
		t.Fatalf("sections = %v", sections)
	}
	if performers != 6 {
		t.Fatalf("performer rows = %d, want 6", performers)
	}

	var qualified string
	for _, r := range rows {
		if strings.HasPrefix(r.Cells[0], "Qualified") {
			qualified = r.Cells[0] + "=" + r.Cells[1]
		}
	}
	if qualified != "Qualified (>=50%)=3" {
		t.Fatalf("qualified row = %q", qualified)
	}
}

func TestMainRowsShading(t *testing.T) {
	r := NewRenderer(DefaultLayout())
	doc := sampleDocument(30)
	rows := r.mainRows(doc, 1)
	if len(rows) != 1+7 {
		t.Fatalf("rows on second page = %d, want 8", len(rows))
	}
	if rows[0][0].fill != headBlue {
		t.Fatal("header not blue")
	}
	if rows[1][0].text != "24" {
		t.Fatalf("first serial on page 2 = %q, want 24", rows[1][0].text)
	}
	if rows[1][2].align != "LM" {
		t.Fatal("name column should be left aligned")
	}
	want := RowColor(doc.Candidates[23].Percentage, false)
	if rows[1][0].fill != want {
		t.Fatalf("row fill = %v, want %v", rows[1][0].fill, want)
	}
}
