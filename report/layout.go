package report

import "time"

// Page geometry in millimetres, A4 portrait.
const (
	PageWidth  = 210.0
	PageHeight = 297.0

	titleFromTop       = 63.5
	tableGapAfterTitle = 16.0
	marginLeft         = 18.0
	marginRight        = 18.0
	pageNoFromBottom   = 8.0
	pageNoFromRight    = 10.0

	ptToMM = 25.4 / 72
)

// DefaultRowsPerPage is the number of candidates on one main page.
const DefaultRowsPerPage = 23

// Default hot-zone targets.
const (
	DefaultTelegramLink  = "https://t.me/MurlidharAcademy"
	DefaultInstagramLink = "https://www.instagram.com/murlidhar_academy_official/"
)

// Link is a clickable area on every main page. Coordinates are millimetres
// measured from the bottom-left corner of the page.
type Link struct {
	URL            string
	X1, Y1, X2, Y2 float64
}

// Layout configures the renderer.
type Layout struct {
	RowsPerPage int
	PassMark    float64
	Links       []Link
	Author      string
	// Created is stamped into the document info. Zero means now.
	Created time.Time
}

// DefaultLinks places the Telegram and Instagram hot-zones side by side
// above the footer of the template.
func DefaultLinks(telegram, instagram string) []Link {
	if telegram == "" {
		telegram = DefaultTelegramLink
	}
	if instagram == "" {
		instagram = DefaultInstagramLink
	}
	return []Link{
		{URL: telegram, X1: 20, Y1: 24, X2: 106, Y2: 45},
		{URL: instagram, X1: 110, Y1: 24, X2: 190, Y2: 45},
	}
}

func DefaultLayout() Layout {
	return Layout{
		RowsPerPage: DefaultRowsPerPage,
		PassMark:    50,
		Links:       DefaultLinks("", ""),
	}
}

// MainPages is the number of ranked-table pages for n candidates; an empty
// batch still gets one page.
func MainPages(n, rowsPerPage int) int {
	if rowsPerPage <= 0 {
		rowsPerPage = DefaultRowsPerPage
	}
	pages := (n + rowsPerPage - 1) / rowsPerPage
	return max(1, pages)
}

// ColumnWidths splits width between No, Rank, Name, one column per
// subject, Total and %. The name column grows with the longest name.
func ColumnWidths(width float64, subjects int, longestName int) []float64 {
	const (
		uNo, uRank       = 3.0, 3.0
		uSubject         = 4.0
		uTotal, uPercent = 4.5, 4.5
	)
	uName := float64(max(longestName, 12)) * 0.65
	units := uNo + uRank + uName + uSubject*float64(subjects) + uTotal + uPercent

	widths := make([]float64, 0, subjects+5)
	widths = append(widths, uNo/units*width, uRank/units*width, uName/units*width)
	for i := 0; i < subjects; i++ {
		widths = append(widths, uSubject/units*width)
	}
	return append(widths, uTotal/units*width, uPercent/units*width)
}
