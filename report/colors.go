package report

import (
	"fmt"
	"strconv"
	"strings"
)

// Color is an 8-bit RGB triple.
type Color struct {
	R, G, B int
}

var (
	white     = Color{255, 255, 255}
	black     = Color{0, 0, 0}
	gridColor = MustHex("#666666")
	headBlue  = MustHex("#0f5f9a")
	stripe    = Color{R: 245, G: 247, B: 255} // 0.96, 0.97, 1.0
)

// Row shading tiers of the main table, as (even, odd) pairs.
var (
	tierHigh = [2]Color{MustHex("#E8F5E9"), MustHex("#C8E6C9")}
	tierMid  = [2]Color{MustHex("#FFFDE7"), MustHex("#FFF9C4")}
	tierLow  = [2]Color{MustHex("#FFEBEE"), MustHex("#FFCDD2")}
)

// Section header fills of the summary page.
var sectionColors = map[string]Color{
	SectionMetrics:  MustHex("#1976D2"),
	SectionSubjects: MustHex("#8E24AA"),
	SectionTop:      MustHex("#2E7D32"),
	SectionBottom:   MustHex("#C62828"),
}

// ParseHex reads "#RRGGBB".
func ParseHex(s string) (Color, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) != 6 {
		return Color{}, fmt.Errorf("invalid hex color %q", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	return Color{R: int(v >> 16 & 0xff), G: int(v >> 8 & 0xff), B: int(v & 0xff)}, nil
}

func MustHex(s string) Color {
	c, err := ParseHex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// RowColor is the main table background for a candidate row. Rows at or
// above 80% are green, at or above 50% yellow, the rest red; even rows get
// the lighter shade.
func RowColor(percentage float64, evenRow bool) Color {
	shade := 1
	if evenRow {
		shade = 0
	}
	switch {
	case percentage >= 80:
		return tierHigh[shade]
	case percentage >= 50:
		return tierMid[shade]
	default:
		return tierLow[shade]
	}
}

// TierColor is the solid tint used on the summary page marks cells.
func TierColor(percentage float64) Color {
	return RowColor(percentage, false)
}
