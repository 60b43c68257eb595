package report

import (
	"fmt"
	"strconv"
)

// Summary page section titles.
const (
	SectionMetrics  = "METRICS"
	SectionSubjects = "SUBJECT AVERAGES"
	SectionTop      = "TOP 5 RANKERS"
	SectionBottom   = "BOTTOM 5 PERFORMERS"
)

var topRemarks = []string{"Outstanding", "Excellent", "Very Good", "Good Effort", "Good Effort"}

// SummaryRow is one line of the summary table.
type SummaryRow struct {
	Cells [3]string
	// Section is set on section header rows.
	Section string
	// Percentage is set on performer rows and tints the marks cell.
	Percentage *float64
}

// SummaryRows lays out the summary table, header first.
func SummaryRows(doc Document, passMark float64) []SummaryRow {
	s := doc.Summary
	totalMax := doc.TotalMax
	mark := strconv.FormatFloat(passMark, 'f', -1, 64)

	rows := []SummaryRow{
		{Cells: [3]string{"Section / Student", "Marks Details", "Remarks"}},
		section(SectionMetrics),
		{Cells: [3]string{"Total Candidates", strconv.Itoa(s.Count), "Total Appearing"}},
		{Cells: [3]string{"Batch Average", fmt.Sprintf("%.2f/%d", s.Mean, totalMax), "Overall Class Performance"}},
		{Cells: [3]string{"Median Score", fmt.Sprintf("%.2f/%d", s.Median, totalMax), "Middle Score of Batch"}},
		{Cells: [3]string{"Highest Score", fmt.Sprintf("%d/%d", s.Max, totalMax), "Top Rank Score"}},
		{Cells: [3]string{"Lowest Score", fmt.Sprintf("%d/%d", s.Min, totalMax), "Lowest Score"}},
		{Cells: [3]string{fmt.Sprintf("Qualified (>=%s%%)", mark), strconv.Itoa(s.Qualified), "Candidates Passed"}},
		{Cells: [3]string{fmt.Sprintf("Disqualified (<%s%%)", mark), strconv.Itoa(s.Disqualified), "Candidates Failed"}},
		{Cells: [3]string{"Overall Result", fmt.Sprintf("%.1f%%", s.PassPercentage), "Pass Percentage"}},
		section(SectionSubjects),
	}
	for _, subj := range doc.Subjects {
		rows = append(rows, SummaryRow{Cells: [3]string{
			subj.Name,
			fmt.Sprintf("%.2f/%d", s.SubjectAverages[subj.Name], subj.MaxMarks),
			"Avg. Subject Performance",
		}})
	}

	rows = append(rows, section(SectionTop))
	for i, c := range s.Top {
		pct := c.Percentage
		rows = append(rows, SummaryRow{
			Cells: [3]string{
				fmt.Sprintf("#%d  %s", i+1, c.Name),
				fmt.Sprintf("%d/%d  (%.1f%%)", c.Total, totalMax, c.Percentage),
				topRemarks[min(i, len(topRemarks)-1)],
			},
			Percentage: &pct,
		})
	}

	rows = append(rows, section(SectionBottom))
	for _, c := range s.Bottom {
		pct := c.Percentage
		rows = append(rows, SummaryRow{
			Cells: [3]string{
				fmt.Sprintf("#%d  %s", c.Rank, c.Name),
				fmt.Sprintf("%d/%d  (%.1f%%)", c.Total, totalMax, c.Percentage),
				"Needs Hard Work",
			},
			Percentage: &pct,
		})
	}
	return rows
}

func section(title string) SummaryRow {
	return SummaryRow{Cells: [3]string{title, "", ""}, Section: title}
}

// styleSummary colours the summary table: a blue header, striped body,
// solid section bars and tier-tinted marks on performer rows.
func styleSummary(rows []SummaryRow) []tableRow {
	out := make([]tableRow, len(rows))
	for i, r := range rows {
		row := make(tableRow, len(r.Cells))
		for j, text := range r.Cells {
			row[j] = cell{text: text, align: "LM", fill: white, color: black}
		}
		switch {
		case i == 0:
			for j := range row {
				row[j].align, row[j].fill, row[j].color, row[j].bold = "CM", headBlue, white, true
			}
		case r.Section != "":
			for j := range row {
				row[j].fill, row[j].color, row[j].bold = sectionColors[r.Section], white, true
			}
		default:
			if i%2 == 0 {
				for j := range row {
					row[j].fill = stripe
				}
			}
			if r.Percentage != nil {
				row[1].fill = TierColor(*r.Percentage)
			}
		}
		out[i] = row
	}
	return out
}
