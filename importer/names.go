package importer

import (
	"fmt"
	"strings"

	"github.com/nonsonwune/result_report/models"
)

// ResolveNames builds one display name per row. It prefers a firstname and
// lastname pair, then the first column whose name contains "name". Without
// either, or for a blank cell, a "Student N" placeholder is used.
// The second result is false when no name column was found at all.
func ResolveNames(table models.Table) ([]string, bool) {
	first := findColumn(table.Columns, func(c string) bool { return strings.ToLower(strings.TrimSpace(c)) == "firstname" })
	last := findColumn(table.Columns, func(c string) bool { return strings.ToLower(strings.TrimSpace(c)) == "lastname" })

	names := make([]string, len(table.Rows))
	if first != "" && last != "" {
		for i, row := range table.Rows {
			names[i] = orPlaceholder(strings.TrimSpace(cell(row, first)+" "+cell(row, last)), i)
		}
		return names, true
	}

	col := findColumn(table.Columns, func(c string) bool { return strings.Contains(strings.ToLower(c), "name") })
	for i, row := range table.Rows {
		if col == "" {
			names[i] = placeholder(i)
			continue
		}
		names[i] = orPlaceholder(cell(row, col), i)
	}
	return names, col != ""
}

func findColumn(columns []string, match func(string) bool) string {
	for _, c := range columns {
		if match(c) {
			return c
		}
	}
	return ""
}

func cell(row models.RawRecord, column string) string {
	v := row[column]
	if IsBlank(v) {
		return ""
	}
	return strings.TrimSpace(v)
}

func orPlaceholder(name string, i int) string {
	if name == "" {
		return placeholder(i)
	}
	return name
}

func placeholder(i int) string {
	return fmt.Sprintf("Student %d", i+1)
}
