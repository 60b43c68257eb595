package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/nonsonwune/result_report/analysis"
	"github.com/nonsonwune/result_report/models"
)

func TestWriteTables(t *testing.T) {
	table := models.Table{
		Columns: []string{"Name", "earned 1", "earned 26"},
		Rows: []models.RawRecord{
			{"Name": "Asha", "earned 1": "1", "earned 26": "1"},
			{"Name": "Ravi", "earned 1": "1", "earned 26": ""},
		},
	}
	results := analysis.Run(table, models.DefaultSubjects(), analysis.Options{})

	var buf bytes.Buffer
	writeResultsTable(&buf, results)
	out := buf.String()
	for _, want := range []string{"MATHS (25)", "TOTAL (50)", "Asha", "4.0"} {
		if !strings.Contains(out, want) {
			t.Errorf("results table missing %q:\n%s", want, out)
		}
	}

	buf.Reset()
	writeSummaryTable(&buf, results, 50)
	if !strings.Contains(buf.String(), "TOP 5 RANKERS") {
		t.Errorf("summary table missing section rows:\n%s", buf.String())
	}
}

func TestSessionRequestNeedsMarks(t *testing.T) {
	s := newSession()
	if _, _, err := s.request(); err == nil {
		t.Fatal("expected an error without a marks file")
	}
	if len(s.subjects) != 2 || !strings.HasPrefix(s.title, "MB WEEKLY TEST RESULT") {
		t.Fatalf("session defaults = %+v", s)
	}
}
