package analysis

import (
	"log"
	"strings"

	"github.com/nonsonwune/result_report/importer"
	"github.com/nonsonwune/result_report/models"
)

// Aggregator turns raw rows into subject scores.
type Aggregator struct {
	Columns        []string
	Classification importer.Classification
	Coerce         NumericCoercion

	// OnFallback, when set, is told about every cell read as 0 by the coercion policy.
	OnFallback func(column string)

	direct map[string]string
}

// NewAggregator prepares an aggregator for one table.
func NewAggregator(columns []string, c importer.Classification) *Aggregator {
	return &Aggregator{
		Columns:        columns,
		Classification: c,
		Coerce:         LenientNumericCoercion,
	}
}

// SubjectScore computes the obtained marks of one subject for one row.
// The sum is truncated toward zero after accumulation.
func (a *Aggregator) SubjectScore(row models.RawRecord, subject models.SubjectDefinition) int {
	if !a.Classification.HasEarned() {
		col := a.directColumn(subject.Name)
		if col == "" {
			return 0
		}
		return int(a.value(row, col))
	}

	sum := 0.0
	for _, col := range a.Classification.Earned {
		if subject.Covers(a.Classification.Questions[col]) {
			sum += a.value(row, col)
		}
	}
	return int(sum)
}

// Candidate builds the unranked result line of one row.
func (a *Aggregator) Candidate(name string, row models.RawRecord, subjects []models.SubjectDefinition, totalMax int) models.CandidateResult {
	scores := make(map[string]int, len(subjects))
	total := 0
	for _, s := range subjects {
		v := a.SubjectScore(row, s)
		scores[s.Name] = v
		total += v
	}
	return models.CandidateResult{
		Name:          name,
		SubjectScores: scores,
		Total:         total,
		Percentage:    Percentage(total, totalMax),
	}
}

func (a *Aggregator) value(row models.RawRecord, column string) float64 {
	coerce := a.Coerce
	if coerce == nil {
		coerce = LenientNumericCoercion
	}
	v, ok := coerce(row[column])
	if !ok && a.OnFallback != nil {
		a.OnFallback(column)
	}
	return v
}

func (a *Aggregator) directColumn(subject string) string {
	if a.direct == nil {
		a.direct = make(map[string]string)
	}
	if col, ok := a.direct[subject]; ok {
		return col
	}
	col := ""
	for _, c := range a.Columns {
		if strings.ToLower(c) == strings.ToLower(subject) {
			col = c
			break
		}
	}
	if col == "" {
		if near, ok := importer.ClosestColumn(a.Columns, subject, 2); ok {
			log.Printf("Warning: no column named %q, scoring 0 (did you mean %q?)", subject, near)
		} else {
			log.Printf("Warning: no column named %q, scoring 0", subject)
		}
	}
	a.direct[subject] = col
	return col
}
