// Package analysis computes subject scores, ranks and batch statistics from
// a sanitized marks table.
package analysis

import (
	"github.com/nonsonwune/result_report/importer"
	"github.com/nonsonwune/result_report/models"
)

// Results is everything the report needs from one table.
type Results struct {
	Subjects   []models.SubjectDefinition `json:"subjects"`
	TotalMax   int                        `json:"total_max"`
	Candidates []models.CandidateResult   `json:"candidates"`
	Summary    models.SummaryStatistics   `json:"summary"`
}

// Options tunes a Run. The zero value uses the defaults.
type Options struct {
	PassMark float64
	Coerce   NumericCoercion
	Stats    *importer.ImportStats
}

// Run aggregates, ranks and summarizes a sanitized table.
func Run(table models.Table, subjects []models.SubjectDefinition, opts Options) Results {
	passMark := opts.PassMark
	if passMark <= 0 {
		passMark = DefaultPassMark
	}

	classification := importer.ClassifyColumns(table.Columns)
	names, found := importer.ResolveNames(table)

	agg := NewAggregator(table.Columns, classification)
	if opts.Coerce != nil {
		agg.Coerce = opts.Coerce
	}
	if opts.Stats != nil {
		opts.Stats.EarnedColumns = len(classification.Earned)
		opts.Stats.Collisions = append(opts.Stats.Collisions, classification.Collisions...)
		opts.Stats.SyntheticNames = !found && table.Len() > 0
		agg.OnFallback = opts.Stats.AddFallback
	}

	totalMax := models.TotalMax(subjects)
	candidates := make([]models.CandidateResult, table.Len())
	for i, row := range table.Rows {
		candidates[i] = agg.Candidate(names[i], row, subjects, totalMax)
	}

	ranked := Rank(candidates)
	return Results{
		Subjects:   subjects,
		TotalMax:   totalMax,
		Candidates: ranked,
		Summary:    Summarize(ranked, subjects, passMark),
	}
}
