package analysis

import (
	"sort"

	"github.com/nonsonwune/result_report/models"
)

const (
	// DefaultPassMark is the percentage a candidate needs to qualify.
	DefaultPassMark = 50.0
	// ListSize is the length of the top and bottom performer lists.
	ListSize = 5
)

// Summarize computes the batch statistics of a ranked collection.
func Summarize(ranked []models.CandidateResult, subjects []models.SubjectDefinition, passMark float64) models.SummaryStatistics {
	s := models.SummaryStatistics{
		Count:           len(ranked),
		SubjectAverages: make(map[string]float64, len(subjects)),
		Top:             []models.CandidateResult{},
		Bottom:          []models.CandidateResult{},
	}
	for _, subj := range subjects {
		s.SubjectAverages[subj.Name] = 0
	}
	if len(ranked) == 0 {
		return s
	}

	totals := make([]int, len(ranked))
	sum := 0
	for i, c := range ranked {
		totals[i] = c.Total
		sum += c.Total
		if c.Percentage >= passMark {
			s.Qualified++
		} else {
			s.Disqualified++
		}
		for _, subj := range subjects {
			s.SubjectAverages[subj.Name] += float64(c.Score(subj.Name))
		}
	}
	for _, subj := range subjects {
		s.SubjectAverages[subj.Name] /= float64(len(ranked))
	}

	sort.Ints(totals)
	n := len(totals)
	s.Min, s.Max = totals[0], totals[n-1]
	s.Mean = float64(sum) / float64(n)
	if n%2 == 1 {
		s.Median = float64(totals[n/2])
	} else {
		s.Median = float64(totals[n/2-1]+totals[n/2]) / 2.0
	}
	s.PassPercentage = Percentage(s.Qualified, s.Count)

	s.Top = TopN(ranked, ListSize)
	s.Bottom = BottomN(ranked, ListSize)
	return s
}

// TopN returns the n best candidates by (total, percentage) descending.
// Equal pairs keep their order from the input.
func TopN(candidates []models.CandidateResult, n int) []models.CandidateResult {
	out := make([]models.CandidateResult, len(candidates))
	copy(out, candidates)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Total != out[j].Total {
			return out[i].Total > out[j].Total
		}
		return out[i].Percentage > out[j].Percentage
	})
	return out[:min(n, len(out))]
}

// BottomN returns the n weakest candidates by (total, percentage) ascending.
// It sorts independently of TopN rather than reversing it.
func BottomN(candidates []models.CandidateResult, n int) []models.CandidateResult {
	out := make([]models.CandidateResult, len(candidates))
	copy(out, candidates)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Total != out[j].Total {
			return out[i].Total < out[j].Total
		}
		return out[i].Percentage < out[j].Percentage
	})
	return out[:min(n, len(out))]
}
