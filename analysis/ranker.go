package analysis

import (
	"sort"

	"github.com/nonsonwune/result_report/models"
)

// Rank orders candidates by total, then percentage (both descending), then
// name, and assigns dense ranks over total alone. The input is not modified.
func Rank(candidates []models.CandidateResult) []models.CandidateResult {
	out := make([]models.CandidateResult, len(candidates))
	copy(out, candidates)

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Total != out[j].Total {
			return out[i].Total > out[j].Total
		}
		if out[i].Percentage != out[j].Percentage {
			return out[i].Percentage > out[j].Percentage
		}
		return out[i].Name < out[j].Name
	})

	rank := 0
	for i := range out {
		if i == 0 || out[i].Total != out[i-1].Total {
			rank++
		}
		out[i].Rank = rank
	}
	return out
}
