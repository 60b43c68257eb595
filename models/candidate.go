package models

// CandidateResult represents one candidate's computed line in the report
type CandidateResult struct {
	Name          string         `json:"name"`
	SubjectScores map[string]int `json:"subject_scores"`
	Total         int            `json:"total"`
	Percentage    float64        `json:"percentage"`
	Rank          int            `json:"rank"`
}

// Score returns the candidate's score in a subject, 0 when absent.
func (c CandidateResult) Score(subject string) int {
	return c.SubjectScores[subject]
}
