package models

// SummaryStatistics represents the batch level analysis printed on the last page
type SummaryStatistics struct {
	Count           int                `json:"count"`
	Mean            float64            `json:"mean"`
	Median          float64            `json:"median"`
	Max             int                `json:"max"`
	Min             int                `json:"min"`
	Qualified       int                `json:"qualified"`
	Disqualified    int                `json:"disqualified"`
	PassPercentage  float64            `json:"pass_percentage"`
	SubjectAverages map[string]float64 `json:"subject_averages"`
	Top             []CandidateResult  `json:"top5"`
	Bottom          []CandidateResult  `json:"bottom5"`
}
