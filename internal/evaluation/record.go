package evaluation

// Record is the outcome of one query under one configuration. Failed cells
// still produce a Record, with zero scores and Error set, so every run
// yields a dense configurations-by-queries grid.
type Record struct {
	Configuration string   `json:"configuration"`
	Query         string   `json:"query"`
	Accuracy      float64  `json:"accuracy"`
	IsCorrect     bool     `json:"is_correct"`
	Reasoning     string   `json:"reasoning"`
	LatencyMs     float64  `json:"latency_ms"`
	ReturnedIDs   []string `json:"returned_ids"`
	ExpectedIDs   []string `json:"expected_ids"`
	Error         string   `json:"error,omitempty"`
}
