package evaluation

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Summary is the per-configuration rollup of a run.
type Summary struct {
	Accuracy        float64 `json:"accuracy"`
	CorrectnessRate float64 `json:"correctness_rate"`
	AvgLatencyMs    float64 `json:"avg_latency_ms"`
	TotalQueries    int     `json:"total_queries"`
}

// Compile rolls records up into per-configuration summaries. A configuration
// with no records summarizes to zeros rather than being dropped.
func Compile(records []Record, configs []Configuration) map[string]Summary {
	grouped := make(map[string][]Record)
	for _, r := range records {
		grouped[r.Configuration] = append(grouped[r.Configuration], r)
	}

	out := make(map[string]Summary, len(configs))
	for _, cfg := range configs {
		rs := grouped[cfg.Name]
		s := Summary{TotalQueries: len(rs)}
		if len(rs) == 0 {
			out[cfg.Name] = s
			continue
		}
		var accSum, latSum float64
		var correct int
		for _, r := range rs {
			accSum += r.Accuracy
			latSum += r.LatencyMs
			if r.IsCorrect {
				correct++
			}
		}
		n := float64(len(rs))
		s.Accuracy = accSum / n
		s.CorrectnessRate = float64(correct) / n
		s.AvgLatencyMs = latSum / n
		out[cfg.Name] = s
	}
	return out
}

// RenderReport formats the comparison table plus the best-of lines. Rows
// follow the configuration grid order; ties on the best-of lines go to the
// first configuration in that order.
func RenderReport(summaries map[string]Summary, configs []Configuration) string {
	var b strings.Builder
	b.WriteString(strings.Repeat("=", 80) + "\n")
	b.WriteString("SEARCH CONFIGURATION COMPARISON\n")
	b.WriteString(strings.Repeat("=", 80) + "\n")
	fmt.Fprintf(&b, "%-42s %-12s %-12s %-15s\n",
		"Configuration", "Accuracy", "Correct %", "Avg Latency")
	b.WriteString(strings.Repeat("-", 80) + "\n")

	bestAccName, bestLatName := "", ""
	var bestAcc float64 = -1
	var bestLat float64 = -1

	for _, cfg := range configs {
		s := summaries[cfg.Name]
		fmt.Fprintf(&b, "%-42s %-12.3f %-12.1f %-15.1f\n",
			cfg.Name, s.Accuracy, s.CorrectnessRate*100, s.AvgLatencyMs)

		if s.Accuracy > bestAcc {
			bestAcc = s.Accuracy
			bestAccName = cfg.Name
		}
		if s.TotalQueries > 0 && (bestLat < 0 || s.AvgLatencyMs < bestLat) {
			bestLat = s.AvgLatencyMs
			bestLatName = cfg.Name
		}
	}

	b.WriteString(strings.Repeat("-", 80) + "\n")
	fmt.Fprintf(&b, "Best Accuracy:  %s (%.3f)\n", bestAccName, bestAcc)
	if bestLatName != "" {
		fmt.Fprintf(&b, "Best Latency:   %s (%.1f ms)\n", bestLatName, bestLat)
	}
	return b.String()
}

// Results is the serialized artifact of a full run.
type Results struct {
	RunID     string             `json:"run_id"`
	Records   []Record           `json:"records"`
	Summaries map[string]Summary `json:"summaries"`
}

// WriteJSON persists the run artifact. Summary keys serialize in sorted
// order via encoding/json map handling; records keep run order.
func WriteJSON(path string, results Results) error {
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal results: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write results: %w", err)
	}
	return nil
}
