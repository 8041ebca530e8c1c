package evaluation

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCompile(t *testing.T) {
	configs := []Configuration{
		{Name: "NoVectors_NoSearchable_NoAmenities"},
		{Name: "WithVectors_NoSearchable_NoAmenities"},
	}
	records := []Record{
		{Configuration: "NoVectors_NoSearchable_NoAmenities", Accuracy: 1.0, IsCorrect: true, LatencyMs: 10},
		{Configuration: "NoVectors_NoSearchable_NoAmenities", Accuracy: 0.0, IsCorrect: false, LatencyMs: 20},
		{Configuration: "NoVectors_NoSearchable_NoAmenities", Accuracy: 0.5, IsCorrect: false, LatencyMs: 30},
	}

	got := Compile(records, configs)

	s := got["NoVectors_NoSearchable_NoAmenities"]
	if s.Accuracy != 0.5 {
		t.Errorf("accuracy = %g, want 0.5", s.Accuracy)
	}
	if s.CorrectnessRate != 1.0/3.0 {
		t.Errorf("correctness = %g, want 1/3", s.CorrectnessRate)
	}
	if s.AvgLatencyMs != 20 {
		t.Errorf("latency = %g, want 20", s.AvgLatencyMs)
	}
	if s.TotalQueries != 3 {
		t.Errorf("total = %d, want 3", s.TotalQueries)
	}

	empty := got["WithVectors_NoSearchable_NoAmenities"]
	if empty != (Summary{}) {
		t.Errorf("config with no records = %+v, want zeros", empty)
	}
}

func TestRenderReport(t *testing.T) {
	configs := []Configuration{
		{Name: "NoVectors_NoSearchable_NoAmenities"},
		{Name: "WithVectors_NoSearchable_NoAmenities"},
	}
	summaries := map[string]Summary{
		"NoVectors_NoSearchable_NoAmenities":   {Accuracy: 0.4, CorrectnessRate: 0.3, AvgLatencyMs: 12.5, TotalQueries: 10},
		"WithVectors_NoSearchable_NoAmenities": {Accuracy: 0.9, CorrectnessRate: 0.8, AvgLatencyMs: 240.1, TotalQueries: 10},
	}

	report := RenderReport(summaries, configs)

	for _, want := range []string{
		"SEARCH CONFIGURATION COMPARISON",
		"NoVectors_NoSearchable_NoAmenities",
		"0.400",
		"0.900",
		"Best Accuracy:  WithVectors_NoSearchable_NoAmenities (0.900)",
		"Best Latency:   NoVectors_NoSearchable_NoAmenities (12.5 ms)",
	} {
		if !strings.Contains(report, want) {
			t.Errorf("report missing %q:\n%s", want, report)
		}
	}
}

func TestRenderReport_TiesGoToFirstConfiguration(t *testing.T) {
	configs := []Configuration{{Name: "first"}, {Name: "second"}}
	summaries := map[string]Summary{
		"first":  {Accuracy: 0.5, AvgLatencyMs: 100, TotalQueries: 10},
		"second": {Accuracy: 0.5, AvgLatencyMs: 100, TotalQueries: 10},
	}

	report := RenderReport(summaries, configs)
	if !strings.Contains(report, "Best Accuracy:  first") {
		t.Errorf("accuracy tie should go to the first configuration:\n%s", report)
	}
	if !strings.Contains(report, "Best Latency:   first") {
		t.Errorf("latency tie should go to the first configuration:\n%s", report)
	}
}

func TestWriteJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.json")
	results := Results{
		RunID: "run-1",
		Records: []Record{
			{Configuration: "NoVectors_NoSearchable_NoAmenities", Query: "q", Accuracy: 0.5},
		},
		Summaries: map[string]Summary{
			"NoVectors_NoSearchable_NoAmenities": {Accuracy: 0.5, TotalQueries: 1},
		},
	}

	if err := WriteJSON(path, results); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	var back Results
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if back.RunID != "run-1" || len(back.Records) != 1 {
		t.Errorf("round trip = %+v", back)
	}
}
