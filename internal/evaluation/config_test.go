package evaluation

import "testing"

func TestConfigurations(t *testing.T) {
	configs := Configurations()
	if len(configs) != 8 {
		t.Fatalf("len = %d, want 8", len(configs))
	}

	if configs[0].Name != "NoVectors_NoSearchable_NoAmenities" {
		t.Errorf("first = %q", configs[0].Name)
	}
	if configs[7].Name != "WithVectors_WithSearchable_WithAmenities" {
		t.Errorf("last = %q", configs[7].Name)
	}

	seen := make(map[string]bool, len(configs))
	for _, c := range configs {
		if seen[c.Name] {
			t.Errorf("duplicate configuration name %q", c.Name)
		}
		seen[c.Name] = true
	}
}
