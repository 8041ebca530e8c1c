package evaluation

import (
	"reflect"
	"testing"
)

func TestParseResponse(t *testing.T) {
	text := "Here are the properties I found:\n\n" +
		"- Sunset Condo (Downtown, Miami, FL) — $450,000\n" +
		"  2 bed | 2 bath | 1000 sqft | condo | 2020\n\n" +
		"Let me know if you want more details."

	got := ParseResponse(text)
	want := []ParsedListing{{
		Title:        "Sunset Condo",
		Neighborhood: "Downtown",
		City:         "Miami",
		State:        "FL",
		Price:        450000,
		Bedrooms:     2,
		Bathrooms:    2.0,
		PropertyType: "condo",
	}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ParseResponse = %+v, want %+v", got, want)
	}
}

func TestParseResponse_MultipleListings(t *testing.T) {
	text := "- Sunset Condo (Downtown, Miami, FL) — $450,000\n" +
		"  2 bed | 2 bath | 1000 sqft | condo | 2020\n" +
		"- Desert Oasis (Ahwatukee, Phoenix, AZ) — $425,000\n" +
		"  4 bed | 3 bath | 2400 sqft | house | 2010\n"

	got := ParseResponse(text)
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[1].Title != "Desert Oasis" || got[1].Bedrooms != 4 {
		t.Errorf("second listing = %+v", got[1])
	}
}

func TestParseResponse_FractionalBathrooms(t *testing.T) {
	text := "- Victorian Townhouse (Nob Hill, San Francisco, CA) — $1,200,000\n" +
		"  3 bed | 2.5 bath | 1800 sqft | townhouse | 2019\n"

	got := ParseResponse(text)
	if len(got) != 1 {
		t.Fatalf("len = %d, want 1", len(got))
	}
	if got[0].Price != 1200000 {
		t.Errorf("price = %d, want 1200000", got[0].Price)
	}
	if got[0].Bathrooms != 2.5 {
		t.Errorf("bathrooms = %g, want 2.5", got[0].Bathrooms)
	}
}

func TestParseResponse_HeadlineWithoutDetails(t *testing.T) {
	text := "- Sunset Condo (Downtown, Miami, FL) — $450,000\n" +
		"That one looked promising."

	got := ParseResponse(text)
	if len(got) != 1 {
		t.Fatalf("len = %d, want 1", len(got))
	}
	if got[0].Bedrooms != 0 || got[0].PropertyType != "" {
		t.Errorf("details should be zero-valued, got %+v", got[0])
	}
}

func TestParseResponse_OrphanDetailsIgnored(t *testing.T) {
	text := "2 bed | 2 bath | 1000 sqft | condo | 2020\n"
	if got := ParseResponse(text); len(got) != 0 {
		t.Errorf("orphan details produced %+v", got)
	}
}

func TestParseResponse_EmptyAndProse(t *testing.T) {
	for _, text := range []string{"", "No properties matched your search."} {
		if got := ParseResponse(text); len(got) != 0 {
			t.Errorf("ParseResponse(%q) = %+v, want none", text, got)
		}
	}
}

func TestParsePrice(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"450,000", 450000},
		{"450000", 450000},
		{"450000.0", 450000},
		{"1,234,567", 1234567},
		{"about a million", 0},
	}
	for _, tt := range tests {
		if got := parsePrice(tt.in); got != tt.want {
			t.Errorf("parsePrice(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
