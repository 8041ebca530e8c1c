package evaluation

import (
	"testing"

	"github.com/nestscout/nestscout/internal/domain/listing"
)

func matcherCatalog(t *testing.T) []listing.Listing {
	t.Helper()
	l1, err := listing.New("Sunset Condo", "A condo downtown.", listing.Metadata{
		PropertyID: "PROP_001", PropertyType: listing.Condo,
		Price: 450000, Bedrooms: 2, Bathrooms: 2.0, SquareFeet: 1000,
		City: "Miami", State: "FL", Neighborhood: "Downtown",
	})
	if err != nil {
		t.Fatalf("listing.New: %v", err)
	}
	l2, err := listing.New("Desert Oasis", "A house with a pool.", listing.Metadata{
		PropertyID: "PROP_010", PropertyType: listing.House,
		Price: 425000, Bedrooms: 4, Bathrooms: 3.0, SquareFeet: 2400,
		City: "Phoenix", State: "AZ", Neighborhood: "Ahwatukee",
	})
	if err != nil {
		t.Fatalf("listing.New: %v", err)
	}
	return []listing.Listing{l1, l2}
}

func TestMatchProperty(t *testing.T) {
	cat := matcherCatalog(t)

	tests := []struct {
		name string
		p    ParsedListing
		want string
	}{
		{
			"exact match",
			ParsedListing{Title: "Sunset Condo", City: "Miami", Price: 450000},
			"PROP_001",
		},
		{
			"case-insensitive title and city",
			ParsedListing{Title: "SUNSET CONDO", City: "miami", Price: 450000},
			"PROP_001",
		},
		{
			"price off by one",
			ParsedListing{Title: "Sunset Condo", City: "Miami", Price: 450001},
			UnknownID,
		},
		{
			"wrong city",
			ParsedListing{Title: "Sunset Condo", City: "Tampa", Price: 450000},
			UnknownID,
		},
		{
			"second catalog entry",
			ParsedListing{Title: "Desert Oasis", City: "Phoenix", Price: 425000},
			"PROP_010",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MatchProperty(tt.p, cat); got != tt.want {
				t.Errorf("MatchProperty = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMatchAll_PreservesOrder(t *testing.T) {
	cat := matcherCatalog(t)
	parsed := []ParsedListing{
		{Title: "Desert Oasis", City: "Phoenix", Price: 425000},
		{Title: "Mystery Manor", City: "Nowhere", Price: 1},
		{Title: "Sunset Condo", City: "Miami", Price: 450000},
	}

	got := MatchAll(parsed, cat)
	want := []string{"PROP_010", UnknownID, "PROP_001"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("MatchAll[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
