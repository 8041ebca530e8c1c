package evaluation

import (
	"strings"

	"github.com/nestscout/nestscout/internal/domain/listing"
)

// UnknownID marks a parsed listing that matched nothing in the catalog.
const UnknownID = "UNKNOWN"

// MatchProperty resolves a parsed listing back to a catalog property ID.
// A match requires title and city to agree case-insensitively and the price
// to agree exactly; the first catalog hit wins.
func MatchProperty(p ParsedListing, catalog []listing.Listing) string {
	for _, l := range catalog {
		if strings.EqualFold(p.Title, l.Title) &&
			strings.EqualFold(p.City, l.Meta.City) &&
			p.Price == l.Meta.Price {
			return l.Meta.PropertyID
		}
	}
	return UnknownID
}

// MatchAll resolves every parsed listing, preserving order.
func MatchAll(parsed []ParsedListing, catalog []listing.Listing) []string {
	ids := make([]string, len(parsed))
	for i, p := range parsed {
		ids[i] = MatchProperty(p, catalog)
	}
	return ids
}
