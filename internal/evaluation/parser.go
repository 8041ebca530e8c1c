package evaluation

import (
	"regexp"
	"strconv"
	"strings"
)

// ParsedListing is a property recovered from agent response text.
type ParsedListing struct {
	Title        string
	Neighborhood string
	City         string
	State        string
	Price        int
	Bedrooms     int
	Bathrooms    float64
	PropertyType string
}

// Response lines come in pairs: a headline and a details line.
//
//	- Sunset Condo (Downtown, Miami, FL) — $450,000
//	  2 bed | 2 bath | 1000 sqft | condo | 2020
var (
	titleLineRe = regexp.MustCompile(
		`-\s*(.+?)\s*\((.+?),\s*(.+?),\s*(.+?)\)\s*—\s*\$(.+?)$`)
	detailsLineRe = regexp.MustCompile(
		`(\d+)\s*bed\s*\|\s*(\d+(?:\.\d+)?)\s*bath\s*\|\s*.+?\|\s*(\w+)\s*\|`)
)

// ParseResponse extracts listings from free-form agent text. A headline
// opens a listing and flushes the previous one; a details line fills the open
// listing in; the last open listing flushes at end of input. Headlines with
// no details line still yield a listing with zero details, orphan details
// lines are dropped, and unparseable text yields an empty slice, never an
// error.
func ParseResponse(text string) []ParsedListing {
	var out []ParsedListing
	var current *ParsedListing

	for _, line := range strings.Split(text, "\n") {
		if m := titleLineRe.FindStringSubmatch(line); m != nil {
			if current != nil {
				out = append(out, *current)
			}
			current = &ParsedListing{
				Title:        m[1],
				Neighborhood: m[2],
				City:         m[3],
				State:        m[4],
				Price:        parsePrice(m[5]),
			}
			continue
		}
		if m := detailsLineRe.FindStringSubmatch(line); m != nil && current != nil {
			current.Bedrooms, _ = strconv.Atoi(m[1])
			current.Bathrooms, _ = strconv.ParseFloat(m[2], 64)
			current.PropertyType = strings.ToLower(m[3])
		}
	}
	if current != nil {
		out = append(out, *current)
	}
	return out
}

// parsePrice converts "450,000" or "450000.0" to 450000. Unparseable
// prices become 0.
func parsePrice(s string) int {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	s = strings.TrimSuffix(s, ".0")
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
