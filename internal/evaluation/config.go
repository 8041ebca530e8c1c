// Package evaluation scores search quality across retrieval configurations:
// it runs a fixed query set under each configuration, grades the responses
// with an LLM judge, and aggregates the results into a comparison report.
package evaluation

import "fmt"

// Configuration is one cell of the retrieval comparison grid.
type Configuration struct {
	Name                 string
	UseVectors           bool
	UseSearchableContent bool
	UseAmenitiesFilter   bool
	Description          string
}

func onOff(b bool, on, off string) string {
	if b {
		return on
	}
	return off
}

// Configurations returns the full 2x2x2 grid. Names are deterministic and
// double as report row labels and metric label values.
func Configurations() []Configuration {
	var out []Configuration
	for _, vectors := range []bool{false, true} {
		for _, searchable := range []bool{false, true} {
			for _, amenities := range []bool{false, true} {
				name := fmt.Sprintf("%s_%s_%s",
					onOff(vectors, "WithVectors", "NoVectors"),
					onOff(searchable, "WithSearchable", "NoSearchable"),
					onOff(amenities, "WithAmenities", "NoAmenities"),
				)
				out = append(out, Configuration{
					Name:                 name,
					UseVectors:           vectors,
					UseSearchableContent: searchable,
					UseAmenitiesFilter:   amenities,
					Description: fmt.Sprintf(
						"vectors=%t searchable_content=%t amenities_filter=%t",
						vectors, searchable, amenities,
					),
				})
			}
		}
	}
	return out
}
