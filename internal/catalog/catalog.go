// Package catalog ships the seed dataset: a small cross-market set of
// listings plus the query set used to score search quality against them.
package catalog

import (
	"fmt"

	"github.com/nestscout/nestscout/internal/domain/listing"
)

type seed struct {
	id, title, description string
	ptype                  listing.PropertyType
	price, beds            int
	baths                  float64
	sqft                   int
	city, state, hood      string
	year                   int
	amenities              []listing.Amenity
	daysOnMarket           int
	agent                  string
}

var seeds = []seed{
	{
		id:    "PROP_001",
		title: "Luxury Oceanview Condo in Miami Beach",
		description: "Stunning 2-bedroom condo with panoramic ocean views from the " +
			"15th floor. Recently renovated with modern finishes, open-concept " +
			"living space, and floor-to-ceiling windows. Building features " +
			"resort-style amenities.",
		ptype: listing.Condo, price: 750000, beds: 2, baths: 2.0, sqft: 1200,
		city: "Miami", state: "FL", hood: "South Beach", year: 2020,
		amenities: []listing.Amenity{
			listing.Pool, listing.Gym, listing.Balcony, listing.Parking,
		},
		daysOnMarket: 15, agent: "Maria Rodriguez",
	},
	{
		id:    "PROP_002",
		title: "Spacious Family Home in Austin Suburbs",
		description: "Beautiful 4-bedroom house perfect for families. Large backyard " +
			"with mature trees, updated kitchen with granite countertops, and " +
			"a two-car garage. Quiet neighborhood with excellent schools.",
		ptype: listing.House, price: 485000, beds: 4, baths: 3.0, sqft: 2200,
		city: "Austin", state: "TX", hood: "Cedar Park", year: 2018,
		amenities: []listing.Amenity{
			listing.HardwoodFloors, listing.Fireplace, listing.Parking,
		},
		daysOnMarket: 8, agent: "John Smith",
	},
	{
		id:    "PROP_003",
		title: "Cozy Studio in Manhattan",
		description: "Efficient studio apartment in the heart of Chelsea. Perfect " +
			"for young professionals. Walking distance to galleries, " +
			"restaurants, and subway lines. Building has a live-in super.",
		ptype: listing.Studio, price: 320000, beds: 0, baths: 1.0, sqft: 450,
		city: "New York", state: "NY", hood: "Chelsea", year: 1995,
		amenities: []listing.Amenity{
			listing.Dishwasher, listing.HardwoodFloors,
		},
		daysOnMarket: 22, agent: "Sarah Johnson",
	},
	{
		id:    "PROP_004",
		title: "Victorian Townhouse in San Francisco",
		description: "Classic Victorian townhouse with original architectural " +
			"details and modern updates. Three levels of living space, a " +
			"private garden, and stunning city views from the top floor.",
		ptype: listing.Townhouse, price: 1200000, beds: 3, baths: 2.5, sqft: 1800,
		city: "San Francisco", state: "CA", hood: "Nob Hill", year: 2019,
		amenities: []listing.Amenity{
			listing.Fireplace, listing.Parking, listing.HardwoodFloors,
			listing.Dishwasher,
		},
		daysOnMarket: 30, agent: "David Chen",
	},
	{
		id:    "PROP_005",
		title: "Pet-Friendly Apartment in Denver",
		description: "Bright 2-bedroom apartment welcoming pets of all sizes. " +
			"In-unit washer and dryer, private balcony overlooking the park, " +
			"and central air conditioning. Close to dog parks and trails.",
		ptype: listing.Apartment, price: 275000, beds: 2, baths: 1.0, sqft: 950,
		city: "Denver", state: "CO", hood: "Capitol Hill", year: 2015,
		amenities: []listing.Amenity{
			listing.PetFriendly, listing.WasherDryer, listing.AirConditioning,
			listing.Balcony,
		},
		daysOnMarket: 5, agent: "Lisa Martinez",
	},
	{
		id:    "PROP_006",
		title: "Beachfront Estate in La Jolla",
		description: "Magnificent 5-bedroom estate with direct beach access. " +
			"Infinity pool overlooking the Pacific, chef's kitchen, home " +
			"theater, and a four-car garage. The ultimate coastal lifestyle.",
		ptype: listing.House, price: 2500000, beds: 5, baths: 4.0, sqft: 3200,
		city: "San Diego", state: "CA", hood: "La Jolla", year: 2021,
		amenities: []listing.Amenity{
			listing.Pool, listing.HardwoodFloors, listing.Dishwasher,
			listing.Parking,
		},
		daysOnMarket: 45, agent: "Michael Brown",
	},
	{
		id:    "PROP_007",
		title: "Modern High-Rise Condo in Chicago",
		description: "Sleek 3-bedroom condo on the 22nd floor with river views. " +
			"Floor-to-ceiling windows, quartz countertops, and access to the " +
			"building's fitness center and rooftop deck.",
		ptype: listing.Condo, price: 625000, beds: 3, baths: 2.0, sqft: 1500,
		city: "Chicago", state: "IL", hood: "River North", year: 2017,
		amenities: []listing.Amenity{
			listing.Gym, listing.Dishwasher, listing.Parking,
		},
		daysOnMarket: 12, agent: "Jennifer Wilson",
	},
	{
		id:    "PROP_008",
		title: "Charming Craftsman in Portland",
		description: "Lovingly maintained 1950s craftsman with original hardwood " +
			"floors and a wood-burning fireplace. Large front porch, " +
			"established garden, and a detached studio workspace.",
		ptype: listing.House, price: 395000, beds: 2, baths: 1.0, sqft: 1100,
		city: "Portland", state: "OR", hood: "Alberta", year: 1955,
		amenities: []listing.Amenity{
			listing.HardwoodFloors, listing.Fireplace,
		},
		daysOnMarket: 18, agent: "Ryan Thompson",
	},
	{
		id:    "PROP_009",
		title: "Industrial Loft in Williamsburg",
		description: "Converted warehouse loft with exposed brick walls, soaring " +
			"ceilings, and oversized factory windows. Open floor plan with a " +
			"modern kitchen and spa-like bathroom.",
		ptype: listing.Condo, price: 895000, beds: 2, baths: 2.0, sqft: 1350,
		city: "Brooklyn", state: "NY", hood: "Williamsburg", year: 2016,
		amenities: []listing.Amenity{
			listing.Gym, listing.Dishwasher, listing.HardwoodFloors,
		},
		daysOnMarket: 25, agent: "Alex Rivera",
	},
	{
		id:    "PROP_010",
		title: "Desert Oasis with Pool in Phoenix",
		description: "Single-story 4-bedroom home with a sparkling pool and " +
			"covered patio. Energy-efficient design with solar panels, " +
			"updated HVAC, and low-maintenance desert landscaping.",
		ptype: listing.House, price: 425000, beds: 4, baths: 3.0, sqft: 2400,
		city: "Phoenix", state: "AZ", hood: "Ahwatukee", year: 2010,
		amenities: []listing.Amenity{
			listing.Pool, listing.AirConditioning, listing.Parking,
		},
		daysOnMarket: 10, agent: "Carlos Mendoza",
	},
	{
		id:    "PROP_011",
		title: "Historic Brownstone in Back Bay",
		description: "Elegant 1890s brownstone with period details throughout. " +
			"High ceilings, ornate moldings, two marble fireplaces, and a " +
			"private roof deck with skyline views.",
		ptype: listing.Townhouse, price: 1150000, beds: 3, baths: 2.0, sqft: 1900,
		city: "Boston", state: "MA", hood: "Back Bay", year: 1890,
		amenities: []listing.Amenity{
			listing.Fireplace, listing.HardwoodFloors, listing.WasherDryer,
		},
		daysOnMarket: 35, agent: "Patricia O'Brien",
	},
	{
		id:    "PROP_012",
		title: "Contemporary Apartment in Capitol Hill",
		description: "Stylish 1-bedroom apartment in Seattle's liveliest " +
			"neighborhood. Stainless appliances, in-unit laundry, and a " +
			"secured garage. Steps from coffee shops and light rail.",
		ptype: listing.Apartment, price: 385000, beds: 1, baths: 1.0, sqft: 750,
		city: "Seattle", state: "WA", hood: "Capitol Hill", year: 2019,
		amenities: []listing.Amenity{
			listing.PetFriendly, listing.WasherDryer, listing.Gym,
			listing.Parking,
		},
		daysOnMarket: 7, agent: "Jessica Wong",
	},
}

// Listings returns the seed dataset.
func Listings() ([]listing.Listing, error) {
	out := make([]listing.Listing, 0, len(seeds))
	for _, s := range seeds {
		l, err := listing.New(s.title, s.description, listing.Metadata{
			PropertyID:   s.id,
			PropertyType: s.ptype,
			Status:       listing.StatusActive,
			Price:        s.price,
			Bedrooms:     s.beds,
			Bathrooms:    s.baths,
			SquareFeet:   s.sqft,
			City:         s.city,
			State:        s.state,
			Neighborhood: s.hood,
			YearBuilt:    s.year,
			Amenities:    s.amenities,
			DaysOnMarket: s.daysOnMarket,
			ListingAgent: s.agent,
		})
		if err != nil {
			return nil, fmt.Errorf("seed %s: %w", s.id, err)
		}
		out = append(out, l)
	}
	return out, nil
}

// Query pairs a natural-language search with the listings it should surface.
type Query struct {
	Text        string
	ExpectedIDs []string
}

// Queries returns the evaluation query set. Expected IDs are the ground
// truth a search run is scored against.
func Queries() []Query {
	return []Query{
		{
			Text:        "luxury condo in Miami with ocean views and a pool",
			ExpectedIDs: []string{"PROP_001"},
		},
		{
			Text:        "family house with 4 bedrooms under 500k",
			ExpectedIDs: []string{"PROP_002", "PROP_010"},
		},
		{
			Text:        "studio apartment in Manhattan under 350k",
			ExpectedIDs: []string{"PROP_003"},
		},
		{
			Text:        "townhouse in San Francisco with a fireplace",
			ExpectedIDs: []string{"PROP_004"},
		},
		{
			Text:        "pet friendly apartment in Denver with a balcony",
			ExpectedIDs: []string{"PROP_005"},
		},
		{
			Text:        "beachfront home in California over 2 million",
			ExpectedIDs: []string{"PROP_006"},
		},
		{
			Text:        "high rise condo in Chicago with a gym",
			ExpectedIDs: []string{"PROP_007"},
		},
		{
			Text:        "historic home in Portland with hardwood floors",
			ExpectedIDs: []string{"PROP_008"},
		},
		{
			Text:        "modern loft in Brooklyn with exposed brick",
			ExpectedIDs: []string{"PROP_009"},
		},
		{
			Text:        "homes with pools in warm climates",
			ExpectedIDs: []string{"PROP_001", "PROP_006", "PROP_010"},
		},
	}
}
