// Package listing holds the canonical property listing domain model.
package listing

import (
	"fmt"
	"strings"
)

// PropertyType is the closed set of property categories.
type PropertyType string

// Property type constants.
const (
	House      PropertyType = "house"
	Apartment  PropertyType = "apartment"
	Condo      PropertyType = "condo"
	Townhouse  PropertyType = "townhouse"
	Studio     PropertyType = "studio"
	Duplex     PropertyType = "duplex"
	Land       PropertyType = "land"
	Commercial PropertyType = "commercial"
)

var propertyTypes = map[PropertyType]bool{
	House: true, Apartment: true, Condo: true, Townhouse: true,
	Studio: true, Duplex: true, Land: true, Commercial: true,
}

// ParsePropertyType validates and converts a string to a PropertyType.
func ParsePropertyType(s string) (PropertyType, error) {
	pt := PropertyType(strings.ToLower(s))
	if !propertyTypes[pt] {
		return "", fmt.Errorf("unknown property type %q", s)
	}
	return pt, nil
}

// Status is the listing lifecycle state.
type Status string

// Listing status constants.
const (
	StatusActive    Status = "active"
	StatusPending   Status = "pending"
	StatusSold      Status = "sold"
	StatusWithdrawn Status = "withdrawn"
	StatusExpired   Status = "expired"
)

var statuses = map[Status]bool{
	StatusActive: true, StatusPending: true, StatusSold: true,
	StatusWithdrawn: true, StatusExpired: true,
}

// ParseStatus validates and converts a string to a Status.
func ParseStatus(s string) (Status, error) {
	st := Status(strings.ToLower(s))
	if !statuses[st] {
		return "", fmt.Errorf("unknown listing status %q", s)
	}
	return st, nil
}

// Amenity is a property amenity tag.
type Amenity string

// Amenity constants.
const (
	Pool            Amenity = "pool"
	Gym             Amenity = "gym"
	Parking         Amenity = "parking"
	PetFriendly     Amenity = "pet_friendly"
	Balcony         Amenity = "balcony"
	Fireplace       Amenity = "fireplace"
	Dishwasher      Amenity = "dishwasher"
	WasherDryer     Amenity = "washer_dryer"
	AirConditioning Amenity = "air_conditioning"
	HardwoodFloors  Amenity = "hardwood_floors"
)

var amenities = map[Amenity]bool{
	Pool: true, Gym: true, Parking: true, PetFriendly: true, Balcony: true,
	Fireplace: true, Dishwasher: true, WasherDryer: true,
	AirConditioning: true, HardwoodFloors: true,
}

// ParseAmenity validates and converts a string to an Amenity.
func ParseAmenity(s string) (Amenity, error) {
	a := Amenity(strings.ToLower(s))
	if !amenities[a] {
		return "", fmt.Errorf("unknown amenity %q", s)
	}
	return a, nil
}

// Metadata holds the structured, filterable attributes of a listing.
type Metadata struct {
	PropertyID   string
	PropertyType PropertyType
	Status       Status
	Price        int
	Bedrooms     int
	Bathrooms    float64
	SquareFeet   int
	City         string
	State        string // 2-letter, uppercase
	Neighborhood string
	YearBuilt    int // 0 when unknown
	Amenities    []Amenity
	DaysOnMarket int
	ListingAgent string
}

// Listing is a complete property listing: free-text content plus metadata.
// Immutable within an evaluation run once created.
type Listing struct {
	Title       string
	Description string
	Meta        Metadata
}

// New validates and normalizes a Listing.
// State is upper-cased; duplicate amenities are dropped, preserving order.
func New(title, description string, meta Metadata) (Listing, error) {
	if title == "" {
		return Listing{}, fmt.Errorf("title is required")
	}
	if description == "" {
		return Listing{}, fmt.Errorf("description is required")
	}
	if meta.PropertyID == "" {
		return Listing{}, fmt.Errorf("property ID is required")
	}
	if !propertyTypes[meta.PropertyType] {
		return Listing{}, fmt.Errorf("invalid property type %q", meta.PropertyType)
	}
	if meta.Status == "" {
		meta.Status = StatusActive
	}
	if !statuses[meta.Status] {
		return Listing{}, fmt.Errorf("invalid status %q", meta.Status)
	}
	if meta.Price <= 0 {
		return Listing{}, fmt.Errorf("price must be positive, got %d", meta.Price)
	}
	if meta.Bedrooms < 0 {
		return Listing{}, fmt.Errorf("bedrooms must be non-negative, got %d", meta.Bedrooms)
	}
	if meta.Bathrooms < 0 {
		return Listing{}, fmt.Errorf("bathrooms must be non-negative, got %g", meta.Bathrooms)
	}
	if meta.SquareFeet <= 0 {
		return Listing{}, fmt.Errorf("square feet must be positive, got %d", meta.SquareFeet)
	}
	if meta.City == "" {
		return Listing{}, fmt.Errorf("city is required")
	}
	if len(meta.State) != 2 {
		return Listing{}, fmt.Errorf("state must be a 2-letter abbreviation, got %q", meta.State)
	}
	meta.State = strings.ToUpper(meta.State)
	if meta.YearBuilt != 0 && (meta.YearBuilt < 1800 || meta.YearBuilt > 2030) {
		return Listing{}, fmt.Errorf("year built %d out of range 1800-2030", meta.YearBuilt)
	}
	if meta.DaysOnMarket < 0 {
		return Listing{}, fmt.Errorf("days on market must be non-negative, got %d", meta.DaysOnMarket)
	}

	seen := make(map[Amenity]bool, len(meta.Amenities))
	deduped := make([]Amenity, 0, len(meta.Amenities))
	for _, a := range meta.Amenities {
		if !amenities[a] {
			return Listing{}, fmt.Errorf("invalid amenity %q", a)
		}
		if seen[a] {
			continue
		}
		seen[a] = true
		deduped = append(deduped, a)
	}
	meta.Amenities = deduped

	return Listing{Title: title, Description: description, Meta: meta}, nil
}

// PricePerSqft returns the derived price per square foot, 0 when square feet is 0.
func (l Listing) PricePerSqft() float64 {
	if l.Meta.SquareFeet == 0 {
		return 0
	}
	return float64(l.Meta.Price) / float64(l.Meta.SquareFeet)
}

// HasAmenity reports whether the listing carries the given amenity.
func (l Listing) HasAmenity(a Amenity) bool {
	for _, have := range l.Meta.Amenities {
		if have == a {
			return true
		}
	}
	return false
}

// AmenityStrings returns amenities in their stable string form.
func (l Listing) AmenityStrings() []string {
	out := make([]string, len(l.Meta.Amenities))
	for i, a := range l.Meta.Amenities {
		out[i] = string(a)
	}
	return out
}

// Content returns the text to embed for this listing.
// Plain form is the raw description; enriched form prefixes the structured
// attributes so the embedding captures type, location, size, and amenities.
func (l Listing) Content(enriched bool) string {
	if !enriched {
		return l.Description
	}

	var b strings.Builder
	b.WriteString(l.Title)
	b.WriteString(". ")
	fmt.Fprintf(&b, "%s in %s, %s, %s. ", l.Meta.PropertyType, l.Meta.Neighborhood, l.Meta.City, l.Meta.State)
	fmt.Fprintf(&b, "%d bedrooms, %g bathrooms, %d sq ft, $%d. ", l.Meta.Bedrooms, l.Meta.Bathrooms, l.Meta.SquareFeet, l.Meta.Price)
	if len(l.Meta.Amenities) > 0 {
		b.WriteString("Amenities: ")
		b.WriteString(strings.Join(l.AmenityStrings(), ", "))
		b.WriteString(". ")
	}
	b.WriteString(l.Description)
	return b.String()
}
