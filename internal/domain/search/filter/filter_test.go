package filter

import (
	"encoding/json"
	"reflect"
	"testing"
)

func intPtr(i int) *int           { return &i }
func floatPtr(f float64) *float64 { return &f }

func TestCompile_EmptySpecIsStatusOnly(t *testing.T) {
	p := Compile(Spec{})

	if !p.IsLeaf() {
		t.Fatalf("expected single unwrapped leaf, got %+v", p)
	}
	if p.Field() != "status" || p.Op() != OpEq || p.Value() != "active" {
		t.Errorf("leaf = %s %s %v, want status $eq active", p.Field(), p.Op(), p.Value())
	}
}

func TestCompile_StatusOverride(t *testing.T) {
	p := Compile(Spec{Status: "sold"})

	if p.Value() != "sold" {
		t.Errorf("status value = %v, want sold", p.Value())
	}
}

func TestCompile_ConjunctionHasOneLeafPerField(t *testing.T) {
	p := Compile(Spec{
		PropertyType: "condo",
		City:         "Miami",
		State:        "FL",
		MinBedrooms:  intPtr(2),
		MinBathrooms: floatPtr(1.5),
	})

	if !p.IsAnd() {
		t.Fatalf("expected conjunction, got %+v", p)
	}
	// 5 populated fields + mandatory status leaf.
	if len(p.Children()) != 6 {
		t.Fatalf("children = %d, want 6", len(p.Children()))
	}

	fields := make(map[string]bool)
	for _, c := range p.Children() {
		fields[c.Field()] = true
	}
	for _, want := range []string{"property_type", "city", "state", "bedrooms", "bathrooms", "status"} {
		if !fields[want] {
			t.Errorf("missing leaf for %q", want)
		}
	}
}

func TestCompile_PriceBothBounds(t *testing.T) {
	p := Compile(Spec{MinPrice: intPtr(300000), MaxPrice: intPtr(500000)})

	if !p.IsAnd() || len(p.Children()) != 2 {
		t.Fatalf("expected [price-AND, status], got %+v", p)
	}

	price := p.Children()[0]
	if !price.IsAnd() || len(price.Children()) != 2 {
		t.Fatalf("price node should be an AND of two leaves, got %+v", price)
	}
	lo, hi := price.Children()[0], price.Children()[1]
	if lo.Field() != "price" || lo.Op() != OpGte || lo.Value() != 300000.0 {
		t.Errorf("lower bound = %s %s %v", lo.Field(), lo.Op(), lo.Value())
	}
	if hi.Field() != "price" || hi.Op() != OpLte || hi.Value() != 500000.0 {
		t.Errorf("upper bound = %s %s %v", hi.Field(), hi.Op(), hi.Value())
	}
}

func TestCompile_PriceSingleBoundStaysBare(t *testing.T) {
	p := Compile(Spec{MinPrice: intPtr(300000)})

	if !p.IsAnd() || len(p.Children()) != 2 {
		t.Fatalf("expected [price-leaf, status], got %+v", p)
	}
	price := p.Children()[0]
	if !price.IsLeaf() || price.Op() != OpGte {
		t.Errorf("single bound should be a bare $gte leaf, got %+v", price)
	}
}

func TestCompile_AmenitiesAreIndependentConditions(t *testing.T) {
	p := Compile(Spec{RequiredAmenities: []string{"pool", "gym"}})

	if !p.IsAnd() || len(p.Children()) != 3 {
		t.Fatalf("expected [pool, gym, status], got %+v", p)
	}

	pool, gym := p.Children()[0], p.Children()[1]
	if pool.Op() != OpIn || !reflect.DeepEqual(pool.Value(), []string{"pool"}) {
		t.Errorf("pool leaf = %s %v", pool.Op(), pool.Value())
	}
	if gym.Op() != OpIn || !reflect.DeepEqual(gym.Value(), []string{"gym"}) {
		t.Errorf("gym leaf = %s %v", gym.Op(), gym.Value())
	}

	// A record with only pool must fail the conjunction.
	record := map[string]any{"amenities": []string{"pool"}, "status": "active"}
	if p.Matches(record) {
		t.Error("record with only pool should not match both amenity conditions")
	}
	record["amenities"] = []string{"pool", "gym", "parking"}
	if !p.Matches(record) {
		t.Error("record with both amenities should match")
	}
}

func TestCompile_Idempotent(t *testing.T) {
	spec := Spec{
		PropertyType:      "house",
		City:              "Austin",
		MinPrice:          intPtr(100000),
		MaxPrice:          intPtr(500000),
		RequiredAmenities: []string{"pool"},
	}

	a, b := Compile(spec), Compile(spec)
	if !reflect.DeepEqual(a, b) {
		t.Error("compiling the same spec twice produced different trees")
	}
}

func TestMarshalJSON_WireFormat(t *testing.T) {
	p := Compile(Spec{City: "Miami", MinBedrooms: intPtr(2)})

	data, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	and, ok := decoded["$and"].([]any)
	if !ok {
		t.Fatalf("top level should be $and, got %v", decoded)
	}
	if len(and) != 3 {
		t.Fatalf("$and length = %d, want 3", len(and))
	}

	city := and[0].(map[string]any)["city"].(map[string]any)
	if city["$eq"] != "Miami" {
		t.Errorf("city leaf = %v", city)
	}
	beds := and[1].(map[string]any)["bedrooms"].(map[string]any)
	if beds["$gte"] != 2.0 {
		t.Errorf("bedrooms leaf = %v", beds)
	}
}

func TestMarshalJSON_SingleLeafUnwrapped(t *testing.T) {
	data, err := json.Marshal(Compile(Spec{}))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"status":{"$eq":"active"}}`
	if string(data) != want {
		t.Errorf("json = %s, want %s", data, want)
	}
}

func TestMarshalJSON_All(t *testing.T) {
	data, err := json.Marshal(All())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != "{}" {
		t.Errorf("json = %s, want {}", data)
	}
}

func TestMatches(t *testing.T) {
	record := map[string]any{
		"property_type": "condo",
		"status":        "active",
		"city":          "Miami",
		"price":         450000,
		"bedrooms":      2,
		"bathrooms":     2.0,
		"amenities":     []string{"pool", "balcony"},
	}

	tests := []struct {
		name string
		spec Spec
		want bool
	}{
		{"match all populated", Spec{PropertyType: "condo", City: "Miami", MinBedrooms: intPtr(2)}, true},
		{"city mismatch", Spec{City: "Austin"}, false},
		{"price in range", Spec{MinPrice: intPtr(400000), MaxPrice: intPtr(500000)}, true},
		{"price above max", Spec{MaxPrice: intPtr(400000)}, false},
		{"has amenity", Spec{RequiredAmenities: []string{"pool"}}, true},
		{"missing amenity", Spec{RequiredAmenities: []string{"pool", "gym"}}, false},
		{"status filters by default", Spec{Status: "sold"}, false},
		{"bathrooms boundary inclusive", Spec{MinBathrooms: floatPtr(2.0)}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Compile(tt.spec).Matches(record); got != tt.want {
				t.Errorf("Matches = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAnd_ZeroAndOneOperand(t *testing.T) {
	if !And().IsAll() {
		t.Error("And() should be the match-all predicate")
	}
	leaf := Eq("city", "Miami")
	if got := And(leaf); !reflect.DeepEqual(got, leaf) {
		t.Error("And(single) should return the operand unwrapped")
	}
}
