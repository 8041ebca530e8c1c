// Package filter compiles user-facing search constraints into a metadata
// predicate tree in the vector-store filter query language.
package filter

import (
	"encoding/json"
	"fmt"
)

// Operator is a predicate leaf operator.
type Operator string

// Leaf operators, mirroring the vector-store metadata query language.
const (
	OpEq  Operator = "$eq"
	OpGte Operator = "$gte"
	OpLte Operator = "$lte"
	OpIn  Operator = "$in"
)

type nodeKind int

const (
	kindAll nodeKind = iota // matches everything
	kindLeaf
	kindAnd
)

// Predicate is an immutable node in a compiled filter tree: a single
// field condition, a conjunction of children, or the match-all predicate.
type Predicate struct {
	kind     nodeKind
	field    string
	op       Operator
	value    any // string for $eq, float64 for $gte/$lte, []string for $in
	children []Predicate
}

// All returns the predicate that matches every record.
func All() Predicate { return Predicate{kind: kindAll} }

// Eq creates an exact-match leaf.
func Eq(field, value string) Predicate {
	return Predicate{kind: kindLeaf, field: field, op: OpEq, value: value}
}

// Gte creates a lower-bound leaf.
func Gte(field string, value float64) Predicate {
	return Predicate{kind: kindLeaf, field: field, op: OpGte, value: value}
}

// Lte creates an upper-bound leaf.
func Lte(field string, value float64) Predicate {
	return Predicate{kind: kindLeaf, field: field, op: OpLte, value: value}
}

// In creates a list-membership leaf. For list-valued fields this matches
// records whose field contains any of the given values.
func In(field string, values ...string) Predicate {
	return Predicate{kind: kindLeaf, field: field, op: OpIn, value: values}
}

// And conjoins predicates. A single operand is returned unwrapped;
// no operands yield the match-all predicate.
func And(preds ...Predicate) Predicate {
	switch len(preds) {
	case 0:
		return All()
	case 1:
		return preds[0]
	default:
		return Predicate{kind: kindAnd, children: preds}
	}
}

// IsAll reports whether this is the match-all predicate.
func (p Predicate) IsAll() bool { return p.kind == kindAll }

// IsAnd reports whether this is a conjunction node.
func (p Predicate) IsAnd() bool { return p.kind == kindAnd }

// IsLeaf reports whether this is a single field condition.
func (p Predicate) IsLeaf() bool { return p.kind == kindLeaf }

// Field returns the leaf field name.
func (p Predicate) Field() string { return p.field }

// Op returns the leaf operator.
func (p Predicate) Op() Operator { return p.op }

// Value returns the leaf operand.
func (p Predicate) Value() any { return p.value }

// Children returns the conjunction operands.
func (p Predicate) Children() []Predicate { return p.children }

// MarshalJSON renders the wire format: {field:{"$op":value}} leaves
// under {"$and":[...]} conjunctions; the match-all predicate is {}.
func (p Predicate) MarshalJSON() ([]byte, error) {
	switch p.kind {
	case kindAll:
		return []byte("{}"), nil
	case kindLeaf:
		return json.Marshal(map[string]map[Operator]any{
			p.field: {p.op: p.value},
		})
	case kindAnd:
		return json.Marshal(map[string][]Predicate{"$and": p.children})
	default:
		return nil, fmt.Errorf("unknown predicate kind %d", p.kind)
	}
}

// Matches evaluates the predicate against a record's metadata fields.
// Field values may be string, int, float64, or []string.
func (p Predicate) Matches(fields map[string]any) bool {
	switch p.kind {
	case kindAll:
		return true
	case kindAnd:
		for _, c := range p.children {
			if !c.Matches(fields) {
				return false
			}
		}
		return true
	case kindLeaf:
		return p.matchLeaf(fields[p.field])
	default:
		return false
	}
}

func (p Predicate) matchLeaf(v any) bool {
	switch p.op {
	case OpEq:
		s, ok := v.(string)
		return ok && s == p.value.(string)
	case OpGte:
		n, ok := asFloat(v)
		return ok && n >= p.value.(float64)
	case OpLte:
		n, ok := asFloat(v)
		return ok && n <= p.value.(float64)
	case OpIn:
		want := p.value.([]string)
		switch fv := v.(type) {
		case string:
			for _, w := range want {
				if fv == w {
					return true
				}
			}
		case []string:
			for _, have := range fv {
				for _, w := range want {
					if have == w {
						return true
					}
				}
			}
		}
		return false
	default:
		return false
	}
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}

// Spec enumerates every recognized search constraint. Zero values mean
// "not constrained"; Status defaults to active at compile time.
type Spec struct {
	PropertyType      string
	City              string
	State             string
	Neighborhood      string
	MinBedrooms       *int
	MinBathrooms      *float64
	MinPrice          *int
	MaxPrice          *int
	RequiredAmenities []string
	Status            string
}

// DefaultStatus is the status constraint applied when a spec leaves it unset.
// Every compiled filter carries a status condition: searches never cross
// into non-active listings unless the caller overrides Status explicitly.
const DefaultStatus = "active"

// Compile translates a Spec into a predicate tree. One condition per
// populated field, price bounds folded into a single nested conjunction,
// one containment condition per required amenity, plus the unconditional
// status condition. A single condition is returned unwrapped.
func Compile(s Spec) Predicate {
	var conds []Predicate

	if s.PropertyType != "" {
		conds = append(conds, Eq("property_type", s.PropertyType))
	}
	if s.City != "" {
		conds = append(conds, Eq("city", s.City))
	}
	if s.State != "" {
		conds = append(conds, Eq("state", s.State))
	}
	if s.Neighborhood != "" {
		conds = append(conds, Eq("neighborhood", s.Neighborhood))
	}
	if s.MinBedrooms != nil {
		conds = append(conds, Gte("bedrooms", float64(*s.MinBedrooms)))
	}
	if s.MinBathrooms != nil {
		conds = append(conds, Gte("bathrooms", *s.MinBathrooms))
	}
	if price, ok := compilePrice(s.MinPrice, s.MaxPrice); ok {
		conds = append(conds, price)
	}
	// Each required amenity is an independent containment condition, so the
	// conjunction demands every amenity, not just one.
	for _, a := range s.RequiredAmenities {
		conds = append(conds, In("amenities", a))
	}

	status := s.Status
	if status == "" {
		status = DefaultStatus
	}
	conds = append(conds, Eq("status", status))

	return And(conds...)
}

// compilePrice folds the optional price bounds into a single condition:
// both bounds become one nested conjunction, a single bound stays bare.
func compilePrice(minPrice, maxPrice *int) (Predicate, bool) {
	switch {
	case minPrice != nil && maxPrice != nil:
		return And(
			Gte("price", float64(*minPrice)),
			Lte("price", float64(*maxPrice)),
		), true
	case minPrice != nil:
		return Gte("price", float64(*minPrice)), true
	case maxPrice != nil:
		return Lte("price", float64(*maxPrice)), true
	default:
		return Predicate{}, false
	}
}
