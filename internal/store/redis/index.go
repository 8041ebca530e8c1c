package redis

import (
	"context"
	"fmt"
	"strconv"

	"github.com/nestscout/nestscout/internal/store"
)

// Indexed property fields. Everything else lives in the hash unindexed.
var (
	tagFields     = []string{"property_type", "status", "city", "state", "neighborhood"}
	numericFields = []string{
		"price", "bedrooms", "bathrooms", "square_feet",
		"year_built", "days_on_market", "price_per_sqft",
	}
	isNumericField = func() map[string]bool {
		m := make(map[string]bool, len(numericFields))
		for _, f := range numericFields {
			m[f] = true
		}
		return m
	}()
)

// EnsureIndex creates the property FT index if it does not already exist.
// Schema: TAG fields for categorical attributes, NUMERIC for quantities,
// a comma-separated TAG field for amenities, and an HNSW cosine vector field.
func (s *Store) EnsureIndex(ctx context.Context, dimensions int) error {
	if dimensions <= 0 {
		return fmt.Errorf("dimensions must be positive, got %d", dimensions)
	}

	args := []string{
		s.indexName(), "ON", "HASH",
		"PREFIX", "1", s.prefix + "properties:",
		"SCHEMA",
	}
	for _, f := range tagFields {
		args = append(args, f, "TAG")
	}
	args = append(args, "amenities", "TAG", "SEPARATOR", ",")
	for _, f := range numericFields {
		args = append(args, f, "NUMERIC")
	}
	args = append(args,
		"vector", "VECTOR", "HNSW", "6",
		"TYPE", "FLOAT32",
		"DIM", strconv.Itoa(dimensions),
		"DISTANCE_METRIC", "COSINE",
	)

	cmd := s.client.B().Arbitrary("FT.CREATE").Args(args...).Build()
	if err := s.client.Do(ctx, cmd).Error(); err != nil {
		if isRedisErr(err, "index already exists") {
			return nil
		}
		return fmt.Errorf("create index: %w", err)
	}
	return nil
}

// Stats returns the total number of indexed vectors via a count-only FT.SEARCH.
func (s *Store) Stats(ctx context.Context) (store.Stats, error) {
	cmd := s.client.B().Arbitrary("FT.SEARCH").
		Args(s.indexName(), "*", "LIMIT", "0", "0").Build()
	raw, err := s.client.Do(ctx, cmd).ToArray()
	if err != nil {
		return store.Stats{}, fmt.Errorf("index stats: %w", err)
	}
	if len(raw) == 0 {
		return store.Stats{}, nil
	}
	total, err := raw[0].AsInt64()
	if err != nil {
		return store.Stats{}, fmt.Errorf("parse count: %w", err)
	}
	return store.Stats{TotalVectors: int(total)}, nil
}
