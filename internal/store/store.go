// Package store defines the vector store contract for property documents.
package store

import (
	"context"
	"errors"

	"github.com/nestscout/nestscout/internal/domain/search/filter"
)

// Sentinel store errors.
var (
	// ErrNotFound is returned when a document does not exist.
	ErrNotFound = errors.New("document not found")
	// ErrDimensionMismatch is returned when a vector does not match the index dimensions.
	ErrDimensionMismatch = errors.New("vector dimension mismatch")
)

// Document is an embedded property record ready for indexing.
// Fields values may be string, int, float64, or []string.
type Document struct {
	ID      string
	Content string
	Fields  map[string]any
	Vector  []float32
}

// Hit is a similarity-ranked search result. Score is cosine similarity,
// higher means more similar.
type Hit struct {
	ID      string
	Score   float64
	Content string
	Fields  map[string]any
}

// Stats describes index occupancy.
type Stats struct {
	TotalVectors int
}

// Store is the vector store contract. Implementations must rank Search
// results by descending similarity and apply the predicate as a pre-filter.
type Store interface {
	EnsureIndex(ctx context.Context, dimensions int) error
	Upsert(ctx context.Context, doc Document) error
	Search(ctx context.Context, vector []float32, pred filter.Predicate, topK int) ([]Hit, error)
	Delete(ctx context.Context, id string) error
	Stats(ctx context.Context) (Stats, error)
	Close()
}
