// Package memory provides an in-process vector store for tests and offline runs.
package memory

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/nestscout/nestscout/internal/domain/search/filter"
	"github.com/nestscout/nestscout/internal/metrics"
	"github.com/nestscout/nestscout/internal/store"
)

// Store is an in-memory store.Store implementation using exact cosine similarity.
type Store struct {
	mu         sync.RWMutex
	dimensions int
	docs       map[string]store.Document
	order      []string // insertion order, for deterministic tie-breaking
}

var _ store.Store = (*Store)(nil)

// New creates an empty in-memory store.
func New() *Store {
	return &Store{docs: make(map[string]store.Document)}
}

// EnsureIndex records the expected vector dimensions.
func (s *Store) EnsureIndex(_ context.Context, dimensions int) error {
	if dimensions <= 0 {
		return fmt.Errorf("dimensions must be positive, got %d", dimensions)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dimensions = dimensions
	return nil
}

// Upsert stores or replaces a document.
func (s *Store) Upsert(_ context.Context, doc store.Document) error {
	if doc.ID == "" {
		return fmt.Errorf("document ID is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.dimensions > 0 && len(doc.Vector) != s.dimensions {
		return fmt.Errorf("document %s has %d dims, index has %d: %w",
			doc.ID, len(doc.Vector), s.dimensions, store.ErrDimensionMismatch)
	}
	if _, exists := s.docs[doc.ID]; !exists {
		s.order = append(s.order, doc.ID)
	}
	s.docs[doc.ID] = doc
	return nil
}

// Search returns up to topK documents matching the predicate, ranked by
// descending cosine similarity to the query vector.
func (s *Store) Search(
	_ context.Context, vector []float32, pred filter.Predicate, topK int,
) ([]store.Hit, error) {
	if topK <= 0 {
		return nil, fmt.Errorf("topK must be positive, got %d", topK)
	}
	metrics.SearchRequestsTotal.WithLabelValues("memory", "success").Inc()

	s.mu.RLock()
	defer s.mu.RUnlock()

	hits := make([]store.Hit, 0, len(s.docs))
	for _, id := range s.order {
		doc := s.docs[id]
		if !pred.Matches(doc.Fields) {
			continue
		}
		hits = append(hits, store.Hit{
			ID:      doc.ID,
			Score:   cosine(vector, doc.Vector),
			Content: doc.Content,
			Fields:  doc.Fields,
		})
	}

	sort.SliceStable(hits, func(i, j int) bool { return hits[i].Score > hits[j].Score })
	if len(hits) > topK {
		hits = hits[:topK]
	}
	return hits, nil
}

// Delete removes a document.
func (s *Store) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.docs[id]; !ok {
		return fmt.Errorf("delete %s: %w", id, store.ErrNotFound)
	}
	delete(s.docs, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// Stats returns index occupancy.
func (s *Store) Stats(_ context.Context) (store.Stats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return store.Stats{TotalVectors: len(s.docs)}, nil
}

// Close is a no-op for the in-memory store.
func (s *Store) Close() {}

func cosine(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
