package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/nestscout/nestscout/internal/domain/search/filter"
	"github.com/nestscout/nestscout/internal/store"
)

func doc(id string, vec []float32, fields map[string]any) store.Document {
	return store.Document{ID: id, Content: "content " + id, Fields: fields, Vector: vec}
}

func activeFields(city string) map[string]any {
	return map[string]any{"status": "active", "city": city}
}

func TestSearch_RanksByCosineSimilarity(t *testing.T) {
	ctx := context.Background()
	s := New()

	if err := s.Upsert(ctx, doc("far", []float32{0, 1, 0}, activeFields("Miami"))); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if err := s.Upsert(ctx, doc("near", []float32{1, 0.1, 0}, activeFields("Miami"))); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	hits, err := s.Search(ctx, []float32{1, 0, 0}, filter.All(), 10)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(hits) != 2 {
		t.Fatalf("hits = %d, want 2", len(hits))
	}
	if hits[0].ID != "near" {
		t.Errorf("top hit = %q, want near", hits[0].ID)
	}
	if hits[0].Score <= hits[1].Score {
		t.Errorf("scores not descending: %g, %g", hits[0].Score, hits[1].Score)
	}
}

func TestSearch_AppliesPredicate(t *testing.T) {
	ctx := context.Background()
	s := New()

	_ = s.Upsert(ctx, doc("a", []float32{1, 0}, activeFields("Miami")))
	_ = s.Upsert(ctx, doc("b", []float32{1, 0}, activeFields("Austin")))

	pred := filter.Compile(filter.Spec{City: "Miami"})
	hits, err := s.Search(ctx, []float32{1, 0}, pred, 10)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(hits) != 1 || hits[0].ID != "a" {
		t.Errorf("hits = %+v, want only a", hits)
	}
}

func TestSearch_TopKLimit(t *testing.T) {
	ctx := context.Background()
	s := New()

	for _, id := range []string{"a", "b", "c"} {
		_ = s.Upsert(ctx, doc(id, []float32{1, 0}, activeFields("Miami")))
	}

	hits, err := s.Search(ctx, []float32{1, 0}, filter.All(), 2)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(hits) != 2 {
		t.Errorf("hits = %d, want 2", len(hits))
	}
}

func TestUpsert_DimensionMismatch(t *testing.T) {
	ctx := context.Background()
	s := New()
	if err := s.EnsureIndex(ctx, 3); err != nil {
		t.Fatalf("ensure index: %v", err)
	}

	err := s.Upsert(ctx, doc("a", []float32{1, 0}, nil))
	if !errors.Is(err, store.ErrDimensionMismatch) {
		t.Errorf("err = %v, want ErrDimensionMismatch", err)
	}
}

func TestUpsert_ReplacesExisting(t *testing.T) {
	ctx := context.Background()
	s := New()

	_ = s.Upsert(ctx, doc("a", []float32{1, 0}, activeFields("Miami")))
	_ = s.Upsert(ctx, doc("a", []float32{0, 1}, activeFields("Austin")))

	stats, err := s.Stats(ctx)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.TotalVectors != 1 {
		t.Errorf("TotalVectors = %d, want 1", stats.TotalVectors)
	}
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	s := New()

	_ = s.Upsert(ctx, doc("a", []float32{1, 0}, nil))
	if err := s.Delete(ctx, "a"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := s.Delete(ctx, "a"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("second delete err = %v, want ErrNotFound", err)
	}
}
