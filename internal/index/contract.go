package index

import (
	"context"

	"github.com/nestscout/nestscout/internal/domain/search/filter"
	"github.com/nestscout/nestscout/internal/store"
)

// Embedder vectorizes text for indexing and querying.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Store persists and searches property documents.
type Store interface {
	EnsureIndex(ctx context.Context, dimensions int) error
	Upsert(ctx context.Context, doc store.Document) error
	Search(ctx context.Context, vector []float32, pred filter.Predicate, topK int) ([]store.Hit, error)
	Delete(ctx context.Context, id string) error
	Stats(ctx context.Context) (store.Stats, error)
}
