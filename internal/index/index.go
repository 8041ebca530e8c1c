// Package index ties the embedder and the vector store together into a
// property index that can ingest listings and answer filtered searches.
package index

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/nestscout/nestscout/internal/domain/listing"
	"github.com/nestscout/nestscout/internal/domain/search/filter"
	"github.com/nestscout/nestscout/internal/store"
)

// Index embeds listing content and routes documents to the vector store.
type Index struct {
	embedder   Embedder
	store      Store
	dimensions int
	enriched   bool
	logger     *zap.Logger
}

// Options configure index construction.
type Options struct {
	// Dimensions is the embedding width the store index is created with.
	Dimensions int
	// Enriched selects the searchable-content representation: listings are
	// embedded with their structured attributes folded into the text.
	Enriched bool
}

// New creates a property index.
func New(embedder Embedder, st Store, opts Options, logger *zap.Logger) *Index {
	return &Index{
		embedder:   embedder,
		store:      st,
		dimensions: opts.Dimensions,
		enriched:   opts.Enriched,
		logger:     logger,
	}
}

// EnsureIndex creates the store-side search index if it does not exist.
func (ix *Index) EnsureIndex(ctx context.Context) error {
	return ix.store.EnsureIndex(ctx, ix.dimensions)
}

// UpsertListing embeds one listing and writes it to the store.
func (ix *Index) UpsertListing(ctx context.Context, l listing.Listing) error {
	content := l.Content(ix.enriched)

	vector, err := ix.embedder.Embed(ctx, content)
	if err != nil {
		return fmt.Errorf("embed %s: %w", l.Meta.PropertyID, err)
	}

	doc := listingToDocument(l, content, vector)
	if err := ix.store.Upsert(ctx, doc); err != nil {
		return fmt.Errorf("store %s: %w", l.Meta.PropertyID, err)
	}
	return nil
}

// BatchResult tallies a batch ingestion run.
type BatchResult struct {
	Succeeded int
	Failed    int
	Errors    []error
}

// UpsertBatch ingests listings one by one, isolating per-item failures so a
// single bad listing does not abort the batch.
func (ix *Index) UpsertBatch(ctx context.Context, listings []listing.Listing) BatchResult {
	var res BatchResult
	for _, l := range listings {
		if err := ix.UpsertListing(ctx, l); err != nil {
			res.Failed++
			res.Errors = append(res.Errors, err)
			ix.logger.Warn("listing upsert failed",
				zap.String("property_id", l.Meta.PropertyID),
				zap.Error(err),
			)
			continue
		}
		res.Succeeded++
	}

	ix.logger.Info("batch ingestion finished",
		zap.Int("succeeded", res.Succeeded),
		zap.Int("failed", res.Failed),
	)
	return res
}

// Search embeds the query text and runs a filtered KNN search.
func (ix *Index) Search(
	ctx context.Context, query string, pred filter.Predicate, topK int,
) ([]store.Hit, error) {
	if query == "" {
		return nil, fmt.Errorf("query is required")
	}

	vector, err := ix.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	hits, err := ix.store.Search(ctx, vector, pred, topK)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	return hits, nil
}

// Delete removes a listing from the store.
func (ix *Index) Delete(ctx context.Context, propertyID string) error {
	return ix.store.Delete(ctx, propertyID)
}

// Stats reports store-side index statistics.
func (ix *Index) Stats(ctx context.Context) (store.Stats, error) {
	return ix.store.Stats(ctx)
}

// listingToDocument flattens a listing into the store document shape. Every
// metadata attribute becomes a filterable field.
func listingToDocument(l listing.Listing, content string, vector []float32) store.Document {
	m := l.Meta
	fields := map[string]any{
		"title":          l.Title,
		"description":    l.Description,
		"property_type":  string(m.PropertyType),
		"status":         string(m.Status),
		"price":          m.Price,
		"bedrooms":       m.Bedrooms,
		"bathrooms":      m.Bathrooms,
		"square_feet":    m.SquareFeet,
		"city":           m.City,
		"state":          m.State,
		"neighborhood":   m.Neighborhood,
		"year_built":     m.YearBuilt,
		"days_on_market": m.DaysOnMarket,
		"amenities":      l.AmenityStrings(),
		"listing_agent":  m.ListingAgent,
		"price_per_sqft": l.PricePerSqft(),
	}

	return store.Document{
		ID:      m.PropertyID,
		Content: content,
		Fields:  fields,
		Vector:  vector,
	}
}
