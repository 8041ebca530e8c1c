// Package agent answers natural-language property searches. It compiles the
// caller's constraints, runs the index search, and renders the hits in a
// fixed line format so downstream consumers can parse listings back out.
package agent

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/nestscout/nestscout/internal/domain/listing"
	"github.com/nestscout/nestscout/internal/domain/search/filter"
	"github.com/nestscout/nestscout/internal/store"
)

// Searcher runs filtered semantic searches over the property index.
type Searcher interface {
	Search(ctx context.Context, query string, pred filter.Predicate, topK int) ([]store.Hit, error)
	Stats(ctx context.Context) (store.Stats, error)
}

// ChatClient produces the conversational presentation of search results.
type ChatClient interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// Agent is the search front end. A nil chat client degrades to returning
// the formatted listing block directly.
type Agent struct {
	searcher Searcher
	chat     ChatClient
	topK     int
	logger   *zap.Logger
}

// New creates an Agent.
func New(searcher Searcher, chat ChatClient, topK int, logger *zap.Logger) *Agent {
	return &Agent{searcher: searcher, chat: chat, topK: topK, logger: logger}
}

const presentSystemPrompt = `You are a real estate search assistant. Present the ` +
	`property listings you are given to the user.

Rules:
- Present every listing, in the order given.
- Reproduce each listing's two lines EXACTLY as provided, character for ` +
	`character. Do not reword, reformat, or drop any line.
- You may add one short introductory sentence before the listings.`

// Search runs a filtered search and returns the response text.
func (a *Agent) Search(ctx context.Context, query string, spec filter.Spec) (string, error) {
	pred := filter.Compile(spec)

	hits, err := a.searcher.Search(ctx, query, pred, a.topK)
	if err != nil {
		return "", fmt.Errorf("agent search: %w", err)
	}

	a.logger.Debug("search completed",
		zap.String("query", query),
		zap.Int("hits", len(hits)),
	)

	if len(hits) == 0 {
		return "No properties matched your search.", nil
	}

	block := FormatHits(hits)
	if a.chat == nil {
		return block, nil
	}

	user := fmt.Sprintf("The user searched for: %q\n\nMatching listings:\n\n%s", query, block)
	resp, err := a.chat.Complete(ctx, presentSystemPrompt, user)
	if err != nil {
		return "", fmt.Errorf("present results: %w", err)
	}
	return resp, nil
}

// Stats reports index statistics.
func (a *Agent) Stats(ctx context.Context) (store.Stats, error) {
	return a.searcher.Stats(ctx)
}

// FormatHits renders hits as two lines per listing:
//
//	- Title (Neighborhood, City, ST) — $1,234,000
//	  2 bed | 2 bath | 1000 sqft | condo | 2020
func FormatHits(hits []store.Hit) string {
	var b strings.Builder
	for i, h := range hits {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "- %s (%s, %s, %s) — $%s\n",
			fieldString(h, "title"),
			fieldString(h, "neighborhood"),
			fieldString(h, "city"),
			fieldString(h, "state"),
			groupThousands(fieldInt(h, "price")),
		)
		fmt.Fprintf(&b, "  %d bed | %s bath | %d sqft | %s | %d\n",
			fieldInt(h, "bedrooms"),
			trimFloat(fieldFloat(h, "bathrooms")),
			fieldInt(h, "square_feet"),
			fieldString(h, "property_type"),
			fieldInt(h, "year_built"),
		)
	}
	return b.String()
}

// FormatListings renders catalog listings in the same two-line shape as
// FormatHits.
func FormatListings(listings []listing.Listing) string {
	var b strings.Builder
	for i, l := range listings {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "- %s (%s, %s, %s) — $%s\n",
			l.Title, l.Meta.Neighborhood, l.Meta.City, l.Meta.State,
			groupThousands(l.Meta.Price),
		)
		fmt.Fprintf(&b, "  %d bed | %s bath | %d sqft | %s | %d\n",
			l.Meta.Bedrooms,
			trimFloat(l.Meta.Bathrooms),
			l.Meta.SquareFeet,
			l.Meta.PropertyType,
			l.Meta.YearBuilt,
		)
	}
	return b.String()
}

func fieldString(h store.Hit, name string) string {
	if s, ok := h.Fields[name].(string); ok {
		return s
	}
	return ""
}

func fieldFloat(h store.Hit, name string) float64 {
	switch v := h.Fields[name].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case int64:
		return float64(v)
	default:
		return 0
	}
}

func fieldInt(h store.Hit, name string) int {
	return int(fieldFloat(h, name))
}

func trimFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// groupThousands renders 1234567 as "1,234,567".
func groupThousands(n int) string {
	s := strconv.Itoa(n)
	if n < 0 {
		return "-" + groupThousands(-n)
	}
	if len(s) <= 3 {
		return s
	}
	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteString(",")
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}
