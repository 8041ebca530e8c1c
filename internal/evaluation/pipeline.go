package evaluation

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nestscout/nestscout/internal/agent"
	"github.com/nestscout/nestscout/internal/catalog"
	"github.com/nestscout/nestscout/internal/domain/listing"
	"github.com/nestscout/nestscout/internal/domain/search/filter"
	"github.com/nestscout/nestscout/internal/metrics"
)

// SearchAgent answers a query with response text.
type SearchAgent interface {
	Search(ctx context.Context, query string, spec filter.Spec) (string, error)
}

// ResponseJudge grades one response against the expected listings.
type ResponseJudge interface {
	Evaluate(
		ctx context.Context,
		query string,
		expected []listing.Listing,
		returned []ParsedListing,
		returnedIDs []string,
	) (Judgment, error)
}

// metadataScanLimit caps how many catalog records the keyword fallback scans.
const metadataScanLimit = 10

// Pipeline runs the full configuration grid over the query set.
type Pipeline struct {
	agent   SearchAgent
	judge   ResponseJudge
	catalog []listing.Listing
	queries []catalog.Query
	logger  *zap.Logger
}

// NewPipeline creates a Pipeline.
func NewPipeline(
	searchAgent SearchAgent,
	judge ResponseJudge,
	listings []listing.Listing,
	queries []catalog.Query,
	logger *zap.Logger,
) *Pipeline {
	return &Pipeline{
		agent:   searchAgent,
		judge:   judge,
		catalog: listings,
		queries: queries,
		logger:  logger,
	}
}

// Run executes every configuration against every query sequentially and
// returns the dense result grid. Cell failures never abort the run; they
// yield zero-score records carrying the error text.
func (p *Pipeline) Run(ctx context.Context) (Results, error) {
	runID := uuid.NewString()
	configs := Configurations()
	records := make([]Record, 0, len(configs)*len(p.queries))

	p.logger.Info("evaluation run started",
		zap.String("run_id", runID),
		zap.Int("configurations", len(configs)),
		zap.Int("queries", len(p.queries)),
	)

	for _, cfg := range configs {
		for _, q := range p.queries {
			records = append(records, p.runCell(ctx, cfg, q))
		}
	}

	results := Results{
		RunID:     runID,
		Records:   records,
		Summaries: Compile(records, configs),
	}

	p.logger.Info("evaluation run finished",
		zap.String("run_id", runID),
		zap.Int("records", len(records)),
	)
	return results, nil
}

func (p *Pipeline) runCell(ctx context.Context, cfg Configuration, q catalog.Query) Record {
	rec := Record{
		Configuration: cfg.Name,
		Query:         q.Text,
		ExpectedIDs:   q.ExpectedIDs,
	}

	start := time.Now()
	var resp string
	var err error
	if cfg.UseVectors {
		resp, err = p.agent.Search(ctx, q.Text, filter.Spec{})
	} else {
		resp = p.metadataOnlySearch(q.Text)
	}
	elapsed := time.Since(start)

	rec.LatencyMs = float64(elapsed.Nanoseconds()) / 1e6
	metrics.EvaluationCellDuration.WithLabelValues(cfg.Name).Observe(elapsed.Seconds())

	if err != nil {
		rec.Error = err.Error()
		p.logger.Warn("cell search failed",
			zap.String("configuration", cfg.Name),
			zap.String("query", q.Text),
			zap.Error(err),
		)
		return rec
	}

	parsed := ParseResponse(resp)
	rec.ReturnedIDs = MatchAll(parsed, p.catalog)

	verdict, err := p.judge.Evaluate(ctx, q.Text, p.expectedListings(q), parsed, rec.ReturnedIDs)
	if err != nil {
		rec.Error = err.Error()
		p.logger.Warn("cell judgment failed",
			zap.String("configuration", cfg.Name),
			zap.String("query", q.Text),
			zap.Error(err),
		)
		return rec
	}

	rec.Accuracy = verdict.Accuracy
	rec.IsCorrect = verdict.IsCorrect
	rec.Reasoning = verdict.Reasoning
	return rec
}

// metadataOnlySearch is the no-vectors baseline: a keyword scan over the
// first few catalog records. A record matches when its title plus
// description contains any query token.
func (p *Pipeline) metadataOnlySearch(query string) string {
	tokens := strings.Fields(strings.ToLower(query))

	scan := p.catalog
	if len(scan) > metadataScanLimit {
		scan = scan[:metadataScanLimit]
	}

	var matched []listing.Listing
	for _, l := range scan {
		haystack := strings.ToLower(l.Title + " " + l.Description)
		for _, tok := range tokens {
			if strings.Contains(haystack, tok) {
				matched = append(matched, l)
				break
			}
		}
	}

	if len(matched) == 0 {
		return "No properties matched your search."
	}
	return agent.FormatListings(matched)
}

func (p *Pipeline) expectedListings(q catalog.Query) []listing.Listing {
	var out []listing.Listing
	for _, id := range q.ExpectedIDs {
		for _, l := range p.catalog {
			if l.Meta.PropertyID == id {
				out = append(out, l)
				break
			}
		}
	}
	return out
}
