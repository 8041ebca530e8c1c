package redis

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/redis/rueidis"

	"github.com/nestscout/nestscout/internal/domain/search/filter"
	"github.com/nestscout/nestscout/internal/metrics"
	"github.com/nestscout/nestscout/internal/store"
)

// Search runs a KNN vector similarity search via FT.SEARCH with the
// compiled predicate translated into a RediSearch pre-filter.
func (s *Store) Search(
	ctx context.Context, vector []float32, pred filter.Predicate, topK int,
) ([]store.Hit, error) {
	if len(vector) == 0 {
		return nil, fmt.Errorf("vector is required")
	}
	if topK <= 0 {
		return nil, fmt.Errorf("topK must be positive, got %d", topK)
	}

	filterStr := translatePredicate(pred)
	knnPart := fmt.Sprintf("[KNN %d @vector $BLOB]", topK)
	var queryStr string
	if filterStr != "" {
		queryStr = fmt.Sprintf("(%s)=>%s", filterStr, knnPart)
	} else {
		queryStr = "*=>" + knnPart
	}

	// SORTBY the KNN distance so hits come back nearest-first and the
	// __vector_score field is present on every entry.
	args := []string{
		s.indexName(), queryStr,
		"SORTBY", "__vector_score",
		"PARAMS", "2", "BLOB", vectorToBytes(vector),
		"DIALECT", "2",
	}

	cmd := s.client.B().Arbitrary("FT.SEARCH").Args(args...).Build()
	raw, err := s.client.Do(ctx, cmd).ToArray()
	if err != nil {
		metrics.SearchRequestsTotal.WithLabelValues("redis", "error").Inc()
		return nil, fmt.Errorf("search knn: %w", err)
	}
	metrics.SearchRequestsTotal.WithLabelValues("redis", "success").Inc()

	return s.parseSearchResult(raw)
}

func (s *Store) parseSearchResult(raw []rueidis.RedisMessage) ([]store.Hit, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	total, err := raw[0].AsInt64()
	if err != nil {
		return nil, fmt.Errorf("parse total: %w", err)
	}
	if total == 0 {
		return nil, nil
	}

	keyPrefix := s.prefix + "properties:"
	hits := make([]store.Hit, 0, total)

	// 2-stride: [total, key1, fields1, key2, fields2, ...]
	for i := 1; i+1 < len(raw); i += 2 {
		key, err := raw[i].ToString()
		if err != nil {
			continue
		}
		fieldMsgs, err := raw[i+1].ToArray()
		if err != nil {
			continue
		}

		pairs := parseFieldPairs(fieldMsgs)
		hit := store.Hit{
			ID:     strings.TrimPrefix(key, keyPrefix),
			Fields: make(map[string]any, len(pairs)),
		}

		for name, value := range pairs {
			switch {
			case name == "content":
				hit.Content = value
			case name == "vector":
				// raw embedding bytes, not surfaced on hits
			case name == "__vector_score":
				if d, err := strconv.ParseFloat(value, 64); err == nil {
					hit.Score = max(0, 1.0-d) // cosine distance → similarity, clamped
				}
			case name == "amenities":
				if value == "" {
					hit.Fields[name] = []string{}
				} else {
					hit.Fields[name] = strings.Split(value, ",")
				}
			case isNumericField[name]:
				if n, err := strconv.ParseFloat(value, 64); err == nil {
					hit.Fields[name] = n
				}
			default:
				hit.Fields[name] = value
			}
		}

		hits = append(hits, hit)
	}

	return hits, nil
}

func parseFieldPairs(fields []rueidis.RedisMessage) map[string]string {
	m := make(map[string]string, len(fields)/2)
	for j := 0; j+1 < len(fields); j += 2 {
		name, err := fields[j].ToString()
		if err != nil {
			continue
		}
		value, err := fields[j+1].ToString()
		if err != nil {
			continue
		}
		m[name] = value
	}
	return m
}

// --- Predicate translation ---

// translatePredicate renders a compiled filter predicate as a RediSearch
// pre-filter query string. Conjunctions become space-joined clauses, $eq
// becomes a tag match, $gte/$lte numeric ranges, and $in a tag alternation.
func translatePredicate(p filter.Predicate) string {
	switch {
	case p.IsAll():
		return ""
	case p.IsAnd():
		parts := make([]string, 0, len(p.Children()))
		for _, c := range p.Children() {
			if clause := translatePredicate(c); clause != "" {
				parts = append(parts, clause)
			}
		}
		return strings.Join(parts, " ")
	case p.IsLeaf():
		return translateLeaf(p)
	default:
		return ""
	}
}

func translateLeaf(p filter.Predicate) string {
	switch p.Op() {
	case filter.OpEq:
		return fmt.Sprintf("@%s:{%s}", p.Field(), escapeTag(p.Value().(string)))
	case filter.OpGte:
		return fmt.Sprintf("@%s:[%g +inf]", p.Field(), p.Value().(float64))
	case filter.OpLte:
		return fmt.Sprintf("@%s:[-inf %g]", p.Field(), p.Value().(float64))
	case filter.OpIn:
		values := p.Value().([]string)
		escaped := make([]string, len(values))
		for i, v := range values {
			escaped[i] = escapeTag(v)
		}
		return fmt.Sprintf("@%s:{%s}", p.Field(), strings.Join(escaped, "|"))
	default:
		return ""
	}
}

var tagEscaper = strings.NewReplacer(
	",", "\\,",
	".", "\\.",
	"<", "\\<",
	">", "\\>",
	"{", "\\{",
	"}", "\\}",
	"\"", "\\\"",
	"'", "\\'",
	":", "\\:",
	";", "\\;",
	"!", "\\!",
	"@", "\\@",
	"#", "\\#",
	"$", "\\$",
	"%", "\\%",
	"^", "\\^",
	"&", "\\&",
	"*", "\\*",
	"(", "\\(",
	")", "\\)",
	"-", "\\-",
	"+", "\\+",
	"=", "\\=",
	"~", "\\~",
	"|", "\\|",
	" ", "\\ ",
)

func escapeTag(s string) string {
	return tagEscaper.Replace(s)
}
