package evaluation

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/nestscout/nestscout/internal/domain/listing"
)

// ChatClient produces judge completions.
type ChatClient interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// Judgment is the judge's verdict on one response.
type Judgment struct {
	Accuracy  float64
	IsCorrect bool
	Reasoning string
}

// Judge grades search responses against the expected result set with an LLM.
type Judge struct {
	chat   ChatClient
	logger *zap.Logger
}

// NewJudge creates a Judge.
func NewJudge(chat ChatClient, logger *zap.Logger) *Judge {
	return &Judge{chat: chat, logger: logger}
}

const judgeSystemPrompt = `You are an expert real estate search evaluator. ` +
	`Given a search query, the properties that should have been returned, and ` +
	`the properties that actually were returned, grade the result.

Respond with exactly three lines:
ACCURACY: <a score from 0.0 to 1.0>
IS_CORRECT: <true if every expected property was returned, else false>
REASONING: <one or two sentences explaining the score>`

// maxReturnedInPrompt caps how many returned listings the judge sees.
const maxReturnedInPrompt = 5

// Evaluate asks the judge to grade one response. The judge sees the query,
// the expected listings with their key attributes, the first few returned
// listings, and both ID lists.
func (j *Judge) Evaluate(
	ctx context.Context,
	query string,
	expected []listing.Listing,
	returned []ParsedListing,
	returnedIDs []string,
) (Judgment, error) {
	expectedIDs := make([]string, len(expected))
	var eb strings.Builder
	for i, l := range expected {
		expectedIDs[i] = l.Meta.PropertyID
		fmt.Fprintf(&eb, "- %s: %s ($%d, %dBR/%gBA, %s, %s)\n",
			l.Meta.PropertyID, l.Title, l.Meta.Price,
			l.Meta.Bedrooms, l.Meta.Bathrooms, l.Meta.City, l.Meta.State)
	}

	var rb strings.Builder
	shown := returned
	if len(shown) > maxReturnedInPrompt {
		shown = shown[:maxReturnedInPrompt]
	}
	for _, p := range shown {
		fmt.Fprintf(&rb, "- %s ($%d, %dBR/%gBA, %s, %s)\n",
			p.Title, p.Price, p.Bedrooms, p.Bathrooms, p.City, p.State)
	}
	if len(returned) > maxReturnedInPrompt {
		fmt.Fprintf(&rb, "... and %d more\n", len(returned)-maxReturnedInPrompt)
	}
	if rb.Len() == 0 {
		rb.WriteString("(none)\n")
	}

	user := fmt.Sprintf(
		"Query: %s\n\nExpected properties:\n%s\nReturned properties:\n%s\n"+
			"Expected IDs: %s\nReturned IDs: %s\n",
		query, eb.String(), rb.String(),
		strings.Join(expectedIDs, ", "), strings.Join(returnedIDs, ", "),
	)

	resp, err := j.chat.Complete(ctx, judgeSystemPrompt, user)
	if err != nil {
		return Judgment{}, fmt.Errorf("judge completion: %w", err)
	}

	verdict := parseJudgment(resp)
	j.logger.Debug("judged response",
		zap.String("query", query),
		zap.Float64("accuracy", verdict.Accuracy),
		zap.Bool("is_correct", verdict.IsCorrect),
	)
	return verdict, nil
}

// parseJudgment reads the tagged verdict lines. Missing or malformed tags
// fall back to a zero score so a sloppy judge response never aborts a run.
func parseJudgment(text string) Judgment {
	var verdict Judgment
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(line, "ACCURACY:"):
			raw := strings.TrimSpace(strings.TrimPrefix(line, "ACCURACY:"))
			if v, err := strconv.ParseFloat(raw, 64); err == nil {
				verdict.Accuracy = min(max(v, 0), 1)
			}
		case strings.HasPrefix(line, "IS_CORRECT:"):
			raw := strings.TrimSpace(strings.TrimPrefix(line, "IS_CORRECT:"))
			verdict.IsCorrect = strings.EqualFold(raw, "true")
		case strings.HasPrefix(line, "REASONING:"):
			if raw := strings.TrimSpace(strings.TrimPrefix(line, "REASONING:")); raw != "" {
				verdict.Reasoning = raw
			}
		}
	}
	return verdict
}
