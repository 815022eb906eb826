package analysis

import (
	"context"
	"fmt"
	"strings"

	"newsroomai/pkg/ai"
	"newsroomai/pkg/domain"
)

const (
	analyzeTemperature = 0.2
	rewriteTemperature = 0.3
	rewriteMaxTokens   = 800
)

// Analyzer runs the bias analysis pipeline: prompt assembly, one synchronous
// model call at low temperature, then JSON extraction and normalization.
// No retries and no caching; identical input re-invokes the model every time.
type Analyzer struct {
	gen ai.TextGenerator
}

// NewAnalyzer constructs an Analyzer on top of any text generator.
func NewAnalyzer(gen ai.TextGenerator) *Analyzer {
	return &Analyzer{gen: gen}
}

// Analyze produces a normalized bias analysis for the given article text.
// Transport and parser failures propagate to the caller.
func (a *Analyzer) Analyze(ctx context.Context, text string) (domain.Analysis, error) {
	raw, err := a.gen.GenerateText(ctx, analysisPrompt, text, ai.Options{
		Temperature: analyzeTemperature,
	})
	if err != nil {
		return domain.Analysis{}, fmt.Errorf("analysis model call: %w", err)
	}
	return ParseModelOutput(raw)
}

// Rewriter produces a tone-neutral restatement of an article. Unlike the
// Analyzer it returns plain text: no JSON parsing and no local check that
// facts were preserved; that property is delegated entirely to the model.
type Rewriter struct {
	gen ai.TextGenerator
}

// NewRewriter constructs a Rewriter on top of any text generator.
func NewRewriter(gen ai.TextGenerator) *Rewriter {
	return &Rewriter{gen: gen}
}

// Rewrite returns the trimmed model response verbatim.
func (r *Rewriter) Rewrite(ctx context.Context, text string) (string, error) {
	raw, err := r.gen.GenerateText(ctx, rewritePrompt, text, ai.Options{
		Temperature: rewriteTemperature,
		MaxTokens:   rewriteMaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("rewrite model call: %w", err)
	}
	return strings.TrimSpace(raw), nil
}
