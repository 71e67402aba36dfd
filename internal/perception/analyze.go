package perception

import (
	"context"
	"strings"

	"github.com/malcolmbastien/Agile-Team-Profiler/internal/logging"
	"github.com/malcolmbastien/Agile-Team-Profiler/internal/types"
	"github.com/malcolmbastien/Agile-Team-Profiler/internal/usage"
)

// AnalyzePractice scores a practice description against the catalog,
// picks its category and summarizes its trade-offs.
func (c *Client) AnalyzePractice(ctx context.Context, description string) (types.Analysis, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return types.Analysis{}, ErrEmptyDescription
	}

	text, cl, err := c.generate(ctx, request{
		op:          OpAnalyze,
		system:      analysisSystemPrompt(c.analysis.categories()),
		user:        analysisUserPrompt(c.cat, description),
		schema:      c.analysis.schema,
		temperature: c.temperature,
	})
	if err != nil {
		return types.Analysis{}, &AnalysisError{Kind: KindService, Err: err}
	}

	analysis, err := c.analysis.parse(text)
	if err != nil {
		logging.APIError("[Gemini] %s: %v", OpAnalyze, err)
		c.finish(cl, usage.OutcomeMalformed)
		return types.Analysis{}, &AnalysisError{Kind: KindMalformed, Err: err}
	}

	c.finish(cl, usage.OutcomeSuccess)
	return analysis, nil
}
