package perception

import (
	"context"

	"github.com/malcolmbastien/Agile-Team-Profiler/internal/logging"
	"github.com/malcolmbastien/Agile-Team-Profiler/internal/types"
	"github.com/malcolmbastien/Agile-Team-Profiler/internal/usage"
)

// GenerateActionPlan asks for 3-4 recommendations based on the practices
// and their aggregated totals. No partial plan is ever returned.
func (c *Client) GenerateActionPlan(ctx context.Context, practices []types.Practice, totals types.Scores) ([]types.Recommendation, error) {
	if len(practices) == 0 {
		return nil, ErrNoPractices
	}

	text, cl, err := c.generate(ctx, request{
		op:          OpActionPlan,
		system:      actionPlanSystemPrompt,
		user:        actionPlanUserPrompt(c.cat, practices, totals),
		schema:      c.plan.schema,
		temperature: c.temperature,
	})
	if err != nil {
		return nil, &ActionPlanError{Kind: KindService, Err: err}
	}

	recs, err := c.plan.parse(text)
	if err != nil {
		logging.APIError("[Gemini] %s: %v", OpActionPlan, err)
		c.finish(cl, usage.OutcomeMalformed)
		return nil, &ActionPlanError{Kind: KindMalformed, Err: err}
	}

	c.finish(cl, usage.OutcomeSuccess)
	logging.API("[Gemini] %s: %d recommendations for %d practices", OpActionPlan, len(recs), len(practices))
	return recs, nil
}
