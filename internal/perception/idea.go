package perception

import (
	"context"
	"fmt"

	"github.com/malcolmbastien/Agile-Team-Profiler/internal/logging"
	"github.com/malcolmbastien/Agile-Team-Profiler/internal/usage"
)

// GeneratePracticeIdea asks for one example practice description, used to
// pre-fill the input box.
func (c *Client) GeneratePracticeIdea(ctx context.Context) (string, error) {
	text, cl, err := c.generate(ctx, request{
		op:          OpIdea,
		system:      ideaSystemPrompt,
		user:        ideaUserPrompt(c.analysis.categories()),
		temperature: ideaTemperature,
	})
	if err != nil {
		return "", &IdeaError{Kind: KindService, Err: err}
	}

	idea := cleanIdea(text)
	if idea == "" {
		err := fmt.Errorf("%w: empty practice idea", ErrMalformedResponse)
		logging.APIError("[Gemini] %s: %v", OpIdea, err)
		c.finish(cl, usage.OutcomeMalformed)
		return "", &IdeaError{Kind: KindMalformed, Err: err}
	}

	c.finish(cl, usage.OutcomeSuccess)
	return idea, nil
}
