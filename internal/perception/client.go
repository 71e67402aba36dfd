// Package perception is the profiler's boundary with the generative AI
// service. It turns practice descriptions into scored analyses, turns the
// team profile into an action plan, and asks for example practice ideas.
// The client is stateless and safe for concurrent use.
package perception

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/genai"

	"github.com/malcolmbastien/Agile-Team-Profiler/internal/catalog"
	"github.com/malcolmbastien/Agile-Team-Profiler/internal/logging"
	"github.com/malcolmbastien/Agile-Team-Profiler/internal/usage"
)

// Operation names used for logging and usage accounting.
const (
	OpAnalyze    = "analyze"
	OpActionPlan = "action_plan"
	OpIdea       = "idea"
)

const (
	DefaultModel       = "gemini-2.5-flash"
	DefaultTimeout     = 60 * time.Second
	DefaultTemperature = 0.4
	ideaTemperature    = 1.0
)

// ContentGenerator is the slice of the genai API the client needs.
// *genai.Models satisfies it.
type ContentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Config holds configuration for the Gemini client.
type Config struct {
	APIKey      string
	Model       string
	BaseURL     string
	Timeout     time.Duration
	Temperature float32
}

// DefaultConfig returns sensible defaults.
func DefaultConfig(apiKey string) Config {
	return Config{
		APIKey:      apiKey,
		Model:       DefaultModel,
		Timeout:     DefaultTimeout,
		Temperature: DefaultTemperature,
	}
}

// Client implements the analysis operations against Gemini.
type Client struct {
	gen         ContentGenerator
	cat         *catalog.Catalog
	model       string
	timeout     time.Duration
	temperature float32
	tracker     *usage.Tracker

	analysis *analysisContract
	plan     *planContract
}

// Option customizes a Client.
type Option func(*Client)

// WithGenerator replaces the genai transport. Tests use it with fakes.
func WithGenerator(gen ContentGenerator) Option {
	return func(c *Client) { c.gen = gen }
}

// WithCatalog overrides the default attribute catalog.
func WithCatalog(cat *catalog.Catalog) Option {
	return func(c *Client) { c.cat = cat }
}

// WithTracker records every call into t. Without it the client uses the
// tracker attached to the NewClient context, if any.
func WithTracker(t *usage.Tracker) Option {
	return func(c *Client) { c.tracker = t }
}

// NewClient creates a client. Without an API key (and without an injected
// generator) the client is still returned, but every call fails with a
// service error.
func NewClient(ctx context.Context, cfg Config, opts ...Option) (*Client, error) {
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	c := &Client{
		cat:         catalog.Default(),
		model:       cfg.Model,
		timeout:     cfg.Timeout,
		temperature: cfg.Temperature,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.tracker == nil {
		c.tracker = usage.FromContext(ctx)
	}

	if c.gen == nil && cfg.APIKey != "" {
		gc, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:      cfg.APIKey,
			Backend:     genai.BackendGeminiAPI,
			HTTPOptions: genai.HTTPOptions{BaseURL: cfg.BaseURL},
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create Gemini client: %w", err)
		}
		c.gen = gc.Models
	}
	if c.gen == nil {
		logging.APIWarn("[Gemini] API key not configured; analysis requests will fail")
	}

	c.analysis = newAnalysisContract(c.cat)
	c.plan = newPlanContract()

	logging.API("[Gemini] client ready: model=%s timeout=%s attributes=%d", c.model, c.timeout, c.cat.Len())
	return c, nil
}

// Model returns the model name used for requests.
func (c *Client) Model() string {
	return c.model
}

// Catalog returns the attribute catalog the client scores against.
func (c *Client) Catalog() *catalog.Catalog {
	return c.cat
}

// =============================================================================
// TRANSPORT
// =============================================================================

type request struct {
	op          string
	system      string
	user        string
	schema      *genai.Schema // nil = free text
	temperature float32
}

// call tracks one in-flight request for usage accounting.
type call struct {
	op     string
	start  time.Time
	input  int
	output int
}

// generate sends req and returns the response text. Transport failures are
// recorded before returning; the caller records the final outcome of a
// successful transport call via finish.
func (c *Client) generate(ctx context.Context, req request) (string, *call, error) {
	// Auto-apply timeout if context has no deadline (centralized timeout handling)
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	cl := &call{op: req.op, start: time.Now()}
	logging.APIDebug("[Gemini] %s: model=%s system_len=%d user_len=%d structured=%t",
		req.op, c.model, len(req.system), len(req.user), req.schema != nil)

	if c.gen == nil {
		err := fmt.Errorf("%s: %w", req.op, errAPIKeyMissing)
		logging.APIError("[Gemini] %s: API key not configured", req.op)
		c.finish(cl, usage.OutcomeError)
		return "", cl, err
	}

	config := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(req.system, genai.RoleUser),
		Temperature:       genai.Ptr(req.temperature),
	}
	if req.schema != nil {
		config.ResponseMIMEType = "application/json"
		config.ResponseSchema = req.schema
	}

	resp, err := c.gen.GenerateContent(ctx, c.model, genai.Text(req.user), config)
	if err != nil {
		logging.APIError("[Gemini] %s: request failed after %v: %v", req.op, time.Since(cl.start), err)
		c.finish(cl, usage.OutcomeError)
		return "", cl, fmt.Errorf("%s request failed: %w", req.op, err)
	}
	if resp == nil {
		c.finish(cl, usage.OutcomeError)
		return "", cl, fmt.Errorf("%s: empty response", req.op)
	}

	if md := resp.UsageMetadata; md != nil {
		cl.input = int(md.PromptTokenCount)
		cl.output = int(md.CandidatesTokenCount)
	}

	text := resp.Text()
	logging.API("[Gemini] %s: completed in %v response_len=%d tokens_in=%d tokens_out=%d",
		req.op, time.Since(cl.start), len(text), cl.input, cl.output)
	return text, cl, nil
}

func (c *Client) finish(cl *call, outcome string) {
	c.tracker.Track(usage.Event{
		Operation:    cl.op,
		Model:        c.model,
		InputTokens:  cl.input,
		OutputTokens: cl.output,
		Outcome:      outcome,
		Duration:     time.Since(cl.start),
	})
}
