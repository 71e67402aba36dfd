package perception

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"github.com/malcolmbastien/Agile-Team-Profiler/internal/catalog"
	"github.com/malcolmbastien/Agile-Team-Profiler/internal/types"
	"github.com/malcolmbastien/Agile-Team-Profiler/internal/usage"
)

// fakeGenerator records requests and replays a canned response.
type fakeGenerator struct {
	mu       sync.Mutex
	text     string
	err      error
	calls    int
	model    string
	user     string
	config   *genai.GenerateContentConfig
	deadline bool
}

func (f *fakeGenerator) GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.model = model
	f.config = config
	_, f.deadline = ctx.Deadline()
	if len(contents) > 0 && len(contents[0].Parts) > 0 {
		f.user = contents[0].Parts[0].Text
	}
	if f.err != nil {
		return nil, f.err
	}
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Role: genai.RoleModel, Parts: []*genai.Part{{Text: f.text}}},
		}},
		UsageMetadata: &genai.GenerateContentResponseUsageMetadata{
			PromptTokenCount:     120,
			CandidatesTokenCount: 30,
		},
	}, nil
}

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.New(
		[]catalog.Attribute{
			{ID: "A", Name: "Alpha", Description: "first"},
			{ID: "B", Name: "Beta", Description: "second"},
			{ID: "C", Name: "Gamma", Description: "third"},
		},
		[]catalog.AttributeGroup{{Title: "All", AttributeIDs: []string{"A", "B", "C"}}},
		[]string{"Rituals", catalog.FallbackCategory},
	)
	require.NoError(t, err)
	return cat
}

func newTestClient(t *testing.T, gen ContentGenerator, opts ...Option) *Client {
	t.Helper()
	opts = append([]Option{WithGenerator(gen), WithCatalog(testCatalog(t))}, opts...)
	c, err := NewClient(context.Background(), DefaultConfig(""), opts...)
	require.NoError(t, err)
	return c
}

// =============================================================================
// ANALYZE
// =============================================================================

func TestAnalyzePractice_Valid(t *testing.T) {
	gen := &fakeGenerator{text: `{
		"scores": {"A": 3, "B": -2, "C": 0},
		"category": "Rituals",
		"summary": {
			"summary": "Daily syncs help alignment.",
			"positive_impacts": ["A"],
			"negative_impacts": ["B"],
			"key_pros": ["alignment"]
		}
	}`}
	c := newTestClient(t, gen)

	got, err := c.AnalyzePractice(context.Background(), "  We hold a daily stand-up.  ")
	require.NoError(t, err)

	assert.Equal(t, types.Scores{"A": 3, "B": -2, "C": 0}, got.Scores)
	assert.Equal(t, "Rituals", got.Category)
	assert.Equal(t, "Daily syncs help alignment.", got.Summary.Summary)
	assert.Equal(t, []string{"A"}, got.Summary.PositiveImpacts)
	assert.Equal(t, []string{"alignment"}, got.Summary.KeyPros)
	assert.NotNil(t, got.Summary.KeyCons)
	assert.Empty(t, got.Summary.KeyCons)

	assert.Equal(t, DefaultModel, gen.model)
	assert.Contains(t, gen.user, `"We hold a daily stand-up."`)
	assert.Contains(t, gen.user, "Alpha (A): first")
	assert.True(t, gen.deadline, "timeout should be applied when ctx has no deadline")
}

func TestAnalyzePractice_RequestUsesContractSchema(t *testing.T) {
	gen := &fakeGenerator{text: `{"scores":{},"category":"Rituals","summary":{}}`}
	c := newTestClient(t, gen)

	_, err := c.AnalyzePractice(context.Background(), "pairing")
	require.NoError(t, err)

	require.NotNil(t, gen.config)
	assert.Equal(t, "application/json", gen.config.ResponseMIMEType)
	assert.Same(t, c.analysis.schema, gen.config.ResponseSchema)
	assert.Equal(t, []string{"A", "B", "C"}, gen.config.ResponseSchema.Properties["scores"].Required)
	assert.Equal(t, []string{"Rituals", catalog.FallbackCategory}, gen.config.ResponseSchema.Properties["category"].Enum)

	require.NotNil(t, gen.config.SystemInstruction)
	system := gen.config.SystemInstruction.Parts[0].Text
	assert.Contains(t, system, "Rituals, Other")
	assert.Contains(t, system, "-5")
}

func TestAnalyzePractice_UnknownCategoryFallsBack(t *testing.T) {
	gen := &fakeGenerator{text: `{"scores":{"A":2},"category":"Nonexistent Category","summary":{"summary":"s","positive_impacts":["A"],"negative_impacts":[]}}`}
	c := newTestClient(t, gen)

	got, err := c.AnalyzePractice(context.Background(), "something")
	require.NoError(t, err)

	assert.Equal(t, catalog.FallbackCategory, got.Category)
	assert.Equal(t, 2, got.Scores["A"])
	assert.Equal(t, "s", got.Summary.Summary)
	assert.Equal(t, []string{"A"}, got.Summary.PositiveImpacts)
}

func TestAnalyzePractice_NonNumericScoreIsZero(t *testing.T) {
	gen := &fakeGenerator{text: `{"scores":{"A":1,"B":2,"C":"high"},"category":"Rituals","summary":{"summary":"s","positive_impacts":[],"negative_impacts":[]}}`}
	c := newTestClient(t, gen)

	got, err := c.AnalyzePractice(context.Background(), "something")
	require.NoError(t, err)
	assert.Equal(t, types.Scores{"A": 1, "B": 2, "C": 0}, got.Scores)
}

func TestAnalyzePractice_ServiceError(t *testing.T) {
	cause := errors.New("403 permission denied")
	gen := &fakeGenerator{err: cause}
	c := newTestClient(t, gen)

	_, err := c.AnalyzePractice(context.Background(), "something")
	require.Error(t, err)

	var ae *AnalysisError
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, KindService, ae.Kind)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "Failed to get analysis from AI. The API key might be invalid or the service may be unavailable.", err.Error())
}

func TestAnalyzePractice_MalformedResponses(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"not json", "I think this practice is great"},
		{"array", `[1,2,3]`},
		{"null", `null`},
		{"scores missing", `{"category":"Rituals","summary":{}}`},
		{"scores not object", `{"scores":[1,2],"category":"Rituals","summary":{}}`},
		{"summary wrong shape", `{"scores":{},"category":"Rituals","summary":{"positive_impacts":"A"}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, &fakeGenerator{text: tt.text})
			_, err := c.AnalyzePractice(context.Background(), "something")
			require.Error(t, err)
			assert.True(t, IsMalformed(err), "want malformed, got %v", err)
			assert.ErrorIs(t, err, ErrMalformedResponse)
		})
	}
}

func TestAnalyzePractice_EmptyDescriptionMakesNoCall(t *testing.T) {
	gen := &fakeGenerator{}
	c := newTestClient(t, gen)

	_, err := c.AnalyzePractice(context.Background(), " \n\t ")
	assert.ErrorIs(t, err, ErrEmptyDescription)
	assert.Zero(t, gen.calls)
}

func TestAnalyzePractice_MissingAPIKey(t *testing.T) {
	c, err := NewClient(context.Background(), DefaultConfig(""), WithCatalog(testCatalog(t)))
	require.NoError(t, err)

	_, err = c.AnalyzePractice(context.Background(), "something")
	require.Error(t, err)
	assert.Equal(t, KindService, KindOf(err))
	assert.ErrorIs(t, err, errAPIKeyMissing)
}

func TestClient_TracksUsage(t *testing.T) {
	tracker, err := usage.NewTracker(nil)
	require.NoError(t, err)

	c := newTestClient(t, &fakeGenerator{text: "not json"}, WithTracker(tracker))
	_, _ = c.AnalyzePractice(context.Background(), "something")

	c.gen = &fakeGenerator{text: `{"scores":{},"category":"Rituals","summary":{}}`}
	_, err = c.AnalyzePractice(context.Background(), "something")
	require.NoError(t, err)

	stats := tracker.Stats()
	assert.EqualValues(t, 2, stats.Requests)
	assert.EqualValues(t, 1, stats.Failures)
	assert.EqualValues(t, 240, stats.ByOperation[OpAnalyze].Input)
	assert.EqualValues(t, 60, stats.ByOperation[OpAnalyze].Output)
}

func TestNewClient_UsesContextTracker(t *testing.T) {
	tracker, err := usage.NewTracker(nil)
	require.NoError(t, err)

	ctx := usage.NewContext(context.Background(), tracker)
	c, err := NewClient(ctx, DefaultConfig(""),
		WithGenerator(&fakeGenerator{text: `{"scores":{},"category":"Rituals","summary":{}}`}),
		WithCatalog(testCatalog(t)))
	require.NoError(t, err)

	_, err = c.AnalyzePractice(context.Background(), "something")
	require.NoError(t, err)
	assert.EqualValues(t, 1, tracker.Stats().Requests)
}

// =============================================================================
// ACTION PLAN
// =============================================================================

func TestGenerateActionPlan_Valid(t *testing.T) {
	gen := &fakeGenerator{text: "```json\n" + `[
		{"title":"Pair more","description":"Rotate pairs daily.","impacted_attributes":["A","ghost"]},
		{"title":"Shorter sprints","description":"Try one-week sprints."}
	]` + "\n```"}
	c := newTestClient(t, gen)

	practices := []types.Practice{
		{ID: "1", Description: "We pair sometimes."},
		{ID: "2", Description: "Two week sprints."},
	}
	recs, err := c.GenerateActionPlan(context.Background(), practices, types.Scores{"A": 4, "C": -2})
	require.NoError(t, err)

	require.Len(t, recs, 2)
	assert.Equal(t, "Pair more", recs[0].Title)
	assert.Equal(t, []string{"A", "ghost"}, recs[0].ImpactedAttributes, "ids are not validated")
	assert.NotNil(t, recs[1].ImpactedAttributes)

	assert.Same(t, c.plan.schema, gen.config.ResponseSchema)
	assert.Contains(t, gen.user, "- We pair sometimes.\n- Two week sprints.\n")
	assert.Contains(t, gen.user, "Alpha: 4\nBeta: 0\nGamma: -2\n")
}

func TestGenerateActionPlan_NoPracticesMakesNoCall(t *testing.T) {
	gen := &fakeGenerator{}
	c := newTestClient(t, gen)

	_, err := c.GenerateActionPlan(context.Background(), nil, nil)
	assert.ErrorIs(t, err, ErrNoPractices)
	assert.Zero(t, gen.calls)
}

func TestGenerateActionPlan_Errors(t *testing.T) {
	practices := []types.Practice{{ID: "1", Description: "x"}}

	t.Run("malformed", func(t *testing.T) {
		c := newTestClient(t, &fakeGenerator{text: `{"title":"not a list"}`})
		_, err := c.GenerateActionPlan(context.Background(), practices, nil)

		var pe *ActionPlanError
		require.ErrorAs(t, err, &pe)
		assert.Equal(t, KindMalformed, pe.Kind)
		assert.True(t, strings.HasPrefix(err.Error(), "Failed to get action plan from AI."))
	})

	t.Run("service", func(t *testing.T) {
		c := newTestClient(t, &fakeGenerator{err: context.DeadlineExceeded})
		_, err := c.GenerateActionPlan(context.Background(), practices, nil)
		assert.Equal(t, KindService, KindOf(err))
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})
}

// =============================================================================
// IDEA
// =============================================================================

func TestGeneratePracticeIdea(t *testing.T) {
	gen := &fakeGenerator{text: "  \"We demo to stakeholders every Friday.\"\n"}
	c := newTestClient(t, gen)

	idea, err := c.GeneratePracticeIdea(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "We demo to stakeholders every Friday.", idea)

	assert.Nil(t, gen.config.ResponseSchema)
	assert.Empty(t, gen.config.ResponseMIMEType)
}

func TestGeneratePracticeIdea_EmptyIsMalformed(t *testing.T) {
	c := newTestClient(t, &fakeGenerator{text: ` "" `})

	_, err := c.GeneratePracticeIdea(context.Background())
	var ie *IdeaError
	require.ErrorAs(t, err, &ie)
	assert.Equal(t, KindMalformed, ie.Kind)
}
