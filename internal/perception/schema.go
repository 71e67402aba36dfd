package perception

import (
	"encoding/json"
	"fmt"
	"math"
	"slices"

	"google.golang.org/genai"

	"github.com/malcolmbastien/Agile-Team-Profiler/internal/catalog"
	"github.com/malcolmbastien/Agile-Team-Profiler/internal/logging"
	"github.com/malcolmbastien/Agile-Team-Profiler/internal/types"
)

// Each operation declares its response schema exactly once. The same
// *genai.Schema value is sent with the request and read back by the parse
// step, so the ids and enum values we ask for are the ones we accept.

// =============================================================================
// ANALYSIS CONTRACT
// =============================================================================

type analysisContract struct {
	schema *genai.Schema
}

func newAnalysisContract(cat *catalog.Catalog) *analysisContract {
	ids := cat.IDs()

	scoreProps := make(map[string]*genai.Schema, len(ids))
	for _, attr := range cat.Attributes() {
		scoreProps[attr.ID] = &genai.Schema{
			Type:        genai.TypeInteger,
			Description: fmt.Sprintf("Score from %d to %d for: %s", catalog.ScoreMin, catalog.ScoreMax, attr.Description),
		}
	}

	impactList := func(desc string) *genai.Schema {
		return &genai.Schema{
			Type:        genai.TypeArray,
			Description: desc,
			Items:       &genai.Schema{Type: genai.TypeString, Enum: ids},
		}
	}
	stringList := func(desc string) *genai.Schema {
		return &genai.Schema{
			Type:        genai.TypeArray,
			Description: desc,
			Items:       &genai.Schema{Type: genai.TypeString},
		}
	}

	return &analysisContract{schema: &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"scores": {
				Type:       genai.TypeObject,
				Properties: scoreProps,
				Required:   ids,
			},
			"category": {
				Type:        genai.TypeString,
				Description: "The most appropriate category for the practice.",
				Enum:        cat.Categories(),
			},
			"summary": {
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"summary": {
						Type:        genai.TypeString,
						Description: "A concise summary (2-3 sentences) highlighting the main potential trade-offs.",
					},
					"positive_impacts": impactList("An array of attribute IDs that are positively impacted by the practice."),
					"negative_impacts": impactList("An array of attribute IDs that are negatively impacted by the practice."),
					"key_pros":         stringList("Short phrases naming the main benefits of the practice."),
					"key_cons":         stringList("Short phrases naming the main drawbacks or risks of the practice."),
				},
				Required: []string{"summary", "positive_impacts", "negative_impacts"},
			},
		},
		Required: []string{"scores", "category", "summary"},
	}}
}

// scoreIDs are the attribute ids the schema requires a score for.
func (c *analysisContract) scoreIDs() []string {
	return c.schema.Properties["scores"].Required
}

// categories are the category values the schema allows.
func (c *analysisContract) categories() []string {
	return c.schema.Properties["category"].Enum
}

// parse validates a response against the contract. It is the only place
// where coercion happens: absent or non-numeric scores become 0, numeric
// scores are rounded and clamped, unknown categories fall back, and absent
// summary lists become empty.
func (c *analysisContract) parse(text string) (types.Analysis, error) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal([]byte(stripCodeFence(text)), &top); err != nil {
		return types.Analysis{}, fmt.Errorf("%w: analysis is not a JSON object: %v", ErrMalformedResponse, err)
	}
	if top == nil {
		return types.Analysis{}, fmt.Errorf("%w: analysis is null", ErrMalformedResponse)
	}

	scores, err := c.parseScores(top["scores"])
	if err != nil {
		return types.Analysis{}, err
	}

	summary, err := parseSummary(top["summary"])
	if err != nil {
		return types.Analysis{}, err
	}

	return types.Analysis{
		Scores:   scores,
		Category: c.parseCategory(top["category"]),
		Summary:  summary,
	}, nil
}

func (c *analysisContract) parseScores(raw json.RawMessage) (types.Scores, error) {
	var values map[string]json.RawMessage
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: scores missing", ErrMalformedResponse)
	}
	if err := json.Unmarshal(raw, &values); err != nil || values == nil {
		return nil, fmt.Errorf("%w: scores is not an object", ErrMalformedResponse)
	}

	scores := make(types.Scores, len(values))
	for _, id := range c.scoreIDs() {
		scores[id] = 0
	}
	for key, value := range values {
		scores[key] = coerceScore(value)
	}
	return scores, nil
}

// coerceScore maps a JSON value onto the score range; anything that is not
// a number scores 0.
func coerceScore(raw json.RawMessage) int {
	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		return 0
	}
	if math.IsNaN(f) {
		return 0
	}
	// Clamp before converting; int(f) overflows for huge values.
	f = math.Max(float64(catalog.ScoreMin), math.Min(float64(catalog.ScoreMax), f))
	return int(math.Round(f))
}

func (c *analysisContract) parseCategory(raw json.RawMessage) string {
	var category string
	if err := json.Unmarshal(raw, &category); err == nil && slices.Contains(c.categories(), category) {
		return category
	}
	logging.APIWarn("[Gemini] unexpected category %s; defaulting to %q", string(raw), catalog.FallbackCategory)
	return catalog.FallbackCategory
}

func parseSummary(raw json.RawMessage) (types.PracticeSummary, error) {
	var s types.PracticeSummary
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &s); err != nil {
			return types.PracticeSummary{}, fmt.Errorf("%w: summary: %v", ErrMalformedResponse, err)
		}
	}
	// Clone normalizes absent lists to empty ones.
	return s.Clone(), nil
}

// =============================================================================
// ACTION PLAN CONTRACT
// =============================================================================

type planContract struct {
	schema *genai.Schema
}

func newPlanContract() *planContract {
	return &planContract{schema: &genai.Schema{
		Type: genai.TypeArray,
		Items: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"title": {
					Type:        genai.TypeString,
					Description: "A concise, actionable title for the recommendation.",
				},
				"description": {
					Type:        genai.TypeString,
					Description: "A concrete, actionable recommendation for the team.",
				},
				"impacted_attributes": {
					Type:        genai.TypeArray,
					Description: "An array of attribute IDs that this recommendation will most significantly impact.",
					Items: &genai.Schema{
						Type:        genai.TypeString,
						Description: "An attribute ID from the provided list. e.g., 'speed_of_delivery', 'psychological_safety'.",
					},
				},
			},
			Required: []string{"title", "description", "impacted_attributes"},
		},
	}}
}

// parse decodes the recommendation list. Impacted attribute ids are
// passed through unchecked; rendering skips ids it cannot resolve.
func (c *planContract) parse(text string) ([]types.Recommendation, error) {
	var recs []types.Recommendation
	if err := json.Unmarshal([]byte(stripCodeFence(text)), &recs); err != nil {
		return nil, fmt.Errorf("%w: action plan is not a JSON array of recommendations: %v", ErrMalformedResponse, err)
	}
	if recs == nil {
		return nil, fmt.Errorf("%w: action plan is null", ErrMalformedResponse)
	}
	for i := range recs {
		if recs[i].ImpactedAttributes == nil {
			recs[i].ImpactedAttributes = []string{}
		}
	}
	return recs, nil
}
