// Package types provides the domain values shared across the profiler:
// attribute scores, analysed practices and action plan recommendations.
// Types here are plain data with no dependencies on other packages.
package types

// =============================================================================
// SCORES
// =============================================================================

// Scores maps an attribute id to its impact score. Absent keys mean no impact.
type Scores map[string]int

// Get returns the score for id, or 0 when absent.
func (s Scores) Get(id string) int {
	return s[id]
}

// Clone returns an independent copy. A nil Scores clones to an empty map.
func (s Scores) Clone() Scores {
	out := make(Scores, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// =============================================================================
// PRACTICES
// =============================================================================

// PracticeSummary is the service's short write-up of a practice's trade-offs.
type PracticeSummary struct {
	Summary         string   `json:"summary"`
	PositiveImpacts []string `json:"positive_impacts"`
	NegativeImpacts []string `json:"negative_impacts"`
	KeyPros         []string `json:"key_pros"`
	KeyCons         []string `json:"key_cons"`
}

// Clone returns a deep copy.
func (s PracticeSummary) Clone() PracticeSummary {
	return PracticeSummary{
		Summary:         s.Summary,
		PositiveImpacts: cloneStrings(s.PositiveImpacts),
		NegativeImpacts: cloneStrings(s.NegativeImpacts),
		KeyPros:         cloneStrings(s.KeyPros),
		KeyCons:         cloneStrings(s.KeyCons),
	}
}

// Analysis is the validated result of analysing one practice description.
type Analysis struct {
	Scores   Scores          `json:"scores"`
	Category string          `json:"category"`
	Summary  PracticeSummary `json:"summary"`
}

// Practice is a user-described team behaviour annotated by an analysis.
type Practice struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Scores      Scores          `json:"scores"`
	Category    string          `json:"category"`
	Summary     PracticeSummary `json:"summary"`
}

// NewPractice builds a practice from an analysis result.
func NewPractice(id, description string, a Analysis) Practice {
	return Practice{
		ID:          id,
		Description: description,
		Scores:      a.Scores.Clone(),
		Category:    a.Category,
		Summary:     a.Summary.Clone(),
	}
}

// Clone returns a deep copy.
func (p Practice) Clone() Practice {
	p.Scores = p.Scores.Clone()
	p.Summary = p.Summary.Clone()
	return p
}

// =============================================================================
// ACTION PLAN
// =============================================================================

// Recommendation is one step of an AI-generated improvement plan.
type Recommendation struct {
	Title              string   `json:"title"`
	Description        string   `json:"description"`
	ImpactedAttributes []string `json:"impacted_attributes"`
}

// Clone returns a deep copy.
func (r Recommendation) Clone() Recommendation {
	r.ImpactedAttributes = cloneStrings(r.ImpactedAttributes)
	return r
}

// ClonePractices deep-copies a practice slice, preserving nil.
func ClonePractices(in []Practice) []Practice {
	if in == nil {
		return nil
	}
	out := make([]Practice, len(in))
	for i, p := range in {
		out[i] = p.Clone()
	}
	return out
}

// CloneRecommendations deep-copies a plan, preserving nil (no plan).
func CloneRecommendations(in []Recommendation) []Recommendation {
	if in == nil {
		return nil
	}
	out := make([]Recommendation, len(in))
	for i, r := range in {
		out[i] = r.Clone()
	}
	return out
}

func cloneStrings(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}
