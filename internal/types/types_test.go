package types

import (
	"testing"
)

func TestScores_GetAbsentIsZero(t *testing.T) {
	s := Scores{"a": 3}
	if got := s.Get("a"); got != 3 {
		t.Errorf("Get(a) = %d, want 3", got)
	}
	if got := s.Get("missing"); got != 0 {
		t.Errorf("Get(missing) = %d, want 0", got)
	}

	var nilScores Scores
	if got := nilScores.Get("a"); got != 0 {
		t.Errorf("nil Get(a) = %d, want 0", got)
	}
}

func TestScores_CloneIsIndependent(t *testing.T) {
	s := Scores{"a": 1}
	c := s.Clone()
	c["a"] = 5

	if s["a"] != 1 {
		t.Errorf("original mutated through clone: %v", s)
	}

	var nilScores Scores
	if nilScores.Clone() == nil {
		t.Error("Clone of nil should return an empty map")
	}
}

func TestPractice_CloneIsDeep(t *testing.T) {
	p := Practice{
		ID:     "p1",
		Scores: Scores{"a": 2},
		Summary: PracticeSummary{
			PositiveImpacts: []string{"a"},
			KeyPros:         []string{"fast"},
		},
	}

	c := p.Clone()
	c.Scores["a"] = -1
	c.Summary.PositiveImpacts[0] = "b"
	c.Summary.KeyPros[0] = "slow"

	if p.Scores["a"] != 2 || p.Summary.PositiveImpacts[0] != "a" || p.Summary.KeyPros[0] != "fast" {
		t.Errorf("original mutated through clone: %+v", p)
	}
}

func TestNewPractice_CopiesAnalysis(t *testing.T) {
	a := Analysis{Scores: Scores{"a": 1}, Category: "Other"}
	p := NewPractice("id", "desc", a)
	a.Scores["a"] = 4

	if p.Scores["a"] != 1 {
		t.Errorf("practice shares scores with analysis")
	}
	if p.Summary.PositiveImpacts == nil || p.Summary.KeyCons == nil {
		t.Errorf("absent summary lists should become empty, got %+v", p.Summary)
	}
}

func TestCloneRecommendations_PreservesNil(t *testing.T) {
	if CloneRecommendations(nil) != nil {
		t.Error("nil plan should stay nil")
	}
	plan := []Recommendation{{Title: "t", ImpactedAttributes: []string{"a"}}}
	c := CloneRecommendations(plan)
	c[0].ImpactedAttributes[0] = "b"
	if plan[0].ImpactedAttributes[0] != "a" {
		t.Error("plan mutated through clone")
	}
	if ClonePractices(nil) != nil {
		t.Error("nil practices should stay nil")
	}
}
