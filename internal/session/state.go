package session

import (
	"strings"

	"github.com/malcolmbastien/Agile-Team-Profiler/internal/types"
)

// State is a point-in-time copy of the controller. Mutating it has no
// effect on the controller.
type State struct {
	Practices []types.Practice
	Totals    types.Scores
	Plan      []types.Recommendation // nil = no plan
	Errors    map[Action]string
	Pending   map[Action]bool
	Draft     string
	Version   uint64 // bumped whenever the practice set changes
}

// Error returns the error message recorded for a, if any.
func (s State) Error(a Action) string {
	return s.Errors[a]
}

// IsPending reports whether a is in flight.
func (s State) IsPending(a Action) bool {
	return s.Pending[a]
}

// HasPlan reports whether a plan is available.
func (s State) HasPlan() bool {
	return s.Plan != nil
}

// Practice looks up a practice by id.
func (s State) Practice(id string) (types.Practice, bool) {
	for _, p := range s.Practices {
		if p.ID == id {
			return p, true
		}
	}
	return types.Practice{}, false
}

// Snapshot returns a deep copy of the current state.
func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	errs := make(map[Action]string, len(c.errs))
	for a, msg := range c.errs {
		errs[a] = msg
	}
	pending := make(map[Action]bool, len(c.pending))
	for a, p := range c.pending {
		pending[a] = p
	}

	practices := types.ClonePractices(c.practices)
	if practices == nil {
		practices = []types.Practice{}
	}

	return State{
		Practices: practices,
		Totals:    c.totals.Clone(),
		Plan:      types.CloneRecommendations(c.plan),
		Errors:    errs,
		Pending:   pending,
		Draft:     c.draft,
		Version:   c.version,
	}
}

func normalize(description string) string {
	return strings.TrimSpace(description)
}
