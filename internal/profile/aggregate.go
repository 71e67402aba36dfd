// Package profile derives the team profile from the current practice set.
// Everything here is a pure function of its inputs; totals are always
// recomputed from scratch rather than patched.
package profile

import (
	"github.com/malcolmbastien/Agile-Team-Profiler/internal/catalog"
	"github.com/malcolmbastien/Agile-Team-Profiler/internal/types"
)

// Aggregate sums per-practice scores into team totals. Every catalog
// attribute is present in the result; score keys outside the catalog are
// ignored.
func Aggregate(cat *catalog.Catalog, practices []types.Practice) types.Scores {
	totals := make(types.Scores, cat.Len())
	for _, id := range cat.IDs() {
		totals[id] = 0
	}

	for _, p := range practices {
		for id, score := range p.Scores {
			if _, known := totals[id]; known {
				totals[id] += score
			}
		}
	}
	return totals
}

// AttributeScore pairs an attribute with a score.
type AttributeScore struct {
	Attribute catalog.Attribute
	Score     int
}

// GroupScores is one display group of the team profile.
type GroupScores struct {
	Group  catalog.AttributeGroup
	Scores []AttributeScore
}

// GroupTotals arranges totals by the catalog's display groups, in catalog order.
func GroupTotals(cat *catalog.Catalog, totals types.Scores) []GroupScores {
	groups := cat.Groups()
	out := make([]GroupScores, 0, len(groups))
	for _, g := range groups {
		gs := GroupScores{Group: g, Scores: make([]AttributeScore, 0, len(g.AttributeIDs))}
		for _, id := range g.AttributeIDs {
			attr, ok := cat.Attribute(id)
			if !ok {
				continue
			}
			gs.Scores = append(gs.Scores, AttributeScore{Attribute: attr, Score: totals.Get(id)})
		}
		out = append(out, gs)
	}
	return out
}
