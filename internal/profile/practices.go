package profile

import (
	"sort"

	"github.com/malcolmbastien/Agile-Team-Profiler/internal/catalog"
	"github.com/malcolmbastien/Agile-Team-Profiler/internal/types"
)

// CategoryGroup is the set of practices sharing a category.
type CategoryGroup struct {
	Category  string
	Practices []types.Practice
}

// GroupByCategory groups practices by category. Categories sort
// alphabetically with the fallback category last; practices keep their
// input order inside a group. A blank category counts as the fallback.
func GroupByCategory(practices []types.Practice) []CategoryGroup {
	index := make(map[string]int)
	var groups []CategoryGroup
	for _, p := range practices {
		category := p.Category
		if category == "" {
			category = catalog.FallbackCategory
		}
		i, ok := index[category]
		if !ok {
			i = len(groups)
			index[category] = i
			groups = append(groups, CategoryGroup{Category: category})
		}
		groups[i].Practices = append(groups[i].Practices, p)
	}

	sort.SliceStable(groups, func(i, j int) bool {
		a, b := groups[i].Category, groups[j].Category
		if a == catalog.FallbackCategory {
			return false
		}
		if b == catalog.FallbackCategory {
			return true
		}
		return a < b
	})
	return groups
}

// Impacts resolves a practice's summary impact ids against the catalog.
// Ids the catalog does not know are skipped. Positives are ordered by
// score descending, negatives ascending.
func Impacts(cat *catalog.Catalog, p types.Practice) (positive, negative []AttributeScore) {
	positive = resolveScores(cat, p.Summary.PositiveImpacts, p.Scores)
	negative = resolveScores(cat, p.Summary.NegativeImpacts, p.Scores)

	sort.SliceStable(positive, func(i, j int) bool { return positive[i].Score > positive[j].Score })
	sort.SliceStable(negative, func(i, j int) bool { return negative[i].Score < negative[j].Score })
	return positive, negative
}

func resolveScores(cat *catalog.Catalog, ids []string, scores types.Scores) []AttributeScore {
	out := make([]AttributeScore, 0, len(ids))
	for _, id := range ids {
		attr, ok := cat.Attribute(id)
		if !ok {
			continue
		}
		out = append(out, AttributeScore{Attribute: attr, Score: scores.Get(id)})
	}
	return out
}

// ResolveNames maps attribute ids to display names, skipping unknown ids.
func ResolveNames(cat *catalog.Catalog, ids []string) []string {
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		if attr, ok := cat.Attribute(id); ok {
			names = append(names, attr.Name)
		}
	}
	return names
}
