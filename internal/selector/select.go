package selector

import (
	"strings"

	"diet-planner/internal/risk"
	"diet-planner/internal/scoring"
)

// Criteria are the hard filters applied before the slot predicate. An empty
// Diet or RequiredTag disables that filter.
type Criteria struct {
	Diet        string
	RequiredTag risk.Level
}

// Select returns at most count foods eligible for slot, best score first.
// Candidates must match the diet, the slot predicate and the required risk tag;
// when none do, the tag filter is dropped and the diet and slot filters kept.
// Fewer than count results are returned when fewer foods are eligible.
func Select(foods []scoring.ScoredFood, slot Slot, count int, crit Criteria) []scoring.ScoredFood {
	if count <= 0 || len(foods) == 0 {
		return nil
	}

	candidates := filter(foods, func(f scoring.ScoredFood) bool {
		return matchesDiet(f, crit.Diet) && slot.Eligible(f.FoodItem) && matchesTag(f, crit.RequiredTag)
	})
	if len(candidates) == 0 && crit.RequiredTag != "" {
		candidates = filter(foods, func(f scoring.ScoredFood) bool {
			return matchesDiet(f, crit.Diet) && slot.Eligible(f.FoodItem)
		})
	}

	scoring.SortByScore(candidates)
	if len(candidates) > count {
		candidates = candidates[:count]
	}
	return candidates
}

func filter(foods []scoring.ScoredFood, keep func(scoring.ScoredFood) bool) []scoring.ScoredFood {
	var out []scoring.ScoredFood
	for _, f := range foods {
		if keep(f) {
			out = append(out, f)
		}
	}
	return out
}

func matchesDiet(f scoring.ScoredFood, diet string) bool {
	return diet == "" || strings.EqualFold(strings.TrimSpace(f.Diet), strings.TrimSpace(diet))
}

func matchesTag(f scoring.ScoredFood, tag risk.Level) bool {
	return tag == "" || f.Risk == tag
}
