package catalog

import (
	"strings"

	"diet-planner/internal/risk"
)

// FoodItem is one catalog entry. Values are per serving of WeightG grams.
type FoodItem struct {
	Title    string     `json:"title"`
	Icon     string     `json:"icon"`
	Calories float64    `json:"calories"`
	Protein  float64    `json:"protein_g"`
	Carbs    float64    `json:"carbs_g"`
	Fiber    float64    `json:"fiber_g"`
	GI       int        `json:"gi_index"`
	WeightG  float64    `json:"weight_g"`
	Risk     risk.Level `json:"risk"`
	Diet     string     `json:"diet_type"`
	Region   string     `json:"region"`
	Benefit  string     `json:"benefit"`
}

// normalize clamps numeric fields into their valid ranges and tidies tags.
func (f FoodItem) normalize() FoodItem {
	f.Title = strings.TrimSpace(f.Title)
	f.GI = clampInt(f.GI, 0, 100)
	f.Calories = nonNegative(f.Calories)
	f.Protein = nonNegative(f.Protein)
	f.Carbs = nonNegative(f.Carbs)
	f.Fiber = nonNegative(f.Fiber)
	f.WeightG = nonNegative(f.WeightG)
	f.Diet = strings.TrimSpace(f.Diet)
	if level, ok := risk.ParseLevel(string(f.Risk)); ok {
		f.Risk = level
	} else {
		f.Risk = risk.Level(strings.TrimSpace(string(f.Risk)))
	}
	return f
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func nonNegative(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}

func dietKey(diet string) string {
	return strings.ToLower(strings.TrimSpace(diet))
}
