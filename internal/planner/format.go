package planner

import (
	"fmt"
	"math"

	"diet-planner/internal/scoring"
)

// FoodRecord is the display form of a selected food.
type FoodRecord struct {
	Title     string  `json:"title"`
	Icon      string  `json:"icon"`
	Calories  int     `json:"calories"`
	Protein   float64 `json:"protein"`
	Fiber     float64 `json:"fiber"`
	GIIndex   int     `json:"gi_index"`
	Weight    string  `json:"weight"`
	RiskLevel string  `json:"risk_level"`
	Region    string  `json:"region"`
	Benefit   string  `json:"benefit"`
	Score     float64 `json:"score"`
}

// Format rounds a scored food for display: protein and fiber to one decimal,
// calories and GI to integers, score to two decimals.
func Format(f scoring.ScoredFood) FoodRecord {
	return FoodRecord{
		Title:     f.Title,
		Icon:      f.Icon,
		Calories:  int(math.Round(f.Calories)),
		Protein:   round(f.Protein, 1),
		Fiber:     round(f.Fiber, 1),
		GIIndex:   f.GI,
		Weight:    fmt.Sprintf("%dg", int(math.Round(f.WeightG))),
		RiskLevel: string(f.Risk),
		Region:    f.Region,
		Benefit:   f.Benefit,
		Score:     round(f.Score, 2),
	}
}

// FormatAll formats foods, keeping their order.
func FormatAll(foods []scoring.ScoredFood) []FoodRecord {
	out := make([]FoodRecord, 0, len(foods))
	for _, f := range foods {
		out = append(out, Format(f))
	}
	return out
}

// round rounds half away from zero to the given number of decimals.
func round(v float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return math.Round(v*p) / p
}
