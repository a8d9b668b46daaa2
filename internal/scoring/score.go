// Package scoring ranks catalog foods for a patient. Every function here is
// pure: identical inputs always produce bit-identical scores.
package scoring

import (
	"math"
	"slices"

	"diet-planner/internal/catalog"
	"diet-planner/internal/risk"
)

// Factor weights of the composite score. They sum to 1.
const (
	GlycemicWeight = 0.4
	FiberWeight    = 0.2
	ProteinWeight  = 0.2
	RiskWeight     = 0.2
)

const (
	// fiberScale maps grams onto a 0..100 scale, saturating at 5g.
	fiberScale = 20
	// proteinScale saturates at 10g.
	proteinScale = 10

	moderateTarget = 0.7
	lowRiskBonus   = 0.8
	unknownTag     = 0.5

	bmiObese       = 30
	bmiUnderweight = 18.5
	calorieFactor  = 0.1
)

// tagScores rates a food's own risk tag; lower-risk foods rate higher.
var tagScores = map[risk.Level]float64{
	risk.Low:      1.0,
	risk.Moderate: 0.7,
	risk.High:     0.4,
}

// ScoredFood is a food with its score for one patient context.
type ScoredFood struct {
	catalog.FoodItem
	Score float64
}

// TagScore rates a food risk tag, 0.5 for unknown tags.
func TagScore(tag risk.Level) float64 {
	if s, ok := tagScores[tag]; ok {
		return s
	}
	return unknownTag
}

// GlycemicFactor is (100 - gi) / 100 with gi clamped to [0, 100].
func GlycemicFactor(gi int) float64 {
	gi = max(0, min(gi, 100))
	return float64(100-gi) / 100
}

// FiberFactor is fiber grams x20, capped at 100, normalized to [0, 1].
func FiberFactor(fiber float64) float64 {
	return math.Min(math.Max(fiber, 0)*fiberScale, 100) / 100
}

// ProteinFactor is protein grams x10, capped at 100, normalized to [0, 1].
func ProteinFactor(protein float64) float64 {
	return math.Min(math.Max(protein, 0)*proteinScale, 100) / 100
}

// RiskAlignment rates how well a food's tag suits the patient's level.
// Unknown patient levels are treated as Low.
func RiskAlignment(tag risk.Level, level risk.Level) float64 {
	switch level {
	case risk.High:
		return TagScore(tag)
	case risk.Moderate:
		return 1 - math.Abs(TagScore(tag)-moderateTarget)
	default:
		return lowRiskBonus
	}
}

// BMIAdjustment is applied after the weighted sum: obese patients are steered
// away from calorie-dense foods, underweight patients towards them. A BMI of
// zero or less means the value was not supplied.
func BMIAdjustment(bmi, calories float64) float64 {
	switch {
	case bmi <= 0:
		return 0
	case bmi > bmiObese:
		return -calorieFactor * (calories / 1000)
	case bmi < bmiUnderweight:
		return calorieFactor * (calories / 1000)
	default:
		return 0
	}
}

// Score is the composite suitability of food for patient at level, never negative.
// A patient BMI of zero or less is treated as unknown and gets no BMI adjustment,
// while any positive BMI below the underweight threshold gets the calorie bonus.
func Score(food catalog.FoodItem, patient risk.PatientContext, level risk.Level) float64 {
	score := GlycemicWeight*GlycemicFactor(food.GI) +
		FiberWeight*FiberFactor(food.Fiber) +
		ProteinWeight*ProteinFactor(food.Protein) +
		RiskWeight*RiskAlignment(food.Risk, level)

	score += BMIAdjustment(patient.BMI, food.Calories)
	return math.Max(score, 0)
}

// ScoreAll scores every food and orders them by score, highest first. Equal
// scores keep their input order. Patient BMI is interpreted as in Score.
func ScoreAll(foods []catalog.FoodItem, patient risk.PatientContext, level risk.Level) []ScoredFood {
	scored := make([]ScoredFood, len(foods))
	for i, f := range foods {
		scored[i] = ScoredFood{FoodItem: f, Score: Score(f, patient, level)}
	}
	SortByScore(scored)
	return scored
}

// SortByScore orders foods by descending score, stable for ties.
func SortByScore(foods []ScoredFood) {
	slices.SortStableFunc(foods, func(a, b ScoredFood) int {
		switch {
		case a.Score > b.Score:
			return -1
		case a.Score < b.Score:
			return 1
		default:
			return 0
		}
	})
}
