package risk

import "strings"

// Level is a coarse diabetes risk classification.
type Level string

const (
	Low      Level = "Low"
	Moderate Level = "Moderate"
	High     Level = "High"
)

// FromProbability maps a classifier's positive-class probability to a Level.
func FromProbability(p float64) Level {
	switch {
	case p < 0.3:
		return Low
	case p < 0.6:
		return Moderate
	default:
		return High
	}
}

// ParseLevel accepts any casing of Low, Moderate or High.
func ParseLevel(s string) (Level, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low":
		return Low, true
	case "moderate", "medium":
		return Moderate, true
	case "high":
		return High, true
	}
	return "", false
}

// foodTagByLevel is the food risk tag a patient at a given level should prefer.
var foodTagByLevel = map[Level]Level{
	High:     Low,
	Moderate: Moderate,
	Low:      Low,
}

// FoodTagFor returns the food risk tag suited to a patient at level l.
// Unknown levels get Low-tagged foods.
func FoodTagFor(l Level) Level {
	if tag, ok := foodTagByLevel[l]; ok {
		return tag
	}
	return Low
}

// PatientContext is the per-request view of a patient used for scoring. A BMI
// of zero or less means unknown and disables the BMI adjustment.
type PatientContext struct {
	Glucose  float64 `json:"glucose"`
	BMI      float64 `json:"bmi"`
	Age      int     `json:"age"`
	HighRisk bool    `json:"high_risk"`
}
