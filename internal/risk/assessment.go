package risk

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidAssessment is returned when assessment fields are missing or out of range.
var ErrInvalidAssessment = errors.New("invalid assessment")

// Assessment holds the health metrics fed to the risk classifier.
type Assessment struct {
	Pregnancies              float64
	Glucose                  float64
	BloodPressure            float64
	SkinThickness            float64
	Insulin                  float64
	BMI                      float64
	DiabetesPedigreeFunction float64
	Age                      int
}

// AssessmentRequest is the wire form of an Assessment. Every field is required;
// a nil field was absent from the request.
type AssessmentRequest struct {
	Pregnancies              *float64 `json:"pregnancies"`
	Glucose                  *float64 `json:"glucose"`
	BloodPressure            *float64 `json:"bloodPressure"`
	SkinThickness            *float64 `json:"skinThickness"`
	Insulin                  *float64 `json:"insulin"`
	BMI                      *float64 `json:"bmi"`
	DiabetesPedigreeFunction *float64 `json:"diabetesPedigreeFunction"`
	Age                      *int     `json:"age"`
}

// Assessment checks that every field is present and in range, and returns the
// validated assessment.
func (r AssessmentRequest) Assessment() (Assessment, error) {
	present := []struct {
		name string
		ok   bool
	}{
		{"pregnancies", r.Pregnancies != nil},
		{"glucose", r.Glucose != nil},
		{"bloodPressure", r.BloodPressure != nil},
		{"skinThickness", r.SkinThickness != nil},
		{"insulin", r.Insulin != nil},
		{"bmi", r.BMI != nil},
		{"diabetesPedigreeFunction", r.DiabetesPedigreeFunction != nil},
		{"age", r.Age != nil},
	}
	var missing []string
	for _, p := range present {
		if !p.ok {
			missing = append(missing, p.name)
		}
	}
	if len(missing) > 0 {
		return Assessment{}, fmt.Errorf("%w: missing fields: %s", ErrInvalidAssessment, strings.Join(missing, ", "))
	}

	a := Assessment{
		Pregnancies:              *r.Pregnancies,
		Glucose:                  *r.Glucose,
		BloodPressure:            *r.BloodPressure,
		SkinThickness:            *r.SkinThickness,
		Insulin:                  *r.Insulin,
		BMI:                      *r.BMI,
		DiabetesPedigreeFunction: *r.DiabetesPedigreeFunction,
		Age:                      *r.Age,
	}
	if err := a.Validate(); err != nil {
		return Assessment{}, err
	}
	return a, nil
}

// Request converts a into its wire form with every field set.
func (a Assessment) Request() AssessmentRequest {
	return AssessmentRequest{
		Pregnancies:              &a.Pregnancies,
		Glucose:                  &a.Glucose,
		BloodPressure:            &a.BloodPressure,
		SkinThickness:            &a.SkinThickness,
		Insulin:                  &a.Insulin,
		BMI:                      &a.BMI,
		DiabetesPedigreeFunction: &a.DiabetesPedigreeFunction,
		Age:                      &a.Age,
	}
}

type fieldRange struct {
	name     string
	value    func(Assessment) float64
	min, max float64
}

var assessmentRanges = []fieldRange{
	{"pregnancies", func(a Assessment) float64 { return a.Pregnancies }, 0, 20},
	{"glucose", func(a Assessment) float64 { return a.Glucose }, 0, 300},
	{"bloodPressure", func(a Assessment) float64 { return a.BloodPressure }, 0, 200},
	{"skinThickness", func(a Assessment) float64 { return a.SkinThickness }, 0, 100},
	{"insulin", func(a Assessment) float64 { return a.Insulin }, 0, 1000},
	{"bmi", func(a Assessment) float64 { return a.BMI }, 0, 100},
	{"diabetesPedigreeFunction", func(a Assessment) float64 { return a.DiabetesPedigreeFunction }, 0, 5},
	{"age", func(a Assessment) float64 { return float64(a.Age) }, 0, 120},
}

// Validate checks every field against its accepted range.
func (a Assessment) Validate() error {
	for _, r := range assessmentRanges {
		v := r.value(a)
		if v < r.min || v > r.max {
			return fmt.Errorf("%w: %s must be between %g and %g, got %g", ErrInvalidAssessment, r.name, r.min, r.max, v)
		}
	}
	return nil
}

// Patient derives the scoring context from an assessment and its prediction.
func (a Assessment) Patient(highRisk bool) PatientContext {
	return PatientContext{
		Glucose:  a.Glucose,
		BMI:      a.BMI,
		Age:      a.Age,
		HighRisk: highRisk,
	}
}

// RiskFactors lists the metrics above their clinical thresholds.
func RiskFactors(a Assessment) []string {
	factors := []string{}
	if a.Glucose > 140 {
		factors = append(factors, "glucose")
	}
	if a.BMI > 30 {
		factors = append(factors, "bmi")
	}
	if a.Age > 60 {
		factors = append(factors, "age")
	}
	if a.BloodPressure > 90 {
		factors = append(factors, "bloodPressure")
	}
	return factors
}

func BMICategory(bmi float64) string {
	switch {
	case bmi < 18.5:
		return "Underweight"
	case bmi < 25:
		return "Normal"
	case bmi < 30:
		return "Overweight"
	default:
		return "Obese"
	}
}

func GlucoseCategory(glucose float64) string {
	switch {
	case glucose < 70:
		return "Low"
	case glucose <= 140:
		return "Normal"
	case glucose <= 199:
		return "Pre-diabetic"
	default:
		return "Diabetic"
	}
}

// NutritionNeeds is a daily macro target.
type NutritionNeeds struct {
	Calories int `json:"calories"`
	Protein  int `json:"protein"`
	Carbs    int `json:"carbs"`
}

// CalculateNutritionNeeds derives a daily target from BMI band, age and glucose.
// Protein is 20% of calories; carbs are 30% for high-risk or hyperglycemic
// patients and 50% otherwise (4 kcal per gram).
func CalculateNutritionNeeds(bmi float64, age int, glucose float64, highRisk bool) NutritionNeeds {
	calories := 2000
	switch {
	case bmi > 30:
		calories = 1600
	case bmi > 25:
		calories = 1800
	case bmi < 18.5:
		calories = 2200
	}

	switch {
	case age > 60:
		calories -= 200
	case age < 30:
		calories += 100
	}

	carbPercent := 50
	if highRisk || glucose > 140 {
		carbPercent = 30
	}

	return NutritionNeeds{
		Calories: calories,
		Protein:  calories * 20 / 100 / 4,
		Carbs:    calories * carbPercent / 100 / 4,
	}
}
