package risk

import (
	"errors"
	"math"
	"strings"
	"testing"
)

func TestFromProbability(t *testing.T) {
	cases := []struct {
		p    float64
		want Level
	}{
		{0, Low},
		{0.29, Low},
		{0.3, Moderate},
		{0.59, Moderate},
		{0.6, High},
		{1, High},
	}
	for _, c := range cases {
		if got := FromProbability(c.p); got != c.want {
			t.Errorf("FromProbability(%v) = %s, want %s", c.p, got, c.want)
		}
	}
}

func TestFoodTagFor(t *testing.T) {
	if FoodTagFor(High) != Low {
		t.Error("High risk patients should get Low-tagged foods")
	}
	if FoodTagFor(Moderate) != Moderate {
		t.Error("Moderate risk patients should get Moderate-tagged foods")
	}
	if FoodTagFor(Low) != Low {
		t.Error("Low risk patients should get Low-tagged foods")
	}
	if FoodTagFor(Level("???")) != Low {
		t.Error("Unknown levels should default to Low-tagged foods")
	}
}

func TestParseLevel(t *testing.T) {
	if l, ok := ParseLevel(" HIGH "); !ok || l != High {
		t.Errorf("Expected High, got %s (ok=%v)", l, ok)
	}
	if _, ok := ParseLevel("extreme"); ok {
		t.Error("Expected unknown level to be rejected")
	}
}

func TestAssessmentValidate(t *testing.T) {
	valid := Assessment{Pregnancies: 3, Glucose: 120, BloodPressure: 70, SkinThickness: 20, Insulin: 79, BMI: 24, DiabetesPedigreeFunction: 0.47, Age: 33}

	t.Run("Valid", func(t *testing.T) {
		if err := valid.Validate(); err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
	})

	t.Run("GlucoseOutOfRange", func(t *testing.T) {
		a := valid
		a.Glucose = 301
		err := a.Validate()
		if !errors.Is(err, ErrInvalidAssessment) {
			t.Fatalf("Expected ErrInvalidAssessment, got %v", err)
		}
	})

	t.Run("NegativeAge", func(t *testing.T) {
		a := valid
		a.Age = -1
		if err := a.Validate(); err == nil {
			t.Fatal("Expected an error for negative age")
		}
	})
}

func TestAssessmentRequest(t *testing.T) {
	valid := Assessment{Pregnancies: 0, Glucose: 120, BloodPressure: 70, SkinThickness: 20, Insulin: 79, BMI: 24, DiabetesPedigreeFunction: 0.47, Age: 33}

	t.Run("Complete", func(t *testing.T) {
		got, err := valid.Request().Assessment()
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if got != valid {
			t.Errorf("Expected %+v, got %+v", valid, got)
		}
	})

	t.Run("Empty", func(t *testing.T) {
		_, err := AssessmentRequest{}.Assessment()
		if !errors.Is(err, ErrInvalidAssessment) {
			t.Fatalf("Expected ErrInvalidAssessment, got %v", err)
		}
		for _, field := range []string{"pregnancies", "glucose", "bmi", "age"} {
			if !strings.Contains(err.Error(), field) {
				t.Errorf("Expected %s to be reported missing: %v", field, err)
			}
		}
	})

	t.Run("MissingOne", func(t *testing.T) {
		req := valid.Request()
		req.DiabetesPedigreeFunction = nil
		_, err := req.Assessment()
		if !errors.Is(err, ErrInvalidAssessment) || !strings.Contains(err.Error(), "diabetesPedigreeFunction") {
			t.Fatalf("Expected missing diabetesPedigreeFunction, got %v", err)
		}
	})

	t.Run("ExplicitZeroIsPresent", func(t *testing.T) {
		zero := 0.0
		req := valid.Request()
		req.Insulin = &zero
		got, err := req.Assessment()
		if err != nil || got.Insulin != 0 {
			t.Fatalf("Expected explicit zero insulin to be accepted, got %+v, %v", got, err)
		}
	})

	t.Run("OutOfRange", func(t *testing.T) {
		bad := valid
		bad.BMI = 150
		if _, err := bad.Request().Assessment(); !errors.Is(err, ErrInvalidAssessment) {
			t.Fatalf("Expected ErrInvalidAssessment, got %v", err)
		}
	})
}

func TestHeuristicPredictor(t *testing.T) {
	p := NewHeuristicPredictor()

	t.Run("HighRisk", func(t *testing.T) {
		pred, _ := p.Predict(Assessment{Glucose: 165, BMI: 32, Age: 55})
		if !pred.Positive {
			t.Fatal("Expected a positive prediction")
		}
		if math.Abs(pred.PositiveProbability()-0.5) > 1e-9 {
			t.Errorf("Expected probability 0.5, got %v", pred.PositiveProbability())
		}
		if pred.Level() != Moderate {
			t.Errorf("Expected Moderate level, got %s", pred.Level())
		}
	})

	t.Run("Healthy", func(t *testing.T) {
		pred, _ := p.Predict(Assessment{Glucose: 95, BMI: 22, Age: 30})
		if pred.Positive {
			t.Fatal("Expected a negative prediction")
		}
		if pred.Probabilities != [2]float64{0.8, 0.2} {
			t.Errorf("Expected [0.8 0.2], got %v", pred.Probabilities)
		}
		if pred.Level() != Low {
			t.Errorf("Expected Low level, got %s", pred.Level())
		}
	})
}

func TestCalculateNutritionNeeds(t *testing.T) {
	n := CalculateNutritionNeeds(32, 65, 150, false)
	if n.Calories != 1400 {
		t.Errorf("Expected 1400 calories, got %d", n.Calories)
	}
	if n.Protein != 70 {
		t.Errorf("Expected 70g protein, got %d", n.Protein)
	}
	if n.Carbs != 105 {
		t.Errorf("Expected 105g carbs, got %d", n.Carbs)
	}

	n = CalculateNutritionNeeds(22, 25, 90, false)
	if n.Calories != 2100 || n.Carbs != 262 {
		t.Errorf("Expected 2100 kcal / 262g carbs, got %+v", n)
	}
}

func TestCategories(t *testing.T) {
	if BMICategory(17) != "Underweight" || BMICategory(31) != "Obese" {
		t.Error("Unexpected BMI category")
	}
	if GlucoseCategory(150) != "Pre-diabetic" || GlucoseCategory(200) != "Diabetic" {
		t.Error("Unexpected glucose category")
	}
	if got := RiskFactors(Assessment{Glucose: 165, BMI: 32, Age: 55}); len(got) != 2 {
		t.Errorf("Expected 2 risk factors, got %v", got)
	}
}
