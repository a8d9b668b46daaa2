package selector

import (
	"testing"

	"diet-planner/internal/catalog"
	"diet-planner/internal/risk"
	"diet-planner/internal/scoring"
)

func scored(title string, score float64, gi int, calories float64, tag risk.Level, diet string) scoring.ScoredFood {
	return scoring.ScoredFood{
		FoodItem: catalog.FoodItem{Title: title, GI: gi, Calories: calories, Risk: tag, Diet: diet},
		Score:    score,
	}
}

func titles(foods []scoring.ScoredFood) []string {
	out := make([]string, len(foods))
	for i, f := range foods {
		out[i] = f.Title
	}
	return out
}

func TestSlotEligibility(t *testing.T) {
	cases := []struct {
		slot Slot
		food catalog.FoodItem
		want bool
	}{
		{Breakfast, catalog.FoodItem{GI: 59}, true},
		{Breakfast, catalog.FoodItem{GI: 60}, false},
		{Lunch, catalog.FoodItem{Calories: 200}, true},
		{Lunch, catalog.FoodItem{Calories: 400}, true},
		{Lunch, catalog.FoodItem{Calories: 401}, false},
		{Dinner, catalog.FoodItem{Calories: 150}, true},
		{Dinner, catalog.FoodItem{Calories: 351}, false},
		{Snack, catalog.FoodItem{Calories: 199}, true},
		{Snack, catalog.FoodItem{Calories: 200}, false},
		{Slot("brunch"), catalog.FoodItem{}, false},
	}
	for _, c := range cases {
		if got := c.slot.Eligible(c.food); got != c.want {
			t.Errorf("%s.Eligible(%+v) = %v, want %v", c.slot, c.food, got, c.want)
		}
	}
}

func TestParseSlot(t *testing.T) {
	if s, ok := ParseSlot("Snacks"); !ok || s != Snack {
		t.Errorf("Expected snack, got %s (ok=%v)", s, ok)
	}
	if _, ok := ParseSlot("brunch"); ok {
		t.Error("Expected brunch to be rejected")
	}
}

func TestSelect(t *testing.T) {
	foods := []scoring.ScoredFood{
		scored("LowGI-Low", 0.9, 30, 250, risk.Low, "Vegetarian"),
		scored("HighGI-Low", 0.8, 70, 250, risk.Low, "Vegetarian"),
		scored("LowGI-Moderate", 0.7, 40, 180, risk.Moderate, "Vegetarian"),
		scored("LowGI-Low-2", 0.6, 20, 300, risk.Low, "Vegetarian"),
		scored("Meat-Low", 0.95, 10, 250, risk.Low, "Non-Vegetarian"),
	}

	t.Run("BreakfastPrefersTag", func(t *testing.T) {
		got := Select(foods, Breakfast, 2, Criteria{Diet: "Vegetarian", RequiredTag: risk.Low})
		want := []string{"LowGI-Low", "LowGI-Low-2"}
		if len(got) != 2 || got[0].Title != want[0] || got[1].Title != want[1] {
			t.Fatalf("Expected %v, got %v", want, titles(got))
		}
		for _, f := range got {
			if f.GI >= 60 {
				t.Errorf("Breakfast item %s has GI %d", f.Title, f.GI)
			}
		}
	})

	t.Run("FallbackIgnoresTagKeepsSlot", func(t *testing.T) {
		got := Select(foods, Breakfast, 2, Criteria{Diet: "Vegetarian", RequiredTag: risk.High})
		if len(got) != 2 {
			t.Fatalf("Expected 2 fallback items, got %v", titles(got))
		}
		for _, f := range got {
			if f.GI >= 60 {
				t.Errorf("Fallback breakfast item %s violates the slot predicate", f.Title)
			}
			if f.Diet != "Vegetarian" {
				t.Errorf("Fallback item %s violates the diet filter", f.Title)
			}
		}
	})

	t.Run("FewerThanCount", func(t *testing.T) {
		got := Select(foods, Snack, 5, Criteria{Diet: "Vegetarian"})
		if len(got) != 1 || got[0].Title != "LowGI-Moderate" {
			t.Fatalf("Expected only LowGI-Moderate, got %v", titles(got))
		}
	})

	t.Run("NeverMoreThanCount", func(t *testing.T) {
		if got := Select(foods, Lunch, 1, Criteria{}); len(got) != 1 {
			t.Fatalf("Expected 1 item, got %d", len(got))
		}
	})

	t.Run("DietCaseInsensitive", func(t *testing.T) {
		got := Select(foods, Dinner, 3, Criteria{Diet: "non-vegetarian"})
		if len(got) != 1 || got[0].Title != "Meat-Low" {
			t.Fatalf("Expected Meat-Low, got %v", titles(got))
		}
	})

	t.Run("EmptyInput", func(t *testing.T) {
		if got := Select(nil, Lunch, 2, Criteria{}); len(got) != 0 {
			t.Fatalf("Expected no items, got %v", titles(got))
		}
		if got := Select(foods, Lunch, 0, Criteria{}); len(got) != 0 {
			t.Fatalf("Expected no items for count 0, got %v", titles(got))
		}
	})

	t.Run("StableTies", func(t *testing.T) {
		tied := []scoring.ScoredFood{
			scored("First", 0.5, 10, 100, risk.Low, "Vegetarian"),
			scored("Second", 0.5, 10, 100, risk.Low, "Vegetarian"),
			scored("Third", 0.5, 10, 100, risk.Low, "Vegetarian"),
		}
		got := Select(tied, Snack, 2, Criteria{})
		if got[0].Title != "First" || got[1].Title != "Second" {
			t.Fatalf("Expected catalog order for ties, got %v", titles(got))
		}
	})
}
