package selector

import (
	"strings"

	"diet-planner/internal/catalog"
)

// Slot is one of the daily eating occasions.
type Slot string

const (
	Breakfast Slot = "breakfast"
	Lunch     Slot = "lunch"
	Dinner    Slot = "dinner"
	Snack     Slot = "snack"
)

// Slots lists every slot in the order a day is planned.
var Slots = []Slot{Breakfast, Lunch, Dinner, Snack}

// Eligibility reports whether a food may be served in a slot.
type Eligibility func(catalog.FoodItem) bool

var eligibility = map[Slot]Eligibility{
	Breakfast: func(f catalog.FoodItem) bool { return f.GI < 60 },
	Lunch:     func(f catalog.FoodItem) bool { return f.Calories >= 200 && f.Calories <= 400 },
	Dinner:    func(f catalog.FoodItem) bool { return f.Calories >= 150 && f.Calories <= 350 },
	Snack:     func(f catalog.FoodItem) bool { return f.Calories < 200 },
}

// Eligible applies the slot's predicate. Unknown slots accept nothing.
func (s Slot) Eligible(f catalog.FoodItem) bool {
	pred, ok := eligibility[s]
	return ok && pred(f)
}

// ParseSlot accepts slot names in any case; "snacks" is accepted for Snack.
func ParseSlot(raw string) (Slot, bool) {
	s := Slot(strings.ToLower(strings.TrimSpace(raw)))
	if s == "snacks" {
		s = Snack
	}
	_, ok := eligibility[s]
	return s, ok
}
