package planner

import (
	"strings"

	"diet-planner/internal/catalog"
	"diet-planner/internal/risk"
	"diet-planner/internal/scoring"
	"diet-planner/internal/selector"
)

// SlotCounts is how many foods each slot of a daily plan receives.
var SlotCounts = map[selector.Slot]int{
	selector.Breakfast: 2,
	selector.Lunch:     2,
	selector.Dinner:    2,
	selector.Snack:     1,
}

// DefaultRecommendations is the list length used when a caller asks for none.
const DefaultRecommendations = 10

// DailyPlan is a full day of meals with its nutrition totals.
type DailyPlan struct {
	RiskLevel risk.Level                     `json:"risk_level"`
	DietType  string                         `json:"diet_type"`
	Meals     map[selector.Slot][]FoodRecord `json:"meals"`
	Nutrition NutritionSummary               `json:"daily_nutrition"`
	Advice    string                         `json:"advice,omitempty"`
}

// Items returns every planned food in slot order.
func (d DailyPlan) Items() []FoodRecord {
	var items []FoodRecord
	for _, slot := range selector.Slots {
		items = append(items, d.Meals[slot]...)
	}
	return items
}

// Planner builds meal plans from a shared, read-only catalog. It holds no
// per-request state and is safe for concurrent use.
type Planner struct {
	catalog     *catalog.Catalog
	defaultDiet string
}

// NewPlanner creates a new Planner. defaultDiet is used when a request names none.
func NewPlanner(c *catalog.Catalog, defaultDiet string) *Planner {
	return &Planner{catalog: c, defaultDiet: defaultDiet}
}

// Catalog exposes the planner's catalog.
func (p *Planner) Catalog() *catalog.Catalog {
	return p.catalog
}

// BuildDailyPlan scores the diet's foods for the patient and fills every slot.
// An empty catalog yields a plan with empty slots and zero totals.
func (p *Planner) BuildDailyPlan(patient risk.PatientContext, level risk.Level, diet string) DailyPlan {
	diet = p.ResolveDiet(diet)
	scored := scoring.ScoreAll(p.catalog.Filter(diet), patient, level)
	crit := selector.Criteria{Diet: diet, RequiredTag: risk.FoodTagFor(level)}

	plan := DailyPlan{
		RiskLevel: level,
		DietType:  diet,
		Meals:     make(map[selector.Slot][]FoodRecord, len(selector.Slots)),
	}
	for _, slot := range selector.Slots {
		plan.Meals[slot] = FormatAll(selector.Select(scored, slot, SlotCounts[slot], crit))
	}
	plan.Nutrition = Summarize(plan.Items())
	return plan
}

// Recommend returns the count best foods of the diet for the patient,
// regardless of meal slot.
func (p *Planner) Recommend(patient risk.PatientContext, level risk.Level, diet string, count int) []FoodRecord {
	if count <= 0 {
		count = DefaultRecommendations
	}
	scored := scoring.ScoreAll(p.catalog.Filter(p.ResolveDiet(diet)), patient, level)
	if len(scored) > count {
		scored = scored[:count]
	}
	return FormatAll(scored)
}

// ResolveDiet falls back to the default diet for blank input.
func (p *Planner) ResolveDiet(diet string) string {
	if d := strings.TrimSpace(diet); d != "" {
		return d
	}
	return p.defaultDiet
}
