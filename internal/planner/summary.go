package planner

// NutritionSummary totals a day's selected foods.
type NutritionSummary struct {
	Calories int     `json:"calories"`
	Protein  float64 `json:"protein"`
	Fiber    float64 `json:"fiber"`
	AvgGI    float64 `json:"avg_gi"`
}

// Summarize folds the records into day totals. AvgGI is 0 for no records.
func Summarize(records []FoodRecord) NutritionSummary {
	var s NutritionSummary
	if len(records) == 0 {
		return s
	}

	giTotal := 0
	for _, r := range records {
		s.Calories += r.Calories
		s.Protein += r.Protein
		s.Fiber += r.Fiber
		giTotal += r.GIIndex
	}
	s.Protein = round(s.Protein, 1)
	s.Fiber = round(s.Fiber, 1)
	s.AvgGI = round(float64(giTotal)/float64(len(records)), 1)
	return s
}
