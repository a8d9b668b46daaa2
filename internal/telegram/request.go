package telegram

import (
	"fmt"
	"strconv"
	"strings"

	"diet-planner/internal/app"
)

const usageText = "Usage: `/plan glucose=165 bmi=32 age=50 [risk=High|probability=0.7] [diet=Vegetarian]`"

const helpText = "🥗 *Diet Planner*\n\n" +
	"`/plan glucose=.. bmi=.. age=.. [risk=..|probability=..] [diet=..]` builds a day of meals.\n" +
	"`/recommend ... [count=..]` lists the best foods for you.\n" +
	"`/metrics` shows recent usage."

// ParseRequest reads space separated key=value pairs into a plan request.
func ParseRequest(args string) (app.PlanRequest, error) {
	var req app.PlanRequest
	for _, field := range strings.Fields(args) {
		key, value, ok := strings.Cut(field, "=")
		if !ok || value == "" {
			return app.PlanRequest{}, fmt.Errorf("expected key=value, got %q", field)
		}

		var err error
		switch strings.ToLower(key) {
		case "glucose":
			req.Patient.Glucose, err = strconv.ParseFloat(value, 64)
		case "bmi":
			req.Patient.BMI, err = strconv.ParseFloat(value, 64)
		case "age":
			req.Patient.Age, err = strconv.Atoi(value)
		case "risk":
			req.Risk = value
		case "probability", "p":
			var p float64
			p, err = strconv.ParseFloat(value, 64)
			req.Probability = &p
		case "diet":
			req.Diet = value
		case "count":
			req.Count, err = strconv.Atoi(value)
		default:
			return app.PlanRequest{}, fmt.Errorf("unknown option %q", key)
		}
		if err != nil {
			return app.PlanRequest{}, fmt.Errorf("invalid %s %q", key, value)
		}
	}
	return req, nil
}
