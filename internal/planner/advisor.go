package planner

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"text/template"
	"time"

	"diet-planner/internal/llm"
	"diet-planner/internal/risk"
	"diet-planner/internal/selector"
)

//go:embed advisor_prompt.md
var advisorPrompt string

var advisorTemplate = template.Must(template.New("advisor").Parse(advisorPrompt))

type advisorSlot struct {
	Slot  selector.Slot
	Items []FoodRecord
}

type advisorPromptData struct {
	RiskLevel risk.Level
	DietType  string
	Patient   risk.PatientContext
	Meals     []advisorSlot
	Nutrition NutritionSummary
}

// AdviceResult is the guidance text with the cost of producing it.
type AdviceResult struct {
	Text    string
	Usage   llm.TokenUsage
	Latency time.Duration
}

// Advisor asks a language model for short guidance on a finished plan.
type Advisor struct {
	textGen llm.TextGenerator
}

// NewAdvisor creates a new Advisor.
func NewAdvisor(textGen llm.TextGenerator) *Advisor {
	return &Advisor{textGen: textGen}
}

// Advise returns guidance for plan. It never changes the plan.
func (a *Advisor) Advise(ctx context.Context, plan DailyPlan, patient risk.PatientContext) (AdviceResult, error) {
	start := time.Now()

	prompt, err := buildAdvisorPrompt(plan, patient)
	if err != nil {
		return AdviceResult{}, err
	}

	resp, err := a.textGen.GenerateContent(ctx, prompt)
	if err != nil {
		return AdviceResult{}, fmt.Errorf("failed to generate advice: %w", err)
	}

	return AdviceResult{
		Text:    resp.Content,
		Usage:   resp.Usage,
		Latency: time.Since(start),
	}, nil
}

func buildAdvisorPrompt(plan DailyPlan, patient risk.PatientContext) (string, error) {
	data := advisorPromptData{
		RiskLevel: plan.RiskLevel,
		DietType:  plan.DietType,
		Patient:   patient,
		Nutrition: plan.Nutrition,
	}
	for _, slot := range selector.Slots {
		if items := plan.Meals[slot]; len(items) > 0 {
			data.Meals = append(data.Meals, advisorSlot{Slot: slot, Items: items})
		}
	}

	var buf bytes.Buffer
	if err := advisorTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render advisor prompt: %w", err)
	}
	return buf.String(), nil
}
