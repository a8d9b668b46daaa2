package planner

import (
	"context"
	"errors"
	"strings"
	"testing"

	"diet-planner/internal/llm"
	"diet-planner/internal/risk"
)

type MockTextGenerator struct {
	prompt string
	err    error
}

func (m *MockTextGenerator) GenerateContent(ctx context.Context, prompt string) (llm.ContentResponse, error) {
	m.prompt = prompt
	if m.err != nil {
		return llm.ContentResponse{}, m.err
	}
	return llm.ContentResponse{
		Content: "- Eat breakfast before 9am",
		Usage:   llm.TokenUsage{PromptTokens: 120, CompletionTokens: 30, Model: "gemini-test"},
	}, nil
}

func TestAdvise(t *testing.T) {
	patient := risk.PatientContext{Glucose: 165, BMI: 32, Age: 50}
	plan := NewPlanner(testCatalog(), "Vegetarian").BuildDailyPlan(patient, risk.High, "Vegetarian")

	t.Run("success", func(t *testing.T) {
		gen := &MockTextGenerator{}
		res, err := NewAdvisor(gen).Advise(context.Background(), plan, patient)
		if err != nil {
			t.Fatalf("Advise failed: %v", err)
		}
		if res.Text != "- Eat breakfast before 9am" {
			t.Errorf("unexpected advice %q", res.Text)
		}
		if res.Usage.PromptTokens != 120 || res.Usage.Model != "gemini-test" {
			t.Errorf("unexpected usage %+v", res.Usage)
		}
		for _, want := range []string{"# Dietary Advisor Prompt", "Diabetes risk: High", "BMI: 32.0", "### breakfast"} {
			if !strings.Contains(gen.prompt, want) {
				t.Errorf("prompt missing %q:\n%s", want, gen.prompt)
			}
		}
		for _, item := range plan.Meals["breakfast"] {
			if !strings.Contains(gen.prompt, item.Title) {
				t.Errorf("prompt missing breakfast item %q", item.Title)
			}
		}
	})

	t.Run("generator error", func(t *testing.T) {
		gen := &MockTextGenerator{err: errors.New("quota exceeded")}
		if _, err := NewAdvisor(gen).Advise(context.Background(), plan, patient); err == nil {
			t.Fatal("expected error")
		}
	})

	t.Run("unset patient fields are omitted", func(t *testing.T) {
		gen := &MockTextGenerator{}
		if _, err := NewAdvisor(gen).Advise(context.Background(), plan, risk.PatientContext{}); err != nil {
			t.Fatalf("Advise failed: %v", err)
		}
		if strings.Contains(gen.prompt, "BMI:") || strings.Contains(gen.prompt, "Age:") {
			t.Errorf("prompt should omit unset fields:\n%s", gen.prompt)
		}
	})
}
