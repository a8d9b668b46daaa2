package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"diet-planner/internal/logger"
	"diet-planner/internal/metrics"
	"diet-planner/internal/planner"
	"diet-planner/internal/risk"
)

// ErrInvalidRequest marks caller input the service cannot plan for.
var ErrInvalidRequest = errors.New("invalid request")

// MetricsRecorder persists one metric per served request.
type MetricsRecorder interface {
	Record(ctx context.Context, m metrics.PlanMetric) error
}

// PlanRequest describes the patient a plan or recommendation list is built for.
// The risk level is taken from Risk, then Probability, then Patient.HighRisk.
type PlanRequest struct {
	Patient     risk.PatientContext `json:"patient"`
	Risk        string              `json:"risk,omitempty"`
	Probability *float64            `json:"probability,omitempty"`
	Diet        string              `json:"diet,omitempty"`
	WithAdvice  bool                `json:"with_advice,omitempty"`
	Count       int                 `json:"count,omitempty"`
}

// Level resolves the request's risk level.
func (r PlanRequest) Level() (risk.Level, error) {
	if r.Risk != "" {
		level, ok := risk.ParseLevel(r.Risk)
		if !ok {
			return "", fmt.Errorf("%w: unknown risk level %q", ErrInvalidRequest, r.Risk)
		}
		return level, nil
	}
	if r.Probability != nil {
		p := *r.Probability
		if p < 0 || p > 1 {
			return "", fmt.Errorf("%w: probability must be between 0 and 1, got %g", ErrInvalidRequest, p)
		}
		return risk.FromProbability(p), nil
	}
	if r.Patient.HighRisk {
		return risk.High, nil
	}
	return risk.Low, nil
}

// PredictionResult is a risk assessment with the plan built from it.
type PredictionResult struct {
	Prediction      int                 `json:"prediction"`
	Probability     [2]float64          `json:"probability"`
	RiskLevel       risk.Level          `json:"risk_level"`
	RiskFactors     []string            `json:"risk_factors"`
	BMICategory     string              `json:"bmi_category"`
	GlucoseCategory string              `json:"glucose_category"`
	Model           string              `json:"model"`
	Nutrition       risk.NutritionNeeds `json:"nutrition"`
	MealPlan        planner.DailyPlan   `json:"meal_plan"`
}

// App wires the planner to its optional collaborators.
type App struct {
	planner   *planner.Planner
	predictor risk.Predictor
	advisor   *planner.Advisor
	metrics   MetricsRecorder
	log       *logger.Logger
}

// NewApp creates and initializes a new App instance. advisor and recorder may be nil.
func NewApp(
	p *planner.Planner,
	predictor risk.Predictor,
	advisor *planner.Advisor,
	recorder MetricsRecorder,
	log *logger.Logger,
) *App {
	if predictor == nil {
		predictor = risk.NewHeuristicPredictor()
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &App{
		planner:   p,
		predictor: predictor,
		advisor:   advisor,
		metrics:   recorder,
		log:       log,
	}
}

// Planner exposes the underlying planner.
func (a *App) Planner() *planner.Planner {
	return a.planner
}

// PredictorName names the risk classifier in use.
func (a *App) PredictorName() string {
	return a.predictor.Name()
}

// AdviceEnabled reports whether plans can carry advice.
func (a *App) AdviceEnabled() bool {
	return a.advisor != nil
}

// MealPlan builds a daily plan, adding advice when asked for and available.
// Advice failures are logged and the plan is returned without advice.
func (a *App) MealPlan(ctx context.Context, req PlanRequest) (planner.DailyPlan, error) {
	start := time.Now()
	level, err := req.Level()
	if err != nil {
		return planner.DailyPlan{}, err
	}

	plan := a.planner.BuildDailyPlan(req.Patient, level, req.Diet)
	metric := metrics.PlanMetric{
		Operation: metrics.OperationMealPlan,
		RiskLevel: string(level),
		DietType:  plan.DietType,
		Items:     len(plan.Items()),
	}

	if req.WithAdvice {
		if advice, ok := a.advise(ctx, plan, req.Patient); ok {
			plan.Advice = advice.Text
			metric = metric.WithUsage(advice.Usage)
		}
	}

	metric.LatencyMS = time.Since(start).Milliseconds()
	a.record(ctx, metric)
	return plan, nil
}

// Recommend returns the best foods for the request regardless of meal slot.
func (a *App) Recommend(ctx context.Context, req PlanRequest) ([]planner.FoodRecord, error) {
	start := time.Now()
	level, err := req.Level()
	if err != nil {
		return nil, err
	}

	recs := a.planner.Recommend(req.Patient, level, req.Diet, req.Count)
	a.record(ctx, metrics.PlanMetric{
		Operation: metrics.OperationRecommendation,
		RiskLevel: string(level),
		DietType:  a.planner.ResolveDiet(req.Diet),
		Items:     len(recs),
		LatencyMS: time.Since(start).Milliseconds(),
	})
	return recs, nil
}

// Predict classifies an assessment and plans a day for the resulting risk level.
// Every assessment field must be supplied.
func (a *App) Predict(ctx context.Context, req risk.AssessmentRequest, diet string) (PredictionResult, error) {
	start := time.Now()
	assessment, err := req.Assessment()
	if err != nil {
		return PredictionResult{}, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}

	prediction, err := a.predictor.Predict(assessment)
	if err != nil {
		return PredictionResult{}, fmt.Errorf("failed to predict risk: %w", err)
	}

	level := prediction.Level()
	patient := assessment.Patient(prediction.Positive)
	plan := a.planner.BuildDailyPlan(patient, level, diet)

	result := PredictionResult{
		Probability:     prediction.Probabilities,
		RiskLevel:       level,
		RiskFactors:     risk.RiskFactors(assessment),
		BMICategory:     risk.BMICategory(assessment.BMI),
		GlucoseCategory: risk.GlucoseCategory(assessment.Glucose),
		Model:           a.predictor.Name(),
		Nutrition:       risk.CalculateNutritionNeeds(assessment.BMI, assessment.Age, assessment.Glucose, prediction.Positive),
		MealPlan:        plan,
	}
	if prediction.Positive {
		result.Prediction = 1
	}

	a.record(ctx, metrics.PlanMetric{
		Operation: metrics.OperationPrediction,
		RiskLevel: string(level),
		DietType:  plan.DietType,
		Items:     len(plan.Items()),
		LatencyMS: time.Since(start).Milliseconds(),
	})
	return result, nil
}

func (a *App) advise(ctx context.Context, plan planner.DailyPlan, patient risk.PatientContext) (planner.AdviceResult, bool) {
	if a.advisor == nil {
		return planner.AdviceResult{}, false
	}
	advice, err := a.advisor.Advise(ctx, plan, patient)
	if err != nil {
		a.log.Warn("advice unavailable", "risk_level", plan.RiskLevel, "error", err)
		return planner.AdviceResult{}, false
	}
	return advice, true
}

func (a *App) record(ctx context.Context, m metrics.PlanMetric) {
	if a.metrics == nil {
		return
	}
	if err := a.metrics.Record(ctx, m); err != nil {
		a.log.Warn("failed to record metric", "operation", m.Operation, "error", err)
	}
}
