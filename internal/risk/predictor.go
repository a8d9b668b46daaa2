package risk

// Prediction is a classifier outcome: a binary label plus class probabilities
// ordered [negative, positive].
type Prediction struct {
	Positive      bool       `json:"-"`
	Probabilities [2]float64 `json:"probability"`
}

// PositiveProbability is the probability of the diabetic class.
func (p Prediction) PositiveProbability() float64 {
	return p.Probabilities[1]
}

// Level maps the prediction onto a risk Level.
func (p Prediction) Level() Level {
	return FromProbability(p.PositiveProbability())
}

// Predictor is a black-box risk classifier.
type Predictor interface {
	Predict(a Assessment) (Prediction, error)
	Name() string
}

// HeuristicPredictor is the rule-based classifier used when no trained model is loaded.
type HeuristicPredictor struct{}

func NewHeuristicPredictor() *HeuristicPredictor {
	return &HeuristicPredictor{}
}

func (h *HeuristicPredictor) Name() string {
	return "heuristic"
}

// Predict sums rule weights for elevated metrics and calls the patient positive
// once the sum exceeds 0.4.
func (h *HeuristicPredictor) Predict(a Assessment) (Prediction, error) {
	score := 0.0
	if a.Glucose > 140 {
		score += 0.3
	}
	if a.BMI > 30 {
		score += 0.2
	}
	if a.Age > 60 {
		score += 0.15
	}
	if a.BloodPressure > 90 {
		score += 0.1
	}
	if a.DiabetesPedigreeFunction > 1.0 {
		score += 0.1
	}

	if score > 0.4 {
		return Prediction{Positive: true, Probabilities: [2]float64{1 - score, score}}, nil
	}
	return Prediction{Positive: false, Probabilities: [2]float64{0.8, 0.2}}, nil
}
