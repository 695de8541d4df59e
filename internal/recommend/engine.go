package recommend

import (
	"context"
	"strings"

	"medrec/internal/models"
	"medrec/internal/symptom"
)

// Predictor produces recommendations for already validated symptom text.
type Predictor interface {
	Predict(ctx context.Context, symptoms string) (*models.Recommendation, error)
	ModelInfo(ctx context.Context) (*models.ModelInfo, error)
}

// Pinger is implemented by predictors that depend on a remote service.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Engine is the in-process pipeline: normalize, classify, compose.
// It is the single owner of the rule table; the scoring service serves the
// same Engine over HTTP.
type Engine struct {
	classifier *symptom.Classifier
	composer   *Composer
}

// NewEngine creates an engine. Nil arguments fall back to the built-in
// rule table and composer defaults.
func NewEngine(classifier *symptom.Classifier, composer *Composer) *Engine {
	if classifier == nil {
		classifier = symptom.NewClassifier(nil)
	}
	if composer == nil {
		composer = NewComposer()
	}
	return &Engine{classifier: classifier, composer: composer}
}

// Recommend runs the pipeline on raw text. It never fails.
func (e *Engine) Recommend(raw string) *models.Recommendation {
	q := symptom.NewQuery(raw)
	return e.composer.Compose(q, e.classifier.Classify(q.Normalized))
}

// MsgInvalidSymptoms is reported for input with no letters left after
// normalization.
const MsgInvalidSymptoms = "Invalid symptoms format"

// Predict implements Predictor. Input that normalizes to blank text is
// rejected with ErrInvalidInput; everything else is classified.
func (e *Engine) Predict(_ context.Context, symptoms string) (*models.Recommendation, error) {
	if strings.TrimSpace(symptom.Normalize(symptoms)) == "" {
		return nil, NewError(ErrInvalidInput, "", MsgInvalidSymptoms)
	}
	return e.Recommend(symptoms), nil
}

// ModelInfo implements Predictor.
func (e *Engine) ModelInfo(_ context.Context) (*models.ModelInfo, error) {
	rs := e.classifier.Rules()
	rules := rs.Rules()

	info := &models.ModelInfo{
		ModelType:           "Rule-Based Keyword Classifier",
		Vectorizer:          "Keyword substring match",
		Features:            rs.KeywordCount(),
		Classes:             rs.Medicines(),
		ConfidenceThreshold: e.composer.Threshold(),
		Rules:               make([]models.RuleInfo, 0, len(rules)),
	}
	info.TotalMedicines = len(info.Classes)

	for _, r := range rules {
		info.Rules = append(info.Rules, models.RuleInfo{
			Name:        r.Name,
			Keywords:    r.Keywords,
			Medicine:    r.Medicine,
			Description: r.Description,
			Confidence:  r.Confidence,
		})
	}
	return info, nil
}
