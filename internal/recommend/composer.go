// Package recommend builds medicine recommendations from classified symptoms
// and defines the Predictor contract shared by the in-process engine and the
// remote scoring adapter.
package recommend

import (
	"math"
	"time"

	"medrec/internal/models"
	"medrec/internal/symptom"
)

// DefaultConfidenceThreshold is the confidence below which alternatives are attached.
const DefaultConfidenceThreshold = 0.80

// Disclaimer is attached to every recommendation.
const Disclaimer = "This is for educational purposes only. Consult a healthcare professional for proper medical advice."

// Alternative is a fixed alternative suggestion. Its confidence is the primary
// confidence minus Offset, floored at zero.
type Alternative struct {
	Medicine    string
	Description string
	Offset      float64
}

// DefaultAlternatives returns the built-in alternative suggestions.
func DefaultAlternatives() []Alternative {
	return []Alternative{
		{Medicine: "Ibuprofen", Description: "Anti-inflammatory pain relief", Offset: 0.10},
		{Medicine: "Aspirin", Description: "Pain relief and anti-inflammatory", Offset: 0.15},
	}
}

// Composer turns a classification into a Recommendation.
type Composer struct {
	threshold    float64
	alternatives []Alternative
	now          func() time.Time
}

// ComposerOption configures a Composer.
type ComposerOption func(*Composer)

// WithThreshold overrides the confidence threshold.
func WithThreshold(threshold float64) ComposerOption {
	return func(c *Composer) { c.threshold = threshold }
}

// WithAlternatives overrides the alternative suggestions. At most
// models.MaxAlternatives are used.
func WithAlternatives(alts []Alternative) ComposerOption {
	return func(c *Composer) {
		if len(alts) > models.MaxAlternatives {
			alts = alts[:models.MaxAlternatives]
		}
		c.alternatives = append([]Alternative(nil), alts...)
	}
}

// WithClock overrides the time source used for timestamps.
func WithClock(now func() time.Time) ComposerOption {
	return func(c *Composer) { c.now = now }
}

// NewComposer creates a Composer with the default threshold and alternatives.
func NewComposer(opts ...ComposerOption) *Composer {
	c := &Composer{
		threshold:    DefaultConfidenceThreshold,
		alternatives: DefaultAlternatives(),
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Threshold returns the confidence threshold.
func (c *Composer) Threshold() float64 {
	return c.threshold
}

// Compose builds the recommendation for q. Alternatives are attached only
// when cls.Confidence is below the threshold; they do not depend on which
// rule matched.
func (c *Composer) Compose(q symptom.Query, cls symptom.Classification) *models.Recommendation {
	rec := &models.Recommendation{
		Medicine:          cls.Medicine,
		Description:       cls.Description,
		Confidence:        cls.Confidence,
		InputSymptoms:     q.Raw,
		ProcessedSymptoms: q.Normalized,
		Timestamp:         c.now(),
		Disclaimer:        Disclaimer,
	}

	if cls.Confidence < c.threshold && len(c.alternatives) > 0 {
		rec.AlternativeSuggestions = make([]models.Suggestion, 0, len(c.alternatives))
		for _, alt := range c.alternatives {
			rec.AlternativeSuggestions = append(rec.AlternativeSuggestions, models.Suggestion{
				Medicine:    alt.Medicine,
				Description: alt.Description,
				Confidence:  offsetConfidence(cls.Confidence, alt.Offset),
			})
		}
	}

	return rec
}

// offsetConfidence subtracts offset and rounds to two decimals so 0.78-0.10
// reads 0.68 rather than 0.6800000000000001.
func offsetConfidence(confidence, offset float64) float64 {
	v := math.Round((confidence-offset)*100) / 100
	if v <= 0 {
		return 0
	}
	return v
}
