package models

import "time"

// Confidence band constants used for display.
const (
	ConfidenceHigh   = "High"
	ConfidenceMedium = "Medium"
	ConfidenceLow    = "Low"
)

// MaxAlternatives is the most alternative suggestions a Recommendation carries.
const MaxAlternatives = 2

// Suggestion is an alternative medicine offered next to the primary one.
type Suggestion struct {
	Medicine    string  `json:"medicine"`
	Description string  `json:"description"`
	Confidence  float64 `json:"confidence"`
}

// Recommendation is the medicine suggested for one symptom description.
type Recommendation struct {
	Medicine               string       `json:"predicted_medicine"`
	Description            string       `json:"description"`
	Confidence             float64      `json:"confidence"`
	InputSymptoms          string       `json:"input_symptoms"`
	ProcessedSymptoms      string       `json:"processed_symptoms"`
	Timestamp              time.Time    `json:"timestamp"`
	Disclaimer             string       `json:"disclaimer"`
	AlternativeSuggestions []Suggestion `json:"alternative_suggestions,omitempty"`
}

// HasAlternatives returns true if alternative suggestions are attached.
func (r *Recommendation) HasAlternatives() bool {
	return len(r.AlternativeSuggestions) > 0
}

// ConfidenceBand returns the display band for the recommendation's confidence.
func (r *Recommendation) ConfidenceBand() string {
	return ConfidenceBand(r.Confidence)
}

// ConfidenceBand maps a confidence score to High (>= 0.8), Medium (>= 0.6) or Low.
func ConfidenceBand(confidence float64) string {
	switch {
	case confidence >= 0.8:
		return ConfidenceHigh
	case confidence >= 0.6:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}
