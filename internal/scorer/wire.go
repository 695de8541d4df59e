package scorer

import (
	"time"

	"medrec/internal/models"
)

// Timestamp layouts accepted from the scoring service. Python's
// datetime.isoformat() omits the zone offset; such values are read as UTC.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
}

// parseTimestamp parses s with the first matching layout.
func parseTimestamp(s string) (time.Time, bool) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// predictResponse is the body of POST /predict. Timestamp is kept as text
// so that any scorer clock format decodes.
type predictResponse struct {
	Medicine               string              `json:"predicted_medicine"`
	Description            string              `json:"description"`
	Confidence             float64             `json:"confidence"`
	InputSymptoms          string              `json:"input_symptoms"`
	ProcessedSymptoms      string              `json:"processed_symptoms"`
	Timestamp              string              `json:"timestamp"`
	Disclaimer             string              `json:"disclaimer"`
	AlternativeSuggestions []models.Suggestion `json:"alternative_suggestions"`
}

// recommendation converts the body, stamping now when the scorer's
// timestamp is missing or unreadable.
func (p predictResponse) recommendation(now time.Time) *models.Recommendation {
	ts, ok := parseTimestamp(p.Timestamp)
	if !ok {
		ts = now
	}

	alts := p.AlternativeSuggestions
	if len(alts) > models.MaxAlternatives {
		alts = alts[:models.MaxAlternatives]
	}

	return &models.Recommendation{
		Medicine:               p.Medicine,
		Description:            p.Description,
		Confidence:             p.Confidence,
		InputSymptoms:          p.InputSymptoms,
		ProcessedSymptoms:      p.ProcessedSymptoms,
		Timestamp:              ts,
		Disclaimer:             p.Disclaimer,
		AlternativeSuggestions: alts,
	}
}

// healthResponse is the body of GET /health. The timestamp is not read.
type healthResponse struct {
	Status      string `json:"status"`
	ModelLoaded bool   `json:"model_loaded"`
}
