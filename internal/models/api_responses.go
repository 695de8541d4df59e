package models

import "time"

// ResponseMetadata carries per-request details added by the gateway.
type ResponseMetadata struct {
	ResponseTime     string    `json:"responseTime"`
	BackendTimestamp time.Time `json:"backend_timestamp"`
	RequestID        string    `json:"request_id"`
}

// PredictResponse is the envelope returned by POST /api/symptoms/predict.
type PredictResponse struct {
	Recommendation
	Metadata ResponseMetadata `json:"metadata"`
}

// RuleInfo describes one classification rule in ModelInfo.
type RuleInfo struct {
	Name        string   `json:"name"`
	Keywords    []string `json:"keywords,omitempty"`
	Medicine    string   `json:"medicine"`
	Description string   `json:"description"`
	Confidence  float64  `json:"confidence"`
}

// ModelInfo describes the classifier behind the predict endpoint.
type ModelInfo struct {
	ModelType           string     `json:"model_type"`
	Vectorizer          string     `json:"vectorizer"`
	Features            int        `json:"features"`
	Classes             []string   `json:"classes"`
	TotalMedicines      int        `json:"total_medicines"`
	ConfidenceThreshold float64    `json:"confidence_threshold,omitempty"`
	Rules               []RuleInfo `json:"rules,omitempty"`
}

// ErrorResponse is the JSON body of every failed request.
type ErrorResponse struct {
	Error     string    `json:"error"`
	Message   string    `json:"message,omitempty"`
	Code      string    `json:"code,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Service   string    `json:"service"`
}

// ScorerHealthResponse is the body of the scoring service's GET /health.
type ScorerHealthResponse struct {
	Status      string    `json:"status"`
	Timestamp   time.Time `json:"timestamp"`
	ModelLoaded bool      `json:"model_loaded"`
}
