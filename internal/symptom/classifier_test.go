package symptom

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifier_Classify(t *testing.T) {
	c := NewClassifier(DefaultRuleSet())

	tests := []struct {
		name       string
		raw        string
		medicine   string
		confidence float64
	}{
		{"stomach", "stomach pain and nausea", "Antacid", 0.78},
		{"acid reflux", "Acid reflux after dinner", "Antacid", 0.78},
		{"nausea only", "NAUSEA", "Antacid", 0.78},
		{"cough", "cough and sore throat", "Cough Syrup", 0.82},
		{"throat", "scratchy throat", "Cough Syrup", 0.82},
		{"diarrhea", "diarrhea since morning", "Anti-diarrheal", 0.76},
		{"loose stool", "Loose stool", "Anti-diarrheal", 0.76},
		{"no keywords", "headache and fever", "Paracetamol", 0.85},
		{"empty", "", "Paracetamol", 0.85},
		{"digestive beats respiratory", "cough with stomach ache", "Antacid", 0.78},
		{"digestive beats diarrheal", "diarrhea and stomach cramps", "Antacid", 0.78},
		{"respiratory beats diarrheal", "diarrhea and a cough", "Cough Syrup", 0.82},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Classify(Normalize(tt.raw))
			assert.Equal(t, tt.medicine, got.Medicine)
			assert.Equal(t, tt.confidence, got.Confidence)
		})
	}
}

func TestClassifier_Deterministic(t *testing.T) {
	c := NewClassifier(nil)
	text := Normalize("cough, nausea and loose stool")

	first := c.Classify(text)
	second := c.Classify(text)

	assert.Equal(t, first, second)
	assert.Equal(t, "digestive-acid", first.Rule)
}

func TestClassifier_CustomRules(t *testing.T) {
	rs, err := NewRuleSet(
		Rule{Name: "sleep", Keywords: []string{"insomnia", "cant sleep"}, Medicine: "Sleep aid", Description: "Helps with sleep disorders", Confidence: 0.7},
		Rule{Name: "fallback", Medicine: "Pain relief", Description: "General pain relief", Confidence: 0.6},
	)
	if err != nil {
		t.Fatalf("NewRuleSet() error = %v", err)
	}
	c := NewClassifier(rs)

	assert.Equal(t, "Sleep aid", c.Classify(Normalize("I can't sleep")).Medicine)
	assert.Equal(t, Classification{
		Rule:        "fallback",
		Medicine:    "Pain relief",
		Description: "General pain relief",
		Confidence:  0.6,
	}, c.Classify("back pain"))
}
