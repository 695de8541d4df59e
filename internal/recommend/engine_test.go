package recommend

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medrec/internal/symptom"
)

func newTestEngine() *Engine {
	return NewEngine(symptom.NewClassifier(nil), NewComposer(WithClock(fixedClock)))
}

func TestEngine_Predict(t *testing.T) {
	e := newTestEngine()

	tests := []struct {
		name         string
		symptoms     string
		medicine     string
		confidence   float64
		alternatives int
	}{
		{"digestive acid", "stomach pain and nausea", "Antacid", 0.78, 2},
		{"acid only", "ACID!!", "Antacid", 0.78, 2},
		{"default rule", "headache and fever", "Paracetamol", 0.85, 0},
		{"respiratory", "cough and sore throat", "Cough Syrup", 0.82, 0},
		{"diarrheal", "loose stool all day", "Anti-diarrheal", 0.76, 2},
		{"priority", "nausea and a cough", "Antacid", 0.78, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, err := e.Predict(context.Background(), tt.symptoms)
			require.NoError(t, err)

			assert.Equal(t, tt.medicine, rec.Medicine)
			assert.Equal(t, tt.confidence, rec.Confidence)
			assert.Len(t, rec.AlternativeSuggestions, tt.alternatives)
			assert.Equal(t, tt.symptoms, rec.InputSymptoms)
			assert.Equal(t, symptom.Normalize(tt.symptoms), rec.ProcessedSymptoms)
		})
	}
}

func TestEngine_SameInputSameOutput(t *testing.T) {
	e := newTestEngine()

	first := e.Recommend("cough and sore throat")
	second := e.Recommend("cough and sore throat")

	assert.Equal(t, first, second)
}

func TestEngine_ModelInfo(t *testing.T) {
	e := NewEngine(nil, nil)

	info, err := e.ModelInfo(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "Rule-Based Keyword Classifier", info.ModelType)
	assert.Equal(t, 7, info.Features)
	assert.Equal(t, 4, info.TotalMedicines)
	assert.Equal(t, []string{"Antacid", "Cough Syrup", "Anti-diarrheal", "Paracetamol"}, info.Classes)
	assert.Equal(t, DefaultConfidenceThreshold, info.ConfidenceThreshold)
	require.Len(t, info.Rules, 4)
	assert.Equal(t, "default", info.Rules[3].Name)
	assert.Empty(t, info.Rules[3].Keywords)
}

func TestEngine_ImplementsPredictor(t *testing.T) {
	var p Predictor = NewEngine(nil, nil)
	_, isPinger := p.(Pinger)
	assert.False(t, isPinger)
}

func TestEngine_Predict_NoLettersLeft(t *testing.T) {
	e := newTestEngine()

	for _, symptoms := range []string{"123", "!!! ???", "   ", "42 %"} {
		t.Run(symptoms, func(t *testing.T) {
			rec, err := e.Predict(context.Background(), symptoms)
			require.Error(t, err)
			assert.Nil(t, rec)
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.Equal(t, MsgInvalidSymptoms, MessageOf(err))
			assert.Empty(t, CodeOf(err))
		})
	}
}
