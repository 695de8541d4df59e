package recommend

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medrec/internal/models"
	"medrec/internal/symptom"
)

var fixedNow = time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

func TestComposer_LowConfidenceAddsAlternatives(t *testing.T) {
	c := NewComposer(WithClock(fixedClock))
	q := symptom.NewQuery("Stomach pain and nausea")

	rec := c.Compose(q, symptom.Classification{
		Medicine:    "Antacid",
		Description: "Neutralizes stomach acid and relieves heartburn",
		Confidence:  0.78,
	})

	assert.Equal(t, "Antacid", rec.Medicine)
	assert.Equal(t, 0.78, rec.Confidence)
	assert.Equal(t, "Stomach pain and nausea", rec.InputSymptoms)
	assert.Equal(t, "stomach pain and nausea", rec.ProcessedSymptoms)
	assert.Equal(t, fixedNow, rec.Timestamp)
	assert.Equal(t, Disclaimer, rec.Disclaimer)

	require.Len(t, rec.AlternativeSuggestions, 2)
	assert.Equal(t, models.Suggestion{Medicine: "Ibuprofen", Description: "Anti-inflammatory pain relief", Confidence: 0.68}, rec.AlternativeSuggestions[0])
	assert.Equal(t, models.Suggestion{Medicine: "Aspirin", Description: "Pain relief and anti-inflammatory", Confidence: 0.63}, rec.AlternativeSuggestions[1])
}

func TestComposer_AtOrAboveThresholdHasNoAlternatives(t *testing.T) {
	c := NewComposer()

	for _, conf := range []float64{0.80, 0.82, 0.85, 1} {
		rec := c.Compose(symptom.NewQuery("x"), symptom.Classification{Medicine: "M", Confidence: conf})
		assert.Nil(t, rec.AlternativeSuggestions, "confidence %v", conf)
	}
}

func TestComposer_AlternativesFlooredAtZero(t *testing.T) {
	c := NewComposer()

	rec := c.Compose(symptom.NewQuery("x"), symptom.Classification{Medicine: "M", Confidence: 0.12})

	require.Len(t, rec.AlternativeSuggestions, 2)
	assert.InDelta(t, 0.02, rec.AlternativeSuggestions[0].Confidence, 1e-9)
	assert.Equal(t, 0.0, rec.AlternativeSuggestions[1].Confidence)
}

func TestComposer_Options(t *testing.T) {
	c := NewComposer(
		WithThreshold(0.5),
		WithAlternatives([]Alternative{
			{Medicine: "A", Offset: 0.1},
			{Medicine: "B", Offset: 0.2},
			{Medicine: "C", Offset: 0.3},
		}),
	)

	assert.Equal(t, 0.5, c.Threshold())

	rec := c.Compose(symptom.NewQuery("x"), symptom.Classification{Medicine: "M", Confidence: 0.49})
	require.Len(t, rec.AlternativeSuggestions, models.MaxAlternatives)
	assert.Equal(t, "B", rec.AlternativeSuggestions[1].Medicine)

	rec = c.Compose(symptom.NewQuery("x"), symptom.Classification{Medicine: "M", Confidence: 0.78})
	assert.Empty(t, rec.AlternativeSuggestions)
}

func TestComposer_NoAlternativesConfigured(t *testing.T) {
	c := NewComposer(WithAlternatives(nil))

	rec := c.Compose(symptom.NewQuery("x"), symptom.Classification{Medicine: "M", Confidence: 0.1})

	assert.Nil(t, rec.AlternativeSuggestions)
}
