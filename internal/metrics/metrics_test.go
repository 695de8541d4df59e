package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordPrediction(t *testing.T) {
	before := testutil.ToFloat64(predictionsTotal.WithLabelValues("Antacid", "true"))
	successes := testutil.ToFloat64(predictionOutcomes.WithLabelValues(OutcomeSuccess))

	RecordPrediction("Antacid", true, 3*time.Millisecond)

	assert.Equal(t, before+1, testutil.ToFloat64(predictionsTotal.WithLabelValues("Antacid", "true")))
	assert.Equal(t, successes+1, testutil.ToFloat64(predictionOutcomes.WithLabelValues(OutcomeSuccess)))
}

func TestRecordFailure(t *testing.T) {
	before := testutil.ToFloat64(predictionOutcomes.WithLabelValues(OutcomeServiceUnavailable))

	RecordFailure(OutcomeServiceUnavailable)

	assert.Equal(t, before+1, testutil.ToFloat64(predictionOutcomes.WithLabelValues(OutcomeServiceUnavailable)))
}

func TestSetScorerUp(t *testing.T) {
	SetScorerUp(true)
	assert.Equal(t, 1.0, testutil.ToFloat64(scorerUp))

	SetScorerUp(false)
	assert.Equal(t, 0.0, testutil.ToFloat64(scorerUp))
}

func TestHandler(t *testing.T) {
	Init()
	Init()
	RecordPrediction("Paracetamol", false, time.Millisecond)

	app := fiber.New()
	app.Get("/metrics", Handler())

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `medrec_predictions_total{alternatives="false",medicine="Paracetamol"}`)
}
