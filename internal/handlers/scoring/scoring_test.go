package scoring

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medrec/internal/models"
	"medrec/internal/recommend"
	"medrec/internal/scorer"
)

func newScoringApp() *fiber.App {
	h := NewHandler(recommend.NewEngine(nil, nil), nil)
	app := fiber.New()
	app.Post("/predict", h.Predict)
	app.Get("/model-info", h.ModelInfo)
	app.Get("/health", h.Health)
	return app
}

func TestPredict(t *testing.T) {
	app := newScoringApp()

	req := httptest.NewRequest(http.MethodPost, "/predict", strings.NewReader(`{"symptoms":"Loose stool since yesterday"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	defer resp.Body.Close()

	var rec models.Recommendation
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&rec))
	assert.Equal(t, "Anti-diarrheal", rec.Medicine)
	assert.Equal(t, 0.76, rec.Confidence)
	assert.Len(t, rec.AlternativeSuggestions, 2)
}

func TestPredict_Rejects(t *testing.T) {
	app := newScoringApp()

	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{"missing", `{}`, errNoSymptoms},
		{"empty", `{"symptoms":""}`, errNoSymptoms},
		{"wrong type", `{"symptoms":7}`, errNoSymptoms},
		{"not json", `symptoms=cough`, errNoSymptoms},
		{"nothing left after cleaning", `{"symptoms":"123 !!!"}`, recommend.MsgInvalidSymptoms},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/predict", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			defer resp.Body.Close()

			var body models.ErrorResponse
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Equal(t, tt.wantErr, body.Error)
		})
	}
}

func TestHealth(t *testing.T) {
	resp, err := newScoringApp().Test(httptest.NewRequest(http.MethodGet, "/health", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	var body models.ScorerHealthResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "healthy", body.Status)
	assert.True(t, body.ModelLoaded)
}

// The gateway's remote client and the scoring service must agree on the
// wire format.
func TestClientRoundTrip(t *testing.T) {
	srv := httptest.NewServer(adaptor.FiberApp(newScoringApp()))
	defer srv.Close()

	client := scorer.NewClient(srv.URL, 5*time.Second, nil)
	ctx := context.Background()

	rec, err := client.Predict(ctx, "persistent dry cough")
	require.NoError(t, err)
	assert.Equal(t, "Cough Syrup", rec.Medicine)
	assert.False(t, rec.HasAlternatives())

	_, err = client.Predict(ctx, "!!!")
	require.Error(t, err)
	assert.True(t, errors.Is(err, recommend.ErrInvalidInput))
	assert.Equal(t, recommend.MsgInvalidSymptoms, recommend.MessageOf(err))

	info, err := client.ModelInfo(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, info.TotalMedicines)

	require.NoError(t, client.Ping(ctx))
}
