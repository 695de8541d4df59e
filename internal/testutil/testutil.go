// Package testutil provides test utilities and helpers.
package testutil

import (
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"

	"medrec/internal/handlers/scoring"
	"medrec/internal/recommend"
)

// NewScorer starts a scoring service backed by engine, or by the built-in
// rule table when engine is nil. The server is closed when the test ends.
func NewScorer(t *testing.T, engine *recommend.Engine) *httptest.Server {
	t.Helper()

	if engine == nil {
		engine = recommend.NewEngine(nil, nil)
	}
	h := scoring.NewHandler(engine, nil)

	app := fiber.New()
	app.Post("/predict", h.Predict)
	app.Get("/model-info", h.ModelInfo)
	app.Get("/health", h.Health)

	srv := httptest.NewServer(adaptor.FiberApp(app))
	t.Cleanup(srv.Close)
	return srv
}

// RefusedURL returns a base URL on which nothing is listening.
func RefusedURL(t *testing.T) string {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to reserve a port: %v", err)
	}
	addr := ln.Addr().String()
	if err := ln.Close(); err != nil {
		t.Fatalf("failed to release port: %v", err)
	}
	return "http://" + addr
}

// WriteJSON writes v as a JSON response with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
