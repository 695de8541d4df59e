// Package scorer delegates predictions to an external scoring service over
// HTTP. Each call makes exactly one attempt; retry policy belongs to callers.
package scorer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"medrec/internal/models"
	"medrec/internal/recommend"
)

// DefaultTimeout bounds every call to the scoring service.
const DefaultTimeout = 30 * time.Second

// maxResponseBytes caps how much of a scorer response is read.
const maxResponseBytes = 1 << 20

// Caller-facing messages.
const (
	MsgUnavailable      = "The AI model service is currently down. Please try again later."
	MsgInvalidSymptoms  = recommend.MsgInvalidSymptoms
	MsgPredictionFailed = "Unable to process your symptoms. Please try again."
	MsgModelInfoFailed  = "Unable to fetch model information"
	userAgent           = "medrec-gateway/1.0"
)

// Client is a recommend.Predictor backed by a remote scoring service.
type Client struct {
	baseURL string
	client  *http.Client
	log     *zap.Logger
}

// NewClient creates a client for the scoring service at baseURL. A
// non-positive timeout uses DefaultTimeout.
func NewClient(baseURL string, timeout time.Duration, log *zap.Logger) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
		log:     log.Named("scorer"),
	}
}

type predictRequest struct {
	Symptoms string `json:"symptoms"`
}

type errorBody struct {
	Error string `json:"error"`
}

// Predict sends symptoms to POST /predict.
func (c *Client) Predict(ctx context.Context, symptoms string) (*models.Recommendation, error) {
	payload, err := json.Marshal(predictRequest{Symptoms: symptoms})
	if err != nil {
		return nil, recommend.Wrap(recommend.ErrPredictionFailed, err, MsgPredictionFailed)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/predict", bytes.NewReader(payload))
	if err != nil {
		return nil, recommend.Wrap(recommend.ErrPredictionFailed, err, MsgPredictionFailed)
	}
	req.Header.Set("Content-Type", "application/json")

	var body predictResponse
	if err := c.do(req, &body, MsgPredictionFailed); err != nil {
		return nil, err
	}

	if body.Medicine == "" || body.Confidence <= 0 || body.Confidence > 1 {
		c.log.Error("scorer returned an incomplete prediction",
			zap.String("medicine", body.Medicine), zap.Float64("confidence", body.Confidence))
		return nil, recommend.Wrap(recommend.ErrPredictionFailed, errors.New("incomplete prediction"), MsgPredictionFailed)
	}

	return body.recommendation(time.Now()), nil
}

// ModelInfo fetches GET /model-info.
func (c *Client) ModelInfo(ctx context.Context) (*models.ModelInfo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/model-info", nil)
	if err != nil {
		return nil, recommend.Wrap(recommend.ErrPredictionFailed, err, MsgModelInfoFailed)
	}

	var info models.ModelInfo
	if err := c.do(req, &info, MsgModelInfoFailed); err != nil {
		return nil, err
	}
	return &info, nil
}

// Ping checks GET /health.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return recommend.Wrap(recommend.ErrPredictionFailed, err, "invalid health check request")
	}

	var health healthResponse
	if err := c.do(req, &health, "scorer health check failed"); err != nil {
		return err
	}
	if !health.ModelLoaded {
		return recommend.NewError(recommend.ErrServiceUnavailable, "", "scorer model not loaded")
	}
	return nil
}

// do performs req and decodes a 2xx JSON body into out, classifying every
// failure as a recommend.Error.
func (c *Client) do(req *http.Request, out any, failMsg string) error {
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		kind := classifyTransportError(err)
		c.log.Error("scorer request failed",
			zap.String("method", req.Method), zap.String("path", req.URL.Path),
			zap.Duration("elapsed", time.Since(start)), zap.Error(err))
		if kind == recommend.ErrServiceUnavailable {
			return recommend.Wrap(kind, err, MsgUnavailable)
		}
		return recommend.Wrap(kind, err, failMsg)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return recommend.Wrap(recommend.ErrPredictionFailed, err, failMsg)
	}

	c.log.Debug("scorer response",
		zap.String("method", req.Method), zap.String("path", req.URL.Path),
		zap.Int("status", resp.StatusCode), zap.Duration("elapsed", time.Since(start)))

	switch {
	case resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusUnprocessableEntity:
		msg := MsgInvalidSymptoms
		var eb errorBody
		if json.Unmarshal(body, &eb) == nil && eb.Error != "" {
			msg = eb.Error
		}
		return recommend.Wrap(recommend.ErrInvalidInput, fmt.Errorf("scorer returned %s", resp.Status), msg)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return recommend.Wrap(recommend.ErrPredictionFailed, fmt.Errorf("scorer returned %s", resp.Status), failMsg)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return recommend.Wrap(recommend.ErrPredictionFailed, fmt.Errorf("malformed scorer response: %w", err), failMsg)
	}
	return nil
}

// classifyTransportError maps a transport failure to ErrServiceUnavailable
// when the scorer could not be reached at all, and to ErrPredictionFailed
// otherwise. Timeouts are prediction failures, including dial timeouts.
func classifyTransportError(err error) error {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return recommend.ErrPredictionFailed
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return recommend.ErrPredictionFailed
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return recommend.ErrServiceUnavailable
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) && opErr.Op == "dial" {
		return recommend.ErrServiceUnavailable
	}
	return recommend.ErrPredictionFailed
}
