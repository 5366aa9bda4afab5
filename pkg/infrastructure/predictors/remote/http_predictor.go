// Package remote reaches trained models served over HTTP.
//
// A model server exposes GET /health and POST /predict. The predict body is
// {"features": {...}}; regressors answer {"value": x} and classifiers
// answer {"probability": p}.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/vsinha/schc/pkg/domain/predictors"
)

const maxResponseBytes = 1 << 20

// HTTPPredictor calls one model server. It satisfies both predictors.Regressor
// and predictors.Classifier; the slot it is registered in decides which is used.
type HTTPPredictor struct {
	name    string
	baseURL string
	client  *http.Client
}

// NewHTTPPredictor creates a predictor for the model server at baseURL
func NewHTTPPredictor(name, baseURL string, timeout time.Duration) *HTTPPredictor {
	return &HTTPPredictor{
		name:    name,
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

var (
	_ predictors.Regressor  = (*HTTPPredictor)(nil)
	_ predictors.Classifier = (*HTTPPredictor)(nil)
)

type predictRequest struct {
	Features predictors.Features `json:"features"`
}

type predictResponse struct {
	Value       *float64 `json:"value,omitempty"`
	Probability *float64 `json:"probability,omitempty"`
}

// Probe checks the server's health endpoint
func (p *HTTPPredictor) Probe(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/health", nil)
	if err != nil {
		return fmt.Errorf("predictor %s: build health request: %w", p.name, err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("predictor %s: health check: %w", p.name, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBytes))

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("predictor %s: health check returned %s", p.name, resp.Status)
	}
	return nil
}

// Predict returns the regressor output for one feature row
func (p *HTTPPredictor) Predict(ctx context.Context, features predictors.Features) (float64, error) {
	out, err := p.call(ctx, features)
	if err != nil {
		return 0, err
	}
	if out.Value == nil {
		return 0, fmt.Errorf("predictor %s: response has no value", p.name)
	}
	return *out.Value, nil
}

// PredictProba returns the positive-class probability for one feature row
func (p *HTTPPredictor) PredictProba(ctx context.Context, features predictors.Features) (float64, error) {
	out, err := p.call(ctx, features)
	if err != nil {
		return 0, err
	}
	if out.Probability == nil {
		return 0, fmt.Errorf("predictor %s: response has no probability", p.name)
	}
	return *out.Probability, nil
}

func (p *HTTPPredictor) call(ctx context.Context, features predictors.Features) (*predictResponse, error) {
	body, err := json.Marshal(predictRequest{Features: features})
	if err != nil {
		return nil, fmt.Errorf("predictor %s: encode features: %w", p.name, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/predict", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("predictor %s: build request: %w", p.name, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("predictor %s: request: %w", p.name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("predictor %s: predict returned %s", p.name, resp.Status)
	}

	var out predictResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&out); err != nil {
		return nil, fmt.Errorf("predictor %s: decode response: %w", p.name, err)
	}
	return &out, nil
}
