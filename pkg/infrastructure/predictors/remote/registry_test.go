package remote

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/vsinha/schc/pkg/domain/predictors"
)

// modelServer answers health checks and predictions with a fixed body
func modelServer(t *testing.T, healthy bool, body map[string]any) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		if !healthy {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("POST /predict", func(w http.ResponseWriter, r *http.Request) {
		var req predictRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || len(req.Features) == 0 {
			http.Error(w, "bad features", http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(body)
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func TestHTTPPredictor_Predict(t *testing.T) {
	server := modelServer(t, true, map[string]any{"value": 312.5})
	p := NewHTTPPredictor("demand", server.URL+"/", time.Second)

	require.NoError(t, p.Probe(context.Background()))

	value, err := p.Predict(context.Background(), predictors.Features{"medicine": "InsulinX", "month": 6})
	require.NoError(t, err)
	assert.Equal(t, 312.5, value)

	_, err = p.PredictProba(context.Background(), predictors.Features{"medicine": "InsulinX"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "response has no probability")
}

func TestHTTPPredictor_PredictProba(t *testing.T) {
	server := modelServer(t, true, map[string]any{"probability": 0.42})
	p := NewHTTPPredictor("on_time", server.URL, time.Second)

	prob, err := p.PredictProba(context.Background(), predictors.Features{"carrier": "FastFreight"})
	require.NoError(t, err)
	assert.Equal(t, 0.42, prob)
}

func TestHTTPPredictor_Errors(t *testing.T) {
	server := modelServer(t, false, map[string]any{"value": 1})
	p := NewHTTPPredictor("cost", server.URL, time.Second)

	err := p.Probe(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")

	_, err = p.Predict(context.Background(), predictors.Features{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "400")
}

func TestLoadRegistry(t *testing.T) {
	healthy := modelServer(t, true, map[string]any{"value": 1, "probability": 0.5})
	unhealthy := modelServer(t, false, nil)

	registry := LoadRegistry(context.Background(), Endpoints{
		OnTime: healthy.URL,
		Cost:   unhealthy.URL,
		Demand: healthy.URL,
	}, time.Second, zap.NewNop().Sugar())

	assert.True(t, registry.OnTime.IsAvailable())
	assert.False(t, registry.Cost.IsAvailable(), "failing probe leaves slot unavailable")
	assert.True(t, registry.Demand.IsAvailable())
	assert.False(t, registry.Shortage.IsAvailable(), "unconfigured slot stays unavailable")
}
