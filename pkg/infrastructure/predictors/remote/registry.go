package remote

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/vsinha/schc/pkg/domain/predictors"
)

// Endpoints holds the base URL of each predictor slot; empty means not configured
type Endpoints struct {
	OnTime   string `yaml:"on_time" envconfig:"ON_TIME"`
	Cost     string `yaml:"cost" envconfig:"COST"`
	Demand   string `yaml:"demand" envconfig:"DEMAND"`
	Shortage string `yaml:"shortage" envconfig:"SHORTAGE"`
}

// LoadRegistry probes every configured endpoint and registers the ones that answer.
// A slot with no URL or a failing probe is left Unavailable.
func LoadRegistry(ctx context.Context, endpoints Endpoints, timeout time.Duration, logger *zap.SugaredLogger) predictors.Registry {
	var registry predictors.Registry

	if p := probe(ctx, predictors.SlotOnTime, endpoints.OnTime, timeout, logger); p != nil {
		registry.OnTime = predictors.Available[predictors.Classifier](p)
	}
	if p := probe(ctx, predictors.SlotCost, endpoints.Cost, timeout, logger); p != nil {
		registry.Cost = predictors.Available[predictors.Regressor](p)
	}
	if p := probe(ctx, predictors.SlotDemand, endpoints.Demand, timeout, logger); p != nil {
		registry.Demand = predictors.Available[predictors.Regressor](p)
	}
	if p := probe(ctx, predictors.SlotShortage, endpoints.Shortage, timeout, logger); p != nil {
		registry.Shortage = predictors.Available[predictors.Classifier](p)
	}

	return registry
}

func probe(ctx context.Context, slot, url string, timeout time.Duration, logger *zap.SugaredLogger) *HTTPPredictor {
	artifact := predictors.ArtifactNames[slot]
	if url == "" {
		logger.Debugw("predictor not configured, using statistics", "slot", slot, "artifact", artifact)
		return nil
	}

	p := NewHTTPPredictor(artifact, url, timeout)
	if err := p.Probe(ctx); err != nil {
		logger.Warnw("predictor unavailable, using statistics", "slot", slot, "url", url, "error", err)
		return nil
	}

	logger.Infow("predictor registered", "slot", slot, "url", url)
	return p
}
