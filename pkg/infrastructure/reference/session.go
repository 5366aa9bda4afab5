package reference

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/vsinha/schc/pkg/application/dto"
	"github.com/vsinha/schc/pkg/application/services/estimation"
	"github.com/vsinha/schc/pkg/infrastructure/config"
	"github.com/vsinha/schc/pkg/infrastructure/metrics"
	"github.com/vsinha/schc/pkg/infrastructure/predictors/remote"
	"github.com/vsinha/schc/pkg/infrastructure/repositories/memory"
)

// Session is one loaded generation of reference data and predictors
type Session struct {
	Advisor   *estimation.Advisor
	Shipments *memory.ShipmentRepository
	Demand    *memory.DemandRepository
	Readiness dto.Readiness
}

// Build loads the data directory and probes the predictor endpoints
func Build(ctx context.Context, cfg *config.Config, logger *zap.SugaredLogger) (*Session, error) {
	data, err := Load(cfg.DataDir)
	if err != nil {
		return nil, err
	}

	shipmentRepo := memory.NewShipmentRepository(len(data.Shipments))
	if data.LaneStatistics != nil {
		if err := shipmentRepo.LoadLaneStatistics(data.LaneStatistics); err != nil {
			return nil, fmt.Errorf("failed to index lane statistics: %w", err)
		}
	}
	if err := shipmentRepo.LoadShipments(data.Shipments); err != nil {
		return nil, fmt.Errorf("failed to index shipments: %w", err)
	}

	demandRepo := memory.NewDemandRepository(len(data.Demand))
	if err := demandRepo.LoadDemandRecords(data.Demand); err != nil {
		return nil, fmt.Errorf("failed to index demand history: %w", err)
	}

	registry := remote.LoadRegistry(ctx, cfg.Predictors.Endpoints, cfg.Predictors.Timeout, logger.Named("predictors"))
	advisor := estimation.NewAdvisor(shipmentRepo, demandRepo, registry, cfg.Thresholds, logger)

	session := &Session{
		Advisor:   advisor,
		Shipments: shipmentRepo,
		Demand:    demandRepo,
		Readiness: dto.Readiness{
			DataDir:    data.Dir,
			Source:     data.Source,
			LoadedAt:   time.Now(),
			Files:      data.Files,
			Predictors: registry.Status(),
			Shipments:  len(data.Shipments),
			Demand:     len(data.Demand),
			Lanes:      len(shipmentRepo.GetAllLaneStatistics()),
		},
	}

	logger.Infow("reference data loaded",
		"dir", data.Dir,
		"source", data.Source,
		"shipments", session.Readiness.Shipments,
		"demand_records", session.Readiness.Demand,
		"lanes", session.Readiness.Lanes,
		"precomputed_lanes", data.LaneStatistics != nil,
	)

	return session, nil
}

// Holder publishes the current Session to concurrent readers
type Holder struct {
	current atomic.Pointer[Session]
}

// NewHolder creates a Holder serving session
func NewHolder(session *Session) *Holder {
	h := &Holder{}
	h.current.Store(session)
	return h
}

// Current returns the session in use
func (h *Holder) Current() *Session {
	return h.current.Load()
}

// Reload builds a new session and swaps it in. On failure the previous
// session stays in use.
func (h *Holder) Reload(ctx context.Context, cfg *config.Config, logger *zap.SugaredLogger) error {
	session, err := Build(ctx, cfg, logger)
	if err != nil {
		metrics.IncreaseReferenceReloadsMetric("failure")
		return err
	}
	h.current.Store(session)
	metrics.IncreaseReferenceReloadsMetric("success")
	return nil
}
