// Package estimation resolves demand, shortage risk, lane on-time probability
// and cost from predictors or historical statistics, and turns them into an
// order decision.
package estimation

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vsinha/schc/pkg/application/dto"
	"github.com/vsinha/schc/pkg/domain/predictors"
	"github.com/vsinha/schc/pkg/domain/repositories"
	"github.com/vsinha/schc/pkg/infrastructure/metrics"
)

// ErrInvalidRequest is wrapped by every request validation failure
var ErrInvalidRequest = errors.New("invalid recommendation request")

// Advisor holds the reference data, predictors and thresholds an evaluation
// reads. It is read-only after construction and safe for concurrent use.
type Advisor struct {
	shipments  repositories.ShipmentRepository
	demand     repositories.DemandRepository
	registry   predictors.Registry
	thresholds Thresholds
	validate   *validator.Validate
	logger     *zap.SugaredLogger
	now        func() time.Time
}

// NewAdvisor creates an Advisor over loaded repositories
func NewAdvisor(
	shipments repositories.ShipmentRepository,
	demand repositories.DemandRepository,
	registry predictors.Registry,
	thresholds Thresholds,
	logger *zap.SugaredLogger,
) *Advisor {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}

	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	if err := v.RegisterValidation("finite", validateFinite); err != nil {
		panic(err)
	}

	return &Advisor{
		shipments:  shipments,
		demand:     demand,
		registry:   registry,
		thresholds: thresholds,
		validate:   v,
		logger:     logger.Named("estimation"),
		now:        time.Now,
	}
}

// Thresholds returns the thresholds the Advisor decides with
func (a *Advisor) Thresholds() Thresholds {
	return a.thresholds
}

// Predictors returns the predictor registry
func (a *Advisor) Predictors() predictors.Registry {
	return a.registry
}

// Options lists the known values for every enumerated input
func (a *Advisor) Options() dto.Options {
	return dto.Options{
		Hospitals:     a.demand.Hospitals(),
		Medicines:     a.demand.Medicines(),
		Origins:       a.shipments.Origins(),
		Destinations:  a.shipments.Destinations(),
		Carriers:      a.shipments.Carriers(),
		ServiceLevels: a.shipments.ServiceLevels(),
	}
}

// DefaultRequest fills a request with the first known option of every
// enumerated input, the current month, and the standard form defaults
func (a *Advisor) DefaultRequest() dto.RecommendationRequest {
	opts := a.Options()
	return dto.RecommendationRequest{
		Hospital:         first(opts.Hospitals),
		Medicine:         first(opts.Medicines),
		Month:            int(a.now().Month()),
		CurrentInventory: 150,
		LeadTimeDays:     7,
		Origin:           first(opts.Origins),
		Destination:      first(opts.Destinations),
		Carrier:          first(opts.Carriers),
		ServiceLevel:     first(opts.ServiceLevels),
		DistanceOverride: 0,
		Weight:           35000,
		Stops:            1,
	}
}

// Validate checks a request against its field constraints
func (a *Advisor) Validate(req dto.RecommendationRequest) error {
	err := a.validate.Struct(req)
	if err == nil {
		return nil
	}

	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}

	problems := make([]string, 0, len(fieldErrors))
	for _, fe := range fieldErrors {
		switch {
		case fe.Tag() == "finite":
			problems = append(problems, fmt.Sprintf("%s must be a finite number", fe.Field()))
		case fe.Param() != "":
			problems = append(problems, fmt.Sprintf("%s must satisfy %s=%s", fe.Field(), fe.Tag(), fe.Param()))
		default:
			problems = append(problems, fmt.Sprintf("%s is %s", fe.Field(), fe.Tag()))
		}
	}
	return fmt.Errorf("%w: %s", ErrInvalidRequest, strings.Join(problems, "; "))
}

// validateFinite rejects NaN and the infinities, which strconv parses from "NaN" and "Inf"
func validateFinite(fl validator.FieldLevel) bool {
	switch f := fl.Field(); f.Kind() {
	case reflect.Float32, reflect.Float64:
		return isFinite(f.Float())
	}
	return true
}

// Evaluate validates the request and runs demand estimation, lane estimation,
// the decision rule and the carrier comparison
func (a *Advisor) Evaluate(ctx context.Context, req dto.RecommendationRequest) (*dto.Recommendation, error) {
	if err := a.Validate(req); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	demand := a.EstimateDemandAndRisk(ctx, req.DemandQuery())
	lane := a.EstimateLane(ctx, req.LaneQuery())
	decision := a.thresholds.Decide(demand, lane)
	comparison := a.CompareCarriers(ctx, req.LaneQuery(), decision.Label)

	rec := &dto.Recommendation{
		ID:            uuid.NewString(),
		EvaluatedAt:   a.now(),
		Request:       req,
		Demand:        demand,
		Lane:          lane,
		OrderNow:      decision.OrderNow,
		RiskFlag:      decision.RiskFlag,
		Decision:      decision.Label,
		LogisticsNote: decision.LogisticsNote,
		Comparison:    comparison,
	}

	metrics.IncreaseEvaluationsMetric(decision.MetricLabel())
	metrics.IncreaseEstimateSourceMetric("demand", string(demand.DemandSource))
	metrics.IncreaseEstimateSourceMetric("shortage", string(demand.ShortageSource))
	metrics.IncreaseEstimateSourceMetric("distance", string(lane.DistanceSource))
	metrics.IncreaseEstimateSourceMetric("lane", string(lane.LaneSource))

	a.logger.Debugw("evaluated recommendation",
		"id", rec.ID,
		"hospital", req.Hospital,
		"medicine", req.Medicine,
		"route", req.Origin+"->"+req.Destination,
		"order_now", rec.OrderNow,
		"risk_flag", rec.RiskFlag,
	)

	return rec, nil
}

func first(values []string) string {
	if len(values) == 0 {
		return ""
	}
	return values[0]
}
