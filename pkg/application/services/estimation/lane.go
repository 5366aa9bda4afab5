package estimation

import (
	"context"
	"math"

	"github.com/vsinha/schc/pkg/domain/entities"
	"github.com/vsinha/schc/pkg/domain/predictors"
)

// EstimateLane resolves distance, on-time probability and cost for a lane.
//
// Distance is the override when positive, else the mean over the route's
// shipments when at least MinRouteSamples exist, else DefaultDistance.
// On-time probability and cost come from the predictor pair when both are
// registered, else the lane statistic, else the route-wide means, else the
// defaults.
func (a *Advisor) EstimateLane(ctx context.Context, q entities.LaneQuery) entities.LaneEstimate {
	var est entities.LaneEstimate
	summary, hasRoute := a.shipments.GetRouteSummary(q.Origin, q.Destination)

	switch {
	case q.DistanceOverride > 0:
		est.Distance, est.DistanceSource = q.DistanceOverride, entities.SourceOverride
	case hasRoute && summary.SampleCount >= a.thresholds.MinRouteSamples:
		est.Distance, est.DistanceSource = summary.MeanDistance, entities.SourceRouteMean
	default:
		est.Distance, est.DistanceSource = a.thresholds.DefaultDistance, entities.SourceDefault
	}

	if onTime, cost, ok := a.predictLane(ctx, q, est.Distance); ok {
		est.OnTimeProb, est.CostEst, est.LaneSource = onTime, cost, entities.SourcePredictor
		return est
	}

	key := entities.LaneKey{Origin: q.Origin, Destination: q.Destination, Carrier: q.Carrier, ServiceLevel: q.ServiceLevel}
	if stat, ok := a.shipments.GetLaneStatistic(key); ok {
		est.OnTimeProb, est.CostEst, est.LaneSource = stat.OnTimeProb, stat.EstCost, entities.SourceLaneStat
		return est
	}

	if hasRoute && summary.SampleCount > 0 {
		est.OnTimeProb, est.CostEst, est.LaneSource = summary.OnTimeRate, summary.MeanCost, entities.SourceRouteMean
		return est
	}

	est.OnTimeProb, est.CostEst, est.LaneSource = a.thresholds.DefaultOnTimeProb, a.thresholds.DefaultCost, entities.SourceDefault
	return est
}

// predictLane consults the on-time classifier and cost regressor together.
// Either one missing or failing disables both for this call.
func (a *Advisor) predictLane(ctx context.Context, q entities.LaneQuery, distance float64) (float64, float64, bool) {
	classifier, hasOnTime := a.registry.OnTime.Get()
	regressor, hasCost := a.registry.Cost.Get()
	if !hasOnTime || !hasCost {
		return 0, 0, false
	}

	features := predictors.Features{
		"Origin":       q.Origin,
		"Destination":  q.Destination,
		"Carrier":      q.Carrier,
		"ServiceLevel": q.ServiceLevel,
		"Distance":     distance,
		"Weight":       q.Weight,
		"Stops":        q.Stops,
	}

	onTime, err := classifier.PredictProba(ctx, features)
	if err != nil || !isFinite(onTime) {
		a.predictorFailed(predictors.SlotOnTime, err, onTime)
		return 0, 0, false
	}

	cost, err := regressor.Predict(ctx, features)
	if err != nil || !isFinite(cost) {
		a.predictorFailed(predictors.SlotCost, err, cost)
		return 0, 0, false
	}

	return clampProbability(onTime), math.Max(0, cost), true
}
