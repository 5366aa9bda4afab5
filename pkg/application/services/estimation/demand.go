package estimation

import (
	"context"
	"math"

	"github.com/vsinha/schc/pkg/domain/entities"
	"github.com/vsinha/schc/pkg/domain/predictors"
	"github.com/vsinha/schc/pkg/infrastructure/metrics"
)

// EstimateDemandAndRisk resolves monthly demand and shortage probability for
// a hospital and medicine. Demand comes from the demand predictor, else the
// hospital/medicine/month baseline, else the medicine-wide mean. Buffer need
// and inventory gap are always derived from the resolved demand.
func (a *Advisor) EstimateDemandAndRisk(ctx context.Context, q entities.DemandQuery) entities.DemandEstimate {
	var est entities.DemandEstimate

	region, known := a.demand.GetRegion(q.Hospital)
	if !known {
		region = a.thresholds.DefaultRegion
		est.RegionDefaulted = true
		a.logger.Warnw("hospital not in demand history, assuming default region",
			"hospital", q.Hospital, "region", region)
	}
	est.Region = region

	features := predictors.Features{
		"Hospital":     q.Hospital,
		"Region":       region,
		"Medicine":     q.Medicine,
		"Month":        q.Month,
		"Inventory":    q.CurrentInventory,
		"LeadTimeDays": q.LeadTimeDays,
	}

	est.Demand, est.DemandSource = a.resolveDemand(ctx, q, features)

	daily := est.Demand / a.thresholds.DaysPerMonth
	est.BufferNeed = daily * float64(q.LeadTimeDays)
	est.InventoryGap = float64(q.CurrentInventory) - est.BufferNeed

	est.ShortageProb, est.ShortageSource = a.resolveShortage(ctx, q, features, est.BufferNeed)

	return est
}

func (a *Advisor) resolveDemand(ctx context.Context, q entities.DemandQuery, features predictors.Features) (float64, entities.Source) {
	if regressor, ok := a.registry.Demand.Get(); ok {
		value, err := regressor.Predict(ctx, features)
		if err == nil && isFinite(value) {
			return math.Max(0, value), entities.SourcePredictor
		}
		a.predictorFailed(predictors.SlotDemand, err, value)
	}

	key := entities.BaselineKey{Hospital: q.Hospital, Medicine: q.Medicine, Month: q.Month}
	if baseline, ok := a.demand.GetBaseline(key); ok {
		return baseline.PredMonthlyDemand, entities.SourceBaseline
	}

	if mean, ok := a.demand.GetMedicineMeanDemand(q.Medicine); ok {
		return mean, entities.SourceMedicineMean
	}

	return 0, entities.SourceNone
}

func (a *Advisor) resolveShortage(ctx context.Context, q entities.DemandQuery, features predictors.Features, bufferNeed float64) (float64, entities.Source) {
	if classifier, ok := a.registry.Shortage.Get(); ok {
		prob, err := classifier.PredictProba(ctx, features)
		if err == nil && isFinite(prob) {
			return clampProbability(prob), entities.SourcePredictor
		}
		a.predictorFailed(predictors.SlotShortage, err, prob)
	}

	if float64(q.CurrentInventory) < bufferNeed {
		return a.thresholds.HeuristicShortageHigh, entities.SourceHeuristic
	}
	return a.thresholds.HeuristicShortageLow, entities.SourceHeuristic
}

// predictorFailed records a failed or non-finite predictor call; the caller
// falls back to statistics for this call only
func (a *Advisor) predictorFailed(slot string, err error, value float64) {
	metrics.IncreasePredictorFailuresMetric(slot)
	if err != nil {
		a.logger.Warnw("predictor call failed, using statistics", "slot", slot, "error", err)
		return
	}
	a.logger.Warnw("predictor returned a non-finite value, using statistics", "slot", slot, "value", value)
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func clampProbability(p float64) float64 {
	return math.Min(1, math.Max(0, p))
}
