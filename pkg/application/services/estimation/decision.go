package estimation

import (
	"context"
	"sort"

	"github.com/vsinha/schc/pkg/domain/entities"
)

// Decision and logistics labels
const (
	LabelOrderNow       = "ORDER NOW"
	LabelWait           = "OK TO WAIT"
	NoteRiskHigh        = "Lane/Carrier risk is HIGH (consider expedited or different carrier)"
	NoteRiskAcceptable  = "Lane/Carrier risk acceptable"
	LabelAlternateRoute = "Consider alternate/expedite"
)

// Decision is the outcome of the decision rule
type Decision struct {
	OrderNow      bool
	RiskFlag      bool
	Label         string
	LogisticsNote string
}

// MetricLabel names the decision for metrics
func (d Decision) MetricLabel() string {
	if d.OrderNow {
		return "order_now"
	}
	return "wait"
}

// Decide orders when the shortage probability reaches the cutoff or the
// inventory gap is negative, and flags the lane when its on-time probability
// is strictly below the on-time cutoff
func (t Thresholds) Decide(demand entities.DemandEstimate, lane entities.LaneEstimate) Decision {
	d := Decision{
		OrderNow: demand.ShortageProb >= t.ShortageCutoff || demand.InventoryGap < 0,
		RiskFlag: lane.OnTimeProb < t.OnTimeCutoff,
	}

	d.Label = LabelWait
	if d.OrderNow {
		d.Label = LabelOrderNow
	}

	d.LogisticsNote = NoteRiskAcceptable
	if d.RiskFlag {
		d.LogisticsNote = NoteRiskHigh
	}

	return d
}

// CompareCarriers estimates the lane for every known carrier with all other
// inputs held fixed. Rows are ordered by on-time probability descending, then
// carrier name. Each row keeps primaryLabel when its own on-time probability
// meets the cutoff.
func (a *Advisor) CompareCarriers(ctx context.Context, q entities.LaneQuery, primaryLabel string) []entities.CarrierComparison {
	carriers := a.shipments.Carriers()
	rows := make([]entities.CarrierComparison, 0, len(carriers))

	for _, carrier := range carriers {
		est := a.EstimateLane(ctx, q.WithCarrier(carrier))

		recommendation := LabelAlternateRoute
		if est.OnTimeProb >= a.thresholds.OnTimeCutoff {
			recommendation = primaryLabel
		}

		rows = append(rows, entities.CarrierComparison{
			Carrier:        carrier,
			OnTimeProb:     est.OnTimeProb,
			CostEst:        est.CostEst,
			Recommendation: recommendation,
			Source:         est.LaneSource,
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].OnTimeProb != rows[j].OnTimeProb {
			return rows[i].OnTimeProb > rows[j].OnTimeProb
		}
		return rows[i].Carrier < rows[j].Carrier
	})

	return rows
}
