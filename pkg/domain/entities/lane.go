package entities

import "fmt"

// RouteKey identifies an origin/destination pair regardless of carrier or service
type RouteKey struct {
	Origin      string
	Destination string
}

// LaneKey identifies one shipping option: a route served by a carrier at a service level
type LaneKey struct {
	Origin       string `json:"origin"`
	Destination  string `json:"destination"`
	Carrier      string `json:"carrier"`
	ServiceLevel string `json:"service_level"`
}

// String renders the lane as origin->destination/carrier/service
func (k LaneKey) String() string {
	return fmt.Sprintf("%s->%s/%s/%s", k.Origin, k.Destination, k.Carrier, k.ServiceLevel)
}

// LaneStatistic holds the historical means for one lane.
// SampleCount is always at least 1 for a lane that is present.
type LaneStatistic struct {
	Key         LaneKey `json:"key"`
	OnTimeProb  float64 `json:"on_time_prob"`
	EstCost     float64 `json:"est_cost"`
	AvgDistance float64 `json:"avg_dist"`
	SampleCount int     `json:"n"`
}

// NewLaneStatistic creates a validated LaneStatistic
func NewLaneStatistic(key LaneKey, onTimeProb, estCost, avgDistance float64, sampleCount int) (*LaneStatistic, error) {
	if key.Origin == "" || key.Destination == "" || key.Carrier == "" || key.ServiceLevel == "" {
		return nil, fmt.Errorf("lane key fields cannot be empty: %s", key)
	}
	if onTimeProb < 0 || onTimeProb > 1 {
		return nil, fmt.Errorf("on-time probability must be within [0, 1], got %g", onTimeProb)
	}
	if sampleCount < 1 {
		return nil, fmt.Errorf("sample count must be at least 1, got %d", sampleCount)
	}

	return &LaneStatistic{
		Key:         key,
		OnTimeProb:  onTimeProb,
		EstCost:     estCost,
		AvgDistance: avgDistance,
		SampleCount: sampleCount,
	}, nil
}

// RouteSummary aggregates every shipment on an origin/destination pair
type RouteSummary struct {
	Key          RouteKey
	SampleCount  int
	MeanDistance float64
	OnTimeRate   float64
	MeanCost     float64
}
