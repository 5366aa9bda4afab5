package entities

// Source names which tier of the fallback chain produced a value
type Source string

const (
	SourcePredictor    Source = "predictor"
	SourceBaseline     Source = "baseline"
	SourceMedicineMean Source = "medicine_mean"
	SourceHeuristic    Source = "heuristic"
	SourceLaneStat     Source = "lane_stat"
	SourceRouteMean    Source = "route_mean"
	SourceOverride     Source = "override"
	SourceDefault      Source = "default"
	SourceNone         Source = "none"
)

// DemandQuery is the user input for demand and shortage estimation
type DemandQuery struct {
	Hospital         string
	Medicine         string
	Month            int
	CurrentInventory int64
	LeadTimeDays     int
}

// LaneQuery is the user input for lane estimation.
// DistanceOverride of zero means the distance is derived from history.
type LaneQuery struct {
	Origin           string
	Destination      string
	Carrier          string
	ServiceLevel     string
	DistanceOverride float64
	Weight           float64
	Stops            int
}

// WithCarrier returns a copy of the query for another carrier
func (q LaneQuery) WithCarrier(carrier string) LaneQuery {
	q.Carrier = carrier
	return q
}

// DemandEstimate is the resolved demand and shortage risk for a DemandQuery.
// BufferNeed and InventoryGap always derive from Demand, whichever tier produced it.
type DemandEstimate struct {
	Demand          float64 `json:"demand"`
	ShortageProb    float64 `json:"shortage_prob"`
	BufferNeed      float64 `json:"buffer_need"`
	InventoryGap    float64 `json:"inventory_gap"`
	Region          string  `json:"region"`
	RegionDefaulted bool    `json:"region_defaulted"`
	DemandSource    Source  `json:"demand_source"`
	ShortageSource  Source  `json:"shortage_source"`
}

// LaneEstimate is the resolved distance, on-time probability and cost for a LaneQuery
type LaneEstimate struct {
	Distance       float64 `json:"distance"`
	OnTimeProb     float64 `json:"on_time_prob"`
	CostEst        float64 `json:"cost_est"`
	DistanceSource Source  `json:"distance_source"`
	LaneSource     Source  `json:"lane_source"`
}

// CarrierComparison is one row of the carrier comparison table
type CarrierComparison struct {
	Carrier        string  `json:"carrier"`
	OnTimeProb     float64 `json:"on_time_probability"`
	CostEst        float64 `json:"estimated_cost"`
	Recommendation string  `json:"recommendation"`
	Source         Source  `json:"source"`
}
