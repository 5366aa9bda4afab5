package dto

import (
	"time"

	"github.com/vsinha/schc/pkg/domain/entities"
	"github.com/vsinha/schc/pkg/domain/predictors"
)

// RecommendationRequest carries one evaluation's inputs
type RecommendationRequest struct {
	Hospital         string `json:"hospital" validate:"required"`
	Medicine         string `json:"medicine" validate:"required"`
	Month            int    `json:"month" validate:"min=1,max=12"`
	CurrentInventory int64  `json:"current_inventory" validate:"min=0,max=1000000000"`
	LeadTimeDays     int    `json:"lead_time_days" validate:"min=1"`

	Origin           string  `json:"origin" validate:"required"`
	Destination      string  `json:"destination" validate:"required"`
	Carrier          string  `json:"carrier" validate:"required"`
	ServiceLevel     string  `json:"service_level" validate:"required"`
	DistanceOverride float64 `json:"distance_override" validate:"finite,min=0"`
	Weight           float64 `json:"weight" validate:"finite,gt=0"`
	Stops            int     `json:"stops" validate:"min=1,max=3"`
}

// DemandQuery returns the demand half of the request
func (r RecommendationRequest) DemandQuery() entities.DemandQuery {
	return entities.DemandQuery{
		Hospital:         r.Hospital,
		Medicine:         r.Medicine,
		Month:            r.Month,
		CurrentInventory: r.CurrentInventory,
		LeadTimeDays:     r.LeadTimeDays,
	}
}

// LaneQuery returns the lane half of the request
func (r RecommendationRequest) LaneQuery() entities.LaneQuery {
	return entities.LaneQuery{
		Origin:           r.Origin,
		Destination:      r.Destination,
		Carrier:          r.Carrier,
		ServiceLevel:     r.ServiceLevel,
		DistanceOverride: r.DistanceOverride,
		Weight:           r.Weight,
		Stops:            r.Stops,
	}
}

// Recommendation is the complete output of one evaluation
type Recommendation struct {
	ID          string                `json:"id"`
	EvaluatedAt time.Time             `json:"evaluated_at"`
	Request     RecommendationRequest `json:"request"`

	Demand entities.DemandEstimate `json:"demand"`
	Lane   entities.LaneEstimate   `json:"lane"`

	OrderNow      bool   `json:"order_now"`
	RiskFlag      bool   `json:"risk_flag"`
	Decision      string `json:"decision"`
	LogisticsNote string `json:"logistics_note"`

	Comparison []entities.CarrierComparison `json:"carrier_comparison"`
}

// Options lists the values each enumerated input may take
type Options struct {
	Hospitals     []string `json:"hospitals"`
	Medicines     []string `json:"medicines"`
	Origins       []string `json:"origins"`
	Destinations  []string `json:"destinations"`
	Carriers      []string `json:"carriers"`
	ServiceLevels []string `json:"service_levels"`
}

// FileStatus reports whether one reference file was found
type FileStatus struct {
	Name     string `json:"name"`
	Required bool   `json:"required"`
	Present  bool   `json:"present"`
}

// Readiness is the passive status shown beside the recommendation form
type Readiness struct {
	DataDir    string                  `json:"data_dir"`
	Source     string                  `json:"source"`
	LoadedAt   time.Time               `json:"loaded_at"`
	Files      []FileStatus            `json:"files"`
	Predictors []predictors.SlotStatus `json:"predictors"`
	Shipments  int                     `json:"shipments"`
	Demand     int                     `json:"demand_records"`
	Lanes      int                     `json:"lanes"`
}
