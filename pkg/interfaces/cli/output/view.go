package output

import (
	"github.com/vsinha/schc/pkg/application/dto"
	"github.com/vsinha/schc/pkg/domain/entities"
)

// Metric is one labelled, display-formatted value
type Metric struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// ComparisonRow is one display-formatted carrier comparison row
type ComparisonRow struct {
	Carrier           string `json:"carrier"`
	OnTimeProbability string `json:"on_time_probability"`
	EstimatedCost     string `json:"estimated_cost"`
	Recommendation    string `json:"recommendation"`
}

// View is a Recommendation formatted for display
type View struct {
	ID              string          `json:"id"`
	Decision        string          `json:"decision"`
	LogisticsNote   string          `json:"logistics_note"`
	OrderNow        bool            `json:"order_now"`
	RiskFlag        bool            `json:"risk_flag"`
	Distance        string          `json:"distance"`
	Region          string          `json:"region"`
	RegionDefaulted bool            `json:"region_defaulted"`
	Metrics         []Metric        `json:"metrics"`
	Comparison      []ComparisonRow `json:"comparison"`
	Sources         []Metric        `json:"sources"`
}

// NewView formats a recommendation for display
func NewView(rec *dto.Recommendation) View {
	v := View{
		ID:              rec.ID,
		Decision:        rec.Decision,
		LogisticsNote:   rec.LogisticsNote,
		OrderNow:        rec.OrderNow,
		RiskFlag:        rec.RiskFlag,
		Distance:        FormatDistance(rec.Lane.Distance),
		Region:          rec.Demand.Region,
		RegionDefaulted: rec.Demand.RegionDefaulted,
		Metrics: []Metric{
			{Label: "Predicted Monthly Demand", Value: FormatUnits(rec.Demand.Demand)},
			{Label: "Shortage Probability", Value: FormatPercent(rec.Demand.ShortageProb)},
			{Label: "Inventory Buffer Need", Value: FormatUnits(rec.Demand.BufferNeed)},
			{Label: "On-Time Probability", Value: FormatPercent(rec.Lane.OnTimeProb)},
			{Label: "Estimated Cost ($)", Value: FormatCost(rec.Lane.CostEst)},
			{Label: "Inventory Gap (Units)", Value: FormatUnits(rec.Demand.InventoryGap)},
		},
		Sources: []Metric{
			{Label: "Demand", Value: string(rec.Demand.DemandSource)},
			{Label: "Shortage", Value: string(rec.Demand.ShortageSource)},
			{Label: "Distance", Value: string(rec.Lane.DistanceSource)},
			{Label: "On-time/Cost", Value: string(rec.Lane.LaneSource)},
		},
	}

	v.Comparison = make([]ComparisonRow, 0, len(rec.Comparison))
	for _, row := range rec.Comparison {
		v.Comparison = append(v.Comparison, comparisonRow(row))
	}
	return v
}

func comparisonRow(row entities.CarrierComparison) ComparisonRow {
	return ComparisonRow{
		Carrier:           row.Carrier,
		OnTimeProbability: FormatPercent(row.OnTimeProb),
		EstimatedCost:     FormatCost(row.CostEst),
		Recommendation:    row.Recommendation,
	}
}
