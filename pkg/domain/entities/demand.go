package entities

import "fmt"

// DemandRecord represents one historical month of medicine demand at a hospital
type DemandRecord struct {
	Hospital     string
	Region       string
	Medicine     string
	Month        int
	Inventory    float64
	LeadTimeDays int
	Demand       float64
}

// NewDemandRecord creates a validated DemandRecord
func NewDemandRecord(
	hospital, region, medicine string,
	month int,
	inventory float64,
	leadTimeDays int,
	demand float64,
) (*DemandRecord, error) {
	if hospital == "" {
		return nil, fmt.Errorf("hospital cannot be empty")
	}
	if medicine == "" {
		return nil, fmt.Errorf("medicine cannot be empty")
	}
	if month < 1 || month > 12 {
		return nil, fmt.Errorf("month must be within 1-12, got %d", month)
	}
	if inventory < 0 {
		return nil, fmt.Errorf("inventory cannot be negative, got %g", inventory)
	}
	if leadTimeDays < 0 {
		return nil, fmt.Errorf("lead time cannot be negative, got %d", leadTimeDays)
	}
	if demand < 0 {
		return nil, fmt.Errorf("demand cannot be negative, got %g", demand)
	}

	return &DemandRecord{
		Hospital:     hospital,
		Region:       region,
		Medicine:     medicine,
		Month:        month,
		Inventory:    inventory,
		LeadTimeDays: leadTimeDays,
		Demand:       demand,
	}, nil
}

// BaselineKey identifies a hospital/medicine/month demand baseline
type BaselineKey struct {
	Hospital string
	Medicine string
	Month    int
}

// DemandBaseline is the mean historical monthly demand for a BaselineKey
type DemandBaseline struct {
	Key               BaselineKey
	PredMonthlyDemand float64
	SampleCount       int
}
