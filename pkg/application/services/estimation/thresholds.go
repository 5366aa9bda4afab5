package estimation

import "fmt"

// Named constants of the estimation layer and decision rule
const (
	DefaultRegion         = "MW"
	DaysPerMonth          = 30.0
	ShortageCutoff        = 0.5
	OnTimeCutoff          = 0.7
	HeuristicShortageHigh = 0.8
	HeuristicShortageLow  = 0.2
	DefaultDistance       = 800.0
	MinRouteSamples       = 5
	DefaultOnTimeProb     = 0.65
	DefaultCost           = 300.0
)

// Thresholds holds the tunable numbers used by the Advisor
type Thresholds struct {
	DefaultRegion         string  `yaml:"default_region" envconfig:"DEFAULT_REGION"`
	DaysPerMonth          float64 `yaml:"days_per_month" envconfig:"DAYS_PER_MONTH"`
	ShortageCutoff        float64 `yaml:"shortage_cutoff" envconfig:"SHORTAGE_CUTOFF"`
	OnTimeCutoff          float64 `yaml:"on_time_cutoff" envconfig:"ON_TIME_CUTOFF"`
	HeuristicShortageHigh float64 `yaml:"heuristic_shortage_high" envconfig:"HEURISTIC_SHORTAGE_HIGH"`
	HeuristicShortageLow  float64 `yaml:"heuristic_shortage_low" envconfig:"HEURISTIC_SHORTAGE_LOW"`
	DefaultDistance       float64 `yaml:"default_distance" envconfig:"DEFAULT_DISTANCE"`
	MinRouteSamples       int     `yaml:"min_route_samples" envconfig:"MIN_ROUTE_SAMPLES"`
	DefaultOnTimeProb     float64 `yaml:"default_on_time_prob" envconfig:"DEFAULT_ON_TIME_PROB"`
	DefaultCost           float64 `yaml:"default_cost" envconfig:"DEFAULT_COST"`
}

// DefaultThresholds returns the thresholds built from the named constants
func DefaultThresholds() Thresholds {
	return Thresholds{
		DefaultRegion:         DefaultRegion,
		DaysPerMonth:          DaysPerMonth,
		ShortageCutoff:        ShortageCutoff,
		OnTimeCutoff:          OnTimeCutoff,
		HeuristicShortageHigh: HeuristicShortageHigh,
		HeuristicShortageLow:  HeuristicShortageLow,
		DefaultDistance:       DefaultDistance,
		MinRouteSamples:       MinRouteSamples,
		DefaultOnTimeProb:     DefaultOnTimeProb,
		DefaultCost:           DefaultCost,
	}
}

// Validate checks that every threshold is usable
func (t Thresholds) Validate() error {
	if t.DefaultRegion == "" {
		return fmt.Errorf("default region cannot be empty")
	}
	if t.DaysPerMonth <= 0 {
		return fmt.Errorf("days per month must be positive, got %g", t.DaysPerMonth)
	}
	for name, p := range map[string]float64{
		"shortage cutoff":         t.ShortageCutoff,
		"on-time cutoff":          t.OnTimeCutoff,
		"heuristic shortage high": t.HeuristicShortageHigh,
		"heuristic shortage low":  t.HeuristicShortageLow,
		"default on-time prob":    t.DefaultOnTimeProb,
	} {
		if p < 0 || p > 1 {
			return fmt.Errorf("%s must be within [0, 1], got %g", name, p)
		}
	}
	if t.DefaultDistance <= 0 {
		return fmt.Errorf("default distance must be positive, got %g", t.DefaultDistance)
	}
	if t.MinRouteSamples < 1 {
		return fmt.Errorf("min route samples must be at least 1, got %d", t.MinRouteSamples)
	}
	if t.DefaultCost < 0 {
		return fmt.Errorf("default cost cannot be negative, got %g", t.DefaultCost)
	}
	return nil
}
