// Package predictors defines the optional trained-model capabilities the
// estimation layer may consult, and the registry that holds them.
package predictors

import "context"

// Features is one input row handed to a predictor, keyed by column name
type Features map[string]any

// Regressor maps a feature row to a scalar
type Regressor interface {
	Predict(ctx context.Context, features Features) (float64, error)
}

// Classifier maps a feature row to the probability of the positive class
type Classifier interface {
	PredictProba(ctx context.Context, features Features) (float64, error)
}

// Slot holds a capability that is either Available or Unavailable.
// The zero value is Unavailable.
type Slot[T any] struct {
	value     T
	available bool
}

// Available wraps a present capability
func Available[T any](value T) Slot[T] {
	return Slot[T]{value: value, available: true}
}

// Unavailable returns an empty slot
func Unavailable[T any]() Slot[T] {
	return Slot[T]{}
}

// Get returns the capability and whether it is present
func (s Slot[T]) Get() (T, bool) {
	return s.value, s.available
}

// IsAvailable reports whether the slot holds a capability
func (s Slot[T]) IsAvailable() bool {
	return s.available
}

// Slot names, also used as artifact names in readiness reports
const (
	SlotOnTime   = "on_time"
	SlotCost     = "cost"
	SlotDemand   = "demand"
	SlotShortage = "shortage"
)

// ArtifactNames maps slot names to the artifact each one expects
var ArtifactNames = map[string]string{
	SlotOnTime:   "supply_chain_on_time_model",
	SlotCost:     "supply_chain_cost_model",
	SlotDemand:   "healthcare_demand_model",
	SlotShortage: "healthcare_shortage_model",
}

// Registry holds the four predictor slots. Any subset may be Unavailable.
type Registry struct {
	OnTime   Slot[Classifier]
	Cost     Slot[Regressor]
	Demand   Slot[Regressor]
	Shortage Slot[Classifier]
}

// SlotStatus reports whether one slot is ready
type SlotStatus struct {
	Slot      string `json:"slot"`
	Artifact  string `json:"artifact"`
	Kind      string `json:"kind"`
	Available bool   `json:"available"`
}

// Status lists the readiness of every slot in a fixed order
func (r Registry) Status() []SlotStatus {
	return []SlotStatus{
		{Slot: SlotOnTime, Artifact: ArtifactNames[SlotOnTime], Kind: "classifier", Available: r.OnTime.IsAvailable()},
		{Slot: SlotCost, Artifact: ArtifactNames[SlotCost], Kind: "regressor", Available: r.Cost.IsAvailable()},
		{Slot: SlotDemand, Artifact: ArtifactNames[SlotDemand], Kind: "regressor", Available: r.Demand.IsAvailable()},
		{Slot: SlotShortage, Artifact: ArtifactNames[SlotShortage], Kind: "classifier", Available: r.Shortage.IsAvailable()},
	}
}

// RegressorFunc adapts a function to the Regressor interface
type RegressorFunc func(ctx context.Context, features Features) (float64, error)

// Predict calls f
func (f RegressorFunc) Predict(ctx context.Context, features Features) (float64, error) {
	return f(ctx, features)
}

// ClassifierFunc adapts a function to the Classifier interface
type ClassifierFunc func(ctx context.Context, features Features) (float64, error)

// PredictProba calls f
func (f ClassifierFunc) PredictProba(ctx context.Context, features Features) (float64, error) {
	return f(ctx, features)
}
