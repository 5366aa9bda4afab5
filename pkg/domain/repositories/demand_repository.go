package repositories

import "github.com/vsinha/schc/pkg/domain/entities"

// DemandRepository provides access to hospital demand history and the baselines derived from it
type DemandRepository interface {
	LoadDemandRecords(records []*entities.DemandRecord) error
	GetAllDemandRecords() []*entities.DemandRecord

	// GetRegion returns the region of the first record seen for the hospital.
	GetRegion(hospital string) (string, bool)

	GetBaseline(key entities.BaselineKey) (*entities.DemandBaseline, bool)
	GetAllBaselines() []*entities.DemandBaseline

	// GetMedicineMeanDemand returns the mean demand over every record of the medicine,
	// ignoring hospital and month.
	GetMedicineMeanDemand(medicine string) (float64, bool)

	Hospitals() []string
	Medicines() []string
}
