package memory

import (
	"fmt"

	"github.com/vsinha/schc/pkg/domain/entities"
	"github.com/vsinha/schc/pkg/domain/repositories"
)

// DemandRepository provides in-memory demand history storage with
// baselines computed at load time
type DemandRepository struct {
	records       []entities.DemandRecord
	regions       map[string]string
	baselines     []*entities.DemandBaseline
	baselineIndex map[entities.BaselineKey]int
	medicineMeans map[string]*runningMean

	hospitals []string
	medicines []string
}

// NewDemandRepository creates a new in-memory demand repository
func NewDemandRepository(expectedRecords int) *DemandRepository {
	return &DemandRepository{
		records:       make([]entities.DemandRecord, 0, expectedRecords),
		regions:       make(map[string]string),
		baselineIndex: make(map[entities.BaselineKey]int),
		medicineMeans: make(map[string]*runningMean),
	}
}

// Verify interface compliance
var _ repositories.DemandRepository = (*DemandRepository)(nil)

// LoadDemandRecords loads demand history into the repository and rebuilds the baselines
func (r *DemandRepository) LoadDemandRecords(records []*entities.DemandRecord) error {
	for i, record := range records {
		if record == nil {
			return fmt.Errorf("demand record %d is nil", i)
		}
		r.records = append(r.records, *record)
	}
	r.rebuild()
	return nil
}

// GetAllDemandRecords returns all demand records
func (r *DemandRepository) GetAllDemandRecords() []*entities.DemandRecord {
	records := make([]*entities.DemandRecord, 0, len(r.records))
	for i := range r.records {
		records = append(records, &r.records[i])
	}
	return records
}

// GetRegion returns the region of the first record seen for the hospital
func (r *DemandRepository) GetRegion(hospital string) (string, bool) {
	region, exists := r.regions[hospital]
	return region, exists
}

// GetBaseline returns the mean demand for a hospital/medicine/month
func (r *DemandRepository) GetBaseline(key entities.BaselineKey) (*entities.DemandBaseline, bool) {
	index, exists := r.baselineIndex[key]
	if !exists {
		return nil, false
	}
	return r.baselines[index], true
}

// GetAllBaselines returns every baseline ordered by key
func (r *DemandRepository) GetAllBaselines() []*entities.DemandBaseline {
	baselines := make([]*entities.DemandBaseline, len(r.baselines))
	copy(baselines, r.baselines)
	return baselines
}

// GetMedicineMeanDemand returns the mean demand across every record of the medicine
func (r *DemandRepository) GetMedicineMeanDemand(medicine string) (float64, bool) {
	mean, exists := r.medicineMeans[medicine]
	if !exists || mean.count == 0 {
		return 0, false
	}
	return mean.value(), true
}

// Hospitals returns the distinct hospitals in ascending order
func (r *DemandRepository) Hospitals() []string { return r.hospitals }

// Medicines returns the distinct medicines in ascending order
func (r *DemandRepository) Medicines() []string { return r.medicines }

func (r *DemandRepository) rebuild() {
	r.regions = make(map[string]string)
	r.medicineMeans = make(map[string]*runningMean)

	hospitals := make([]string, 0, len(r.records))
	medicines := make([]string, 0, len(r.records))
	for i := range r.records {
		record := &r.records[i]
		if _, seen := r.regions[record.Hospital]; !seen {
			r.regions[record.Hospital] = record.Region
		}

		mean, exists := r.medicineMeans[record.Medicine]
		if !exists {
			mean = &runningMean{}
			r.medicineMeans[record.Medicine] = mean
		}
		mean.add(record.Demand)

		hospitals = append(hospitals, record.Hospital)
		medicines = append(medicines, record.Medicine)
	}

	r.baselines = ComputeDemandBaselines(r.records)
	r.baselineIndex = make(map[entities.BaselineKey]int, len(r.baselines))
	for i, baseline := range r.baselines {
		r.baselineIndex[baseline.Key] = i
	}

	r.hospitals = sortedDistinct(hospitals)
	r.medicines = sortedDistinct(medicines)
}
