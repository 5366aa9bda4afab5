package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vsinha/schc/pkg/domain/entities"
)

func demandRecord(hospital, region, medicine string, month int, demand float64) *entities.DemandRecord {
	return &entities.DemandRecord{
		Hospital:     hospital,
		Region:       region,
		Medicine:     medicine,
		Month:        month,
		Inventory:    100,
		LeadTimeDays: 7,
		Demand:       demand,
	}
}

func TestDemandRepository_Baselines(t *testing.T) {
	repo := NewDemandRepository(4)
	require.NoError(t, repo.LoadDemandRecords([]*entities.DemandRecord{
		demandRecord("GenHosp", "NE", "InsulinX", 6, 280),
		demandRecord("GenHosp", "NE", "InsulinX", 6, 320),
		demandRecord("GenHosp", "NE", "InsulinX", 7, 100),
		demandRecord("StMary", "SW", "Amoxi", 6, 50),
	}))

	baseline, ok := repo.GetBaseline(entities.BaselineKey{Hospital: "GenHosp", Medicine: "InsulinX", Month: 6})
	require.True(t, ok)
	assert.InDelta(t, 300.0, baseline.PredMonthlyDemand, 1e-9)
	assert.Equal(t, 2, baseline.SampleCount)

	_, ok = repo.GetBaseline(entities.BaselineKey{Hospital: "GenHosp", Medicine: "InsulinX", Month: 1})
	assert.False(t, ok)

	all := repo.GetAllBaselines()
	require.Len(t, all, 3)
	assert.Equal(t, "GenHosp", all[0].Key.Hospital)
	assert.Equal(t, 6, all[0].Key.Month)
}

func TestDemandRepository_MedicineMean(t *testing.T) {
	repo := NewDemandRepository(3)
	require.NoError(t, repo.LoadDemandRecords([]*entities.DemandRecord{
		demandRecord("GenHosp", "NE", "InsulinX", 6, 300),
		demandRecord("StMary", "SW", "InsulinX", 2, 100),
		demandRecord("StMary", "SW", "Amoxi", 2, 40),
	}))

	mean, ok := repo.GetMedicineMeanDemand("InsulinX")
	require.True(t, ok)
	assert.InDelta(t, 200.0, mean, 1e-9)

	_, ok = repo.GetMedicineMeanDemand("Unknown")
	assert.False(t, ok)
}

func TestDemandRepository_RegionIsFirstSeen(t *testing.T) {
	repo := NewDemandRepository(2)
	require.NoError(t, repo.LoadDemandRecords([]*entities.DemandRecord{
		demandRecord("GenHosp", "NE", "InsulinX", 6, 300),
		demandRecord("GenHosp", "SE", "Amoxi", 6, 300),
	}))

	region, ok := repo.GetRegion("GenHosp")
	require.True(t, ok)
	assert.Equal(t, "NE", region)

	_, ok = repo.GetRegion("Nowhere")
	assert.False(t, ok)
}

func TestDemandRepository_DistinctOptions(t *testing.T) {
	repo := NewDemandRepository(3)
	require.NoError(t, repo.LoadDemandRecords([]*entities.DemandRecord{
		demandRecord("StMary", "SW", "InsulinX", 6, 300),
		demandRecord("GenHosp", "NE", "Amoxi", 6, 300),
		demandRecord("StMary", "SW", "Amoxi", 5, 300),
	}))

	assert.Equal(t, []string{"GenHosp", "StMary"}, repo.Hospitals())
	assert.Equal(t, []string{"Amoxi", "InsulinX"}, repo.Medicines())
	assert.Len(t, repo.GetAllDemandRecords(), 3)
}
