package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vsinha/schc/pkg/domain/entities"
)

func shipment(origin, destination, carrier, service string, distance, cost float64, onTime bool) *entities.ShipmentRecord {
	return &entities.ShipmentRecord{
		Origin:         origin,
		Destination:    destination,
		Carrier:        carrier,
		ServiceLevel:   service,
		Distance:       distance,
		Weight:         35000,
		Stops:          1,
		ShipmentCost:   cost,
		OnTimeDelivery: onTime,
	}
}

func TestShipmentRepository_DerivesLaneStatistics(t *testing.T) {
	repo := NewShipmentRepository(4)

	err := repo.LoadShipments([]*entities.ShipmentRecord{
		shipment("CHI", "DAL", "FastFreight", "Standard", 900, 400, true),
		shipment("CHI", "DAL", "FastFreight", "Standard", 1000, 500, false),
		shipment("CHI", "DAL", "SlowBoat", "Standard", 950, 200, true),
		shipment("ATL", "MIA", "FastFreight", "Express", 660, 300, true),
	})
	require.NoError(t, err)

	stats := repo.GetAllLaneStatistics()
	require.Len(t, stats, 3)
	assert.Equal(t, "ATL", stats[0].Key.Origin, "statistics are ordered by lane key")

	stat, ok := repo.GetLaneStatistic(entities.LaneKey{Origin: "CHI", Destination: "DAL", Carrier: "FastFreight", ServiceLevel: "Standard"})
	require.True(t, ok)
	assert.InDelta(t, 0.5, stat.OnTimeProb, 1e-9)
	assert.InDelta(t, 450.0, stat.EstCost, 1e-9)
	assert.InDelta(t, 950.0, stat.AvgDistance, 1e-9)
	assert.Equal(t, 2, stat.SampleCount)

	for _, s := range stats {
		assert.GreaterOrEqual(t, s.SampleCount, 1, "lane %s", s.Key)
	}

	_, ok = repo.GetLaneStatistic(entities.LaneKey{Origin: "CHI", Destination: "DAL", Carrier: "FastFreight", ServiceLevel: "Express"})
	assert.False(t, ok)
}

func TestShipmentRepository_RouteSummary(t *testing.T) {
	repo := NewShipmentRepository(3)
	require.NoError(t, repo.LoadShipments([]*entities.ShipmentRecord{
		shipment("CHI", "DAL", "FastFreight", "Standard", 900, 400, true),
		shipment("CHI", "DAL", "SlowBoat", "Express", 1100, 200, false),
		shipment("DAL", "CHI", "SlowBoat", "Express", 1000, 100, false),
	}))

	summary, ok := repo.GetRouteSummary("CHI", "DAL")
	require.True(t, ok)
	assert.Equal(t, 2, summary.SampleCount)
	assert.InDelta(t, 1000.0, summary.MeanDistance, 1e-9)
	assert.InDelta(t, 0.5, summary.OnTimeRate, 1e-9)
	assert.InDelta(t, 300.0, summary.MeanCost, 1e-9)

	_, ok = repo.GetRouteSummary("ATL", "DAL")
	assert.False(t, ok)
}

func TestShipmentRepository_DistinctOptions(t *testing.T) {
	repo := NewShipmentRepository(3)
	require.NoError(t, repo.LoadShipments([]*entities.ShipmentRecord{
		shipment("CHI", "DAL", "SlowBoat", "Standard", 900, 400, true),
		shipment("ATL", "DAL", "FastFreight", "Express", 900, 400, true),
		shipment("CHI", "MIA", "SlowBoat", "Standard", 900, 400, true),
	}))

	assert.Equal(t, []string{"ATL", "CHI"}, repo.Origins())
	assert.Equal(t, []string{"DAL", "MIA"}, repo.Destinations())
	assert.Equal(t, []string{"FastFreight", "SlowBoat"}, repo.Carriers())
	assert.Equal(t, []string{"Express", "Standard"}, repo.ServiceLevels())
}

func TestShipmentRepository_PrecomputedLaneStatisticsWin(t *testing.T) {
	repo := NewShipmentRepository(1)
	key := entities.LaneKey{Origin: "CHI", Destination: "DAL", Carrier: "FastFreight", ServiceLevel: "Standard"}

	require.NoError(t, repo.LoadLaneStatistics([]*entities.LaneStatistic{
		{Key: key, OnTimeProb: 0.91, EstCost: 321, AvgDistance: 920, SampleCount: 40},
	}))
	require.NoError(t, repo.LoadShipments([]*entities.ShipmentRecord{
		shipment("CHI", "DAL", "FastFreight", "Standard", 900, 400, false),
	}))

	stat, ok := repo.GetLaneStatistic(key)
	require.True(t, ok)
	assert.Equal(t, 0.91, stat.OnTimeProb)
	assert.Equal(t, 40, stat.SampleCount)

	summary, ok := repo.GetRouteSummary("CHI", "DAL")
	require.True(t, ok, "route summaries still come from shipments")
	assert.Equal(t, 1, summary.SampleCount)
}

func TestShipmentRepository_LoadLaneStatistics_Rejects(t *testing.T) {
	key := entities.LaneKey{Origin: "CHI", Destination: "DAL", Carrier: "FastFreight", ServiceLevel: "Standard"}

	tests := []struct {
		name        string
		stats       []*entities.LaneStatistic
		expectError string
	}{
		{
			name:        "zero sample count",
			stats:       []*entities.LaneStatistic{{Key: key, SampleCount: 0}},
			expectError: "sample count 0",
		},
		{
			name: "duplicate lane",
			stats: []*entities.LaneStatistic{
				{Key: key, SampleCount: 1},
				{Key: key, SampleCount: 2},
			},
			expectError: "duplicate lane statistic",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			repo := NewShipmentRepository(0)
			err := repo.LoadLaneStatistics(tc.stats)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.expectError)
		})
	}
}

func TestShipmentRepository_LoadShipments_Nil(t *testing.T) {
	repo := NewShipmentRepository(1)
	err := repo.LoadShipments([]*entities.ShipmentRecord{nil})
	require.Error(t, err)
	assert.Equal(t, "shipment 0 is nil", err.Error())
}
