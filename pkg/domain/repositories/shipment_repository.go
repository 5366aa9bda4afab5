package repositories

import "github.com/vsinha/schc/pkg/domain/entities"

// ShipmentRepository provides access to shipment history and the lane statistics derived from it
type ShipmentRepository interface {
	LoadShipments(records []*entities.ShipmentRecord) error
	GetAllShipments() []*entities.ShipmentRecord

	// LoadLaneStatistics replaces the statistics derived from shipments with a precomputed table.
	LoadLaneStatistics(stats []*entities.LaneStatistic) error
	GetLaneStatistic(key entities.LaneKey) (*entities.LaneStatistic, bool)
	GetAllLaneStatistics() []*entities.LaneStatistic

	// GetRouteSummary aggregates every shipment between origin and destination,
	// across all carriers and service levels.
	GetRouteSummary(origin, destination string) (*entities.RouteSummary, bool)

	Origins() []string
	Destinations() []string
	Carriers() []string
	ServiceLevels() []string
}
