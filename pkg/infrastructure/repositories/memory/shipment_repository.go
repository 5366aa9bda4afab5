package memory

import (
	"fmt"

	"github.com/vsinha/schc/pkg/domain/entities"
	"github.com/vsinha/schc/pkg/domain/repositories"
)

// ShipmentRepository provides in-memory shipment history storage with
// lane and route aggregates computed at load time
type ShipmentRepository struct {
	shipments   []entities.ShipmentRecord
	laneStats   []*entities.LaneStatistic
	laneIndex   map[entities.LaneKey]int
	routes      map[entities.RouteKey]*entities.RouteSummary
	precomputed bool

	origins       []string
	destinations  []string
	carriers      []string
	serviceLevels []string
}

// NewShipmentRepository creates a new in-memory shipment repository
func NewShipmentRepository(expectedShipments int) *ShipmentRepository {
	return &ShipmentRepository{
		shipments: make([]entities.ShipmentRecord, 0, expectedShipments),
		laneIndex: make(map[entities.LaneKey]int),
		routes:    make(map[entities.RouteKey]*entities.RouteSummary),
	}
}

// Verify interface compliance
var _ repositories.ShipmentRepository = (*ShipmentRepository)(nil)

// LoadShipments loads shipments into the repository and rebuilds the aggregates.
// Lane statistics are derived from the shipments unless a precomputed table was loaded.
func (r *ShipmentRepository) LoadShipments(records []*entities.ShipmentRecord) error {
	for i, record := range records {
		if record == nil {
			return fmt.Errorf("shipment %d is nil", i)
		}
		r.shipments = append(r.shipments, *record)
	}
	r.rebuild()
	return nil
}

// LoadLaneStatistics replaces the derived lane statistics with a precomputed table
func (r *ShipmentRepository) LoadLaneStatistics(stats []*entities.LaneStatistic) error {
	index := make(map[entities.LaneKey]int, len(stats))
	loaded := make([]*entities.LaneStatistic, 0, len(stats))
	for _, stat := range stats {
		if stat.SampleCount < 1 {
			return fmt.Errorf("lane statistic %s has sample count %d, expected at least 1", stat.Key, stat.SampleCount)
		}
		if _, exists := index[stat.Key]; exists {
			return fmt.Errorf("duplicate lane statistic for %s", stat.Key)
		}
		copied := *stat
		index[stat.Key] = len(loaded)
		loaded = append(loaded, &copied)
	}

	sortLaneStatistics(loaded)
	r.laneStats = loaded
	r.reindexLanes()
	r.precomputed = true
	return nil
}

// GetAllShipments returns all shipments
func (r *ShipmentRepository) GetAllShipments() []*entities.ShipmentRecord {
	shipments := make([]*entities.ShipmentRecord, 0, len(r.shipments))
	for i := range r.shipments {
		shipments = append(shipments, &r.shipments[i])
	}
	return shipments
}

// GetLaneStatistic returns the statistic for an exact lane
func (r *ShipmentRepository) GetLaneStatistic(key entities.LaneKey) (*entities.LaneStatistic, bool) {
	index, exists := r.laneIndex[key]
	if !exists {
		return nil, false
	}
	return r.laneStats[index], true
}

// GetAllLaneStatistics returns every lane statistic ordered by lane key
func (r *ShipmentRepository) GetAllLaneStatistics() []*entities.LaneStatistic {
	stats := make([]*entities.LaneStatistic, len(r.laneStats))
	copy(stats, r.laneStats)
	return stats
}

// GetRouteSummary returns the aggregate over all shipments between origin and destination
func (r *ShipmentRepository) GetRouteSummary(origin, destination string) (*entities.RouteSummary, bool) {
	summary, exists := r.routes[entities.RouteKey{Origin: origin, Destination: destination}]
	return summary, exists
}

// Origins returns the distinct origins in ascending order
func (r *ShipmentRepository) Origins() []string { return r.origins }

// Destinations returns the distinct destinations in ascending order
func (r *ShipmentRepository) Destinations() []string { return r.destinations }

// Carriers returns the distinct carriers in ascending order
func (r *ShipmentRepository) Carriers() []string { return r.carriers }

// ServiceLevels returns the distinct service levels in ascending order
func (r *ShipmentRepository) ServiceLevels() []string { return r.serviceLevels }

func (r *ShipmentRepository) rebuild() {
	r.routes = ComputeRouteSummaries(r.shipments)
	if !r.precomputed {
		r.laneStats = ComputeLaneStatistics(r.shipments)
		r.reindexLanes()
	}

	origins := make([]string, 0, len(r.shipments))
	destinations := make([]string, 0, len(r.shipments))
	carriers := make([]string, 0, len(r.shipments))
	serviceLevels := make([]string, 0, len(r.shipments))
	for i := range r.shipments {
		s := &r.shipments[i]
		origins = append(origins, s.Origin)
		destinations = append(destinations, s.Destination)
		carriers = append(carriers, s.Carrier)
		serviceLevels = append(serviceLevels, s.ServiceLevel)
	}
	r.origins = sortedDistinct(origins)
	r.destinations = sortedDistinct(destinations)
	r.carriers = sortedDistinct(carriers)
	r.serviceLevels = sortedDistinct(serviceLevels)
}

func (r *ShipmentRepository) reindexLanes() {
	r.laneIndex = make(map[entities.LaneKey]int, len(r.laneStats))
	for i, stat := range r.laneStats {
		r.laneIndex[stat.Key] = i
	}
}
