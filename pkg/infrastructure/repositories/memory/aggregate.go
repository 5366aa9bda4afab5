package memory

import (
	"sort"

	"github.com/thoas/go-funk"

	"github.com/vsinha/schc/pkg/domain/entities"
)

// runningMean accumulates a sum and a count
type runningMean struct {
	sum   float64
	count int
}

func (m *runningMean) add(v float64) {
	m.sum += v
	m.count++
}

func (m runningMean) value() float64 {
	if m.count == 0 {
		return 0
	}
	return m.sum / float64(m.count)
}

type laneAccumulator struct {
	onTime   runningMean
	cost     runningMean
	distance runningMean
}

func (a *laneAccumulator) add(s *entities.ShipmentRecord) {
	a.onTime.add(boolToFloat(s.OnTimeDelivery))
	a.cost.add(s.ShipmentCost)
	a.distance.add(s.Distance)
}

// ComputeLaneStatistics groups shipments by lane and takes the mean on-time rate,
// cost and distance of each group. The result is ordered by lane key.
func ComputeLaneStatistics(shipments []entities.ShipmentRecord) []*entities.LaneStatistic {
	groups := make(map[entities.LaneKey]*laneAccumulator)
	for i := range shipments {
		key := shipments[i].Lane()
		acc, exists := groups[key]
		if !exists {
			acc = &laneAccumulator{}
			groups[key] = acc
		}
		acc.add(&shipments[i])
	}

	stats := make([]*entities.LaneStatistic, 0, len(groups))
	for key, acc := range groups {
		stats = append(stats, &entities.LaneStatistic{
			Key:         key,
			OnTimeProb:  acc.onTime.value(),
			EstCost:     acc.cost.value(),
			AvgDistance: acc.distance.value(),
			SampleCount: acc.onTime.count,
		})
	}
	sortLaneStatistics(stats)

	return stats
}

// ComputeRouteSummaries groups shipments by origin/destination pair
func ComputeRouteSummaries(shipments []entities.ShipmentRecord) map[entities.RouteKey]*entities.RouteSummary {
	groups := make(map[entities.RouteKey]*laneAccumulator)
	for i := range shipments {
		key := shipments[i].Route()
		acc, exists := groups[key]
		if !exists {
			acc = &laneAccumulator{}
			groups[key] = acc
		}
		acc.add(&shipments[i])
	}

	summaries := make(map[entities.RouteKey]*entities.RouteSummary, len(groups))
	for key, acc := range groups {
		summaries[key] = &entities.RouteSummary{
			Key:          key,
			SampleCount:  acc.onTime.count,
			MeanDistance: acc.distance.value(),
			OnTimeRate:   acc.onTime.value(),
			MeanCost:     acc.cost.value(),
		}
	}
	return summaries
}

// ComputeDemandBaselines groups demand records by hospital, medicine and month
// and takes the mean demand of each group. The result is ordered by key.
func ComputeDemandBaselines(records []entities.DemandRecord) []*entities.DemandBaseline {
	groups := make(map[entities.BaselineKey]*runningMean)
	for i := range records {
		r := &records[i]
		key := entities.BaselineKey{Hospital: r.Hospital, Medicine: r.Medicine, Month: r.Month}
		acc, exists := groups[key]
		if !exists {
			acc = &runningMean{}
			groups[key] = acc
		}
		acc.add(r.Demand)
	}

	baselines := make([]*entities.DemandBaseline, 0, len(groups))
	for key, acc := range groups {
		baselines = append(baselines, &entities.DemandBaseline{
			Key:               key,
			PredMonthlyDemand: acc.value(),
			SampleCount:       acc.count,
		})
	}
	sort.Slice(baselines, func(i, j int) bool {
		a, b := baselines[i].Key, baselines[j].Key
		if a.Hospital != b.Hospital {
			return a.Hospital < b.Hospital
		}
		if a.Medicine != b.Medicine {
			return a.Medicine < b.Medicine
		}
		return a.Month < b.Month
	})

	return baselines
}

func sortLaneStatistics(stats []*entities.LaneStatistic) {
	sort.Slice(stats, func(i, j int) bool {
		a, b := stats[i].Key, stats[j].Key
		if a.Origin != b.Origin {
			return a.Origin < b.Origin
		}
		if a.Destination != b.Destination {
			return a.Destination < b.Destination
		}
		if a.Carrier != b.Carrier {
			return a.Carrier < b.Carrier
		}
		return a.ServiceLevel < b.ServiceLevel
	})
}

// sortedDistinct returns the unique values in ascending order
func sortedDistinct(values []string) []string {
	unique := funk.UniqString(values)
	sort.Strings(unique)
	return unique
}

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
