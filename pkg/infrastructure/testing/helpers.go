package testing

import (
	"github.com/vsinha/schc/pkg/domain/entities"
	"github.com/vsinha/schc/pkg/infrastructure/repositories/memory"
)

// mustCreateShipment is a helper for tests - panics on validation error
func mustCreateShipment(
	origin, destination, carrier, serviceLevel string,
	distance, cost float64,
	onTime bool,
) *entities.ShipmentRecord {
	shipment, err := entities.NewShipmentRecord(origin, destination, carrier, serviceLevel, distance, 35000, 1, cost, onTime)
	if err != nil {
		panic(err)
	}
	return shipment
}

// mustCreateDemandRecord is a helper for tests - panics on validation error
func mustCreateDemandRecord(hospital, region, medicine string, month int, demand float64) *entities.DemandRecord {
	record, err := entities.NewDemandRecord(hospital, region, medicine, month, 200, 7, demand)
	if err != nil {
		panic(err)
	}
	return record
}

// ReferenceShipments returns the shipment history of the reference scenario.
//
// CHI->DAL has five shipments: three FastFreight/Standard (all on time) and
// two SlowBoat/Standard (one on time), mean distance 1000, on-time rate 0.8,
// mean cost 356. ATL->MIA has only four shipments, mean distance 650.
func ReferenceShipments() []*entities.ShipmentRecord {
	return []*entities.ShipmentRecord{
		mustCreateShipment("CHI", "DAL", "FastFreight", "Standard", 900, 400, true),
		mustCreateShipment("CHI", "DAL", "FastFreight", "Standard", 950, 420, true),
		mustCreateShipment("CHI", "DAL", "FastFreight", "Standard", 1000, 440, true),
		mustCreateShipment("CHI", "DAL", "SlowBoat", "Standard", 1050, 250, false),
		mustCreateShipment("CHI", "DAL", "SlowBoat", "Standard", 1100, 270, true),
		mustCreateShipment("ATL", "MIA", "FastFreight", "Express", 660, 300, true),
		mustCreateShipment("ATL", "MIA", "FastFreight", "Express", 700, 320, false),
		mustCreateShipment("ATL", "MIA", "Rail", "Standard", 600, 200, true),
		mustCreateShipment("ATL", "MIA", "Rail", "Standard", 640, 220, true),
	}
}

// ReferenceDemand returns the demand history of the reference scenario.
//
// GenHosp/InsulinX/June averages 300; InsulinX averages 700/3 across all
// hospitals and months.
func ReferenceDemand() []*entities.DemandRecord {
	return []*entities.DemandRecord{
		mustCreateDemandRecord("GenHosp", "NE", "InsulinX", 6, 280),
		mustCreateDemandRecord("GenHosp", "NE", "InsulinX", 6, 320),
		mustCreateDemandRecord("GenHosp", "NE", "Amoxi", 6, 90),
		mustCreateDemandRecord("StMary", "SW", "InsulinX", 2, 100),
		mustCreateDemandRecord("StMary", "SW", "Amoxi", 1, 50),
	}
}

// BuildReferenceTestData loads the reference scenario into in-memory repositories
func BuildReferenceTestData() (*memory.ShipmentRepository, *memory.DemandRepository) {
	shipments := ReferenceShipments()
	shipmentRepo := memory.NewShipmentRepository(len(shipments))
	if err := shipmentRepo.LoadShipments(shipments); err != nil {
		panic(err)
	}

	demand := ReferenceDemand()
	demandRepo := memory.NewDemandRepository(len(demand))
	if err := demandRepo.LoadDemandRecords(demand); err != nil {
		panic(err)
	}

	return shipmentRepo, demandRepo
}
