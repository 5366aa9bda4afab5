package entities

import "fmt"

// ShipmentRecord represents one historical shipment on a lane
type ShipmentRecord struct {
	Origin         string
	Destination    string
	Carrier        string
	ServiceLevel   string
	Distance       float64
	Weight         float64
	Stops          int
	ShipmentCost   float64
	OnTimeDelivery bool
}

// NewShipmentRecord creates a validated ShipmentRecord
func NewShipmentRecord(
	origin, destination, carrier, serviceLevel string,
	distance, weight float64,
	stops int,
	shipmentCost float64,
	onTime bool,
) (*ShipmentRecord, error) {
	if origin == "" {
		return nil, fmt.Errorf("origin cannot be empty")
	}
	if destination == "" {
		return nil, fmt.Errorf("destination cannot be empty")
	}
	if carrier == "" {
		return nil, fmt.Errorf("carrier cannot be empty")
	}
	if serviceLevel == "" {
		return nil, fmt.Errorf("service level cannot be empty")
	}
	if distance < 0 {
		return nil, fmt.Errorf("distance cannot be negative, got %g", distance)
	}
	if weight < 0 {
		return nil, fmt.Errorf("weight cannot be negative, got %g", weight)
	}
	if stops < 0 {
		return nil, fmt.Errorf("stops cannot be negative, got %d", stops)
	}
	if shipmentCost < 0 {
		return nil, fmt.Errorf("shipment cost cannot be negative, got %g", shipmentCost)
	}

	return &ShipmentRecord{
		Origin:         origin,
		Destination:    destination,
		Carrier:        carrier,
		ServiceLevel:   serviceLevel,
		Distance:       distance,
		Weight:         weight,
		Stops:          stops,
		ShipmentCost:   shipmentCost,
		OnTimeDelivery: onTime,
	}, nil
}

// Route returns the origin/destination pair of the shipment
func (s *ShipmentRecord) Route() RouteKey {
	return RouteKey{Origin: s.Origin, Destination: s.Destination}
}

// Lane returns the full lane key of the shipment
func (s *ShipmentRecord) Lane() LaneKey {
	return LaneKey{
		Origin:       s.Origin,
		Destination:  s.Destination,
		Carrier:      s.Carrier,
		ServiceLevel: s.ServiceLevel,
	}
}
