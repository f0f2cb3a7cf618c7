package models

type TripType string

const (
	TripInbound  TripType = "inbound" // towards campus
	TripOutbound TripType = "outbound"
	TripCustom   TripType = "custom"
)

// RouteStop is an intermediate point owned by exactly one schedule. Name is a
// snapshot of the destination name at the moment the stop was added; the
// DestinationID is a weak reference resolved lazily, so readers must tolerate
// ids pointing at destinations that were removed later.
type RouteStop struct {
	ID            string `json:"id"`
	DestinationID string `json:"destinationId"`
	Name          string `json:"name"`
	ArrivalTime   string `json:"arrivalTime"`
}

// Schedule is a published trip. Stops are kept in insertion order, which is
// the physical travel order; they are never sorted by arrival time.
type Schedule struct {
	ID            string      `json:"id"`
	BusID         string      `json:"busId"`
	OriginID      string      `json:"originId"`
	DestinationID string      `json:"destinationId"`
	DepartureTime string      `json:"departureTime"`
	Type          TripType    `json:"type"`
	Stops         []RouteStop `json:"stops"`
}
