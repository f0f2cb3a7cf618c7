package services

import (
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/Th3UrBanGuy/versity-bms/internal/domain"
	"github.com/Th3UrBanGuy/versity-bms/internal/domain/models"
	"github.com/Th3UrBanGuy/versity-bms/internal/store"
)

// Draft is a schedule under construction. Stops keep insertion order, which
// is the physical travel order; arrival times never reorder them.
type Draft struct {
	BusID         string             `json:"busId"`
	OriginID      string             `json:"originId"`
	DestinationID string             `json:"destinationId"`
	DepartureTime string             `json:"departureTime"`
	Type          models.TripType    `json:"type"`
	Stops         []models.RouteStop `json:"stops"`
}

// ScheduleService assembles trips before publication. Drafts live server-side
// keyed by the admin working on them.
type ScheduleService struct {
	Store *store.Store

	mu     sync.Mutex
	drafts map[string]*Draft

	NewID func() string
}

func (s *ScheduleService) newID() string {
	if s.NewID != nil {
		return s.NewID()
	}
	return uuid.NewString()
}

func (s *ScheduleService) draft(adminID string) *Draft {
	if s.drafts == nil {
		s.drafts = map[string]*Draft{}
	}
	d, ok := s.drafts[adminID]
	if !ok {
		d = &Draft{Type: models.TripInbound, Stops: []models.RouteStop{}}
		s.drafts[adminID] = d
	}
	return d
}

// Draft returns a copy of the admin's current draft.
func (s *ScheduleService) Draft(adminID string) Draft {
	s.mu.Lock()
	defer s.mu.Unlock()
	d := s.draft(adminID)
	out := *d
	out.Stops = append([]models.RouteStop(nil), d.Stops...)
	return out
}

// SetTrip overwrites the endpoint fields the admin supplied. Blank inputs
// leave the current value alone so autofilled endpoints survive partial
// updates but can still be overridden.
func (s *ScheduleService) SetTrip(adminID, busID, originID, destinationID, departureTime string) Draft {
	s.mu.Lock()
	defer s.mu.Unlock()
	d := s.draft(adminID)
	if v := strings.TrimSpace(busID); v != "" {
		d.BusID = v
	}
	if v := strings.TrimSpace(originID); v != "" {
		d.OriginID = v
	}
	if v := strings.TrimSpace(destinationID); v != "" {
		d.DestinationID = v
	}
	if v := strings.TrimSpace(departureTime); v != "" {
		d.DepartureTime = v
	}
	out := *d
	out.Stops = append([]models.RouteStop(nil), d.Stops...)
	return out
}

// SetTripType records the trip type and autofills the campus endpoint:
// inbound pins the destination to the campus anchor, outbound pins the
// origin. The autofill is a convenience default, not a constraint — the
// admin may override either endpoint afterwards.
func (s *ScheduleService) SetTripType(adminID string, t models.TripType) (Draft, error) {
	switch t {
	case models.TripInbound, models.TripOutbound, models.TripCustom:
	default:
		return Draft{}, domain.ValidationError{Field: "type", Msg: "must be inbound, outbound or custom"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	d := s.draft(adminID)
	d.Type = t
	if campus, ok := s.Store.CampusDestination(); ok {
		switch t {
		case models.TripInbound:
			d.DestinationID = campus.ID
		case models.TripOutbound:
			d.OriginID = campus.ID
		}
	}
	out := *d
	out.Stops = append([]models.RouteStop(nil), d.Stops...)
	return out, nil
}

// AddStop appends an intermediate stop. The stop gets a fresh id and a name
// snapshot copied from the destination now; renaming the destination later
// does not rewrite stops already added.
func (s *ScheduleService) AddStop(adminID, destinationID, arrivalTime string) (Draft, error) {
	destinationID = strings.TrimSpace(destinationID)
	arrivalTime = strings.TrimSpace(arrivalTime)
	if destinationID == "" || arrivalTime == "" {
		return Draft{}, domain.ValidationError{Field: "stop", Msg: "destination and arrival time are required"}
	}

	dest, ok := s.Store.FindDestination(destinationID)
	if !ok {
		return Draft{}, domain.NotFoundError{Resource: "destination"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	d := s.draft(adminID)
	if destinationID == d.OriginID || destinationID == d.DestinationID {
		return Draft{}, domain.ValidationError{Field: "stop", Msg: "stop may not duplicate the trip's origin or destination"}
	}

	d.Stops = append(d.Stops, models.RouteStop{
		ID:            s.newID(),
		DestinationID: dest.ID,
		Name:          dest.Name,
		ArrivalTime:   arrivalTime,
	})
	out := *d
	out.Stops = append([]models.RouteStop(nil), d.Stops...)
	return out, nil
}

// RemoveStop drops the stop at the given position; later stops shift down.
// Indices are positions, not identities — clients re-key by stop id.
func (s *ScheduleService) RemoveStop(adminID string, index int) (Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d := s.draft(adminID)
	if index < 0 || index >= len(d.Stops) {
		return Draft{}, domain.ValidationError{Field: "index", Msg: "no stop at that position"}
	}
	d.Stops = append(d.Stops[:index], d.Stops[index+1:]...)
	out := *d
	out.Stops = append([]models.RouteStop(nil), d.Stops...)
	return out, nil
}

// Publish persists the draft as an immutable schedule and clears it.
func (s *ScheduleService) Publish(adminID string) (models.Schedule, error) {
	s.mu.Lock()
	d := s.draft(adminID)
	if d.BusID == "" || d.DepartureTime == "" || d.OriginID == "" || d.DestinationID == "" {
		s.mu.Unlock()
		return models.Schedule{}, domain.ValidationError{Field: "schedule", Msg: "bus, departure time, origin and destination are all required"}
	}
	schedule := models.Schedule{
		ID:            s.newID(),
		BusID:         d.BusID,
		OriginID:      d.OriginID,
		DestinationID: d.DestinationID,
		DepartureTime: d.DepartureTime,
		Type:          d.Type,
		Stops:         append([]models.RouteStop(nil), d.Stops...),
	}
	s.mu.Unlock()

	if err := s.Store.AddSchedule(schedule); err != nil {
		// failed publish keeps the draft so the admin can retry
		return models.Schedule{}, err
	}

	s.mu.Lock()
	delete(s.drafts, adminID)
	s.mu.Unlock()
	return schedule, nil
}
