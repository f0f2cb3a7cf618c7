package services

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Th3UrBanGuy/versity-bms/internal/domain"
	"github.com/Th3UrBanGuy/versity-bms/internal/domain/models"
	"github.com/Th3UrBanGuy/versity-bms/internal/store"
	"github.com/Th3UrBanGuy/versity-bms/internal/utils"
)

// BookingService decides seat admissibility and assigns seat numbers. The
// mutex serializes allocations so two rapid calls cannot both pass the
// duplicate and capacity checks against the same stale counts.
type BookingService struct {
	Store *store.Store

	mu sync.Mutex

	// injectable for tests
	Now   func() time.Time
	NewID func() string
}

func (s *BookingService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *BookingService) newID() string {
	if s.NewID != nil {
		return s.NewID()
	}
	return uuid.NewString()
}

// Book grants a seat on the schedule to the student.
//
// Seats are numbered by arrival order among currently confirmed bookings,
// 1-indexed. Cancelled bookings leave the count, so a freed number is only
// handed out again when the confirmed count happens to fall back below it.
func (s *BookingService) Book(student models.User, scheduleID, boardingPoint string) (models.Booking, error) {
	if student.Role != models.RoleStudent {
		return models.Booking{}, domain.ValidationError{Field: "role", Msg: "only students can reserve seats"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	schedule, ok := s.Store.FindSchedule(scheduleID)
	if !ok {
		return models.Booking{}, domain.NotFoundError{Resource: "schedule"}
	}

	point, err := s.resolveBoardingPoint(schedule, boardingPoint)
	if err != nil {
		return models.Booking{}, err
	}

	if s.Store.HasConfirmed(schedule.ID, student.ID) {
		return models.Booking{}, domain.DuplicateBookingError{ScheduleID: schedule.ID, StudentID: student.ID}
	}

	capacity := 0
	if bus, ok := s.Store.FindBus(schedule.BusID); ok {
		capacity = bus.Capacity
	}
	confirmed := s.Store.ConfirmedCount(schedule.ID)
	if confirmed >= capacity {
		return models.Booking{}, domain.CapacityError{ScheduleID: schedule.ID, Capacity: capacity}
	}

	booking := models.Booking{
		ID:            s.newID(),
		ScheduleID:    schedule.ID,
		StudentID:     student.ID,
		SeatNumber:    confirmed + 1,
		Date:          utils.FormatDate(s.now()),
		Status:        models.BookingConfirmed,
		Timestamp:     s.now().UnixMilli(),
		BoardingPoint: point,
	}

	if err := s.Store.CreateBooking(booking); err != nil {
		retried, retryErr := s.retrySeatConflict(booking, err)
		if retryErr != nil {
			return models.Booking{}, retryErr
		}
		booking = retried
	}
	return booking, nil
}

// retrySeatConflict handles the storage-level unique key on
// (schedule_id, seat_number) firing because another writer took the seat.
// The confirmed count is re-read from the gateway and the insert retried
// exactly once.
func (s *BookingService) retrySeatConflict(b models.Booking, err error) (models.Booking, error) {
	if !domain.IsPersistence(err) {
		// raw conflict bubbled up by the store
		count, countErr := s.Store.RefreshConfirmedCount(b.ScheduleID)
		if countErr != nil {
			return models.Booking{}, domain.PersistenceError{Subsystem: store.SubsystemBookings, Err: countErr}
		}
		capacity := 0
		if schedule, ok := s.Store.FindSchedule(b.ScheduleID); ok {
			if bus, ok := s.Store.FindBus(schedule.BusID); ok {
				capacity = bus.Capacity
			}
		}
		if count >= capacity {
			return models.Booking{}, domain.CapacityError{ScheduleID: b.ScheduleID, Capacity: capacity}
		}
		b.SeatNumber = count + 1
		if retryErr := s.Store.CreateBooking(b); retryErr != nil {
			return models.Booking{}, domain.PersistenceError{Subsystem: store.SubsystemBookings, Err: retryErr}
		}
		return b, nil
	}
	return models.Booking{}, err
}

// resolveBoardingPoint defaults an omitted boarding point to the origin's
// name and constrains a given one to the origin or one of the stops.
func (s *BookingService) resolveBoardingPoint(schedule models.Schedule, point string) (string, error) {
	originName := ""
	if origin, ok := s.Store.FindDestination(schedule.OriginID); ok {
		originName = origin.Name
	}

	point = strings.TrimSpace(point)
	if point == "" {
		return originName, nil
	}
	if utils.EqualFold(point, originName) {
		return originName, nil
	}
	for _, stop := range schedule.Stops {
		if utils.EqualFold(point, stop.Name) {
			return stop.Name, nil
		}
	}
	return "", domain.ValidationError{Field: "boardingPoint", Msg: "must be the origin or one of the route stops"}
}

// Cancel flips the booking to cancelled. Unknown ids are a no-op; a cancelled
// booking never returns to confirmed, rebooking creates a fresh record.
func (s *BookingService) Cancel(bookingID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Store.CancelBooking(bookingID)
}
