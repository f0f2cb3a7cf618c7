// Package store holds the authoritative in-memory collections for a running
// instance. Every mutation goes write-then-commit: the gateway write is
// awaited first, and a failed write leaves the cached state untouched.
package store

import (
	"database/sql"
	"log"
	"sync"

	"github.com/Th3UrBanGuy/versity-bms/internal/domain"
	"github.com/Th3UrBanGuy/versity-bms/internal/domain/models"
	"github.com/Th3UrBanGuy/versity-bms/internal/repositories"
)

// Subsystem tags carried by persistence errors so the client notification can
// name the operation that failed.
const (
	SubsystemFleet     = "fleet registration"
	SubsystemLocations = "location storage"
	SubsystemSchedules = "schedule publication"
	SubsystemBookings  = "seat reservation"
	SubsystemVoid      = "ticket void"
	SubsystemAccounts  = "account storage"
)

type Store struct {
	mu sync.RWMutex

	users        []models.User
	buses        []models.Bus
	destinations []models.Destination
	schedules    []models.Schedule
	bookings     []models.Booking
	loaded       bool

	usersRepo        repositories.UsersRepo
	busesRepo        repositories.BusesRepo
	destinationsRepo repositories.DestinationsRepo
	schedulesRepo    repositories.SchedulesRepo
	bookingsRepo     repositories.BookingsRepo
}

func New(db *sql.DB) *Store {
	return &Store{
		usersRepo:        repositories.UsersRepo{DB: db},
		busesRepo:        repositories.BusesRepo{DB: db},
		destinationsRepo: repositories.DestinationsRepo{DB: db},
		schedulesRepo:    repositories.SchedulesRepo{DB: db},
		bookingsRepo:     repositories.BookingsRepo{DB: db},
	}
}

// Load pulls every collection from the gateway. A failed read degrades to an
// empty collection instead of blocking startup; availability wins over
// completeness here and the failure is only logged.
func (s *Store) Load() {
	users, err := s.usersRepo.ListAll()
	if err != nil {
		log.Printf("load users failed, starting empty: %v", err)
		users = []models.User{}
	}
	buses, err := s.busesRepo.ListAll()
	if err != nil {
		log.Printf("load buses failed, starting empty: %v", err)
		buses = []models.Bus{}
	}
	destinations, err := s.destinationsRepo.ListAll()
	if err != nil {
		log.Printf("load destinations failed, starting empty: %v", err)
		destinations = []models.Destination{}
	}
	schedules, err := s.schedulesRepo.ListAll()
	if err != nil {
		log.Printf("load schedules failed, starting empty: %v", err)
		schedules = []models.Schedule{}
	}
	bookings, err := s.bookingsRepo.ListAll()
	if err != nil {
		log.Printf("load bookings failed, starting empty: %v", err)
		bookings = []models.Booking{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = users
	s.buses = buses
	s.destinations = destinations
	s.schedules = schedules
	s.bookings = bookings
	s.loaded = true
}

func (s *Store) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// --- mutations -----------------------------------------------------------

func (s *Store) AddUser(u models.User) error {
	if err := s.usersRepo.Upsert(u); err != nil {
		return domain.PersistenceError{Subsystem: SubsystemAccounts, Err: err}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = replaceOrAppend(s.users, u, func(x models.User) string { return x.ID })
	return nil
}

func (s *Store) AddBus(b models.Bus) error {
	if err := s.busesRepo.Upsert(b); err != nil {
		return domain.PersistenceError{Subsystem: SubsystemFleet, Err: err}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.buses = replaceOrAppend(s.buses, b, func(x models.Bus) string { return x.ID })
	return nil
}

func (s *Store) AddDestination(d models.Destination) error {
	if err := s.destinationsRepo.Upsert(d); err != nil {
		return domain.PersistenceError{Subsystem: SubsystemLocations, Err: err}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.destinations = replaceOrAppend(s.destinations, d, func(x models.Destination) string { return x.ID })
	return nil
}

// RemoveDestination deletes the destination through the gateway, then drops
// it and every schedule using it as an endpoint from the cache. The cascade
// is store-side only; stops in surviving schedules keep their (now dangling)
// destination ids and readers resolve them lazily via the name snapshot.
func (s *Store) RemoveDestination(id string) error {
	if err := s.destinationsRepo.Delete(id); err != nil {
		return domain.PersistenceError{Subsystem: SubsystemLocations, Err: err}
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.destinations[:0:0]
	for _, d := range s.destinations {
		if d.ID != id {
			kept = append(kept, d)
		}
	}
	s.destinations = kept

	surviving := s.schedules[:0:0]
	for _, sc := range s.schedules {
		if sc.OriginID == id || sc.DestinationID == id {
			continue
		}
		surviving = append(surviving, sc)
	}
	s.schedules = surviving
	return nil
}

func (s *Store) AddSchedule(sc models.Schedule) error {
	if err := s.schedulesRepo.Insert(sc); err != nil {
		return domain.PersistenceError{Subsystem: SubsystemSchedules, Err: err}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.schedules = append(s.schedules, sc)
	return nil
}

func (s *Store) CreateBooking(b models.Booking) error {
	if err := s.bookingsRepo.Insert(b); err != nil {
		if repositories.IsSeatConflict(err) {
			// bubble the raw conflict so the allocator can retry once
			return err
		}
		return domain.PersistenceError{Subsystem: SubsystemBookings, Err: err}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bookings = append(s.bookings, b)
	return nil
}

// CancelBooking flips the booking to cancelled after the gateway accepts the
// update. An unknown id is a no-op. Seat numbers of other bookings never
// shift.
func (s *Store) CancelBooking(id string) error {
	s.mu.RLock()
	known := false
	for i := range s.bookings {
		if s.bookings[i].ID == id {
			known = true
			break
		}
	}
	s.mu.RUnlock()
	if !known {
		return nil
	}

	if err := s.bookingsRepo.MarkCancelled(id); err != nil {
		return domain.PersistenceError{Subsystem: SubsystemVoid, Err: err}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.bookings {
		if s.bookings[i].ID == id {
			s.bookings[i].Status = models.BookingCancelled
			break
		}
	}
	return nil
}

// RefreshConfirmedCount re-reads the stored confirmed count for a schedule,
// used by the allocator after a seat-number conflict showed the cache stale.
func (s *Store) RefreshConfirmedCount(scheduleID string) (int, error) {
	return s.bookingsRepo.CountConfirmed(scheduleID)
}

// --- reads ---------------------------------------------------------------

func (s *Store) Users() []models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.User(nil), s.users...)
}

func (s *Store) Buses() []models.Bus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Bus(nil), s.buses...)
}

func (s *Store) Destinations() []models.Destination {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Destination(nil), s.destinations...)
}

func (s *Store) Schedules() []models.Schedule {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Schedule(nil), s.schedules...)
}

func (s *Store) Bookings() []models.Booking {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Booking(nil), s.bookings...)
}

func (s *Store) FindUser(id string) (models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.ID == id {
			return u, true
		}
	}
	return models.User{}, false
}

func (s *Store) FindBus(id string) (models.Bus, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, b := range s.buses {
		if b.ID == id {
			return b, true
		}
	}
	return models.Bus{}, false
}

func (s *Store) FindDestination(id string) (models.Destination, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, d := range s.destinations {
		if d.ID == id {
			return d, true
		}
	}
	return models.Destination{}, false
}

func (s *Store) FindSchedule(id string) (models.Schedule, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, sc := range s.schedules {
		if sc.ID == id {
			return sc, true
		}
	}
	return models.Schedule{}, false
}

func (s *Store) FindBooking(id string) (models.Booking, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, b := range s.bookings {
		if b.ID == id {
			return b, true
		}
	}
	return models.Booking{}, false
}

// CampusDestination returns the destination flagged as the campus anchor.
func (s *Store) CampusDestination() (models.Destination, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, d := range s.destinations {
		if d.IsCampus {
			return d, true
		}
	}
	return models.Destination{}, false
}

// ConfirmedCount counts bookings with status=confirmed for the schedule.
// Cancelled seats stay out of the count, so their numbers are not reissued
// deliberately; a freed number can only come back coincidentally.
func (s *Store) ConfirmedCount(scheduleID string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, b := range s.bookings {
		if b.ScheduleID == scheduleID && b.Status == models.BookingConfirmed {
			n++
		}
	}
	return n
}

// HasConfirmed reports whether the student already holds a confirmed seat on
// the schedule.
func (s *Store) HasConfirmed(scheduleID, studentID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, b := range s.bookings {
		if b.ScheduleID == scheduleID && b.StudentID == studentID && b.Status == models.BookingConfirmed {
			return true
		}
	}
	return false
}

func replaceOrAppend[T any](items []T, item T, key func(T) string) []T {
	id := key(item)
	for i := range items {
		if key(items[i]) == id {
			items[i] = item
			return items
		}
	}
	return append(items, item)
}
