package services

import (
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/Th3UrBanGuy/versity-bms/internal/domain"
	"github.com/Th3UrBanGuy/versity-bms/internal/domain/models"
	"github.com/Th3UrBanGuy/versity-bms/internal/store"
)

func newTestStore(t *testing.T) (*store.Store, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	mock.MatchExpectationsInOrder(false)
	return store.New(db), mock, func() { db.Close() }
}

func seedBus(t *testing.T, st *store.Store, mock sqlmock.Sqlmock, b models.Bus) {
	t.Helper()
	mock.ExpectExec("INSERT INTO buses").WillReturnResult(sqlmock.NewResult(1, 1))
	if err := st.AddBus(b); err != nil {
		t.Fatalf("seed bus: %v", err)
	}
}

func seedDestination(t *testing.T, st *store.Store, mock sqlmock.Sqlmock, d models.Destination) {
	t.Helper()
	mock.ExpectExec("INSERT INTO destinations").WillReturnResult(sqlmock.NewResult(1, 1))
	if err := st.AddDestination(d); err != nil {
		t.Fatalf("seed destination: %v", err)
	}
}

func seedSchedule(t *testing.T, st *store.Store, mock sqlmock.Sqlmock, sc models.Schedule) {
	t.Helper()
	mock.ExpectExec("INSERT INTO schedules").WillReturnResult(sqlmock.NewResult(1, 1))
	if err := st.AddSchedule(sc); err != nil {
		t.Fatalf("seed schedule: %v", err)
	}
}

func fixedClockService(st *store.Store) *BookingService {
	n := 0
	return &BookingService{
		Store: st,
		Now:   func() time.Time { return time.Date(2025, 6, 2, 8, 0, 0, 0, time.UTC) },
		NewID: func() string { n++; return "bk-" + string(rune('a'+n-1)) },
	}
}

func seedTrip(t *testing.T, st *store.Store, mock sqlmock.Sqlmock, capacity int) models.Schedule {
	t.Helper()
	seedBus(t, st, mock, models.Bus{ID: "bus-1", PlateNumber: "CTG-1122", Capacity: capacity, DriverName: "Karim", DriverPhone: "0171", Status: models.BusActive})
	seedDestination(t, st, mock, models.Destination{ID: "dst-campus", Name: "BGC Trust Campus", IsCampus: true})
	seedDestination(t, st, mock, models.Destination{ID: "dst-gec", Name: "GEC Circle"})
	sc := models.Schedule{
		ID: "sch-1", BusID: "bus-1",
		OriginID: "dst-gec", DestinationID: "dst-campus",
		DepartureTime: "08:30", Type: models.TripInbound,
		Stops: []models.RouteStop{{ID: "stop-1", DestinationID: "dst-mid", Name: "Muradpur", ArrivalTime: "08:50"}},
	}
	seedSchedule(t, st, mock, sc)
	return sc
}

func TestBookAssignsSeatsByConfirmedCount(t *testing.T) {
	st, mock, closeDB := newTestStore(t)
	defer closeDB()
	seedTrip(t, st, mock, 2)
	svc := fixedClockService(st)

	mock.ExpectExec("INSERT INTO bookings").WillReturnResult(sqlmock.NewResult(1, 1))
	first, err := svc.Book(models.User{ID: "stu-1", Role: models.RoleStudent}, "sch-1", "")
	if err != nil {
		t.Fatalf("first booking failed: %v", err)
	}
	if first.SeatNumber != 1 {
		t.Fatalf("first seat = %d, want 1", first.SeatNumber)
	}

	mock.ExpectExec("INSERT INTO bookings").WillReturnResult(sqlmock.NewResult(1, 1))
	second, err := svc.Book(models.User{ID: "stu-2", Role: models.RoleStudent}, "sch-1", "")
	if err != nil {
		t.Fatalf("second booking failed: %v", err)
	}
	if second.SeatNumber != 2 {
		t.Fatalf("second seat = %d, want 2", second.SeatNumber)
	}

	_, err = svc.Book(models.User{ID: "stu-3", Role: models.RoleStudent}, "sch-1", "")
	if !domain.IsCapacity(err) {
		t.Fatalf("expected capacity error at full bus, got %v", err)
	}
}

func TestBookRejectsSecondConfirmedSeatForSameStudent(t *testing.T) {
	st, mock, closeDB := newTestStore(t)
	defer closeDB()
	seedTrip(t, st, mock, 10)
	svc := fixedClockService(st)

	mock.ExpectExec("INSERT INTO bookings").WillReturnResult(sqlmock.NewResult(1, 1))
	if _, err := svc.Book(models.User{ID: "stu-1", Role: models.RoleStudent}, "sch-1", ""); err != nil {
		t.Fatalf("first booking failed: %v", err)
	}

	_, err := svc.Book(models.User{ID: "stu-1", Role: models.RoleStudent}, "sch-1", "")
	if !domain.IsDuplicateBooking(err) {
		t.Fatalf("expected duplicate booking error, got %v", err)
	}
}

func TestBookBoardingPointDefaultsToOrigin(t *testing.T) {
	st, mock, closeDB := newTestStore(t)
	defer closeDB()
	seedTrip(t, st, mock, 10)
	svc := fixedClockService(st)

	mock.ExpectExec("INSERT INTO bookings").WillReturnResult(sqlmock.NewResult(1, 1))
	b, err := svc.Book(models.User{ID: "stu-1", Role: models.RoleStudent}, "sch-1", "")
	if err != nil {
		t.Fatalf("booking failed: %v", err)
	}
	if b.BoardingPoint != "GEC Circle" {
		t.Fatalf("boarding point = %q, want origin name", b.BoardingPoint)
	}
}

func TestBookAcceptsStopAsBoardingPoint(t *testing.T) {
	st, mock, closeDB := newTestStore(t)
	defer closeDB()
	seedTrip(t, st, mock, 10)
	svc := fixedClockService(st)

	mock.ExpectExec("INSERT INTO bookings").WillReturnResult(sqlmock.NewResult(1, 1))
	b, err := svc.Book(models.User{ID: "stu-1", Role: models.RoleStudent}, "sch-1", "muradpur")
	if err != nil {
		t.Fatalf("booking failed: %v", err)
	}
	if b.BoardingPoint != "Muradpur" {
		t.Fatalf("boarding point = %q, want canonical stop name", b.BoardingPoint)
	}

	_, err = svc.Book(models.User{ID: "stu-2", Role: models.RoleStudent}, "sch-1", "Agrabad")
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error for off-route point, got %v", err)
	}
}

func TestBookRejectsNonStudentsAndUnknownSchedules(t *testing.T) {
	st, mock, closeDB := newTestStore(t)
	defer closeDB()
	seedTrip(t, st, mock, 10)
	svc := fixedClockService(st)

	if _, err := svc.Book(models.User{ID: "adm-1", Role: models.RoleAdmin}, "sch-1", ""); !domain.IsValidation(err) {
		t.Fatalf("expected validation error for admin booking, got %v", err)
	}
	if _, err := svc.Book(models.User{ID: "stu-1", Role: models.RoleStudent}, "sch-missing", ""); !domain.IsNotFound(err) {
		t.Fatalf("expected not found for unknown schedule, got %v", err)
	}
}

func TestBookRetriesOnceAfterSeatKeyConflict(t *testing.T) {
	st, mock, closeDB := newTestStore(t)
	defer closeDB()
	seedTrip(t, st, mock, 10)
	svc := fixedClockService(st)

	conflict := errors.New("Error 1062 (23000): Duplicate entry 'sch-1-1' for key 'bookings.uniq_schedule_seat'")
	mock.ExpectExec("INSERT INTO bookings").WillReturnError(conflict)
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM bookings").WithArgs("sch-1", models.BookingConfirmed).
		WillReturnRows(sqlmock.NewRows([]string{"COUNT(*)"}).AddRow(1))
	mock.ExpectExec("INSERT INTO bookings").WillReturnResult(sqlmock.NewResult(1, 1))

	b, err := svc.Book(models.User{ID: "stu-1", Role: models.RoleStudent}, "sch-1", "")
	if err != nil {
		t.Fatalf("booking should succeed after one retry: %v", err)
	}
	if b.SeatNumber != 2 {
		t.Fatalf("retried seat = %d, want 2 (stored count + 1)", b.SeatNumber)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCancelThenRebookCreatesFreshRecord(t *testing.T) {
	st, mock, closeDB := newTestStore(t)
	defer closeDB()
	seedTrip(t, st, mock, 30)
	svc := fixedClockService(st)

	mock.ExpectExec("INSERT INTO bookings").WillReturnResult(sqlmock.NewResult(1, 1))
	first, err := svc.Book(models.User{ID: "stu-1", Role: models.RoleStudent}, "sch-1", "")
	if err != nil {
		t.Fatalf("booking failed: %v", err)
	}

	mock.ExpectExec("UPDATE bookings").WillReturnResult(sqlmock.NewResult(0, 1))
	if err := svc.Cancel(first.ID); err != nil {
		t.Fatalf("cancel failed: %v", err)
	}

	mock.ExpectExec("INSERT INTO bookings").WillReturnResult(sqlmock.NewResult(1, 1))
	second, err := svc.Book(models.User{ID: "stu-1", Role: models.RoleStudent}, "sch-1", "")
	if err != nil {
		t.Fatalf("rebooking after cancel should be allowed: %v", err)
	}
	if second.ID == first.ID {
		t.Fatalf("rebooking must create a fresh record, got same id %s", second.ID)
	}
	if second.SeatNumber != 1 {
		t.Fatalf("rebooked seat = %d, want 1 (confirmed count fell back)", second.SeatNumber)
	}

	got, ok := st.FindBooking(first.ID)
	if !ok || got.Status != models.BookingCancelled {
		t.Fatalf("original booking should remain cancelled, got %+v", got)
	}
}

func TestCancelUnknownBookingIsNoOp(t *testing.T) {
	st, _, closeDB := newTestStore(t)
	defer closeDB()
	svc := fixedClockService(st)

	if err := svc.Cancel("no-such-booking"); err != nil {
		t.Fatalf("cancel of unknown id should be a no-op, got %v", err)
	}
}
