package repositories

import (
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/Th3UrBanGuy/versity-bms/internal/domain/models"
)

func TestCountConfirmed(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM bookings").WithArgs("sch-1", models.BookingConfirmed).
		WillReturnRows(sqlmock.NewRows([]string{"COUNT(*)"}).AddRow(3))

	repo := BookingsRepo{DB: db}
	n, err := repo.CountConfirmed("sch-1")
	if err != nil {
		t.Fatalf("count confirmed: %v", err)
	}
	if n != 3 {
		t.Fatalf("count = %d, want 3", n)
	}
}

func TestInsertAndCancelRequireID(t *testing.T) {
	repo := BookingsRepo{}
	if err := repo.Insert(models.Booking{}); err == nil {
		t.Fatalf("empty id must be rejected before touching the database")
	}
	if err := repo.MarkCancelled(""); err == nil {
		t.Fatalf("empty id must be rejected before touching the database")
	}
}

func TestMarkCancelledClearsSeat(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("UPDATE bookings SET status = \\?, seat_number = NULL").
		WithArgs(models.BookingCancelled, "bk-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := BookingsRepo{DB: db}
	if err := repo.MarkCancelled("bk-1"); err != nil {
		t.Fatalf("mark cancelled: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestIsSeatConflict(t *testing.T) {
	if !IsSeatConflict(errors.New("Error 1062 (23000): Duplicate entry 'sch-1-2' for key 'bookings.uniq_schedule_seat'")) {
		t.Fatalf("driver duplicate-key error not recognized")
	}
	if IsSeatConflict(errors.New("connection refused")) {
		t.Fatalf("unrelated error misclassified as seat conflict")
	}
	if IsSeatConflict(nil) {
		t.Fatalf("nil error misclassified")
	}
}
