package repositories

import (
	"database/sql"
	"fmt"
	"strings"

	intconfig "github.com/Th3UrBanGuy/versity-bms/internal/config"
	"github.com/Th3UrBanGuy/versity-bms/internal/domain/models"
)

type BookingsRepo struct {
	DB *sql.DB
}

func (r BookingsRepo) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r BookingsRepo) ListAll() ([]models.Booking, error) {
	rows, err := r.db().Query(`
		SELECT id, COALESCE(schedule_id, ''), COALESCE(student_id, ''), COALESCE(seat_number, 0),
		       COALESCE(date, ''), COALESCE(status, ''), COALESCE(timestamp, 0), COALESCE(boarding_point, '')
		FROM bookings
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Booking{}
	for rows.Next() {
		var b models.Booking
		if err := rows.Scan(&b.ID, &b.ScheduleID, &b.StudentID, &b.SeatNumber, &b.Date, &b.Status, &b.Timestamp, &b.BoardingPoint); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// Insert is a plain insert on purpose: a duplicate on the
// (schedule_id, seat_number) key must surface as error 1062 so the allocator
// can retry, never silently update the winning row.
func (r BookingsRepo) Insert(b models.Booking) error {
	if strings.TrimSpace(b.ID) == "" {
		return fmt.Errorf("booking id is empty")
	}
	_, err := r.db().Exec(`
		INSERT INTO bookings (id, schedule_id, student_id, seat_number, date, status, timestamp, boarding_point)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, b.ID, b.ScheduleID, b.StudentID, b.SeatNumber, b.Date, b.Status, b.Timestamp, b.BoardingPoint)
	return err
}

// MarkCancelled flips the row and clears its seat number so the unique key
// releases the seat for a later coincidental reissue. The cache keeps the
// number for display until the next reload.
func (r BookingsRepo) MarkCancelled(id string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("booking id is empty")
	}
	_, err := r.db().Exec(`
		UPDATE bookings SET status = ?, seat_number = NULL WHERE id = ?
	`, models.BookingCancelled, id)
	return err
}

// CountConfirmed re-reads the authoritative confirmed-seat count, used when a
// seat-number unique key conflict reveals the cached count went stale.
func (r BookingsRepo) CountConfirmed(scheduleID string) (int, error) {
	var n int
	err := r.db().QueryRow(`
		SELECT COUNT(*) FROM bookings WHERE schedule_id = ? AND status = ?
	`, scheduleID, models.BookingConfirmed).Scan(&n)
	return n, err
}

// IsSeatConflict reports whether err is the driver's duplicate-key error for
// the (schedule_id, seat_number) unique key.
func IsSeatConflict(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "Error 1062") || strings.Contains(msg, "Duplicate entry")
}
