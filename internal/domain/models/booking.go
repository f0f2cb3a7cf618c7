package models

const (
	BookingConfirmed = "confirmed"
	BookingCancelled = "cancelled"
)

// Booking reserves one seat on one schedule for one student. ScheduleID and
// StudentID are lookup references only; the booking owns nothing.
type Booking struct {
	ID            string `json:"id"`
	ScheduleID    string `json:"scheduleId"`
	StudentID     string `json:"studentId"`
	SeatNumber    int    `json:"seatNumber"`
	Date          string `json:"date"`
	Status        string `json:"status"`
	Timestamp     int64  `json:"timestamp"`
	BoardingPoint string `json:"boardingPoint"`
}
