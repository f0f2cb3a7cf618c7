package services

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/phpdave11/gofpdf"

	"github.com/Th3UrBanGuy/versity-bms/internal/domain"
	"github.com/Th3UrBanGuy/versity-bms/internal/store"
	"github.com/Th3UrBanGuy/versity-bms/internal/utils"
)

// DocsService renders the downloadable boarding pass for a booking.
type DocsService struct {
	Store     *store.Store
	RequestID string

	Loader func(bookingID string) (ticketDocData, error)
}

type ticketDocData struct {
	BookingID     string
	StudentName   string
	StudentRef    string
	Origin        string
	Destination   string
	DepartureTime string
	TravelDate    string
	SeatNumber    int
	BoardingPoint string
	PlateNumber   string
	Status        string
}

func (s DocsService) GenerateTicket(bookingID string) ([]byte, string, error) {
	data, err := s.loadTicketDocData(bookingID)
	if err != nil {
		return nil, "", err
	}
	utils.LogEvent(s.RequestID, "docs", "generate_ticket", fmt.Sprintf("booking_id=%s", bookingID))
	return buildTicketPDF(data)
}

func (s DocsService) loadTicketDocData(bookingID string) (ticketDocData, error) {
	if s.Loader != nil {
		return s.Loader(bookingID)
	}

	var out ticketDocData
	booking, ok := s.Store.FindBooking(bookingID)
	if !ok {
		return out, domain.NotFoundError{Resource: "booking"}
	}
	out.BookingID = booking.ID
	out.SeatNumber = booking.SeatNumber
	out.TravelDate = booking.Date
	out.BoardingPoint = booking.BoardingPoint
	out.Status = booking.Status

	if student, ok := s.Store.FindUser(booking.StudentID); ok {
		out.StudentName = student.Name
		out.StudentRef = student.Identifier
	}

	if schedule, ok := s.Store.FindSchedule(booking.ScheduleID); ok {
		out.DepartureTime = schedule.DepartureTime
		// endpoint names resolve lazily; a removed destination stays blank
		if origin, ok := s.Store.FindDestination(schedule.OriginID); ok {
			out.Origin = origin.Name
		}
		if dest, ok := s.Store.FindDestination(schedule.DestinationID); ok {
			out.Destination = dest.Name
		}
		if bus, ok := s.Store.FindBus(schedule.BusID); ok {
			out.PlateNumber = bus.PlateNumber
		}
	}
	return out, nil
}

func buildTicketPDF(d ticketDocData) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Boarding Pass", false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "BOARDING PASS")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Student        : %s", safe(d.StudentName, "-")),
		fmt.Sprintf("Student ID     : %s", safe(d.StudentRef, "-")),
		fmt.Sprintf("Route          : %s -> %s", safe(d.Origin, "Unknown"), safe(d.Destination, "Unknown")),
		fmt.Sprintf("Travel Date    : %s", safe(d.TravelDate, "-")),
		fmt.Sprintf("Departure      : %s", safe(d.DepartureTime, "-")),
		fmt.Sprintf("Seat           : %d", d.SeatNumber),
		fmt.Sprintf("Boarding Point : %s", safe(d.BoardingPoint, "-")),
		fmt.Sprintf("Bus            : %s", safe(d.PlateNumber, "-")),
		fmt.Sprintf("Status         : %s", strings.ToUpper(safe(d.Status, "-"))),
		fmt.Sprintf("Issued         : %s", time.Now().Format("2006-01-02 15:04")),
	}
	for _, line := range lines {
		pdf.Cell(0, 7, line)
		pdf.Ln(7)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "This pass is valid for one seat on the named trip. Show it to the driver when boarding.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("TICKET_%s.pdf", safeFilenamePart(d.BookingID))
	return buf.Bytes(), filename, nil
}

func safe(v, fallback string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return fallback
	}
	return v
}

func safeFilenamePart(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "NA"
	}
	replacer := strings.NewReplacer(" ", "_", "/", "_", "\\", "_", ":", "_", "*", "_", "?", "_", "\"", "_", "<", "_", ">", "_", "|", "_")
	s = replacer.Replace(s)
	if len(s) > 40 {
		s = s[:40]
	}
	return s
}
