package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Th3UrBanGuy/versity-bms/internal/domain"
	"github.com/Th3UrBanGuy/versity-bms/internal/domain/models"
	"github.com/Th3UrBanGuy/versity-bms/internal/http/middleware"
	"github.com/Th3UrBanGuy/versity-bms/internal/services"
	"github.com/Th3UrBanGuy/versity-bms/internal/utils"
)

// GET /api/bookings
//
// Admins see every booking; students only their own.
func (a *API) ListBookings(c *gin.Context) {
	all := a.Store.Bookings()
	if middleware.GetUserRole(c) == string(models.RoleAdmin) {
		c.JSON(http.StatusOK, all)
		return
	}

	userID := middleware.GetUserID(c)
	mine := make([]models.Booking, 0)
	for _, b := range all {
		if b.StudentID == userID {
			mine = append(mine, b)
		}
	}
	c.JSON(http.StatusOK, mine)
}

// POST /api/bookings
func (a *API) CreateBooking(c *gin.Context) {
	var req struct {
		ScheduleID    string `json:"scheduleId" binding:"required"`
		BoardingPoint string `json:"boardingPoint"`
	}
	if !BindJSONOrError(c, &req) {
		return
	}

	student, ok := a.Store.FindUser(middleware.GetUserID(c))
	if !ok {
		respondError(c, http.StatusUnauthorized, "authentication_failure", "session no longer valid")
		return
	}

	booking, err := a.Bookings.Book(student, req.ScheduleID, req.BoardingPoint)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	utils.LogEvent(middleware.GetRequestID(c), "bookings", "create", fmt.Sprintf("booking_id=%s seat=%d", booking.ID, booking.SeatNumber))
	c.JSON(http.StatusCreated, gin.H{
		"booking": booking,
		"message": fmt.Sprintf("Seat #%d booked successfully! Boarding at %s.", booking.SeatNumber, booking.BoardingPoint),
	})
}

// POST /api/bookings/:id/cancel
//
// Students may only void their own ticket; admins may void anyone's.
func (a *API) CancelBooking(c *gin.Context) {
	id := c.Param("id")
	if middleware.GetUserRole(c) != string(models.RoleAdmin) {
		if booking, ok := a.Store.FindBooking(id); ok && booking.StudentID != middleware.GetUserID(c) {
			respondError(c, http.StatusForbidden, "forbidden", "not your booking")
			return
		}
	}

	if err := a.Bookings.Cancel(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	utils.LogEvent(middleware.GetRequestID(c), "bookings", "cancel", "booking_id="+id)
	c.JSON(http.StatusOK, gin.H{"message": "booking cancelled"})
}

// GET /api/bookings/:id/ticket
func (a *API) DownloadTicket(c *gin.Context) {
	id := c.Param("id")

	booking, ok := a.Store.FindBooking(id)
	if !ok {
		RespondDomainError(c, domain.NotFoundError{Resource: "booking"})
		return
	}
	if middleware.GetUserRole(c) != string(models.RoleAdmin) && booking.StudentID != middleware.GetUserID(c) {
		respondError(c, http.StatusForbidden, "forbidden", "not your booking")
		return
	}

	docs := services.DocsService{Store: a.Store, RequestID: middleware.GetRequestID(c)}
	pdf, filename, err := docs.GenerateTicket(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", pdf)
}
