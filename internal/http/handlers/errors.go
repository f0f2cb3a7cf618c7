package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Th3UrBanGuy/versity-bms/internal/domain"
	"github.com/Th3UrBanGuy/versity-bms/internal/http/middleware"
)

// ErrorResponse standardizes error payloads.
type ErrorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

func respondError(c *gin.Context, status int, code, message string) {
	if code == "" {
		code = http.StatusText(status)
	}
	c.JSON(status, ErrorResponse{
		Error:     message,
		Code:      code,
		RequestID: middleware.GetRequestID(c),
	})
}

// RespondDomainError maps domain errors to HTTP responses. Every failure
// produces exactly one client-visible payload; persistence failures name the
// subsystem that refused the write.
func RespondDomainError(c *gin.Context, err error) {
	switch {
	case domain.IsValidation(err):
		respondError(c, http.StatusBadRequest, "validation_error", err.Error())
	case domain.IsAuth(err):
		respondError(c, http.StatusUnauthorized, "authentication_failure", err.Error())
	case domain.IsNotFound(err):
		respondError(c, http.StatusNotFound, "not_found", err.Error())
	case domain.IsDuplicateBooking(err):
		respondError(c, http.StatusConflict, "duplicate_booking", err.Error())
	case domain.IsCapacity(err):
		respondError(c, http.StatusConflict, "capacity_exceeded", err.Error())
	case domain.IsConflict(err):
		respondError(c, http.StatusConflict, "conflict", err.Error())
	case domain.IsPersistence(err):
		var pe domain.PersistenceError
		errors.As(err, &pe)
		respondError(c, http.StatusBadGateway, "persistence_failure", pe.Error())
	default:
		respondError(c, http.StatusInternalServerError, "internal_error", "something went wrong")
	}
}
