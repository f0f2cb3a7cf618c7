package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Th3UrBanGuy/versity-bms/internal/ai"
	"github.com/Th3UrBanGuy/versity-bms/internal/domain"
	"github.com/Th3UrBanGuy/versity-bms/internal/services"
	"github.com/Th3UrBanGuy/versity-bms/internal/store"
)

// API bundles the injected collaborators every handler works against.
type API struct {
	Store     *store.Store
	Auth      *services.AuthService
	Bookings  *services.BookingService
	Schedules *services.ScheduleService
	AI        *ai.Client
}

// BindJSONOrError ensures body is present and parsable.
func BindJSONOrError[T any](c *gin.Context, dst *T) bool {
	if c.Request.Body == nil {
		RespondDomainError(c, domain.ValidationError{Msg: "request body is empty"})
		return false
	}
	if err := c.ShouldBindJSON(dst); err != nil {
		respondError(c, http.StatusBadRequest, "validation_error", "invalid payload: "+err.Error())
		return false
	}
	return true
}
