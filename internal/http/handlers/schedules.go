package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Th3UrBanGuy/versity-bms/internal/domain"
	"github.com/Th3UrBanGuy/versity-bms/internal/domain/models"
	"github.com/Th3UrBanGuy/versity-bms/internal/http/middleware"
	"github.com/Th3UrBanGuy/versity-bms/internal/utils"
)

// GET /api/schedules
func (a *API) ListSchedules(c *gin.Context) {
	c.JSON(http.StatusOK, a.Store.Schedules())
}

// GET /api/schedules/draft
func (a *API) GetDraft(c *gin.Context) {
	c.JSON(http.StatusOK, a.Schedules.Draft(middleware.GetUserID(c)))
}

// PUT /api/schedules/draft/trip
func (a *API) SetDraftTrip(c *gin.Context) {
	var req struct {
		BusID         string `json:"busId"`
		OriginID      string `json:"originId"`
		DestinationID string `json:"destinationId"`
		DepartureTime string `json:"departureTime"`
	}
	if !BindJSONOrError(c, &req) {
		return
	}
	draft := a.Schedules.SetTrip(middleware.GetUserID(c), req.BusID, req.OriginID, req.DestinationID, req.DepartureTime)
	c.JSON(http.StatusOK, draft)
}

// PUT /api/schedules/draft/type
func (a *API) SetDraftTripType(c *gin.Context) {
	var req struct {
		Type models.TripType `json:"type" binding:"required"`
	}
	if !BindJSONOrError(c, &req) {
		return
	}
	draft, err := a.Schedules.SetTripType(middleware.GetUserID(c), req.Type)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, draft)
}

// POST /api/schedules/draft/stops
func (a *API) AddDraftStop(c *gin.Context) {
	var req struct {
		DestinationID string `json:"destinationId" binding:"required"`
		ArrivalTime   string `json:"arrivalTime" binding:"required"`
	}
	if !BindJSONOrError(c, &req) {
		return
	}
	draft, err := a.Schedules.AddStop(middleware.GetUserID(c), req.DestinationID, req.ArrivalTime)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, draft)
}

// DELETE /api/schedules/draft/stops/:index
func (a *API) RemoveDraftStop(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		RespondDomainError(c, domain.ValidationError{Field: "index", Msg: "must be a number"})
		return
	}
	draft, err := a.Schedules.RemoveStop(middleware.GetUserID(c), index)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, draft)
}

// POST /api/schedules/draft/publish
func (a *API) PublishDraft(c *gin.Context) {
	adminID := middleware.GetUserID(c)
	schedule, err := a.Schedules.Publish(adminID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	utils.LogEvent(middleware.GetRequestID(c), "schedules", "publish", "schedule_id="+schedule.ID)
	c.JSON(http.StatusCreated, schedule)
}
