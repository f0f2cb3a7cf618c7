package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Th3UrBanGuy/versity-bms/internal/domain/models"
	"github.com/Th3UrBanGuy/versity-bms/internal/http/middleware"
	"github.com/Th3UrBanGuy/versity-bms/internal/utils"
)

// GET /api/destinations
func (a *API) ListDestinations(c *gin.Context) {
	c.JSON(http.StatusOK, a.Store.Destinations())
}

// POST /api/destinations
func (a *API) CreateDestination(c *gin.Context) {
	var dest models.Destination
	if !BindJSONOrError(c, &dest) {
		return
	}
	dest.ID = uuid.NewString()

	if err := a.Store.AddDestination(dest); err != nil {
		RespondDomainError(c, err)
		return
	}
	utils.LogEvent(middleware.GetRequestID(c), "locations", "create_destination", "destination_id="+dest.ID)
	c.JSON(http.StatusCreated, dest)
}

// PUT /api/destinations/:id
func (a *API) UpdateDestination(c *gin.Context) {
	var dest models.Destination
	if !BindJSONOrError(c, &dest) {
		return
	}
	dest.ID = c.Param("id")

	if err := a.Store.AddDestination(dest); err != nil {
		RespondDomainError(c, err)
		return
	}
	utils.LogEvent(middleware.GetRequestID(c), "locations", "update_destination", "destination_id="+dest.ID)
	c.JSON(http.StatusOK, dest)
}

// DELETE /api/destinations/:id
//
// Removing a destination also drops every schedule that used it as an
// endpoint. Stops inside surviving schedules keep their name snapshots.
func (a *API) DeleteDestination(c *gin.Context) {
	id := c.Param("id")
	if err := a.Store.RemoveDestination(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	utils.LogEvent(middleware.GetRequestID(c), "locations", "delete_destination", "destination_id="+id)
	c.JSON(http.StatusOK, gin.H{"message": "destination and its schedules removed"})
}
