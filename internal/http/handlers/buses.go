package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Th3UrBanGuy/versity-bms/internal/domain/models"
	"github.com/Th3UrBanGuy/versity-bms/internal/http/middleware"
	"github.com/Th3UrBanGuy/versity-bms/internal/utils"
)

// GET /api/buses
func (a *API) ListBuses(c *gin.Context) {
	c.JSON(http.StatusOK, a.Store.Buses())
}

// POST /api/buses
func (a *API) CreateBus(c *gin.Context) {
	var bus models.Bus
	if !BindJSONOrError(c, &bus) {
		return
	}
	bus.ID = uuid.NewString()
	if strings.TrimSpace(bus.Status) == "" {
		bus.Status = models.BusActive
	}

	if err := a.Store.AddBus(bus); err != nil {
		RespondDomainError(c, err)
		return
	}
	utils.LogEvent(middleware.GetRequestID(c), "fleet", "create_bus", "bus_id="+bus.ID)
	c.JSON(http.StatusCreated, bus)
}

// PUT /api/buses/:id
//
// Full overwrite: the payload is the entire new record, matching the
// save-the-whole-object shape the dashboard sends.
func (a *API) UpdateBus(c *gin.Context) {
	var bus models.Bus
	if !BindJSONOrError(c, &bus) {
		return
	}
	bus.ID = c.Param("id")
	if strings.TrimSpace(bus.Status) == "" {
		bus.Status = models.BusActive
	}

	if err := a.Store.AddBus(bus); err != nil {
		RespondDomainError(c, err)
		return
	}
	utils.LogEvent(middleware.GetRequestID(c), "fleet", "update_bus", "bus_id="+bus.ID)
	c.JSON(http.StatusOK, bus)
}
