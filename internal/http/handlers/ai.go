package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Th3UrBanGuy/versity-bms/internal/http/middleware"
	"github.com/Th3UrBanGuy/versity-bms/internal/utils"
)

// POST /api/ai/fleet-analysis
//
// Advisory only: the response is always 200 with text, an apology string when
// the model call failed. AI failure never becomes an API error.
func (a *API) FleetAnalysis(c *gin.Context) {
	analysis := a.AI.FleetAnalysis(
		c.Request.Context(),
		a.Store.Buses(),
		a.Store.Schedules(),
		len(a.Store.Bookings()),
	)
	utils.LogEvent(middleware.GetRequestID(c), "ai", "fleet_analysis", "done")
	c.JSON(http.StatusOK, gin.H{"analysis": analysis})
}

// POST /api/ai/locations
func (a *API) SearchLocations(c *gin.Context) {
	var req struct {
		Query string  `json:"query" binding:"required"`
		Lat   float64 `json:"lat"`
		Lng   float64 `json:"lng"`
	}
	if !BindJSONOrError(c, &req) {
		return
	}

	text, suggestions := a.AI.SearchLocations(c.Request.Context(), req.Query, req.Lat, req.Lng)
	c.JSON(http.StatusOK, gin.H{"text": text, "suggestions": suggestions})
}
