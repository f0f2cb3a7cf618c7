package api

import (
	"log"
	stdhttp "net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	intconfig "github.com/Th3UrBanGuy/versity-bms/internal/config"
	"github.com/Th3UrBanGuy/versity-bms/internal/domain/models"
	h "github.com/Th3UrBanGuy/versity-bms/internal/http/handlers"
	"github.com/Th3UrBanGuy/versity-bms/internal/http/middleware"
)

func NewRouter(env intconfig.Env, api *h.API) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Disposition"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	authRequired := middleware.Auth(env.JWTSecretBytes())
	adminOnly := middleware.RequireRoles(string(models.RoleAdmin))
	studentOnly := middleware.RequireRoles(string(models.RoleStudent))

	root := r.Group("/api")
	{
		root.GET("/health", api.Health)
		root.GET("/db-check", api.DBCheck)

		auth := root.Group("/auth")
		auth.POST("/login", api.Login)
		auth.POST("/register", api.Register)
		auth.GET("/session", authRequired, api.Session)
		auth.POST("/logout", authRequired, api.Logout)

		buses := root.Group("/buses", authRequired)
		buses.GET("", api.ListBuses)
		buses.POST("", adminOnly, api.CreateBus)
		buses.PUT("/:id", adminOnly, api.UpdateBus)

		destinations := root.Group("/destinations", authRequired)
		destinations.GET("", api.ListDestinations)
		destinations.POST("", adminOnly, api.CreateDestination)
		destinations.PUT("/:id", adminOnly, api.UpdateDestination)
		destinations.DELETE("/:id", adminOnly, api.DeleteDestination)

		schedules := root.Group("/schedules", authRequired)
		schedules.GET("", api.ListSchedules)
		draft := schedules.Group("/draft", adminOnly)
		draft.GET("", api.GetDraft)
		draft.PUT("/trip", api.SetDraftTrip)
		draft.PUT("/type", api.SetDraftTripType)
		draft.POST("/stops", api.AddDraftStop)
		draft.DELETE("/stops/:index", api.RemoveDraftStop)
		draft.POST("/publish", api.PublishDraft)

		bookings := root.Group("/bookings", authRequired)
		bookings.GET("", api.ListBookings)
		bookings.POST("", studentOnly, api.CreateBooking)
		bookings.POST("/:id/cancel", api.CancelBooking)
		bookings.GET("/:id/ticket", api.DownloadTicket)

		ai := root.Group("/ai", authRequired, adminOnly)
		ai.POST("/fleet-analysis", api.FleetAnalysis)
		ai.POST("/locations", api.SearchLocations)
	}

	return r
}
