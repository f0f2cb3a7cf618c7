package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Th3UrBanGuy/versity-bms/internal/ai"
	intconfig "github.com/Th3UrBanGuy/versity-bms/internal/config"
	"github.com/Th3UrBanGuy/versity-bms/internal/domain/models"
	router "github.com/Th3UrBanGuy/versity-bms/internal/http"
	"github.com/Th3UrBanGuy/versity-bms/internal/http/handlers"
	"github.com/Th3UrBanGuy/versity-bms/internal/repositories"
	"github.com/Th3UrBanGuy/versity-bms/internal/services"
	"github.com/Th3UrBanGuy/versity-bms/internal/store"
)

func main() {
	env := intconfig.LoadEnv()
	if env.GinMode != "" {
		gin.SetMode(env.GinMode)
	}

	db := intconfig.ConnectDB(env)
	defer intconfig.CloseDB()

	if err := repositories.EnsureSchema(db); err != nil {
		log.Fatalf("schema setup failed: %v", err)
	}

	st := store.New(db)
	st.Load()
	seedAdmin(st)

	apiDeps := &handlers.API{
		Store:     st,
		Auth:      &services.AuthService{Store: st, Secret: env.JWTSecretBytes()},
		Bookings:  &services.BookingService{Store: st},
		Schedules: &services.ScheduleService{Store: st},
		AI:        ai.New(env),
	}

	r := router.NewRouter(env, apiDeps)

	srv := &http.Server{
		Addr:              env.AppAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       20 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("Server listening on http://localhost%s", env.AppAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}

	log.Println("Server stopped cleanly.")
}

// seedAdmin makes sure a fresh install has a way in. Skipped the moment any
// admin account exists.
func seedAdmin(st *store.Store) {
	for _, u := range st.Users() {
		if u.Role == models.RoleAdmin {
			return
		}
	}

	admin := models.User{
		ID:         uuid.NewString(),
		Name:       "Transport Admin",
		Identifier: "admin",
		Password:   "admin123",
		Role:       models.RoleAdmin,
	}
	if err := st.AddUser(admin); err != nil {
		log.Printf("seed admin failed: %v", err)
		return
	}
	log.Println("Seeded default admin account (identifier: admin). Change its password.")
}
