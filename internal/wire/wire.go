// internal/wire/wire.go
package wire

import (
	"net/http"

	"rental-booking/internal/adaptor"
	"rental-booking/internal/data/repository"
	"rental-booking/internal/gateway"
	"rental-booking/internal/usecase"
	"rental-booking/pkg/middleware"
	"rental-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// App holds the wired dependencies
type App struct {
	Router  *chi.Mux
	Service *usecase.Service
}

// Wiring initializes all dependencies
func Wiring(repo *repository.Repository, config *utils.Config, logger *zap.Logger) *App {
	payments := gateway.NewPaymentGateway(config.Gateway, logger)
	events := gateway.NewEventPublisher(config.Gateway, logger)

	service := usecase.NewService(repo, config, payments, events, logger)
	handler := adaptor.NewHandler(service, logger)

	router := setupRouter(handler, logger)

	return &App{
		Router:  router,
		Service: service,
	}
}

// setupRouter configures the Chi router
func setupRouter(handler *adaptor.Handler, logger *zap.Logger) *chi.Mux {
	r := chi.NewRouter()

	// Apply global middleware
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))

	// Apply routes
	wireBooking(r, handler.Booking)
	wireCalendar(r, handler.Calendar)

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}
