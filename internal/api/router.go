package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/yervar/yervar-backend/internal/api/handlers"
	"github.com/yervar/yervar-backend/internal/api/middleware"
	"github.com/yervar/yervar-backend/internal/notify"
	"github.com/yervar/yervar-backend/internal/service"
)

func NewRouter(services *service.Services, hub *notify.Hub) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(middleware.CORS)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(services.Auth)
	profileHandler := handlers.NewProfileHandler(services.Profile)
	resetHandler := handlers.NewResetHandler(services.Reset)
	rideHandler := handlers.NewRideHandler(services.Ride, services.Rating, services.Suggest, services.Auth)
	wsHandler := handlers.NewWebSocketHandler(hub)

	r.Route("/api", func(r chi.Router) {
		// Public auth routes. Logout stays public: it is idempotent and
		// succeeds even without a live session.
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
			r.Post("/logout", authHandler.Logout)
			r.Post("/forgot-password", resetHandler.Forgot)
			r.Post("/reset-password", resetHandler.Reset)
		})

		// Protected user routes
		r.Route("/user", func(r chi.Router) {
			r.Use(middleware.Auth(services.Auth))
			r.Get("/me", authHandler.Me)
			r.Put("/profile", profileHandler.Update)
			r.Post("/change-password", profileHandler.ChangePassword)
		})

		// Ride routes: the open-ride listing is public, the rest need a session.
		r.Route("/rides", func(r chi.Router) {
			r.Get("/", rideHandler.List)

			r.Group(func(r chi.Router) {
				r.Use(middleware.Auth(services.Auth))
				r.Get("/past", rideHandler.ListPast)
				r.Get("/suggest", rideHandler.Suggest)
				r.Post("/create", rideHandler.Create)
				r.Post("/{rideID}/rate", rideHandler.Rate)
			})
		})

		// WebSocket notification endpoint
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(services.Auth))
			r.Get("/ws", wsHandler.Handle)
		})
	})

	return r
}
