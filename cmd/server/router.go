package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/shaouxyz/mentormatch-sub003/internal/api"
	apiMiddleware "github.com/shaouxyz/mentormatch-sub003/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes
// and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	authHandler := api.NewAuthHandler(app.userService, app.jwtService)
	requestHandler := api.NewRequestHandler(app.requestService)
	meetingHandler := api.NewMeetingHandler(app.meetingService)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService, app.userService)

	r.Route("/api", func(r chi.Router) {
		// Authentication endpoints (public)
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			// Mentorship request endpoints
			r.Get("/requests", requestHandler.Overview)
			r.Post("/requests", requestHandler.Create)
			r.Get("/requests/{id}", requestHandler.Get)
			r.Post("/requests/{id}/accept", requestHandler.Accept)
			r.Post("/requests/{id}/decline", requestHandler.Decline)

			// Meeting endpoints
			r.Get("/meetings", meetingHandler.List)
			r.Post("/meetings", meetingHandler.Create)
			r.Get("/meetings/{id}", meetingHandler.Get)
			r.Post("/meetings/{id}/reschedule", meetingHandler.Reschedule)
			r.Delete("/meetings/{id}", meetingHandler.Delete)
		})
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("failed to write health check response", "error", err)
		}
	})

	return r
}
