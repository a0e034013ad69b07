package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"              // import the Echo web framework to handle routing
	echomw "github.com/labstack/echo/v4/middleware" // built-in middleware (CORS)

	"github.com/openfab/reservation-server/internal/handler"    // import the handlers that implement business logic
	"github.com/openfab/reservation-server/internal/middleware" // import middleware for admin authentication and rate limiting
)

// RegisterRoutes registers the public routes on the provided Echo instance.
// CORS is open so the frontend can call the API from its own origin; the
// limiter wraps only reservation creation, the single endpoint worth
// protecting from scripted floods.
func RegisterRoutes(e *echo.Echo, r *handler.ReservationHandler, limiter echo.MiddlewareFunc) {
	e.Use(echomw.CORS())

	// Lightweight wake/health endpoint, called by the frontend before
	// submitting a reservation and by monitoring probes.
	e.GET("/api/ping", handler.Ping)

	// Public availability: approved occupancy slots only.
	e.GET("/api/reservations", r.ListAvailability)
	// Reservation creation runs the full request transition (bot check,
	// validation, persistence, notifications).
	e.POST("/api/reservations", r.Create, limiter)
}

// RegisterAdmin registers the administrative routes. Login is open; the
// listing and decision endpoints require a valid admin bearer token issued
// by the login endpoint.
func RegisterAdmin(e *echo.Echo, a *handler.AdminHandler, jwtSecret string) {
	e.POST("/api/admin/login", a.Login)

	g := e.Group("/api/admin", middleware.AdminAuth(jwtSecret))
	// Full records including contact details, newest first.
	g.GET("/reservations", a.ListReservations)
	// Approve or deny a reservation and notify the requester.
	g.PUT("/reservations/:id/status", a.Decide)
}
