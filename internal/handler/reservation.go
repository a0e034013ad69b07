package handler

import (
	"context"  // context with cancellation for collaborator calls
	"errors"   // sentinel error matching
	"net/http" // HTTP status codes and primitives
	"time"     // timeouts for collaborator calls

	"github.com/labstack/echo/v4" // Echo framework for HTTP routing

	"github.com/openfab/reservation-server/internal/service" // lifecycle controller
)

// Collaborator calls (store, gate, dispatcher) are bounded by this timeout
// so a hung backend cannot stall a request indefinitely.
const requestTimeout = 5 * time.Second

// ReservationHandler bundles dependencies for the public reservation
// endpoints: the availability listing and reservation creation.
type ReservationHandler struct {
	Reservations *service.ReservationService
}

func NewReservationHandler(s *service.ReservationService) *ReservationHandler {
	return &ReservationHandler{Reservations: s}
}

// ----- DTOs -----

// createReq is the explicit request body for reservation creation. Hours
// must arrive as JSON integers; a malformed body fails binding and is
// rejected with 400 before any collaborator is called.
type createReq struct {
	Name           string   `json:"nom"`
	Institution    string   `json:"etablissement"`
	Phone          string   `json:"telephone"`
	Email          string   `json:"email"`
	Spaces         []string `json:"spaces"`
	Date           string   `json:"date"`
	StartHour      int      `json:"startHour"`
	EndHour        int      `json:"endHour"`
	Note           string   `json:"note"`
	TurnstileToken string   `json:"turnstileToken"`
}

type createResp struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

// ListAvailability returns the approved reservations as occupancy slots for
// the public frontend. Pending and denied records never appear here.
func (h *ReservationHandler) ListAvailability(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), requestTimeout)
	defer cancel()

	slots, err := h.Reservations.Availability(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Internal Server Error"})
	}
	return c.JSON(http.StatusOK, slots)
}

// Create accepts a reservation request and runs the full request
// transition: bot check, validation, persistence, notifications. Error
// responses mirror the lifecycle taxonomy; notification failures never
// surface here.
func (h *ReservationHandler) Create(c echo.Context) error {
	var req createReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), requestTimeout)
	defer cancel()

	res, err := h.Reservations.Create(ctx, service.CreateInput{
		Name:        req.Name,
		Institution: req.Institution,
		Phone:       req.Phone,
		Email:       req.Email,
		Date:        req.Date,
		StartHour:   req.StartHour,
		EndHour:     req.EndHour,
		Spaces:      req.Spaces,
		Note:        req.Note,
		Token:       req.TurnstileToken,
		RemoteIP:    c.RealIP(),
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSecurityCheckMissing):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "Vérification de sécurité requise"})
		case errors.Is(err, service.ErrSecurityCheckFailed):
			return c.JSON(http.StatusForbidden, echo.Map{"error": "Échec de la vérification de sécurité. Veuillez réessayer."})
		case errors.Is(err, service.ErrValidation):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "Missing required fields"})
		default:
			return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "Internal Server Error"})
		}
	}

	return c.JSON(http.StatusCreated, createResp{ID: res.ID, Message: "Reservation created successfully"})
}
