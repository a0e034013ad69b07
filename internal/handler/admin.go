package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/openfab/reservation-server/internal/service"
)

// AdminHandler bundles dependencies for the administrative endpoints:
// login, the full reservation listing and the approve/deny decision.
type AdminHandler struct {
	Admins       *service.AdminService
	Reservations *service.ReservationService
}

func NewAdminHandler(a *service.AdminService, r *service.ReservationService) *AdminHandler {
	return &AdminHandler{Admins: a, Reservations: r}
}

// ----- DTOs -----

type loginReq struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type loginResp struct {
	Token   string `json:"token"`
	Success bool   `json:"success"`
}

type decideReq struct {
	Status     string `json:"status" validate:"required"`
	Suggestion string `json:"suggestion"`
}

// Login authenticates the seeded administrator account and returns a
// signed bearer token for the protected routes.
func (h *AdminHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "username/password required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), requestTimeout)
	defer cancel()

	token, _, err := h.Admins.Login(ctx, req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Invalid credentials"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Internal Server Error"})
	}
	return c.JSON(http.StatusOK, loginResp{Token: token, Success: true})
}

// ListReservations returns every reservation with full contact details,
// newest first. Only reachable through the admin auth middleware.
func (h *AdminHandler) ListReservations(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), requestTimeout)
	defer cancel()

	all, err := h.Reservations.ListAll(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Internal Server Error"})
	}
	return c.JSON(http.StatusOK, all)
}

// Decide applies an approve/deny decision to the reservation named in the
// path and triggers the decision notification.
func (h *AdminHandler) Decide(c echo.Context) error {
	id := c.Param("id")

	var req decideReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid status"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), requestTimeout)
	defer cancel()

	if err := h.Reservations.Decide(ctx, id, req.Status, req.Suggestion); err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid status"})
		case errors.Is(err, service.ErrNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Reservation not found"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Internal Server Error"})
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"message": fmt.Sprintf("Reservation %s successfully", req.Status)})
}
