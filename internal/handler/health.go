package handler // declare the package name; contains HTTP handlers

import (
	"net/http" // net/http provides status codes and response helpers

	"github.com/labstack/echo/v4" // echo is the web framework used for this project
)

// Ping is a lightweight keep-alive endpoint. Free-tier hosts put the
// process to sleep when idle; the frontend calls this to wake it up before
// submitting a reservation. Monitoring systems use it as a health probe.
func Ping(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"status": "ok", "message": "Server is awake"})
}
