package handler // declare the package name; contains HTTP handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Health is a simple health-check endpoint used by load balancers and
// monitoring systems to verify that the service is running.
func Health(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"status":  "ok",
	})
}

// Root describes the API surface for anyone hitting the bare host.
func Root(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"message": "IoT Telemetry API",
		"endpoints": echo.Map{
			"health":     "GET /api/health",
			"sensors":    "GET|POST /api/sensors",
			"sensorById": "GET|DELETE /api/sensors/:id",
			"readings":   "GET|POST /api/readings",
			"register":   "POST /api/auth/register",
			"login":      "POST /api/auth/login",
		},
	})
}
