package handler

// respond.go centralizes the failure envelope shared by all handlers:
// {success:false, message, errors?}. Unexpected errors are logged with full
// detail server-side while the client sees only a generic message.

import (
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/iot-telemetry/internal/validate"
)

func badRequest(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, echo.Map{
		"success": false,
		"message": msg,
	})
}

func validationError(c echo.Context, violations []validate.FieldError) error {
	return c.JSON(http.StatusBadRequest, echo.Map{
		"success": false,
		"message": "Validation Error",
		"errors":  violations,
	})
}

func internalError(c echo.Context, op string, err error) error {
	log.Printf("[ERROR] %s %s | %s: %v", c.Request().Method, c.Request().URL.Path, op, err)
	return c.JSON(http.StatusInternalServerError, echo.Map{
		"success": false,
		"message": "Internal Server Error",
	})
}
