package handler

import (
	"context"  // provides context with cancellation for DB calls
	"errors"   // sentinel error matching
	"net/http" // HTTP status codes and primitives
	"strconv"  // path parameter parsing
	"time"     // timeouts for DB calls

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/iot-telemetry/internal/model"
	"github.com/iliyamo/iot-telemetry/internal/repository"
	"github.com/iliyamo/iot-telemetry/internal/validate"
)

// SensorHandler bundles dependencies for the sensor endpoints.
type SensorHandler struct {
	Sensors *repository.SensorRepo
}

func NewSensorHandler(s *repository.SensorRepo) *SensorHandler {
	return &SensorHandler{Sensors: s}
}

type createSensorReq struct {
	Name        string  `json:"name"`
	Type        string  `json:"type"`
	Location    string  `json:"location"`
	Status      string  `json:"status"`
	Description *string `json:"description"`
}

// List returns every sensor with its derived readings count, most recently
// created first.
func (h *SensorHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	sensors, err := h.Sensors.ListWithCounts(ctx)
	if err != nil {
		return internalError(c, "list sensors", err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"count":   len(sensors),
		"data":    sensors,
	})
}

// Create validates and stores a new sensor. All field violations are
// returned together; a name collision is a 409, distinct from validation
// failures.
func (h *SensorHandler) Create(c echo.Context) error {
	var req createSensorReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if violations := validate.Sensor(req.Name, req.Type, req.Location, req.Status); len(violations) > 0 {
		return validationError(c, violations)
	}
	if req.Status == "" {
		req.Status = model.SensorStatusActive
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	s := &model.Sensor{
		Name:        req.Name,
		Type:        req.Type,
		Location:    req.Location,
		Status:      req.Status,
		Description: req.Description,
	}
	if err := h.Sensors.Create(ctx, s); err != nil {
		if errors.Is(err, repository.ErrSensorNameExists) {
			return c.JSON(http.StatusConflict, echo.Map{
				"success": false,
				"message": "Duplicate Entry",
				"errors": []validate.FieldError{
					{Field: "name", Message: "Sensor name must be unique", Value: req.Name},
				},
			})
		}
		return internalError(c, "create sensor", err)
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"success": true,
		"message": "Sensor created successfully",
		"data":    s,
	})
}

// Get returns one sensor with up to ten of its most recent readings.
func (h *SensorHandler) Get(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return sensorNotFound(c)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	s, err := h.Sensors.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrSensorNotFound) {
			return sensorNotFound(c)
		}
		return internalError(c, "get sensor", err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    s,
	})
}

// Delete removes a sensor and, through the cascade, all of its readings.
// Restricted to admins at route registration.
func (h *SensorHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return sensorNotFound(c)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Sensors.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrSensorNotFound) {
			return sensorNotFound(c)
		}
		return internalError(c, "delete sensor", err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Sensor deleted successfully",
	})
}

func sensorNotFound(c echo.Context) error {
	return c.JSON(http.StatusNotFound, echo.Map{
		"success": false,
		"message": "Sensor not found",
	})
}
