package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/iot-telemetry/internal/model"
	"github.com/iliyamo/iot-telemetry/internal/queue"
	"github.com/iliyamo/iot-telemetry/internal/repository"
	queue_publisher "github.com/iliyamo/iot-telemetry/internal/service"
	"github.com/iliyamo/iot-telemetry/internal/validate"
)

// ReadingHandler bundles dependencies for the reading endpoints.
type ReadingHandler struct {
	Readings *repository.ReadingRepo
	// PublishEvents controls whether a reading.recorded event is emitted
	// after each successful insert. Disabled when no broker is configured.
	PublishEvents bool
}

func NewReadingHandler(r *repository.ReadingRepo, publish bool) *ReadingHandler {
	return &ReadingHandler{Readings: r, PublishEvents: publish}
}

type createReadingReq struct {
	SensorID  uint64     `json:"sensorId"`
	Value     *float64   `json:"value"`
	Unit      string     `json:"unit"`
	Timestamp *time.Time `json:"timestamp"`
}

// Create records a new reading. The referenced sensor must exist; an
// unknown id yields a descriptive 404, never a raw constraint violation.
// Caller-supplied timestamps are accepted as-is, including historical
// backfill; an omitted timestamp defaults to now.
func (h *ReadingHandler) Create(c echo.Context) error {
	var req createReadingReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if violations := validate.Reading(req.Value, req.Unit, req.SensorID); len(violations) > 0 {
		return validationError(c, violations)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	rd := &model.Reading{
		Value:    *req.Value,
		Unit:     req.Unit,
		SensorID: req.SensorID,
	}
	if req.Timestamp != nil {
		rd.Timestamp = *req.Timestamp
	}
	if err := h.Readings.Create(ctx, rd); err != nil {
		if errors.Is(err, repository.ErrSensorNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{
				"success": false,
				"message": fmt.Sprintf("Sensor with ID %d not found", req.SensorID),
			})
		}
		return internalError(c, "create reading", err)
	}

	if h.PublishEvents {
		// Best effort: a broker outage must not fail the write.
		_ = queue_publisher.PublishReadingRecorded(ctx, queue.ReadingRecordedEvent{
			ReadingID:  rd.ID,
			SensorID:   rd.SensorID,
			Value:      rd.Value,
			Unit:       rd.Unit,
			Timestamp:  rd.Timestamp.UTC().Format(time.RFC3339),
			RecordedAt: time.Now().UTC().Format(time.RFC3339),
		})
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"success": true,
		"message": "Reading recorded successfully",
		"data":    rd,
	})
}

// List searches readings with an optional sensor filter and clamped
// pagination. Non-numeric or out-of-range limit/offset values fall back to
// their defaults rather than erroring.
func (h *ReadingHandler) List(c echo.Context) error {
	f := repository.SearchFilter{}

	if s := c.QueryParam("sensorId"); s != "" {
		id, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return validationError(c, []validate.FieldError{
				{Field: "sensorId", Message: "Sensor ID must be a positive integer", Value: s},
			})
		}
		f.SensorID = &id
	}
	// Unparseable values stay 0 and take the defaults in Normalize.
	f.Limit, _ = strconv.Atoi(c.QueryParam("limit"))
	f.Offset, _ = strconv.Atoi(c.QueryParam("offset"))
	f.Normalize()

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	rows, total, err := h.Readings.Search(ctx, f)
	if err != nil {
		return internalError(c, "search readings", err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"total":   total,
		"limit":   f.Limit,
		"offset":  f.Offset,
		"data":    rows,
	})
}
