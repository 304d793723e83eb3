// Package validate performs field-level constraint checks for the API
// entities. Each check function inspects a candidate payload and returns
// every violation it finds rather than stopping at the first, so a client
// can fix a whole request in one round trip. Uniqueness is deliberately not
// checked here; that belongs to the storage layer where it is race-free.
package validate

import (
	"math"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/iliyamo/iot-telemetry/internal/model"
)

// FieldError describes a single violated constraint: the offending field,
// a human-readable message, and the rejected value.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Value   any    `json:"value,omitempty"`
}

// emailRe accepts the usual local@domain.tld shape. Full RFC 5322 parsing
// is overkill for a login identifier.
var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Sensor validates a sensor creation payload. Status may be empty (the
// caller defaults it to active) but any supplied value must be in the
// closed set.
func Sensor(name, sensorType, location, status string) []FieldError {
	var errs []FieldError
	name = strings.TrimSpace(name)
	if n := utf8.RuneCountInString(name); n < 2 || n > 100 {
		errs = append(errs, FieldError{Field: "name", Message: "Sensor name must be between 2 and 100 characters", Value: name})
	}
	if !model.ValidSensorType(sensorType) {
		errs = append(errs, FieldError{Field: "type", Message: "Invalid sensor type", Value: sensorType})
	}
	location = strings.TrimSpace(location)
	if location == "" || utf8.RuneCountInString(location) > 255 {
		errs = append(errs, FieldError{Field: "location", Message: "Location must be a non-empty string of at most 255 characters", Value: location})
	}
	if status != "" && !model.ValidSensorStatus(status) {
		errs = append(errs, FieldError{Field: "status", Message: "Invalid sensor status", Value: status})
	}
	return errs
}

// Reading validates a reading creation payload. A nil value means the
// field was absent from the request; NaN and infinities are rejected so a
// non-finite number can never be persisted.
func Reading(value *float64, unit string, sensorID uint64) []FieldError {
	var errs []FieldError
	if value == nil {
		errs = append(errs, FieldError{Field: "value", Message: "Value is required"})
	} else if math.IsNaN(*value) || math.IsInf(*value, 0) {
		errs = append(errs, FieldError{Field: "value", Message: "Value must be a finite number", Value: *value})
	}
	unit = strings.TrimSpace(unit)
	if unit == "" || utf8.RuneCountInString(unit) > 20 {
		errs = append(errs, FieldError{Field: "unit", Message: "Unit must be a non-empty string of at most 20 characters", Value: unit})
	}
	if sensorID == 0 {
		errs = append(errs, FieldError{Field: "sensorId", Message: "Sensor ID is required"})
	}
	return errs
}

// Registration validates a new account payload. The password length check
// applies to the plaintext before hashing.
func Registration(name, email, password string) []FieldError {
	var errs []FieldError
	name = strings.TrimSpace(name)
	if n := utf8.RuneCountInString(name); n < 2 || n > 100 {
		errs = append(errs, FieldError{Field: "name", Message: "Name must be between 2 and 100 characters", Value: name})
	}
	email = strings.TrimSpace(email)
	if email == "" || len(email) > 255 || !emailRe.MatchString(email) {
		errs = append(errs, FieldError{Field: "email", Message: "Must be a valid email address", Value: email})
	}
	if len(password) < 6 {
		errs = append(errs, FieldError{Field: "password", Message: "Password must be at least 6 characters"})
	}
	return errs
}
