package model

import "time"

// Sensor type classifications. These form a closed set; validation rejects
// anything else before it reaches the database enum.
const (
	SensorTypeTemperature = "temperature"
	SensorTypeHumidity    = "humidity"
	SensorTypePressure    = "pressure"
	SensorTypeLight       = "light"
	SensorTypeMotion      = "motion"
	SensorTypeGas         = "gas"
)

// Sensor operational statuses.
const (
	SensorStatusActive      = "active"
	SensorStatusInactive    = "inactive"
	SensorStatusMaintenance = "maintenance"
)

// SensorTypes and SensorStatuses enumerate the valid enum values in a form
// the validation layer can iterate.
var (
	SensorTypes    = []string{SensorTypeTemperature, SensorTypeHumidity, SensorTypePressure, SensorTypeLight, SensorTypeMotion, SensorTypeGas}
	SensorStatuses = []string{SensorStatusActive, SensorStatusInactive, SensorStatusMaintenance}
)

// Sensor represents an IoT sensor device as stored in the `sensors` table.
// Name is unique across all sensors; the uniqueness is enforced by the
// schema, not application code. The JSON tags mirror the public API field
// names used by the dashboard.
//
// Fields:
//
//	ID            – primary key identifier.
//	Name          – unique human-readable name (2–100 chars).
//	Type          – sensor classification (temperature, humidity, …).
//	Location      – physical placement description.
//	Status        – operational state, defaults to active.
//	Description   – optional free-text notes (nullable).
//	ReadingsCount – derived count of associated readings; only populated by
//	                the listing query, never stored.
//	Readings      – recent readings eager-loaded by the detail query.
//	CreatedAt     – timestamp of creation.
//	UpdatedAt     – timestamp of last update.
type Sensor struct {
	ID            uint64     `json:"id"`                      // sensors.id
	Name          string     `json:"name"`                    // sensors.name
	Type          string     `json:"type"`                    // sensors.type
	Location      string     `json:"location"`                // sensors.location
	Status        string     `json:"status"`                  // sensors.status
	Description   *string    `json:"description"`             // sensors.description (nullable)
	ReadingsCount *int64     `json:"readingsCount,omitempty"` // derived, list query only
	Readings      []*Reading `json:"readings,omitempty"`      // eager-loaded, detail query only
	CreatedAt     time.Time  `json:"createdAt"`               // sensors.created_at
	UpdatedAt     time.Time  `json:"updatedAt"`               // sensors.updated_at
}

// ValidSensorType reports whether t is one of the closed sensor type values.
func ValidSensorType(t string) bool {
	for _, v := range SensorTypes {
		if t == v {
			return true
		}
	}
	return false
}

// ValidSensorStatus reports whether s is one of the closed status values.
func ValidSensorStatus(s string) bool {
	for _, v := range SensorStatuses {
		if s == v {
			return true
		}
	}
	return false
}
