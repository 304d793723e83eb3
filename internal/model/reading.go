package model

import "time"

// Reading represents a single measurement captured by a sensor, stored in
// the `readings` table. Many readings belong to one sensor and are removed
// with it when the sensor is deleted.
//
// Fields:
//
//	ID        – primary key identifier.
//	Value     – the measured value (e.g. 23.5 for a temperature reading).
//	Unit      – unit of measurement ("°C", "%", "hPa", "lux", …).
//	Timestamp – when the reading was captured; defaults to insert time.
//	SensorID  – foreign key referencing sensors.id.
//	Sensor    – minimal projection of the parent sensor, attached only by
//	            the reading search query.
//	CreatedAt – timestamp of row creation.
//	UpdatedAt – timestamp of last update.
type Reading struct {
	ID        uint64       `json:"id"`               // readings.id
	Value     float64      `json:"value"`            // readings.value
	Unit      string       `json:"unit"`             // readings.unit
	Timestamp time.Time    `json:"timestamp"`        // readings.timestamp
	SensorID  uint64       `json:"sensorId"`         // readings.sensor_id
	Sensor    *SensorBrief `json:"sensor,omitempty"` // joined parent projection
	CreatedAt time.Time    `json:"createdAt"`        // readings.created_at
	UpdatedAt time.Time    `json:"updatedAt"`        // readings.updated_at
}

// SensorBrief is the nested sensor projection returned with reading search
// results. It deliberately exposes nothing beyond id, name and type.
type SensorBrief struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}
