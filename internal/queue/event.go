// Package queue defines message payloads exchanged over the message broker
// and the background consumer that processes them.
package queue

// ReadingRecordedEvent is published after a reading is successfully stored.
// It carries enough information for downstream consumers to log or feed
// analytics without querying the primary database.
type ReadingRecordedEvent struct {
	ReadingID  uint64  `json:"reading_id"`
	SensorID   uint64  `json:"sensor_id"`
	Value      float64 `json:"value"`
	Unit       string  `json:"unit"`
	Timestamp  string  `json:"timestamp"`
	RecordedAt string  `json:"recorded_at"`
}
