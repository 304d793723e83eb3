package repository

import (
	"context"      // context allows passing deadlines and cancellation signals to DB operations
	"database/sql" // sql provides generic database operations and drivers
	"errors"       // errors is used to match sentinel error values

	"github.com/iliyamo/iot-telemetry/internal/model"
)

// recentReadingsLimit caps the readings eager-loaded onto a single sensor
// by GetByID. The cap applies per sensor, never globally.
const recentReadingsLimit = 10

// SensorRepo encapsulates all database queries related to sensors. It
// depends on a sql.DB connection configured at startup.
type SensorRepo struct {
	db *sql.DB // db is the underlying database connection pool
}

// NewSensorRepo constructs a SensorRepo with the provided DB handle. This
// allows dependency injection of the database in tests and at startup.
func NewSensorRepo(db *sql.DB) *SensorRepo {
	return &SensorRepo{db: db}
}

// Create inserts a new sensor. On success the ID, Status and timestamp
// fields are populated from the stored row via a follow-up SELECT so the
// caller receives exactly what the database holds. A name collision with
// an existing sensor returns ErrSensorNameExists; the unique key decides
// the winner under concurrent creation.
func (r *SensorRepo) Create(ctx context.Context, s *model.Sensor) error {
	var desc sql.NullString
	if s.Description != nil {
		desc = sql.NullString{String: *s.Description, Valid: true}
	}
	const qInsert = "INSERT INTO sensors (name, type, location, status, description) VALUES (?, ?, ?, ?, ?)"
	res, err := r.db.ExecContext(ctx, qInsert, s.Name, s.Type, s.Location, s.Status, desc)
	if err != nil {
		if isDuplicateEntry(err) {
			return ErrSensorNameExists
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	s.ID = uint64(id)

	// Follow-up SELECT to populate server-managed fields (status default,
	// created_at, updated_at).
	const qSelect = "SELECT status, description, created_at, updated_at FROM sensors WHERE id = ?"
	if err := r.db.QueryRowContext(ctx, qSelect, s.ID).Scan(&s.Status, &desc, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return err
	}
	s.Description = nil
	if desc.Valid {
		s.Description = &desc.String
	}
	return nil
}

// ListWithCounts returns every sensor together with the count of its
// readings, newest-created sensor first. The count is a correlated
// subquery, so sensor rows are never duplicated and the readings
// themselves are never fetched.
func (r *SensorRepo) ListWithCounts(ctx context.Context) ([]*model.Sensor, error) {
	const q = `SELECT s.id, s.name, s.type, s.location, s.status, s.description,
	                  s.created_at, s.updated_at,
	                  (SELECT COUNT(*) FROM readings rd WHERE rd.sensor_id = s.id) AS readings_count
	           FROM sensors s
	           ORDER BY s.created_at DESC, s.id DESC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]*model.Sensor, 0)
	for rows.Next() {
		s := new(model.Sensor)
		var desc sql.NullString
		var count int64
		if err := rows.Scan(&s.ID, &s.Name, &s.Type, &s.Location, &s.Status, &desc,
			&s.CreatedAt, &s.UpdatedAt, &count); err != nil {
			return nil, err
		}
		if desc.Valid {
			s.Description = &desc.String
		}
		s.ReadingsCount = &count
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID fetches a sensor and eager-loads up to recentReadingsLimit of its
// readings, newest timestamp first. The readings come from a separate query
// against the (sensor_id, timestamp) index so the cap is applied per
// sensor. Returns ErrSensorNotFound if no sensor row exists.
func (r *SensorRepo) GetByID(ctx context.Context, id uint64) (*model.Sensor, error) {
	const q = `SELECT id, name, type, location, status, description, created_at, updated_at
	           FROM sensors WHERE id = ?`
	s := new(model.Sensor)
	var desc sql.NullString
	if err := r.db.QueryRowContext(ctx, q, id).Scan(&s.ID, &s.Name, &s.Type, &s.Location,
		&s.Status, &desc, &s.CreatedAt, &s.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSensorNotFound
		}
		return nil, err
	}
	if desc.Valid {
		s.Description = &desc.String
	}

	readings, err := r.recentReadings(ctx, id)
	if err != nil {
		return nil, err
	}
	s.Readings = readings
	return s, nil
}

// recentReadings loads the newest readings for one sensor, capped at
// recentReadingsLimit. Ties on timestamp break by id so the order is stable.
func (r *SensorRepo) recentReadings(ctx context.Context, sensorID uint64) ([]*model.Reading, error) {
	const q = `SELECT id, value, unit, timestamp, sensor_id, created_at, updated_at
	           FROM readings WHERE sensor_id = ?
	           ORDER BY timestamp DESC, id DESC LIMIT ?`
	rows, err := r.db.QueryContext(ctx, q, sensorID, recentReadingsLimit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]*model.Reading, 0, recentReadingsLimit)
	for rows.Next() {
		rd := new(model.Reading)
		if err := rows.Scan(&rd.ID, &rd.Value, &rd.Unit, &rd.Timestamp, &rd.SensorID,
			&rd.CreatedAt, &rd.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, rd)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Delete removes a sensor and all of its readings inside one transaction.
// The schema-level ON DELETE CASCADE already guarantees no orphans; the
// explicit readings delete keeps the cascade visible and effective even on
// databases restored without the constraint. Returns ErrSensorNotFound when
// the sensor does not exist.
func (r *SensorRepo) Delete(ctx context.Context, id uint64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		} else {
			_ = tx.Commit()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM readings WHERE sensor_id = ?`, id); err != nil {
		return err
	}
	var res sql.Result
	if res, err = tx.ExecContext(ctx, `DELETE FROM sensors WHERE id = ?`, id); err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		err = ErrSensorNotFound
		return err
	}
	return nil
}
