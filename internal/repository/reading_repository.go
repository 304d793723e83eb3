package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/iliyamo/iot-telemetry/internal/model"
)

// Reading search pagination bounds. A requested limit is clamped into
// [1, maxSearchLimit]; absent or unusable values fall back to
// defaultSearchLimit.
const (
	defaultSearchLimit = 50
	maxSearchLimit     = 500
)

// ReadingRepo encapsulates all database queries related to readings.
type ReadingRepo struct {
	db *sql.DB
}

// NewReadingRepo constructs a ReadingRepo with the provided DB handle.
func NewReadingRepo(db *sql.DB) *ReadingRepo {
	return &ReadingRepo{db: db}
}

// Create inserts a new reading. The referenced sensor is looked up first so
// an unknown sensor id yields ErrSensorNotFound instead of a raw constraint
// violation; the foreign key remains the real guarantee and a concurrent
// sensor delete between the check and the insert surfaces as the same
// error. A zero Timestamp defaults to the current time.
func (r *ReadingRepo) Create(ctx context.Context, rd *model.Reading) error {
	var exists uint64
	err := r.db.QueryRowContext(ctx, "SELECT id FROM sensors WHERE id = ? LIMIT 1", rd.SensorID).Scan(&exists)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrSensorNotFound
		}
		return err
	}

	if rd.Timestamp.IsZero() {
		rd.Timestamp = time.Now().UTC()
	}

	const qInsert = "INSERT INTO readings (value, unit, timestamp, sensor_id) VALUES (?, ?, ?, ?)"
	res, err := r.db.ExecContext(ctx, qInsert, rd.Value, rd.Unit, rd.Timestamp, rd.SensorID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return ErrSensorNotFound
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	rd.ID = uint64(id)

	const qSelect = "SELECT timestamp, created_at, updated_at FROM readings WHERE id = ?"
	return r.db.QueryRowContext(ctx, qSelect, rd.ID).Scan(&rd.Timestamp, &rd.CreatedAt, &rd.UpdatedAt)
}

// SearchFilter defines the optional filters and pagination for a reading
// search. Each field is independently optional; the repository translates
// the set fields into a storage predicate.
type SearchFilter struct {
	SensorID *uint64 // exact match on readings.sensor_id when set
	Limit    int     // requested page size; normalized before use
	Offset   int     // rows to skip; negative values are treated as 0
}

// Normalize clamps the pagination values into their safe ranges: limit
// into [1, 500] with 50 as the default for absent or non-positive values,
// offset to a non-negative number. A limit of 0 or less never means
// "zero rows".
func (f *SearchFilter) Normalize() {
	if f.Limit <= 0 {
		f.Limit = defaultSearchLimit
	}
	if f.Limit > maxSearchLimit {
		f.Limit = maxSearchLimit
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
}

// Search returns the page of readings matching the filter, newest timestamp
// first, plus the total number of matching rows regardless of pagination so
// callers can compute page counts. Each row carries a minimal projection of
// its parent sensor (id, name, type). An offset past the end yields an
// empty page with the correct total.
func (r *ReadingRepo) Search(ctx context.Context, f SearchFilter) ([]*model.Reading, int64, error) {
	f.Normalize()

	where := []string{}
	args := []any{}
	if f.SensorID != nil {
		where = append(where, "r.sensor_id = ?")
		args = append(args, *f.SensorID)
	}
	cond := "1=1"
	if len(where) > 0 {
		cond = strings.Join(where, " AND ")
	}

	var total int64
	countSQL := `SELECT COUNT(*) FROM readings r WHERE ` + cond
	if err := r.db.QueryRowContext(ctx, countSQL, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	dataSQL := `SELECT
			r.id, r.value, r.unit, r.timestamp, r.sensor_id, r.created_at, r.updated_at,
			s.id, s.name, s.type
		FROM readings r
		JOIN sensors s ON s.id = r.sensor_id
		WHERE ` + cond + `
		ORDER BY r.timestamp DESC, r.id DESC
		LIMIT ? OFFSET ?`
	argsData := append(append([]any{}, args...), f.Limit, f.Offset)

	rows, err := r.db.QueryContext(ctx, dataSQL, argsData...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]*model.Reading, 0, f.Limit)
	for rows.Next() {
		rd := new(model.Reading)
		br := new(model.SensorBrief)
		if err := rows.Scan(&rd.ID, &rd.Value, &rd.Unit, &rd.Timestamp, &rd.SensorID,
			&rd.CreatedAt, &rd.UpdatedAt, &br.ID, &br.Name, &br.Type); err != nil {
			return nil, 0, err
		}
		rd.Sensor = br
		out = append(out, rd)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// BulkInsert stores a batch of readings inside a single transaction: either
// every row commits or none do. Used by the seeder and batch ingestion.
func (r *ReadingRepo) BulkInsert(ctx context.Context, batch []*model.Reading) (err error) {
	if len(batch) == 0 {
		return nil
	}
	var tx *sql.Tx
	tx, err = r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()

	const q = "INSERT INTO readings (value, unit, timestamp, sensor_id) VALUES (?, ?, ?, ?)"
	stmt, err := tx.PrepareContext(ctx, q)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, rd := range batch {
		ts := rd.Timestamp
		if ts.IsZero() {
			ts = time.Now().UTC()
		}
		var res sql.Result
		if res, err = stmt.ExecContext(ctx, rd.Value, rd.Unit, ts, rd.SensorID); err != nil {
			if isForeignKeyViolation(err) {
				err = ErrSensorNotFound
			}
			return err
		}
		var id int64
		if id, err = res.LastInsertId(); err != nil {
			return err
		}
		rd.ID = uint64(id)
		rd.Timestamp = ts
	}
	return nil
}
