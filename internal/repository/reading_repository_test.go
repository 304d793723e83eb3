package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"

	"github.com/iliyamo/iot-telemetry/internal/model"
)

func newReadingRepoWithMock(t *testing.T) (*ReadingRepo, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewReadingRepo(db), mock, db
}

func TestReadingCreate_UnknownSensor(t *testing.T) {
	repo, mock, db := newReadingRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT id FROM sensors WHERE id`).
		WithArgs(uint64(404)).
		WillReturnError(sql.ErrNoRows)

	rd := &model.Reading{Value: 23.5, Unit: "°C", SensorID: 404}
	err := repo.Create(context.Background(), rd)
	if !errors.Is(err, ErrSensorNotFound) {
		t.Fatalf("expected ErrSensorNotFound, got %v", err)
	}
}

func TestReadingCreate_Success(t *testing.T) {
	repo, mock, db := newReadingRepoWithMock(t)
	defer db.Close()

	now := time.Now().UTC()
	mock.ExpectQuery(`SELECT id FROM sensors WHERE id`).
		WithArgs(uint64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(5))
	mock.ExpectExec(`INSERT INTO readings \(value, unit, timestamp, sensor_id\)`).
		WithArgs(23.5, "°C", sqlmock.AnyArg(), uint64(5)).
		WillReturnResult(sqlmock.NewResult(31, 1))
	mock.ExpectQuery(`SELECT timestamp, created_at, updated_at FROM readings WHERE id`).
		WithArgs(uint64(31)).
		WillReturnRows(sqlmock.NewRows([]string{"timestamp", "created_at", "updated_at"}).
			AddRow(now, now, now))

	rd := &model.Reading{Value: 23.5, Unit: "°C", SensorID: 5}
	if err := repo.Create(context.Background(), rd); err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if rd.ID != 31 {
		t.Fatalf("id not populated: %+v", rd)
	}
	if rd.Timestamp.IsZero() {
		t.Fatalf("timestamp not defaulted: %+v", rd)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestReadingCreate_ForeignKeyBackstop(t *testing.T) {
	repo, mock, db := newReadingRepoWithMock(t)
	defer db.Close()

	// Sensor existed at check time but was deleted before the insert; the
	// FK violation still maps to the same sentinel.
	mock.ExpectQuery(`SELECT id FROM sensors WHERE id`).
		WithArgs(uint64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(5))
	mock.ExpectExec(`INSERT INTO readings`).
		WillReturnError(&mysql.MySQLError{Number: 1452, Message: "a foreign key constraint fails"})

	rd := &model.Reading{Value: 1, Unit: "ppm", SensorID: 5}
	err := repo.Create(context.Background(), rd)
	if !errors.Is(err, ErrSensorNotFound) {
		t.Fatalf("expected ErrSensorNotFound, got %v", err)
	}
}

func TestReadingSearch_FilteredAndPaginated(t *testing.T) {
	repo, mock, db := newReadingRepoWithMock(t)
	defer db.Close()

	now := time.Now().UTC()
	sensorID := uint64(5)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM readings r WHERE r\.sensor_id = \?`).
		WithArgs(sensorID).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(123))
	mock.ExpectQuery(`JOIN sensors s ON s\.id = r\.sensor_id`).
		WithArgs(sensorID, 2, 10).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "value", "unit", "timestamp", "sensor_id", "created_at", "updated_at",
			"s_id", "s_name", "s_type",
		}).
			AddRow(42, 23.5, "°C", now, 5, now, now, 5, "Lab", "temperature").
			AddRow(41, 22.1, "°C", now.Add(-time.Minute), 5, now, now, 5, "Lab", "temperature"))

	rows, total, err := repo.Search(context.Background(), SearchFilter{SensorID: &sensorID, Limit: 2, Offset: 10})
	if err != nil {
		t.Fatalf("Search error: %v", err)
	}
	if total != 123 {
		t.Fatalf("total: got %d want 123", total)
	}
	if len(rows) != 2 {
		t.Fatalf("rows: got %d want 2", len(rows))
	}
	if rows[0].Sensor == nil || rows[0].Sensor.Name != "Lab" || rows[0].Sensor.Type != "temperature" {
		t.Fatalf("sensor projection missing: %+v", rows[0].Sensor)
	}
	if rows[0].ID != 42 || rows[1].ID != 41 {
		t.Fatalf("rows not newest-first: %d, %d", rows[0].ID, rows[1].ID)
	}
}

func TestReadingSearch_UnfilteredDefaults(t *testing.T) {
	repo, mock, db := newReadingRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM readings r WHERE 1=1`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(`JOIN sensors s ON s\.id = r\.sensor_id`).
		WithArgs(defaultSearchLimit, 0).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "value", "unit", "timestamp", "sensor_id", "created_at", "updated_at",
			"s_id", "s_name", "s_type",
		}))

	rows, total, err := repo.Search(context.Background(), SearchFilter{})
	if err != nil {
		t.Fatalf("Search error: %v", err)
	}
	if total != 0 || len(rows) != 0 {
		t.Fatalf("expected empty page with zero total, got total=%d rows=%d", total, len(rows))
	}
}

func TestReadingBulkInsert_AllOrNothing(t *testing.T) {
	repo, mock, db := newReadingRepoWithMock(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectPrepare(`INSERT INTO readings \(value, unit, timestamp, sensor_id\)`)
	mock.ExpectExec(`INSERT INTO readings`).
		WithArgs(1.0, "°C", sqlmock.AnyArg(), uint64(1)).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(`INSERT INTO readings`).
		WithArgs(2.0, "°C", sqlmock.AnyArg(), uint64(999)).
		WillReturnError(&mysql.MySQLError{Number: 1452, Message: "a foreign key constraint fails"})
	mock.ExpectRollback()

	batch := []*model.Reading{
		{Value: 1.0, Unit: "°C", SensorID: 1},
		{Value: 2.0, Unit: "°C", SensorID: 999},
	}
	err := repo.BulkInsert(context.Background(), batch)
	if !errors.Is(err, ErrSensorNotFound) {
		t.Fatalf("expected ErrSensorNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestReadingBulkInsert_CommitsWholeBatch(t *testing.T) {
	repo, mock, db := newReadingRepoWithMock(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectPrepare(`INSERT INTO readings`)
	mock.ExpectExec(`INSERT INTO readings`).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(`INSERT INTO readings`).
		WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectCommit()

	batch := []*model.Reading{
		{Value: 1.0, Unit: "°C", SensorID: 1},
		{Value: 2.0, Unit: "°C", SensorID: 1},
	}
	if err := repo.BulkInsert(context.Background(), batch); err != nil {
		t.Fatalf("BulkInsert error: %v", err)
	}
	if batch[0].ID != 1 || batch[1].ID != 2 {
		t.Fatalf("ids not populated: %d, %d", batch[0].ID, batch[1].ID)
	}
}
