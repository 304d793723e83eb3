package database

import (
	"context"
	"database/sql"
)

// schemaStatements creates the three tables the API depends on. Uniqueness
// of sensors.name and users.email lives in the schema so concurrent inserts
// cannot both succeed, and the readings foreign key cascades on delete and
// on key update so a sensor never leaves orphaned readings behind. The
// composite (sensor_id, timestamp) index serves the recent-readings-per-
// sensor query without a full scan.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS sensors (
		id          INT UNSIGNED NOT NULL AUTO_INCREMENT,
		name        VARCHAR(100) NOT NULL,
		type        ENUM('temperature','humidity','pressure','light','motion','gas') NOT NULL,
		location    VARCHAR(255) NOT NULL,
		status      ENUM('active','inactive','maintenance') NOT NULL DEFAULT 'active',
		description TEXT NULL,
		created_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		UNIQUE KEY uq_sensors_name (name)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS readings (
		id         INT UNSIGNED NOT NULL AUTO_INCREMENT,
		value      DOUBLE NOT NULL,
		unit       VARCHAR(20) NOT NULL,
		timestamp  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		sensor_id  INT UNSIGNED NOT NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		KEY ix_readings_sensor (sensor_id),
		KEY ix_readings_timestamp (timestamp),
		KEY ix_readings_sensor_timestamp (sensor_id, timestamp),
		CONSTRAINT fk_readings_sensor FOREIGN KEY (sensor_id)
			REFERENCES sensors (id) ON DELETE CASCADE ON UPDATE CASCADE
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS users (
		id            INT UNSIGNED NOT NULL AUTO_INCREMENT,
		name          VARCHAR(100) NOT NULL,
		email         VARCHAR(255) NOT NULL,
		password_hash VARCHAR(255) NOT NULL,
		role          ENUM('admin','user') NOT NULL DEFAULT 'user',
		created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		UNIQUE KEY uq_users_email (email)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

// EnsureSchema creates any missing tables. It is idempotent and intended to
// run once at startup; it is not a migration system and never alters
// existing tables.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
