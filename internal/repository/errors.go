// Package repository contains data access logic separated from HTTP
// handlers. This file defines sentinel error values shared across the
// repositories so higher layers can distinguish failure scenarios without
// inspecting driver-level errors: duplicates map to HTTP 409, missing
// entities to 404, everything else to 500.
package repository

import (
	"errors"

	"github.com/go-sql-driver/mysql"
)

// ErrSensorNotFound is returned when a sensor id does not exist, both on
// direct lookups and when creating a reading that references it.
var ErrSensorNotFound = errors.New("sensor not found")

// ErrSensorNameExists is returned when inserting a sensor whose name
// collides with an existing row. The unique key on sensors.name is the
// authority; under concurrent creation exactly one insert wins.
var ErrSensorNameExists = errors.New("sensor name already exists")

// ErrEmailExists is returned when registering a user with an email that is
// already taken.
var ErrEmailExists = errors.New("email already exists")

// MySQL server error numbers the repositories care about.
const (
	mysqlErrDuplicateEntry  = 1062 // ER_DUP_ENTRY
	mysqlErrNoReferencedRow = 1452 // ER_NO_REFERENCED_ROW_2
)

// isDuplicateEntry reports whether err is a unique-constraint violation.
func isDuplicateEntry(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == mysqlErrDuplicateEntry
}

// isForeignKeyViolation reports whether err is a failed foreign-key check.
func isForeignKeyViolation(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == mysqlErrNoReferencedRow
}
