// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// services to distinguish between different failure scenarios without
// looking at driver specific errors. Driver errors are translated in
// one place (translate) so that both the MySQL and the in-memory
// implementations report the same values.
package repository

import (
	"database/sql"
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"
)

// ErrNotFound is returned when the requested row does not exist.
var ErrNotFound = errors.New("not found")

// ErrDuplicate is returned when an insert or update violates a unique
// constraint.  Use errors.As with *DuplicateError to learn which field.
var ErrDuplicate = errors.New("duplicate value")

// ErrReferenced is returned when a delete cannot be performed because
// other rows still reference the target (no cascade), or when an insert
// references a row that does not exist.
var ErrReferenced = errors.New("referenced by other records")

// MySQL server error numbers we translate.
const (
	mysqlDuplicateEntry  = 1062
	mysqlRowIsReferenced = 1451
	mysqlNoReferencedRow = 1452
)

// DuplicateError carries the field whose unique constraint was violated.
type DuplicateError struct {
	Field string
	Err   error
}

func (e *DuplicateError) Error() string {
	if e.Field == "" {
		return ErrDuplicate.Error()
	}
	return ErrDuplicate.Error() + ": " + e.Field
}

// Is makes errors.Is(err, ErrDuplicate) hold.
func (e *DuplicateError) Is(target error) bool { return target == ErrDuplicate }

func (e *DuplicateError) Unwrap() error { return e.Err }

// translate converts driver errors into the package sentinels.  Errors it
// does not recognise are returned unchanged.
func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		switch me.Number {
		case mysqlDuplicateEntry:
			return &DuplicateError{Field: duplicateField(me.Message), Err: err}
		case mysqlRowIsReferenced, mysqlNoReferencedRow:
			return ErrReferenced
		}
	}
	return err
}

// duplicateField extracts a field name from a MySQL duplicate entry
// message such as "Duplicate entry 'x' for key 'users.uq_users_phone'".
func duplicateField(msg string) string {
	i := strings.LastIndex(msg, "for key '")
	if i < 0 {
		return ""
	}
	key := strings.TrimSuffix(msg[i+len("for key '"):], "'")
	if j := strings.LastIndex(key, "."); j >= 0 {
		key = key[j+1:]
	}
	if j := strings.LastIndex(key, "_"); j >= 0 {
		key = key[j+1:]
	}
	return key
}
