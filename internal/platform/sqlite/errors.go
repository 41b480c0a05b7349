package sqlite

import (
	"errors"

	sqlite3 "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"
)

// isUniqueViolation checks if the given error is a SQLite unique constraint
// violation. This is used to detect when an operation fails due to a unique
// index, such as duplicate user emails or a second pending request for the
// same mentor/mentee pair.
func isUniqueViolation(err error) bool {
	var sqlErr *sqlite3.Error
	if errors.As(err, &sqlErr) {
		switch sqlErr.Code() {
		case sqlite3lib.SQLITE_CONSTRAINT_UNIQUE, sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY:
			return true
		}
	}
	return false
}

// isForeignKeyViolation checks if the given error is a SQLite foreign key
// constraint violation, e.g. creating a reminder for a meeting that does
// not exist.
func isForeignKeyViolation(err error) bool {
	var sqlErr *sqlite3.Error
	if errors.As(err, &sqlErr) {
		return sqlErr.Code() == sqlite3lib.SQLITE_CONSTRAINT_FOREIGNKEY
	}
	return false
}
