package sqlconfig

import (
	"errors"
	"strings"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// ErrNoRowsAffected is returned by writers when the targeted row does not exist.
var ErrNoRowsAffected = errors.New("no rows affected")

// IsUniqueViolation reports whether err is a primary-key or unique
// constraint failure raised by the sqlite driver.
func IsUniqueViolation(err error) bool {
	return constraintViolation(err, "UNIQUE constraint failed",
		sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3.SQLITE_CONSTRAINT_UNIQUE)
}

// IsForeignKeyViolation reports whether err is a foreign key failure.
func IsForeignKeyViolation(err error) bool {
	return constraintViolation(err, "FOREIGN KEY constraint failed",
		sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY)
}

func constraintViolation(err error, message string, extendedCodes ...int) bool {
	var sqliteErr *sqlite.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	code := sqliteErr.Code()
	for _, c := range extendedCodes {
		if code == c {
			return true
		}
	}
	// Without extended result codes only the primary code is reported.
	return code&0xff == sqlite3.SQLITE_CONSTRAINT && strings.Contains(sqliteErr.Error(), message)
}
