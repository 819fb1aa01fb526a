package repository

import (
	"database/sql"
	"strings"
	"time"
)

// nullableString converts a sql.NullString to a *string.
func nullableString(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	v := s.String
	return &v
}

// stringPtrToValue returns nil (SQL NULL) for a nil pointer.
func stringPtrToValue(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

func parseTimestamp(s string) (time.Time, error) {
	return time.Parse(time.RFC3339, s)
}

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// nowUTC returns the current UTC time formatted as RFC3339.
func nowUTC() string {
	return formatTimestamp(time.Now())
}

// isUniqueViolation matches SQLite's UNIQUE constraint error text; the
// driver does not export a typed error for it.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
