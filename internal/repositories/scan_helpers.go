package repositories

import (
	"database/sql"
	"time"
)

// rowScanner lets the same scan helpers serve QueryRow and Query results.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

type sqlNullString struct {
	sql.NullString
}

func (s sqlNullString) ptr() *string {
	if !s.Valid {
		return nil
	}
	v := s.String
	return &v
}

func timePtr(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}

func floatPtr(f sql.NullFloat64) *float64 {
	if !f.Valid {
		return nil
	}
	v := f.Float64
	return &v
}

func intPtr(n sql.NullInt64) *int {
	if !n.Valid {
		return nil
	}
	v := int(n.Int64)
	return &v
}
