package models

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrToiletNotFound  = errors.New("toilet not found")
	ErrWilayaNotFound  = errors.New("wilaya not found")
	ErrReviewNotFound  = errors.New("review not found")
	ErrReportNotFound  = errors.New("report not found")
	ErrSessionNotFound = errors.New("session not found")
	ErrUserNotFound    = errors.New("user not found")
	ErrPhotoNotFound   = errors.New("photo not found")

	ErrForbidden    = errors.New("forbidden")
	ErrSessionEnded = errors.New("session already ended")

	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrDuplicateEmail     = errors.New("duplicate email")
)

// ValidationError carries every offending field at once so the client can
// fix a whole form in one round-trip instead of replaying the request per
// field.
type ValidationError struct {
	Fields map[string][]string
}

func NewValidationError() *ValidationError {
	return &ValidationError{Fields: map[string][]string{}}
}

func (e *ValidationError) Add(field, msg string) {
	e.Fields[field] = append(e.Fields[field], msg)
}

func (e *ValidationError) HasErrors() bool {
	return len(e.Fields) > 0
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		names = append(names, f)
	}
	sort.Strings(names)
	return fmt.Sprintf("validation failed: %s", strings.Join(names, ", "))
}
