// Package validation rejects bad input before any storage write happens.
package validation

import (
	"fmt"
	"strings"
	"time"
)

const DateLayout = "2006-01-02"

// Error marks input rejected before reaching storage. Callers can map it
// to a 400-class response or a usage message.
type Error struct {
	Field   string
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

func Errorf(field, format string, args ...any) *Error {
	return &Error{Field: field, Message: fmt.Sprintf(format, args...)}
}

// RequireName checks a habit name is non-empty after trimming.
func RequireName(name string) error {
	if strings.TrimSpace(name) == "" {
		return Errorf("name", "must not be empty")
	}
	return nil
}

// RequireDate checks a YYYY-MM-DD string parses and is not in the future
// relative to now.
func RequireDate(s string, now time.Time) error {
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		return Errorf("date", "%q is not a valid YYYY-MM-DD date", s)
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if d.After(today) {
		return Errorf("date", "%s is in the future", s)
	}
	return nil
}

// RequirePositive checks a goal or count is at least 1.
func RequirePositive(field string, n int) error {
	if n < 1 {
		return Errorf(field, "must be positive, got %d", n)
	}
	return nil
}

// RequireNonNegative checks a measured value is not below zero.
func RequireNonNegative(field string, n int) error {
	if n < 0 {
		return Errorf(field, "must not be negative, got %d", n)
	}
	return nil
}
