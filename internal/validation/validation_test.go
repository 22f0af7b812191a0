package validation

import (
	"errors"
	"testing"
	"time"
)

func TestRequireName(t *testing.T) {
	if err := RequireName("Run"); err != nil {
		t.Errorf("expected valid name, got %v", err)
	}

	for _, bad := range []string{"", "   ", "\t"} {
		err := RequireName(bad)
		var verr *Error
		if !errors.As(err, &verr) {
			t.Errorf("expected a validation error for %q, got %v", bad, err)
			continue
		}
		if verr.Field != "name" {
			t.Errorf("expected field name, got %q", verr.Field)
		}
	}
}

func TestRequireDate(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	if err := RequireDate("2024-03-01", now); err != nil {
		t.Errorf("today should be valid, got %v", err)
	}
	if err := RequireDate("2024-02-15", now); err != nil {
		t.Errorf("a past date should be valid, got %v", err)
	}

	var verr *Error
	if err := RequireDate("03/01/2024", now); !errors.As(err, &verr) {
		t.Errorf("expected a validation error for a bad layout, got %v", err)
	}
	if err := RequireDate("2024-03-02", now); !errors.As(err, &verr) {
		t.Errorf("expected a validation error for a future date, got %v", err)
	}
}

func TestRequirePositiveAndNonNegative(t *testing.T) {
	if err := RequirePositive("goal", 1); err != nil {
		t.Errorf("expected 1 to be positive, got %v", err)
	}
	if err := RequirePositive("goal", 0); err == nil {
		t.Error("expected an error for zero")
	}

	if err := RequireNonNegative("steps", 0); err != nil {
		t.Errorf("expected 0 to be non-negative, got %v", err)
	}
	if err := RequireNonNegative("steps", -1); err == nil {
		t.Error("expected an error for a negative value")
	}
}
