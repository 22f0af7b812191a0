package insights

import (
	"testing"

	"github.com/julianstephens/tend/internal/kvstore"
)

func TestDismissalSticks(t *testing.T) {
	store := kvstore.NewMemory()
	svc := NewService(store)
	now := evalTime()

	active, err := svc.ActiveInsights(nil, now)
	if err != nil {
		t.Fatal(err)
	}
	if len(active) != 1 || active[0].ID != "tip-consistency" {
		t.Fatalf("expected the consistency tip, got %+v", active)
	}

	if err := svc.Dismiss("tip-consistency"); err != nil {
		t.Fatal(err)
	}

	active, err = svc.ActiveInsights(nil, now)
	if err != nil {
		t.Fatal(err)
	}
	if len(active) != 0 {
		t.Errorf("expected no insights after dismissal, got %d", len(active))
	}

	// A later pass with a different clock still honors the dismissal.
	active, err = svc.ActiveInsights(nil, now.AddDate(0, 0, 3))
	if err != nil {
		t.Fatal(err)
	}
	if len(active) != 0 {
		t.Errorf("dismissal must survive regeneration, got %d insights", len(active))
	}

	// And a fresh service over the same store sees it too.
	active, err = NewService(store).ActiveInsights(nil, now)
	if err != nil {
		t.Fatal(err)
	}
	if len(active) != 0 {
		t.Errorf("dismissal must be persisted, got %d insights", len(active))
	}
}

func TestDismissIsIdempotent(t *testing.T) {
	svc := NewService(kvstore.NewMemory())

	if err := svc.Dismiss("tip-consistency"); err != nil {
		t.Fatal(err)
	}
	if err := svc.Dismiss("tip-consistency"); err != nil {
		t.Fatal(err)
	}
}

func TestClearDismissed(t *testing.T) {
	svc := NewService(kvstore.NewMemory())
	now := evalTime()

	if err := svc.Dismiss("tip-consistency"); err != nil {
		t.Fatal(err)
	}
	if err := svc.ClearDismissed(); err != nil {
		t.Fatal(err)
	}

	active, err := svc.ActiveInsights(nil, now)
	if err != nil {
		t.Fatal(err)
	}
	if len(active) != 1 {
		t.Errorf("expected the tip back after clearing dismissals, got %d", len(active))
	}
}
