package kvstore

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestMemoryStore(t *testing.T) {
	store := NewMemory()

	_, ok, err := store.Get("missing")
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Error("expected missing key to report ok=false")
	}

	if err := store.Set("k", "v1"); err != nil {
		t.Fatal(err)
	}
	if err := store.Set("k", "v2"); err != nil {
		t.Fatal(err)
	}

	got, ok, err := store.Get("k")
	if err != nil {
		t.Fatal(err)
	}
	if !ok || got != "v2" {
		t.Errorf("expected v2, got %q (ok=%v)", got, ok)
	}

	if err := store.Delete("k"); err != nil {
		t.Fatal(err)
	}
	if _, ok, _ := store.Get("k"); ok {
		t.Error("expected key gone after delete")
	}

	if err := store.Delete("k"); err != nil {
		t.Error("deleting a missing key must be a no-op")
	}
}

func TestFileStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tend.json")

	store, err := OpenFile(path)
	if err != nil {
		t.Fatal(err)
	}

	if _, ok, _ := store.Get("habits"); ok {
		t.Error("a fresh store must be empty")
	}

	if err := store.Set("habits", `[{"id":"1"}]`); err != nil {
		t.Fatal(err)
	}
	if err := store.Close(); err != nil {
		t.Fatal(err)
	}

	// Reopen: data survives the process boundary.
	reopened, err := OpenFile(path)
	if err != nil {
		t.Fatal(err)
	}
	got, ok, err := reopened.Get("habits")
	if err != nil {
		t.Fatal(err)
	}
	if !ok || got != `[{"id":"1"}]` {
		t.Errorf("expected persisted value, got %q (ok=%v)", got, ok)
	}

	if err := reopened.Delete("habits"); err != nil {
		t.Fatal(err)
	}

	third, err := OpenFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok, _ := third.Get("habits"); ok {
		t.Error("expected delete to persist")
	}
}

func TestFileStore_MissingFileIsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "does-not-exist.json")

	store, err := OpenFile(path)
	if err != nil {
		t.Fatalf("a missing file is a valid empty store: %v", err)
	}
	if _, ok, _ := store.Get("anything"); ok {
		t.Error("expected an empty store")
	}
	if _, err := os.Stat(path); err == nil {
		t.Error("opening must not create the file before the first write")
	}
}

func TestStorageError(t *testing.T) {
	inner := errors.New("disk full")
	err := storageErr("set", "habits", inner)

	var serr *StorageError
	if !errors.As(err, &serr) {
		t.Fatal("expected a *StorageError")
	}
	if serr.Op != "set" || serr.Key != "habits" {
		t.Errorf("unexpected fields: %+v", serr)
	}
	if !errors.Is(err, inner) {
		t.Error("expected the cause to unwrap")
	}
}
