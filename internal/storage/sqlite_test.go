package storage

import (
	"errors"
	"path/filepath"
	"testing"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "journal.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestRecordAndRecent(t *testing.T) {
	store := testStore(t)

	id, err := store.RecordDelivery(12, "victory", 1, nil)
	if err != nil {
		t.Fatalf("RecordDelivery: %v", err)
	}
	if id == 0 {
		t.Error("inserted ID is zero")
	}

	if _, err := store.RecordDelivery(3, "defeat", 3, errors.New("endpoint unreachable")); err != nil {
		t.Fatalf("RecordDelivery (failed delivery): %v", err)
	}

	entries, err := store.Recent(10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}

	// Newest first.
	failed := entries[0]
	if failed.Outcome != "defeat" || failed.Delivered {
		t.Errorf("newest entry = %+v, want undelivered defeat", failed)
	}
	if failed.Attempts != 3 {
		t.Errorf("attempts = %d, want 3", failed.Attempts)
	}
	if failed.Error != "endpoint unreachable" {
		t.Errorf("error text = %q", failed.Error)
	}

	ok := entries[1]
	if ok.Outcome != "victory" || !ok.Delivered || ok.Error != "" {
		t.Errorf("older entry = %+v, want delivered victory", ok)
	}
	if ok.CreatedAt.IsZero() {
		t.Error("created_at not populated")
	}
}

func TestUndeliveredFiltersDelivered(t *testing.T) {
	store := testStore(t)

	if _, err := store.RecordDelivery(10, "victory", 1, nil); err != nil {
		t.Fatal(err)
	}
	if _, err := store.RecordDelivery(5, "timeout", 2, errors.New("HTTP 500")); err != nil {
		t.Fatal(err)
	}
	if _, err := store.RecordDelivery(7, "defeat", 3, errors.New("HTTP 503")); err != nil {
		t.Fatal(err)
	}

	pending, err := store.Undelivered(10)
	if err != nil {
		t.Fatalf("Undelivered: %v", err)
	}
	if len(pending) != 2 {
		t.Fatalf("got %d pending entries, want 2", len(pending))
	}
	for _, e := range pending {
		if e.Delivered {
			t.Errorf("delivered entry in pending list: %+v", e)
		}
	}
}

func TestRecentLimit(t *testing.T) {
	store := testStore(t)

	for i := 0; i < 5; i++ {
		if _, err := store.RecordDelivery(i, "timeout", 1, nil); err != nil {
			t.Fatal(err)
		}
	}

	entries, err := store.Recent(3)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 3 {
		t.Errorf("got %d entries, want 3", len(entries))
	}

	// Non-positive limits fall back to a sane default instead of failing.
	entries, err = store.Recent(0)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 5 {
		t.Errorf("got %d entries with default limit, want 5", len(entries))
	}
}

func TestOpenCreatesParentDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "deeper", "journal.db")
	store, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()

	if _, err := store.RecordDelivery(1, "victory", 1, nil); err != nil {
		t.Errorf("RecordDelivery on fresh nested db: %v", err)
	}
}
