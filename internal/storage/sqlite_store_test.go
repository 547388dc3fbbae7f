package storage

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/dcoutinho/tempora/internal/models"
)

func setupSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store := NewSQLiteStore(filepath.Join(t.TempDir(), "data.db"))
	if err := store.Init(testDocument()); err != nil {
		t.Fatalf("failed to initialize test store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSQLiteStoreInit(t *testing.T) {
	store := setupSQLiteStore(t)

	if err := store.Init(testDocument()); !errors.Is(err, ErrAlreadyInitialized) {
		t.Errorf("second Init error = %v, want ErrAlreadyInitialized", err)
	}
}

func TestSQLiteStoreLoadSaveRoundTrip(t *testing.T) {
	store := setupSQLiteStore(t)

	doc, err := store.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(doc.Users) != 1 || doc.Users[0].Name != "Daniel" {
		t.Fatalf("Load() users = %+v, want single Daniel", doc.Users)
	}
	if doc.Users[0].Goals == nil || doc.Users[0].Goals.Daily != "02:00:00" {
		t.Errorf("Load() goals = %+v, want daily 02:00:00", doc.Users[0].Goals)
	}

	doc.Users[0].Tasks[0].Records = append(doc.Users[0].Tasks[0].Records,
		models.TimeRecord{Date: "2026-08-31", Time: "00:30:00"})
	doc.Users[0].Tasks = append(doc.Users[0].Tasks, models.Task{Name: "Review"})
	if err := store.Save(doc); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	reloaded, err := store.Load()
	if err != nil {
		t.Fatalf("reload error = %v", err)
	}
	user := reloaded.Users[0]
	if len(user.Tasks) != 2 || user.Tasks[1].Name != "Review" {
		t.Fatalf("reloaded tasks = %+v, want Design and Review in order", user.Tasks)
	}
	records := user.Tasks[0].Records
	if len(records) != 2 || records[1].Date != "2026-08-31" || records[1].Time != "00:30:00" {
		t.Errorf("reloaded records = %+v, want appended record preserved in order", records)
	}
}

func TestSQLiteStoreLoadMissingFile(t *testing.T) {
	store := NewSQLiteStore(filepath.Join(t.TempDir(), "missing.db"))

	if _, err := store.Load(); !errors.Is(err, ErrStoreUnavailable) {
		t.Errorf("Load() on missing file error = %v, want ErrStoreUnavailable", err)
	}
}

func TestSQLiteStoreSaveIsWholesale(t *testing.T) {
	store := setupSQLiteStore(t)

	// Saving a smaller document must not leave stale rows behind.
	doc := &models.Document{Users: []models.User{{Name: "Marta"}}}
	if err := store.Save(doc); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	reloaded, err := store.Load()
	if err != nil {
		t.Fatalf("reload error = %v", err)
	}
	if len(reloaded.Users) != 1 || reloaded.Users[0].Name != "Marta" {
		t.Errorf("reloaded users = %+v, want only Marta", reloaded.Users)
	}
	if len(reloaded.Users[0].Tasks) != 0 {
		t.Errorf("reloaded tasks = %+v, want none", reloaded.Users[0].Tasks)
	}
}
