package storage

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dcoutinho/tempora/internal/models"
)

func testDocument() *models.Document {
	return &models.Document{
		Users: []models.User{
			{
				Name:  "Daniel",
				Goals: &models.Goals{Daily: "02:00:00"},
				Tasks: []models.Task{
					{
						Name: "Design",
						Records: []models.TimeRecord{
							{Date: "2026-08-30", Time: "01:00:00"},
						},
					},
				},
			},
		},
	}
}

func setupJSONStore(t *testing.T) *JSONStore {
	t.Helper()
	store := NewJSONStore(filepath.Join(t.TempDir(), "data.json"))
	if err := store.Init(testDocument()); err != nil {
		t.Fatalf("failed to initialize test store: %v", err)
	}
	return store
}

func TestJSONStoreInit(t *testing.T) {
	store := setupJSONStore(t)

	if err := store.Init(testDocument()); !errors.Is(err, ErrAlreadyInitialized) {
		t.Errorf("second Init error = %v, want ErrAlreadyInitialized", err)
	}
}

func TestJSONStoreLoadSaveRoundTrip(t *testing.T) {
	store := setupJSONStore(t)

	doc, err := store.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(doc.Users) != 1 || doc.Users[0].Name != "Daniel" {
		t.Fatalf("Load() users = %+v, want single Daniel", doc.Users)
	}

	doc.Users[0].Tasks[0].Records = append(doc.Users[0].Tasks[0].Records,
		models.TimeRecord{Date: "2026-08-31", Time: "00:30:00"})
	if err := store.Save(doc); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	reloaded, err := store.Load()
	if err != nil {
		t.Fatalf("reload error = %v", err)
	}
	records := reloaded.Users[0].Tasks[0].Records
	if len(records) != 2 || records[1].Time != "00:30:00" {
		t.Errorf("reloaded records = %+v, want appended record preserved", records)
	}
}

func TestJSONStoreWireFormat(t *testing.T) {
	// The file is an external contract shared with the dashboard; the
	// Portuguese keys must survive serialization.
	store := setupJSONStore(t)

	data, err := os.ReadFile(store.Path())
	if err != nil {
		t.Fatalf("failed to read data file: %v", err)
	}
	for _, key := range []string{`"usuarios"`, `"nome"`, `"metas"`, `"diaria"`, `"tarefas"`, `"nome_tarefa"`, `"registros"`, `"data"`, `"tempo"`} {
		if !strings.Contains(string(data), key) {
			t.Errorf("data file missing wire key %s", key)
		}
	}
}

func TestJSONStoreLoadMissingFile(t *testing.T) {
	store := NewJSONStore(filepath.Join(t.TempDir(), "missing.json"))

	if _, err := store.Load(); !errors.Is(err, ErrStoreUnavailable) {
		t.Errorf("Load() on missing file error = %v, want ErrStoreUnavailable", err)
	}
}

func TestJSONStoreLoadCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	if err := os.WriteFile(path, []byte("{not json"), 0600); err != nil {
		t.Fatalf("failed to write corrupt file: %v", err)
	}

	store := NewJSONStore(path)
	if _, err := store.Load(); !errors.Is(err, ErrCorruptDocument) {
		t.Errorf("Load() on corrupt file error = %v, want ErrCorruptDocument", err)
	}
}

func TestJSONStoreSaveLeavesNoTempFiles(t *testing.T) {
	store := setupJSONStore(t)

	for i := 0; i < 3; i++ {
		if err := store.Save(testDocument()); err != nil {
			t.Fatalf("Save() error = %v", err)
		}
	}

	entries, err := os.ReadDir(filepath.Dir(store.Path()))
	if err != nil {
		t.Fatalf("failed to read data dir: %v", err)
	}
	for _, e := range entries {
		if strings.Contains(e.Name(), ".tmp-") {
			t.Errorf("leftover temp file %s after Save", e.Name())
		}
	}
}

func TestForPath(t *testing.T) {
	if _, ok := ForPath("/tmp/data.json").(*JSONStore); !ok {
		t.Error("ForPath(.json) did not return a JSONStore")
	}
	if _, ok := ForPath("/tmp/data.db").(*SQLiteStore); !ok {
		t.Error("ForPath(.db) did not return a SQLiteStore")
	}
	if _, ok := ForPath("/tmp/data").(*JSONStore); !ok {
		t.Error("ForPath without extension did not default to JSONStore")
	}
}
