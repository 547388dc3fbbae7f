package backup

import (
	"os"
	"path/filepath"
	"testing"
)

func setupDataFile(t *testing.T, content string) string {
	t.Helper()
	dataPath := filepath.Join(t.TempDir(), "data.json")
	if err := os.WriteFile(dataPath, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write data file: %v", err)
	}
	return dataPath
}

func TestCreateBackup(t *testing.T) {
	dataPath := setupDataFile(t, `{"usuarios":[]}`)
	mgr := NewManager(dataPath)

	backupPath, err := mgr.CreateBackup()
	if err != nil {
		t.Fatalf("CreateBackup() error = %v", err)
	}

	data, err := os.ReadFile(backupPath)
	if err != nil {
		t.Fatalf("failed to read backup: %v", err)
	}
	if string(data) != `{"usuarios":[]}` {
		t.Errorf("backup content = %q, want original data", data)
	}
}

func TestCreateBackupMissingDataFile(t *testing.T) {
	mgr := NewManager(filepath.Join(t.TempDir(), "missing.json"))
	if _, err := mgr.CreateBackup(); err == nil {
		t.Error("CreateBackup() on missing data file succeeded, want error")
	}
}

func TestListBackups(t *testing.T) {
	dataPath := setupDataFile(t, `{"usuarios":[]}`)
	mgr := NewManager(dataPath)

	// Empty before any backup.
	backups, err := mgr.ListBackups()
	if err != nil {
		t.Fatalf("ListBackups() error = %v", err)
	}
	if len(backups) != 0 {
		t.Errorf("ListBackups() = %d entries, want 0", len(backups))
	}

	if _, err := mgr.CreateBackup(); err != nil {
		t.Fatalf("CreateBackup() error = %v", err)
	}
	if _, err := mgr.CreateBackup(); err != nil {
		t.Fatalf("second CreateBackup() error = %v", err)
	}

	backups, err = mgr.ListBackups()
	if err != nil {
		t.Fatalf("ListBackups() error = %v", err)
	}
	if len(backups) != 2 {
		t.Errorf("ListBackups() = %d entries, want 2", len(backups))
	}
}

func TestRestore(t *testing.T) {
	dataPath := setupDataFile(t, "original")
	mgr := NewManager(dataPath)

	backupPath, err := mgr.CreateBackup()
	if err != nil {
		t.Fatalf("CreateBackup() error = %v", err)
	}

	if err := os.WriteFile(dataPath, []byte("modified"), 0600); err != nil {
		t.Fatalf("failed to modify data file: %v", err)
	}

	if err := mgr.Restore(backupPath); err != nil {
		t.Fatalf("Restore() error = %v", err)
	}
	data, err := os.ReadFile(dataPath)
	if err != nil {
		t.Fatalf("failed to read restored file: %v", err)
	}
	if string(data) != "original" {
		t.Errorf("restored content = %q, want %q", data, "original")
	}
}

func TestRestoreUnknownBackup(t *testing.T) {
	dataPath := setupDataFile(t, "data")
	mgr := NewManager(dataPath)

	if err := mgr.Restore(filepath.Join(mgr.BackupDir(), "nope.json")); err == nil {
		t.Error("Restore() of unknown backup succeeded, want error")
	}
}
