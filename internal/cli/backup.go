package cli

import (
	"fmt"
	"path/filepath"

	"github.com/dcoutinho/tempora/internal/backup"
	"github.com/dcoutinho/tempora/internal/constants"
	"github.com/dcoutinho/tempora/internal/logger"
	"github.com/dcoutinho/tempora/internal/session"
)

type BackupCreateCmd struct{}

func (c *BackupCreateCmd) Run(ctx *Context) error {
	mgr := backup.NewManager(ctx.DataPath)
	backupPath, err := mgr.CreateBackup()
	if err != nil {
		return fmt.Errorf("backup failed: %w", err)
	}

	fmt.Printf("✓ Backup created: %s\n", filepath.Base(backupPath))
	return nil
}

type BackupListCmd struct{}

func (c *BackupListCmd) Run(ctx *Context) error {
	mgr := backup.NewManager(ctx.DataPath)
	backups, err := mgr.ListBackups()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}

	if len(backups) == 0 {
		fmt.Println("No backups found.")
		fmt.Printf("Backups are stored in: %s\n", mgr.BackupDir())
		return nil
	}

	fmt.Printf("Available backups (%d total, keeping most recent %d):\n\n", len(backups), constants.MaxBackups)
	for _, b := range backups {
		sizeKB := float64(b.Size) / 1024.0
		fmt.Printf("  %s  %s  (%.1f KB)\n",
			b.Timestamp.Format("2006-01-02 15:04:05"), filepath.Base(b.Path), sizeKB)
	}
	fmt.Printf("\nBackup directory: %s\n", mgr.BackupDir())
	return nil
}

type BackupRestoreCmd struct {
	Name string `arg:"" help:"Backup file name to restore."`
}

func (c *BackupRestoreCmd) Run(ctx *Context) error {
	mgr := backup.NewManager(ctx.DataPath)
	if err := mgr.Restore(filepath.Join(mgr.BackupDir(), c.Name)); err != nil {
		return err
	}

	// The restored document may not contain the sessioned user or task.
	if err := session.NewStore(ctx.DataPath).Clear(); err != nil {
		logger.Warn("Failed to clear session", "error", err)
	}

	fmt.Printf("✓ Restored %s\n", c.Name)
	return nil
}
