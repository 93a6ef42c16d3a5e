package backup

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeStore(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestCreateAndListBackups(t *testing.T) {
	dir := t.TempDir()
	store := writeStore(t, dir, "pillbox.json", `{"version":1}`)
	m := NewManager(store)

	backupPath, err := m.CreateBackup()
	if err != nil {
		t.Fatalf("create backup: %v", err)
	}
	if filepath.Dir(backupPath) != m.GetBackupDir() {
		t.Errorf("backup written outside backup dir: %s", backupPath)
	}

	data, err := os.ReadFile(backupPath)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `{"version":1}` {
		t.Errorf("backup content = %q", data)
	}

	backups, err := m.ListBackups()
	if err != nil {
		t.Fatal(err)
	}
	if len(backups) != 1 {
		t.Fatalf("expected 1 backup, got %d", len(backups))
	}
	if backups[0].Size != int64(len(data)) {
		t.Errorf("backup size = %d, want %d", backups[0].Size, len(data))
	}
}

func TestCreateBackup_MissingStore(t *testing.T) {
	m := NewManager(filepath.Join(t.TempDir(), "pillbox.json"))
	if _, err := m.CreateBackup(); err == nil {
		t.Error("expected error when the store does not exist")
	}
}

func TestListBackups_IgnoresForeignFiles(t *testing.T) {
	dir := t.TempDir()
	store := writeStore(t, dir, "pillbox.json", `{}`)
	m := NewManager(store)

	if _, err := m.CreateBackup(); err != nil {
		t.Fatal(err)
	}
	writeStore(t, m.GetBackupDir(), "notes.txt", "not a backup")
	writeStore(t, m.GetBackupDir(), "pillbox-garbage.json", "bad timestamp")

	backups, err := m.ListBackups()
	if err != nil {
		t.Fatal(err)
	}
	if len(backups) != 1 {
		t.Errorf("expected foreign files to be skipped, got %d backups", len(backups))
	}
}

func TestRotation(t *testing.T) {
	dir := t.TempDir()
	store := writeStore(t, dir, "pillbox.json", `{}`)
	m := NewManager(store)
	if err := os.MkdirAll(m.GetBackupDir(), 0700); err != nil {
		t.Fatal(err)
	}

	// Seed more than MaxBackups files with distinct old timestamps.
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < MaxBackups+3; i++ {
		name := BackupFilePrefix + base.Add(time.Duration(i)*time.Minute).Format("20060102-1504") + ".json"
		writeStore(t, m.GetBackupDir(), name, `{}`)
	}

	if _, err := m.CreateBackup(); err != nil {
		t.Fatal(err)
	}

	backups, err := m.ListBackups()
	if err != nil {
		t.Fatal(err)
	}
	if len(backups) != MaxBackups {
		t.Errorf("expected rotation down to %d backups, got %d", MaxBackups, len(backups))
	}
	// The newest backup must survive rotation.
	if backups[0].Timestamp.Year() == 2024 {
		t.Error("expected the fresh backup to be the newest after rotation")
	}
}

func TestRestoreBackup(t *testing.T) {
	dir := t.TempDir()
	store := writeStore(t, dir, "pillbox.json", `{"state":"old"}`)
	m := NewManager(store)

	backupPath, err := m.CreateBackup()
	if err != nil {
		t.Fatal(err)
	}

	writeStore(t, dir, "pillbox.json", `{"state":"new"}`)

	if err := m.RestoreBackup(backupPath); err != nil {
		t.Fatalf("restore: %v", err)
	}

	data, err := os.ReadFile(store)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `{"state":"old"}` {
		t.Errorf("store after restore = %q", data)
	}

	// The pre-restore state was itself backed up.
	backups, err := m.ListBackups()
	if err != nil {
		t.Fatal(err)
	}
	if len(backups) < 2 {
		t.Errorf("expected a safety backup of the replaced store, got %d backups", len(backups))
	}
}

func TestRestoreBackup_RejectsMissingAndEmpty(t *testing.T) {
	dir := t.TempDir()
	store := writeStore(t, dir, "pillbox.json", `{}`)
	m := NewManager(store)

	if err := m.RestoreBackup(filepath.Join(dir, "nope.json")); err == nil {
		t.Error("expected error for missing backup file")
	}

	empty := writeStore(t, dir, "empty.json", "")
	if err := m.RestoreBackup(empty); err == nil {
		t.Error("expected error for empty backup file")
	}
}
