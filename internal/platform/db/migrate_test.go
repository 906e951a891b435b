package db

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func TestLoadMigrationsSortedByVersion(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "002_audit.sql", "CREATE TABLE b (id int);")
	writeFile(t, dir, "001_core.sql", "CREATE TABLE a (id int);")
	writeFile(t, dir, "010_later.sql", "CREATE TABLE c (id int);")

	m := NewMigrator(nil, dir)
	migs, err := m.LoadMigrations()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(migs) != 3 {
		t.Fatalf("expected 3 migrations, got %d", len(migs))
	}
	wantOrder := []int{1, 2, 10}
	for i, mig := range migs {
		if mig.Version != wantOrder[i] {
			t.Errorf("position %d: version %d, want %d", i, mig.Version, wantOrder[i])
		}
	}
}

func TestLoadMigrationsSkipsNonNumericAndNonSQL(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "001_core.sql", "CREATE TABLE a (id int);")
	writeFile(t, dir, "README.md", "not a migration")
	writeFile(t, dir, "notes_001.sql", "missing numeric prefix")
	writeFile(t, dir, "abc_def.sql", "no version")

	m := NewMigrator(nil, dir)
	migs, err := m.LoadMigrations()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(migs) != 1 || migs[0].Version != 1 {
		t.Errorf("expected only 001_core.sql, got %+v", migs)
	}
}

func TestLoadMigrationsMissingDir(t *testing.T) {
	m := NewMigrator(nil, filepath.Join(t.TempDir(), "does-not-exist"))
	if _, err := m.LoadMigrations(); err == nil {
		t.Error("expected error for missing directory")
	}
}
