package migrate

import (
	"os"
	"path/filepath"
	"testing"
)

func TestValidateDirAcceptsShippedMigrations(t *testing.T) {
	if err := ValidateDir("migrations"); err != nil {
		t.Fatalf("shipped migrations failed validation: %v", err)
	}
}

func TestValidateDirRejectsBadFilename(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "not_a_version_create_stuff.sql")
	if err := os.WriteFile(bad, []byte("-- +goose Up\n-- +goose Down\n"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	if err := ValidateDir(dir); err == nil {
		t.Fatalf("expected filename validation error")
	}
}

func TestValidateDirRejectsMissingHeaders(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "20260101000000_create_widgets.sql")
	if err := os.WriteFile(bad, []byte("CREATE TABLE widgets (id TEXT);"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	if err := ValidateDir(dir); err == nil {
		t.Fatalf("expected header validation error")
	}
}
