package sqlite

import (
	"context"
	"path/filepath"
	"testing"
)

// setupTokenDB opens a migrated token cache database in a per-test temp dir,
// going through the same NewDB and RunMigrations path as the server.
func setupTokenDB(t *testing.T) *DB {
	t.Helper()

	db, err := NewDB(context.Background(), filepath.Join(t.TempDir(), "tokens.db"))
	if err != nil {
		t.Fatalf("open token db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if _, err := RunMigrations(db.Writer); err != nil {
		t.Fatalf("migrate token db: %v", err)
	}

	return db
}
