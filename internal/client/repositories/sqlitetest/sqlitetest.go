// Package sqlitetest opens migrated SQLite databases for repository and
// service tests.
package sqlitetest

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/dmitrijs2005/friendstories/internal/client/client"
)

// Open returns a file-backed database in t.TempDir with the local schema
// applied and foreign keys enforced. It is closed on cleanup.
func Open(t testing.TB) *sql.DB {
	t.Helper()

	db, err := client.InitDatabase(context.Background(), filepath.Join(t.TempDir(), "stories.db"))
	if err != nil {
		t.Fatalf("InitDatabase error: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}
