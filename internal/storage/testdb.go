package storage

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// NewTestDB opens a migrated database in a per-test temp dir using the
// pure-Go driver.
func NewTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(DriverPure, filepath.Join(t.TempDir(), "questjournal.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}
