package database

import (
	"path/filepath"
	"testing"

	"some-planner/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDB_SQLite(t *testing.T) {
	cfg := &config.Config{
		DBDriver: config.DriverSQLite,
		DBPath:   filepath.Join(t.TempDir(), "planner.db"),
	}

	db, err := NewDB(cfg)
	require.NoError(t, err)
	defer Close(db)

	var fk int
	require.NoError(t, db.Raw("PRAGMA foreign_keys").Scan(&fk).Error)
	assert.Equal(t, 1, fk)
}

func TestNewSQLiteDB_Memory(t *testing.T) {
	db, err := NewSQLiteDB(":memory:")
	require.NoError(t, err)
	defer Close(db)

	require.NoError(t, db.Exec("CREATE TABLE t (id INTEGER PRIMARY KEY)").Error)
	require.NoError(t, db.Exec("INSERT INTO t (id) VALUES (1)").Error)

	var n int64
	require.NoError(t, db.Table("t").Count(&n).Error)
	assert.Equal(t, int64(1), n)
}
