package database

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrateUsesConfiguredSchema(t *testing.T) {
	dir := t.TempDir()
	schema := filepath.Join(dir, "schema.sql")
	require.NoError(t, os.WriteFile(schema,
		[]byte(`CREATE TABLE IF NOT EXISTS recipes (id INTEGER PRIMARY KEY, nombre TEXT NOT NULL);`),
		0o644))

	cfg := Config{
		Path:       filepath.Join(dir, "receptes.db"),
		SchemaPath: schema,
	}
	db, err := Open(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, Migrate(db, cfg))
	require.NoError(t, Migrate(db, cfg)) // idempotent

	var total int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM recipes`).Scan(&total))
	assert.Equal(t, 0, total)
}

func TestMigrateMissingSchema(t *testing.T) {
	dir := t.TempDir()
	cfg := Config{
		Path:       filepath.Join(dir, "receptes.db"),
		SchemaPath: filepath.Join(dir, "nope.sql"),
	}
	db, err := Open(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	err = Migrate(db, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nope.sql")
}
