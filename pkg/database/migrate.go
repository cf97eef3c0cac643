package database

import (
	"database/sql"
	"fmt"
	"os"
)

// Migrate applies the schema at cfg.SchemaPath. The schema only uses
// CREATE TABLE IF NOT EXISTS, so running it repeatedly is safe.
func Migrate(db *sql.DB, cfg Config) error {
	b, err := os.ReadFile(cfg.SchemaPath)
	if err != nil {
		return fmt.Errorf("read schema %s: %w", cfg.SchemaPath, err)
	}

	if _, err := db.Exec(string(b)); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}
