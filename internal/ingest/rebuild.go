package ingest

import (
	"context"
	"database/sql"
	"fmt"

	"receptari/pkg/models"
)

const stagingSchema = `
CREATE TABLE recipes_staging (
    id INTEGER PRIMARY KEY,
    nombre TEXT NOT NULL,
    nombre_limpio TEXT,
    url TEXT,
    ingredientes TEXT,
    pasos TEXT,
    pais TEXT,
    duracion TEXT,
    porciones TEXT,
    calorias INTEGER,
    categoria_interna TEXT,
    contexto TEXT,
    valoracion_votos TEXT,
    comensales TEXT,
    tiempo TEXT,
    dificultad TEXT,
    categoria_2 TEXT,
    categoria_raw TEXT
);`

// Rebuild replaces the recipes table with the given records in one
// transaction: load into a staging table, then swap it over the old one.
// A failed load rolls back and leaves the previous table untouched.
func Rebuild(ctx context.Context, db *sql.DB, records []models.RecipeDB) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin rebuild tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DROP TABLE IF EXISTS recipes_staging`); err != nil {
		return fmt.Errorf("drop staging: %w", err)
	}
	if _, err := tx.ExecContext(ctx, stagingSchema); err != nil {
		return fmt.Errorf("create staging: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO recipes_staging (
			id, nombre, nombre_limpio, url, ingredientes, pasos, pais,
			duracion, porciones, calorias, categoria_interna, contexto,
			valoracion_votos, comensales, tiempo, dificultad, categoria_2, categoria_raw
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, rec := range records {
		if _, err := stmt.ExecContext(ctx,
			rec.ID, rec.Nombre, rec.NombreLimpio, rec.URL, rec.Ingredientes,
			rec.Pasos, rec.Pais, rec.Duracion, rec.Porciones, rec.Calorias,
			rec.CategoriaInterna, rec.Contexto, rec.ValoracionVotos,
			rec.Comensales, rec.Tiempo, rec.Dificultad, rec.Categoria2, rec.CategoriaRaw,
		); err != nil {
			return fmt.Errorf("insert recipe %d: %w", rec.ID, err)
		}
	}

	if _, err := tx.ExecContext(ctx, `DROP TABLE IF EXISTS recipes`); err != nil {
		return fmt.Errorf("drop old table: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `ALTER TABLE recipes_staging RENAME TO recipes`); err != nil {
		return fmt.Errorf("swap staging: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit rebuild: %w", err)
	}
	return nil
}
