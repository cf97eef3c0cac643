// Package ingest parses the source CSV into cleaned recipe rows and swaps
// them into the live table atomically.
package ingest

import (
	"context"
	"database/sql"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"receptari/internal/category"
	"receptari/internal/textnorm"
	"receptari/pkg/models"
)

// columnMapping is the known superset of source headers and the columns
// they land in. Headers absent from the file are simply skipped.
var columnMapping = []struct{ csv, db string }{
	{"Id", "id"},
	{"Nombre", "nombre"},
	{"URL", "url"},
	{"Ingredientes", "ingredientes"},
	{"Pasos", "pasos"},
	{"Pais", "pais"},
	{"Duracion", "duracion"},
	{"Porciones", "porciones"},
	{"Calorias", "calorias"},
	{"Categoria", "categoria_raw"},
	{"Contexto", "contexto"},
	{"Valoracion y Votos", "valoracion_votos"},
	{"Comensales", "comensales"},
	{"Tiempo", "tiempo"},
	{"Dificultad", "dificultad"},
	{"Categoria 2", "categoria_2"},
}

type Loader struct {
	Log *zap.Logger
}

func NewLoader(log *zap.Logger) *Loader {
	return &Loader{Log: log}
}

// Run parses the CSV at path and rebuilds the recipes table from it.
// Returns the number of rows loaded.
func (l *Loader) Run(ctx context.Context, db *sql.DB, path string) (int, error) {
	records, err := l.ParseFile(path)
	if err != nil {
		return 0, err
	}
	if err := Rebuild(ctx, db, records); err != nil {
		return 0, err
	}
	return len(records), nil
}

// ParseFile reads and cleans every usable row. Rows without a positive
// numeric id are dropped; text search columns are normalized and the
// internal category is inferred from the country column.
func (l *Loader) ParseFile(path string) ([]models.RecipeDB, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	headerRow, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	header := make(map[string]int, len(headerRow))
	for idx, name := range headerRow {
		header[strings.TrimSpace(name)] = idx
	}

	// db column -> csv index, for the columns this file actually has
	cols := make(map[string]int)
	for _, m := range columnMapping {
		if idx, ok := header[m.csv]; ok {
			cols[m.db] = idx
		}
	}
	if len(cols) == 0 {
		return nil, fmt.Errorf("no usable columns in %s", path)
	}

	var out []models.RecipeDB
	dropped := 0

	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		if len(row) == 0 {
			continue
		}

		id := parseID(valueAt(cols, row, "id"))
		if id <= 0 {
			dropped++
			continue
		}

		pais := textnorm.Normalize(valueAt(cols, row, "pais"))
		nombre := textnorm.Normalize(valueAt(cols, row, "nombre"))

		out = append(out, models.RecipeDB{
			ID:               id,
			Nombre:           nombre,
			NombreLimpio:     nombre,
			URL:              valueAt(cols, row, "url"),
			Ingredientes:     textnorm.Normalize(valueAt(cols, row, "ingredientes")),
			Pasos:            textnorm.Normalize(valueAt(cols, row, "pasos")),
			Pais:             pais,
			Duracion:         valueAt(cols, row, "duracion"),
			Porciones:        valueAt(cols, row, "porciones"),
			Calorias:         parseCalories(valueAt(cols, row, "calorias")),
			CategoriaInterna: category.Classify(pais),
			Contexto:         valueAt(cols, row, "contexto"),
			ValoracionVotos:  valueAt(cols, row, "valoracion_votos"),
			Comensales:       valueAt(cols, row, "comensales"),
			Tiempo:           valueAt(cols, row, "tiempo"),
			Dificultad:       valueAt(cols, row, "dificultad"),
			Categoria2:       valueAt(cols, row, "categoria_2"),
			CategoriaRaw:     valueAt(cols, row, "categoria_raw"),
		})
	}

	if l.Log != nil {
		l.Log.Info("csv parsed",
			zap.String("path", path),
			zap.Int("rows", len(out)),
			zap.Int("dropped", dropped))
	}
	return out, nil
}

func valueAt(cols map[string]int, row []string, key string) string {
	idx, ok := cols[key]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func parseID(raw string) int64 {
	if raw == "" {
		return 0
	}
	if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		// only whole floats that fit in int64; int64(f) on anything
		// out of range is platform-defined
		if f != math.Trunc(f) || f < math.MinInt64 || f >= math.MaxInt64 {
			return 0
		}
		return int64(f)
	}
	return 0
}

func parseCalories(raw string) int {
	if raw == "" {
		return 0
	}
	if n, err := strconv.Atoi(raw); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return int(f)
	}
	return 0
}
