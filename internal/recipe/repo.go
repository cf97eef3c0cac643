package recipe

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"receptari/internal/intent"
	"receptari/pkg/models"
)

type Repo struct {
	DB *sql.DB
}

func NewRepo(db *sql.DB) *Repo {
	return &Repo{DB: db}
}

const selectCols = `id, nombre, nombre_limpio, url, ingredientes, pasos, pais,
	duracion, porciones, calorias, categoria_interna, contexto,
	valoracion_votos, comensales, tiempo, dificultad, categoria_2, categoria_raw`

// SearchQuery describes one search against the recipes table. Term must
// already be normalized; matching is plain substring over the normalized
// text columns.
type SearchQuery struct {
	Term     string
	Category string // internal key, or intent.CategoryAll for no filter
	Limit    int

	// MatchText forces the text clause even for an empty term ('%%'
	// matches every row). The chat path always sets it; the plain search
	// endpoint only filters on text when a term is present.
	MatchText bool
}

func (r *Repo) Search(ctx context.Context, q SearchQuery) ([]models.RecipeDB, error) {
	sqlStr, args := buildSearchSQL(q)

	rows, err := r.DB.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("search query: %w", err)
	}
	defer rows.Close()

	return collectRecipes(rows, q.Limit)
}

// RandomOne returns one recipe uniformly at random, or nil on an empty table.
func (r *Repo) RandomOne(ctx context.Context) (*models.RecipeDB, error) {
	row := r.DB.QueryRowContext(ctx,
		`SELECT `+selectCols+` FROM recipes ORDER BY RANDOM() LIMIT 1`)

	rec, err := scanRecipe(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("random one: %w", err)
	}
	return rec, nil
}

// SampleByCategory returns up to limit recipes of one category in random order.
func (r *Repo) SampleByCategory(ctx context.Context, key string, limit int) ([]models.RecipeDB, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT `+selectCols+` FROM recipes
		 WHERE categoria_interna = ? ORDER BY RANDOM() LIMIT ?`, key, limit)
	if err != nil {
		return nil, fmt.Errorf("sample query: %w", err)
	}
	defer rows.Close()

	return collectRecipes(rows, limit)
}

func (r *Repo) GetByID(ctx context.Context, id int64) (*models.RecipeDB, error) {
	row := r.DB.QueryRowContext(ctx,
		`SELECT `+selectCols+` FROM recipes WHERE id = ?`, id)

	rec, err := scanRecipe(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get by id: %w", err)
	}
	return rec, nil
}

func (r *Repo) Count(ctx context.Context) (int, error) {
	var total int
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM recipes`).Scan(&total); err != nil {
		return 0, fmt.Errorf("count scan: %w", err)
	}
	return total, nil
}

func buildSearchSQL(q SearchQuery) (string, []any) {
	var where []string
	var args []any

	if q.Category != intent.CategoryAll {
		where = append(where, "categoria_interna = ?")
		args = append(args, q.Category)
	}

	if q.Term != "" || q.MatchText {
		where = append(where, "(nombre_limpio LIKE ? OR ingredientes LIKE ? OR pasos LIKE ?)")
		kw := "%" + q.Term + "%"
		args = append(args, kw, kw, kw)
	}

	sqlStr := `SELECT ` + selectCols + ` FROM recipes`
	if len(where) > 0 {
		sqlStr += " WHERE " + strings.Join(where, " AND ")
	}
	sqlStr += " LIMIT ?"
	args = append(args, q.Limit)

	return sqlStr, args
}

type scannable interface {
	Scan(dest ...any) error
}

func scanRecipe(row scannable) (*models.RecipeDB, error) {
	var (
		rec                         models.RecipeDB
		nombreLimpio, url           sql.NullString
		ingredientes, pasos, pais   sql.NullString
		duracion, porciones         sql.NullString
		calorias                    sql.NullInt64
		categoriaInterna, contexto  sql.NullString
		valoracionVotos, comensales sql.NullString
		tiempo, dificultad          sql.NullString
		categoria2, categoriaRaw    sql.NullString
	)

	if err := row.Scan(
		&rec.ID, &rec.Nombre, &nombreLimpio, &url, &ingredientes, &pasos, &pais,
		&duracion, &porciones, &calorias, &categoriaInterna, &contexto,
		&valoracionVotos, &comensales, &tiempo, &dificultad, &categoria2, &categoriaRaw,
	); err != nil {
		return nil, err
	}

	rec.NombreLimpio = nombreLimpio.String
	rec.URL = url.String
	rec.Ingredientes = ingredientes.String
	rec.Pasos = pasos.String
	rec.Pais = pais.String
	rec.Duracion = duracion.String
	rec.Porciones = porciones.String
	rec.Calorias = int(calorias.Int64)
	rec.CategoriaInterna = categoriaInterna.String
	rec.Contexto = contexto.String
	rec.ValoracionVotos = valoracionVotos.String
	rec.Comensales = comensales.String
	rec.Tiempo = tiempo.String
	rec.Dificultad = dificultad.String
	rec.Categoria2 = categoria2.String
	rec.CategoriaRaw = categoriaRaw.String
	return &rec, nil
}

func collectRecipes(rows *sql.Rows, capacity int) ([]models.RecipeDB, error) {
	if capacity < 0 {
		capacity = 0
	}
	out := make([]models.RecipeDB, 0, capacity)
	for rows.Next() {
		rec, err := scanRecipe(rows)
		if err != nil {
			return nil, fmt.Errorf("scan recipe: %w", err)
		}
		out = append(out, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows err: %w", err)
	}
	return out, nil
}
