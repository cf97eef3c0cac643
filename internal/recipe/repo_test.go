package recipe

import (
	"context"
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"receptari/internal/ingest"
	"receptari/internal/intent"
	"receptari/pkg/models"
)

func testRecipes() []models.RecipeDB {
	return []models.RecipeDB{
		{ID: 1, Nombre: "ceviche de corvina", NombreLimpio: "ceviche de corvina",
			Ingredientes: "corvina llimona ceba", Pasos: "tallar marinar servir",
			Pais: "peru", CategoriaInterna: "peru", Calorias: 320},
		{ID: 2, Nombre: "aji de gallina", NombreLimpio: "aji de gallina",
			Ingredientes: "pollastre aji nous", Pasos: "bullir desfilar coure",
			Pais: "peru", CategoriaInterna: "peru", Calorias: 540},
		{ID: 3, Nombre: "tacos al pastor", NombreLimpio: "tacos al pastor",
			Ingredientes: "porc pinya tortilla", Pasos: "marinar rostir muntar",
			Pais: "mexico", CategoriaInterna: "mexic", Calorias: 610},
		{ID: 4, Nombre: "pollastre al forn", NombreLimpio: "pollastre al forn",
			Ingredientes: "pollastre patata romani", Pasos: "salpebrar enfornar",
			Pais: "", CategoriaInterna: "altres", Calorias: 480},
	}
}

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, ingest.Rebuild(context.Background(), db, testRecipes()))
	return db
}

func TestSearchByCategory(t *testing.T) {
	repo := NewRepo(openTestDB(t))

	found, err := repo.Search(context.Background(), SearchQuery{
		Category: "peru",
		Limit:    SearchResultLimit,
	})
	require.NoError(t, err)
	require.Len(t, found, 2)
	for _, rec := range found {
		assert.Equal(t, "peru", rec.CategoriaInterna)
	}
}

func TestSearchBySubstring(t *testing.T) {
	repo := NewRepo(openTestDB(t))

	found, err := repo.Search(context.Background(), SearchQuery{
		Term:     "pollastre",
		Category: intent.CategoryAll,
		Limit:    SearchResultLimit,
	})
	require.NoError(t, err)
	require.Len(t, found, 2) // aji de gallina (ingredients) + pollastre al forn (name)
}

func TestSearchCombinesFilters(t *testing.T) {
	repo := NewRepo(openTestDB(t))

	found, err := repo.Search(context.Background(), SearchQuery{
		Term:     "pollastre",
		Category: "peru",
		Limit:    SearchResultLimit,
	})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, int64(2), found[0].ID)
}

func TestSearchMatchTextWithEmptyTerm(t *testing.T) {
	repo := NewRepo(openTestDB(t))

	// the chat path forces the text clause; %% matches every row
	found, err := repo.Search(context.Background(), SearchQuery{
		Category:  "mexic",
		Limit:     SearchResultLimit,
		MatchText: true,
	})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "mexic", found[0].CategoriaInterna)
}

func TestSearchRespectsLimit(t *testing.T) {
	repo := NewRepo(openTestDB(t))

	found, err := repo.Search(context.Background(), SearchQuery{
		Category:  intent.CategoryAll,
		Limit:     2,
		MatchText: true,
	})
	require.NoError(t, err)
	assert.Len(t, found, 2)
}

func TestRandomOne(t *testing.T) {
	repo := NewRepo(openTestDB(t))

	rec, err := repo.RandomOne(context.Background())
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Positive(t, rec.ID)
}

func TestRandomOneEmptyTable(t *testing.T) {
	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, ingest.Rebuild(context.Background(), db, nil))

	rec, err := NewRepo(db).RandomOne(context.Background())
	require.NoError(t, err)
	assert.Nil(t, rec)
}

func TestSampleByCategory(t *testing.T) {
	repo := NewRepo(openTestDB(t))

	sample, err := repo.SampleByCategory(context.Background(), "peru", 1)
	require.NoError(t, err)
	require.Len(t, sample, 1)
	assert.Equal(t, "peru", sample[0].CategoriaInterna)
}

func TestGetByID(t *testing.T) {
	repo := NewRepo(openTestDB(t))

	rec, err := repo.GetByID(context.Background(), 3)
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, "tacos al pastor", rec.Nombre)

	missing, err := repo.GetByID(context.Background(), 999)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestCount(t *testing.T) {
	repo := NewRepo(openTestDB(t))

	total, err := repo.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, total)
}

// Round-trip: a loaded record is reachable through category + ingredient
// substring, the way the chat search reaches it.
func TestRoundTripCategoryAndIngredient(t *testing.T) {
	repo := NewRepo(openTestDB(t))

	found, err := repo.Search(context.Background(), SearchQuery{
		Term:     "corvina",
		Category: "peru",
		Limit:    SearchResultLimit,
	})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, int64(1), found[0].ID)
}
