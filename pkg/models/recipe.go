package models

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// RecipeDB is the stored form of a recipe row. The text search columns
// (nombre, nombre_limpio, ingredientes, pasos, pais) hold pre-normalized
// text; everything else is kept as it came from the source CSV.
type RecipeDB struct {
	ID               int64
	Nombre           string
	NombreLimpio     string
	URL              string
	Ingredientes     string
	Pasos            string
	Pais             string
	Duracion         string
	Porciones        string
	Calorias         int
	CategoriaInterna string
	Contexto         string
	ValoracionVotos  string
	Comensales       string
	Tiempo           string
	Dificultad       string
	Categoria2       string
	CategoriaRaw     string
}

// Recipe is the public JSON shape: categoria_interna is exposed as
// "categoria", nombre_limpio is dropped, and nombre is title-cased for
// display only.
type Recipe struct {
	ID              int64  `json:"id"`
	Nombre          string `json:"nombre"`
	URL             string `json:"url"`
	Ingredientes    string `json:"ingredientes"`
	Pasos           string `json:"pasos"`
	Pais            string `json:"pais"`
	Duracion        string `json:"duracion"`
	Porciones       string `json:"porciones"`
	Calorias        int    `json:"calorias"`
	Categoria       string `json:"categoria"`
	Contexto        string `json:"contexto"`
	ValoracionVotos string `json:"valoracion_votos"`
	Comensales      string `json:"comensales"`
	Tiempo          string `json:"tiempo"`
	Dificultad      string `json:"dificultad"`
	Categoria2      string `json:"categoria_2"`
	CategoriaRaw    string `json:"categoria_raw"`
}

func (r RecipeDB) Public() Recipe {
	return Recipe{
		ID:              r.ID,
		Nombre:          TitleCase(r.Nombre),
		URL:             r.URL,
		Ingredientes:    r.Ingredientes,
		Pasos:           r.Pasos,
		Pais:            r.Pais,
		Duracion:        r.Duracion,
		Porciones:       r.Porciones,
		Calorias:        r.Calorias,
		Categoria:       r.CategoriaInterna,
		Contexto:        r.Contexto,
		ValoracionVotos: r.ValoracionVotos,
		Comensales:      r.Comensales,
		Tiempo:          r.Tiempo,
		Dificultad:      r.Dificultad,
		Categoria2:      r.Categoria2,
		CategoriaRaw:    r.CategoriaRaw,
	}
}

// TitleCase capitalizes each word for display ("pollastre al forn" ->
// "Pollastre Al Forn"). Stored names stay lowercase.
func TitleCase(s string) string {
	return cases.Title(language.Und).String(s)
}
