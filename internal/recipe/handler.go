package recipe

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"receptari/internal/category"
	"receptari/internal/intent"
	"receptari/internal/textnorm"
	"receptari/pkg/models"
	"receptari/pkg/random"
)

const (
	// SearchResultLimit caps both the chat search and the plain search.
	SearchResultLimit = 50
	// PerCategorySample is how many rows each category contributes to an
	// unfiltered browse.
	PerCategorySample = 100
)

type Handler struct {
	Repo *Repo
	Log  *zap.Logger
	Rand *random.Source
}

func NewHandler(repo *Repo, log *zap.Logger, rnd *random.Source) *Handler {
	return &Handler{Repo: repo, Log: log, Rand: rnd}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/recipes", h.list)        // GET /api/recipes?q=&cat=
	rg.GET("/recipes/:id", h.getByID) // GET /api/recipes/:id
	rg.GET("/categories", h.categories)
}

// list serves both modes: with a term or category it is a plain filtered
// search; with neither it browses a shuffled random sample drawn from every
// category so the unfiltered view stays balanced.
func (h *Handler) list(c *gin.Context) {
	term := textnorm.Normalize(c.Query("q"))
	cat := strings.TrimSpace(c.DefaultQuery("cat", intent.CategoryAll))

	var found []models.RecipeDB

	if term == "" && cat == intent.CategoryAll {
		for _, key := range category.Keys {
			sample, err := h.Repo.SampleByCategory(c.Request.Context(), key, PerCategorySample)
			if err != nil {
				h.Log.Error("browse sample failed", zap.String("category", key), zap.Error(err))
				continue
			}
			found = append(found, sample...)
		}
		h.Rand.Shuffle(len(found), func(i, j int) {
			found[i], found[j] = found[j], found[i]
		})
	} else {
		var err error
		found, err = h.Repo.Search(c.Request.Context(), SearchQuery{
			Term:     term,
			Category: cat,
			Limit:    SearchResultLimit,
		})
		if err != nil {
			// degrade to an empty result set, never a hard failure
			h.Log.Error("recipe search failed", zap.String("term", term), zap.Error(err))
			found = nil
		}
	}

	out := make([]models.Recipe, 0, len(found))
	for _, rec := range found {
		out = append(out, rec.Public())
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) getByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	rec, err := h.Repo.GetByID(c.Request.Context(), id)
	if err != nil {
		h.Log.Error("recipe get failed", zap.Int64("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "get failed"})
		return
	}
	if rec == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	c.JSON(http.StatusOK, rec.Public())
}

func (h *Handler) categories(c *gin.Context) {
	out := make([]gin.H, 0, len(category.Keys))
	for _, key := range category.Keys {
		out = append(out, gin.H{"key": key, "name": category.DisplayNames[key]})
	}
	c.JSON(http.StatusOK, out)
}
