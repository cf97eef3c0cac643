// Package chatbot implements the rule-based cooking assistant: a fixed
// priority ladder of message classes over normalized text, falling through
// to entity extraction plus a recipe search.
package chatbot

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"receptari/internal/category"
	"receptari/internal/intent"
	"receptari/internal/recipe"
	"receptari/internal/textnorm"
	"receptari/pkg/models"
	"receptari/pkg/random"
)

// Message classes are detected by plain substring containment, not word
// boundaries. That coarseness is intentional and mirrors the search side.
var (
	greetings       = []string{"hola", "bon dia", "que tal"}
	farewells       = []string{"gracies", "adeu", "merci"}
	listCommands    = []string{"categories", "paisos"}
	suggestCommands = []string{"suggereix", "que menjo", "atzar"}
)

// chatSearchLimit caps the candidate pool the random chat pick draws from.
const chatSearchLimit = 50

type Reply struct {
	Response string         `json:"response"`
	Recipe   *models.Recipe `json:"recipe,omitempty"`
}

type Responder struct {
	Repo      *recipe.Repo
	Extractor *intent.Extractor
	Log       *zap.Logger
	Rand      *random.Source
}

func NewResponder(repo *recipe.Repo, ext *intent.Extractor, log *zap.Logger, rnd *random.Source) *Responder {
	return &Responder{Repo: repo, Extractor: ext, Log: log, Rand: rnd}
}

// Respond handles one chat message. Every call is independent; no state
// survives between messages.
func (r *Responder) Respond(ctx context.Context, message string) Reply {
	normalized := textnorm.Normalize(message)

	if containsAny(normalized, greetings) {
		return Reply{Response: "Hola! Sóc el teu assistent de cuina. Què t'agradaria cuinar avui?"}
	}

	if containsAny(normalized, farewells) {
		return Reply{Response: "De res! Gaudeix del teu plat. Fins aviat!"}
	}

	if containsAny(normalized, listCommands) {
		names := make([]string, 0, len(category.Keys))
		for _, key := range category.Keys {
			names = append(names, "'"+category.DisplayNames[key]+"'")
		}
		return Reply{Response: "Puc buscar receptes de: " + strings.Join(names, ", ")}
	}

	if containsAny(normalized, suggestCommands) {
		return r.suggest(ctx)
	}

	return r.search(ctx, message)
}

func (r *Responder) suggest(ctx context.Context) Reply {
	rec, err := r.Repo.RandomOne(ctx)
	if err != nil {
		r.Log.Error("random suggestion failed", zap.Error(err))
	}
	if err != nil || rec == nil {
		return Reply{Response: "Error al cercar sugeriment."}
	}

	pub := rec.Public()
	return Reply{
		Response: fmt.Sprintf("Et suggereixo: **%s**", pub.Nombre),
		Recipe:   &pub,
	}
}

func (r *Responder) search(ctx context.Context, message string) Reply {
	term, categoryKey := r.Extractor.Extract(message)

	if len(term) < 2 && categoryKey == intent.CategoryAll {
		return Reply{Response: "Específica una mica més quin ingredient o plat busques (ex: 'vull pollastre')."}
	}

	results, err := r.Repo.Search(ctx, recipe.SearchQuery{
		Term:      term,
		Category:  categoryKey,
		Limit:     chatSearchLimit,
		MatchText: true,
	})
	if err != nil {
		r.Log.Error("chat search failed", zap.String("term", term), zap.Error(err))
		results = nil
	}

	if len(results) == 0 {
		return Reply{Response: fmt.Sprintf("Ho sento, no he trobat cap recepta de '%s'.", term)}
	}

	pub := results[r.Rand.Intn(len(results))].Public()
	return Reply{
		Response: fmt.Sprintf("He trobat això: **%s**. T'interessa?", pub.Nombre),
		Recipe:   &pub,
	}
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
