// Package intent turns a free-text chat message into a search term and an
// optional category, using word-bounded synonym and stopword matching over
// normalized text.
package intent

import (
	"regexp"
	"sort"
	"strings"

	"receptari/internal/category"
	"receptari/internal/textnorm"
)

// CategoryAll is returned when no category synonym occurs in the message.
const CategoryAll = "all"

type synonym struct {
	phrase string
	key    string
	re     *regexp.Regexp
}

// Filler words stripped from messages before the remainder becomes the
// search term. Applied in order, each as a word-bounded replacement.
var stopwords = []string{
	// verbs i accions
	"magradaria", "agradaria", "vull", "vul", "voldria", "cuinar", "cuina",
	"fer", "preparar", "buscar", "busca", "cercar", "cerca", "trobar", "troba",
	"fes", "fems", "ensenyams", "digues", "explica", "recepta", "receptes",
	"plat", "plats", "menjar", "menjars",

	// articles i connectors
	"un", "una", "uns", "unes", "el", "la", "els", "les", "en", "na",
	"de", "del", "dels", "dela", "amb", "per", "per a", "que", "qui",
}

type Extractor struct {
	synonyms  []synonym
	stopwords []*regexp.Regexp
}

// NewExtractor builds the immutable synonym table from the category catalog
// plus hand-listed aliases. Longer phrases sort first so a multi-word alias
// like "estats units" wins over anything it contains.
func NewExtractor() *Extractor {
	seen := make(map[string]struct{})
	var syns []synonym

	add := func(phrase, key string) {
		if phrase == "" {
			return
		}
		if _, dup := seen[phrase]; dup {
			return
		}
		seen[phrase] = struct{}{}
		syns = append(syns, synonym{
			phrase: phrase,
			key:    key,
			re:     regexp.MustCompile(`\b` + regexp.QuoteMeta(phrase) + `\b`),
		})
	}

	for _, key := range category.Keys {
		add(textnorm.Normalize(category.DisplayNames[key]), key)
		add(key, key)
		if key == "eua" {
			add("estats units", key)
			add("usa", key)
		}
		if key == "españa" {
			add("espanya", key)
		}
	}

	sort.SliceStable(syns, func(i, j int) bool {
		return len(syns[i].phrase) > len(syns[j].phrase)
	})

	stops := make([]*regexp.Regexp, 0, len(stopwords))
	for _, w := range stopwords {
		stops = append(stops, regexp.MustCompile(`\b`+w+`\b`))
	}

	return &Extractor{synonyms: syns, stopwords: stops}
}

// Extract returns the cleaned search term and the category key implied by
// the message, or CategoryAll when no category phrase occurs. The matched
// category phrase and every stopword are removed from the term.
func (e *Extractor) Extract(message string) (searchTerm, categoryKey string) {
	msg := textnorm.Normalize(message)
	categoryKey = CategoryAll

	var found string
	for _, s := range e.synonyms {
		if s.re.MatchString(msg) {
			found = s.phrase
			categoryKey = s.key
			break
		}
	}

	if found != "" {
		msg = strings.ReplaceAll(msg, found, " ")
	}

	for _, re := range e.stopwords {
		msg = re.ReplaceAllString(msg, " ")
	}

	return strings.Join(strings.Fields(msg), " "), categoryKey
}
