package intent

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractTermAndCategory(t *testing.T) {
	e := NewExtractor()

	term, key := e.Extract("vull una recepta de pollastre de mexic")
	assert.Equal(t, "mexic", key)
	assert.Equal(t, "pollastre", term)
}

func TestExtractMultiWordAliasPrecedence(t *testing.T) {
	e := NewExtractor()

	// "estats units" must win before any shorter alias inside it
	term, key := e.Extract("vull cuinar un plat dels estats units")
	assert.Equal(t, "eua", key)
	assert.NotContains(t, term, "estats")
	assert.NotContains(t, term, "units")
}

func TestExtractAccentedAlias(t *testing.T) {
	e := NewExtractor()

	_, key := e.Extract("receptes d'Espanya")
	assert.Equal(t, "españa", key)

	_, key = e.Extract("alguna cosa de Mèxic")
	assert.Equal(t, "mexic", key)
}

func TestExtractNoCategory(t *testing.T) {
	e := NewExtractor()

	term, key := e.Extract("vull pollastre")
	assert.Equal(t, CategoryAll, key)
	assert.Equal(t, "pollastre", term)
}

func TestExtractStopwordsRemoved(t *testing.T) {
	e := NewExtractor()

	term, _ := e.Extract("m'agradaria preparar un plat de tonyina amb arros")
	for _, w := range []string{"agradaria", "preparar", "plat", "de", "amb", "un"} {
		assert.NotContains(t, strings.Fields(term), w)
	}
	assert.Contains(t, term, "tonyina")
	assert.Contains(t, term, "arros")
}

func TestExtractEmpty(t *testing.T) {
	e := NewExtractor()

	term, key := e.Extract("")
	assert.Equal(t, "", term)
	assert.Equal(t, CategoryAll, key)
}

func TestSynonymsSortedLongestFirst(t *testing.T) {
	e := NewExtractor()
	for i := 1; i < len(e.synonyms); i++ {
		assert.GreaterOrEqual(t,
			len(e.synonyms[i-1].phrase), len(e.synonyms[i].phrase))
	}
}
