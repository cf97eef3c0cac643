package textnorm

import (
	"net/url"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var stripAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize canonicalizes arbitrary text into the form used for storage and
// querying: lowercase ASCII letters and digits separated by single spaces.
// It is total (never fails) and idempotent.
func Normalize(text string) string {
	if text == "" {
		return ""
	}

	if decoded, err := url.PathUnescape(text); err == nil {
		text = decoded
	}

	// Best-effort repair of double-encoded text: re-read the runes as if
	// they had been decoded as latin-1 when the bytes were really UTF-8.
	// A strict decode failure keeps the original; a repair that shrank the
	// text below half its length is treated as destruction, not repair.
	if repaired, ok := repairMojibake(text); ok &&
		utf8.RuneCountInString(repaired)*2 > utf8.RuneCountInString(text) {
		text = repaired
	}

	if t, _, err := transform.String(stripAccents, text); err == nil {
		text = t
	}
	text = strings.ToLower(text)

	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			b.WriteByte(' ')
		}
	}

	return strings.Join(strings.Fields(b.String()), " ")
}

func repairMojibake(text string) (string, bool) {
	raw := make([]byte, 0, len(text))
	for _, r := range text {
		// latin-1 encode, unmappable runes dropped
		if r < 256 {
			raw = append(raw, byte(r))
		}
	}
	if !utf8.Valid(raw) {
		return "", false
	}
	return string(raw), true
}
