package match

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"acheiBack/internal/models"
)

// Attribute weights of the similarity score. The weighted sum stays in [0,1].
const (
	weightCategory = 0.35
	weightLocation = 0.25
	weightColor    = 0.15
	weightBrand    = 0.10
	weightText     = 0.15
)

// Score computes the similarity between two items. It is pure and symmetric:
// Score(a, b) == Score(b, a). A missing attribute on either side contributes zero
// for that field, except color and brand where both-null counts as a match.
func Score(a, b models.Item) float64 {
	var s float64
	if refEqual(a.CategoryID, b.CategoryID, false) {
		s += weightCategory
	}
	if refEqual(a.LocationID, b.LocationID, false) {
		s += weightLocation
	}
	if refEqual(a.ColorID, b.ColorID, true) {
		s += weightColor
	}
	if refEqual(a.BrandID, b.BrandID, true) {
		s += weightBrand
	}
	s += weightText * textSimilarity(itemText(a), itemText(b))
	return s
}

func refEqual(a, b *int, bothNilMatch bool) bool {
	if a == nil || b == nil {
		return bothNilMatch && a == nil && b == nil
	}
	return *a == *b
}

func itemText(it models.Item) string {
	return strings.TrimSpace(it.Name + " " + it.Description)
}

// textSimilarity is the token overlap ratio (Jaccard) over normalized token sets.
// Two empty texts count as identical.
func textSimilarity(a, b string) float64 {
	ta := tokenize(a)
	tb := tokenize(b)
	if len(ta) == 0 && len(tb) == 0 {
		return 1
	}
	if len(ta) == 0 || len(tb) == 0 {
		return 0
	}
	both := 0
	for tok := range ta {
		if _, ok := tb[tok]; ok {
			both++
		}
	}
	union := len(ta) + len(tb) - both
	return float64(both) / float64(union)
}

var foldDiacritics = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

func tokenize(text string) map[string]struct{} {
	folded, _, err := transform.String(foldDiacritics, text)
	if err != nil {
		folded = text
	}
	folded = strings.ToLower(folded)

	tokens := make(map[string]struct{})
	for _, tok := range strings.FieldsFunc(folded, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	}) {
		tokens[tok] = struct{}{}
	}
	return tokens
}
