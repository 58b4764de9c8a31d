// Package textnorm canonicalizes free-text transaction descriptions so that
// rule matching and history lookups are case- and accent-insensitive.
package textnorm

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	// NFD decomposition followed by removal of combining marks strips accents
	// (ação -> acao, pão -> pao).
	accentStripper = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

	nonWordPattern    = regexp.MustCompile(`[^a-z0-9_ ]`)
	whitespacePattern = regexp.MustCompile(`\s+`)
	digitsOnlyPattern = regexp.MustCompile(`^[0-9]+$`)
)

// Common Portuguese misspellings seen in manually typed descriptions, mapped
// to their canonical form. Applied whole-word only.
var typoCorrections = map[string]string{
	"supermecado":   "supermercado",
	"supermerc":     "supermercado",
	"restaurnte":    "restaurante",
	"restorante":    "restaurante",
	"famarcia":      "farmacia",
	"farmacea":      "farmacia",
	"academea":      "academia",
	"alugel":        "aluguel",
	"trasferencia":  "transferencia",
	"tranferencia":  "transferencia",
	"pagameto":      "pagamento",
	"pagamneto":     "pagamento",
	"estacioamento": "estacionamento",
	"merecado":      "mercado",
}

// Portuguese prepositions, articles and conjunctions that carry no signal for
// categorization.
var stopWords = map[string]struct{}{
	"de": {}, "da": {}, "do": {}, "das": {}, "dos": {},
	"em": {}, "no": {}, "na": {}, "nos": {}, "nas": {},
	"para": {}, "pra": {}, "por": {}, "com": {}, "sem": {},
	"sob": {}, "sobre": {}, "ate": {}, "aos": {},
	"um": {}, "uma": {}, "uns": {}, "umas": {},
	"os": {}, "as": {}, "ao": {}, "ou": {}, "que": {},
}

// Normalize canonicalizes a raw description: lowercase, accents stripped,
// punctuation replaced by spaces, whitespace collapsed, trimmed. The result
// contains only lowercase ASCII word characters and single spaces, and the
// function is idempotent.
func Normalize(text string) string {
	if text == "" {
		return ""
	}

	lowered := strings.ToLower(text)

	stripped, _, err := transform.String(accentStripper, lowered)
	if err != nil {
		// Transform failures leave the lowered text as-is; the regexes below
		// still remove anything outside the word alphabet.
		stripped = lowered
	}

	cleaned := nonWordPattern.ReplaceAllString(stripped, " ")
	collapsed := whitespacePattern.ReplaceAllString(cleaned, " ")
	return strings.TrimSpace(collapsed)
}

// Tokenize normalizes the text and returns the meaningful tokens in first-seen
// order: typos corrected, short tokens, pure numbers and stop words removed,
// duplicates dropped.
func Tokenize(text string) []string {
	normalized := Normalize(text)
	if normalized == "" {
		return nil
	}

	seen := make(map[string]struct{})
	var tokens []string
	for _, word := range strings.Split(normalized, " ") {
		if corrected, ok := typoCorrections[word]; ok {
			word = corrected
		}
		if len(word) <= 2 {
			continue
		}
		if digitsOnlyPattern.MatchString(word) {
			continue
		}
		if _, stop := stopWords[word]; stop {
			continue
		}
		if _, dup := seen[word]; dup {
			continue
		}
		seen[word] = struct{}{}
		tokens = append(tokens, word)
	}
	return tokens
}

// SplitWords normalizes the text and splits it into all of its words, keeping
// short and numeric ones. Used for overlap comparison where every word counts.
func SplitWords(text string) []string {
	normalized := Normalize(text)
	if normalized == "" {
		return nil
	}
	return strings.Split(normalized, " ")
}
