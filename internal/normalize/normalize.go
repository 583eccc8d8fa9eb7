// Package normalize turns spoken-style Polish math utterances into the
// compact notation the answer checker compares against.
package normalize

import (
	"strings"
)

// phraseRule rewrites a fixed multi-word sequence into a single token.
type phraseRule struct {
	words []string
	repl  string
}

func phrase(words, repl string) phraseRule {
	return phraseRule{words: strings.Fields(words), repl: repl}
}

// fractionPhrases are applied before any single-word rewrite, in order.
var fractionPhrases = []phraseRule{
	phrase("jedna druga", "1/2"),
	phrase("jedna trzecia", "1/3"),
	phrase("dwie trzecie", "2/3"),
	phrase("jedna czwarta", "1/4"),
	phrase("dwie czwarte", "2/4"),
	phrase("trzy czwarte", "3/4"),
	phrase("jedna piąta", "1/5"),
	phrase("jedna szósta", "1/6"),
	phrase("pięć szóstych", "5/6"),
	phrase("jedna ósma", "1/8"),
	phrase("dwie ósme", "2/8"),
	phrase("jedna dziesiąta", "1/10"),
	phrase("sześć dwunastych", "6/12"),
	phrase("dziesięć dwunastych", "10/12"),
	phrase("osiem czwartych", "8/4"),
	phrase("połowa", "1/2"),
	phrase("pół", "1/2"),
	phrase("ćwierć", "1/4"),
}

// operatorPhrases are multi-word operators; they run after fractions.
var operatorPhrases = []phraseRule{
	phrase("podzielić przez", ":"),
	phrase("podzielone przez", ":"),
	phrase("dzielone przez", ":"),
	phrase("równa się", "="),
	phrase("jest równe", "="),
	phrase("do kwadratu", "^2"),
}

// numberWords covers the values learners actually say when answering.
var numberWords = map[string]string{
	"zero":           "0",
	"jeden":          "1",
	"jedna":          "1",
	"jedno":          "1",
	"dwa":            "2",
	"dwie":           "2",
	"trzy":           "3",
	"cztery":         "4",
	"pięć":           "5",
	"sześć":          "6",
	"siedem":         "7",
	"osiem":          "8",
	"dziewięć":       "9",
	"dziesięć":       "10",
	"jedenaście":     "11",
	"dwanaście":      "12",
	"trzynaście":     "13",
	"czternaście":    "14",
	"piętnaście":     "15",
	"szesnaście":     "16",
	"siedemnaście":   "17",
	"osiemnaście":    "18",
	"dziewiętnaście": "19",
	"dwadzieścia":    "20",
	"trzydzieści":    "30",
	"czterdzieści":   "40",
	"pięćdziesiąt":   "50",
}

// symbolWords maps operators, separators and variable names.
var symbolWords = map[string]string{
	"plus":      "+",
	"dodać":     "+",
	"minus":     "-",
	"odjąć":     "-",
	"razy":      "*",
	"podzielić": ":",
	"przecinek": ",",
	"kropka":    ".",
	"iks":       "x",
	"igrek":     "y",
	"równe":     "=",
	"procent":   "%",
	"procentów": "%",
}

// Normalize lowercases and trims raw, rewrites fraction phrases, then
// rewrites remaining number, operator and variable words, and finally
// collapses whitespace. Tokens that already hold a fraction are left
// alone. Normalize(Normalize(s)) == Normalize(s).
func Normalize(raw string) string {
	tokens := strings.Fields(strings.ToLower(strings.TrimSpace(raw)))
	if len(tokens) == 0 {
		return ""
	}

	for _, r := range fractionPhrases {
		tokens = applyPhrase(tokens, r)
	}
	for _, r := range operatorPhrases {
		tokens = applyPhrase(tokens, r)
	}

	for i, tok := range tokens {
		if strings.Contains(tok, "/") {
			continue
		}
		if repl, ok := rewriteWord(tok); ok {
			tokens[i] = repl
		}
	}

	tokens = combineTens(tokens)
	tokens = joinDecimals(tokens)
	tokens = attachPercent(tokens)

	return strings.Join(tokens, " ")
}

// applyPhrase replaces every occurrence of r.words in tokens, scanning
// left to right.
func applyPhrase(tokens []string, r phraseRule) []string {
	n := len(r.words)
	out := tokens[:0:0]
	for i := 0; i < len(tokens); {
		if i+n <= len(tokens) && matchAt(tokens[i:i+n], r.words) {
			out = append(out, r.repl)
			i += n
			continue
		}
		out = append(out, tokens[i])
		i++
	}
	return out
}

func matchAt(tokens, words []string) bool {
	for i, w := range words {
		if bare(tokens[i]) != w {
			return false
		}
	}
	return true
}

// bare strips sentence punctuation trailing a spoken word.
func bare(tok string) string {
	trimmed := strings.TrimRight(tok, ".,!?;")
	if trimmed == "" {
		return tok
	}
	return trimmed
}

func rewriteWord(tok string) (string, bool) {
	w := bare(tok)
	if v, ok := numberWords[w]; ok {
		return v, true
	}
	if v, ok := symbolWords[w]; ok {
		return v, true
	}
	return "", false
}

// combineTens folds "20 5" into "25", as produced by "dwadzieścia pięć".
func combineTens(tokens []string) []string {
	out := tokens[:0:0]
	for i := 0; i < len(tokens); i++ {
		if i+1 < len(tokens) && isTens(tokens[i]) && isUnit(tokens[i+1]) {
			out = append(out, tokens[i][:1]+tokens[i+1])
			i++
			continue
		}
		out = append(out, tokens[i])
	}
	return out
}

// joinDecimals folds "12 , 56" into "12,56".
func joinDecimals(tokens []string) []string {
	out := tokens[:0:0]
	for i := 0; i < len(tokens); i++ {
		if i+2 < len(tokens) && isInt(tokens[i]) && (tokens[i+1] == "," || tokens[i+1] == ".") && isInt(tokens[i+2]) {
			out = append(out, tokens[i]+tokens[i+1]+tokens[i+2])
			i += 2
			continue
		}
		out = append(out, tokens[i])
	}
	return out
}

// attachPercent folds "20 %" into "20%".
func attachPercent(tokens []string) []string {
	out := tokens[:0:0]
	for i := 0; i < len(tokens); i++ {
		if i+1 < len(tokens) && isInt(tokens[i]) && tokens[i+1] == "%" {
			out = append(out, tokens[i]+"%")
			i++
			continue
		}
		out = append(out, tokens[i])
	}
	return out
}

func isInt(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

func isTens(s string) bool {
	return len(s) == 2 && s[0] >= '2' && s[0] <= '9' && s[1] == '0'
}

func isUnit(s string) bool {
	return len(s) == 1 && s[0] >= '1' && s[0] <= '9'
}
