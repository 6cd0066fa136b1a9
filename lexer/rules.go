package lexer

import (
	"regexp"
	"sort"
	"unicode"

	"ember/token"
)

// keywordRule is one entry of the lexer's sorted keyword table. alpha marks
// entries that need a trailing word-boundary check, so that a bare literal
// match like `if` cannot split an identifier like `iffy`.
type keywordRule struct {
	text  string
	kind  token.TokenType
	alpha bool
}

type classRule struct {
	name    string
	pattern *regexp.Regexp
	kind    token.TokenType
}

var ignorePatterns = []*regexp.Regexp{
	regexp.MustCompile(`^[ \t\r\n]+`),
	regexp.MustCompile(`^//[^\n]*\n?`),
}

var classRules = []classRule{
	{"identifier", regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*`), token.IDENTIFIER},
	{"integer", regexp.MustCompile(`^[0-9]+`), token.INT},
	{"string", regexp.MustCompile(`^'(\\.|[^'])*'`), token.STRING},
}

var sortedKeywords = buildSortedKeywords()

func buildSortedKeywords() []keywordRule {
	rules := make([]keywordRule, 0, len(token.KeyWords)+len(token.Symbols))
	for text, kind := range token.KeyWords {
		rules = append(rules, keywordRule{text: text, kind: kind, alpha: true})
	}
	for text, kind := range token.Symbols {
		rules = append(rules, keywordRule{text: text, kind: kind, alpha: isAlpha(text)})
	}
	sort.Slice(rules, func(i, j int) bool {
		if len(rules[i].text) != len(rules[j].text) {
			return len(rules[i].text) > len(rules[j].text)
		}
		return rules[i].text < rules[j].text
	})
	return rules
}

func isAlpha(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) && r != '_' {
			return false
		}
	}
	return len(s) > 0
}

func isIdentByte(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}
