package extract

import (
	"regexp"
	"slices"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// ignoreKeywords mark headers, footers and mechanics text rather than products.
// They match anywhere in the lowercased line.
var ignoreKeywords = []string{
	"promoção", "ofertas", "validade", "página", "pagina", "caderno", "semana",
	"supermercado", "mercado", "levou", "pagou", "leve%", "pague%", "confira",
	"destaque",
}

// ignoreUnits mark unit legends. They match whole tokens only, so
// quantities such as "5kg" inside a product line do not disqualify it.
var ignoreUnits = []string{"unidade", "kg", "gr", "ml"}

var promotionKeywords = []string{
	"promoção", "oferta", "desconto", "leve", "pague", "leve%", "pague%",
	"imperdível", "imperdivel", "black", "sexta", "super", "mega", "quinta",
}

var (
	numericOnlyRe = regexp.MustCompile(`^[\d\s.,]+$`)
	latinLetterRe = regexp.MustCompile(`[a-zA-Z\x{00C0}-\x{00FF}]`)
)

// IsProductLine reports whether line could describe a product: it is long
// enough, carries no ignore keyword, is not purely numeric and contains at
// least one Latin letter.
func IsProductLine(line string) bool {
	line = norm.NFC.String(strings.TrimSpace(line))
	if utf8.RuneCountInString(line) < 3 {
		return false
	}

	lower := strings.ToLower(line)
	if containsAny(lower, ignoreKeywords) {
		return false
	}
	for _, tok := range strings.Fields(lower) {
		if slices.Contains(ignoreUnits, tok) {
			return false
		}
	}

	if numericOnlyRe.MatchString(line) {
		return false
	}
	return latinLetterRe.MatchString(line)
}

// IsPromotionLine reports whether line mentions a promotion keyword.
func IsPromotionLine(line string) bool {
	return containsAny(strings.ToLower(norm.NFC.String(line)), promotionKeywords)
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}
