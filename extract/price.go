package extract

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/fwojciec/encarte"
)

// pricePattern is one entry of the ordered price recognition table.
type pricePattern struct {
	name string
	re   *regexp.Regexp

	// guarded patterns end with a one-character guard after the amount;
	// stripping stops at the end of the amount so the guard survives.
	guarded bool
}

// pricePatterns are tried in order. Currency-marked forms come before bare
// amounts so a marked price wins over any number preceding it.
var pricePatterns = []pricePattern{
	{name: "currency comma decimal", re: regexp.MustCompile(`R\$\s*(\d{1,3}(?:\.\d{3})*,\d{2})`)},
	{name: "currency dot decimal", re: regexp.MustCompile(`R\$\s*(\d{1,3}(?:\.\d{3})*\.\d{2})(?:\D|$)`), guarded: true},
	{name: "ocr currency", re: regexp.MustCompile(`RS\s*(\d{1,3}(?:\.\d{3})*,\d{2})`)},
	{name: "trailing currency", re: regexp.MustCompile(`(\d{1,3}(?:\.\d{3})*,\d{2})\s*R\$`)},
	{name: "bare comma decimal", re: regexp.MustCompile(`\b(\d{1,3}(?:\.\d{3})*,\d{2})\b`)},
	{name: "bare dot decimal", re: regexp.MustCompile(`\b(\d{1,3}(?:\.\d{3})*\.\d{2})\b`)},
	{name: "plain comma decimal", re: regexp.MustCompile(`\b(\d+,\d{2})\b`)},
	{name: "plain dot decimal", re: regexp.MustCompile(`\b(\d+\.\d{2})\b`)},
}

// ParsePrice returns the first price found in text. The first pattern whose
// first match yields an amount within [encarte.MinPrice, encarte.MaxPrice]
// wins; ok is false when no pattern does.
func ParsePrice(text string) (price encarte.Price, ok bool) {
	folded := asciiFold(text)
	for _, p := range pricePatterns {
		m := p.re.FindStringSubmatchIndex(folded)
		if m == nil {
			continue
		}
		f, err := strconv.ParseFloat(normalizeAmount(text[m[2]:m[3]]), 64)
		if err != nil {
			continue
		}
		if f < encarte.MinPrice.Float64() || f > encarte.MaxPrice.Float64() {
			continue
		}
		return encarte.PriceFromFloat(f), true
	}
	return 0, false
}

// normalizeAmount converts a locale-formatted amount to a decimal literal.
// With both separators present, dots group thousands and the comma is the
// decimal point.
func normalizeAmount(s string) string {
	switch {
	case strings.Contains(s, ".") && strings.Contains(s, ","):
		s = strings.ReplaceAll(s, ".", "")
		return strings.ReplaceAll(s, ",", ".")
	case strings.Contains(s, ","):
		return strings.ReplaceAll(s, ",", ".")
	default:
		return s
	}
}

// StripPrices removes every price-pattern match from text. Patterns are
// applied one after another, each to the output of the previous one.
func StripPrices(text string) string {
	for _, p := range pricePatterns {
		text = stripPattern(text, p)
	}
	return text
}

func stripPattern(text string, p pricePattern) string {
	matches := p.re.FindAllStringSubmatchIndex(asciiFold(text), -1)
	if matches == nil {
		return text
	}
	var b strings.Builder
	last := 0
	for _, m := range matches {
		end := m[1]
		if p.guarded {
			end = m[3]
		}
		b.WriteString(text[last:m[0]])
		last = end
	}
	b.WriteString(text[last:])
	return b.String()
}

// asciiFold replaces each non-ASCII letter or digit with 'x' and each
// non-ASCII space with ' ', byte for byte. Word boundaries and \s in the
// ASCII-only patterns then fall where they would in Unicode text ("Maçã1,99"
// has none before the 1, "R$\u00a04,59" has a space), and match offsets
// still index the original text.
func asciiFold(text string) string {
	i := 0
	for i < len(text) && text[i] < utf8.RuneSelf {
		i++
	}
	if i == len(text) {
		return text
	}

	b := []byte(text)
	for i < len(b) {
		if b[i] < utf8.RuneSelf {
			i++
			continue
		}
		r, size := utf8.DecodeRune(b[i:])
		var fill byte
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r), unicode.IsMark(r):
			fill = 'x'
		case unicode.IsSpace(r):
			fill = ' '
		}
		if fill != 0 {
			for j := i; j < i+size; j++ {
				b[j] = fill
			}
		}
		i += size
	}
	return string(b)
}
