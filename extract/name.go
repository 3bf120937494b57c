package extract

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// nameStopwords are unit and packaging abbreviations that never belong in a name.
var nameStopwords = map[string]bool{
	"unidade": true, "kg": true, "gr": true, "g": true, "ml": true,
	"litro": true, "l": true, "pack": true, "cx": true, "pct": true,
	"und": true, "pc": true, "dv": true, "fw": true, "cv": true,
	"pv": true, "sc": true, "ct": true, "cp": true, "tb": true, "pt": true,
}

var (
	// nameNoiseRe matches everything except letters, digits, underscore,
	// whitespace and the Latin-1 letter block.
	nameNoiseRe = regexp.MustCompile(`[^\p{L}\p{N}_\s\x{00C0}-\x{00FF}]`)

	// quantityRe matches a quantity glued to its unit, e.g. "5kg" or "900ml".
	quantityRe = regexp.MustCompile(`^\d+([a-z]+)$`)
)

// CleanName isolates a readable product name from raw flyer text: noise
// characters and unit tokens are dropped and the rest is title-cased. When
// filtering leaves fewer than three characters, the unfiltered title-cased
// text is returned instead. CleanName is idempotent.
func CleanName(raw string) string {
	tokens := strings.Fields(nameNoiseRe.ReplaceAllString(norm.NFC.String(raw), " "))

	kept := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if !isNameStopword(tok) {
			kept = append(kept, tok)
		}
	}

	name := titleCase(strings.Join(kept, " "))
	if utf8.RuneCountInString(name) >= 3 {
		return name
	}
	return titleCase(strings.Join(tokens, " "))
}

func isNameStopword(tok string) bool {
	if utf8.RuneCountInString(tok) <= 1 {
		return true
	}
	lower := strings.ToLower(tok)
	if nameStopwords[lower] {
		return true
	}
	if m := quantityRe.FindStringSubmatch(lower); m != nil {
		return nameStopwords[m[1]]
	}
	return false
}

// titleCase upper-cases every cased letter that follows an uncased
// character and lower-cases the others.
func titleCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	prevCased := false
	for _, r := range s {
		if isCased(r) {
			if prevCased {
				b.WriteRune(unicode.ToLower(r))
			} else {
				b.WriteRune(unicode.ToTitle(r))
			}
			prevCased = true
			continue
		}
		b.WriteRune(r)
		prevCased = false
	}
	return b.String()
}

func isCased(r rune) bool {
	return unicode.IsUpper(r) || unicode.IsLower(r) || unicode.IsTitle(r)
}
