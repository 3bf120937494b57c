package extract

import (
	"strings"

	"github.com/fwojciec/encarte"
	"golang.org/x/text/unicode/norm"
)

// Categorizer assigns taxonomy categories to product names.
type Categorizer struct {
	rules []categoryRule
}

type categoryRule struct {
	category encarte.Category
	keywords []string
}

// NewCategorizer creates a Categorizer for the taxonomy.
// A nil taxonomy selects encarte.DefaultTaxonomy.
func NewCategorizer(t *encarte.Taxonomy) *Categorizer {
	if t == nil {
		t = encarte.DefaultTaxonomy()
	}
	c := &Categorizer{rules: make([]categoryRule, 0, len(t.Rules))}
	for _, r := range t.Rules {
		rule := categoryRule{category: r.Category}
		for _, k := range r.Keywords {
			rule.keywords = append(rule.keywords, normalizeKeyword(k))
		}
		c.rules = append(c.rules, rule)
	}
	return c
}

// Categorize returns the category of the first rule, in taxonomy order,
// with a keyword contained in the lowercased name. Names matching no rule
// are encarte.CategoryOther.
func (c *Categorizer) Categorize(name string) encarte.Category {
	lower := normalizeKeyword(name)
	for _, r := range c.rules {
		if containsAny(lower, r.keywords) {
			return r.category
		}
	}
	return encarte.CategoryOther
}

func normalizeKeyword(s string) string {
	return strings.ToLower(norm.NFC.String(s))
}
