package encarte

// Category is a product category tag.
type Category string

// Category constants for the built-in taxonomy.
const (
	CategoryHortifruti Category = "hortifruti"
	CategoryCarnes     Category = "carnes"
	CategoryLaticinios Category = "laticinios"
	CategoryBebidas    Category = "bebidas"
	CategoryLimpeza    Category = "limpeza"
	CategoryPadaria    Category = "padaria"
	CategoryMercearia  Category = "mercearia"
	CategoryHigiene    Category = "higiene"

	// CategoryOther is assigned when no taxonomy rule matches.
	CategoryOther Category = "other"
)

// CategoryRule maps a category to the keywords that select it.
type CategoryRule struct {
	Category Category `json:"category"`
	Keywords []string `json:"keywords"`
}

// Taxonomy is an ordered list of category rules. Earlier rules win when
// more than one matches a product name.
type Taxonomy struct {
	Rules []CategoryRule `json:"rules"`
}

// Validate returns an error if the taxonomy cannot be used for matching.
func (t *Taxonomy) Validate() error {
	if len(t.Rules) == 0 {
		return Errorf(EINVALID, "taxonomy has no categories")
	}
	seen := make(map[Category]bool, len(t.Rules))
	for i, r := range t.Rules {
		if r.Category == "" {
			return Errorf(EINVALID, "taxonomy rule %d: category required", i)
		}
		if r.Category == CategoryOther {
			return Errorf(EINVALID, "taxonomy rule %d: category %q is reserved", i, CategoryOther)
		}
		if seen[r.Category] {
			return Errorf(EINVALID, "taxonomy rule %d: duplicate category %q", i, r.Category)
		}
		seen[r.Category] = true
		if len(r.Keywords) == 0 {
			return Errorf(EINVALID, "taxonomy category %q has no keywords", r.Category)
		}
		for _, k := range r.Keywords {
			if k == "" {
				return Errorf(EINVALID, "taxonomy category %q has an empty keyword", r.Category)
			}
		}
	}
	return nil
}

// Categories returns the category tags in rule order.
func (t *Taxonomy) Categories() []Category {
	out := make([]Category, 0, len(t.Rules))
	for _, r := range t.Rules {
		out = append(out, r.Category)
	}
	return out
}

// Contains reports whether c is one of the taxonomy's categories.
func (t *Taxonomy) Contains(c Category) bool {
	for _, r := range t.Rules {
		if r.Category == c {
			return true
		}
	}
	return false
}

// DefaultTaxonomy returns the built-in Portuguese grocery taxonomy.
func DefaultTaxonomy() *Taxonomy {
	return &Taxonomy{Rules: []CategoryRule{
		{CategoryHortifruti, []string{
			"alface", "tomate", "cebola", "batata", "cenoura", "fruta", "verdura",
			"legume", "banana", "laranja", "maçã", "maca", "abacaxi", "limão", "limao",
			"couve", "repolho", "beterraba", "abobora", "abóbora", "melancia", "uva",
		}},
		{CategoryCarnes, []string{
			"carne", "frango", "peixe", "bovina", "suína", "suina", "bacon", "contra",
			"file", "filé", "picanha", "alcatra", "costela", "linguiça", "linguica",
			"salsicha", "presunto", "mortadela", "salame",
		}},
		{CategoryLaticinios, []string{
			"leite", "queijo", "manteiga", "iogurte", "requeijão", "requeijao", "creme",
			"nata", "yogurte", "coalhada", "parmesão", "parmesao",
		}},
		{CategoryBebidas, []string{
			"refrigerante", "suco", "água", "agua", "energético", "energetico",
			"isotônico", "isotonico",
		}},
		{CategoryLimpeza, []string{
			"sabão", "sabao", "detergente", "álcool", "alcool", "desinfetante", "limpa",
			"multiuso", "amaciante", "água sanitária", "agua sanitaria", "lustra",
			"pano", "esponja", "vassoura", "rodo",
		}},
		{CategoryPadaria, []string{
			"pão", "pao", "bolo", "bisnaga", "francês", "frances", "caseiro",
			"croissant", "baguete", "broa", "sonho", "torta", "bolacha", "biscoito",
		}},
		{CategoryMercearia, []string{
			"arroz", "feijão", "feijao", "açúcar", "acucar", "café", "cafe", "óleo",
			"oleo", "farinha", "macarrão", "macarrao", "molho", "extrato", "sal",
			"tempero", "conserva", "lata", "enlatado",
		}},
		{CategoryHigiene, []string{
			"shampoo", "condicionador", "sabonete", "creme dental", "pasta dental",
			"escova", "papel higiênico", "papel higienico", "absorvente", "fralda",
			"desodorante", "perfume", "colônia", "colonia",
		}},
	}}
}
