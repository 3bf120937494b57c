// Package gemini classifies product names with Google Gemini.
package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/fwojciec/encarte"
	"google.golang.org/genai"
)

// DefaultModel is the Gemini model used when none is configured.
const DefaultModel = "gemini-2.5-flash"

// Ensure Classifier implements encarte.CategoryClassifier at compile time.
var _ encarte.CategoryClassifier = (*Classifier)(nil)

// Classifier implements encarte.CategoryClassifier using Google Gemini.
// Answers are constrained to the given categories plus "other".
type Classifier struct {
	client *genai.Client
	model  string
}

// NewClassifier creates a new Classifier. An empty model selects DefaultModel.
func NewClassifier(client *genai.Client, model string) *Classifier {
	if model == "" {
		model = DefaultModel
	}
	return &Classifier{client: client, model: model}
}

// Classify returns the category Gemini picks for name. Any answer that is
// not one of categories becomes encarte.CategoryOther.
func (c *Classifier) Classify(ctx context.Context, name string, categories []encarte.Category) (encarte.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", encarte.Errorf(encarte.EINVALID, "product name required")
	}
	if len(categories) == 0 {
		return "", encarte.Errorf(encarte.EINVALID, "categories required")
	}

	result, err := c.client.Models.GenerateContent(ctx, c.model,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: BuildPrompt(name)}},
		}},
		BuildConfig(categories),
	)
	if err != nil {
		return "", fmt.Errorf("gemini: %w", err)
	}
	if result == nil {
		return "", encarte.Errorf(encarte.EINTERNAL, "gemini returned nil result")
	}

	return ParseAnswer(result.Text(), categories), nil
}

// BuildConfig returns a config that restricts the response to one of
// categories or "other".
func BuildConfig(categories []encarte.Category) *genai.GenerateContentConfig {
	enum := make([]string, 0, len(categories)+1)
	for _, cat := range categories {
		enum = append(enum, string(cat))
	}
	enum = append(enum, string(encarte.CategoryOther))

	temp := float32(0)
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{
				Text: "You classify Brazilian supermarket flyer products into store sections. " +
					"Answer with exactly one of the allowed categories. Answer \"other\" when none fits.",
			}},
		},
		Temperature:      &temp,
		ResponseMIMEType: "text/x.enum",
		ResponseSchema: &genai.Schema{
			Type: genai.TypeString,
			Enum: enum,
		},
	}
}

// BuildPrompt builds the user prompt for one product name.
func BuildPrompt(name string) string {
	return fmt.Sprintf("<product>%s</product>\n\nWhich category does this product belong to?", name)
}

// ParseAnswer maps a model answer onto categories. Case, surrounding
// whitespace, quotes and a trailing period are ignored.
func ParseAnswer(answer string, categories []encarte.Category) encarte.Category {
	a := strings.ToLower(strings.TrimSpace(answer))
	a = strings.TrimSuffix(a, ".")
	a = strings.Trim(a, "\"'` ")
	for _, cat := range categories {
		if strings.ToLower(string(cat)) == a {
			return cat
		}
	}
	return encarte.CategoryOther
}
