//go:build integration

package gemini_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/fwojciec/encarte"
	"github.com/fwojciec/encarte/gemini"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func TestClassifier_Integration_ReturnsTaxonomyCategory(t *testing.T) {
	t.Parallel()

	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		t.Skip("GEMINI_API_KEY not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	require.NoError(t, err)

	c := gemini.NewClassifier(client, "")
	got, err := c.Classify(ctx, "Desinfetante Pinho Sol", encarte.DefaultTaxonomy().Categories())

	require.NoError(t, err)
	assert.Equal(t, encarte.CategoryLimpeza, got)
}
