package main_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/fwojciec/encarte"
	main "github.com/fwojciec/encarte/cmd/encarte"
	"github.com/fwojciec/encarte/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const flyer = `Ofertas da semana
Arroz Tio João 5kg R$ 23,99
Leite Integral 1L R$ 4,59
Detergente Ypê R$ 2,19
`

// run executes the CLI against a fresh Main sharing dbPath.
func run(t *testing.T, dbPath string, args ...string) (string, string, error) {
	t.Helper()
	m := &main.Main{DBPath: dbPath, LogLevel: slog.LevelError}
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	err := m.Run(context.Background(), args, stdout, stderr)
	return stdout.String(), stderr.String(), err
}

func TestMain_Run_EndToEnd(t *testing.T) {
	t.Parallel()

	dbPath := filepath.Join(t.TempDir(), "encarte.db")
	path := writeFlyer(t, "encarte.txt", flyer)

	stdout, stderr, err := run(t, dbPath, "ingest", "mercado-a", path)
	require.NoError(t, err, stderr)
	assert.Contains(t, stdout, `Stored 3 new of 3 products for "mercado-a"`)

	// A second run of the same flyer stores nothing new.
	stdout, stderr, err = run(t, dbPath, "ingest", "mercado-a", path)
	require.NoError(t, err, stderr)
	assert.Contains(t, stdout, `Stored 0 new of 3 products`)

	stdout, stderr, err = run(t, dbPath, "products", "--json", "--category", "limpeza")
	require.NoError(t, err, stderr)
	var products []map[string]any
	require.NoError(t, json.Unmarshal([]byte(stdout), &products))
	require.Len(t, products, 1)
	assert.Contains(t, products[0]["name"], "Detergente")
	assert.Equal(t, "mercado-a", products[0]["source"])
	assert.NotEmpty(t, products[0]["id"])

	stdout, stderr, err = run(t, dbPath, "sources")
	require.NoError(t, err, stderr)
	assert.Equal(t, "mercado-a  3 products\n", stdout)

	_, stderr, err = run(t, dbPath, "delete", "mercado-a", "--force")
	require.NoError(t, err, stderr)

	stdout, stderr, err = run(t, dbPath, "sources")
	require.NoError(t, err, stderr)
	assert.Contains(t, stdout, "No sources found")
}

func TestMain_Run_ExtractDoesNotOpenDatabase(t *testing.T) {
	t.Parallel()

	// A path inside a missing directory cannot be opened.
	dbPath := filepath.Join(t.TempDir(), "missing", "dir", "encarte.db")
	path := writeFlyer(t, "encarte.txt", flyer)

	stdout, stderr, err := run(t, dbPath, "extract", path, "-s", "mercado-a", "--json")

	require.NoError(t, err, stderr)
	var products []map[string]any
	require.NoError(t, json.Unmarshal([]byte(stdout), &products))
	assert.Len(t, products, 3)
}

func TestMain_Run_UsesPresetProductService(t *testing.T) {
	t.Parallel()

	var filter encarte.ProductFilter
	m := &main.Main{
		DBPath:   filepath.Join(t.TempDir(), "unused.db"),
		LogLevel: slog.LevelError,
		ProductService: &mock.ProductService{
			FindProductsFn: func(_ context.Context, f encarte.ProductFilter) ([]*encarte.Product, error) {
				filter = f
				return nil, nil
			},
		},
	}

	stdout := &bytes.Buffer{}
	err := m.Run(context.Background(), []string{"products", "--limit", "5", "--promotions"}, stdout, &bytes.Buffer{})

	require.NoError(t, err)
	assert.Nil(t, m.DB)
	assert.Equal(t, 5, filter.Limit)
	require.NotNil(t, filter.Promotion)
	assert.True(t, *filter.Promotion)
	assert.Contains(t, stdout.String(), "No products found")
}

func TestMain_Run_TaxonomyFileErrors(t *testing.T) {
	t.Parallel()

	m := &main.Main{
		DBPath:       filepath.Join(t.TempDir(), "encarte.db"),
		TaxonomyPath: filepath.Join(t.TempDir(), "missing.yaml"),
		LogLevel:     slog.LevelError,
	}
	path := writeFlyer(t, "encarte.txt", flyer)
	stderr := &bytes.Buffer{}

	err := m.Run(context.Background(), []string{"extract", path, "-s", "mercado-a"}, &bytes.Buffer{}, stderr)

	require.Error(t, err)
	assert.Contains(t, stderr.String(), "ENCARTE_TAXONOMY")
}
