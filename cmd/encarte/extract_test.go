package main_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/encarte"
	main "github.com/fwojciec/encarte/cmd/encarte"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("prints extracted products", func(t *testing.T) {
		t.Parallel()

		path := writeFlyer(t, "encarte.txt", "Arroz Tio João 5kg R$ 23,99\nValidade até 10/10\nOferta Café Pilão R$ 18,90")
		deps, stdout, stderr := newDeps()

		cmd := &main.ExtractCmd{Inputs: []string{path}, Source: "mercado-a"}
		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Empty(t, stderr.String())
		out := stdout.String()
		assert.Contains(t, out, "Arroz Tio João")
		assert.Contains(t, out, "23.99")
		assert.Contains(t, out, "mercearia")
		assert.Contains(t, out, "Café Pilão")
		assert.NotContains(t, out, "Validade")
	})

	t.Run("prints JSON", func(t *testing.T) {
		t.Parallel()

		path := writeFlyer(t, "encarte.txt", "Arroz Tio João 5kg R$ 23,99")
		deps, stdout, _ := newDeps()

		cmd := &main.ExtractCmd{Inputs: []string{path}, Source: "mercado-a", JSON: true}
		err := cmd.Run(deps)

		require.NoError(t, err)
		var got []map[string]any
		require.NoError(t, json.Unmarshal(stdout.Bytes(), &got))
		require.Len(t, got, 1)
		assert.Equal(t, "Arroz Tio João", got[0]["name"])
		assert.InDelta(t, 23.99, got[0]["price"], 0.001)
		assert.Equal(t, "mercado-a", got[0]["source"])
		assert.Equal(t, false, got[0]["promotion"])
		assert.Equal(t, "mercearia", got[0]["category"])
	})

	t.Run("prints an empty JSON array when nothing is found", func(t *testing.T) {
		t.Parallel()

		path := writeFlyer(t, "encarte.txt", "Ofertas da semana")
		deps, stdout, _ := newDeps()

		cmd := &main.ExtractCmd{Inputs: []string{path}, Source: "mercado-a", JSON: true}
		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.JSONEq(t, "[]", stdout.String())
	})

	t.Run("writes CSV with --out", func(t *testing.T) {
		t.Parallel()

		path := writeFlyer(t, "encarte.txt", "Leite Integral R$ 4,59")
		out := filepath.Join(t.TempDir(), "produtos.csv")
		deps, stdout, _ := newDeps()

		cmd := &main.ExtractCmd{Inputs: []string{path}, Source: "mercado-a", Out: out}
		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "Wrote 1 products")
		content, err := os.ReadFile(out)
		require.NoError(t, err)
		assert.Equal(t, "name,price,source,promotion,category\nLeite Integral,4.59,mercado-a,false,laticinios\n", string(content))
	})

	t.Run("warns about unreadable inputs and keeps going", func(t *testing.T) {
		t.Parallel()

		path := writeFlyer(t, "encarte.txt", "Leite Integral R$ 4,59")
		missing := filepath.Join(t.TempDir(), "missing.txt")
		deps, stdout, stderr := newDeps()

		cmd := &main.ExtractCmd{Inputs: []string{missing, path}, Source: "mercado-a"}
		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stderr.String(), "warning:")
		assert.Contains(t, stderr.String(), "missing.txt")
		assert.Contains(t, stdout.String(), "Leite Integral")
	})

	t.Run("fails when no input could be read", func(t *testing.T) {
		t.Parallel()

		deps, _, stderr := newDeps()

		cmd := &main.ExtractCmd{Inputs: []string{filepath.Join(t.TempDir(), "missing.txt")}, Source: "mercado-a"}
		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Contains(t, stderr.String(), "no input could be read")
	})

	t.Run("rejects empty source", func(t *testing.T) {
		t.Parallel()

		path := writeFlyer(t, "encarte.txt", "Leite Integral R$ 4,59")
		deps, _, stderr := newDeps()

		cmd := &main.ExtractCmd{Inputs: []string{path}, Source: ""}
		err := cmd.Run(deps)

		assert.Equal(t, encarte.EINVALID, encarte.ErrorCode(err))
		assert.Contains(t, stderr.String(), "error:")
	})
}
