package main_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	main "github.com/fwojciec/encarte/cmd/encarte"
	"github.com/fwojciec/encarte/extract"
	"github.com/fwojciec/encarte/ingest"
	"github.com/stretchr/testify/require"
)

// writeFlyer writes a text flyer into a temp dir and returns its path.
func writeFlyer(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

// newDeps returns dependencies with a file-only ingester using the real
// extraction pipeline.
func newDeps() (*main.Dependencies, *bytes.Buffer, *bytes.Buffer) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	return &main.Dependencies{
		Ctx:    context.Background(),
		Stdout: stdout,
		Stderr: stderr,
		Ingester: &ingest.Ingester{
			Loader:    &ingest.Loader{},
			Extractor: extract.NewPipeline(),
		},
	}, stdout, stderr
}
