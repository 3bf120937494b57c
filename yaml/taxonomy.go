// Package yaml loads encarte configuration from YAML files.
package yaml

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/fwojciec/encarte"
	yaml "gopkg.in/yaml.v3"
)

// taxonomyFile is the on-disk taxonomy schema.
type taxonomyFile struct {
	Categories []categoryEntry `yaml:"categories"`
}

type categoryEntry struct {
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords,flow"`
}

// DecodeTaxonomy reads a taxonomy from r. Categories keep file order, which
// is their matching priority. Unknown fields are rejected.
func DecodeTaxonomy(r io.Reader) (*encarte.Taxonomy, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f taxonomyFile
	if err := dec.Decode(&f); err != nil {
		if err == io.EOF {
			return nil, encarte.Errorf(encarte.EINVALID, "taxonomy file is empty")
		}
		return nil, encarte.Errorf(encarte.EINVALID, "invalid taxonomy: %v", err)
	}

	t := &encarte.Taxonomy{Rules: make([]encarte.CategoryRule, 0, len(f.Categories))}
	for _, c := range f.Categories {
		t.Rules = append(t.Rules, encarte.CategoryRule{
			Category: encarte.Category(c.Name),
			Keywords: c.Keywords,
		})
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// ReadTaxonomyFile loads a taxonomy from the YAML file at path.
func ReadTaxonomyFile(path string) (*encarte.Taxonomy, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read taxonomy: %w", err)
	}
	return DecodeTaxonomy(bytes.NewReader(b))
}

// EncodeTaxonomy writes t in the format read by DecodeTaxonomy.
func EncodeTaxonomy(w io.Writer, t *encarte.Taxonomy) error {
	var f taxonomyFile
	for _, r := range t.Rules {
		f.Categories = append(f.Categories, categoryEntry{Name: string(r.Category), Keywords: r.Keywords})
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&f); err != nil {
		return err
	}
	return enc.Close()
}
