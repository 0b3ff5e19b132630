package importer

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// CatalogSchema is the top-level YAML structure of a lesson catalog file.
type CatalogSchema struct {
	Lessons []LessonImport `yaml:"lessons"`
}

// LessonImport defines one lesson in the catalog file. An omitted status
// means locked.
type LessonImport struct {
	ID     int    `yaml:"id"`
	Title  string `yaml:"title"`
	Status string `yaml:"status,omitempty"`
}

// ParseCatalog decodes a catalog document. Unknown keys are rejected so a
// misspelled field is reported instead of silently dropped.
func ParseCatalog(data []byte) (*CatalogSchema, error) {
	var schema CatalogSchema
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&schema); err != nil {
		if errors.Is(err, io.EOF) {
			return &schema, nil
		}
		return nil, fmt.Errorf("parsing catalog: %w", err)
	}
	return &schema, nil
}

// LoadCatalog reads and parses a catalog YAML file.
func LoadCatalog(path string) (*CatalogSchema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseCatalog(data)
}

// LoadOrEmpty is LoadCatalog, except that a missing file yields an empty
// catalog.
func LoadOrEmpty(path string) (*CatalogSchema, error) {
	schema, err := LoadCatalog(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &CatalogSchema{}, nil
	}
	return schema, err
}

// WriteCatalog encodes the schema and replaces path atomically.
func WriteCatalog(path string, schema *CatalogSchema) error {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(schema); err != nil {
		return fmt.Errorf("encoding catalog: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("encoding catalog: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating catalog directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".catalog-*.yaml")
	if err != nil {
		return fmt.Errorf("writing catalog: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		return fmt.Errorf("writing catalog: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("writing catalog: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replacing catalog: %w", err)
	}
	return nil
}
