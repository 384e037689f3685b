package harness

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/roach88/minidoc/internal/document"
	"github.com/roach88/minidoc/internal/store"
)

// Fixture describes initial store content: collections with their index
// declarations and seed documents.
type Fixture struct {
	Collections []CollectionFixture `yaml:"collections"`
}

// CollectionFixture declares one collection.
type CollectionFixture struct {
	// Name is the collection name.
	Name string `yaml:"name"`

	// Indexes lists index declarations applied before any document.
	Indexes []IndexFixture `yaml:"indexes,omitempty"`

	// Docs lists seed documents, inserted in declaration order.
	Docs []DocFixture `yaml:"docs,omitempty"`
}

// IndexFixture declares one index in YAML form.
type IndexFixture struct {
	// Fields lists the indexed dot paths. One field builds a single-field
	// index, two or more a composite one.
	Fields []string `yaml:"fields"`

	// Direction is "asc" (default) or "desc", applied to every field.
	Direction string `yaml:"direction,omitempty"`

	// Unique enables duplicate rejection on the field set.
	Unique bool `yaml:"unique,omitempty"`

	// Name optionally names the index for by-name operations.
	Name string `yaml:"name,omitempty"`
}

// DocFixture declares one seed document.
type DocFixture struct {
	// ID is the document id. Left empty, a fresh id is generated.
	ID string `yaml:"id,omitempty"`

	// Doc is the document body.
	Doc map[string]any `yaml:"doc"`
}

// LoadFixture reads and parses a fixture YAML file. Unknown fields are
// rejected so typos fail loudly instead of silently dropping content.
func LoadFixture(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixture file: %w", err)
	}

	var fixture Fixture
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&fixture); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateFixture(&fixture); err != nil {
		return nil, fmt.Errorf("invalid fixture: %w", err)
	}
	return &fixture, nil
}

func validateFixture(f *Fixture) error {
	for i, c := range f.Collections {
		if c.Name == "" {
			return fmt.Errorf("collections[%d]: name is required", i)
		}
		for j, idx := range c.Indexes {
			if len(idx.Fields) == 0 {
				return fmt.Errorf("collections[%d].indexes[%d]: fields is required", i, j)
			}
			if _, err := parseDirection(idx.Direction); err != nil {
				return fmt.Errorf("collections[%d].indexes[%d]: %w", i, j, err)
			}
		}
		for j, d := range c.Docs {
			if d.Doc == nil {
				return fmt.Errorf("collections[%d].docs[%d]: doc is required", i, j)
			}
		}
	}
	return nil
}

// Apply creates every collection of the fixture in s and inserts its
// seed documents. Collections are created with their indices up front,
// so seed documents violating a unique index fail the whole apply.
func (f *Fixture) Apply(s store.Store) error {
	for _, c := range f.Collections {
		indices := make([]store.Index, 0, len(c.Indexes))
		for _, idx := range c.Indexes {
			built, err := BuildIndex(idx)
			if err != nil {
				return fmt.Errorf("collection %q: %w", c.Name, err)
			}
			indices = append(indices, built)
		}
		if err := s.AddCollection(c.Name, indices...); err != nil {
			return err
		}

		for _, d := range c.Docs {
			doc, err := document.ObjectFromAny(d.Doc)
			if err != nil {
				return fmt.Errorf("collection %q: %w", c.Name, err)
			}
			id := d.ID
			if id == "" {
				id = store.NewDocID()
			}
			if err := s.AddDoc(c.Name, id, doc); err != nil {
				return err
			}
		}
	}
	return nil
}

// BuildIndex converts an IndexFixture into a store index declaration.
func BuildIndex(idx IndexFixture) (store.Index, error) {
	dir, err := parseDirection(idx.Direction)
	if err != nil {
		return nil, err
	}
	if len(idx.Fields) == 1 {
		return store.NewFieldIndex(idx.Fields[0], dir, idx.Unique, idx.Name), nil
	}
	fields := make([]store.FieldIndex, len(idx.Fields))
	for i, f := range idx.Fields {
		fields[i] = store.FieldIndex{Field: f, Direction: dir}
	}
	return store.NewMultiFieldIndex(fields, idx.Unique, idx.Name)
}

func parseDirection(s string) (store.Direction, error) {
	switch s {
	case "", "asc":
		return store.DirectionAsc, nil
	case "desc":
		return store.DirectionDesc, nil
	default:
		return "", fmt.Errorf("unknown direction %q (want asc or desc)", s)
	}
}
