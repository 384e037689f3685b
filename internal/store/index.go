package store

import "fmt"

// Direction is the declared sort direction of an indexed field.
// Directions are metadata only: the engine keeps no sorted structure.
type Direction string

const (
	DirectionAsc  Direction = "asc"
	DirectionDesc Direction = "desc"
)

// Index describes a declared collection index.
//
// This is a sealed interface - only FieldIndex and MultiFieldIndex
// implement it. Indices are declarative metadata with two jobs: being
// enumerable/nameable, and driving uniqueness enforcement at write
// time.
type Index interface {
	indexNode() // Marker method - seals interface to this package
}

// FieldIndex declares an index over a single dot path.
type FieldIndex struct {
	// Field is the indexed dot path.
	Field string

	// Direction is the declared sort direction.
	Direction Direction

	// Unique marks the index as a uniqueness constraint.
	Unique bool

	// Name optionally names the index for lookup and removal.
	// Removal by name affects every index sharing the name.
	Name string
}

func (FieldIndex) indexNode() {}

// NewFieldIndex declares a single-field index.
func NewFieldIndex(field string, direction Direction, unique bool, name string) *FieldIndex {
	return &FieldIndex{Field: field, Direction: direction, Unique: unique, Name: name}
}

// MultiFieldIndex declares a composite index over two or more fields.
// Construct with NewMultiFieldIndex, which rejects fewer than two.
type MultiFieldIndex struct {
	Fields []FieldIndex
	Unique bool
	Name   string
}

func (MultiFieldIndex) indexNode() {}

// NewMultiFieldIndex declares a composite index. A composite index of
// fewer than two fields is a definition error - use FieldIndex instead.
func NewMultiFieldIndex(fields []FieldIndex, unique bool, name string) (*MultiFieldIndex, error) {
	if len(fields) < 2 {
		return nil, NewInvalidIndex(fmt.Sprintf(
			"multi-field index %q requires at least two fields, got %d", name, len(fields)))
	}
	return &MultiFieldIndex{Fields: fields, Unique: unique, Name: name}, nil
}

// ValidateIndex checks an index definition built without the
// constructors (e.g. decoded from a fixture file).
func ValidateIndex(idx Index) error {
	switch n := idx.(type) {
	case *FieldIndex:
		if n.Field == "" {
			return NewInvalidIndex("field index requires a field path")
		}
		return nil
	case *MultiFieldIndex:
		if len(n.Fields) < 2 {
			return NewInvalidIndex(fmt.Sprintf(
				"multi-field index %q requires at least two fields, got %d", n.Name, len(n.Fields)))
		}
		for _, f := range n.Fields {
			if f.Field == "" {
				return NewInvalidIndex("multi-field index requires non-empty field paths")
			}
		}
		return nil
	default:
		return NewInvalidIndex(fmt.Sprintf("unknown index type %T", idx))
	}
}

// IndexName returns the declared name of an index ("" when unnamed).
func IndexName(idx Index) string {
	switch n := idx.(type) {
	case *FieldIndex:
		return n.Name
	case *MultiFieldIndex:
		return n.Name
	default:
		return ""
	}
}

// IndexUnique reports whether the index declares a uniqueness
// constraint.
func IndexUnique(idx Index) bool {
	switch n := idx.(type) {
	case *FieldIndex:
		return n.Unique
	case *MultiFieldIndex:
		return n.Unique
	default:
		return false
	}
}

// IndexFields returns the dot paths covered by an index, in declaration
// order.
func IndexFields(idx Index) []string {
	switch n := idx.(type) {
	case *FieldIndex:
		return []string{n.Field}
	case *MultiFieldIndex:
		fields := make([]string, len(n.Fields))
		for i, f := range n.Fields {
			fields[i] = f.Field
		}
		return fields
	default:
		return nil
	}
}
