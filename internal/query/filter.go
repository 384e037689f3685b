package query

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/roach88/minidoc/internal/document"
)

// Filter represents a predicate over a single document.
//
// This is a sealed interface - only types in this package implement it.
// Every node is immutable and self-contained: it carries the operands it
// needs and never references store state.
//
// Filter types:
//   - Eq: path value strictly equals operand
//   - Gt, Gte, Lt, Lte: range comparison on the path value
//   - Like: case-insensitive pattern match on a string value
//   - InArray: membership in a sequence-valued field
//   - Not: negation
//   - And, Or: boolean combinators (require at least one operand)
//   - Any: matches everything
//   - AnyOfDoc: matches a caller-supplied set of document ids
//   - Exists: path resolves to anything, including explicit null
type Filter interface {
	filterNode() // Marker method - seals interface to this package
}

// Eq matches when the path resolves and the resolved value strictly
// equals Value (type-aware equality, no coercion).
type Eq struct {
	Path  string
	Value document.Value
}

func (Eq) filterNode() {}

// Gt matches when the path resolves to a value greater than Value under
// the natural ordering of its type. Numbers compare numerically; strings
// compare byte-wise (a deliberate simplification, not locale-aware).
// An unresolved path never matches.
type Gt struct {
	Path  string
	Value document.Value
}

func (Gt) filterNode() {}

// Gte is Gt with equality included.
type Gte struct {
	Path  string
	Value document.Value
}

func (Gte) filterNode() {}

// Lt matches when the path resolves to a value less than Value.
type Lt struct {
	Path  string
	Value document.Value
}

func (Lt) filterNode() {}

// Lte is Lt with equality included.
type Lte struct {
	Path  string
	Value document.Value
}

func (Lte) filterNode() {}

// Like matches string values against a SQL-style pattern:
// '%' matches any run of characters, '_' matches exactly one.
// Matching is case-insensitive and anchored at both ends.
// Construct with NewLike so the pattern compiles once.
type Like struct {
	Path    string
	Pattern string

	re *regexp.Regexp
}

func (Like) filterNode() {}

// NewLike compiles pattern and returns a Like filter.
func NewLike(path, pattern string) (*Like, error) {
	re, err := compileLikePattern(pattern)
	if err != nil {
		return nil, fmt.Errorf("like pattern %q: %w", pattern, err)
	}
	return &Like{Path: path, Pattern: pattern, re: re}, nil
}

// compileLikePattern translates a LIKE pattern into an anchored,
// case-insensitive regexp. Everything except the two wildcards is
// matched literally.
func compileLikePattern(pattern string) (*regexp.Regexp, error) {
	var b strings.Builder
	b.WriteString("(?i)^")
	for _, r := range pattern {
		switch r {
		case '%':
			b.WriteString(".*")
		case '_':
			b.WriteString(".")
		default:
			b.WriteString(regexp.QuoteMeta(string(r)))
		}
	}
	b.WriteString("$")
	return regexp.Compile(b.String())
}

// InArray matches when the path resolves to a sequence and the operand
// is a member of it. Membership is value equality, relaxed for object
// elements: an object element also matches an object operand when the
// two share at least one key with equal values (partial intersection).
type InArray struct {
	Path  string
	Value document.Value
}

func (InArray) filterNode() {}

// Not negates its inner filter.
type Not struct {
	Inner Filter
}

func (Not) filterNode() {}

// And matches when every child filter matches. Construct with NewAnd;
// an And with zero operands is invalid.
type And struct {
	Filters []Filter
}

func (And) filterNode() {}

// NewAnd builds a conjunction. At least one operand is required.
func NewAnd(filters ...Filter) (*And, error) {
	if len(filters) == 0 {
		return nil, fmt.Errorf("and filter requires at least one operand")
	}
	return &And{Filters: filters}, nil
}

// Or matches when at least one child filter matches. Construct with
// NewOr; an Or with zero operands is invalid.
type Or struct {
	Filters []Filter
}

func (Or) filterNode() {}

// NewOr builds a disjunction. At least one operand is required.
func NewOr(filters ...Filter) (*Or, error) {
	if len(filters) == 0 {
		return nil, fmt.Errorf("or filter requires at least one operand")
	}
	return &Or{Filters: filters}, nil
}

// Any matches every document. Used for "no filter" queries.
type Any struct{}

func (Any) filterNode() {}

// AnyOfDoc matches documents whose id is in a caller-supplied set.
type AnyOfDoc struct {
	ids map[string]struct{}
}

func (AnyOfDoc) filterNode() {}

// NewAnyOfDoc builds an id-set filter.
func NewAnyOfDoc(ids ...string) *AnyOfDoc {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return &AnyOfDoc{ids: set}
}

// Contains reports whether id is in the filter's set.
func (f *AnyOfDoc) Contains(id string) bool {
	_, ok := f.ids[id]
	return ok
}

// Exists matches when the path resolves to anything, including an
// explicit null. It is the only filter that can distinguish a present
// null field from an absent one.
type Exists struct {
	Path string
}

func (Exists) filterNode() {}
