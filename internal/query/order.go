package query

import (
	"strings"

	"github.com/roach88/minidoc/internal/document"
)

// OrderBy represents an ordering specification for query results.
//
// This is a sealed interface - only types in this package implement it.
//
// OrderBy types:
//   - Asc: ascending on a dot path
//   - Desc: descending on a dot path
//   - AndOrder: primary ordering with a tie-breaking secondary
type OrderBy interface {
	orderNode() // Marker method - seals interface to this package
}

// Asc orders ascending on the value at Path.
type Asc struct {
	Path string
}

func (Asc) orderNode() {}

// Desc orders descending on the value at Path. It produces exactly the
// negated comparison of Asc on the same path.
type Desc struct {
	Path string
}

func (Desc) orderNode() {}

// AndOrder chains two orderings: Primary decides, Secondary breaks
// ties. Chains nest arbitrarily deep through either side.
type AndOrder struct {
	Primary   OrderBy
	Secondary OrderBy
}

func (AndOrder) orderNode() {}

// Comparator builds a three-way compare function from an OrderBy tree.
//
// Per-pair comparison is type-aware: two strings compare
// case-insensitively, numbers numerically, booleans false < true.
// Pairs with no natural order (missing fields, mixed variants) compare
// as equal, which keeps sorting stable - callers must sort with
// sort.SliceStable so non-discriminated documents preserve their
// encounter order.
func Comparator(o OrderBy) func(a, b document.Object) int {
	switch n := o.(type) {
	case *Asc:
		return func(a, b document.Object) int {
			return compareForOrder(a, b, n.Path)
		}
	case *Desc:
		return func(a, b document.Object) int {
			return -compareForOrder(a, b, n.Path)
		}
	case *AndOrder:
		primary := Comparator(n.Primary)
		secondary := Comparator(n.Secondary)
		return func(a, b document.Object) int {
			if c := primary(a, b); c != 0 {
				return c
			}
			return secondary(a, b)
		}
	default:
		// Unreachable: OrderBy is sealed to this package.
		return func(a, b document.Object) int { return 0 }
	}
}

// compareForOrder resolves path on both documents and compares.
// String pairs compare case-insensitively; everything else falls back
// to the natural ordering used by the range filters. Unresolvable or
// unordered pairs yield 0.
func compareForOrder(a, b document.Object, path string) int {
	av, aOK := document.Resolve(a, path)
	bv, bOK := document.Resolve(b, path)
	if !aOK || !bOK {
		return 0
	}

	as, aIsString := av.(document.String)
	bs, bIsString := bv.(document.String)
	if aIsString && bIsString {
		return strings.Compare(strings.ToLower(string(as)), strings.ToLower(string(bs)))
	}

	cmp, ok := compareValues(av, bv)
	if !ok {
		return 0
	}
	return cmp
}
