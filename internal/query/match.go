package query

import (
	"github.com/roach88/minidoc/internal/document"
)

// Match evaluates a filter tree against a single document.
//
// Matching is pure: it never mutates the document and has no side
// effects, so the boolean combinators short-circuit freely.
func Match(f Filter, doc document.Object, docID string) bool {
	switch n := f.(type) {
	case *Eq:
		v, ok := document.Resolve(doc, n.Path)
		return ok && document.Equal(v, n.Value)

	case *Gt:
		cmp, ok := compareResolved(doc, n.Path, n.Value)
		return ok && cmp > 0

	case *Gte:
		cmp, ok := compareResolved(doc, n.Path, n.Value)
		return ok && cmp >= 0

	case *Lt:
		cmp, ok := compareResolved(doc, n.Path, n.Value)
		return ok && cmp < 0

	case *Lte:
		cmp, ok := compareResolved(doc, n.Path, n.Value)
		return ok && cmp <= 0

	case *Like:
		v, ok := document.Resolve(doc, n.Path)
		if !ok {
			return false
		}
		s, isString := v.(document.String)
		if !isString {
			return false
		}
		re := n.re
		if re == nil {
			// Filter built as a literal rather than via NewLike.
			compiled, err := compileLikePattern(n.Pattern)
			if err != nil {
				return false
			}
			re = compiled
		}
		return re.MatchString(string(s))

	case *InArray:
		v, ok := document.Resolve(doc, n.Path)
		if !ok {
			return false
		}
		arr, isArray := v.(document.Array)
		if !isArray {
			return false
		}
		for _, elem := range arr {
			if document.Equal(elem, n.Value) {
				return true
			}
			if objectsIntersect(elem, n.Value) {
				return true
			}
		}
		return false

	case *Not:
		return !Match(n.Inner, doc, docID)

	case *And:
		for _, child := range n.Filters {
			if !Match(child, doc, docID) {
				return false
			}
		}
		return true

	case *Or:
		for _, child := range n.Filters {
			if Match(child, doc, docID) {
				return true
			}
		}
		return false

	case *Any:
		return true

	case *AnyOfDoc:
		return n.Contains(docID)

	case *Exists:
		return document.Exists(doc, n.Path)

	default:
		// Unreachable: Filter is sealed to this package.
		return false
	}
}

// compareResolved resolves path on doc and three-way compares the result
// against operand. ok is false when the path does not resolve or the two
// values have no natural ordering relative to each other (different
// variants, or a variant without an order).
func compareResolved(doc document.Object, path string, operand document.Value) (int, bool) {
	v, ok := document.Resolve(doc, path)
	if !ok {
		return 0, false
	}
	return compareValues(v, operand)
}

// compareValues orders two values of the same scalar variant.
// Numbers compare numerically, strings byte-wise, booleans false < true.
func compareValues(a, b document.Value) (int, bool) {
	switch av := a.(type) {
	case document.Number:
		bv, ok := b.(document.Number)
		if !ok {
			return 0, false
		}
		switch {
		case av < bv:
			return -1, true
		case av > bv:
			return 1, true
		default:
			return 0, true
		}
	case document.String:
		bv, ok := b.(document.String)
		if !ok {
			return 0, false
		}
		switch {
		case av < bv:
			return -1, true
		case av > bv:
			return 1, true
		default:
			return 0, true
		}
	case document.Bool:
		bv, ok := b.(document.Bool)
		if !ok {
			return 0, false
		}
		switch {
		case !bool(av) && bool(bv):
			return -1, true
		case bool(av) && !bool(bv):
			return 1, true
		default:
			return 0, true
		}
	default:
		return 0, false
	}
}

// objectsIntersect reports whether two values are both objects sharing
// at least one key with equal values. This is the relaxed membership
// rule for composite elements inside InArray.
func objectsIntersect(a, b document.Value) bool {
	ao, aIsObj := a.(document.Object)
	bo, bIsObj := b.(document.Object)
	if !aIsObj || !bIsObj {
		return false
	}
	for k, av := range ao {
		if bv, ok := bo[k]; ok && document.Equal(av, bv) {
			return true
		}
	}
	return false
}
