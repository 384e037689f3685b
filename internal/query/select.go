package query

import (
	"fmt"
	"strings"

	"github.com/roach88/minidoc/internal/document"
)

// MergeRoot is the reserved destination alias that flattens an
// object-valued source field into the top level of the projected
// document instead of nesting it under an alias.
const MergeRoot = "*"

// SelectField maps one source dot path to a destination alias.
type SelectField struct {
	// Path is the source dot path resolved against the stored document.
	Path string

	// Alias is the destination path in the projected document. A dotted
	// alias builds nested objects. The reserved MergeRoot alias merges
	// the source object into the result's top level.
	Alias string
}

// Select describes a partial projection: an ordered sequence of
// (source path, destination alias) pairs applied in declaration order.
type Select struct {
	Fields []SelectField
}

// NewSelect builds a projection from (path, alias) pairs.
func NewSelect(fields ...SelectField) Select {
	return Select{Fields: fields}
}

// InvalidProjectionError reports a merge-alias field whose source value
// is not an object.
type InvalidProjectionError struct {
	Path string
	Got  document.Value
}

func (e *InvalidProjectionError) Error() string {
	return fmt.Sprintf("cannot merge field %q into document root: value is %T, not an object", e.Path, e.Got)
}

// Project applies a partial select to a document and returns the
// reduced result.
//
// For each field in declaration order:
//   - the source path resolves via dot-path access; an absent path
//     yields an explicit null at the destination alias
//   - a MergeRoot alias copies every key of the resolved object into
//     the top level of the result; a null (or absent) source
//     contributes nothing; a non-object source is an error
//   - any other alias is split on '.' and intermediate objects are
//     created as needed without disturbing siblings set earlier
//
// Later fields and merges overwrite earlier ones - last write wins.
func Project(doc document.Object, sel Select) (document.Object, error) {
	out := document.Object{}
	for _, field := range sel.Fields {
		v, ok := document.Resolve(doc, field.Path)
		if !ok {
			v = document.Null{}
		}

		if field.Alias == MergeRoot {
			if _, isNull := v.(document.Null); isNull {
				continue
			}
			obj, isObj := v.(document.Object)
			if !isObj {
				return nil, &InvalidProjectionError{Path: field.Path, Got: v}
			}
			for k, val := range obj {
				out[k] = document.Clone(val)
			}
			continue
		}

		setAtPath(out, field.Alias, document.Clone(v))
	}
	return out, nil
}

// setAtPath writes v into out at a dotted destination path, creating
// intermediate objects along the way. An intermediate that already
// holds a non-object is replaced (last write wins).
func setAtPath(out document.Object, path string, v document.Value) {
	segments := strings.Split(path, document.PathSeparator)
	current := out
	for _, segment := range segments[:len(segments)-1] {
		next, ok := current[segment].(document.Object)
		if !ok {
			next = document.Object{}
			current[segment] = next
		}
		current = next
	}
	current[segments[len(segments)-1]] = v
}
