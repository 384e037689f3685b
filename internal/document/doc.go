// Package document defines the value model for stored documents.
//
// A document is a key-value tree: every value is one of the sealed Value
// variants (Null, Bool, Number, String, Object, Array). This mirrors a
// parsed JSON object and gives the query and store layers a closed set of
// types to pattern-match on, instead of loose `any` values with runtime
// coercion.
//
// SEALED VALUES:
//
// Value is a sealed interface using the marker method pattern. Only types
// in this package implement it, which enables exhaustive type switches:
//
//	switch v := v.(type) {
//	case document.Null:
//	case document.Bool:
//	case document.Number:
//	case document.String:
//	case document.Array:
//	case document.Object:
//	}
//
// DOT PATHS:
//
// Fields inside nested objects are addressed with dot paths ("user.address.city").
// Each segment indexes one level deeper into an Object; resolution stops
// with "not found" the moment a segment is missing or the current value is
// not an Object. Array elements are NOT addressable by path - numeric
// segments are ordinary map keys, never indices.
//
// NOT FOUND vs NULL:
//
// Resolve reports absence through its second return value, never by
// returning Null. A field that stores an explicit null is a present field
// holding document.Null{}; an absent field resolves to (nil, false). The
// distinction drives Exists filters and unique-index absence checks.
//
// MERGE SEMANTICS:
//
// Merge applies a patch document over a base document. Object-valued
// fields merge recursively; Array-valued and scalar fields are replaced
// wholesale. Sequences are opaque values - they are never merged
// element-by-element.
package document
