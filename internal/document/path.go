package document

import "strings"

// PathSeparator splits dot paths into segments.
const PathSeparator = "."

// Resolve walks a dot path into a nested document and returns the value
// it addresses. The second return value reports whether the path exists:
// (nil, false) the moment a segment is missing or the current value is
// not an Object. An explicit null field resolves to (Null{}, true) - a
// present field storing null is not the same as an absent field.
func Resolve(doc Object, path string) (Value, bool) {
	var current Value = doc
	for _, segment := range strings.Split(path, PathSeparator) {
		obj, ok := current.(Object)
		if !ok {
			return nil, false
		}
		next, ok := obj[segment]
		if !ok {
			return nil, false
		}
		current = next
	}
	return current, true
}

// Exists reports whether the dot path resolves to any value, including
// an explicit null.
func Exists(doc Object, path string) bool {
	_, ok := Resolve(doc, path)
	return ok
}
