package document

// Merge applies patch over base and returns the merged document.
// Neither input is mutated.
//
// Fields whose value is an Object in BOTH documents merge recursively.
// Every other field in the patch - scalars, Arrays, and Objects patched
// over non-Objects - replaces the base field wholesale. Arrays are never
// merged element-by-element: a numeric-indexed collection is an opaque
// value, per the usual document-store convention.
func Merge(base, patch Object) Object {
	out := make(Object, len(base)+len(patch))
	for k, v := range base {
		out[k] = Clone(v)
	}
	for k, pv := range patch {
		baseObj, baseIsObj := out[k].(Object)
		patchObj, patchIsObj := pv.(Object)
		if baseIsObj && patchIsObj {
			out[k] = Merge(baseObj, patchObj)
			continue
		}
		out[k] = Clone(pv)
	}
	return out
}
