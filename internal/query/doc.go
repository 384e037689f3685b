// Package query provides the predicate, ordering, and projection algebras
// used to query document collections.
//
// Callers build immutable trees programmatically (there is no query
// string language) and hand them to a store operation for one call.
//
// SEALED INTERFACES:
//
// Filter and OrderBy are sealed interfaces using the marker method
// pattern. Only types in this package implement them, which enables
// exhaustive type switches in the evaluators:
//
//	switch f := f.(type) {
//	case *Eq:
//	    // ...
//	case *And:
//	    // ...
//	default:
//	    // Impossible - the compiler knows all Filter types
//	}
//
// FILTER SEMANTICS:
//
// Every filter node answers Match(doc, docID) -> bool. Matching has no
// side effects, so And/Or may short-circuit. Dot paths that do not
// resolve never satisfy range comparisons (Gt/Gte/Lt/Lte); Exists is the
// one filter that distinguishes an absent field from an explicit null.
//
// ORDERING SEMANTICS:
//
// Comparator turns an OrderBy tree into a three-way compare function.
// Strings order case-insensitively; numbers and booleans use their
// natural order. AndOrder consults its secondary ordering only on ties,
// and Desc negates the comparison of its own key. Sorting with the
// comparator must be stable (sort.SliceStable), so documents that do not
// discriminate keep their encounter order.
//
// PROJECTION:
//
// Select describes a partial projection from a full document to a
// reduced one: an ordered list of (source path, destination alias)
// pairs. The reserved MergeRoot alias flattens an object field into the
// top level of the result. Later fields overwrite earlier ones - last
// write wins, in declaration order.
package query
