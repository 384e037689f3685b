package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixtureDoc() Object {
	return Object{
		"name": String("ada"),
		"address": Object{
			"city": String("London"),
			"geo":  Object{"lat": Number(51.5), "lng": Number(-0.1)},
		},
		"tags":    Array{String("a"), String("b")},
		"deleted": Null{},
	}
}

func TestResolve_TopLevel(t *testing.T) {
	v, ok := Resolve(fixtureDoc(), "name")
	require.True(t, ok)
	assert.True(t, Equal(v, String("ada")))
}

func TestResolve_Nested(t *testing.T) {
	v, ok := Resolve(fixtureDoc(), "address.geo.lat")
	require.True(t, ok)
	assert.True(t, Equal(v, Number(51.5)))
}

func TestResolve_IntermediateObject(t *testing.T) {
	v, ok := Resolve(fixtureDoc(), "address.geo")
	require.True(t, ok)
	assert.True(t, Equal(v, Object{"lat": Number(51.5), "lng": Number(-0.1)}))
}

func TestResolve_MissingLeaf(t *testing.T) {
	_, ok := Resolve(fixtureDoc(), "address.zip")
	assert.False(t, ok)
}

func TestResolve_MissingIntermediate(t *testing.T) {
	_, ok := Resolve(fixtureDoc(), "company.name")
	assert.False(t, ok)
}

func TestResolve_ScalarIntermediate(t *testing.T) {
	// Resolution short-circuits when a segment lands on a non-object.
	_, ok := Resolve(fixtureDoc(), "name.length")
	assert.False(t, ok)
}

func TestResolve_ArrayNotAddressable(t *testing.T) {
	// No array-index segments: paths address mapping keys only.
	_, ok := Resolve(fixtureDoc(), "tags.0")
	assert.False(t, ok)
}

func TestResolve_ExplicitNullIsPresent(t *testing.T) {
	v, ok := Resolve(fixtureDoc(), "deleted")
	require.True(t, ok, "a field storing null must resolve, not report absence")
	assert.True(t, Equal(v, Null{}))
}

func TestExists(t *testing.T) {
	doc := fixtureDoc()
	assert.True(t, Exists(doc, "address.city"))
	assert.True(t, Exists(doc, "deleted"))
	assert.False(t, Exists(doc, "address.zip"))
	assert.False(t, Exists(doc, "missing"))
}
