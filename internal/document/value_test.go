package document

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEqual_Scalars(t *testing.T) {
	assert.True(t, Equal(Null{}, Null{}))
	assert.True(t, Equal(Bool(true), Bool(true)))
	assert.True(t, Equal(Number(1), Number(1)))
	assert.True(t, Equal(String("a"), String("a")))

	assert.False(t, Equal(Bool(true), Bool(false)))
	assert.False(t, Equal(Number(1), Number(2)))
	assert.False(t, Equal(String("a"), String("A")))
}

func TestEqual_NoCrossTypeCoercion(t *testing.T) {
	// Strict type-aware equality: no coercion across variants.
	assert.False(t, Equal(String("1"), Number(1)))
	assert.False(t, Equal(Bool(false), Number(0)))
	assert.False(t, Equal(Null{}, Object{}))
	assert.False(t, Equal(Null{}, Bool(false)))
	assert.False(t, Equal(Array{}, Object{}))
}

func TestEqual_IntAndFloatEnteredNumbers(t *testing.T) {
	// A single Number variant means 10 and 10.0 are the same value.
	assert.True(t, Equal(Number(10), Number(10.0)))
}

func TestEqual_Nested(t *testing.T) {
	a := Object{
		"user": Object{"name": String("ada"), "tags": Array{String("x"), Number(2)}},
	}
	b := Object{
		"user": Object{"name": String("ada"), "tags": Array{String("x"), Number(2)}},
	}
	assert.True(t, Equal(a, b))

	b["user"].(Object)["tags"] = Array{Number(2), String("x")}
	assert.False(t, Equal(a, b), "array order is significant")
}

func TestClone_Deep(t *testing.T) {
	orig := Object{
		"nested": Object{"n": Number(1)},
		"list":   Array{Number(1), Number(2)},
	}

	cloned := Clone(orig).(Object)
	require.True(t, Equal(orig, cloned))

	cloned["nested"].(Object)["n"] = Number(99)
	cloned["list"].(Array)[0] = Number(99)

	assert.True(t, Equal(orig["nested"], Object{"n": Number(1)}), "clone must not share nested objects")
	assert.True(t, Equal(orig["list"], Array{Number(1), Number(2)}), "clone must not share arrays")
}

func TestFromAny_RoundTrip(t *testing.T) {
	in := map[string]any{
		"name":   "ada",
		"age":    36,
		"score":  1.5,
		"active": true,
		"note":   nil,
		"tags":   []any{"a", "b"},
		"meta":   map[string]any{"k": "v"},
	}

	v, err := FromAny(in)
	require.NoError(t, err)
	obj := v.(Object)

	assert.True(t, Equal(obj["name"], String("ada")))
	assert.True(t, Equal(obj["age"], Number(36)))
	assert.True(t, Equal(obj["score"], Number(1.5)))
	assert.True(t, Equal(obj["active"], Bool(true)))
	assert.True(t, Equal(obj["note"], Null{}))
	assert.True(t, Equal(obj["tags"], Array{String("a"), String("b")}))
	assert.True(t, Equal(obj["meta"], Object{"k": String("v")}))

	back := ToAny(obj).(map[string]any)
	assert.Equal(t, "ada", back["name"])
	assert.Equal(t, int64(36), back["age"], "integral numbers come back as int64")
	assert.Equal(t, 1.5, back["score"])
	assert.Nil(t, back["note"])
}

func TestFromAny_UnsupportedType(t *testing.T) {
	_, err := FromAny(struct{}{})
	require.Error(t, err)

	_, err = FromAny(map[string]any{"bad": make(chan int)})
	require.Error(t, err)
}

func TestUnmarshalValue_FullJSONValueSpace(t *testing.T) {
	data := []byte(`{"s":"x","n":1.5,"i":7,"b":false,"z":null,"a":[1,"two"],"o":{"k":null}}`)

	v, err := UnmarshalValue(data)
	require.NoError(t, err)

	obj, ok := v.(Object)
	require.True(t, ok)
	assert.True(t, Equal(obj["s"], String("x")))
	assert.True(t, Equal(obj["n"], Number(1.5)))
	assert.True(t, Equal(obj["i"], Number(7)))
	assert.True(t, Equal(obj["b"], Bool(false)))
	assert.True(t, Equal(obj["z"], Null{}))
	assert.True(t, Equal(obj["a"], Array{Number(1), String("two")}))
	assert.True(t, Equal(obj["o"], Object{"k": Null{}}))
}

func TestUnmarshalObject_RejectsNonObject(t *testing.T) {
	_, err := UnmarshalObject([]byte(`[1,2,3]`))
	require.Error(t, err)
}

func TestObject_MarshalJSON(t *testing.T) {
	obj := Object{"a": Number(1), "z": Null{}, "s": String("<tag>")}

	data, err := json.Marshal(obj)
	require.NoError(t, err)

	var back map[string]any
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, float64(1), back["a"])
	assert.Nil(t, back["z"])
	assert.Equal(t, "<tag>", back["s"])
}
