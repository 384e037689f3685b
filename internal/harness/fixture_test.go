package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/minidoc/internal/document"
	"github.com/roach88/minidoc/internal/memstore"
	"github.com/roach88/minidoc/internal/store"
)

func mustObject(t *testing.T, m map[string]any) document.Object {
	t.Helper()
	obj, err := document.ObjectFromAny(m)
	require.NoError(t, err)
	return obj
}

func TestBuildIndex(t *testing.T) {
	idx, err := BuildIndex(IndexFixture{Fields: []string{"email"}, Unique: true, Name: "uq"})
	require.NoError(t, err)
	assert.IsType(t, &store.FieldIndex{}, idx)
	assert.True(t, store.IndexUnique(idx))
	assert.Equal(t, "uq", store.IndexName(idx))

	idx, err = BuildIndex(IndexFixture{Fields: []string{"first", "last"}, Direction: "desc"})
	require.NoError(t, err)
	assert.IsType(t, &store.MultiFieldIndex{}, idx)
	assert.Equal(t, []string{"first", "last"}, store.IndexFields(idx))

	_, err = BuildIndex(IndexFixture{Fields: []string{"a"}, Direction: "sideways"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown direction")
}

func TestFixtureApply(t *testing.T) {
	fixture := &Fixture{
		Collections: []CollectionFixture{
			{
				Name: "players",
				Indexes: []IndexFixture{
					{Fields: []string{"name"}, Unique: true, Name: "uq_name"},
				},
				Docs: []DocFixture{
					{ID: "p1", Doc: map[string]any{"name": "alice"}},
					{Doc: map[string]any{"name": "bob"}},
				},
			},
			{Name: "empty"},
		},
	}

	s := memstore.New()
	require.NoError(t, fixture.Apply(s))

	assert.Equal(t, []string{"empty", "players"}, s.ListCollections())

	has, err := s.HasCollectionIndex("players", "uq_name")
	require.NoError(t, err)
	assert.True(t, has)

	n, err := s.CountDocs("players", nil)
	require.NoError(t, err)
	assert.Equal(t, 2, n, "the id-less doc gets a generated id")

	// The index from the fixture is live.
	err = fixture.Apply(memstore.New())
	require.NoError(t, err)
	err = s.AddDoc("players", "p9", mustObject(t, map[string]any{"name": "alice"}))
	assert.True(t, store.IsCode(err, store.ErrCodeUniqueViolation))
}

func TestLoadFixture(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fixture.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
collections:
  - name: teams
    docs:
      - id: t1
        doc: { city: berlin }
`), 0o644))

	fixture, err := LoadFixture(path)
	require.NoError(t, err)
	require.Len(t, fixture.Collections, 1)
	assert.Equal(t, "teams", fixture.Collections[0].Name)

	// Unknown fields are rejected.
	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte(`
collections:
  - name: teams
    indices: []
`), 0o644))
	_, err = LoadFixture(bad)
	require.Error(t, err)
}

func TestValidateFixture(t *testing.T) {
	err := validateFixture(&Fixture{Collections: []CollectionFixture{{Name: ""}}})
	require.Error(t, err)

	err = validateFixture(&Fixture{Collections: []CollectionFixture{{
		Name:    "c",
		Indexes: []IndexFixture{{Fields: nil}},
	}}})
	require.Error(t, err)

	err = validateFixture(&Fixture{Collections: []CollectionFixture{{
		Name: "c",
		Docs: []DocFixture{{ID: "d"}},
	}}})
	require.Error(t, err)
}
