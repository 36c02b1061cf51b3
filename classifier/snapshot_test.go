package classifier

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportIsDetached(t *testing.T) {
	c := New()
	require.NoError(t, c.AddLabels("cat"))
	require.NoError(t, c.AddData("cat", "meow"))

	s := c.Export()
	require.NoError(t, c.AddData("cat", "purr"))

	cat, _ := s.Entry("cat")
	assert.Equal(t, map[string]int{"meow": 1}, cat.Tokens)

	cat.Tokens["hiss"] = 10
	again, _ := s.Entry("cat")
	assert.NotContains(t, again.Tokens, "hiss")
}

func TestExportJSON(t *testing.T) {
	c := New()
	require.NoError(t, c.AddLabels("summer", "winter"))
	require.NoError(t, c.AddData("summer", "été"))
	require.NoError(t, c.AddData("summer", "ete"))

	b, err := json.Marshal(c.Export())
	require.NoError(t, err)
	assert.Equal(t,
		`{"total":{"tcount":2,"wordTotal":3,"ete":2},"summer":{"tcount":2,"wordTotal":2,"ete":2},"winter":{"tcount":0,"wordTotal":0}}`,
		string(b))
}

func TestImportJSONKeepsOrder(t *testing.T) {
	raw := `{"total":{"tcount":2,"wordTotal":9,"meow":1,"purr":1,"sits":1,"lap":1,"bark":1,"woof":1,"wag":1,"fetch":1},
		"dog":{"tcount":1,"wordTotal":4,"bark":1,"woof":1,"wag":1,"fetch":1},
		"cat":{"tcount":1,"wordTotal":4,"meow":1,"purr":1,"sits":1,"lap":1}}`

	s := NewSnapshot()
	require.NoError(t, json.Unmarshal([]byte(raw), s))
	assert.Equal(t, []string{"total", "dog", "cat"}, s.Names())

	c := New()
	require.NoError(t, c.Import(s))
	assert.Equal(t, []string{"dog", "cat"}, c.Labels())
	// equal chances resolve to the first label of the snapshot
	assert.Equal(t, "dog", mustClassify(t, c, "zzz"))
	assert.Equal(t, "cat", mustClassify(t, c, "meow"))
}

func TestImportReplacesState(t *testing.T) {
	src := New()
	require.NoError(t, src.AddLabels("cat"))
	require.NoError(t, src.AddData("cat", "meow"))

	dst := New()
	require.NoError(t, dst.AddLabels("dog", "horse"))
	require.NoError(t, dst.AddData("dog", "bark"))
	require.NoError(t, dst.Import(src.Export()))

	assert.Equal(t, []string{"cat"}, dst.Labels())
	assert.ErrorIs(t, dst.AddData("dog", "bark"), ErrUnknownLabel)
	require.NoError(t, dst.AddLabels("dog"))

	// later training of the source does not leak into the import
	require.NoError(t, src.AddData("cat", "purr"))
	cat, _ := dst.Export().Entry("cat")
	assert.Equal(t, 1, cat.TokenTotal)
}

func TestImportRejectsInvalid(t *testing.T) {
	c := New()
	assert.ErrorIs(t, c.Import(nil), ErrInvalidImport)
	assert.ErrorIs(t, c.Import(NewSnapshot()), ErrInvalidImport)

	for _, raw := range []string{
		`{"cat":{"tcount":1,"wordTotal":1,"meow":1}}`,
		`{"total":{"wordTotal":1}}`,
		`{"total":{"tcount":0}}`,
	} {
		s := NewSnapshot()
		require.NoError(t, json.Unmarshal([]byte(raw), s))
		assert.ErrorIs(t, c.Import(s), ErrInvalidImport, raw)
	}
}

func TestRoundTripThroughJSON(t *testing.T) {
	c := trainedPets(t)
	require.NoError(t, c.AddData("horse", "neigh gallop hay"))

	b, err := json.Marshal(c.Export())
	require.NoError(t, err)
	s := NewSnapshot()
	require.NoError(t, json.Unmarshal(b, s))

	restored := New()
	require.NoError(t, restored.Import(s))
	assert.Equal(t, c.Labels(), restored.Labels())
	for _, q := range []string{"sits", "bark", "neigh", "meow unknown", "zzz", "hay bark"} {
		assert.Equal(t, mustClassify(t, c, q), mustClassify(t, restored, q), q)
	}
}

func TestSnapshotPut(t *testing.T) {
	s := NewSnapshot()
	s.Put(TOTAL, Entry{EventCount: 1, TokenTotal: 2, Tokens: map[string]int{"meow": 1}})
	s.Put("cat", Entry{EventCount: 1, TokenTotal: 1, Tokens: map[string]int{"meow": 1}})
	s.Put("cat", Entry{EventCount: 1, TokenTotal: 1, Tokens: map[string]int{"purr": 1}})

	assert.Equal(t, []string{TOTAL, "cat"}, s.Names())
	cat, _ := s.Entry("cat")
	assert.Equal(t, map[string]int{"purr": 1}, cat.Tokens)

	c := New()
	require.NoError(t, c.Import(s))
	assert.Equal(t, []string{"cat"}, c.Labels())
}
