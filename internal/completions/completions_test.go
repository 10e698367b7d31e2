package completions

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTree(t *testing.T) {
	root := Default()

	calls, ok := root.Lookup("@")
	require.True(t, ok)
	assert.Contains(t, calls.Completions, "Break")

	brk, ok := root.Lookup("@", "Break")
	require.True(t, ok)
	assert.Equal(t, []Item{{"On", "argument"}, {"Off", "argument"}}, brk.Items())

	header, ok := root.Lookup(":Code")
	require.True(t, ok)
	assert.True(t, header.Required)

	_, ok = root.Lookup("@", "Nope")
	assert.False(t, ok)
}

func TestCompletePrefix(t *testing.T) {
	root := Default()

	items := root.Complete("s", "@")
	var texts []string
	for _, it := range items {
		texts = append(texts, it.Text)
	}
	assert.Equal(t, []string{"Set", "Skip", "Sort", "Store"}, texts)
	assert.Equal(t, "function", items[0].Type)

	assert.Len(t, root.Complete("", "|"), 10)
	assert.Nil(t, root.Complete("x", "missing"))
}

func TestCompleteFallsBackToFuzzy(t *testing.T) {
	root := Default()
	items := root.Complete("Brek", "@")
	require.NotEmpty(t, items)
	assert.Equal(t, "Break", items[0].Text)
	assert.Empty(t, root.Complete("zzzzzz", "@"))
}

func TestLoadRejectsMismatchedTypes(t *testing.T) {
	_, err := Load([]byte(`{"completions": ["a", "b"], "types": ["x"]}`))
	assert.Error(t, err)

	_, err = Load([]byte(`{"completions": [], "children": {"a": {"completions": ["b"], "types": ["t", "u"]}}}`))
	assert.Error(t, err)

	_, err = Load([]byte(`{`))
	assert.Error(t, err)

	n, err := Load([]byte(`{"completions": ["a"]}`))
	require.NoError(t, err)
	assert.Equal(t, []Item{{Text: "a"}}, n.Items())
}

func TestSuggest(t *testing.T) {
	cmds := []string{"highlight", "next", "prev", "clear", "select_all"}

	got, ok := Suggest("higlight", cmds)
	require.True(t, ok)
	assert.Equal(t, "highlight", got)

	_, ok = Suggest("qqq", cmds)
	assert.False(t, ok)
}
