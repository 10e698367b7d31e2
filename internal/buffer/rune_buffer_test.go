package buffer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/bethropolis/focusnav/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinesAndPositions(t *testing.T) {
	b := NewRuneBufferFromString("ab\r\nçd\n\nxyz")

	require.Equal(t, 4, b.LineCount())
	line, err := b.Line(1)
	require.NoError(t, err)
	assert.Equal(t, "çd", line)

	assert.Equal(t, types.Position{Line: 1, Col: 1}, b.RowCol(4))
	assert.Equal(t, types.Position{Line: 2, Col: 0}, b.RowCol(6))
	assert.Equal(t, 4, b.TextPoint(types.Position{Line: 1, Col: 1}))
	assert.Equal(t, 5, b.TextPoint(types.Position{Line: 1, Col: 99}), "column clamps to line end")
	assert.Equal(t, b.Size(), b.TextPoint(types.Position{Line: 40}))

	_, err = b.Line(9)
	assert.ErrorIs(t, err, ErrOutOfRange)
}

func TestInsertDeleteBumpVersion(t *testing.T) {
	b := NewRuneBufferFromString("A^B")
	v0 := b.Version()

	info, err := b.Insert(1, "XY")
	require.NoError(t, err)
	assert.Equal(t, "AXY^B", b.Text())
	assert.Equal(t, 2, info.Delta())
	assert.Greater(t, b.Version(), v0)
	assert.True(t, b.IsModified())

	info, err = b.Delete(types.Region{Begin: 1, End: 3})
	require.NoError(t, err)
	assert.Equal(t, "A^B", b.Text())
	assert.Equal(t, -2, info.Delta())

	_, err = b.Delete(types.Region{Begin: 2, End: 10})
	assert.ErrorIs(t, err, ErrOutOfRange)
}

func TestWord(t *testing.T) {
	b := NewRuneBufferFromString("AB^C,@Other(|12)")

	assert.Equal(t, "AB", b.Substr(b.Word(0)))
	assert.Equal(t, "AB", b.Substr(b.Word(2)), "caret after a word picks the word")
	assert.Equal(t, "C", b.Substr(b.Word(3)))
	assert.Equal(t, "Other", b.Substr(b.Word(7)))
	assert.Equal(t, "|12", b.Substr(b.Word(13)), "argument sigil is part of the token")
}

func TestFindFirstAndAll(t *testing.T) {
	b := NewRuneBufferFromString("A - one\nB - two\nA - three\n")

	all, err := b.FindAll(`^A`)
	require.NoError(t, err)
	assert.Equal(t, []types.Region{{Begin: 0, End: 1}, {Begin: 16, End: 17}}, all)

	r, ok, err := b.FindFirst(`^A`, 1)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, types.Region{Begin: 16, End: 17}, r)

	_, ok, err = b.FindFirst(`^Z`, 0)
	require.NoError(t, err)
	assert.False(t, ok)

	_, _, err = b.FindFirst(`(`, 0)
	assert.Error(t, err)
}

func TestFindAllInUsesRegionBounds(t *testing.T) {
	b := NewRuneBufferFromString("xx A yy\nB")
	in, err := b.FindAllIn(`^A`, types.Region{Begin: 3, End: 7})
	require.NoError(t, err)
	assert.Equal(t, []types.Region{{Begin: 3, End: 4}}, in)
}

func TestLoadSave(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "x.fs")

	b := NewRuneBuffer()
	require.NoError(t, b.Load(path), "missing file loads empty")
	assert.Equal(t, 0, b.Size())

	_, err := b.Insert(0, ":Code X\n")
	require.NoError(t, err)
	require.NoError(t, b.Save(""))
	assert.False(t, b.IsModified())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, ":Code X\n", string(data))

	other := NewRuneBuffer()
	require.NoError(t, other.Load(path))
	assert.Equal(t, 2, other.LineCount())
}
