package clipboard

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type brokenClipboard struct{}

func (brokenClipboard) Copy(string) error      { return errors.New("no display") }
func (brokenClipboard) Paste() (string, error) { return "", errors.New("no display") }

func TestInternal(t *testing.T) {
	c := &Internal{}
	_, err := c.Paste()
	assert.ErrorIs(t, err, ErrEmpty)

	require.NoError(t, c.Copy("|0"))
	got, err := c.Paste()
	require.NoError(t, err)
	assert.Equal(t, "|0", got)
}

func TestFallbackKeepsInternalCopy(t *testing.T) {
	c := &Fallback{Primary: brokenClipboard{}, Internal: &Internal{}}
	require.NoError(t, c.Copy("TOTAL"))

	got, err := c.Paste()
	require.NoError(t, err)
	assert.Equal(t, "TOTAL", got)
}

func TestNewWithoutSystem(t *testing.T) {
	_, ok := New(false).(*Internal)
	assert.True(t, ok)
}
