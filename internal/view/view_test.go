package view

import (
	"testing"

	"github.com/bethropolis/focusnav/internal/buffer"
	"github.com/bethropolis/focusnav/internal/event"
	"github.com/bethropolis/focusnav/internal/scope"
	"github.com/bethropolis/focusnav/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newView(text string) *View {
	return NewFocus(buffer.NewRuneBufferFromString(text), scope.DefaultMapping())
}

func TestSelectionAndCaret(t *testing.T) {
	v := newView("abc\ndef\n")
	events := event.NewManager()
	var changes int
	events.Subscribe(event.TypeSelectionChanged, func(e event.Event) bool {
		changes++
		return false
	})
	v.SetEventManager(events)

	v.SetSelection(types.Region{Begin: 5, End: 7}, types.Region{Begin: 1, End: 2})
	assert.Equal(t, types.Region{Begin: 1, End: 2}, v.Selection().Primary())
	assert.Equal(t, 2, v.Caret())

	v.MoveCaret(1, 0, false)
	assert.Equal(t, types.Position{Line: 1, Col: 2}, v.CaretPosition())
	assert.Equal(t, 1, v.Selection().Len())

	v.MoveCaret(0, -1, true)
	assert.Equal(t, types.Region{Begin: 5, End: 6}, v.Selection().Primary())

	v.End(false)
	assert.Equal(t, 7, v.Caret())
	v.MoveCaret(0, 1, false)
	assert.Equal(t, types.Position{Line: 2, Col: 0}, v.CaretPosition(), "moving right at end of line wraps")

	v.SetSelection(types.Region{Begin: 100, End: 200})
	assert.Equal(t, types.Point(8), v.Selection().Primary(), "selection is clamped to the buffer")
	assert.Equal(t, 6, changes)
}

func TestSettingsAndRegionSets(t *testing.T) {
	v := newView("abc")
	assert.False(t, v.SettingBool("flag"))
	v.SetSetting("flag", true)
	assert.True(t, v.SettingBool("flag"))
	v.SetSetting("flag", "yes")
	assert.False(t, v.SettingBool("flag"), "non-bool values read as false")
	v.EraseSetting("flag")
	_, ok := v.Setting("flag")
	assert.False(t, ok)

	regions := []types.Region{{Begin: 0, End: 1}}
	v.AddRegions("b", regions, "fill")
	v.AddRegions("a", nil, "outline")
	regions[0].End = 3
	assert.Equal(t, []types.Region{{Begin: 0, End: 1}}, v.GetRegions("b"), "stored sets are copies")
	assert.True(t, v.HasRegions("a"))
	assert.Equal(t, []string{"a", "b"}, v.RegionKeys())

	v.EraseRegions("b")
	assert.Nil(t, v.GetRegions("b"))
	assert.False(t, v.HasRegions("b"))
}

func TestEditsShiftRegionSets(t *testing.T) {
	v := newView("A^B, C")
	v.AddRegions("hl", []types.Region{{Begin: 0, End: 1}, {Begin: 2, End: 3}, {Begin: 5, End: 6}}, "outline")

	v.SetSelection(types.Point(0))
	require.NoError(t, v.InsertText("xx"))
	assert.Equal(t, "xxA^B, C", v.Buffer().Text())
	assert.Equal(t, []types.Region{{Begin: 2, End: 3}, {Begin: 4, End: 5}, {Begin: 7, End: 8}}, v.GetRegions("hl"))
	assert.Equal(t, 2, v.Caret())

	// Deleting "B" collapses its region.
	v.SetSelection(types.Point(5))
	require.NoError(t, v.Backspace())
	assert.Equal(t, "xxA^, C", v.Buffer().Text())
	assert.Equal(t, []types.Region{{Begin: 2, End: 3}, {Begin: 4, End: 4}, {Begin: 6, End: 7}}, v.GetRegions("hl"))

	// Typing at the end of a region leaves it unchanged.
	v.SetSelection(types.Point(3))
	require.NoError(t, v.InsertText("y"))
	assert.Equal(t, types.Region{Begin: 2, End: 3}, v.GetRegions("hl")[0])

	v.SetSelection(types.Point(v.Buffer().Size()))
	require.NoError(t, v.DeleteForward())
	assert.Equal(t, "xxAy^, C", v.Buffer().Text())
}

func TestShowRegionScrolls(t *testing.T) {
	text := ""
	for i := 0; i < 100; i++ {
		text += "line\n"
	}
	v := newView(text)
	v.ScrollOff = 0
	v.SetViewSize(20, 11)

	line50, err := v.Buffer().LineRegion(50)
	require.NoError(t, err)
	v.ShowRegion(line50)
	top, _ := v.Viewport()
	assert.LessOrEqual(t, top, 50)
	assert.Greater(t, top+10, 50)

	v.ShowRegion(types.Point(0))
	top, _ = v.Viewport()
	assert.Equal(t, 0, top)
}

func TestVisualColumn(t *testing.T) {
	assert.Equal(t, 0, VisualColumn("abc", 0, 4))
	assert.Equal(t, 4, VisualColumn("\tx", 1, 4))
	assert.Equal(t, 4, VisualColumn("世界x", 2, 4))
}

func TestScopesThroughView(t *testing.T) {
	v := newView(":Code Main\nA^B, @Break\n")
	assert.Positive(t, v.ScoreSelector(11, "fs_local"))
	assert.Positive(t, v.ScoreSelector(11, "subroutine"))
	assert.Len(t, v.FindBySelector("debug_function"), 1)

	b, ok := v.CodeBlockAt(11)
	require.True(t, ok)
	assert.Equal(t, "Main", b.Name)
}
