package statusbar

import (
	"strings"
	"testing"
	"time"

	"github.com/bethropolis/focusnav/internal/types"
	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBar() (*StatusBar, *time.Time) {
	clock := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	sb := New(DefaultConfig())
	sb.now = func() time.Time { return clock }
	return sb, &clock
}

func TestDefaultContent(t *testing.T) {
	sb, _ := newTestBar()
	left, right, style := sb.Content()
	assert.Equal(t, "[No Name]", left)
	assert.Equal(t, "Ln 1, Col 1", right)
	assert.Equal(t, DefaultConfig().StyleDefault, style)

	sb.SetFileInfo("main.foc", true)
	sb.SetEditorMode("COMMAND")
	sb.SetCursorInfo(types.Position{Line: 2, Col: 4}, 3)
	sb.SetHighlightCount(5)
	left, right, style = sb.Content()
	assert.Equal(t, "main.foc [Modified] -- COMMAND", left)
	assert.Equal(t, "5 hl  3 sel  Ln 3, Col 5", right)
	assert.Equal(t, DefaultConfig().StyleModified, style)
}

func TestMessagesExpire(t *testing.T) {
	sb, clock := newTestBar()

	sb.SetTemporaryError("Highlight failed: %s", "stale")
	left, right, style := sb.Content()
	assert.Equal(t, "Highlight failed: stale", left)
	assert.Empty(t, right)
	assert.Equal(t, DefaultConfig().StyleError, style)

	*clock = clock.Add(5 * time.Second)
	left, _, _ = sb.Content()
	assert.Equal(t, "[No Name]", left)

	sb.SetTemporaryMessage("hello")
	sb.ResetTemporaryMessage()
	left, _, _ = sb.Content()
	assert.Equal(t, "[No Name]", left)
}

func TestCommandInputWins(t *testing.T) {
	sb, _ := newTestBar()
	sb.SetTemporaryMessage("hello")
	sb.SetCommandInput("next", true)

	left, _, style := sb.Content()
	assert.Equal(t, ":next", left)
	assert.Equal(t, DefaultConfig().StyleCommand, style)

	sb.SetCommandInput("", false)
	left, _, _ = sb.Content()
	assert.Equal(t, "hello", left)
}

func TestLayout(t *testing.T) {
	left, x := Layout("file.foc", "Ln 1, Col 1", 30)
	assert.Equal(t, "file.foc", left)
	assert.Equal(t, 19, x)

	left, x = Layout("a/very/long/path/to/file.foc", "Ln 1, Col 1", 20)
	assert.True(t, strings.HasSuffix(left, "…"))
	assert.LessOrEqual(t, len([]rune(left)), 8)
	assert.Equal(t, 9, x)

	left, x = Layout("x", "Ln 100, Col 100", 5)
	assert.Equal(t, 0, x)
	assert.Len(t, []rune(left), 5)
}

func TestDraw(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	defer screen.Fini()
	screen.SetSize(30, 3)

	sb, _ := newTestBar()
	sb.SetFileInfo("main.foc", false)
	sb.Draw(screen, 30, 3)
	screen.Show()

	cells, w, _ := screen.GetContents()
	var row strings.Builder
	for x := 0; x < w; x++ {
		row.WriteString(string(cells[2*w+x].Runes))
	}
	assert.True(t, strings.HasPrefix(row.String(), "main.foc"))
	assert.True(t, strings.HasSuffix(row.String(), "Ln 1, Col 1"))
}
