// internal/statusbar/statusbar.go
package statusbar

import (
	"fmt"
	"sync"
	"time"

	"github.com/bethropolis/focusnav/internal/theme"
	"github.com/bethropolis/focusnav/internal/types"
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// Config defines the appearance and behavior of the status bar.
type Config struct {
	StyleDefault   tcell.Style
	StyleModified  tcell.Style
	StyleMessage   tcell.Style
	StyleError     tcell.Style
	StyleCommand   tcell.Style // command-mode input
	MessageTimeout time.Duration
}

// DefaultConfig provides sensible defaults.
func DefaultConfig() Config {
	return Config{
		StyleDefault:   tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorBlue),
		StyleModified:  tcell.StyleDefault.Foreground(tcell.ColorYellow).Background(tcell.ColorBlue).Bold(true),
		StyleMessage:   tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlue).Bold(true),
		StyleError:     tcell.StyleDefault.Foreground(tcell.ColorRed).Background(tcell.ColorBlue).Bold(true),
		StyleCommand:   tcell.StyleDefault.Foreground(tcell.ColorGreen).Background(tcell.ColorBlue).Bold(true),
		MessageTimeout: 4 * time.Second,
	}
}

// ConfigFromTheme takes the status bar styles from th.
func ConfigFromTheme(th *theme.Theme, timeout time.Duration) Config {
	return Config{
		StyleDefault:   th.GetStyle("StatusBar"),
		StyleModified:  th.GetStyle("StatusBarModified"),
		StyleMessage:   th.GetStyle("StatusBarMessage"),
		StyleError:     th.GetStyle("StatusBarError"),
		StyleCommand:   th.GetStyle("StatusBarCommand"),
		MessageTimeout: timeout,
	}
}

// StatusBar represents the UI component for the status line.
type StatusBar struct {
	config Config
	mu     sync.RWMutex
	now    func() time.Time

	filePath   string
	isModified bool
	cursorPos  types.Position
	selections int
	highlights int
	editorMode string

	tempMessage     string
	tempMessageTime time.Time
	tempIsError     bool

	commandInput  string // shown while in command mode, never expires
	commandActive bool
}

// New creates a new StatusBar with the given configuration.
func New(config Config) *StatusBar {
	return &StatusBar{config: config, now: time.Now}
}

// SetConfig replaces the styles, e.g. after a theme change.
func (sb *StatusBar) SetConfig(config Config) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.config = config
}

// SetFileInfo updates the file path shown in the status bar.
func (sb *StatusBar) SetFileInfo(path string, modified bool) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.filePath = path
	sb.isModified = modified
}

// SetCursorInfo updates the caret position and the selection count.
func (sb *StatusBar) SetCursorInfo(pos types.Position, selections int) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.cursorPos = pos
	sb.selections = selections
}

// SetHighlightCount sets how many entity highlights are live.
func (sb *StatusBar) SetHighlightCount(n int) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.highlights = n
}

// SetEditorMode updates the displayed editor mode.
func (sb *StatusBar) SetEditorMode(mode string) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.editorMode = mode
}

// SetCommandInput shows the command being typed. An empty string with
// active false hides it.
func (sb *StatusBar) SetCommandInput(input string, active bool) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.commandInput = input
	sb.commandActive = active
}

// SetTemporaryMessage displays a message for a configured duration.
func (sb *StatusBar) SetTemporaryMessage(format string, args ...interface{}) {
	sb.setMessage(false, format, args...)
}

// SetTemporaryError displays an error message for a configured duration.
func (sb *StatusBar) SetTemporaryError(format string, args ...interface{}) {
	sb.setMessage(true, format, args...)
}

func (sb *StatusBar) setMessage(isError bool, format string, args ...interface{}) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.tempMessage = fmt.Sprintf(format, args...)
	sb.tempMessageTime = sb.now()
	sb.tempIsError = isError
}

// ResetTemporaryMessage clears any temporary message being displayed
func (sb *StatusBar) ResetTemporaryMessage() {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.tempMessage = ""
	sb.tempMessageTime = time.Time{}
	sb.tempIsError = false
}

// leftText is the file section. Caller holds the lock.
func (sb *StatusBar) leftText() string {
	fPath := sb.filePath
	if fPath == "" {
		fPath = "[No Name]"
	}
	if sb.isModified {
		fPath += " [Modified]"
	}
	if sb.editorMode != "" {
		fPath += " -- " + sb.editorMode
	}
	return fPath
}

// rightText is the position section. Caller holds the lock.
func (sb *StatusBar) rightText() string {
	text := fmt.Sprintf("Ln %d, Col %d", sb.cursorPos.Line+1, sb.cursorPos.Col+1)
	if sb.selections > 1 {
		text = fmt.Sprintf("%d sel  %s", sb.selections, text)
	}
	if sb.highlights > 0 {
		text = fmt.Sprintf("%d hl  %s", sb.highlights, text)
	}
	return text
}

// Content returns the texts and style Draw would use now: the left and
// right sections, or a message in left with right empty.
func (sb *StatusBar) Content() (left, right string, style tcell.Style) {
	sb.mu.Lock()
	defer sb.mu.Unlock()

	if sb.commandActive {
		return ":" + sb.commandInput, "", sb.config.StyleCommand
	}

	if !sb.tempMessageTime.IsZero() {
		if sb.now().Sub(sb.tempMessageTime) <= sb.config.MessageTimeout {
			if sb.tempIsError {
				return sb.tempMessage, "", sb.config.StyleError
			}
			return sb.tempMessage, "", sb.config.StyleMessage
		}
		sb.tempMessage = ""
		sb.tempMessageTime = time.Time{}
		sb.tempIsError = false
	}

	style = sb.config.StyleDefault
	if sb.isModified {
		style = sb.config.StyleModified
	}
	return sb.leftText(), sb.rightText(), style
}

// Layout fits left and right into width columns: right is right-aligned
// and left is truncated with an ellipsis when both do not fit.
func Layout(left, right string, width int) (string, int) {
	if width <= 0 {
		return "", 0
	}
	rightWidth := runewidth.StringWidth(right)
	if rightWidth >= width {
		return runewidth.Truncate(right, width, "…"), 0
	}
	room := width - rightWidth
	if right != "" {
		room-- // gap
	}
	left = runewidth.Truncate(left, room, "…")
	return left, width - rightWidth
}

// Draw renders the status bar on the last screen line.
func (sb *StatusBar) Draw(screen tcell.Screen, width, height int) {
	if height <= 0 || width <= 0 {
		return
	}
	y := height - 1

	left, right, style := sb.Content()
	left, rightX := Layout(left, right, width)

	for x := 0; x < width; x++ {
		screen.SetContent(x, y, ' ', nil, style)
	}
	drawText(screen, 0, y, width, left, style)
	if right != "" && rightX > 0 {
		drawText(screen, rightX, y, width, right, style)
	}
}

// drawText writes text grapheme by grapheme, stopping at maxX.
func drawText(screen tcell.Screen, x, y, maxX int, text string, style tcell.Style) {
	gr := uniseg.NewGraphemes(text)
	for gr.Next() {
		clusterWidth := gr.Width()
		if x+clusterWidth > maxX {
			break
		}
		runes := gr.Runes()
		if len(runes) > 0 {
			screen.SetContent(x, y, runes[0], runes[1:], style)
		}
		x += clusterWidth
	}
}
