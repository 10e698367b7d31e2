// internal/event/event.go
package event

import (
	"github.com/bethropolis/focusnav/internal/types"
	"github.com/gdamore/tcell/v2"
)

// Type identifies the kind of event.
type Type int

const (
	TypeUnknown Type = iota

	// Buffer events
	TypeBufferModified // Insert/delete through the view
	TypeBufferLoaded   // Initial load
	TypeBufferSaved
	TypeBufferReloaded // File changed on disk and was read again

	// View events
	TypeSelectionChanged
	TypeRegionsChanged // A named region set was added or erased

	TypeKeyPressed

	// Application lifecycle
	TypeAppReady
	TypeAppQuit
)

var typeNames = map[Type]string{
	TypeBufferModified:   "BufferModified",
	TypeBufferLoaded:     "BufferLoaded",
	TypeBufferSaved:      "BufferSaved",
	TypeBufferReloaded:   "BufferReloaded",
	TypeSelectionChanged: "SelectionChanged",
	TypeRegionsChanged:   "RegionsChanged",
	TypeKeyPressed:       "KeyPressed",
	TypeAppReady:         "AppReady",
	TypeAppQuit:          "AppQuit",
}

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return "Unknown"
}

// Event is the structure passed through the event bus.
type Event struct {
	Type Type
	Data interface{}
}

// BufferModifiedData describes an edit in rune offsets.
type BufferModifiedData struct {
	Edit types.EditInfo
}

// BufferLoadedData contains info about the loaded buffer.
type BufferLoadedData struct {
	FilePath string
}

// BufferSavedData contains info about the saved buffer.
type BufferSavedData struct {
	FilePath string
}

// BufferReloadedData is sent after the file was read again from disk.
type BufferReloadedData struct {
	FilePath string
	Version  uint64
}

// SelectionChangedData carries the new selection.
type SelectionChangedData struct {
	Selection types.Selection
}

// RegionsChangedData names the region set that changed. Count is zero
// when the set was erased.
type RegionsChangedData struct {
	Key   string
	Count int
}

// KeyPressedData contains the raw tcell key event.
type KeyPressedData struct {
	KeyEvent *tcell.EventKey
}

type AppQuitData struct{}

type AppReadyData struct{}
