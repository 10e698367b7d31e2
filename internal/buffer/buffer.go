// internal/buffer/buffer.go
package buffer

import (
	"errors"

	"github.com/bethropolis/focusnav/internal/types"
)

// ErrOutOfRange is returned when an offset or line index falls outside the buffer.
var ErrOutOfRange = errors.New("out of range")

// Buffer defines the interface for text buffer operations.
// All offsets are rune offsets from the start of the text.
type Buffer interface {
	Load(filePath string) error
	Save(filePath string) error
	FilePath() string
	IsModified() bool

	// ID identifies the buffer for caches keyed by (ID, Version).
	ID() string
	// Version increases on every mutation.
	Version() uint64

	Size() int
	Text() string
	Substr(r types.Region) string
	SetText(text string) types.EditInfo

	LineCount() int
	Line(index int) (string, error)
	LineRegion(index int) (types.Region, error)
	RowCol(offset int) types.Position
	TextPoint(pos types.Position) int
	Word(offset int) types.Region

	Insert(offset int, text string) (types.EditInfo, error)
	Delete(r types.Region) (types.EditInfo, error)

	FindFirst(pattern string, from int) (types.Region, bool, error)
	FindAll(pattern string) ([]types.Region, error)
	FindAllIn(pattern string, within types.Region) ([]types.Region, error)
}
