// internal/buffer/rune_buffer.go
package buffer

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"unicode"

	"github.com/bethropolis/focusnav/internal/types"
	"github.com/google/uuid"
	"github.com/rivo/uniseg"
)

// RuneBuffer stores text as runes with a line-start index.
type RuneBuffer struct {
	id         string
	runes      []rune
	lineStarts []int // offset of the first rune of every line
	filePath   string
	modified   bool
	version    uint64
}

// NewRuneBuffer creates an empty buffer.
func NewRuneBuffer() *RuneBuffer {
	b := &RuneBuffer{id: uuid.New().String()}
	b.reindex()
	return b
}

// NewRuneBufferFromString creates an unmodified buffer holding text.
func NewRuneBufferFromString(text string) *RuneBuffer {
	b := NewRuneBuffer()
	b.runes = []rune(normalizeNewlines(text))
	b.reindex()
	return b
}

func normalizeNewlines(text string) string {
	return strings.ReplaceAll(text, "\r\n", "\n")
}

// reindex rebuilds lineStarts after the rune slice changed.
func (b *RuneBuffer) reindex() {
	starts := []int{0}
	for i, r := range b.runes {
		if r == '\n' {
			starts = append(starts, i+1)
		}
	}
	b.lineStarts = starts
}

// Load reads a file into the buffer. A missing file yields an empty buffer bound to that path.
func (b *RuneBuffer) Load(filePath string) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			b.runes = nil
			b.filePath = filePath
			b.modified = false
			b.version++
			b.reindex()
			return nil
		}
		return fmt.Errorf("failed to read file '%s': %w", filePath, err)
	}
	b.runes = []rune(normalizeNewlines(string(data)))
	b.filePath = filePath
	b.modified = false
	b.version++
	b.reindex()
	return nil
}

// Save writes the buffer to filePath, or to the loaded path when filePath is empty.
func (b *RuneBuffer) Save(filePath string) error {
	path := b.filePath
	if filePath != "" {
		path = filePath
	}
	if path == "" {
		return errors.New("no file path specified for saving")
	}
	if err := os.WriteFile(path, []byte(string(b.runes)), 0o644); err != nil {
		return fmt.Errorf("failed to write file '%s': %w", path, err)
	}
	b.filePath = path
	b.modified = false
	return nil
}

func (b *RuneBuffer) FilePath() string { return b.filePath }
func (b *RuneBuffer) IsModified() bool { return b.modified }
func (b *RuneBuffer) ID() string       { return b.id }
func (b *RuneBuffer) Version() uint64  { return b.version }
func (b *RuneBuffer) Size() int        { return len(b.runes) }
func (b *RuneBuffer) Text() string     { return string(b.runes) }

// Substr returns the text covered by r, clamped to the buffer.
func (b *RuneBuffer) Substr(r types.Region) string {
	r = r.Clamp(len(b.runes))
	return string(b.runes[r.Begin:r.End])
}

// SetText replaces the whole content.
func (b *RuneBuffer) SetText(text string) types.EditInfo {
	old := len(b.runes)
	b.runes = []rune(normalizeNewlines(text))
	return b.commit(0, old, len(b.runes))
}

// commit bumps the version and returns the EditInfo for a mutation.
func (b *RuneBuffer) commit(start, oldEnd, newEnd int) types.EditInfo {
	info := types.EditInfo{Start: start, OldEnd: oldEnd, NewEnd: newEnd, OldVersion: b.version}
	b.version++
	b.modified = true
	b.reindex()
	info.NewVersion = b.version
	return info
}

// LineCount returns the number of lines; an empty buffer has one line.
func (b *RuneBuffer) LineCount() int {
	return len(b.lineStarts)
}

// LineRegion returns the region of line index, excluding its newline.
func (b *RuneBuffer) LineRegion(index int) (types.Region, error) {
	if index < 0 || index >= len(b.lineStarts) {
		return types.Region{}, fmt.Errorf("line index %d (0-%d): %w", index, len(b.lineStarts)-1, ErrOutOfRange)
	}
	begin := b.lineStarts[index]
	end := len(b.runes)
	if index+1 < len(b.lineStarts) {
		end = b.lineStarts[index+1] - 1
	}
	return types.Region{Begin: begin, End: end}, nil
}

// Line returns the text of a line without its newline.
func (b *RuneBuffer) Line(index int) (string, error) {
	r, err := b.LineRegion(index)
	if err != nil {
		return "", err
	}
	return b.Substr(r), nil
}

// RowCol converts an offset to a line/column position. Offsets are clamped.
func (b *RuneBuffer) RowCol(offset int) types.Position {
	if offset < 0 {
		offset = 0
	}
	if offset > len(b.runes) {
		offset = len(b.runes)
	}
	line := sort.SearchInts(b.lineStarts, offset+1) - 1
	return types.Position{Line: line, Col: offset - b.lineStarts[line]}
}

// TextPoint converts a line/column position to an offset, clamping both parts.
func (b *RuneBuffer) TextPoint(pos types.Position) int {
	if pos.Line < 0 {
		return 0
	}
	if pos.Line >= len(b.lineStarts) {
		return len(b.runes)
	}
	lr, _ := b.LineRegion(pos.Line)
	col := pos.Col
	if col < 0 {
		col = 0
	}
	if col > lr.Size() {
		col = lr.Size()
	}
	return lr.Begin + col
}

// Word returns the word segment around offset using Unicode word boundaries.
// A digit run preceded by the '|' argument sigil includes the sigil.
func (b *RuneBuffer) Word(offset int) types.Region {
	pos := b.RowCol(offset)
	lr, _ := b.LineRegion(pos.Line)
	line := b.Substr(lr)
	if line == "" {
		return types.Point(lr.Begin)
	}

	var segments []types.Region
	start := lr.Begin
	state := -1
	rest := line
	for len(rest) > 0 {
		var word string
		word, rest, state = uniseg.FirstWordInString(rest, state)
		n := len([]rune(word))
		segments = append(segments, types.Region{Begin: start, End: start + n})
		start += n
	}

	found := segments[len(segments)-1]
	for _, seg := range segments {
		if offset >= seg.Begin && offset < seg.End {
			found = seg
			break
		}
	}
	// Prefer the word on the left when the caret sits between a word and a separator.
	if offset == found.Begin && offset > lr.Begin && !isWordRune(b.runes[offset]) && isWordRune(b.runes[offset-1]) {
		for _, seg := range segments {
			if seg.End == offset {
				found = seg
				break
			}
		}
	}

	if found.Begin > lr.Begin && b.runes[found.Begin-1] == '|' && isDigits(b.runes[found.Begin:found.End]) {
		found.Begin--
	}
	return found
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}

func isDigits(rs []rune) bool {
	if len(rs) == 0 {
		return false
	}
	for _, r := range rs {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// Insert inserts text at offset.
func (b *RuneBuffer) Insert(offset int, text string) (types.EditInfo, error) {
	if offset < 0 || offset > len(b.runes) {
		return types.EditInfo{}, fmt.Errorf("insert at %d (size %d): %w", offset, len(b.runes), ErrOutOfRange)
	}
	ins := []rune(normalizeNewlines(text))
	if len(ins) == 0 {
		return types.EditInfo{Start: offset, OldEnd: offset, NewEnd: offset, OldVersion: b.version, NewVersion: b.version}, nil
	}
	out := make([]rune, 0, len(b.runes)+len(ins))
	out = append(out, b.runes[:offset]...)
	out = append(out, ins...)
	out = append(out, b.runes[offset:]...)
	b.runes = out
	return b.commit(offset, offset, offset+len(ins)), nil
}

// Delete removes the text covered by r.
func (b *RuneBuffer) Delete(r types.Region) (types.EditInfo, error) {
	r = types.NewRegion(r.Begin, r.End)
	if r.Begin < 0 || r.End > len(b.runes) {
		return types.EditInfo{}, fmt.Errorf("delete %v (size %d): %w", r, len(b.runes), ErrOutOfRange)
	}
	if r.Empty() {
		return types.EditInfo{Start: r.Begin, OldEnd: r.Begin, NewEnd: r.Begin, OldVersion: b.version, NewVersion: b.version}, nil
	}
	b.runes = append(b.runes[:r.Begin:r.Begin], b.runes[r.End:]...)
	return b.commit(r.Begin, r.End, r.Begin), nil
}

// Ensure RuneBuffer satisfies the Buffer interface
var _ Buffer = (*RuneBuffer)(nil)
