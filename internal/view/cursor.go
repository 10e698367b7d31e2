package view

import (
	"github.com/bethropolis/focusnav/internal/config"
	"github.com/bethropolis/focusnav/internal/event"
	"github.com/bethropolis/focusnav/internal/logger"
	"github.com/bethropolis/focusnav/internal/types"
	"github.com/rivo/uniseg"
)

// placeCaret moves the caret. Without extend the anchor follows it and the
// selection collapses to a point.
func (v *View) placeCaret(offset int, extend bool) {
	size := v.buf.Size()
	if offset < 0 {
		offset = 0
	} else if offset > size {
		offset = size
	}
	v.caret = offset
	if !extend {
		v.anchor = offset
	}
	v.sel.Set(types.NewRegion(v.anchor, v.caret))
	v.scrollTo(v.caret)
	v.dispatch(event.TypeSelectionChanged, event.SelectionChangedData{Selection: v.Selection()})
}

// MoveCaret moves the caret by lines and columns. Moving right past the end
// of a line wraps to the next one, and left past the start wraps back.
func (v *View) MoveCaret(deltaLine, deltaCol int, extend bool) {
	pos := v.buf.RowCol(v.caret)
	lineCount := v.buf.LineCount()

	if deltaLine == 0 && deltaCol != 0 {
		v.placeCaret(v.caret+deltaCol, extend)
		return
	}

	target := pos.Line + deltaLine
	if target < 0 {
		target = 0
	} else if target >= lineCount {
		target = lineCount - 1
	}
	v.placeCaret(v.buf.TextPoint(types.Position{Line: target, Col: pos.Col + deltaCol}), extend)
}

// Home moves the caret to the start of its line.
func (v *View) Home(extend bool) {
	pos := v.buf.RowCol(v.caret)
	v.placeCaret(v.buf.TextPoint(types.Position{Line: pos.Line}), extend)
}

// End moves the caret to the end of its line.
func (v *View) End(extend bool) {
	pos := v.buf.RowCol(v.caret)
	r, err := v.buf.LineRegion(pos.Line)
	if err != nil {
		logger.Debugf("View.End: line %d: %v", pos.Line, err)
		return
	}
	v.placeCaret(r.End, extend)
}

// PageMove moves the caret and viewport by whole pages.
func (v *View) PageMove(deltaPages int) {
	if v.viewHeight <= 0 {
		return
	}
	v.ViewportY += v.viewHeight * deltaPages
	maxViewportY := v.buf.LineCount() - v.viewHeight
	if v.ViewportY > maxViewportY {
		v.ViewportY = maxViewportY
	}
	if v.ViewportY < 0 {
		v.ViewportY = 0
	}
	v.MoveCaret(v.viewHeight*deltaPages, 0, false)
}

// SetViewSize updates the cached view dimensions on resize.
func (v *View) SetViewSize(width, height int) {
	v.viewWidth = width
	if height > config.StatusBarHeight {
		v.viewHeight = height - config.StatusBarHeight
	} else {
		v.viewHeight = 0
	}
	v.scrollTo(v.caret)
}

// ViewSize returns the text area size.
func (v *View) ViewSize() (width, height int) {
	return v.viewWidth, v.viewHeight
}

// Viewport returns the top line and left visual column.
func (v *View) Viewport() (int, int) {
	return v.ViewportY, v.ViewportX
}

// ShowRegion scrolls so that r is visible, preferring its start.
func (v *View) ShowRegion(r types.Region) {
	v.scrollTo(r.End)
	v.scrollTo(r.Begin)
}

// VisualColumn computes the screen column of a rune index within a line,
// counting grapheme widths and tabs.
func VisualColumn(line string, runeIndex, tabWidth int) int {
	if runeIndex <= 0 {
		return 0
	}
	col := 0
	current := 0
	gr := uniseg.NewGraphemes(line)
	for gr.Next() {
		if current >= runeIndex {
			break
		}
		runes := gr.Runes()
		if len(runes) == 1 && runes[0] == '\t' && tabWidth > 0 {
			col += tabWidth - col%tabWidth
		} else {
			col += gr.Width()
		}
		current += len(runes)
	}
	return col
}

// scrollTo adjusts the viewport so offset is visible, keeping ScrollOff
// lines of context where the view is tall enough.
func (v *View) scrollTo(offset int) {
	if v.viewHeight <= 0 || v.viewWidth <= 0 {
		return
	}
	pos := v.buf.RowCol(offset)

	scrollOff := v.ScrollOff
	if scrollOff*2 >= v.viewHeight {
		scrollOff = (v.viewHeight - 1) / 2
	}

	if pos.Line < v.ViewportY+scrollOff {
		v.ViewportY = pos.Line - scrollOff
	} else if pos.Line >= v.ViewportY+v.viewHeight-scrollOff {
		v.ViewportY = pos.Line - v.viewHeight + 1 + scrollOff
	}

	line, err := v.buf.Line(pos.Line)
	visualCol := 0
	if err == nil {
		visualCol = VisualColumn(line, pos.Col, v.TabWidth)
	} else {
		logger.Debugf("View.scrollTo: line %d: %v", pos.Line, err)
	}
	if visualCol < v.ViewportX {
		v.ViewportX = visualCol
	} else if visualCol >= v.ViewportX+v.viewWidth {
		v.ViewportX = visualCol - v.viewWidth + 1
	}

	if v.ViewportY < 0 {
		v.ViewportY = 0
	}
	if v.ViewportX < 0 {
		v.ViewportX = 0
	}
}
