// internal/tui/drawing.go
package tui

import (
	"fmt"
	"math"

	"github.com/bethropolis/focusnav/internal/config"
	"github.com/bethropolis/focusnav/internal/logger"
	"github.com/bethropolis/focusnav/internal/scope"
	"github.com/bethropolis/focusnav/internal/theme"
	"github.com/bethropolis/focusnav/internal/types"
	"github.com/bethropolis/focusnav/internal/view"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"
)

const lineNumberPadding = 1

// GutterWidth is the width of the line-number column, zero when the screen
// is too narrow for it.
func GutterWidth(lineCount, width int) int {
	if lineCount < 1 {
		lineCount = 1
	}
	gutter := int(math.Log10(float64(lineCount))) + 1 + lineNumberPadding
	if gutter >= width {
		return 0
	}
	return gutter
}

// layer is a group of regions painted with one style.
type layer struct {
	regions []types.Region
	style   tcell.Style
}

func (l layer) covers(offset int) bool {
	for _, r := range l.regions {
		if r.Begin <= offset && offset < r.End {
			return true
		}
	}
	return false
}

// layers returns the region sets in key order followed by the selection;
// later layers win.
func layers(v *view.View, th *theme.Theme) []layer {
	var out []layer
	for _, key := range v.RegionKeys() {
		set, ok := v.RegionSet(key)
		if !ok || len(set.Regions) == 0 {
			continue
		}
		out = append(out, layer{regions: set.Regions, style: th.HighlightStyle(set.Style)})
	}
	return append(out, layer{regions: v.Selection().Regions(), style: th.GetStyle("Selection")})
}

// scopeStyle picks the innermost span's style at offset. spans are sorted
// by Begin, outermost first.
func scopeStyle(spans []scope.Span, offset int, th *theme.Theme, def tcell.Style) tcell.Style {
	var names []string
	for _, span := range spans {
		if span.Region.Begin > offset {
			break
		}
		if offset < span.Region.End {
			names = append(names, span.Scope)
		}
	}
	if len(names) == 0 {
		return def
	}
	return th.ScopeStyle(names)
}

// DrawView draws the visible part of v: gutter, scope colors, region sets
// and the selection.
func DrawView(t *TUI, v *view.View, th *theme.Theme) {
	if th == nil {
		th = &theme.DevComfortDark
	}
	defaultStyle := th.GetStyle("Default")
	lineNumberStyle := th.GetStyle("LineNumber")

	width, height := t.Size()
	viewHeight := height - config.StatusBarHeight
	if viewHeight <= 0 || width <= 0 {
		return
	}
	viewY, viewX := v.Viewport()
	buf := v.Buffer()
	lineCount := buf.LineCount()
	gutterWidth := GutterWidth(lineCount, width)
	maxDigits := gutterWidth - lineNumberPadding
	textAreaWidth := width - gutterWidth
	caretLine := v.CaretPosition().Line

	spans := v.ScopeSpans()
	paint := layers(v, th)

	for screenY := 0; screenY < viewHeight; screenY++ {
		lineIdx := screenY + viewY

		for x := 0; x < width; x++ {
			t.screen.SetContent(x, screenY, ' ', nil, defaultStyle)
		}
		if lineIdx < 0 || lineIdx >= lineCount {
			continue
		}

		if gutterWidth > 0 {
			style := lineNumberStyle
			if lineIdx == caretLine {
				style = style.Bold(true)
			}
			for i, r := range fmt.Sprintf("%*d", maxDigits, lineIdx+1) {
				t.screen.SetContent(i, screenY, r, nil, style)
			}
		}

		line, err := buf.Line(lineIdx)
		if err != nil {
			logger.Debugf("DrawView: line %d: %v", lineIdx, err)
			continue
		}
		lineRegion, _ := buf.LineRegion(lineIdx)

		gr := uniseg.NewGraphemes(line)
		visualX, runeIdx := 0, 0
		for gr.Next() {
			runes := gr.Runes()
			clusterWidth := gr.Width()
			isTab := len(runes) == 1 && runes[0] == '\t'
			if isTab && v.TabWidth > 0 {
				clusterWidth = v.TabWidth - visualX%v.TabWidth
			}

			if visualX+clusterWidth > viewX && visualX < viewX+textAreaWidth {
				offset := lineRegion.Begin + runeIdx
				style := scopeStyle(spans, offset, th, defaultStyle)
				for _, l := range paint {
					if l.covers(offset) {
						style = l.style
					}
				}

				screenX := visualX - viewX + gutterWidth
				for cw := 0; cw < clusterWidth; cw++ {
					x := screenX + cw
					if x < gutterWidth || x >= width {
						continue
					}
					if cw == 0 && !isTab {
						t.screen.SetContent(x, screenY, runes[0], runes[1:], style)
					} else {
						t.screen.SetContent(x, screenY, ' ', nil, style)
					}
				}
			}

			visualX += clusterWidth
			runeIdx += len(runes)
			if visualX >= viewX+textAreaWidth {
				break
			}
		}
	}
}

// DrawCursor positions the terminal cursor at the caret.
func DrawCursor(t *TUI, v *view.View) {
	width, height := t.Size()
	viewHeight := height - config.StatusBarHeight
	viewY, viewX := v.Viewport()
	buf := v.Buffer()
	gutterWidth := GutterWidth(buf.LineCount(), width)

	caret := v.CaretPosition()
	visualCol := 0
	if line, err := buf.Line(caret.Line); err == nil {
		visualCol = view.VisualColumn(line, caret.Col, v.TabWidth)
	} else {
		logger.Debugf("DrawCursor: line %d: %v", caret.Line, err)
	}

	screenX := visualCol - viewX + gutterWidth
	screenY := caret.Line - viewY
	if screenX < gutterWidth || screenX >= width || screenY < 0 || screenY >= viewHeight || viewHeight <= 0 {
		t.screen.HideCursor()
		return
	}
	t.screen.ShowCursor(screenX, screenY)
}
