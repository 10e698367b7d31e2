// internal/theme/theme.go
package theme

import (
	"strings"

	"github.com/bethropolis/focusnav/internal/logger"
	"github.com/gdamore/tcell/v2"
)

// Theme maps style names, including dotted scope names, to tcell styles.
type Theme struct {
	Name   string
	IsDark bool
	Styles map[string]tcell.Style
}

// GetStyle returns the style for name. A dotted scope name falls back to its
// shorter prefixes ("variable.other.local.fs" -> "variable.other.local" ->
// ...), then to "Default".
func (t *Theme) GetStyle(name string) tcell.Style {
	for key := name; key != ""; {
		if style, ok := t.Styles[key]; ok {
			if key != name {
				logger.DebugTagf("theme", "Theme '%s': Style '%s' not found, using '%s'", t.Name, name, key)
			}
			return style
		}
		dot := strings.LastIndex(key, ".")
		if dot < 0 {
			break
		}
		key = key[:dot]
	}

	if defStyle, ok := t.Styles["Default"]; ok {
		return defStyle
	}
	logger.Warnf("Theme '%s': Style '%s' and 'Default' style not found, using tcell default.", t.Name, name)
	return tcell.StyleDefault
}

// HighlightStyle returns the style entity highlights are drawn with for a
// configured highlight style (outline, fill, underline).
func (t *Theme) HighlightStyle(kind string) tcell.Style {
	switch kind {
	case "fill":
		return t.GetStyle("HighlightFill")
	case "underline":
		return t.GetStyle("HighlightUnderline")
	default:
		return t.GetStyle("HighlightOutline")
	}
}

// ScopeStyle picks the style for the innermost scope that has one.
func (t *Theme) ScopeStyle(scopes []string) tcell.Style {
	for i := len(scopes) - 1; i >= 0; i-- {
		if style, ok := t.lookup(scopes[i]); ok {
			return style
		}
	}
	return t.GetStyle("Default")
}

// lookup is GetStyle without the Default fallback.
func (t *Theme) lookup(name string) (tcell.Style, bool) {
	for key := name; key != ""; {
		if style, ok := t.Styles[key]; ok {
			return style, true
		}
		dot := strings.LastIndex(key, ".")
		if dot < 0 {
			break
		}
		key = key[:dot]
	}
	return tcell.StyleDefault, false
}

// --- DevComfort Dark Theme Definition ---

// DevComfortDark is the built-in theme.
var DevComfortDark Theme

func init() {
	dcBackground := tcell.NewHexColor(0x2a2f38)
	dcForeground := tcell.NewHexColor(0xc5cdd9)
	dcComment := tcell.NewHexColor(0x5c6370)
	dcOrange := tcell.NewHexColor(0xd19a66)
	dcYellow := tcell.NewHexColor(0xe5c07b)
	dcGreen := tcell.NewHexColor(0x98c379)
	dcCyan := tcell.NewHexColor(0x56b6c2)
	dcBlue := tcell.NewHexColor(0x61afef)
	dcMagenta := tcell.NewHexColor(0xc678dd)
	dcRed := tcell.NewHexColor(0xe06c75)

	baseStyle := tcell.StyleDefault.Background(tcell.ColorReset).Foreground(dcForeground)

	DevComfortDark = Theme{
		Name:   "DevComfort Dark",
		IsDark: true,
		Styles: map[string]tcell.Style{
			// --- UI Elements ---
			"Default":           baseStyle,
			"LineNumber":        baseStyle.Foreground(dcComment),
			"Selection":         baseStyle.Reverse(true),
			"StatusBar":         tcell.StyleDefault.Background(dcBackground).Foreground(dcForeground),
			"StatusBarModified": tcell.StyleDefault.Background(dcBackground).Foreground(dcYellow),
			"StatusBarMessage":  tcell.StyleDefault.Background(dcBackground).Foreground(dcForeground).Bold(true),
			"StatusBarError":    tcell.StyleDefault.Background(dcBackground).Foreground(dcRed).Bold(true),
			"StatusBarCommand":  tcell.StyleDefault.Background(dcBackground).Foreground(dcGreen).Bold(true),

			// --- Entity highlights ---
			"HighlightOutline":   baseStyle.Foreground(dcYellow).Underline(true).Bold(true),
			"HighlightFill":      tcell.StyleDefault.Background(dcYellow).Foreground(tcell.ColorBlack),
			"HighlightUnderline": baseStyle.Underline(true),

			// --- Focus scopes ---
			"comment":                     baseStyle.Foreground(dcComment).Italic(true),
			"comment.block.documentation": baseStyle.Foreground(dcGreen).Italic(true),
			"string":                      baseStyle.Foreground(dcGreen),
			"entity.name.function":        baseStyle.Foreground(dcYellow),
			"support.function.debug":      baseStyle.Foreground(dcRed).Bold(true),
			"variable.other.local":        baseStyle.Foreground(dcCyan),
			"variable.other.local.focus":  baseStyle.Foreground(dcMagenta),
			"variable.parameter":          baseStyle.Foreground(dcOrange),
			"keyword":                     baseStyle.Foreground(dcBlue).Bold(true),
		},
	}
}
