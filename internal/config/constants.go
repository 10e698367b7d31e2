package config

import "time"

// Base application details
const AppName = "focusnav"
const DefaultConfigFileName = "config.toml" // Main config file
const DefaultLogFileName = "focusnav.log"

// UI Layout
const StatusBarHeight = 1

// Status Bar
const MessageTimeout = 4 * time.Second

const DefaultTabWidth = 4
const DefaultScrollOff = 3
const SystemClipboard = true
const WatchFile = true

// DefaultFocusFiles are the globs of files opened with the Focus grammar.
var DefaultFocusFiles = []string{"**/*.fex", "**/*.foc", "**/*.focexec"}

// Highlight styles understood by the navigator and the TUI.
const (
	StyleOutline   = "outline"
	StyleFill      = "fill"
	StyleUnderline = "underline"
)

const DefaultHighlightStyle = StyleOutline
