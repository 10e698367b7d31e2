// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/bethropolis/focusnav/internal/logger"
	"github.com/bmatcuk/doublestar/v4"
)

// Config holds the application's combined configuration.
type Config struct {
	Logger    logger.Config     `toml:"logger"`
	Editor    EditorConfig      `toml:"editor"`
	Highlight HighlightConfig   `toml:"highlight"`
	Scopes    map[string]string `toml:"scopes"` // scope key -> selector overrides
}

// EditorConfig holds editor-specific settings.
type EditorConfig struct {
	TabWidth        int      `toml:"tab_width"`
	ScrollOff       int      `toml:"scroll_off"`
	SystemClipboard bool     `toml:"system_clipboard"`
	WatchFile       bool     `toml:"watch_file"`
	Theme           string   `toml:"theme"`
	FocusFiles      []string `toml:"focus_files"` // doublestar globs tagged as Focus
}

// HighlightConfig controls how entity highlights are drawn.
type HighlightConfig struct {
	Style string `toml:"style"` // outline, fill or underline
}

// NewDefaultConfig creates a Config struct with default values.
func NewDefaultConfig() *Config {
	return &Config{
		Logger: logger.NewConfig(),
		Editor: EditorConfig{
			TabWidth:        DefaultTabWidth,
			ScrollOff:       DefaultScrollOff,
			SystemClipboard: SystemClipboard,
			WatchFile:       WatchFile,
			FocusFiles:      append([]string(nil), DefaultFocusFiles...),
		},
		Highlight: HighlightConfig{
			Style: DefaultHighlightStyle,
		},
	}
}

// DefaultPath returns ~/.config/focusnav/config.toml, or "" when the
// user config dir cannot be determined.
func DefaultPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(configDir, AppName, DefaultConfigFileName)
}

// loadFromFile decodes a TOML file on top of cfg. A missing file is not an error.
// It returns the keys that were not recognized.
func loadFromFile(filePath string, cfg *Config) ([]string, error) {
	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("error checking config file '%s': %w", filePath, err)
	}

	metadata, err := toml.DecodeFile(filePath, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file '%s': %w", filePath, err)
	}
	var undecoded []string
	for _, key := range metadata.Undecoded() {
		undecoded = append(undecoded, key.String())
	}
	return undecoded, nil
}

// Decode parses TOML text on top of the defaults and validates the result.
func Decode(data string) (*Config, error) {
	cfg := NewDefaultConfig()
	if _, err := toml.Decode(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.validate()
	return cfg, nil
}

// validate checks config values and resets invalid ones to defaults.
func (c *Config) validate() {
	defaults := NewDefaultConfig()

	if c.Editor.TabWidth <= 0 {
		c.Editor.TabWidth = defaults.Editor.TabWidth
	}
	if c.Editor.ScrollOff < 0 {
		c.Editor.ScrollOff = defaults.Editor.ScrollOff
	}
	if c.Logger.LogLevel == "" {
		c.Logger.LogLevel = defaults.Logger.LogLevel
	}
	valid := c.Editor.FocusFiles[:0]
	for _, pattern := range c.Editor.FocusFiles {
		if doublestar.ValidatePattern(pattern) {
			valid = append(valid, pattern)
		} else {
			logger.Warnf("Ignoring invalid focus_files pattern %q", pattern)
		}
	}
	c.Editor.FocusFiles = valid
	switch c.Highlight.Style {
	case StyleOutline, StyleFill, StyleUnderline:
	default:
		c.Highlight.Style = defaults.Highlight.Style
	}
}

// Load orchestrates defaults, the config file, flag overrides and validation.
// The returned slice lists unrecognized config keys; the logger is not yet
// initialized when Load runs, so the caller reports them.
func Load(configFilePath string, flags *Flags) (*Config, []string, error) {
	cfg := NewDefaultConfig()

	effectivePath := configFilePath
	if effectivePath == "" {
		effectivePath = DefaultPath()
	}

	var undecoded []string
	if effectivePath != "" {
		var err error
		undecoded, err = loadFromFile(effectivePath, cfg)
		if err != nil {
			return nil, nil, err
		}
	}

	if flags != nil {
		flags.ApplyOverrides(cfg)
	}

	cfg.validate()
	return cfg, undecoded, nil
}
