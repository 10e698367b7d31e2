// plugins/wordcount/wordcount.go
package wordcount

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/bethropolis/focusnav/internal/plugin"
)

// Ensure WordCount implements plugin.Plugin
var _ plugin.Plugin = (*WordCount)(nil)

// WordCount counts lines, words, characters and code blocks.
type WordCount struct {
	api plugin.EditorAPI
}

// New creates a new instance of the WordCount plugin.
func New() *WordCount {
	return &WordCount{}
}

// Name returns the unique name of the plugin.
func (p *WordCount) Name() string {
	return "WordCount"
}

// Initialize registers the :wc command.
func (p *WordCount) Initialize(api plugin.EditorAPI) error {
	p.api = api
	err := api.RegisterCommand(plugin.Command{
		Name:        "wc",
		Run:         p.executeWordCount,
		Description: func() string { return "Count lines, words and code blocks" },
	})
	if err != nil {
		return fmt.Errorf("failed to register 'wc' command: %w", err)
	}
	return nil
}

// Shutdown performs cleanup (nothing needed for this simple plugin).
func (p *WordCount) Shutdown() error {
	return nil
}

// Stats is what :wc reports.
type Stats struct {
	Lines, Words, Chars, Blocks int
}

func (s Stats) String() string {
	return fmt.Sprintf("Lines: %d, Words: %d, Chars: %d, Blocks: %d", s.Lines, s.Words, s.Chars, s.Blocks)
}

// executeWordCount is the function called when the :wc command runs.
func (p *WordCount) executeWordCount(args []string) error {
	if p.api == nil {
		return fmt.Errorf("wordcount plugin not initialized with API")
	}
	v := p.api.ActiveView()
	text := v.Buffer().Text()
	stats := Stats{
		Lines:  v.Buffer().LineCount(),
		Words:  len(strings.Fields(text)),
		Chars:  utf8.RuneCountInString(text),
		Blocks: len(v.File().Blocks()),
	}
	p.api.SetStatusMessage("%s", stats)
	return nil
}
