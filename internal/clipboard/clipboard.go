// Package clipboard copies text to the system clipboard, keeping an
// in-process copy when the system clipboard is unavailable.
package clipboard

import (
	"errors"
	"sync"

	"github.com/atotto/clipboard"
	"github.com/bethropolis/focusnav/internal/logger"
)

// ErrEmpty is returned by Paste when nothing was copied.
var ErrEmpty = errors.New("clipboard is empty")

// Clipboard is the interface for copy operations.
type Clipboard interface {
	Copy(text string) error
	Paste() (string, error)
}

// Internal keeps copied text in memory.
type Internal struct {
	mu   sync.Mutex
	text string
	set  bool
}

func (c *Internal) Copy(text string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.text, c.set = text, true
	return nil
}

func (c *Internal) Paste() (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.set {
		return "", ErrEmpty
	}
	return c.text, nil
}

// System uses the platform clipboard.
type System struct{}

func (System) Copy(text string) error { return clipboard.WriteAll(text) }

func (System) Paste() (string, error) { return clipboard.ReadAll() }

// Fallback tries Primary and keeps every copy in Internal, so Paste still
// works when Primary fails.
type Fallback struct {
	Primary  Clipboard
	Internal *Internal
}

// New returns the system clipboard backed by an internal copy, or only the
// internal clipboard when useSystem is false or the platform has none.
func New(useSystem bool) Clipboard {
	internal := &Internal{}
	if !useSystem || clipboard.Unsupported {
		logger.DebugTagf("clipboard", "Using internal clipboard")
		return internal
	}
	return &Fallback{Primary: System{}, Internal: internal}
}

func (c *Fallback) Copy(text string) error {
	_ = c.Internal.Copy(text)
	if err := c.Primary.Copy(text); err != nil {
		logger.WarnTagf("clipboard", "System clipboard copy failed, kept internal copy: %v", err)
	}
	return nil
}

func (c *Fallback) Paste() (string, error) {
	text, err := c.Primary.Paste()
	if err == nil {
		return text, nil
	}
	logger.DebugTagf("clipboard", "System clipboard paste failed, using internal copy: %v", err)
	return c.Internal.Paste()
}
