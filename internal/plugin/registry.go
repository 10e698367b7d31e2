package plugin

import (
	"errors"
	"fmt"
	"sort"

	"github.com/bethropolis/focusnav/internal/logger"
)

var (
	ErrDuplicateCommand = errors.New("command already registered")
	ErrUnknownCommand   = errors.New("unknown command")
	ErrCommandDisabled  = errors.New("command not available here")
)

// Registry maps command names to commands.
type Registry struct {
	commands map[string]Command
}

func NewRegistry() *Registry {
	return &Registry{commands: make(map[string]Command)}
}

// Register adds cmd. Names are unique.
func (r *Registry) Register(cmd Command) error {
	if cmd.Name == "" {
		return fmt.Errorf("command name cannot be empty")
	}
	if cmd.Run == nil {
		return fmt.Errorf("command '%s' has no function", cmd.Name)
	}
	if _, exists := r.commands[cmd.Name]; exists {
		return fmt.Errorf("%w: '%s'", ErrDuplicateCommand, cmd.Name)
	}
	r.commands[cmd.Name] = cmd
	logger.DebugTagf("plugin", "Registered command ':%s'", cmd.Name)
	return nil
}

// Lookup returns the command called name.
func (r *Registry) Lookup(name string) (Command, bool) {
	cmd, ok := r.commands[name]
	return cmd, ok
}

// Names returns all command names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.commands))
	for name := range r.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Run executes the named command if it is enabled.
func (r *Registry) Run(name string, args []string) error {
	cmd, ok := r.commands[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownCommand, name)
	}
	if !cmd.IsEnabled() {
		return fmt.Errorf("%w: %s", ErrCommandDisabled, name)
	}
	logger.DebugTagf("plugin", "Executing command ':%s' with args %v", name, args)
	return cmd.Run(args)
}
