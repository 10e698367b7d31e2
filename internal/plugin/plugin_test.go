package plugin

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingPlugin struct {
	name    string
	initErr error
	log     *[]string
}

func (p *recordingPlugin) Name() string { return p.name }

func (p *recordingPlugin) Initialize(EditorAPI) error {
	*p.log = append(*p.log, "init "+p.name)
	return p.initErr
}

func (p *recordingPlugin) Shutdown() error {
	*p.log = append(*p.log, "shutdown "+p.name)
	return nil
}

func TestManagerLifecycle(t *testing.T) {
	var log []string
	m := NewManager()
	require.NoError(t, m.Register(&recordingPlugin{name: "b", log: &log}))
	require.NoError(t, m.Register(&recordingPlugin{name: "a", initErr: errors.New("boom"), log: &log}))
	require.NoError(t, m.Register(&recordingPlugin{name: "c", log: &log}))

	assert.Error(t, m.Register(&recordingPlugin{name: "a", log: &log}))
	assert.Error(t, m.Register(&recordingPlugin{log: &log}))

	err := m.InitializePlugins(nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "'a'")

	m.ShutdownPlugins()
	assert.Equal(t, []string{"init b", "init a", "init c", "shutdown c", "shutdown a", "shutdown b"}, log)
	assert.Equal(t, []string{"a", "b", "c"}, m.Names())

	_, ok := m.GetPlugin("c")
	assert.True(t, ok)
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	enabled := false
	var got []string

	require.NoError(t, r.Register(Command{
		Name:        "highlight",
		Run:         func(args []string) error { got = args; return nil },
		Enabled:     func() bool { return enabled },
		Description: func() string { return "Highlight entity" },
	}))
	require.NoError(t, r.Register(Command{Name: "clear", Run: func([]string) error { return nil }}))

	err := r.Register(Command{Name: "clear", Run: func([]string) error { return nil }})
	assert.ErrorIs(t, err, ErrDuplicateCommand)
	assert.Error(t, r.Register(Command{Name: "norun"}))

	assert.ErrorIs(t, r.Run("highlight", nil), ErrCommandDisabled)
	enabled = true
	require.NoError(t, r.Run("highlight", []string{"x"}))
	assert.Equal(t, []string{"x"}, got)

	assert.ErrorIs(t, r.Run("nope", nil), ErrUnknownCommand)
	assert.Equal(t, []string{"clear", "highlight"}, r.Names())

	cmd, ok := r.Lookup("clear")
	require.True(t, ok)
	assert.Equal(t, "clear", cmd.Describe())
	assert.True(t, cmd.IsEnabled())
}
