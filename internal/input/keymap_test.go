package input

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
)

func TestProcessEvent(t *testing.T) {
	p := NewInputProcessor()

	tests := []struct {
		name string
		ev   *tcell.EventKey
		want ActionEvent
	}{
		{"arrow", tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone), ActionEvent{Action: ActionMoveUp}},
		{"shift arrow", tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModShift), ActionEvent{Action: ActionExtendRight}},
		{"rune", tcell.NewEventKey(tcell.KeyRune, 'a', tcell.ModNone), ActionEvent{Action: ActionInsertRune, Rune: 'a'}},
		{"shifted rune", tcell.NewEventKey(tcell.KeyRune, '@', tcell.ModShift), ActionEvent{Action: ActionInsertRune, Rune: '@'}},
		{"colon", tcell.NewEventKey(tcell.KeyRune, ':', tcell.ModNone), ActionEvent{Action: ActionEnterCommandMode, Rune: ':'}},
		{"save", tcell.NewEventKey(tcell.KeyCtrlS, 0, tcell.ModCtrl), ActionEvent{Action: ActionSave}},
		{"highlight", tcell.NewEventKey(tcell.KeyCtrlL, 0, tcell.ModCtrl), ActionEvent{Action: ActionRunCommand, Command: "highlight"}},
		{"next without mod", tcell.NewEventKey(tcell.KeyCtrlN, 0, tcell.ModNone), ActionEvent{Action: ActionRunCommand, Command: "next"}},
		{"escape", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), ActionEvent{Action: ActionEscape}},
		{"unbound", tcell.NewEventKey(tcell.KeyF5, 0, tcell.ModNone), ActionEvent{Action: ActionUnknown}},
		{"alt rune", tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModAlt), ActionEvent{Action: ActionUnknown}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, p.ProcessEvent(tt.ev))
		})
	}
}

func TestBindCommand(t *testing.T) {
	p := NewInputProcessor()
	p.BindCommand(tcell.KeyCtrlL, "fs_local_highlight")
	got := p.ProcessEvent(tcell.NewEventKey(tcell.KeyCtrlL, 0, tcell.ModCtrl))
	assert.Equal(t, "fs_local_highlight", got.Command)
}
