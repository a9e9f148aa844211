// Package teatest drives bubbletea models synchronously in tests.
//
// Instead of starting a tea.Program, the Driver calls Update directly and
// runs every returned Cmd inline, feeding the resulting messages back into
// the model until nothing is left to do.
package teatest

import (
	"fmt"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

// maxDrainDepth bounds Cmd chains so a model that keeps scheduling work
// cannot hang a test.
const maxDrainDepth = 64

// cmdTimeout separates instant Cmds (data loads, tea.Quit) from timer Cmds
// such as cursor blinks, which are dropped.
const cmdTimeout = 10 * time.Millisecond

// Driver holds a model under test.
type Driver struct {
	T     *testing.T
	Model tea.Model

	// Quitting is set once a Cmd produced tea.QuitMsg.
	Quitting bool
}

// Option configures a Driver.
type Option func(*Driver)

// WithSize delivers a WindowSizeMsg before anything else.
func WithSize(w, h int) Option {
	return func(d *Driver) {
		d.Model, _ = d.Model.Update(tea.WindowSizeMsg{Width: w, Height: h})
	}
}

// New creates a Driver and runs the model's Init Cmd.
func New(t *testing.T, model tea.Model, opts ...Option) *Driver {
	t.Helper()
	d := &Driver{T: t, Model: model}
	for _, opt := range opts {
		opt(d)
	}
	d.drain(d.Model.Init(), 0)
	return d
}

// Send dispatches msg and drains the resulting Cmds. Messages sent after
// the model quit are ignored.
func (d *Driver) Send(msg tea.Msg) {
	d.T.Helper()
	if d.Quitting {
		return
	}
	var cmd tea.Cmd
	d.Model, cmd = d.Model.Update(msg)
	d.drain(cmd, 0)
}

// Press sends a key by its bubbletea name ("enter", "tab", "up", "q", ...).
func (d *Driver) Press(keys ...string) {
	d.T.Helper()
	for _, k := range keys {
		d.Send(keyMsg(k))
	}
}

// View returns the model's rendered output.
func (d *Driver) View() string {
	return d.Model.View()
}

// AssertViewContains fails the test when the current view lacks any of want.
func (d *Driver) AssertViewContains(want ...string) {
	d.T.Helper()
	view := d.View()
	for _, w := range want {
		assert.Contains(d.T, view, w)
	}
}

var namedKeys = map[string]tea.KeyType{
	"enter":  tea.KeyEnter,
	"esc":    tea.KeyEsc,
	"tab":    tea.KeyTab,
	"up":     tea.KeyUp,
	"down":   tea.KeyDown,
	"ctrl+c": tea.KeyCtrlC,
}

func keyMsg(k string) tea.KeyMsg {
	if t, ok := namedKeys[k]; ok {
		return tea.KeyMsg{Type: t}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func (d *Driver) drain(cmd tea.Cmd, depth int) {
	d.T.Helper()
	if cmd == nil {
		return
	}
	if depth >= maxDrainDepth {
		d.T.Logf("teatest: drain depth limit (%d) reached", maxDrainDepth)
		return
	}

	msg := runCmd(cmd)
	if msg == nil || isBlink(msg) {
		return
	}

	switch msg := msg.(type) {
	case tea.BatchMsg:
		for _, sub := range msg {
			d.drain(sub, depth+1)
		}
	case tea.QuitMsg:
		d.Quitting = true
		d.Model, _ = d.Model.Update(msg)
	default:
		var next tea.Cmd
		d.Model, next = d.Model.Update(msg)
		d.drain(next, depth+1)
	}
}

// runCmd executes cmd, giving up after cmdTimeout.
func runCmd(cmd tea.Cmd) tea.Msg {
	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()
	select {
	case msg := <-ch:
		return msg
	case <-time.After(cmdTimeout):
		return nil
	}
}

func isBlink(msg tea.Msg) bool {
	return strings.Contains(strings.ToLower(fmt.Sprintf("%T", msg)), "blink")
}
