package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/olivier-w/ampdeck/internal/deck"
	"github.com/olivier-w/ampdeck/internal/sfx"
)

// host is the deck's view of the terminal. Timer requests and events are
// buffered until Update drains them after each message.
type host struct {
	effects *sfx.Player
	tick    func(deck.Timer) tea.Cmd
	cmds    []tea.Cmd
	events  []deck.Event
}

func newHost(effects *sfx.Player) *host {
	return &host{effects: effects, tick: timerCmd}
}

func (h *host) Schedule(t deck.Timer)   { h.cmds = append(h.cmds, h.tick(t)) }
func (h *host) PlayEffect(e sfx.Effect) { h.effects.Play(e) }
func (h *host) Notify(e deck.Event)     { h.events = append(h.events, e) }

func (h *host) drain() ([]tea.Cmd, []deck.Event) {
	cmds, events := h.cmds, h.events
	h.cmds, h.events = nil, nil
	return cmds, events
}
