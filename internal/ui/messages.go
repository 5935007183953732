package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/olivier-w/ampdeck/internal/art"
	"github.com/olivier-w/ampdeck/internal/deck"
)

const fireFPS = 30

type timerMsg deck.Timer
type callbackMsg func()
type fireTickMsg struct{}
type artLoadedMsg struct {
	index int
	art   art.Art
}
type skinLoadedMsg struct {
	ref string
	art art.Art
}

func timerCmd(t deck.Timer) tea.Cmd {
	return tea.Tick(t.After, func(time.Time) tea.Msg {
		return timerMsg(t)
	})
}

// waitCallback blocks until the engine posts a callback. Update re-issues it
// after running each one.
func waitCallback(ch <-chan func()) tea.Cmd {
	return func() tea.Msg {
		fn, ok := <-ch
		if !ok {
			return nil
		}
		return callbackMsg(fn)
	}
}

func fireTickCmd() tea.Cmd {
	return tea.Tick(time.Second/fireFPS, func(time.Time) tea.Msg {
		return fireTickMsg{}
	})
}

func loadArtCmd(index int, ref, mediaRef string, fallbacks []string) tea.Cmd {
	return func() tea.Msg {
		return artLoadedMsg{index: index, art: art.Load(ref, mediaRef, fallbacks)}
	}
}

// loadSkinCmd loads a skin image on its own, without the track fallbacks.
func loadSkinCmd(ref string) tea.Cmd {
	return func() tea.Msg {
		return skinLoadedMsg{ref: ref, art: art.Load(ref, "", nil)}
	}
}
