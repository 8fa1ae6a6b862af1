// Package tui hosts Drop Catch in a terminal: the Bubble Tea game model,
// the variant menu, the scoreboard and the SSH server that serves them.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// maxTickRate bounds --fps; terminals cannot redraw faster anyway.
const maxTickRate = 240

// TickMsg advances the hosted game by one fixed step.
type TickMsg time.Time

// clampTickRate keeps a tick rate within what a terminal can redraw.
func clampTickRate(rate int) int {
	switch {
	case rate <= 0:
		return 60
	case rate > maxTickRate:
		return maxTickRate
	}
	return rate
}

// tickInterval converts a tick rate into the wall-clock spacing of ticks.
func tickInterval(rate int) time.Duration {
	return time.Second / time.Duration(clampTickRate(rate))
}

// tickCmd schedules the next TickMsg.
func tickCmd(rate int) tea.Cmd {
	return tea.Tick(tickInterval(rate), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
