package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// tickMsg carries the id of the controller tick it was scheduled for.
type tickMsg struct {
	id uint64
}

type pendingTick struct {
	id     uint64
	period time.Duration
}

// tickScheduler collects tick requests made by the controller during one
// Update and turns them into tea.Tick commands.
type tickScheduler struct {
	pending []pendingTick
}

func (s *tickScheduler) Schedule(id uint64, period time.Duration) {
	s.Cancel(id)
	s.pending = append(s.pending, pendingTick{id: id, period: period})
}

// Cancel drops a request that has not been handed to Bubble Tea yet. Ticks
// already in flight are discarded by the controller when they arrive.
func (s *tickScheduler) Cancel(id uint64) {
	kept := s.pending[:0]
	for _, p := range s.pending {
		if p.id != id {
			kept = append(kept, p)
		}
	}
	s.pending = kept
}

func (s *tickScheduler) drain() tea.Cmd {
	if len(s.pending) == 0 {
		return nil
	}
	cmds := make([]tea.Cmd, 0, len(s.pending))
	for _, p := range s.pending {
		cmds = append(cmds, tickCmd(p.id, p.period))
	}
	s.pending = nil
	return tea.Batch(cmds...)
}

func tickCmd(id uint64, period time.Duration) tea.Cmd {
	return tea.Tick(period, func(time.Time) tea.Msg {
		return tickMsg{id: id}
	})
}
