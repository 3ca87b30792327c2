// Package tui provides the Bubble Tea integration for the arcade platform.
// It handles the terminal UI loop, input mapping, and round orchestration.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger one round tick. Gen identifies the scheduling
// generation it belongs to; ticks from a cancelled generation are dropped.
type TickMsg struct {
	Gen  uint64
	Time time.Time
}

// tickCmd returns a Bubble Tea command that sends one tick after interval.
func tickCmd(interval time.Duration, gen uint64) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{Gen: gen, Time: t}
	})
}

// teaScheduler adapts the Bubble Tea command loop to round.Scheduler.
// The runner asks for a tick synchronously; the model turns the request
// into a command when its Update returns.
type teaScheduler struct {
	interval time.Duration
	gen      uint64
	pending  bool
}

func newTeaScheduler(tickRate int) *teaScheduler {
	if tickRate <= 0 {
		tickRate = 60
	}
	return &teaScheduler{interval: time.Second / time.Duration(tickRate)}
}

// ScheduleNextTick implements round.Scheduler.
func (s *teaScheduler) ScheduleNextTick() {
	s.pending = true
}

// Cancel implements round.Scheduler. Any tick already in flight becomes stale.
func (s *teaScheduler) Cancel() {
	s.gen++
	s.pending = false
}

// accept reports whether a tick belongs to the live generation.
func (s *teaScheduler) accept(msg TickMsg) bool {
	return msg.Gen == s.gen
}

// next returns the command for a requested tick, or nil.
func (s *teaScheduler) next() tea.Cmd {
	if !s.pending {
		return nil
	}
	s.pending = false
	return tickCmd(s.interval, s.gen)
}
