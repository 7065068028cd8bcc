// Package tui provides the Bubble Tea host for the frame driver.
// It turns Bubble Tea ticks into frame callbacks, mouse presses into
// pointer events, and the engine's surface into half-block terminal cells.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// FrameMsg is sent when the next frame callbacks are due.
type FrameMsg time.Time

// frameCmd returns a Bubble Tea command that sends a frame message after one
// frame interval at the given rate.
func frameCmd(frameRate int) tea.Cmd {
	interval := time.Second / time.Duration(frameRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return FrameMsg(t)
	})
}

// Scheduler collects frame requests between Bubble Tea frame messages.
// Both RequestFrame and run are only called from the Bubble Tea event loop.
type Scheduler struct {
	pending []func()
}

// NewScheduler returns an empty scheduler.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// RequestFrame queues fn for the next frame message.
func (s *Scheduler) RequestFrame(fn func()) {
	s.pending = append(s.pending, fn)
}

// Pending reports whether any callback is waiting.
func (s *Scheduler) Pending() bool {
	return len(s.pending) > 0
}

// run executes the callbacks queued before the call.
func (s *Scheduler) run() {
	batch := s.pending
	s.pending = nil
	for _, fn := range batch {
		fn()
	}
}
