// Package headless is a host without a display. Frames run only when the
// caller steps the scheduler, which makes it the deterministic host for
// tests and for the CLI's --host headless mode.
package headless

import "sync"

// Scheduler queues frame callbacks until Step is called.
type Scheduler struct {
	mu    sync.Mutex
	queue []func()
}

// NewScheduler returns an empty scheduler.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// RequestFrame queues fn for the next Step.
func (s *Scheduler) RequestFrame(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queue = append(s.queue, fn)
}

// Pending returns the number of queued callbacks.
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.queue)
}

// Step runs every callback queued before the call. Callbacks queued while
// stepping wait for the next Step. Returns false if nothing was queued.
func (s *Scheduler) Step() bool {
	s.mu.Lock()
	batch := s.queue
	s.queue = nil
	s.mu.Unlock()

	for _, fn := range batch {
		fn()
	}
	return len(batch) > 0
}
