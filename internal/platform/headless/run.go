package headless

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/framedrive/internal/driver"
)

// Loop is the slice of the driver a runner needs.
type Loop interface {
	Running() bool
	Stop()
	Stats() driver.Stats
}

// Run steps sched every interval until frames frames have been stepped,
// the loop halts, or ctx is done. frames <= 0 means no frame limit.
// It returns the number of steps taken.
func Run(ctx context.Context, loop Loop, sched *Scheduler, interval time.Duration, frames int, logger *log.Logger) int {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	steps := 0
	for frames <= 0 || steps < frames {
		select {
		case <-ctx.Done():
			loop.Stop()
			return steps
		case <-ticker.C:
		}

		if !sched.Step() {
			break
		}
		steps++

		if !loop.Running() {
			break
		}
	}

	loop.Stop()
	stats := loop.Stats()
	logger.Info("headless run finished",
		"steps", steps, "frames", stats.Frames, "clicks", stats.Clicks, "failures", stats.Failures)
	return steps
}
