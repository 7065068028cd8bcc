package driver

import (
	"fmt"
	"strings"
)

// FailurePolicy decides what the frame loop does when advance or render fails.
type FailurePolicy int

const (
	// PolicyHalt stops scheduling after the first failed frame.
	PolicyHalt FailurePolicy = iota

	// PolicySkip logs the failure and schedules the next frame. The loop
	// halts once the configured number of consecutive failures is reached.
	PolicySkip
)

// DefaultMaxConsecutiveFailures is the skip budget used when none is configured.
const DefaultMaxConsecutiveFailures = 3

// String returns the config spelling of the policy.
func (p FailurePolicy) String() string {
	switch p {
	case PolicyHalt:
		return "halt"
	case PolicySkip:
		return "skip"
	default:
		return "unknown"
	}
}

// ParsePolicy parses "halt" or "skip" (case-insensitive). Empty means halt.
func ParsePolicy(s string) (FailurePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "halt":
		return PolicyHalt, nil
	case "skip":
		return PolicySkip, nil
	default:
		return PolicyHalt, fmt.Errorf("driver: unknown failure policy %q", s)
	}
}
