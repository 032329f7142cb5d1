package engine

import "errors"

var (
	// ErrCycleLimitExceeded terminates a run whose decider kept requesting
	// tools past the configured cycle cap. The conversation so far is still
	// returned for inspection.
	ErrCycleLimitExceeded = errors.New("cycle limit exceeded")

	// ErrCycleDeadline terminates a run whose decide call or dispatch batch
	// overran the per-cycle deadline.
	ErrCycleDeadline = errors.New("cycle deadline exceeded")

	// ErrBadDecision marks a routing contract violation: the message handed
	// to the router was not an assistant decision. This is a programming
	// error in the loop, not a recoverable condition.
	ErrBadDecision = errors.New("router: message is not an assistant decision")
)
