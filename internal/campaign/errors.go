package campaign

import "errors"

// Error kinds the loop driver branches on. Both leave the target without a
// ledger entry, so it stays eligible for a retry on the next active cycle.
var (
	// ErrLaunch marks a call-creation rejection by the provider.
	ErrLaunch = errors.New("campaign: call launch rejected")

	// ErrPollTimeout marks a call that never reached a terminal status
	// within the poller's attempt budget.
	ErrPollTimeout = errors.New("campaign: no terminal status within attempt budget")
)
