// Package ledger is the durable record of numbers the campaign has already
// attempted. It backs deduplication: any number with an entry, whatever the
// status, is never re-queued.
package ledger

import (
	"context"
	"time"

	"voice-campaign/internal/calls"
)

// TimestampLayout matches the format the recruiting team already greps for.
const TimestampLayout = "2006-01-02 15:04:05"

type Entry struct {
	Number    string
	Status    calls.Status
	Timestamp time.Time
}

// Store is the persistence contract for ledger entries.
//
// It MUST be append-only. No Update/Delete methods are provided by design;
// re-calling a number means deleting the ledger out of band.
type Store interface {
	// Load returns the set of every number ever recorded. A store that has
	// never been written to returns an empty set, not an error.
	Load(ctx context.Context) (map[string]struct{}, error)

	// Record appends one entry.
	Record(ctx context.Context, e Entry) error
}
