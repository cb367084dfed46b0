package calls

// Status is a call state as reported by the voice-agent provider.
//
// Wire values are the provider's own (hyphenated) strings; do not remap
// them when persisting; the ledger keeps whatever the provider reported.

type Status string

const (
	StatusQueued     Status = "queued"
	StatusRinging    Status = "ringing"
	StatusInProgress Status = "in-progress"
	StatusForwarding Status = "forwarding"
	StatusCompleted  Status = "completed"
	StatusEnded      Status = "ended"
	StatusFailed     Status = "failed"
	StatusNoAnswer   Status = "no-answer"
)

// Terminal reports whether no further transition can occur from s.
// Anything unknown is treated as still in progress; the poller's attempt
// budget bounds how long we wait for it.
func (s Status) Terminal() bool {
	switch s {
	case StatusCompleted, StatusEnded, StatusFailed, StatusNoAnswer:
		return true
	default:
		return false
	}
}

// Answered reports whether the call reached a conversation worth
// summarizing. Only answered calls produce a summary record.
func (s Status) Answered() bool {
	return s == StatusCompleted || s == StatusEnded
}
