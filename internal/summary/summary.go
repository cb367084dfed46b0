// Package summary persists post-call analysis records for answered calls.
package summary

import (
	"context"
	"strings"
)

// Record is one persisted call summary. Timestamp is kept as the formatted
// string the file contract mandates rather than time.Time; the store owns
// the wire shape, callers format via ledger.TimestampLayout.
type Record struct {
	Number         string         `json:"number"`
	Timestamp      string         `json:"timestamp"`
	Summary        string         `json:"summary"`
	StructuredData StructuredData `json:"structured_data"`
}

// Store is the persistence contract for summary records.
type Store interface {
	// Append adds one record. At most one record per call attempt.
	Append(ctx context.Context, r Record) error
}

// StructuredData is the agent's structured analysis. All fields are
// optional; the assistant's output schema drifts, so accessors tolerate
// both snake_case and camelCase keys and absent values.
type StructuredData map[string]any

func (d StructuredData) str(keys ...string) string {
	for _, k := range keys {
		if v, ok := d[k]; ok {
			if s, ok := v.(string); ok {
				return strings.TrimSpace(s)
			}
		}
	}
	return ""
}

// Qualified reports whether the call analysis flagged the candidate for
// interview scheduling. Anything but an explicit true (bool or string) is
// not qualified.
func (d StructuredData) Qualified() bool {
	v, ok := d["qualified"]
	if !ok {
		return false
	}
	switch t := v.(type) {
	case bool:
		return t
	case string:
		return strings.EqualFold(strings.TrimSpace(t), "true")
	default:
		return false
	}
}

func (d StructuredData) CandidateName() string {
	return d.str("candidate_name", "candidateName")
}

// InterviewTimeRaw is the free-text time the candidate proposed, exactly as
// the agent captured it.
func (d StructuredData) InterviewTimeRaw() string {
	return d.str("interview_time", "interviewTime")
}

func (d StructuredData) Role() string {
	return d.str("role")
}

func (d StructuredData) Timezone() string {
	return d.str("timezone")
}

func (d StructuredData) Email() string {
	return d.str("email")
}
