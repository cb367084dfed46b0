package campaign

import (
	"context"
	"log/slog"
	"time"

	"voice-campaign/internal/leads"
	"voice-campaign/internal/ledger"
	"voice-campaign/internal/summary"
	"voice-campaign/internal/telephony"
)

// Recorder persists the outcome of one resolved call: always a ledger entry,
// plus a summary record when the call was actually answered.
type Recorder struct {
	ledger    ledger.Store
	summaries summary.Store
	clock     func() time.Time
	log       *slog.Logger
}

func NewRecorder(l ledger.Store, s summary.Store, log *slog.Logger) *Recorder {
	if log == nil {
		log = slog.Default()
	}
	return &Recorder{ledger: l, summaries: s, clock: time.Now, log: log}
}

// Record writes the ledger entry and, for answered calls, appends the
// summary record. It returns the appended record so the caller can branch
// into notification and booking; nil means there was nothing to act on.
//
// A failed ledger write is a real error: without the entry the number would
// be re-dialed next cycle even though the call already happened.
func (r *Recorder) Record(ctx context.Context, target leads.Target, info telephony.CallInfo) (*summary.Record, error) {
	now := r.clock()

	if err := r.ledger.Record(ctx, ledger.Entry{
		Number:    target.Number,
		Status:    info.Status,
		Timestamp: now,
	}); err != nil {
		return nil, err
	}

	if !info.Status.Answered() {
		return nil, nil
	}

	rec := summary.Record{
		Number:         target.Number,
		Timestamp:      now.Format(ledger.TimestampLayout),
		StructuredData: summary.StructuredData{},
	}
	if info.Analysis != nil {
		rec.Summary = info.Analysis.Summary
		if info.Analysis.StructuredData != nil {
			rec.StructuredData = summary.StructuredData(info.Analysis.StructuredData)
		}
	}
	if rec.Summary == "" && len(rec.StructuredData) == 0 {
		// Tolerated: the provider sometimes has no analysis for short calls.
		r.log.Warn("no summary or structured data for call", "number", target.Number, "status", info.Status)
	}

	if err := r.summaries.Append(ctx, rec); err != nil {
		return nil, err
	}
	return &rec, nil
}
