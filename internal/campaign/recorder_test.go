package campaign

import (
	"context"
	"testing"
	"time"

	"voice-campaign/internal/calls"
	"voice-campaign/internal/leads"
	"voice-campaign/internal/ledger"
	"voice-campaign/internal/summary"
	"voice-campaign/internal/telephony"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestRecorder_FailedCallWritesLedgerOnly(t *testing.T) {
	l := ledger.NewMemoryStore()
	s := summary.NewMemoryStore()
	r := NewRecorder(l, s, nil)
	r.clock = fixedClock(time.Date(2025, 11, 3, 9, 30, 0, 0, time.UTC))

	rec, err := r.Record(context.Background(), leads.Target{Number: "+15550002"}, telephony.CallInfo{Status: calls.StatusFailed})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if rec != nil {
		t.Fatalf("expected no summary record for failed call")
	}

	entries := l.Entries()
	if len(entries) != 1 || entries[0].Status != calls.StatusFailed {
		t.Fatalf("unexpected ledger entries: %+v", entries)
	}
	if len(s.Records()) != 0 {
		t.Fatalf("expected no summaries for failed call")
	}
}

func TestRecorder_CompletedCallWritesBoth(t *testing.T) {
	l := ledger.NewMemoryStore()
	s := summary.NewMemoryStore()
	r := NewRecorder(l, s, nil)
	r.clock = fixedClock(time.Date(2025, 11, 3, 9, 30, 0, 0, time.UTC))

	info := telephony.CallInfo{
		Status: calls.StatusCompleted,
		Analysis: &telephony.Analysis{
			Summary:        "Strong candidate.",
			StructuredData: map[string]any{"qualified": true},
		},
	}
	rec, err := r.Record(context.Background(), leads.Target{Number: "+15550002"}, info)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if rec == nil {
		t.Fatalf("expected a summary record")
	}
	if rec.Timestamp != "2025-11-03 09:30:00" {
		t.Fatalf("unexpected timestamp: %q", rec.Timestamp)
	}
	if !rec.StructuredData.Qualified() {
		t.Fatalf("expected structured data carried over")
	}

	if len(l.Entries()) != 1 {
		t.Fatalf("expected 1 ledger entry")
	}
	if got := s.Records(); len(got) != 1 || got[0].Summary != "Strong candidate." {
		t.Fatalf("unexpected summaries: %+v", got)
	}
}

func TestRecorder_EndedCallWithoutAnalysisStoresEmpty(t *testing.T) {
	l := ledger.NewMemoryStore()
	s := summary.NewMemoryStore()
	r := NewRecorder(l, s, nil)

	rec, err := r.Record(context.Background(), leads.Target{Number: "+15550002"}, telephony.CallInfo{Status: calls.StatusEnded})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if rec == nil {
		t.Fatalf("expected a summary record even without analysis")
	}
	if rec.Summary != "" || len(rec.StructuredData) != 0 {
		t.Fatalf("expected empty summary fields, got %+v", rec)
	}
	if rec.StructuredData == nil {
		t.Fatalf("expected structured data stored as an empty map, not nil")
	}
}
