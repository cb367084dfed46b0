package notify

import (
	"context"
	"errors"
	"strings"
	"testing"

	"voice-campaign/internal/leads"
	"voice-campaign/internal/summary"
)

func qualifiedRecord() summary.Record {
	return summary.Record{
		Number:    "+15550002",
		Timestamp: "2025-11-03 09:30:00",
		Summary:   "Great conversation.",
		StructuredData: summary.StructuredData{
			"qualified":      true,
			"candidate_name": "Jane",
			"interview_time": "Friday at 2 PM",
		},
	}
}

func TestQualification_NoOpWhenNotQualified(t *testing.T) {
	mem := NewMemoryNotifier()
	q := NewQualification(mem, "recruiter@example.com", nil)

	rec := qualifiedRecord()
	rec.StructuredData = summary.StructuredData{}
	if sent := q.MaybeNotify(context.Background(), rec, leads.Target{}); sent != 0 {
		t.Fatalf("expected zero messages, got %d", sent)
	}

	rec.StructuredData = summary.StructuredData{"qualified": false}
	if sent := q.MaybeNotify(context.Background(), rec, leads.Target{}); sent != 0 {
		t.Fatalf("expected zero messages, got %d", sent)
	}
	if len(mem.Messages()) != 0 {
		t.Fatalf("expected nothing delivered")
	}
}

func TestQualification_RecruiterOnlyWhenNoCandidateEmail(t *testing.T) {
	mem := NewMemoryNotifier()
	q := NewQualification(mem, "recruiter@example.com", nil)

	sent := q.MaybeNotify(context.Background(), qualifiedRecord(), leads.Target{Number: "+15550002"})
	if sent != 1 {
		t.Fatalf("expected one message, got %d", sent)
	}

	msgs := mem.Messages()
	if len(msgs) != 1 || msgs[0].To != "recruiter@example.com" {
		t.Fatalf("unexpected messages: %+v", msgs)
	}
	if !strings.Contains(msgs[0].Subject, "Jane") {
		t.Fatalf("expected candidate name in subject, got %q", msgs[0].Subject)
	}
	for _, want := range []string{"+15550002", "Friday at 2 PM", "Great conversation."} {
		if !strings.Contains(msgs[0].Body, want) {
			t.Fatalf("expected %q in body:\n%s", want, msgs[0].Body)
		}
	}
}

func TestQualification_BothMessagesWhenCandidateEmailKnown(t *testing.T) {
	mem := NewMemoryNotifier()
	q := NewQualification(mem, "recruiter@example.com", nil)

	sent := q.MaybeNotify(context.Background(), qualifiedRecord(), leads.Target{ContactEmail: "jane@x.com"})
	if sent != 2 {
		t.Fatalf("expected two messages, got %d", sent)
	}
	msgs := mem.Messages()
	if msgs[1].To != "jane@x.com" {
		t.Fatalf("expected candidate confirmation to jane@x.com, got %q", msgs[1].To)
	}
}

func TestQualification_PrefersEmailFromCallAnalysis(t *testing.T) {
	mem := NewMemoryNotifier()
	q := NewQualification(mem, "recruiter@example.com", nil)

	rec := qualifiedRecord()
	rec.StructuredData["email"] = "fromcall@x.com"
	q.MaybeNotify(context.Background(), rec, leads.Target{ContactEmail: "fromlead@x.com"})

	msgs := mem.Messages()
	if len(msgs) != 2 || msgs[1].To != "fromcall@x.com" {
		t.Fatalf("expected call-captured address preferred, got %+v", msgs)
	}
}

func TestQualification_DeliveryFailureIsNonFatal(t *testing.T) {
	mem := NewMemoryNotifier()
	mem.Err = errors.New("smtp down")
	q := NewQualification(mem, "recruiter@example.com", nil)

	sent := q.MaybeNotify(context.Background(), qualifiedRecord(), leads.Target{ContactEmail: "jane@x.com"})
	if sent != 0 {
		t.Fatalf("expected zero delivered, got %d", sent)
	}
}
