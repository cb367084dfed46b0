package notify

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"voice-campaign/internal/leads"
	"voice-campaign/internal/summary"
)

// Qualification inspects a call summary and notifies the humans when the
// agent flagged the candidate. Delivery failures are logged, never
// propagated; a lost email must not stall the campaign.
type Qualification struct {
	notifier  Notifier
	recruiter string
	log       *slog.Logger
}

func NewQualification(n Notifier, recruiterEmail string, log *slog.Logger) *Qualification {
	if log == nil {
		log = slog.Default()
	}
	return &Qualification{notifier: n, recruiter: recruiterEmail, log: log}
}

// MaybeNotify sends the recruiter message for a qualified record and, when
// the candidate's address is known, a confirmation to the candidate too.
// Returns how many messages were delivered.
func (q *Qualification) MaybeNotify(ctx context.Context, rec summary.Record, target leads.Target) int {
	if !rec.StructuredData.Qualified() {
		return 0
	}

	name := rec.StructuredData.CandidateName()
	if name == "" {
		name = "Candidate"
	}

	sent := 0
	subject := fmt.Sprintf("Qualified Candidate: %s", name)
	if err := q.notifier.Send(ctx, q.recruiter, subject, recruiterBody(rec, name)); err != nil {
		q.log.Error("recruiter notification failed", "number", rec.Number, "err", err)
	} else {
		sent++
	}

	candidate := candidateAddress(rec, target)
	if candidate == "" {
		return sent
	}
	if err := q.notifier.Send(ctx, candidate, "Your interview with our recruitment team", candidateBody(rec, name)); err != nil {
		q.log.Error("candidate confirmation failed", "number", rec.Number, "err", err)
	} else {
		sent++
	}
	return sent
}

// candidateAddress prefers the address the agent captured on the call, then
// the one the lead extractor saw on the inbound application.
func candidateAddress(rec summary.Record, target leads.Target) string {
	if e := rec.StructuredData.Email(); e != "" {
		return e
	}
	return strings.TrimSpace(target.ContactEmail)
}

func recruiterBody(rec summary.Record, name string) string {
	interview := rec.StructuredData.InterviewTimeRaw()
	if interview == "" {
		interview = "To be confirmed"
	}

	var b strings.Builder
	b.WriteString("Hello Recruiter,\n\n")
	b.WriteString("A candidate has been qualified for an interview.\n\n")
	fmt.Fprintf(&b, "Name: %s\n", name)
	fmt.Fprintf(&b, "Number: %s\n", rec.Number)
	fmt.Fprintf(&b, "Interview Time: %s\n", interview)
	if role := rec.StructuredData.Role(); role != "" {
		fmt.Fprintf(&b, "Role: %s\n", role)
	}
	fmt.Fprintf(&b, "\nSummary:\n%s\n", rec.Summary)
	b.WriteString("\n---\nSent automatically by the Voice Agent System.\n")
	return b.String()
}

func candidateBody(rec summary.Record, name string) string {
	interview := rec.StructuredData.InterviewTimeRaw()
	if interview == "" {
		interview = "to be confirmed"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Hello %s,\n\n", name)
	b.WriteString("Thank you for speaking with our voice assistant. ")
	b.WriteString("You have been selected for an interview.\n\n")
	fmt.Fprintf(&b, "Proposed time: %s\n", interview)
	b.WriteString("\nOur recruitment team will follow up shortly to confirm.\n")
	b.WriteString("\n---\nSent automatically by the Voice Agent System.\n")
	return b.String()
}
