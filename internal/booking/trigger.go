package booking

import (
	"context"
	"log/slog"
	"time"

	"voice-campaign/internal/leads"
	"voice-campaign/internal/summary"
)

// placeholderEmail is used when neither the call analysis nor the lead file
// produced an address; the scheduler still wants one.
const placeholderEmail = "candidate@unknown.invalid"

// Trigger decides whether a summary record warrants a booking and places it.
type Trigger struct {
	scheduler  SchedulerService
	defaultLoc *time.Location
	clock      func() time.Time
	log        *slog.Logger
}

func NewTrigger(s SchedulerService, defaultLoc *time.Location, log *slog.Logger) *Trigger {
	if defaultLoc == nil {
		defaultLoc = time.UTC
	}
	if log == nil {
		log = slog.Default()
	}
	return &Trigger{scheduler: s, defaultLoc: defaultLoc, clock: time.Now, log: log}
}

// MaybeBook requires both a qualified record and a parseable interview time.
// Unparseable text skips the booking and returns ErrUnparseableTime so the
// caller can flag the loss; notification is unaffected either way. Reports
// whether a booking request was issued to the scheduler.
func (t *Trigger) MaybeBook(ctx context.Context, rec summary.Record, target leads.Target) (bool, error) {
	if t.scheduler == nil {
		return false, nil
	}
	if !rec.StructuredData.Qualified() {
		return false, nil
	}

	raw := rec.StructuredData.InterviewTimeRaw()
	if raw == "" {
		t.log.Info("qualified candidate has no interview time, skipping booking", "number", rec.Number)
		return false, nil
	}

	loc := t.defaultLoc
	if tz := rec.StructuredData.Timezone(); tz != "" {
		if l, err := time.LoadLocation(tz); err == nil {
			loc = l
		} else {
			t.log.Warn("unknown timezone in call analysis, using default", "tz", tz, "number", rec.Number)
		}
	}

	startsAt, err := ParseInterviewTime(raw, t.clock().In(loc))
	if err != nil {
		return false, err
	}

	name := rec.StructuredData.CandidateName()
	if name == "" {
		name = "Candidate"
	}
	email := rec.StructuredData.Email()
	if email == "" {
		email = target.ContactEmail
	}
	if email == "" {
		email = placeholderEmail
	}

	req := Request{
		StartsAt: startsAt,
		Name:     name,
		Email:    email,
		Phone:    rec.Number,
		Role:     rec.StructuredData.Role(),
		Timezone: loc.String(),
	}
	if err := t.scheduler.Book(ctx, req); err != nil {
		return false, err
	}

	t.log.Info("interview booked",
		"number", rec.Number,
		"candidate", name,
		"starts_at", startsAt.Format(time.RFC3339),
		"scheduler", t.scheduler.Name(),
	)
	return true, nil
}
