package campaign

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"voice-campaign/internal/calls"
	"voice-campaign/internal/leads"
	"voice-campaign/internal/summary"
	"voice-campaign/internal/telephony"
)

// TargetSource yields the targets still eligible for a call this cycle.
type TargetSource interface {
	Targets(ctx context.Context) ([]leads.Target, error)
}

// QualificationNotifier dispatches recruiter/candidate messages for a
// qualified summary record. Returns how many messages went out.
type QualificationNotifier interface {
	MaybeNotify(ctx context.Context, rec summary.Record, target leads.Target) int
}

// BookingTrigger attempts to reserve an interview slot for a qualified
// record. Reports whether a booking request was issued.
type BookingTrigger interface {
	MaybeBook(ctx context.Context, rec summary.Record, target leads.Target) (bool, error)
}

// RunnerConfig carries the identifiers and pacing knobs for the loop.
type RunnerConfig struct {
	AgentID string
	PhoneID string

	CallCooldown time.Duration
	IdleSleep    time.Duration
	ErrorBackoff time.Duration

	// RingConfirm waits for each launched call to go live before the
	// completion poll starts; off by default.
	RingConfirm bool
}

// Ring confirmation polls faster and gives up sooner than the completion
// poll; a call that has not gone live within a minute never will.
const (
	ringConfirmInterval = 2 * time.Second
	ringConfirmAttempts = 30
)

// Runner is the campaign loop driver. Targets are processed strictly
// sequentially; the only shared mutable resources (ledger, summary store)
// are written from this goroutine alone.
type Runner struct {
	cfg      RunnerConfig
	window   Window
	source   TargetSource
	provider telephony.VoiceProvider
	poller   *Poller
	recorder *Recorder
	notifier QualificationNotifier
	booking  BookingTrigger
	stats    *Stats

	clock func() time.Time
	sleep SleepFunc
	log   *slog.Logger
}

func NewRunner(
	cfg RunnerConfig,
	window Window,
	source TargetSource,
	provider telephony.VoiceProvider,
	poller *Poller,
	recorder *Recorder,
	notifier QualificationNotifier,
	booking BookingTrigger,
	stats *Stats,
	log *slog.Logger,
) *Runner {
	if cfg.CallCooldown <= 0 {
		cfg.CallCooldown = 10 * time.Second
	}
	if cfg.IdleSleep <= 0 {
		cfg.IdleSleep = 30 * time.Minute
	}
	if cfg.ErrorBackoff <= 0 {
		cfg.ErrorBackoff = 60 * time.Second
	}
	if stats == nil {
		stats = NewStats()
	}
	if log == nil {
		log = slog.Default()
	}
	return &Runner{
		cfg:      cfg,
		window:   window,
		source:   source,
		provider: provider,
		poller:   poller,
		recorder: recorder,
		notifier: notifier,
		booking:  booking,
		stats:    stats,
		clock:    time.Now,
		sleep:    sleepContext,
		log:      log,
	}
}

// Stats exposes the runner's counters for the HTTP status surface.
func (r *Runner) Stats() *Stats { return r.stats }

// Run loops until ctx is done. The campaign process is designed never to
// terminate on error: a fault escaping a cycle is logged and followed by a
// fixed backoff, then the loop resumes.
func (r *Runner) Run(ctx context.Context) error {
	r.log.Info("campaign runner started", "provider", r.provider.Name())
	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		if !r.window.Active(r.clock()) {
			r.log.Info("outside call window, sleeping", "idle", r.cfg.IdleSleep.String())
			if err := r.sleep(ctx, r.cfg.IdleSleep); err != nil {
				return err
			}
			continue
		}

		if err := r.cycle(ctx); err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return err
			}
			r.log.Error("cycle failed", "err", err, "backoff", r.cfg.ErrorBackoff.String())
			if err := r.sleep(ctx, r.cfg.ErrorBackoff); err != nil {
				return err
			}
		}
	}
}

// cycle runs one full pass over the eligible targets.
func (r *Runner) cycle(ctx context.Context) error {
	log := r.log.With("cycle_id", uuid.NewString())

	targets, err := r.source.Targets(ctx)
	if err != nil {
		return err
	}
	r.stats.CycleStarted(len(targets))
	log.Info("cycle started", "targets", len(targets))

	for _, target := range targets {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := r.processTarget(ctx, log, target); err != nil {
			return err
		}
		// Inter-call cooldown respects provider rate limits.
		if err := r.sleep(ctx, r.cfg.CallCooldown); err != nil {
			return err
		}
	}
	log.Info("cycle finished")
	return nil
}

// processTarget walks one target through launch, poll, record and the
// qualified-candidate branches. Launch errors and poll timeouts skip the
// target without a ledger entry; it stays eligible next cycle. Only storage
// failures propagate, they would otherwise cause duplicate calls.
func (r *Runner) processTarget(ctx context.Context, log *slog.Logger, target leads.Target) error {
	log = log.With("number", target.Number)

	res, err := r.provider.CreateCall(ctx, telephony.CreateCallRequest{
		AgentID:        r.cfg.AgentID,
		PhoneID:        r.cfg.PhoneID,
		CustomerNumber: target.Number,
	})
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		r.stats.LaunchError()
		log.Warn("call launch rejected, target skipped this cycle", "err", errors.Join(ErrLaunch, err))
		return nil
	}
	r.stats.Launched()
	log.Info("call launched", "call_id", res.CallID)

	if r.cfg.RingConfirm {
		live, err := r.poller.WaitForInProgress(ctx, res.CallID, ringConfirmInterval, ringConfirmAttempts)
		if err != nil {
			return err
		}
		if !live {
			// Already terminal or still ringing; Await settles it either way.
			log.Info("call never went live", "call_id", res.CallID)
		}
	}

	info, err := r.poller.Await(ctx, res.CallID)
	if errors.Is(err, ErrPollTimeout) {
		r.stats.Timeout()
		log.Warn("call never resolved, target skipped this cycle", "call_id", res.CallID)
		return nil
	}
	if err != nil {
		return err
	}
	log.Info("call resolved", "call_id", res.CallID, "status", info.Status)

	switch {
	case info.Status.Answered():
		r.stats.Answered()
	case info.Status == calls.StatusNoAnswer:
		r.stats.NoAnswer()
	default:
		r.stats.Failed()
	}

	rec, err := r.recorder.Record(ctx, target, info)
	if err != nil {
		return err
	}
	if rec == nil {
		return nil
	}

	if rec.StructuredData.Qualified() {
		r.stats.Qualified()
	}
	if r.notifier != nil {
		r.stats.Notified(r.notifier.MaybeNotify(ctx, *rec, target))
	}
	if r.booking != nil {
		booked, err := r.booking.MaybeBook(ctx, *rec, target)
		if err != nil {
			// Real candidate loss; flag it, never abort the loop.
			log.Error("booking not placed", "err", err)
		}
		if booked {
			r.stats.Booked()
		}
	}
	return nil
}
