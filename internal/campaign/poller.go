package campaign

import (
	"context"
	"log/slog"
	"time"

	"voice-campaign/internal/calls"
	"voice-campaign/internal/telephony"
)

// SleepFunc blocks for d or until ctx is done. Injected so tests can run
// the poller without real waits.
type SleepFunc func(ctx context.Context, d time.Duration) error

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Poller drives one call to resolution:
//
//	POLLING --(terminal status)--> RESOLVED(status)
//	POLLING --(attempts exhausted)--> TIMED_OUT
//
// There is no cancellation primitive beyond ctx; one call is processed at a
// time, so polling runs to resolution or exhaustion within the same
// sequential step.
type Poller struct {
	provider telephony.VoiceProvider
	interval time.Duration
	attempts int
	sleep    SleepFunc
	log      *slog.Logger
}

func NewPoller(provider telephony.VoiceProvider, interval time.Duration, attempts int, log *slog.Logger) *Poller {
	if interval <= 0 {
		interval = 5 * time.Second
	}
	if attempts <= 0 {
		attempts = 120
	}
	if log == nil {
		log = slog.Default()
	}
	return &Poller{
		provider: provider,
		interval: interval,
		attempts: attempts,
		sleep:    sleepContext,
		log:      log,
	}
}

// Await polls until the call reaches a terminal status or the attempt budget
// runs out, in which case it returns ErrPollTimeout. A transient GetCall
// failure consumes an attempt; from the ledger's point of view a flaky
// provider and a slow call look the same, both end in an unrecorded target.
func (p *Poller) Await(ctx context.Context, callID string) (telephony.CallInfo, error) {
	for attempt := 1; attempt <= p.attempts; attempt++ {
		info, err := p.provider.GetCall(ctx, callID)
		if err != nil {
			if ctx.Err() != nil {
				return telephony.CallInfo{}, ctx.Err()
			}
			p.log.Warn("poll attempt failed", "call_id", callID, "attempt", attempt, "err", err)
		} else if info.Status.Terminal() {
			return info, nil
		}

		if err := p.sleep(ctx, p.interval); err != nil {
			return telephony.CallInfo{}, err
		}
	}
	return telephony.CallInfo{}, ErrPollTimeout
}

// WaitForInProgress waits for the call to start ringing through to a live
// conversation. Optional pre-check ahead of Await; reports false when the
// call went terminal (or the budget ran out) before anyone picked up.
func (p *Poller) WaitForInProgress(ctx context.Context, callID string, interval time.Duration, attempts int) (bool, error) {
	for attempt := 1; attempt <= attempts; attempt++ {
		info, err := p.provider.GetCall(ctx, callID)
		if err != nil {
			if ctx.Err() != nil {
				return false, ctx.Err()
			}
			p.log.Warn("in-progress check failed", "call_id", callID, "attempt", attempt, "err", err)
		} else {
			switch {
			case info.Status == calls.StatusInProgress:
				return true, nil
			case info.Status.Terminal():
				return false, nil
			}
		}

		if err := p.sleep(ctx, interval); err != nil {
			return false, err
		}
	}
	return false, nil
}
