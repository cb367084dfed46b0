// Package keepalive pings the process's own public URL so free-tier hosts
// do not idle the service out between campaign cycles.
package keepalive

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

type Pinger struct {
	url      string
	interval time.Duration
	http     *http.Client
	log      *slog.Logger
}

// NewPinger targets baseURL's /wake-up endpoint. A zero interval defaults
// to five minutes.
func NewPinger(baseURL string, interval time.Duration, log *slog.Logger) *Pinger {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	if log == nil {
		log = slog.Default()
	}
	return &Pinger{
		url:      strings.TrimRight(baseURL, "/") + "/wake-up",
		interval: interval,
		http:     &http.Client{Timeout: 10 * time.Second},
		log:      log,
	}
}

// Run pings until ctx is done. Failures are logged only; the pinger must
// never take the process down.
func (p *Pinger) Run(ctx context.Context) {
	t := time.NewTicker(p.interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			p.ping(ctx)
		}
	}
}

func (p *Pinger) ping(ctx context.Context) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.url, nil)
	if err != nil {
		p.log.Warn("keep-alive request build failed", "err", err)
		return
	}
	resp, err := p.http.Do(req)
	if err != nil {
		p.log.Warn("keep-alive ping failed", "url", p.url, "err", err)
		return
	}
	_ = resp.Body.Close()
	p.log.Debug("keep-alive ping", "url", p.url, "status", resp.StatusCode)
}
