package booking

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultCalendlyBaseURL = "https://api.calendly.com"

// CalendlyScheduler reserves a slot on a Calendly event type. Calendly has
// no direct booking-create call, so the adapter verifies the requested slot
// is actually open and then mints a single-use scheduling link pinned to the
// event type; the link is logged for the recruiter to forward.
type CalendlyScheduler struct {
	baseURL      string
	token        string
	eventTypeURI string
	http         *http.Client
	log          *slog.Logger
}

type CalendlyOptions struct {
	// BaseURL is overridable for tests; empty means the public API.
	BaseURL string
	Timeout time.Duration
	Logger  *slog.Logger
}

func NewCalendlyScheduler(token, eventTypeURI string, opts CalendlyOptions) *CalendlyScheduler {
	base := opts.BaseURL
	if base == "" {
		base = defaultCalendlyBaseURL
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	return &CalendlyScheduler{
		baseURL:      base,
		token:        token,
		eventTypeURI: eventTypeURI,
		http:         &http.Client{Timeout: timeout},
		log:          log,
	}
}

func (s *CalendlyScheduler) Name() string { return "calendly" }

type calendlyAvailableTimes struct {
	Collection []struct {
		StartTime string `json:"start_time"`
		Status    string `json:"status"`
	} `json:"collection"`
}

type calendlySchedulingLink struct {
	Resource struct {
		BookingURL string `json:"booking_url"`
	} `json:"resource"`
}

func (s *CalendlyScheduler) Book(ctx context.Context, req Request) error {
	if req.StartsAt.IsZero() {
		return fmt.Errorf("booking: calendly: start time is required")
	}

	open, err := s.slotAvailable(ctx, req.StartsAt)
	if err != nil {
		return err
	}
	if !open {
		return fmt.Errorf("booking: calendly: %s is not an open slot", req.StartsAt.Format(time.RFC3339))
	}

	body, err := json.Marshal(map[string]any{
		"max_event_count": 1,
		"owner":           s.eventTypeURI,
		"owner_type":      "EventType",
	})
	if err != nil {
		return err
	}
	var link calendlySchedulingLink
	if err := s.do(ctx, http.MethodPost, "/scheduling_links", bytes.NewReader(body), &link); err != nil {
		return err
	}

	s.log.Info("calendly slot reserved via single-use link",
		"candidate", req.Name,
		"starts_at", req.StartsAt.Format(time.RFC3339),
		"booking_url", link.Resource.BookingURL,
	)
	return nil
}

// slotAvailable checks the requested instant against the event type's open
// times in the surrounding week.
func (s *CalendlyScheduler) slotAvailable(ctx context.Context, at time.Time) (bool, error) {
	q := url.Values{}
	q.Set("event_type", s.eventTypeURI)
	q.Set("start_time", at.UTC().Add(-time.Hour).Format(time.RFC3339))
	q.Set("end_time", at.UTC().Add(7*24*time.Hour).Format(time.RFC3339))

	var times calendlyAvailableTimes
	if err := s.do(ctx, http.MethodGet, "/event_type_available_times?"+q.Encode(), nil, &times); err != nil {
		return false, err
	}

	want := at.UTC().Truncate(time.Minute)
	for _, slot := range times.Collection {
		start, err := time.Parse(time.RFC3339, slot.StartTime)
		if err != nil {
			continue
		}
		if slot.Status == "available" && start.UTC().Truncate(time.Minute).Equal(want) {
			return true, nil
		}
	}
	return false, nil
}

func (s *CalendlyScheduler) do(ctx context.Context, method, path string, body io.Reader, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, s.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+s.token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.http.Do(req)
	if err != nil {
		return fmt.Errorf("booking: calendly %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("booking: calendly %s %s: status %d: %s", method, path, resp.StatusCode, strings.TrimSpace(string(snippet)))
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("booking: calendly %s %s: decode: %w", method, path, err)
	}
	return nil
}
