package booking

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const defaultTidyCalBaseURL = "https://tidycal.com/api"

// TidyCalScheduler books against one TidyCal booking type.
type TidyCalScheduler struct {
	baseURL       string
	token         string
	bookingTypeID string
	http          *http.Client
}

type TidyCalOptions struct {
	// BaseURL is overridable for tests; empty means the public API.
	BaseURL string
	Timeout time.Duration
}

func NewTidyCalScheduler(token, bookingTypeID string, opts TidyCalOptions) *TidyCalScheduler {
	base := opts.BaseURL
	if base == "" {
		base = defaultTidyCalBaseURL
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &TidyCalScheduler{
		baseURL:       base,
		token:         token,
		bookingTypeID: bookingTypeID,
		http:          &http.Client{Timeout: timeout},
	}
}

func (s *TidyCalScheduler) Name() string { return "tidycal" }

type tidyCalBookingBody struct {
	StartsAt string `json:"starts_at"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Timezone string `json:"timezone,omitempty"`
	Notes    string `json:"booking_notes,omitempty"`
}

func (s *TidyCalScheduler) Book(ctx context.Context, req Request) error {
	if req.StartsAt.IsZero() {
		return fmt.Errorf("booking: tidycal: start time is required")
	}

	notes := fmt.Sprintf("Phone: %s", req.Phone)
	if req.Role != "" {
		notes += fmt.Sprintf("\nRole: %s", req.Role)
	}
	body, err := json.Marshal(tidyCalBookingBody{
		StartsAt: req.StartsAt.UTC().Format("2006-01-02T15:04:05Z"),
		Name:     req.Name,
		Email:    req.Email,
		Timezone: req.Timezone,
		Notes:    notes,
	})
	if err != nil {
		return err
	}

	endpoint := fmt.Sprintf("%s/booking-types/%s/bookings", s.baseURL, s.bookingTypeID)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	httpReq.Header.Set("Authorization", "Bearer "+s.token)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := s.http.Do(httpReq)
	if err != nil {
		return fmt.Errorf("booking: tidycal book: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("booking: tidycal book: status %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet)))
	}
	return nil
}
