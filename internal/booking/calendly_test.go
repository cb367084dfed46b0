package booking

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func calendlyServer(t *testing.T, slotStart string, linkCreated *bool) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/event_type_available_times":
			if got := r.URL.Query().Get("event_type"); !strings.Contains(got, "event_types") {
				t.Fatalf("expected event_type query, got %q", got)
			}
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"collection":[
				{"start_time":"` + slotStart + `","status":"available"},
				{"start_time":"2025-11-07T20:00:00Z","status":"unavailable"}
			]}`))
		case r.Method == http.MethodPost && r.URL.Path == "/scheduling_links":
			*linkCreated = true
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{"resource":{"booking_url":"https://calendly.com/d/abc"}}`))
		default:
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
	}))
}

func TestCalendlyScheduler_BooksOpenSlot(t *testing.T) {
	var linkCreated bool
	srv := calendlyServer(t, "2025-11-07T19:00:00Z", &linkCreated)
	defer srv.Close()

	s := NewCalendlyScheduler("token-1", "https://api.calendly.com/event_types/et-1", CalendlyOptions{BaseURL: srv.URL})
	err := s.Book(context.Background(), Request{
		StartsAt: time.Date(2025, 11, 7, 19, 0, 0, 0, time.UTC),
		Name:     "Jane",
		Email:    "jane@x.com",
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !linkCreated {
		t.Fatalf("expected a scheduling link to be created")
	}
}

func TestCalendlyScheduler_RejectsClosedSlot(t *testing.T) {
	var linkCreated bool
	srv := calendlyServer(t, "2025-11-07T19:00:00Z", &linkCreated)
	defer srv.Close()

	s := NewCalendlyScheduler("token-1", "https://api.calendly.com/event_types/et-1", CalendlyOptions{BaseURL: srv.URL})
	err := s.Book(context.Background(), Request{
		StartsAt: time.Date(2025, 11, 7, 21, 30, 0, 0, time.UTC),
		Name:     "Jane",
	})
	if err == nil {
		t.Fatalf("expected error for closed slot")
	}
	if linkCreated {
		t.Fatalf("must not mint a link for a closed slot")
	}
}
