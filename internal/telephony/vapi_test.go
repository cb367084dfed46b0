package telephony

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"voice-campaign/internal/calls"
)

func TestVapiProvider_CreateCall(t *testing.T) {
	var gotAuth string
	var gotBody map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/call" {
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":"call-123","status":"queued"}`))
	}))
	defer srv.Close()

	p := NewVapiProvider("secret", VapiOptions{BaseURL: srv.URL})
	res, err := p.CreateCall(context.Background(), CreateCallRequest{
		AgentID:        "agent-1",
		PhoneID:        "phone-1",
		CustomerNumber: "+15550002",
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if res.CallID != "call-123" || res.Status != calls.StatusQueued {
		t.Fatalf("unexpected result: %+v", res)
	}
	if gotAuth != "Bearer secret" {
		t.Fatalf("expected bearer auth, got %q", gotAuth)
	}
	if gotBody["assistantId"] != "agent-1" || gotBody["phoneNumberId"] != "phone-1" {
		t.Fatalf("unexpected body: %v", gotBody)
	}
	cust, _ := gotBody["customer"].(map[string]any)
	if cust["number"] != "+15550002" {
		t.Fatalf("expected customer number, got %v", gotBody)
	}
}

func TestVapiProvider_CreateCallRejectsEmptyFields(t *testing.T) {
	p := NewVapiProvider("secret", VapiOptions{BaseURL: "http://unused"})
	if _, err := p.CreateCall(context.Background(), CreateCallRequest{}); err == nil {
		t.Fatalf("expected error")
	}
}

func TestVapiProvider_CreateCallSurfacesProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"message":"invalid phone number"}`))
	}))
	defer srv.Close()

	p := NewVapiProvider("secret", VapiOptions{BaseURL: srv.URL})
	_, err := p.CreateCall(context.Background(), CreateCallRequest{
		AgentID: "a", PhoneID: "p", CustomerNumber: "bogus",
	})
	if err == nil {
		t.Fatalf("expected error")
	}
}

func TestVapiProvider_GetCallWithAnalysis(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/call/call-123" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "call-123",
			"status": "ended",
			"analysis": {
				"summary": "Candidate is a good fit.",
				"structuredData": {"qualified": true, "candidate_name": "Jane"}
			}
		}`))
	}))
	defer srv.Close()

	p := NewVapiProvider("secret", VapiOptions{BaseURL: srv.URL})
	info, err := p.GetCall(context.Background(), "call-123")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if info.Status != calls.StatusEnded {
		t.Fatalf("unexpected status: %q", info.Status)
	}
	if info.Analysis == nil || info.Analysis.Summary == "" {
		t.Fatalf("expected analysis, got %+v", info.Analysis)
	}
	if q, _ := info.Analysis.StructuredData["qualified"].(bool); !q {
		t.Fatalf("expected qualified flag in structured data")
	}
}

func TestVapiProvider_GetCallWithoutAnalysis(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"call-123","status":"in-progress"}`))
	}))
	defer srv.Close()

	p := NewVapiProvider("secret", VapiOptions{BaseURL: srv.URL})
	info, err := p.GetCall(context.Background(), "call-123")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if info.Analysis != nil {
		t.Fatalf("expected nil analysis mid-call")
	}
	if info.Status.Terminal() {
		t.Fatalf("expected non-terminal status")
	}
}
