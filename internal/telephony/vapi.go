package telephony

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"voice-campaign/internal/calls"
)

const defaultVapiBaseURL = "https://api.vapi.ai"

// VapiProvider talks to the Vapi REST API.
//
// Contract used: POST /call creates an outbound call, GET /call/{id}
// returns status plus, once the call has ended, the agent's analysis.
type VapiProvider struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

type VapiOptions struct {
	// BaseURL is overridable for tests; empty means the public API.
	BaseURL string

	// Timeout bounds a single request, not the whole call lifecycle.
	Timeout time.Duration
}

func NewVapiProvider(apiKey string, opts VapiOptions) *VapiProvider {
	base := opts.BaseURL
	if base == "" {
		base = defaultVapiBaseURL
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &VapiProvider{
		baseURL: base,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: timeout},
	}
}

func (p *VapiProvider) Name() string { return "vapi" }

func (p *VapiProvider) HealthCheck(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/call?limit=1", nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+p.apiKey)

	resp, err := p.http.Do(req)
	if err != nil {
		return fmt.Errorf("telephony: vapi health check: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("telephony: vapi health check: status %d", resp.StatusCode)
	}
	return nil
}

type vapiCreateCallBody struct {
	AssistantID   string       `json:"assistantId"`
	PhoneNumberID string       `json:"phoneNumberId"`
	Customer      vapiCustomer `json:"customer"`
}

type vapiCustomer struct {
	Number string `json:"number"`
}

type vapiCall struct {
	ID       string        `json:"id"`
	Status   string        `json:"status"`
	Analysis *vapiAnalysis `json:"analysis,omitempty"`
}

type vapiAnalysis struct {
	Summary        string         `json:"summary"`
	StructuredData map[string]any `json:"structuredData"`
}

func (p *VapiProvider) CreateCall(ctx context.Context, req CreateCallRequest) (CreateCallResult, error) {
	if req.AgentID == "" || req.PhoneID == "" || req.CustomerNumber == "" {
		return CreateCallResult{}, fmt.Errorf("telephony: vapi create call: agent, phone and customer number are required")
	}

	body, err := json.Marshal(vapiCreateCallBody{
		AssistantID:   req.AgentID,
		PhoneNumberID: req.PhoneID,
		Customer:      vapiCustomer{Number: req.CustomerNumber},
	})
	if err != nil {
		return CreateCallResult{}, err
	}

	var out vapiCall
	if err := p.do(ctx, http.MethodPost, "/call", bytes.NewReader(body), &out); err != nil {
		return CreateCallResult{}, err
	}
	if out.ID == "" {
		return CreateCallResult{}, fmt.Errorf("telephony: vapi create call: response missing call id")
	}
	return CreateCallResult{CallID: out.ID, Status: calls.Status(out.Status)}, nil
}

func (p *VapiProvider) GetCall(ctx context.Context, callID string) (CallInfo, error) {
	if callID == "" {
		return CallInfo{}, fmt.Errorf("telephony: vapi get call: call id is required")
	}

	var out vapiCall
	if err := p.do(ctx, http.MethodGet, "/call/"+callID, nil, &out); err != nil {
		return CallInfo{}, err
	}

	info := CallInfo{CallID: out.ID, Status: calls.Status(out.Status)}
	if out.Analysis != nil {
		info.Analysis = &Analysis{
			Summary:        out.Analysis.Summary,
			StructuredData: out.Analysis.StructuredData,
		}
	}
	return info, nil
}

func (p *VapiProvider) do(ctx context.Context, method, path string, body io.Reader, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, p.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+p.apiKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := p.http.Do(req)
	if err != nil {
		return fmt.Errorf("telephony: vapi %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Keep a short slice of the body for the log line; provider errors
		// are JSON but occasionally HTML on gateway failures.
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("telephony: vapi %s %s: status %d: %s", method, path, resp.StatusCode, bytes.TrimSpace(snippet))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("telephony: vapi %s %s: decode: %w", method, path, err)
	}
	return nil
}
