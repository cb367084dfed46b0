package telephony

import (
	"context"

	"voice-campaign/internal/calls"
)

// VoiceProvider defines the provider-agnostic interface used by the
// campaign runner.
//
// Rules:
// - No provider SDK/HTTP calls outside telephony adapters.
// - Keep request/response types provider-agnostic; raw payload shapes stay
//   inside the adapter.
type VoiceProvider interface {
	Name() string
	HealthCheck(ctx context.Context) error

	// CreateCall asks the provider to dial one customer number with the
	// configured voice agent. The returned handle is only valid for GetCall.
	CreateCall(ctx context.Context, req CreateCallRequest) (CreateCallResult, error)

	// GetCall fetches the current state of a previously created call.
	GetCall(ctx context.Context, callID string) (CallInfo, error)
}

type CreateCallRequest struct {
	// AgentID is the provider-side assistant configuration to run.
	AgentID string `json:"agent_id"`

	// PhoneID is the provider-side outbound line to dial from.
	PhoneID string `json:"phone_id"`

	// CustomerNumber is E.164 where possible.
	CustomerNumber string `json:"customer_number"`
}

type CreateCallResult struct {
	CallID string       `json:"call_id"`
	Status calls.Status `json:"status"`
}

// Analysis is the provider's post-call analysis. Both fields are optional;
// a call can end without the agent producing either.
type Analysis struct {
	Summary        string         `json:"summary"`
	StructuredData map[string]any `json:"structured_data"`
}

type CallInfo struct {
	CallID string       `json:"call_id"`
	Status calls.Status `json:"status"`

	// Analysis is nil until the provider has processed the ended call.
	Analysis *Analysis `json:"analysis,omitempty"`
}
