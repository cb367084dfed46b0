package telephony

import (
	"context"
	"errors"
	"sync"

	"voice-campaign/internal/calls"
)

// FakeProvider is a scripted in-memory provider useful for tests.
// It is not intended for production use.
type FakeProvider struct {
	mu sync.Mutex

	// CreateErr, when set, fails every CreateCall.
	CreateErr error

	// Script is the sequence of states GetCall walks through for the
	// scripted call; the last entry repeats once exhausted.
	Script []CallInfo

	created []CreateCallRequest
	gets    int
}

func (f *FakeProvider) Name() string                          { return "fake" }
func (f *FakeProvider) HealthCheck(ctx context.Context) error { return nil }

func (f *FakeProvider) CreateCall(ctx context.Context, req CreateCallRequest) (CreateCallResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.CreateErr != nil {
		return CreateCallResult{}, f.CreateErr
	}
	f.created = append(f.created, req)
	return CreateCallResult{CallID: "fake-call-1", Status: calls.StatusQueued}, nil
}

func (f *FakeProvider) GetCall(ctx context.Context, callID string) (CallInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.Script) == 0 {
		return CallInfo{}, errors.New("telephony: fake has no scripted states")
	}
	i := f.gets
	if i >= len(f.Script) {
		i = len(f.Script) - 1
	}
	f.gets++
	info := f.Script[i]
	if info.CallID == "" {
		info.CallID = callID
	}
	return info, nil
}

// Created returns a copy of the create requests seen so far.
func (f *FakeProvider) Created() []CreateCallRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]CreateCallRequest, len(f.created))
	copy(out, f.created)
	return out
}

// Polls returns how many GetCall calls were made.
func (f *FakeProvider) Polls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.gets
}
