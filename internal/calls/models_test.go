package calls

import "testing"

func TestStatus_Terminal(t *testing.T) {
	terminal := []Status{StatusCompleted, StatusEnded, StatusFailed, StatusNoAnswer}
	for _, s := range terminal {
		if !s.Terminal() {
			t.Fatalf("expected %q to be terminal", s)
		}
	}

	inFlight := []Status{StatusQueued, StatusRinging, StatusInProgress, StatusForwarding, Status("scheduled")}
	for _, s := range inFlight {
		if s.Terminal() {
			t.Fatalf("expected %q to be non-terminal", s)
		}
	}
}

func TestStatus_Answered(t *testing.T) {
	if !StatusCompleted.Answered() || !StatusEnded.Answered() {
		t.Fatalf("expected completed/ended to be answered")
	}
	if StatusFailed.Answered() || StatusNoAnswer.Answered() {
		t.Fatalf("expected failed/no-answer to be unanswered")
	}
}
