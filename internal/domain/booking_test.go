package domain

import "testing"

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to BookingStatus
		want     bool
	}{
		{BookingStatusPending, BookingStatusConfirmed, true},
		{BookingStatusPending, BookingStatusCancelled, true},
		{BookingStatusPending, BookingStatusCompleted, false},
		{BookingStatusConfirmed, BookingStatusCompleted, true},
		{BookingStatusConfirmed, BookingStatusCancelled, true},
		{BookingStatusConfirmed, BookingStatusPending, false},
		{BookingStatusCancelled, BookingStatusPending, false},
		{BookingStatusCancelled, BookingStatusConfirmed, false},
		{BookingStatusCompleted, BookingStatusCancelled, false},
		{BookingStatusPending, BookingStatusPending, false},
	}

	for _, tt := range tests {
		if got := CanTransition(tt.from, tt.to); got != tt.want {
			t.Errorf("CanTransition(%s, %s) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestIsTerminal(t *testing.T) {
	if BookingStatusPending.IsTerminal() || BookingStatusConfirmed.IsTerminal() {
		t.Error("pending and confirmed must not be terminal")
	}
	if !BookingStatusCancelled.IsTerminal() || !BookingStatusCompleted.IsTerminal() {
		t.Error("cancelled and completed must be terminal")
	}
}

func TestVerificationDecisionStatus(t *testing.T) {
	if VerificationDecisionVerified.Status() != VerificationStatusVerified {
		t.Error("verified decision must map to verified status")
	}
	if VerificationDecisionRejected.Status() != VerificationStatusRejected {
		t.Error("rejected decision must map to rejected status")
	}
}
