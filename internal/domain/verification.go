package domain

import (
	"time"
)

type VerificationDecision string

const (
	VerificationDecisionVerified VerificationDecision = "verified"
	VerificationDecisionRejected VerificationDecision = "rejected"
)

func (d VerificationDecision) IsValid() bool {
	return d == VerificationDecisionVerified || d == VerificationDecisionRejected
}

func (d VerificationDecision) Status() VerificationStatus {
	return VerificationStatus(d)
}

// VerificationNote is an append-only audit record accompanying a verification
// transition. Notes are never updated or deleted.
type VerificationNote struct {
	ID             string    `json:"id"`
	PractitionerID string    `json:"practitioner_id"`
	AdminID        string    `json:"admin_id"`
	Note           string    `json:"note"`
	Action         string    `json:"action"`
	CreatedAt      time.Time `json:"created_at"`
}

type DecideVerificationDTO struct {
	Decision VerificationDecision `json:"decision" binding:"required,oneof=verified rejected"`
	Note     string               `json:"note"`
}
