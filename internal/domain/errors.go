package domain

import (
	"errors"
)

// Failure kinds returned by services. Transport maps these to HTTP statuses
// with errors.Is, so wrapping must preserve them.
var (
	ErrNotFound                 = errors.New("entity not found")
	ErrForbidden                = errors.New("actor is not allowed to perform this operation")
	ErrInvalidTransition        = errors.New("requested transition is not reachable from the current state")
	ErrMissingRequiredDocuments = errors.New("required verification documents are missing")
	ErrPractitionerNotBookable  = errors.New("practitioner is not verified or not available")
	ErrPrematureCompletion      = errors.New("booking cannot be completed before its session date")
	ErrConcurrentModification   = errors.New("entity was modified concurrently, re-read and retry")
	ErrValidation               = errors.New("invalid input")
	ErrAlreadyExists            = errors.New("entity already exists")
	ErrStorageUnavailable       = errors.New("file storage is not configured")
)
