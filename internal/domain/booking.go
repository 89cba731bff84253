package domain

import (
	"time"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
	BookingStatusCompleted BookingStatus = "completed"
)

func (s BookingStatus) IsValid() bool {
	switch s {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusCancelled, BookingStatusCompleted:
		return true
	}
	return false
}

// IsTerminal reports whether no further transition may leave this status.
func (s BookingStatus) IsTerminal() bool {
	return s == BookingStatusCancelled || s == BookingStatusCompleted
}

// CanTransition is the booking state machine's reachability table:
// pending -> confirmed | cancelled, confirmed -> completed | cancelled.
func CanTransition(from, to BookingStatus) bool {
	switch from {
	case BookingStatusPending:
		return to == BookingStatusConfirmed || to == BookingStatusCancelled
	case BookingStatusConfirmed:
		return to == BookingStatusCompleted || to == BookingStatusCancelled
	}
	return false
}

type Booking struct {
	ID               string        `json:"id"`
	ClientID         string        `json:"client_id"`
	PractitionerID   string        `json:"practitioner_id"`
	BookingDate      time.Time     `json:"booking_date"`
	StartTime        string        `json:"start_time"`
	EndTime          string        `json:"end_time"`
	Status           BookingStatus `json:"status"`
	Amount           *float64      `json:"amount,omitempty"`
	Notes            string        `json:"notes,omitempty"`
	PaymentID        *string       `json:"payment_id,omitempty"`
	CreatedAt        time.Time     `json:"created_at"`
	UpdatedAt        time.Time     `json:"updated_at"`
	ClientName       string        `json:"client_name,omitempty"`
	PractitionerName string        `json:"practitioner_name,omitempty"`
}

type CreateBookingDTO struct {
	PractitionerID string   `json:"practitioner_id" binding:"required"`
	BookingDate    string   `json:"booking_date" binding:"required"`
	StartTime      string   `json:"start_time" binding:"required"`
	EndTime        string   `json:"end_time" binding:"required"`
	Amount         *float64 `json:"amount" binding:"omitempty,min=0"`
	Notes          string   `json:"notes"`
}

type BookingFilter struct {
	ClientID       *string
	PractitionerID *string
	Status         *BookingStatus
	FromDate       *time.Time
	ToDate         *time.Time
	// OrderDesc flips the canonical (booking_date, start_time) ascending
	// order for historical listings; created_at stays the ascending tiebreak.
	OrderDesc bool
	Limit     int
	Offset    int
}

// Aggregates are recomputed from bookings on every read, never stored.
type PractitionerStats struct {
	PendingCount  int     `json:"pending_count"`
	UpcomingCount int     `json:"upcoming_count"`
	TotalEarnings float64 `json:"total_earnings"`
}

type ClientStats struct {
	UpcomingCount int `json:"upcoming_count"`
	PastCount     int `json:"past_count"`
}
