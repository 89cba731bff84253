package domain

import (
	"time"
)

// Availability is a weekly recurring window during which a practitioner
// accepts bookings. Purely informational: booking creation does not check it.
type Availability struct {
	ID             string    `json:"id"`
	PractitionerID string    `json:"practitioner_id"`
	DayOfWeek      int       `json:"day_of_week"`
	StartTime      string    `json:"start_time"`
	EndTime        string    `json:"end_time"`
	CreatedAt      time.Time `json:"created_at"`
}

type CreateAvailabilityDTO struct {
	DayOfWeek int    `json:"day_of_week" binding:"min=0,max=6"`
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`
}
