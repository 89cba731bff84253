package domain

import (
	"time"
)

type Event struct {
	ID           string    `json:"id"`
	OrganizerID  string    `json:"organizer_id"`
	Title        string    `json:"title"`
	Description  string    `json:"description,omitempty"`
	EventDate    time.Time `json:"event_date"`
	StartTime    string    `json:"start_time"`
	EndTime      string    `json:"end_time"`
	LocationName string    `json:"location_name,omitempty"`
	ImageURL     string    `json:"image_url,omitempty"`
	Price        *float64  `json:"price,omitempty"`
	MaxAttendees *int      `json:"max_attendees,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type CreateEventDTO struct {
	Title        string   `json:"title" binding:"required"`
	Description  string   `json:"description"`
	EventDate    string   `json:"event_date" binding:"required"`
	StartTime    string   `json:"start_time" binding:"required"`
	EndTime      string   `json:"end_time" binding:"required"`
	LocationName string   `json:"location_name"`
	ImageURL     string   `json:"image_url"`
	Price        *float64 `json:"price" binding:"omitempty,min=0"`
	MaxAttendees *int     `json:"max_attendees" binding:"omitempty,min=1"`
}

type UpdateEventDTO struct {
	Title        *string  `json:"title"`
	Description  *string  `json:"description"`
	EventDate    *string  `json:"event_date"`
	StartTime    *string  `json:"start_time"`
	EndTime      *string  `json:"end_time"`
	LocationName *string  `json:"location_name"`
	ImageURL     *string  `json:"image_url"`
	Price        *float64 `json:"price" binding:"omitempty,min=0"`
	MaxAttendees *int     `json:"max_attendees" binding:"omitempty,min=1"`
}

type EventFilter struct {
	OrganizerID *string
	FromDate    *time.Time
	Limit       int
	Offset      int
}

type EventRegistration struct {
	ID        string    `json:"id"`
	EventID   string    `json:"event_id"`
	UserID    string    `json:"user_id"`
	PaymentID *string   `json:"payment_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
