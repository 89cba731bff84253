package domain

import (
	"time"
)

type MediaType string

const (
	MediaTypeGallery MediaType = "gallery"
	MediaTypeProfile MediaType = "profile"
	MediaTypeCover   MediaType = "cover"
)

func (t MediaType) IsValid() bool {
	return t == MediaTypeGallery || t == MediaTypeProfile || t == MediaTypeCover
}

type Media struct {
	ID             string    `json:"id"`
	PractitionerID string    `json:"practitioner_id"`
	MediaType      MediaType `json:"media_type"`
	FileName       string    `json:"file_name"`
	FilePath       string    `json:"file_path"`
	DisplayOrder   int       `json:"display_order"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
