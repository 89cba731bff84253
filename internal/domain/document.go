package domain

import (
	"time"
)

type DocumentType string

const (
	DocumentTypeQualification   DocumentType = "qualification"
	DocumentTypeGovernmentID    DocumentType = "government_id"
	DocumentTypeBusinessLicense DocumentType = "business_license"
	DocumentTypeInsurance       DocumentType = "insurance"
	DocumentTypeBackgroundCheck DocumentType = "background_check"
	DocumentTypeRecommendation  DocumentType = "recommendation"
	DocumentTypePortfolio       DocumentType = "portfolio"
)

func (t DocumentType) IsValid() bool {
	switch t {
	case DocumentTypeQualification, DocumentTypeGovernmentID, DocumentTypeBusinessLicense,
		DocumentTypeInsurance, DocumentTypeBackgroundCheck, DocumentTypeRecommendation,
		DocumentTypePortfolio:
		return true
	}
	return false
}

// RequiredDocumentTypes must all be present before a practitioner may submit
// their profile for verification review.
var RequiredDocumentTypes = []DocumentType{
	DocumentTypeQualification,
	DocumentTypeGovernmentID,
}

const MaxDocumentSize = 5 << 20 // 5 MiB

var AllowedDocumentMIMETypes = map[string]bool{
	"application/pdf": true,
	"image/jpeg":      true,
	"image/png":       true,
}

type Document struct {
	ID             string       `json:"id"`
	PractitionerID string       `json:"practitioner_id"`
	DocumentType   DocumentType `json:"document_type"`
	FileName       string       `json:"file_name"`
	FilePath       string       `json:"file_path"`
	FileSize       int64        `json:"file_size"`
	MimeType       string       `json:"mime_type"`
	IsVerified     bool         `json:"is_verified"`
	AdminNotes     string       `json:"admin_notes,omitempty"`
	UploadDate     time.Time    `json:"upload_date"`
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`
}

type ReviewDocumentDTO struct {
	IsVerified *bool  `json:"is_verified" binding:"required"`
	AdminNotes string `json:"admin_notes"`
}
