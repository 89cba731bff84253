package domain

import (
	"math"
	"time"
)

type VerificationStatus string

const (
	VerificationStatusPending  VerificationStatus = "pending"
	VerificationStatusVerified VerificationStatus = "verified"
	VerificationStatusRejected VerificationStatus = "rejected"
)

func (s VerificationStatus) IsValid() bool {
	return s == VerificationStatusPending || s == VerificationStatusVerified || s == VerificationStatusRejected
}

type Practitioner struct {
	ID                  string             `json:"id"`
	UserID              string             `json:"user_id"`
	Bio                 string             `json:"bio"`
	HourlyRate          float64            `json:"hourly_rate"`
	YearsOfExperience   int                `json:"years_of_experience"`
	Specializations     []string           `json:"specializations"`
	Services            []string           `json:"services"`
	Qualifications      []string           `json:"qualifications"`
	Languages           []string           `json:"languages"`
	Tags                []string           `json:"tags"`
	LocationName        string             `json:"location_name"`
	Address             string             `json:"address,omitempty"`
	IsAvailable         bool               `json:"is_available"`
	VerificationStatus  VerificationStatus `json:"verification_status"`
	ProfileCompleteness int                `json:"profile_completeness"`
	CoverPhotoURL       string             `json:"cover_photo_url,omitempty"`
	User                User               `json:"user"`
	CreatedAt           time.Time          `json:"created_at"`
	UpdatedAt           time.Time          `json:"updated_at"`
}

type UpdatePractitionerDTO struct {
	Bio               *string   `json:"bio"`
	HourlyRate        *float64  `json:"hourly_rate" binding:"omitempty,min=0"`
	YearsOfExperience *int      `json:"years_of_experience" binding:"omitempty,min=0"`
	Specializations   *[]string `json:"specializations"`
	Services          *[]string `json:"services"`
	Qualifications    *[]string `json:"qualifications"`
	Languages         *[]string `json:"languages"`
	Tags              *[]string `json:"tags"`
	LocationName      *string   `json:"location_name"`
	Address           *string   `json:"address"`
	IsAvailable       *bool     `json:"is_available"`
}

type PractitionerFilter struct {
	VerificationStatus *VerificationStatus
	IsAvailable        *bool
	Specialization     *string
	Limit              int
	Offset             int
}

// CompletenessReport is the result of evaluating a practitioner profile
// against the fixed list of fields a complete profile must fill in.
type CompletenessReport struct {
	Completeness  int      `json:"completeness"`
	MissingFields []string `json:"missing_fields"`
}

type completenessField struct {
	label   string
	present func(p *Practitioner) bool
}

// Field order matters: MissingFields is reported in this order.
var completenessFields = []completenessField{
	{"Bio", func(p *Practitioner) bool { return p.Bio != "" }},
	{"Hourly Rate", func(p *Practitioner) bool { return p.HourlyRate > 0 }},
	{"Years of Experience", func(p *Practitioner) bool { return p.YearsOfExperience > 0 }},
	{"Location", func(p *Practitioner) bool { return p.LocationName != "" }},
	{"Specializations", func(p *Practitioner) bool { return len(p.Specializations) > 0 }},
	{"Services", func(p *Practitioner) bool { return len(p.Services) > 0 }},
	{"Qualifications", func(p *Practitioner) bool { return len(p.Qualifications) > 0 }},
}

// ComputeCompleteness is pure: identical snapshots yield identical reports.
func ComputeCompleteness(p *Practitioner) CompletenessReport {
	missing := make([]string, 0, len(completenessFields))
	for _, field := range completenessFields {
		if !field.present(p) {
			missing = append(missing, field.label)
		}
	}

	total := len(completenessFields)
	filled := total - len(missing)
	percent := int(math.Round(float64(filled) / float64(total) * 100))

	return CompletenessReport{
		Completeness:  percent,
		MissingFields: missing,
	}
}

// IsBookable gates booking creation: only verified practitioners that have
// marked themselves available can receive bookings.
func IsBookable(p *Practitioner) bool {
	return p.VerificationStatus == VerificationStatusVerified && p.IsAvailable
}
