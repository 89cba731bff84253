package domain

import (
	"reflect"
	"testing"
)

func fullProfile() *Practitioner {
	return &Practitioner{
		Bio:               "Certified massage therapist",
		HourlyRate:        450,
		YearsOfExperience: 6,
		LocationName:      "Cape Town",
		Specializations:   []string{"Sports Massage"},
		Services:          []string{"Deep tissue"},
		Qualifications:    []string{"Diploma in Somatology"},
	}
}

func TestComputeCompletenessFullProfile(t *testing.T) {
	report := ComputeCompleteness(fullProfile())

	if report.Completeness != 100 {
		t.Errorf("expected 100, got %d", report.Completeness)
	}
	if len(report.MissingFields) != 0 {
		t.Errorf("expected no missing fields, got %v", report.MissingFields)
	}
}

func TestComputeCompletenessEmptyProfile(t *testing.T) {
	report := ComputeCompleteness(&Practitioner{})

	if report.Completeness != 0 {
		t.Errorf("expected 0, got %d", report.Completeness)
	}
	if len(report.MissingFields) != 7 {
		t.Errorf("expected 7 missing fields, got %d", len(report.MissingFields))
	}
}

func TestComputeCompletenessTwoOfSeven(t *testing.T) {
	p := &Practitioner{
		Bio:        "Short bio",
		HourlyRate: 300,
	}

	report := ComputeCompleteness(p)

	if report.Completeness != 29 {
		t.Errorf("expected 29, got %d", report.Completeness)
	}

	want := []string{"Years of Experience", "Location", "Specializations", "Services", "Qualifications"}
	if !reflect.DeepEqual(report.MissingFields, want) {
		t.Errorf("missing fields: got %v, want %v", report.MissingFields, want)
	}
}

func TestComputeCompletenessIsIdempotent(t *testing.T) {
	p := fullProfile()
	p.Services = nil

	first := ComputeCompleteness(p)
	second := ComputeCompleteness(p)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("reports differ for identical snapshots: %v vs %v", first, second)
	}
}

func TestIsBookable(t *testing.T) {
	tests := []struct {
		name      string
		status    VerificationStatus
		available bool
		want      bool
	}{
		{"verified and available", VerificationStatusVerified, true, true},
		{"verified but unavailable", VerificationStatusVerified, false, false},
		{"pending and available", VerificationStatusPending, true, false},
		{"rejected and available", VerificationStatusRejected, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &Practitioner{VerificationStatus: tt.status, IsAvailable: tt.available}
			if got := IsBookable(p); got != tt.want {
				t.Errorf("IsBookable() = %v, want %v", got, tt.want)
			}
		})
	}
}
