package validator

import (
	"testing"
	"time"
)

func TestValidateEmail(t *testing.T) {
	valid := []string{"user@example.com", "first.last+tag@sub.domain.co.za"}
	invalid := []string{"", "not-an-email", "user@", "@example.com"}

	for _, email := range valid {
		if !ValidateEmail(email) {
			t.Errorf("ValidateEmail(%q) = false, want true", email)
		}
	}
	for _, email := range invalid {
		if ValidateEmail(email) {
			t.Errorf("ValidateEmail(%q) = true, want false", email)
		}
	}
}

func TestValidatePhone(t *testing.T) {
	if !ValidatePhone("+27821234567") {
		t.Error("expected +27821234567 to be valid")
	}
	if !ValidatePhone("082 123 4567 890") {
		t.Error("expected spaced number to be cleaned and validated")
	}
	if ValidatePhone("12345") {
		t.Error("expected short number to be invalid")
	}
}

func TestParseDate(t *testing.T) {
	parsed, err := ParseDate("2025-06-16")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if parsed.Year() != 2025 || parsed.Month() != time.June || parsed.Day() != 16 {
		t.Errorf("parsed = %v", parsed)
	}

	if _, err := ParseDate("16/06/2025"); err == nil {
		t.Error("expected error for wrong layout")
	}
}

func TestTimeOfDayBefore(t *testing.T) {
	if !TimeOfDayBefore("09:00", "10:30") {
		t.Error("09:00 should be before 10:30")
	}
	if TimeOfDayBefore("10:30", "09:00") {
		t.Error("10:30 should not be before 09:00")
	}
	if TimeOfDayBefore("09:00", "09:00") {
		t.Error("equal times should not compare as before")
	}
	if TimeOfDayBefore("9am", "10:00") {
		t.Error("invalid input should compare as false")
	}
}

func TestDateOnly(t *testing.T) {
	ts := time.Date(2025, 6, 16, 18, 45, 12, 0, time.UTC)
	got := DateOnly(ts)
	want := time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("DateOnly() = %v, want %v", got, want)
	}
}

func TestSanitizeString(t *testing.T) {
	if got := SanitizeString(`<script>alert("hi")</script>`); got != "scriptalert(hi)/script" {
		t.Errorf("SanitizeString() = %q", got)
	}
}
