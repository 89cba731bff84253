package validator

import (
	"regexp"
	"strings"
	"time"
	"unicode"
)

var (
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	phoneRegex = regexp.MustCompile(`^\+?[0-9]{10,15}$`)
)

const (
	dateLayout      = "2006-01-02"
	timeOfDayLayout = "15:04"
)

func ValidateEmail(email string) bool {
	return emailRegex.MatchString(email)
}

func ValidatePhone(phone string) bool {
	cleanPhone := strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) || r == '+' {
			return r
		}
		return -1
	}, phone)

	return phoneRegex.MatchString(cleanPhone)
}

func ValidatePassword(password string) bool {
	return len(password) >= 6
}

// ParseDate parses a calendar date in YYYY-MM-DD form. The result is
// midnight UTC so date-only comparisons stay exact.
func ParseDate(value string) (time.Time, error) {
	return time.Parse(dateLayout, value)
}

// ParseTimeOfDay validates a wall-clock time in HH:MM form.
func ParseTimeOfDay(value string) (time.Time, error) {
	return time.Parse(timeOfDayLayout, value)
}

// TimeOfDayBefore reports whether a < b, both in HH:MM form. Invalid inputs
// compare as false.
func TimeOfDayBefore(a, b string) bool {
	ta, err := ParseTimeOfDay(a)
	if err != nil {
		return false
	}
	tb, err := ParseTimeOfDay(b)
	if err != nil {
		return false
	}
	return ta.Before(tb)
}

// DateOnly truncates a timestamp to its calendar date in UTC.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func SanitizeString(s string) string {
	return strings.Map(func(r rune) rune {
		if r == '<' || r == '>' || r == '&' || r == '"' || r == '\'' || r == '`' || r == ';' {
			return -1
		}
		return r
	}, s)
}
