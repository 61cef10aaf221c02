package common

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
)

const (
	PhoneDigits   = 10
	AadharDigits  = 12
	PincodeDigits = 6

	// DateLayout is the wire and storage format for lease dates.
	DateLayout = "2006-01-02"
)

// ValidateUUID validates UUID format with comprehensive checks
func ValidateUUID(idStr string, fieldName string) (uuid.UUID, error) {
	idStr = strings.TrimSpace(idStr)
	if idStr == "" {
		return uuid.Nil, fmt.Errorf("%s is required", fieldName)
	}

	// Check exact length
	if len(idStr) != 36 {
		return uuid.Nil, fmt.Errorf("%s must be exactly 36 characters (including hyphens)", fieldName)
	}

	// Check hyphen placement
	for _, pos := range []int{8, 13, 18, 23} {
		if idStr[pos] != '-' {
			return uuid.Nil, fmt.Errorf("%s has invalid UUID format: hyphens must be at positions 9, 14, 19, and 24", fieldName)
		}
	}

	id, err := uuid.Parse(idStr)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s contains invalid characters: %v", fieldName, err)
	}

	return id, nil
}

// ValidateRequiredString validates required string fields
func ValidateRequiredString(value, fieldName string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%s is required", fieldName)
	}
	return nil
}

// DigitsOnly drops every non-digit rune from s.
func DigitsOnly(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// IsValidPhoneNumber reports whether s holds exactly 10 digits once
// separators are removed.
func IsValidPhoneNumber(s string) bool {
	return len(DigitsOnly(s)) == PhoneDigits
}

// IsValidAadharNumber reports whether s holds exactly 12 digits.
func IsValidAadharNumber(s string) bool {
	return len(DigitsOnly(s)) == AadharDigits
}

// IsValidPincode reports whether s holds exactly 6 digits.
func IsValidPincode(s string) bool {
	return len(DigitsOnly(s)) == PincodeDigits
}

// FormatAadharNumber renders up to the first 12 digits of s in blocks of
// four, e.g. "1234 5678 9012".
func FormatAadharNumber(s string) string {
	digits := DigitsOnly(s)
	if len(digits) > AadharDigits {
		digits = digits[:AadharDigits]
	}

	var b strings.Builder
	for i := 0; i < len(digits); i += 4 {
		if i > 0 {
			b.WriteByte(' ')
		}
		end := i + 4
		if end > len(digits) {
			end = len(digits)
		}
		b.WriteString(digits[i:end])
	}
	return b.String()
}

// UnformatAadharNumber strips the whitespace FormatAadharNumber inserts.
func UnformatAadharNumber(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

// ParseDate accepts a plain calendar date or an RFC 3339 timestamp and
// returns the calendar date at UTC midnight.
func ParseDate(dateStr, fieldName string) (time.Time, error) {
	dateStr = strings.TrimSpace(dateStr)
	if dateStr == "" {
		return time.Time{}, fmt.Errorf("%s is required", fieldName)
	}

	if d, err := time.Parse(DateLayout, dateStr); err == nil {
		return d, nil
	}

	ts, err := time.Parse(time.RFC3339, dateStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s must be a valid date in YYYY-MM-DD format", fieldName)
	}
	return time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, time.UTC), nil
}
