package common

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsValidPhoneNumber(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"ten digits", "9876543210", true},
		{"ten digits with separators", "98765-43210", true},
		{"ten digits with spaces and prefix", "(98) 7654 3210", true},
		{"nine digits", "987654321", false},
		{"eleven digits", "98765432101", false},
		{"empty", "", false},
		{"letters only", "abcdefghij", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValidPhoneNumber(tt.input))
		})
	}
}

func TestIsValidAadharNumber(t *testing.T) {
	assert.True(t, IsValidAadharNumber("123456789012"))
	assert.True(t, IsValidAadharNumber("1234 5678 9012"))
	assert.False(t, IsValidAadharNumber("12345678901"))
	assert.False(t, IsValidAadharNumber("1234567890123"))
}

func TestIsValidPincode(t *testing.T) {
	assert.True(t, IsValidPincode("110001"))
	assert.True(t, IsValidPincode("110 001"))
	assert.False(t, IsValidPincode("11000"))
	assert.False(t, IsValidPincode("1100011"))
}

func TestFormatAadharNumber(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"123456789012", "1234 5678 9012"},
		{"12345", "1234 5"},
		{"1234", "1234"},
		{"", ""},
		{"1234-5678-9012-3456", "1234 5678 9012"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatAadharNumber(tt.input))
		})
	}
}

func TestAadharRoundTrip(t *testing.T) {
	digits := "123456789012"
	for n := 0; n <= len(digits); n++ {
		d := digits[:n]
		assert.Equal(t, d, UnformatAadharNumber(FormatAadharNumber(d)), "length %d", n)
	}
}

func TestUnformatAadharNumber(t *testing.T) {
	assert.Equal(t, "123456789012", UnformatAadharNumber(" 1234\t5678 9012 "))
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-01-15", "periodFrom")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC), d)

	d, err = ParseDate("2024-01-15T18:30:00.000Z", "periodFrom")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC), d)

	_, err = ParseDate("2024-02-30", "periodFrom")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "periodFrom")

	_, err = ParseDate("not a date", "periodTo")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "periodTo")
}

func TestValidateUUID(t *testing.T) {
	id := uuid.New()

	got, err := ValidateUUID(" "+id.String()+" ", "room ID")
	require.NoError(t, err)
	assert.Equal(t, id, got)

	_, err = ValidateUUID("", "room ID")
	assert.EqualError(t, err, "room ID is required")

	_, err = ValidateUUID("12", "room ID")
	assert.Error(t, err)

	_, err = ValidateUUID(strings.ReplaceAll(id.String(), "-", "x"), "room ID")
	assert.Error(t, err)
}

func TestValidateRequiredString(t *testing.T) {
	assert.NoError(t, ValidateRequiredString("Ravi", "name"))
	assert.EqualError(t, ValidateRequiredString("   ", "name"), "name is required")
}
