package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func phnomPenh(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Asia/Phnom_Penh")
	require.NoError(t, err)
	return loc
}

func TestParseDateOnly(t *testing.T) {
	loc := phnomPenh(t)

	tests := []struct {
		name        string
		input       string
		expectError bool
		errorMsg    string
	}{
		{
			name:  "valid date",
			input: "2025-12-25",
		},
		{
			name:        "empty string",
			input:       "",
			expectError: true,
			errorMsg:    "date is required",
		},
		{
			name:        "datetime instead of date",
			input:       "2025-12-25T10:00:00Z",
			expectError: true,
			errorMsg:    "invalid date format, expected YYYY-MM-DD",
		},
		{
			name:        "garbage",
			input:       "not-a-date",
			expectError: true,
			errorMsg:    "invalid date format, expected YYYY-MM-DD",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ParseDateOnly(tt.input, loc)

			if tt.expectError {
				assert.Error(t, err)
				assert.Equal(t, tt.errorMsg, err.Error())
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, 2025, result.Year())
			assert.Equal(t, time.December, result.Month())
			assert.Equal(t, 25, result.Day())
			assert.Equal(t, loc, result.Location())
		})
	}
}

func TestDayRange(t *testing.T) {
	loc := phnomPenh(t)

	// 2025-12-24 15:30 local
	now := time.Date(2025, 12, 24, 15, 30, 0, 0, loc)
	start, end := DayRange(now, loc)

	assert.Equal(t, time.Date(2025, 12, 24, 0, 0, 0, 0, loc), start)
	assert.Equal(t, time.Date(2025, 12, 25, 0, 0, 0, 0, loc), end)

	// The window is half-open: midnight tomorrow is excluded.
	assert.True(t, now.After(start))
	assert.True(t, now.Before(end))
}

func TestDayRangeConvertsForeignZones(t *testing.T) {
	loc := phnomPenh(t)

	// 2025-12-24 23:00 UTC is already 2025-12-25 06:00 in Phnom Penh (UTC+7).
	utcEvening := time.Date(2025, 12, 24, 23, 0, 0, 0, time.UTC)
	start, _ := DayRange(utcEvening, loc)

	assert.Equal(t, 25, start.Day())
}

func TestEndOfDay(t *testing.T) {
	loc := phnomPenh(t)

	now := time.Date(2025, 12, 24, 9, 0, 0, 0, loc)
	end := EndOfDay(now, loc)

	assert.Equal(t, time.Date(2025, 12, 24, 23, 59, 59, 0, loc), end)
}

func TestVoteDateFor(t *testing.T) {
	loc := phnomPenh(t)

	mealDate := time.Date(2025, 12, 25, 0, 0, 0, 0, loc)
	voteDate := VoteDateFor(mealDate)

	assert.Equal(t, time.Date(2025, 12, 24, 0, 0, 0, 0, loc), voteDate)
}
