package utils

import (
	"errors"
	"time"
)

// DateOnlyFormat is the wire format for mealDate and voteDate values.
const DateOnlyFormat = "2006-01-02"

// ParseDateOnly parses a YYYY-MM-DD string as midnight in the given location.
func ParseDateOnly(value string, loc *time.Location) (time.Time, error) {
	if value == "" {
		return time.Time{}, errors.New("date is required")
	}

	t, err := time.ParseInLocation(DateOnlyFormat, value, loc)
	if err != nil {
		return time.Time{}, errors.New("invalid date format, expected YYYY-MM-DD")
	}

	return t, nil
}

// StartOfDay truncates t to midnight in the given location.
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
}

// DayRange returns [startOfDay, startOfNextDay) for the day containing t.
// Poll lookups by voteDate and the scheduler's "today" queries both use this
// half-open window.
func DayRange(t time.Time, loc *time.Location) (time.Time, time.Time) {
	start := StartOfDay(t, loc)
	return start, start.AddDate(0, 0, 1)
}

// EndOfDay returns the last instant of the day containing t, used for the
// voted_today cookie expiry.
func EndOfDay(t time.Time, loc *time.Location) time.Time {
	start := StartOfDay(t, loc)
	return start.AddDate(0, 0, 1).Add(-time.Second)
}

// VoteDateFor derives the voting day for a meal day: always the calendar day
// before the meal is served.
func VoteDateFor(mealDate time.Time) time.Time {
	return mealDate.AddDate(0, 0, -1)
}
