package utils

import (
	"fmt"
	"time"

	"github.com/julianstephens/mindflow/internal/clock"
	"github.com/julianstephens/mindflow/internal/constants"
)

// Today returns today's date string (YYYY-MM-DD) according to c, in c's location.
func Today(c clock.Clock) string {
	return clock.Or(c).Now().Format(constants.DateFormat)
}

// CurrentTime returns the time of day (HH:MM) according to c.
func CurrentTime(c clock.Clock) string {
	return clock.Or(c).Now().Format(constants.TimeFormat)
}

// StartOfDay truncates t to local midnight, keeping t's location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// AddDays moves a calendar day by n days. Uses AddDate so DST shifts do not
// skip or repeat a day.
func AddDays(t time.Time, n int) time.Time {
	return StartOfDay(t).AddDate(0, 0, n)
}

// LastNDays returns the date strings for the n calendar days ending on the day
// of now, oldest first.
func LastNDays(now time.Time, n int) []string {
	if n <= 0 {
		return []string{}
	}
	days := make([]string, 0, n)
	for i := n - 1; i >= 0; i-- {
		days = append(days, AddDays(now, -i).Format(constants.DateFormat))
	}
	return days
}

// ParseDate parses a date string (YYYY-MM-DD) at midnight in loc.
func ParseDate(dateStr string, loc *time.Location) (time.Time, error) {
	t, err := time.Parse(constants.DateFormat, dateStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", dateStr, err)
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc), nil
}

// ValidateDate checks if the string matches the standard date format.
func ValidateDate(dateStr string) bool {
	_, err := time.Parse(constants.DateFormat, dateStr)
	return err == nil
}

// ValidateTimeFormat checks if the string matches the standard time format.
func ValidateTimeFormat(timeStr string) bool {
	_, err := time.Parse(constants.TimeFormat, timeStr)
	return err == nil
}

// WaterIntakeKey is the counter key for water consumed on date.
func WaterIntakeKey(date string) string {
	return constants.KeyWaterIntakePrefix + date
}

// StepCountKey is the counter key for steps taken on date.
func StepCountKey(date string) string {
	return constants.KeyStepCountPrefix + date
}
