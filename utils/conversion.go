package utils

import (
	"fmt"
	"time"
)

// LocalDateString formats t as "YYYY-MM-DD" from its own year/month/day
// components. The date is never round-tripped through UTC, so a device at a
// negative UTC offset cannot shift the calendar day the user tapped.
func LocalDateString(t time.Time) string {
	year, month, day := t.Date()
	return fmt.Sprintf("%04d-%02d-%02d", year, int(month), day)
}

// CombineLocalDateTime joins a "YYYY-MM-DD" calendar date and an "HH:MM" slot
// time into the wall-clock timestamp the backend expects
// ("YYYY-MM-DDTHH:MM:SS", no offset). The result is interpreted as the
// clinic's local time.
func CombineLocalDateTime(date, slotTime string) (string, error) {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return "", fmt.Errorf("invalid date %q: %w", date, err)
	}
	if _, err := time.Parse("15:04", slotTime); err != nil {
		return "", fmt.Errorf("invalid slot time %q: %w", slotTime, err)
	}
	return date + "T" + slotTime + ":00", nil
}
