package models

import "time"

// AvailabilityRule is one weekly working window for a provider. DayOfWeek is
// 0 for Monday through 6 for Sunday; times are "HH:MM:SS" on the clinic's
// local clock. A provider's stored schedule contains only the days they work.
type AvailabilityRule struct {
	DayOfWeek int    `json:"day_of_week"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// DayOfWeekFor maps a calendar date to the Monday-based day index the
// availability endpoints use.
func DayOfWeekFor(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}
