package utils

import (
	"testing"
	"time"
)

func TestLocalDateStringKeepsCalendarDayAcrossOffsets(t *testing.T) {
	// The same tapped calendar day must serialize identically whether the
	// device sits at UTC-12 or UTC+14.
	zones := []*time.Location{
		time.FixedZone("UTC-12", -12*60*60),
		time.UTC,
		time.FixedZone("UTC+14", 14*60*60),
	}

	for _, zone := range zones {
		tapped := time.Date(2024, time.March, 10, 0, 30, 0, 0, zone)
		if got := LocalDateString(tapped); got != "2024-03-10" {
			t.Errorf("zone %s: got %q, want 2024-03-10", zone, got)
		}

		lateEvening := time.Date(2024, time.December, 31, 23, 45, 0, 0, zone)
		if got := LocalDateString(lateEvening); got != "2024-12-31" {
			t.Errorf("zone %s: got %q, want 2024-12-31", zone, got)
		}
	}
}

func TestCombineLocalDateTime(t *testing.T) {
	got, err := CombineLocalDateTime("2024-03-10", "09:00")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "2024-03-10T09:00:00" {
		t.Errorf("got %q, want 2024-03-10T09:00:00", got)
	}
}

func TestCombineLocalDateTimeRejectsBadInput(t *testing.T) {
	cases := []struct {
		name string
		date string
		slot string
	}{
		{"bad date", "10-03-2024", "09:00"},
		{"empty date", "", "09:00"},
		{"bad slot", "2024-03-10", "9am"},
		{"empty slot", "2024-03-10", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := CombineLocalDateTime(tc.date, tc.slot); err == nil {
				t.Errorf("expected error for date=%q slot=%q", tc.date, tc.slot)
			}
		})
	}
}
