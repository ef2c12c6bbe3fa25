package availability

import (
	"context"
	"sync"

	"clinica/models"
)

// DayNames indexes Monday-based weekday names for display.
var DayNames = [7]string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

// Day is one editable row of the weekly schedule. Times are "HH:MM"; the
// stored "HH:MM:SS" form is only used on the wire.
type Day struct {
	DayOfWeek int
	Name      string
	Active    bool
	StartTime string
	EndTime   string
}

// AvailabilityAPI is the slice of the remote API the editor needs.
type AvailabilityAPI interface {
	GetMyAvailability(ctx context.Context) ([]models.AvailabilityRule, error)
	SetAvailability(ctx context.Context, rules []models.AvailabilityRule) error
}

// ScheduleEditor holds a provider's weekly working hours while they are being
// edited. Load merges the stored schedule into a full seven-day week; Save
// validates and writes back only the active days, which the backend treats as
// the complete new schedule.
type ScheduleEditor interface {
	Load(ctx context.Context) ([]Day, error)
	SetDayActive(dayOfWeek int, active bool)
	SetDayHours(dayOfWeek int, start, end string)
	Week() []Day
	Save(ctx context.Context) error
}

// DefaultScheduleEditor is the production implementation.
type DefaultScheduleEditor struct {
	API AvailabilityAPI

	mu   sync.Mutex
	week [7]Day
}
