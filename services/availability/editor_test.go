package availability

import (
	"context"
	"errors"
	"testing"

	"clinica/models"
	"clinica/utils"
)

// Compile-time check that the implementation satisfies the interface.
var _ ScheduleEditor = (*DefaultScheduleEditor)(nil)

// fakeAvailabilityAPI is an AvailabilityAPI with func fields and call counters.
type fakeAvailabilityAPI struct {
	GetFunc func(ctx context.Context) ([]models.AvailabilityRule, error)
	SetFunc func(ctx context.Context, rules []models.AvailabilityRule) error

	setCalls int
}

var _ AvailabilityAPI = (*fakeAvailabilityAPI)(nil)

func (f *fakeAvailabilityAPI) GetMyAvailability(ctx context.Context) ([]models.AvailabilityRule, error) {
	if f.GetFunc != nil {
		return f.GetFunc(ctx)
	}
	return nil, errors.New("GetFunc not set")
}

func (f *fakeAvailabilityAPI) SetAvailability(ctx context.Context, rules []models.AvailabilityRule) error {
	f.setCalls++
	if f.SetFunc != nil {
		return f.SetFunc(ctx, rules)
	}
	return nil
}

func TestLoadMergesStoredScheduleIntoWeek(t *testing.T) {
	api := &fakeAvailabilityAPI{
		GetFunc: func(ctx context.Context) ([]models.AvailabilityRule, error) {
			return []models.AvailabilityRule{
				{DayOfWeek: 0, StartTime: "08:30:00", EndTime: "14:00:00"},
				{DayOfWeek: 4, StartTime: "10:00:00", EndTime: "16:00:00"},
			}, nil
		},
	}
	editor := NewScheduleEditor(api)

	week, err := editor.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(week) != 7 {
		t.Fatalf("week length = %d, want 7", len(week))
	}
	monday := week[0]
	if !monday.Active || monday.StartTime != "08:30" || monday.EndTime != "14:00" {
		t.Errorf("monday = %+v, want active 08:30-14:00", monday)
	}
	if week[1].Active {
		t.Error("tuesday absent from the stored schedule must be inactive")
	}
	if !week[4].Active || week[4].StartTime != "10:00" {
		t.Errorf("friday = %+v, want active from 10:00", week[4])
	}
}

func TestLoadResetsDaysRemovedFromSchedule(t *testing.T) {
	stored := []models.AvailabilityRule{{DayOfWeek: 2, StartTime: "09:00:00", EndTime: "17:00:00"}}
	api := &fakeAvailabilityAPI{
		GetFunc: func(ctx context.Context) ([]models.AvailabilityRule, error) {
			return stored, nil
		},
	}
	editor := NewScheduleEditor(api)
	editor.SetDayActive(5, true)

	week, err := editor.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if week[5].Active {
		t.Error("a day not in the stored schedule must come back inactive")
	}
	if !week[2].Active {
		t.Error("wednesday from the stored schedule must be active")
	}
}

func TestSaveSendsOnlyActiveDaysInWireFormat(t *testing.T) {
	var sent []models.AvailabilityRule
	api := &fakeAvailabilityAPI{
		SetFunc: func(ctx context.Context, rules []models.AvailabilityRule) error {
			sent = rules
			return nil
		},
	}
	editor := NewScheduleEditor(api)
	editor.SetDayActive(0, true)
	editor.SetDayHours(0, "09:00", "13:00")
	editor.SetDayActive(3, true)

	if err := editor.Save(context.Background()); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if len(sent) != 2 {
		t.Fatalf("sent %d rules, want 2", len(sent))
	}
	if sent[0].DayOfWeek != 0 || sent[0].StartTime != "09:00:00" || sent[0].EndTime != "13:00:00" {
		t.Errorf("monday rule = %+v, want 09:00:00-13:00:00", sent[0])
	}
	if sent[1].DayOfWeek != 3 {
		t.Errorf("second rule day = %d, want 3", sent[1].DayOfWeek)
	}
}

func TestSaveRejectsInvalidHoursLocally(t *testing.T) {
	api := &fakeAvailabilityAPI{}
	editor := NewScheduleEditor(api)
	editor.SetDayActive(1, true)
	editor.SetDayHours(1, "morning", "17:00")
	editor.SetDayActive(2, true)
	editor.SetDayHours(2, "17:00", "09:00") // inverted window

	err := editor.Save(context.Background())
	if !utils.IsValidationError(err) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	var ve *utils.ValidationError
	errors.As(err, &ve)
	want := map[string]bool{"Tuesday": true, "Wednesday": true}
	if len(ve.Fields) != len(want) {
		t.Fatalf("invalid days = %v, want %v", ve.Fields, want)
	}
	for _, name := range ve.Fields {
		if !want[name] {
			t.Errorf("unexpected invalid day %q", name)
		}
	}
	if api.setCalls != 0 {
		t.Error("rejected save must make no network call")
	}
}

func TestSaveFailurePreservesWeek(t *testing.T) {
	api := &fakeAvailabilityAPI{
		SetFunc: func(ctx context.Context, rules []models.AvailabilityRule) error {
			return &utils.NetworkError{Op: "POST /availability/set", Err: errors.New("timeout")}
		},
	}
	editor := NewScheduleEditor(api)
	editor.SetDayActive(0, true)

	if err := editor.Save(context.Background()); !utils.IsNetworkError(err) {
		t.Fatalf("expected NetworkError, got %v", err)
	}
	if !editor.Week()[0].Active {
		t.Error("editing state must survive a failed save")
	}
}

func TestDayIndexBoundsIgnored(t *testing.T) {
	editor := NewScheduleEditor(&fakeAvailabilityAPI{})
	editor.SetDayActive(7, true)
	editor.SetDayActive(-1, true)
	editor.SetDayHours(9, "08:00", "12:00")

	for _, day := range editor.Week() {
		if day.Active {
			t.Errorf("day %d unexpectedly active", day.DayOfWeek)
		}
	}
}
