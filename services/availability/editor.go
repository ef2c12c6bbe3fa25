package availability

import (
	"context"
	"time"

	"clinica/models"
	"clinica/utils"

	"go.uber.org/zap"
)

// NewScheduleEditor builds an editor with every day inactive on the default
// 09:00-17:00 window (12:00 close on weekends), matching a fresh provider
// account before any schedule has been saved.
func NewScheduleEditor(api AvailabilityAPI) *DefaultScheduleEditor {
	e := &DefaultScheduleEditor{API: api}
	for i := range e.week {
		end := "17:00"
		if i >= 5 {
			end = "12:00"
		}
		e.week[i] = Day{DayOfWeek: i, Name: DayNames[i], StartTime: "09:00", EndTime: end}
	}
	return e
}

// Load fetches the stored schedule and merges it into the week view. A day
// present in the response becomes active with its stored hours; days absent
// from the response are reset to inactive.
func (e *DefaultScheduleEditor) Load(ctx context.Context) ([]Day, error) {
	rules, err := e.API.GetMyAvailability(ctx)
	if err != nil {
		utils.GetLogger().Warn("Availability fetch failed", zap.Error(err))
		return nil, err
	}

	byDay := make(map[int]models.AvailabilityRule, len(rules))
	for _, r := range rules {
		byDay[r.DayOfWeek] = r
	}

	e.mu.Lock()
	for i := range e.week {
		if rule, ok := byDay[i]; ok {
			e.week[i].Active = true
			e.week[i].StartTime = clockMinutes(rule.StartTime)
			e.week[i].EndTime = clockMinutes(rule.EndTime)
		} else {
			e.week[i].Active = false
		}
	}
	week := e.week
	e.mu.Unlock()

	return week[:], nil
}

func (e *DefaultScheduleEditor) SetDayActive(dayOfWeek int, active bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if dayOfWeek < 0 || dayOfWeek > 6 {
		return
	}
	e.week[dayOfWeek].Active = active
}

func (e *DefaultScheduleEditor) SetDayHours(dayOfWeek int, start, end string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if dayOfWeek < 0 || dayOfWeek > 6 {
		return
	}
	e.week[dayOfWeek].StartTime = start
	e.week[dayOfWeek].EndTime = end
}

// Week returns a copy of the current editing state.
func (e *DefaultScheduleEditor) Week() []Day {
	e.mu.Lock()
	defer e.mu.Unlock()
	week := e.week
	return week[:]
}

// Save validates the active days and replaces the stored schedule with them.
// Invalid hours fail locally with a ValidationError naming the day; nothing
// is sent until every active day passes.
func (e *DefaultScheduleEditor) Save(ctx context.Context) error {
	e.mu.Lock()
	week := e.week
	e.mu.Unlock()

	var invalid []string
	rules := make([]models.AvailabilityRule, 0, len(week))
	for _, day := range week {
		if !day.Active {
			continue
		}
		start, errStart := time.Parse("15:04", day.StartTime)
		end, errEnd := time.Parse("15:04", day.EndTime)
		if errStart != nil || errEnd != nil || !start.Before(end) {
			invalid = append(invalid, day.Name)
			continue
		}
		rules = append(rules, models.AvailabilityRule{
			DayOfWeek: day.DayOfWeek,
			StartTime: day.StartTime + ":00",
			EndTime:   day.EndTime + ":00",
		})
	}
	if len(invalid) > 0 {
		return utils.NewValidationError(invalid...)
	}

	if err := e.API.SetAvailability(ctx, rules); err != nil {
		utils.GetLogger().Warn("Availability save failed", zap.Error(err))
		return err
	}

	utils.GetLogger().Info("Weekly availability saved", zap.Int("activeDays", len(rules)))
	return nil
}

// clockMinutes trims a stored "HH:MM:SS" time to the "HH:MM" editing form.
func clockMinutes(t string) string {
	if len(t) >= 5 {
		return t[:5]
	}
	return t
}
