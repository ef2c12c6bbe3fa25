package booking

import (
	"context"
	"fmt"
	"time"

	"clinica/models"
	"clinica/utils"

	"go.uber.org/zap"
)

// NewWorkflow creates a workflow instance. The date defaults to today so the
// first slot fetch after doctor selection has a complete (doctor, date) pair.
func NewWorkflow(api SchedulingAPI, seed Seed) *DefaultBookingWorkflow {
	return &DefaultBookingWorkflow{
		API:   api,
		state: StateSelectingDoctor,
		draft: models.AppointmentDraft{
			DoctorID: seed.DoctorID,
			Date:     utils.LocalDateString(time.Now()),
			Reason:   seed.Reason,
		},
	}
}

// LoadDoctors fetches the directory once per workflow instance. With a seeded
// doctor (rescheduling) the seed stays selected; otherwise the first doctor
// returned becomes the default selection. A fetch failure is retryable and
// leaves the workflow in StateSelectingDoctor.
func (w *DefaultBookingWorkflow) LoadDoctors(ctx context.Context) ([]models.Doctor, error) {
	w.mu.Lock()
	if w.doctorsLoaded {
		doctors := w.doctors
		w.mu.Unlock()
		return doctors, nil
	}
	w.mu.Unlock()

	doctors, err := w.API.ListDoctors(ctx)
	if err != nil {
		utils.GetLogger().Warn("Doctor directory fetch failed", zap.Error(err))
		return nil, err
	}

	w.mu.Lock()
	w.doctors = doctors
	w.doctorsLoaded = true
	if w.draft.DoctorID == "" && len(doctors) > 0 {
		w.draft.DoctorID = doctors[0].ID
	}
	key, fetch := w.beginSlotFetchLocked()
	w.mu.Unlock()

	w.notify()
	if fetch {
		go w.fetchSlots(ctx, key)
	}
	return doctors, nil
}

// SelectDoctor changes the selected doctor. Any previous slot list and slot
// selection are invalidated and a fresh fetch is started for the new pair.
func (w *DefaultBookingWorkflow) SelectDoctor(ctx context.Context, doctorID string) {
	w.mu.Lock()
	if doctorID == "" || doctorID == w.draft.DoctorID {
		w.mu.Unlock()
		return
	}
	w.draft.DoctorID = doctorID
	key, fetch := w.beginSlotFetchLocked()
	w.mu.Unlock()

	w.notify()
	if fetch {
		go w.fetchSlots(ctx, key)
	}
}

// SelectDate changes the selected calendar date. The date is taken from the
// time's own local components, never from a UTC conversion.
func (w *DefaultBookingWorkflow) SelectDate(ctx context.Context, date time.Time) {
	dateStr := utils.LocalDateString(date)

	w.mu.Lock()
	if dateStr == w.draft.Date {
		w.mu.Unlock()
		return
	}
	w.draft.Date = dateStr
	key, fetch := w.beginSlotFetchLocked()
	w.mu.Unlock()

	w.notify()
	if fetch {
		go w.fetchSlots(ctx, key)
	}
}

// beginSlotFetchLocked discards the current slot list and slot selection and
// returns the key a new fetch should run for. Callers hold w.mu.
func (w *DefaultBookingWorkflow) beginSlotFetchLocked() (models.SlotKey, bool) {
	w.slots = nil
	w.slotsErr = nil
	w.draft.SlotTime = ""
	if w.draft.DoctorID == "" || w.draft.Date == "" {
		w.state = StateSelectingDoctor
		return models.SlotKey{}, false
	}
	w.state = StateFetchingSlots
	return models.SlotKey{DoctorID: w.draft.DoctorID, Date: w.draft.Date}, true
}

// fetchSlots runs one slot fetch for the (doctor, date) pair it was issued
// for. A response whose origin no longer matches the current selection when
// it arrives is discarded; superseding fetches never cancel each other, they
// are filtered on arrival.
func (w *DefaultBookingWorkflow) fetchSlots(ctx context.Context, key models.SlotKey) {
	slots, err := w.API.GetSlots(ctx, key)

	w.mu.Lock()
	current := models.SlotKey{DoctorID: w.draft.DoctorID, Date: w.draft.Date}
	if current != key {
		w.mu.Unlock()
		utils.GetLogger().Debug("Discarding stale slot response",
			zap.String("fetchedDoctor", key.DoctorID), zap.String("fetchedDate", key.Date),
			zap.String("currentDoctor", current.DoctorID), zap.String("currentDate", current.Date))
		return
	}

	if err != nil {
		w.slots = nil
		w.slotsErr = err
		w.state = StateSelectingDate
		w.mu.Unlock()
		utils.GetLogger().Warn("Slot fetch failed",
			zap.String("doctorId", key.DoctorID), zap.String("date", key.Date), zap.Error(err))
		w.notify()
		return
	}

	w.slots = models.AvailableSlots(slots)
	w.slotsErr = nil
	w.state = StateSlotsReady
	w.mu.Unlock()
	w.notify()
}

// SelectSlot records the chosen slot time. It is a no-op unless the time is
// in the current available list; the engine does not trust the UI to have
// filtered correctly.
func (w *DefaultBookingWorkflow) SelectSlot(slotTime string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.state != StateSlotsReady {
		return false
	}
	for _, s := range w.slots {
		if s.Time == slotTime {
			w.draft.SlotTime = slotTime
			return true
		}
	}
	return false
}

func (w *DefaultBookingWorkflow) SetReason(reason string) {
	w.mu.Lock()
	w.draft.Reason = reason
	w.mu.Unlock()
}

// Submit validates the draft locally, then submits it. Validation failures
// make no network call. Submission failures preserve the draft so the user
// can retry without re-entering anything; a backend-provided rejection
// reason is surfaced verbatim.
func (w *DefaultBookingWorkflow) Submit(ctx context.Context) (*models.Appointment, error) {
	w.mu.Lock()
	draft := w.draft
	if missing := draft.MissingFields(); len(missing) > 0 {
		w.mu.Unlock()
		return nil, &utils.ValidationError{Fields: missing}
	}

	scheduledAt, err := utils.CombineLocalDateTime(draft.Date, draft.SlotTime)
	if err != nil {
		w.mu.Unlock()
		return nil, fmt.Errorf("build scheduled time: %w", err)
	}

	w.state = StateSubmitting
	w.mu.Unlock()
	w.notify()

	appt, err := w.API.CreateAppointment(ctx, models.CreateAppointmentRequest{
		DoctorID:    draft.DoctorID,
		Reason:      draft.Reason,
		ScheduledAt: scheduledAt,
	})

	w.mu.Lock()
	if err != nil {
		w.state = StateSubmissionFailed
		w.mu.Unlock()
		utils.GetLogger().Warn("Appointment submission failed",
			zap.String("doctorId", draft.DoctorID), zap.String("scheduledAt", scheduledAt), zap.Error(err))
		w.notify()
		return nil, err
	}
	w.state = StateSubmitted
	w.mu.Unlock()

	utils.GetLogger().Info("Appointment created",
		zap.String("appointmentId", appt.ID), zap.String("scheduledAt", appt.ScheduledAt))
	w.notify()
	return appt, nil
}

func (w *DefaultBookingWorkflow) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

func (w *DefaultBookingWorkflow) Draft() models.AppointmentDraft {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.draft
}

func (w *DefaultBookingWorkflow) Doctors() []models.Doctor {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.doctors
}

func (w *DefaultBookingWorkflow) Slots() []models.Slot {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]models.Slot, len(w.slots))
	copy(out, w.slots)
	return out
}

func (w *DefaultBookingWorkflow) SlotsError() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.slotsErr
}

// Subscribe registers a state-change listener. Listeners run outside the
// workflow lock and may call accessors.
func (w *DefaultBookingWorkflow) Subscribe(fn func(State)) {
	w.mu.Lock()
	w.listeners = append(w.listeners, fn)
	w.mu.Unlock()
}

func (w *DefaultBookingWorkflow) notify() {
	w.mu.Lock()
	state := w.state
	listeners := make([]func(State), len(w.listeners))
	copy(listeners, w.listeners)
	w.mu.Unlock()

	for _, fn := range listeners {
		fn(state)
	}
}
