package appointment

import (
	"context"
	"errors"
	"testing"

	"clinica/models"
	"clinica/utils"
)

// Compile-time check that the implementation satisfies the interface.
var _ LifecycleService = (*DefaultLifecycleService)(nil)

// fakeLifecycleAPI is a LifecycleAPI with func fields and call counters.
type fakeLifecycleAPI struct {
	UpdateStatusFunc func(ctx context.Context, id string, req models.UpdateStatusRequest) (*models.Appointment, error)
	DeleteFunc       func(ctx context.Context, id string) error

	patchCalls  int
	deleteCalls int
}

var _ LifecycleAPI = (*fakeLifecycleAPI)(nil)

func (f *fakeLifecycleAPI) UpdateAppointmentStatus(ctx context.Context, id string, req models.UpdateStatusRequest) (*models.Appointment, error) {
	f.patchCalls++
	if f.UpdateStatusFunc != nil {
		return f.UpdateStatusFunc(ctx, id, req)
	}
	return nil, errors.New("UpdateStatusFunc not set")
}

func (f *fakeLifecycleAPI) DeleteAppointment(ctx context.Context, id string) error {
	f.deleteCalls++
	if f.DeleteFunc != nil {
		return f.DeleteFunc(ctx, id)
	}
	return nil
}

func (f *fakeLifecycleAPI) ListMyAppointments(ctx context.Context) ([]models.Appointment, error) {
	return nil, nil
}

func (f *fakeLifecycleAPI) ListAllAppointments(ctx context.Context) ([]models.Appointment, error) {
	return nil, nil
}

func pendingAppointment() models.Appointment {
	return models.Appointment{
		ID:          "a1",
		DoctorID:    "doc-1",
		PatientID:   "pat-1",
		ScheduledAt: "2024-03-10T09:00:00",
		Reason:      "checkup",
		Status:      models.StatusPending,
	}
}

func TestConfirmByOwningProvider(t *testing.T) {
	api := &fakeLifecycleAPI{
		UpdateStatusFunc: func(ctx context.Context, id string, req models.UpdateStatusRequest) (*models.Appointment, error) {
			if req.StatusID != models.StatusIDConfirmed {
				t.Errorf("statusId = %d, want confirmed", req.StatusID)
			}
			updated := pendingAppointment()
			updated.Status = models.StatusConfirmed
			return &updated, nil
		},
	}
	svc := NewLifecycleService(api)

	got, err := svc.Confirm(context.Background(),
		Caller{UserID: "doc-1", Role: models.RoleProvider}, pendingAppointment())
	if err != nil {
		t.Fatalf("Confirm: %v", err)
	}
	if got.Status != models.StatusConfirmed {
		t.Errorf("status = %s, want confirmed", got.Status)
	}
}

func TestConfirmPermissionRules(t *testing.T) {
	cases := []struct {
		name   string
		caller Caller
	}{
		{"patient", Caller{UserID: "pat-1", Role: models.RolePatient}},
		{"admin", Caller{UserID: "adm-1", Role: models.RoleAdmin}},
		{"other provider", Caller{UserID: "doc-2", Role: models.RoleProvider}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			api := &fakeLifecycleAPI{}
			svc := NewLifecycleService(api)

			_, err := svc.Confirm(context.Background(), tc.caller, pendingAppointment())
			var pe *PermissionError
			if !errors.As(err, &pe) {
				t.Fatalf("expected PermissionError, got %v", err)
			}
			if api.patchCalls != 0 {
				t.Errorf("patch calls = %d, want 0", api.patchCalls)
			}
		})
	}
}

func TestConfirmRequiresPendingStatus(t *testing.T) {
	svc := NewLifecycleService(&fakeLifecycleAPI{})
	appt := pendingAppointment()
	appt.Status = models.StatusCancelled

	_, err := svc.Confirm(context.Background(),
		Caller{UserID: "doc-1", Role: models.RoleProvider}, appt)
	var te *TransitionError
	if !errors.As(err, &te) {
		t.Fatalf("expected TransitionError, got %v", err)
	}
}

func TestPatientCancelPendingWithoutReason(t *testing.T) {
	api := &fakeLifecycleAPI{}
	svc := NewLifecycleService(api)

	got, err := svc.Cancel(context.Background(),
		Caller{UserID: "pat-1", Role: models.RolePatient}, pendingAppointment(), "")
	if err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	if api.deleteCalls != 1 {
		t.Errorf("delete calls = %d, want 1", api.deleteCalls)
	}
	if api.patchCalls != 0 {
		t.Errorf("patch calls = %d, want 0 on the patient path", api.patchCalls)
	}
	if got.Status != models.StatusCancelled {
		t.Errorf("status = %s, want cancelled", got.Status)
	}
	if got.CancellationReason != "" {
		t.Errorf("cancellationReason = %q, want absent", got.CancellationReason)
	}
}

func TestPatientCannotCancelConfirmed(t *testing.T) {
	svc := NewLifecycleService(&fakeLifecycleAPI{})
	appt := pendingAppointment()
	appt.Status = models.StatusConfirmed

	_, err := svc.Cancel(context.Background(),
		Caller{UserID: "pat-1", Role: models.RolePatient}, appt, "")
	var te *TransitionError
	if !errors.As(err, &te) {
		t.Fatalf("expected TransitionError, got %v", err)
	}
}

func TestProviderCancelRequiresReason(t *testing.T) {
	api := &fakeLifecycleAPI{}
	svc := NewLifecycleService(api)

	_, err := svc.Cancel(context.Background(),
		Caller{UserID: "doc-1", Role: models.RoleProvider}, pendingAppointment(), "")
	if !utils.IsValidationError(err) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if api.patchCalls != 0 || api.deleteCalls != 0 {
		t.Error("rejected cancel must make no network call")
	}
}

func TestProviderCancelWithReason(t *testing.T) {
	api := &fakeLifecycleAPI{
		UpdateStatusFunc: func(ctx context.Context, id string, req models.UpdateStatusRequest) (*models.Appointment, error) {
			if req.StatusID != models.StatusIDCancelled {
				t.Errorf("statusId = %d, want cancelled", req.StatusID)
			}
			if req.CancellationReason != "doctor unavailable" {
				t.Errorf("reason = %q", req.CancellationReason)
			}
			updated := pendingAppointment()
			updated.Status = models.StatusCancelled
			updated.CancellationReason = req.CancellationReason
			return &updated, nil
		},
	}
	svc := NewLifecycleService(api)

	appt := pendingAppointment()
	appt.Status = models.StatusConfirmed
	got, err := svc.Cancel(context.Background(),
		Caller{UserID: "doc-1", Role: models.RoleProvider}, appt, "doctor unavailable")
	if err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	if got.Status != models.StatusCancelled || got.CancellationReason != "doctor unavailable" {
		t.Errorf("unexpected appointment: %+v", got)
	}
}

func TestProviderCannotCancelTerminal(t *testing.T) {
	svc := NewLifecycleService(&fakeLifecycleAPI{})
	appt := pendingAppointment()
	appt.Status = models.StatusCompleted

	_, err := svc.Cancel(context.Background(),
		Caller{UserID: "doc-1", Role: models.RoleProvider}, appt, "too late")
	var te *TransitionError
	if !errors.As(err, &te) {
		t.Fatalf("expected TransitionError, got %v", err)
	}
}

func TestCancelFailureKeepsPriorState(t *testing.T) {
	api := &fakeLifecycleAPI{
		DeleteFunc: func(ctx context.Context, id string) error {
			return &utils.NetworkError{Op: "DELETE /appointments/a1", Err: errors.New("timeout")}
		},
	}
	svc := NewLifecycleService(api)

	appt := pendingAppointment()
	got, err := svc.Cancel(context.Background(),
		Caller{UserID: "pat-1", Role: models.RolePatient}, appt, "")
	if !utils.IsNetworkError(err) {
		t.Fatalf("expected NetworkError, got %v", err)
	}
	if got != nil {
		t.Error("no appointment should be returned on failure")
	}
	// The caller's copy is untouched; nothing was mutated optimistically.
	if appt.Status != models.StatusPending {
		t.Errorf("status = %s, want pending", appt.Status)
	}
}

func TestRebookSeedsNewDraft(t *testing.T) {
	svc := NewLifecycleService(&fakeLifecycleAPI{})

	appt := pendingAppointment()
	appt.Status = models.StatusCancelled
	seed := svc.Rebook(appt)
	if seed.DoctorID != "doc-1" || seed.Reason != "checkup" {
		t.Errorf("seed = %+v, want doctor doc-1 and reason checkup", seed)
	}
}
