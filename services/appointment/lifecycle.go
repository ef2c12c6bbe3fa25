package appointment

import (
	"context"

	"clinica/models"
	"clinica/services/booking"
	"clinica/utils"

	"go.uber.org/zap"
)

// NewLifecycleService wires a lifecycle controller over the given API.
func NewLifecycleService(api LifecycleAPI) *DefaultLifecycleService {
	return &DefaultLifecycleService{API: api}
}

// Confirm moves a pending appointment to confirmed. Only the provider who
// owns the appointment may confirm it.
func (s *DefaultLifecycleService) Confirm(ctx context.Context, caller Caller, appt models.Appointment) (*models.Appointment, error) {
	if caller.Role != models.RoleProvider || caller.UserID != appt.DoctorID {
		return nil, &PermissionError{Action: "confirm", Reason: "only the owning provider may confirm an appointment"}
	}
	if appt.Status != models.StatusPending {
		return nil, &TransitionError{From: string(appt.Status), Action: "confirm"}
	}

	updated, err := s.API.UpdateAppointmentStatus(ctx, appt.ID, models.UpdateStatusRequest{
		StatusID: models.StatusIDConfirmed,
	})
	if err != nil {
		return nil, err
	}

	utils.GetLogger().Info("Appointment confirmed", zap.String("appointmentId", updated.ID))
	return updated, nil
}

// Cancel requests cancellation. The owning patient may cancel while the
// appointment is still pending, with no reason required; the owning provider
// may cancel at any non-terminal status but must give a non-empty reason.
func (s *DefaultLifecycleService) Cancel(ctx context.Context, caller Caller, appt models.Appointment, reason string) (*models.Appointment, error) {
	logger := utils.GetLogger()

	switch caller.Role {
	case models.RolePatient:
		if caller.UserID != appt.PatientID {
			return nil, &PermissionError{Action: "cancel", Reason: "patients may only cancel their own appointments"}
		}
		if appt.Status != models.StatusPending {
			return nil, &TransitionError{From: string(appt.Status), Action: "cancel"}
		}
		if err := s.API.DeleteAppointment(ctx, appt.ID); err != nil {
			return nil, err
		}
		// The delete endpoint returns no body; reflect the backend's
		// resulting state. No cancellation reason is attached on this path.
		cancelled := appt
		cancelled.Status = models.StatusCancelled
		cancelled.CancellationReason = ""
		logger.Info("Appointment cancelled by patient", zap.String("appointmentId", appt.ID))
		return &cancelled, nil

	case models.RoleProvider:
		if caller.UserID != appt.DoctorID {
			return nil, &PermissionError{Action: "cancel", Reason: "providers may only cancel their own appointments"}
		}
		if appt.Status.Terminal() {
			return nil, &TransitionError{From: string(appt.Status), Action: "cancel"}
		}
		if reason == "" {
			return nil, utils.NewValidationError("cancellationReason")
		}
		updated, err := s.API.UpdateAppointmentStatus(ctx, appt.ID, models.UpdateStatusRequest{
			StatusID:           models.StatusIDCancelled,
			CancellationReason: reason,
		})
		if err != nil {
			return nil, err
		}
		logger.Info("Appointment cancelled by provider",
			zap.String("appointmentId", updated.ID), zap.String("reason", reason))
		return updated, nil
	}

	return nil, &PermissionError{Action: "cancel", Reason: "role may not cancel appointments"}
}

// Rebook seeds a fresh booking workflow with the cancelled appointment's
// doctor and reason. This produces a new appointment, never a reopened one.
func (s *DefaultLifecycleService) Rebook(appt models.Appointment) booking.Seed {
	return booking.Seed{DoctorID: appt.DoctorID, Reason: appt.Reason}
}

// ListMine returns the caller's appointments (patient view).
func (s *DefaultLifecycleService) ListMine(ctx context.Context) ([]models.Appointment, error) {
	return s.API.ListMyAppointments(ctx)
}

// ListAll returns the full schedule visible to the caller (provider view).
func (s *DefaultLifecycleService) ListAll(ctx context.Context) ([]models.Appointment, error) {
	return s.API.ListAllAppointments(ctx)
}
