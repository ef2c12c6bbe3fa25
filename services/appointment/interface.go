package appointment

import (
	"context"

	"clinica/models"
	"clinica/services/booking"
)

// Caller identifies who is requesting a transition, taken from the session
// snapshot at call start.
type Caller struct {
	UserID string
	Role   models.Role
}

// LifecycleAPI is the slice of the remote API the controller needs.
type LifecycleAPI interface {
	UpdateAppointmentStatus(ctx context.Context, appointmentID string, req models.UpdateStatusRequest) (*models.Appointment, error)
	DeleteAppointment(ctx context.Context, appointmentID string) error
	ListMyAppointments(ctx context.Context) ([]models.Appointment, error)
	ListAllAppointments(ctx context.Context) ([]models.Appointment, error)
}

// LifecycleService enforces which status transitions are legal for whom and
// drives their side effects. No operation mutates local state optimistically:
// on success the canonical appointment comes from the backend response, on
// failure the prior state is untouched.
type LifecycleService interface {
	Confirm(ctx context.Context, caller Caller, appt models.Appointment) (*models.Appointment, error)
	Cancel(ctx context.Context, caller Caller, appt models.Appointment, reason string) (*models.Appointment, error)
	Rebook(appt models.Appointment) booking.Seed
	ListMine(ctx context.Context) ([]models.Appointment, error)
	ListAll(ctx context.Context) ([]models.Appointment, error)
}

// DefaultLifecycleService is the production implementation.
type DefaultLifecycleService struct {
	API LifecycleAPI
}
