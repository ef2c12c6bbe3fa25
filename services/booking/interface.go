package booking

import (
	"context"
	"sync"
	"time"

	"clinica/models"
)

// State is the booking workflow's position in its state machine.
type State string

const (
	StateSelectingDoctor  State = "selectingDoctor"
	StateSelectingDate    State = "selectingDate"
	StateFetchingSlots    State = "fetchingSlots"
	StateSlotsReady       State = "slotsReady"
	StateSubmitting       State = "submitting"
	StateSubmitted        State = "submitted"
	StateSubmissionFailed State = "submissionFailed"
)

// Seed pre-fills a new workflow instance, used when rebooking a cancelled
// appointment with the same doctor and reason.
type Seed struct {
	DoctorID string
	Reason   string
}

// SchedulingAPI is the slice of the remote API the workflow needs.
type SchedulingAPI interface {
	ListDoctors(ctx context.Context) ([]models.Doctor, error)
	GetSlots(ctx context.Context, key models.SlotKey) ([]models.Slot, error)
	CreateAppointment(ctx context.Context, req models.CreateAppointmentRequest) (*models.Appointment, error)
}

// BookingWorkflow coordinates doctor selection, date selection and slot
// fetch/selection into exactly one valid appointment-create request.
type BookingWorkflow interface {
	LoadDoctors(ctx context.Context) ([]models.Doctor, error)
	SelectDoctor(ctx context.Context, doctorID string)
	SelectDate(ctx context.Context, date time.Time)
	SelectSlot(slotTime string) bool
	SetReason(reason string)
	Submit(ctx context.Context) (*models.Appointment, error)

	State() State
	Draft() models.AppointmentDraft
	Doctors() []models.Doctor
	Slots() []models.Slot
	SlotsError() error
	Subscribe(fn func(State))
}

// DefaultBookingWorkflow is the production implementation.
type DefaultBookingWorkflow struct {
	API SchedulingAPI

	mu            sync.Mutex
	state         State
	doctors       []models.Doctor
	doctorsLoaded bool
	draft         models.AppointmentDraft
	slots         []models.Slot
	slotsErr      error
	listeners     []func(State)
}
