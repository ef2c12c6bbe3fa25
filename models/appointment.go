package models

// AppointmentStatus is the lifecycle state of an appointment. Transitions are
// requested by the client but authoritatively applied by the backend.
type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pending"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCancelled AppointmentStatus = "cancelled"
	StatusCompleted AppointmentStatus = "completed"
)

// Status ids used by the PATCH status endpoint.
const (
	StatusIDPending   = 1
	StatusIDConfirmed = 2
	StatusIDCancelled = 3
	StatusIDCompleted = 4
)

// StatusID maps a status to its wire id, or 0 for an unknown status.
func StatusID(s AppointmentStatus) int {
	switch s {
	case StatusPending:
		return StatusIDPending
	case StatusConfirmed:
		return StatusIDConfirmed
	case StatusCancelled:
		return StatusIDCancelled
	case StatusCompleted:
		return StatusIDCompleted
	}
	return 0
}

// Terminal reports whether no further transitions are allowed from s.
func (s AppointmentStatus) Terminal() bool {
	return s == StatusCancelled || s == StatusCompleted
}

// Appointment as returned by the backend. ScheduledAt is a local wall-clock
// timestamp string ("YYYY-MM-DDTHH:MM:SS", no UTC offset) interpreted in the
// clinic's own timezone.
type Appointment struct {
	ID                 string            `json:"id"`
	DoctorID           string            `json:"doctor_id"`
	PatientID          string            `json:"patient_id"`
	ScheduledAt        string            `json:"scheduled_at"`
	Reason             string            `json:"reason"`
	Status             AppointmentStatus `json:"status"`
	CancellationReason string            `json:"cancellation_reason,omitempty"`
}

// AppointmentDraft is the in-progress booking request owned by the booking
// workflow. It becomes a create request only once all four fields are set.
type AppointmentDraft struct {
	DoctorID string
	Date     string // "YYYY-MM-DD", local calendar date
	SlotTime string // "HH:MM"
	Reason   string
}

// MissingFields returns the names of the unset draft fields, in a fixed order.
func (d AppointmentDraft) MissingFields() []string {
	var missing []string
	if d.DoctorID == "" {
		missing = append(missing, "doctorId")
	}
	if d.Date == "" {
		missing = append(missing, "date")
	}
	if d.SlotTime == "" {
		missing = append(missing, "slotTime")
	}
	if d.Reason == "" {
		missing = append(missing, "reason")
	}
	return missing
}

// CreateAppointmentRequest is the POST /appointments payload.
type CreateAppointmentRequest struct {
	DoctorID    string `json:"doctor_id" binding:"required"`
	Reason      string `json:"reason" binding:"required"`
	ScheduledAt string `json:"scheduled_at" binding:"required"`
}

// UpdateStatusRequest is the PATCH /appointments/{id}/status payload.
type UpdateStatusRequest struct {
	StatusID           int    `json:"status_id" binding:"required"`
	CancellationReason string `json:"cancellation_reason,omitempty"`
}
