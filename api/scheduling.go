package api

import (
	"context"
	"net/http"
	"net/url"

	"clinica/models"
)

// ListDoctors fetches the doctor directory.
func (c *Client) ListDoctors(ctx context.Context) ([]models.Doctor, error) {
	var doctors []models.Doctor
	if err := c.do(ctx, http.MethodGet, "/users/doctors", nil, nil, &doctors); err != nil {
		return nil, err
	}
	return doctors, nil
}

// GetSlots fetches the slot list for one (doctor, date) pair.
func (c *Client) GetSlots(ctx context.Context, key models.SlotKey) ([]models.Slot, error) {
	query := url.Values{}
	query.Set("doctor_id", key.DoctorID)
	query.Set("query_date", key.Date)

	var slots []models.Slot
	if err := c.do(ctx, http.MethodGet, "/availability/slots", query, nil, &slots); err != nil {
		return nil, err
	}
	return slots, nil
}

// CreateAppointment submits a completed draft. The returned appointment is
// the backend's canonical record.
func (c *Client) CreateAppointment(ctx context.Context, req models.CreateAppointmentRequest) (*models.Appointment, error) {
	var appt models.Appointment
	if err := c.do(ctx, http.MethodPost, "/appointments/", nil, req, &appt); err != nil {
		return nil, err
	}
	return &appt, nil
}

// ListMyAppointments returns the caller's own appointments.
func (c *Client) ListMyAppointments(ctx context.Context) ([]models.Appointment, error) {
	var appts []models.Appointment
	if err := c.do(ctx, http.MethodGet, "/appointments/me", nil, nil, &appts); err != nil {
		return nil, err
	}
	return appts, nil
}

// ListAllAppointments returns every appointment visible to the caller
// (provider schedule view).
func (c *Client) ListAllAppointments(ctx context.Context) ([]models.Appointment, error) {
	var appts []models.Appointment
	if err := c.do(ctx, http.MethodGet, "/appointments/all", nil, nil, &appts); err != nil {
		return nil, err
	}
	return appts, nil
}

// UpdateAppointmentStatus requests a lifecycle transition. The backend
// applies it authoritatively and returns the updated appointment.
func (c *Client) UpdateAppointmentStatus(ctx context.Context, appointmentID string, req models.UpdateStatusRequest) (*models.Appointment, error) {
	var appt models.Appointment
	if err := c.do(ctx, http.MethodPatch, "/appointments/"+appointmentID+"/status", nil, req, &appt); err != nil {
		return nil, err
	}
	return &appt, nil
}

// DeleteAppointment is the patient-initiated cancellation path.
func (c *Client) DeleteAppointment(ctx context.Context, appointmentID string) error {
	return c.do(ctx, http.MethodDelete, "/appointments/"+appointmentID, nil, nil, nil)
}
