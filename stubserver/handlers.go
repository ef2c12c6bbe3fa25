package stubserver

import (
	"errors"
	"net/http"
	"time"

	"clinica/models"
	"clinica/utils"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

var (
	errSlotTaken     = errors.New("the selected slot is no longer available")
	errNotFound      = errors.New("appointment not found")
	errEmailTaken    = errors.New("an account with this email already exists")
	errWrongPassword = errors.New("current password is incorrect")
)

func (s *Server) loginHandler(c *gin.Context) {
	email := c.PostForm("username")
	password := c.PostForm("password")
	if email == "" || password == "" {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "username and password are required"})
		return
	}

	user := s.store.userByEmail(email)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "Incorrect email or password"})
		return
	}
	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "Incorrect email or password"})
		return
	}

	token, err := utils.GenerateToken(user.ID, user.Role, 24*time.Hour)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to issue token"})
		return
	}

	c.JSON(http.StatusOK, models.LoginResponse{AccessToken: token, TokenType: "bearer"})
}

func (s *Server) registerHandler(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": err.Error()})
		return
	}

	user, err := s.store.createUser(req)
	if err == errEmailTaken {
		c.JSON(http.StatusConflict, gin.H{"detail": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to create account"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": user.ID, "email": user.Email})
}

func (s *Server) changePasswordHandler(c *gin.Context) {
	var req models.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": err.Error()})
		return
	}

	switch err := s.store.changePassword(callerID(c), req.OldPassword, req.NewPassword); err {
	case nil:
		c.JSON(http.StatusOK, gin.H{"detail": "Password updated"})
	case errWrongPassword:
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
	default:
		c.JSON(http.StatusNotFound, gin.H{"detail": "Unknown user"})
	}
}

func (s *Server) meHandler(c *gin.Context) {
	user := s.store.userByID(callerID(c))
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "Unknown user"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"id":        user.ID,
		"full_name": user.DisplayName,
		"email":     user.Email,
		"role":      user.Role,
	})
}

func (s *Server) doctorsHandler(c *gin.Context) {
	c.JSON(http.StatusOK, s.store.doctors())
}

func (s *Server) slotsHandler(c *gin.Context) {
	doctorID := c.Query("doctor_id")
	date := c.Query("query_date")
	if doctorID == "" || date == "" {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "doctor_id and query_date are required"})
		return
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "query_date must be YYYY-MM-DD"})
		return
	}
	c.JSON(http.StatusOK, s.store.slotsFor(doctorID, date))
}

func (s *Server) createAppointmentHandler(c *gin.Context) {
	var req models.CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": err.Error()})
		return
	}
	// ScheduledAt is local wall-clock, no offset.
	if _, err := time.Parse("2006-01-02T15:04:05", req.ScheduledAt); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "scheduled_at must be YYYY-MM-DDTHH:MM:SS"})
		return
	}

	appt, err := s.store.createAppointment(callerID(c), req)
	if err != nil {
		c.JSON(http.StatusConflict, gin.H{"detail": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, appt)
}

func (s *Server) myAppointmentsHandler(c *gin.Context) {
	c.JSON(http.StatusOK, s.store.appointmentsForPatient(callerID(c)))
}

func (s *Server) allAppointmentsHandler(c *gin.Context) {
	switch callerRole(c) {
	case string(models.RoleProvider):
		c.JSON(http.StatusOK, s.store.appointmentsForDoctor(callerID(c)))
	case string(models.RoleAdmin):
		c.JSON(http.StatusOK, s.store.allAppointments())
	default:
		c.JSON(http.StatusForbidden, gin.H{"detail": "Providers only"})
	}
}

func (s *Server) getAvailabilityHandler(c *gin.Context) {
	if callerRole(c) != string(models.RoleProvider) {
		c.JSON(http.StatusForbidden, gin.H{"detail": "Providers only"})
		return
	}
	c.JSON(http.StatusOK, s.store.availabilityFor(callerID(c)))
}

func (s *Server) setAvailabilityHandler(c *gin.Context) {
	if callerRole(c) != string(models.RoleProvider) {
		c.JSON(http.StatusForbidden, gin.H{"detail": "Providers only"})
		return
	}

	var rules []models.AvailabilityRule
	if err := c.ShouldBindJSON(&rules); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": err.Error()})
		return
	}
	for _, rule := range rules {
		if rule.DayOfWeek < 0 || rule.DayOfWeek > 6 {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "day_of_week must be 0 (Monday) through 6 (Sunday)"})
			return
		}
		start, errStart := time.Parse("15:04:05", rule.StartTime)
		end, errEnd := time.Parse("15:04:05", rule.EndTime)
		if errStart != nil || errEnd != nil || !start.Before(end) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "start_time and end_time must be HH:MM:SS with start before end"})
			return
		}
	}

	s.store.setAvailability(callerID(c), rules)
	c.JSON(http.StatusOK, rules)
}

func (s *Server) updateStatusHandler(c *gin.Context) {
	var req models.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": err.Error()})
		return
	}

	existing := s.store.appointment(c.Param("id"))
	if existing == nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": errNotFound.Error()})
		return
	}
	if callerRole(c) != string(models.RoleProvider) || callerID(c) != existing.DoctorID {
		c.JSON(http.StatusForbidden, gin.H{"detail": "Only the owning provider may change appointment status"})
		return
	}

	updated, err := s.store.updateAppointment(existing.ID, func(appt *models.Appointment) error {
		switch req.StatusID {
		case models.StatusIDConfirmed:
			if appt.Status != models.StatusPending {
				return errors.New("only pending appointments can be confirmed")
			}
			appt.Status = models.StatusConfirmed
			appt.CancellationReason = ""
		case models.StatusIDCancelled:
			if appt.Status.Terminal() {
				return errors.New("appointment is already closed")
			}
			if req.CancellationReason == "" {
				return errors.New("a cancellation reason is required")
			}
			appt.Status = models.StatusCancelled
			appt.CancellationReason = req.CancellationReason
		case models.StatusIDCompleted:
			if appt.Status != models.StatusConfirmed {
				return errors.New("only confirmed appointments can be completed")
			}
			appt.Status = models.StatusCompleted
			appt.CancellationReason = ""
		default:
			return errors.New("unknown status id")
		}
		return nil
	})
	if err != nil {
		c.JSON(http.StatusConflict, gin.H{"detail": err.Error()})
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (s *Server) deleteAppointmentHandler(c *gin.Context) {
	existing := s.store.appointment(c.Param("id"))
	if existing == nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": errNotFound.Error()})
		return
	}
	if callerRole(c) != string(models.RolePatient) || callerID(c) != existing.PatientID {
		c.JSON(http.StatusForbidden, gin.H{"detail": "Only the owning patient may cancel this way"})
		return
	}
	if existing.Status != models.StatusPending {
		c.JSON(http.StatusConflict, gin.H{"detail": "only pending appointments can be cancelled by the patient"})
		return
	}

	_, err := s.store.updateAppointment(existing.ID, func(appt *models.Appointment) error {
		appt.Status = models.StatusCancelled
		appt.CancellationReason = ""
		return nil
	})
	if err != nil {
		c.JSON(http.StatusConflict, gin.H{"detail": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) getSettingsHandler(c *gin.Context) {
	c.JSON(http.StatusOK, s.store.settingsFor(callerID(c)))
}

func (s *Server) putSettingsHandler(c *gin.Context) {
	var settings models.Settings
	if err := c.ShouldBindJSON(&settings); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": err.Error()})
		return
	}
	s.store.setSettings(callerID(c), settings)
	c.JSON(http.StatusOK, settings)
}
