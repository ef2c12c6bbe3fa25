package stubserver

import (
	"fmt"
	"sync"
	"time"

	"clinica/models"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// stubUser is a seeded account in the in-memory backend.
type stubUser struct {
	ID           string
	Email        string
	DisplayName  string
	PasswordHash []byte
	Role         models.Role
}

// memoryStore holds all stub backend state.
type memoryStore struct {
	mu           sync.Mutex
	users        map[string]*stubUser // by email
	appointments map[string]*models.Appointment
	settings     map[string]models.Settings           // by user id
	availability map[string][]models.AvailabilityRule // by doctor id
}

// Seeded accounts. Every account uses the same development password.
const SeedPassword = "clinica-dev-pass"

var seedAccounts = []struct {
	email, name string
	role        models.Role
}{
	{"patient@clinica.dev", "Pat Example", models.RolePatient},
	{"dr.garcia@clinica.dev", "Dr. Elena García", models.RoleProvider},
	{"dr.ruiz@clinica.dev", "Dr. Tomás Ruiz", models.RoleProvider},
	{"admin@clinica.dev", "Clinic Admin", models.RoleAdmin},
}

func newMemoryStore() *memoryStore {
	hash, err := bcrypt.GenerateFromPassword([]byte(SeedPassword), bcrypt.DefaultCost)
	if err != nil {
		panic(fmt.Sprintf("stubserver: failed to hash seed password: %v", err))
	}

	m := &memoryStore{
		users:        make(map[string]*stubUser),
		appointments: make(map[string]*models.Appointment),
		settings:     make(map[string]models.Settings),
		availability: make(map[string][]models.AvailabilityRule),
	}
	for _, acc := range seedAccounts {
		u := &stubUser{
			ID:           uuid.New().String(),
			Email:        acc.email,
			DisplayName:  acc.name,
			PasswordHash: hash,
			Role:         acc.role,
		}
		m.users[acc.email] = u
		if u.Role == models.RoleProvider {
			m.availability[u.ID] = defaultWeeklySchedule()
		}
	}
	return m
}

// defaultWeeklySchedule keeps seeded providers bookable on every weekday so
// fresh environments have slots immediately.
func defaultWeeklySchedule() []models.AvailabilityRule {
	rules := make([]models.AvailabilityRule, 0, 7)
	for day := 0; day < 7; day++ {
		rules = append(rules, models.AvailabilityRule{
			DayOfWeek: day,
			StartTime: "09:00:00",
			EndTime:   "17:00:00",
		})
	}
	return rules
}

func (m *memoryStore) createUser(req models.RegisterRequest) (*stubUser, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.users[req.Email]; exists {
		return nil, errEmailTaken
	}
	u := &stubUser{
		ID:           uuid.New().String(),
		Email:        req.Email,
		DisplayName:  req.FullName,
		PasswordHash: hash,
		Role:         models.RolePatient,
	}
	m.users[req.Email] = u
	return u, nil
}

func (m *memoryStore) changePassword(userID, oldPassword, newPassword string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.ID != userID {
			continue
		}
		if err := bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(oldPassword)); err != nil {
			return errWrongPassword
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		u.PasswordHash = hash
		return nil
	}
	return errNotFound
}

func (m *memoryStore) availabilityFor(doctorID string) []models.AvailabilityRule {
	m.mu.Lock()
	defer m.mu.Unlock()
	rules := make([]models.AvailabilityRule, len(m.availability[doctorID]))
	copy(rules, m.availability[doctorID])
	return rules
}

func (m *memoryStore) setAvailability(doctorID string, rules []models.AvailabilityRule) {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored := make([]models.AvailabilityRule, len(rules))
	copy(stored, rules)
	m.availability[doctorID] = stored
}

func (m *memoryStore) userByEmail(email string) *stubUser {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.users[email]
}

func (m *memoryStore) userByID(id string) *stubUser {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.ID == id {
			return u
		}
	}
	return nil
}

func (m *memoryStore) doctors() []models.Doctor {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Doctor
	for _, u := range m.users {
		if u.Role == models.RoleProvider {
			out = append(out, models.Doctor{ID: u.ID, DisplayName: u.DisplayName})
		}
	}
	return out
}

// slotTimesFromRule expands one working window into half-hour slot times.
func slotTimesFromRule(rule models.AvailabilityRule) []string {
	start, errStart := time.Parse("15:04:05", rule.StartTime)
	end, errEnd := time.Parse("15:04:05", rule.EndTime)
	if errStart != nil || errEnd != nil {
		return nil
	}

	var times []string
	for t := start; t.Before(end); t = t.Add(30 * time.Minute) {
		times = append(times, fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute()))
	}
	return times
}

// slotsFor generates the slot list for one (doctor, date) pair from the
// doctor's weekly availability. A day the doctor does not work yields no
// slots; a slot is unavailable when a non-cancelled appointment occupies it.
func (m *memoryStore) slotsFor(doctorID, date string) []models.Slot {
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return []models.Slot{}
	}
	dayOfWeek := models.DayOfWeekFor(day)

	m.mu.Lock()
	defer m.mu.Unlock()

	var times []string
	for _, rule := range m.availability[doctorID] {
		if rule.DayOfWeek == dayOfWeek {
			times = append(times, slotTimesFromRule(rule)...)
		}
	}

	taken := make(map[string]bool)
	for _, appt := range m.appointments {
		if appt.DoctorID != doctorID || appt.Status == models.StatusCancelled {
			continue
		}
		// ScheduledAt is "YYYY-MM-DDTHH:MM:SS".
		if len(appt.ScheduledAt) >= 16 && appt.ScheduledAt[:10] == date {
			taken[appt.ScheduledAt[11:16]] = true
		}
	}

	slots := make([]models.Slot, 0, len(times))
	for _, t := range times {
		slots = append(slots, models.Slot{Time: t, Available: !taken[t]})
	}
	return slots
}

func (m *memoryStore) createAppointment(patientID string, req models.CreateAppointmentRequest) (*models.Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, appt := range m.appointments {
		if appt.DoctorID == req.DoctorID && appt.ScheduledAt == req.ScheduledAt &&
			appt.Status != models.StatusCancelled {
			return nil, errSlotTaken
		}
	}

	appt := &models.Appointment{
		ID:          uuid.New().String(),
		DoctorID:    req.DoctorID,
		PatientID:   patientID,
		ScheduledAt: req.ScheduledAt,
		Reason:      req.Reason,
		Status:      models.StatusPending,
	}
	m.appointments[appt.ID] = appt
	out := *appt
	return &out, nil
}

func (m *memoryStore) appointment(id string) *models.Appointment {
	m.mu.Lock()
	defer m.mu.Unlock()
	if appt, ok := m.appointments[id]; ok {
		out := *appt
		return &out
	}
	return nil
}

func (m *memoryStore) appointmentsForPatient(patientID string) []models.Appointment {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Appointment{}
	for _, appt := range m.appointments {
		if appt.PatientID == patientID {
			out = append(out, *appt)
		}
	}
	return out
}

func (m *memoryStore) allAppointments() []models.Appointment {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Appointment{}
	for _, appt := range m.appointments {
		out = append(out, *appt)
	}
	return out
}

func (m *memoryStore) appointmentsForDoctor(doctorID string) []models.Appointment {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Appointment{}
	for _, appt := range m.appointments {
		if appt.DoctorID == doctorID {
			out = append(out, *appt)
		}
	}
	return out
}

func (m *memoryStore) updateAppointment(id string, mutate func(*models.Appointment) error) (*models.Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	appt, ok := m.appointments[id]
	if !ok {
		return nil, errNotFound
	}
	if err := mutate(appt); err != nil {
		return nil, err
	}
	out := *appt
	return &out, nil
}

func (m *memoryStore) settingsFor(userID string) models.Settings {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.settings[userID]
}

func (m *memoryStore) setSettings(userID string, s models.Settings) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.settings[userID] = s
}
