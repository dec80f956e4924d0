package services

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hervital/hervital/internal/models"
)

type AppointmentStore interface {
	GetUser(id string) (*models.User, error)
	InsertAppointment(a *models.Appointment) error
	ListAppointments(userID string) ([]*models.Appointment, error)
	ListClinics() ([]*models.Clinic, error)
}

const defaultAppointmentMinutes = 45

type AppointmentService struct {
	store AppointmentStore
	now   func() time.Time
	idGen func() string
}

func NewAppointmentService(store AppointmentStore) *AppointmentService {
	return &AppointmentService{
		store: store,
		now:   func() time.Time { return time.Now().UTC() },
		idGen: uuid.NewString,
	}
}

// CreateAppointmentInput carries the sanitized handler payload.
type CreateAppointmentInput struct {
	ClinicID   string    `json:"clinic_id,omitempty"`
	DoctorName string    `json:"doctor_name,omitempty"`
	Date       time.Time `json:"appointment_date"`
	Duration   int       `json:"duration,omitempty"`
	Type       string    `json:"type"`
	Notes      string    `json:"notes,omitempty"`
}

func (s *AppointmentService) Create(userID string, in CreateAppointmentInput) (*models.Appointment, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, NewUnauthorizedError("user required")
	}
	if in.Date.IsZero() {
		return nil, NewInvalidError("appointment_date required")
	}
	switch in.Type {
	case "clinic", "video":
	default:
		return nil, NewInvalidError("type must be clinic or video")
	}
	u, err := s.store.GetUser(userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, NewReferentialError("user not found")
	}
	duration := in.Duration
	if duration <= 0 {
		duration = defaultAppointmentMinutes
	}
	a := &models.Appointment{
		ID:         s.idGen(),
		UserID:     userID,
		ClinicID:   in.ClinicID,
		DoctorName: in.DoctorName,
		Date:       in.Date.UTC(),
		Duration:   duration,
		Type:       in.Type,
		Status:     "scheduled",
		Notes:      in.Notes,
		CreatedAt:  s.now(),
	}
	if err := s.store.InsertAppointment(a); err != nil {
		return nil, err
	}
	return a, nil
}

// List returns the user's appointments, newest appointment date first.
func (s *AppointmentService) List(userID string) ([]*models.Appointment, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, NewUnauthorizedError("user required")
	}
	return s.store.ListAppointments(userID)
}

func (s *AppointmentService) Clinics() ([]*models.Clinic, error) {
	return s.store.ListClinics()
}
