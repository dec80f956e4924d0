package services

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hervital/hervital/internal/models"
)

type ReminderStore interface {
	GetUser(id string) (*models.User, error)
	InsertReminder(r *models.Reminder) error
	ListReminders(userID string) ([]*models.Reminder, error)
}

type ReminderService struct {
	store ReminderStore
	now   func() time.Time
	idGen func() string
}

func NewReminderService(store ReminderStore) *ReminderService {
	return &ReminderService{
		store: store,
		now:   func() time.Time { return time.Now().UTC() },
		idGen: uuid.NewString,
	}
}

type CreateReminderInput struct {
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	RemindAt    time.Time `json:"reminder_time"`
	Type        string    `json:"type"`
	IsRecurring bool      `json:"is_recurring,omitempty"`
	Frequency   string    `json:"frequency,omitempty"`
}

func (s *ReminderService) Create(userID string, in CreateReminderInput) (*models.Reminder, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, NewUnauthorizedError("user required")
	}
	if strings.TrimSpace(in.Title) == "" {
		return nil, NewInvalidError("title required")
	}
	if in.RemindAt.IsZero() {
		return nil, NewInvalidError("reminder_time required")
	}
	switch in.Type {
	case "appointment", "medication", "meditation":
	default:
		return nil, NewInvalidError("type must be appointment, medication or meditation")
	}
	if in.IsRecurring {
		switch in.Frequency {
		case "daily", "weekly", "monthly":
		default:
			return nil, NewInvalidError("frequency must be daily, weekly or monthly")
		}
	}
	u, err := s.store.GetUser(userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, NewReferentialError("user not found")
	}
	r := &models.Reminder{
		ID:          s.idGen(),
		UserID:      userID,
		Title:       strings.TrimSpace(in.Title),
		Description: in.Description,
		RemindAt:    in.RemindAt.UTC(),
		Type:        in.Type,
		IsRecurring: in.IsRecurring,
		Frequency:   in.Frequency,
		CreatedAt:   s.now(),
	}
	if err := s.store.InsertReminder(r); err != nil {
		return nil, err
	}
	return r, nil
}

// List returns the user's reminders ordered by reminder time.
func (s *ReminderService) List(userID string) ([]*models.Reminder, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, NewUnauthorizedError("user required")
	}
	return s.store.ListReminders(userID)
}
