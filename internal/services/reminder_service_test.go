package services

import (
	"testing"
	"time"

	"github.com/hervital/hervital/internal/models"
)

type stubReminderStore struct {
	users     map[string]*models.User
	reminders []*models.Reminder
}

func newStubReminderStore(userIDs ...string) *stubReminderStore {
	s := &stubReminderStore{users: map[string]*models.User{}}
	for _, id := range userIDs {
		s.users[id] = &models.User{ID: id}
	}
	return s
}

func (s *stubReminderStore) GetUser(id string) (*models.User, error) { return s.users[id], nil }

func (s *stubReminderStore) InsertReminder(r *models.Reminder) error {
	copy := *r
	s.reminders = append(s.reminders, &copy)
	return nil
}

func (s *stubReminderStore) ListReminders(userID string) ([]*models.Reminder, error) {
	out := []*models.Reminder{}
	for _, r := range s.reminders {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

func TestCreateReminder(t *testing.T) {
	store := newStubReminderStore("u1")
	svc := NewReminderService(store)

	at := time.Date(2026, 6, 1, 8, 0, 0, 0, time.UTC)
	r, err := svc.Create("u1", CreateReminderInput{
		Title:       "  Morning meds  ",
		RemindAt:    at,
		Type:        "medication",
		IsRecurring: true,
		Frequency:   "daily",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if r.Title != "Morning meds" {
		t.Fatalf("title=%q, want trimmed", r.Title)
	}
	if r.IsCompleted {
		t.Fatal("new reminder must not start completed")
	}
	list, err := svc.List("u1")
	if err != nil || len(list) != 1 {
		t.Fatalf("list=%v err=%v", list, err)
	}
}

func TestCreateReminderValidation(t *testing.T) {
	svc := NewReminderService(newStubReminderStore("u1"))
	at := time.Date(2026, 6, 1, 8, 0, 0, 0, time.UTC)

	cases := []struct {
		name     string
		userID   string
		in       CreateReminderInput
		wantCode ErrorCode
	}{
		{"missing user", "", CreateReminderInput{Title: "t", RemindAt: at, Type: "medication"}, ErrorUnauthorized},
		{"missing title", "u1", CreateReminderInput{RemindAt: at, Type: "medication"}, ErrorInvalid},
		{"missing time", "u1", CreateReminderInput{Title: "t", Type: "medication"}, ErrorInvalid},
		{"bad type", "u1", CreateReminderInput{Title: "t", RemindAt: at, Type: "party"}, ErrorInvalid},
		{"recurring without frequency", "u1", CreateReminderInput{Title: "t", RemindAt: at, Type: "meditation", IsRecurring: true}, ErrorInvalid},
		{"bad frequency", "u1", CreateReminderInput{Title: "t", RemindAt: at, Type: "meditation", IsRecurring: true, Frequency: "hourly"}, ErrorInvalid},
		{"unknown user", "ghost", CreateReminderInput{Title: "t", RemindAt: at, Type: "appointment"}, ErrorReferential},
	}
	for _, c := range cases {
		_, err := svc.Create(c.userID, c.in)
		se, ok := AsServiceError(err)
		if !ok || se.Code != c.wantCode {
			t.Fatalf("%s: err=%v, want %s", c.name, err, c.wantCode)
		}
	}
}

func TestCreateReminderOneShotIgnoresFrequency(t *testing.T) {
	svc := NewReminderService(newStubReminderStore("u1"))
	r, err := svc.Create("u1", CreateReminderInput{
		Title:    "Check-in",
		RemindAt: time.Date(2026, 6, 1, 8, 0, 0, 0, time.UTC),
		Type:     "appointment",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if r.IsRecurring {
		t.Fatal("one-shot reminder marked recurring")
	}
}
