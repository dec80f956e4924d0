package services

import (
	"strings"
	"time"

	"github.com/hervital/hervital/internal/models"
)

type ProgressStore interface {
	GetUser(id string) (*models.User, error)
	GetProgress(userID string) (*models.UserProgress, error)
	UpsertProgress(p *models.UserProgress) error
}

// ProgressService accumulates meditation activity and maintains the
// day-streak counter.
type ProgressService struct {
	store ProgressStore
	now   func() time.Time
}

func NewProgressService(store ProgressStore) *ProgressService {
	return &ProgressService{
		store: store,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// Get returns the user's progress; users with no history get a zero record
// rather than an error.
func (s *ProgressService) Get(userID string) (*models.UserProgress, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, NewUnauthorizedError("user required")
	}
	p, err := s.store.GetProgress(userID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return &models.UserProgress{UserID: userID}, nil
	}
	return p, nil
}

// RecordMeditation adds one completed session of the given duration.
// Streak rules: a second session the same day keeps the streak, a session
// on the day after the last one extends it by one, anything later resets
// it to one.
func (s *ProgressService) RecordMeditation(userID string, minutes int) (*models.UserProgress, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, NewUnauthorizedError("user required")
	}
	if minutes <= 0 {
		return nil, NewInvalidError("duration must be positive")
	}
	u, err := s.store.GetUser(userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, NewReferentialError("user not found")
	}

	now := s.now()
	p, err := s.store.GetProgress(userID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		p = &models.UserProgress{UserID: userID, Streak: 1}
	} else {
		p.Streak = nextStreak(p.Streak, p.LastMeditationDate, now)
	}
	p.TotalSessions++
	p.TotalMinutes += minutes
	p.LastMeditationDate = now
	p.UpdatedAt = now

	if err := s.store.UpsertProgress(p); err != nil {
		return nil, err
	}
	return p, nil
}

func nextStreak(current int, last, now time.Time) int {
	if last.IsZero() {
		return 1
	}
	lastDay := last.UTC().Truncate(24 * time.Hour)
	today := now.UTC().Truncate(24 * time.Hour)
	switch today.Sub(lastDay) {
	case 0:
		if current < 1 {
			return 1
		}
		return current
	case 24 * time.Hour:
		return current + 1
	default:
		return 1
	}
}
