package services

import "github.com/hervital/hervital/internal/models"

type MeditationStore interface {
	ListMeditationSessions() ([]*models.MeditationSession, error)
	FeaturedMeditationSession() (*models.MeditationSession, error)
}

// MeditationService reads the seeded guided-meditation library.
type MeditationService struct {
	store MeditationStore
}

func NewMeditationService(store MeditationStore) *MeditationService {
	return &MeditationService{store: store}
}

func (s *MeditationService) Sessions() ([]*models.MeditationSession, error) {
	return s.store.ListMeditationSessions()
}

// Featured returns the highlighted session, or nil when none is flagged.
func (s *MeditationService) Featured() (*models.MeditationSession, error) {
	return s.store.FeaturedMeditationSession()
}
