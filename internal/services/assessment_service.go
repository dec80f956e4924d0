package services

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/hervital/hervital/internal/models"
)

// AssessmentStore abstracts the persistence needed by AssessmentService.
// InsertResult must append a new record per call; results are never updated.
type AssessmentStore interface {
	GetUser(id string) (*models.User, error)
	InsertResult(r *models.AssessmentResult) error
	LatestResult(userID string) (*models.AssessmentResult, error)
}

// AssessmentService runs the questionnaire pipeline: score, recommend,
// persist. The catalog is injected so synthetic catalogs can drive tests.
type AssessmentService struct {
	store   AssessmentStore
	catalog []QuestionDefinition
	now     func() time.Time
	idGen   func() string

	mu       sync.Mutex
	sessions map[string]*assessmentSession
}

// sessionTTL bounds how long an abandoned wizard session is kept before
// lazy eviction reclaims it.
const sessionTTL = time.Hour

// assessmentSession holds answers for one in-progress pass. It lives only
// in memory and is discarded after submission; only the derived result is
// persisted. mu serializes the whole answer/step-back critical section so
// concurrent requests against one session cannot race on the answers map
// or the wizard position.
type assessmentSession struct {
	mu        sync.Mutex
	userID    string
	wizard    *Wizard
	answers   map[string]Answer
	createdAt time.Time
}

func NewAssessmentService(store AssessmentStore, catalog []QuestionDefinition) *AssessmentService {
	return &AssessmentService{
		store:    store,
		catalog:  catalog,
		now:      func() time.Time { return time.Now().UTC() },
		idGen:    uuid.NewString,
		sessions: map[string]*assessmentSession{},
	}
}

// Catalog returns the question definitions in catalog order.
func (s *AssessmentService) Catalog() []QuestionDefinition {
	return s.catalog
}

// QuestionView is the client-facing shape of a catalog entry. Choice scores
// and numeric bands stay server-side.
type QuestionView struct {
	ID       string       `json:"id"`
	Category string       `json:"category"`
	Prompt   string       `json:"prompt"`
	Kind     QuestionKind `json:"kind"`
	Choices  []ChoiceView `json:"choices,omitempty"`
}

type ChoiceView struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// QuestionViews strips scoring data from the catalog for display.
func (s *AssessmentService) QuestionViews() []QuestionView {
	out := make([]QuestionView, 0, len(s.catalog))
	for i := range s.catalog {
		q := &s.catalog[i]
		view := QuestionView{ID: q.ID, Category: q.Category, Prompt: q.Prompt, Kind: q.Kind}
		for _, c := range q.Choices {
			view.Choices = append(view.Choices, ChoiceView{Value: c.Value, Label: c.Label})
		}
		out = append(out, view)
	}
	return out
}

// Submit computes the score and recommendations for a full set of responses
// and persists the result. Everything is derived in memory before the single
// insert, so a storage failure never leaves a partial record.
func (s *AssessmentService) Submit(userID, category string, responses map[string]Answer) (*models.AssessmentResult, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, NewUnauthorizedError("user required")
	}
	if len(responses) == 0 {
		return nil, NewInvalidError("responses required")
	}
	if strings.TrimSpace(category) == "" {
		return nil, NewInvalidError("category required")
	}
	u, err := s.store.GetUser(userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, NewReferentialError("user not found")
	}

	score := ComputeRiskScore(responses, s.catalog)
	result := &models.AssessmentResult{
		ID:              s.idGen(),
		UserID:          userID,
		Responses:       s.snapshot(responses),
		RiskScore:       score,
		Category:        category,
		Recommendations: DeriveRecommendations(score),
		CreatedAt:       s.now(),
	}
	if err := s.store.InsertResult(result); err != nil {
		return nil, err
	}
	return result, nil
}

// snapshot denormalizes answers against the catalog so stored results stay
// stable if the catalog changes later. Unknown question IDs are dropped.
func (s *AssessmentService) snapshot(responses map[string]Answer) map[string]models.ResponseSnapshot {
	out := make(map[string]models.ResponseSnapshot, len(responses))
	for id, ans := range responses {
		q := FindQuestion(s.catalog, id)
		if q == nil {
			continue
		}
		out[id] = models.ResponseSnapshot{
			Question: q.Prompt,
			Answer:   answerLabel(q, ans),
			Category: q.Category,
			Score:    questionScore(q, ans),
		}
	}
	return out
}

// Latest returns the most recent result for a user, or nil when the user
// has no history. Absence is a normal outcome, not an error.
func (s *AssessmentService) Latest(userID string) (*models.AssessmentResult, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, NewUnauthorizedError("user required")
	}
	return s.store.LatestResult(userID)
}

// SessionState is the wizard position reported to the client after every
// session operation.
type SessionState struct {
	SessionID string        `json:"session_id"`
	Position  int           `json:"position"`
	Total     int           `json:"total"`
	Question  *QuestionView `json:"question,omitempty"`
	// Crisis is set immediately when a safety answer indicates risk,
	// regardless of how the assessment eventually scores.
	Crisis *CrisisNotice            `json:"crisis,omitempty"`
	Result *models.AssessmentResult `json:"result,omitempty"`
}

// StartSession opens a wizard session positioned at the first question.
func (s *AssessmentService) StartSession(userID string) (*SessionState, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, NewUnauthorizedError("user required")
	}
	u, err := s.store.GetUser(userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, NewReferentialError("user not found")
	}
	id := strings.ReplaceAll(s.idGen(), "-", "")[:12]
	sess := &assessmentSession{
		userID:    userID,
		wizard:    NewWizard(len(s.catalog)),
		answers:   map[string]Answer{},
		createdAt: s.now(),
	}
	// Build the state before publishing the session so no lock is needed.
	state := s.state(id, sess, nil, nil)
	s.mu.Lock()
	s.evictExpiredLocked()
	s.sessions[id] = sess
	s.mu.Unlock()
	return state, nil
}

// session resolves a live session for a user, sweeping expired ones on the
// way. The userID field is immutable after creation, so it is safe to read
// without the session lock.
func (s *AssessmentService) session(id, userID string) (*assessmentSession, error) {
	s.mu.Lock()
	s.evictExpiredLocked()
	sess := s.sessions[id]
	s.mu.Unlock()
	if sess == nil || sess.userID != userID {
		return nil, NewNotFoundError("session not found")
	}
	return sess, nil
}

// evictExpiredLocked drops sessions older than sessionTTL. Callers hold s.mu.
func (s *AssessmentService) evictExpiredLocked() {
	cutoff := s.now().Add(-sessionTTL)
	for id, sess := range s.sessions {
		if sess.createdAt.Before(cutoff) {
			delete(s.sessions, id)
		}
	}
}

// AnswerCurrent records the answer for the session's current question, runs
// the crisis check, and advances. Answering the last question submits the
// assessment and closes the session.
func (s *AssessmentService) AnswerCurrent(sessionID, userID string, ans Answer) (*SessionState, error) {
	sess, err := s.session(sessionID, userID)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	if sess.wizard.Done() {
		return nil, NewInvalidError("session already completed")
	}
	q := &s.catalog[sess.wizard.Pos()]
	sess.answers[q.ID] = ans

	// The safety rule fires now, at answer time, never at submission.
	crisis := CrisisCheck(s.catalog, q.ID, ans)

	sess.wizard.Advance()
	if !sess.wizard.Done() {
		return s.state(sessionID, sess, crisis, nil), nil
	}

	result, err := s.Submit(userID, "general", sess.answers)
	if err != nil {
		// keep the session so the client can resubmit after a storage failure
		sess.wizard.Retreat()
		return nil, err
	}
	s.mu.Lock()
	delete(s.sessions, sessionID)
	s.mu.Unlock()
	return &SessionState{
		SessionID: sessionID,
		Position:  sess.wizard.Pos(),
		Total:     sess.wizard.Len(),
		Crisis:    crisis,
		Result:    result,
	}, nil
}

// StepBack retreats the session one question; at the first question it is a
// no-op that reports the unchanged state.
func (s *AssessmentService) StepBack(sessionID, userID string) (*SessionState, error) {
	sess, err := s.session(sessionID, userID)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.wizard.Retreat()
	return s.state(sessionID, sess, nil, nil), nil
}

func (s *AssessmentService) state(id string, sess *assessmentSession, crisis *CrisisNotice, result *models.AssessmentResult) *SessionState {
	st := &SessionState{
		SessionID: id,
		Position:  sess.wizard.Pos(),
		Total:     sess.wizard.Len(),
		Crisis:    crisis,
		Result:    result,
	}
	if !sess.wizard.Done() {
		views := s.QuestionViews()
		st.Question = &views[sess.wizard.Pos()]
	}
	return st
}
