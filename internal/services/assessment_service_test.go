package services

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/hervital/hervital/internal/models"
)

type stubAssessmentStore struct {
	users   map[string]*models.User
	results []*models.AssessmentResult

	insertErr error
}

func newStubAssessmentStore(userIDs ...string) *stubAssessmentStore {
	s := &stubAssessmentStore{users: map[string]*models.User{}}
	for _, id := range userIDs {
		s.users[id] = &models.User{ID: id, Email: id + "@example.com"}
	}
	return s
}

func (s *stubAssessmentStore) GetUser(id string) (*models.User, error) {
	return s.users[id], nil
}

func (s *stubAssessmentStore) InsertResult(r *models.AssessmentResult) error {
	if s.insertErr != nil {
		return s.insertErr
	}
	copy := *r
	s.results = append(s.results, &copy)
	return nil
}

func (s *stubAssessmentStore) LatestResult(userID string) (*models.AssessmentResult, error) {
	var latest *models.AssessmentResult
	for _, r := range s.results {
		if r.UserID != userID {
			continue
		}
		if latest == nil || !r.CreatedAt.Before(latest.CreatedAt) {
			latest = r
		}
	}
	return latest, nil
}

func testAssessmentService(store AssessmentStore) *AssessmentService {
	svc := NewAssessmentService(store, DefaultCatalog())
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	var n int64
	svc.now = func() time.Time {
		return base.Add(time.Duration(atomic.AddInt64(&n, 1)) * time.Second)
	}
	var seq int64
	svc.idGen = func() string {
		return fmt.Sprintf("id-%024d", atomic.AddInt64(&seq, 1))
	}
	return svc
}

func TestSubmitAssessment(t *testing.T) {
	store := newStubAssessmentStore("u1")
	svc := testAssessmentService(store)

	res, err := svc.Submit("u1", "mental", map[string]Answer{
		"sleep1": {Value: "poor"},
		"mood1":  {Value: "mostly_low"},
		"ghost":  {Value: "poor"},
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if res.RiskScore != 6 {
		t.Fatalf("score=%d, want 6", res.RiskScore)
	}
	if len(res.Recommendations) != 3 || res.Recommendations[0] != "Continue healthy habits" {
		t.Fatalf("recommendations=%v", res.Recommendations)
	}
	if len(res.Responses) != 2 {
		t.Fatalf("snapshot kept %d entries, want 2 (unknown id dropped)", len(res.Responses))
	}
	snap := res.Responses["sleep1"]
	if snap.Answer != "Poor - Frequent sleep problems" || snap.Score != 3 || snap.Category != "sleep" {
		t.Fatalf("snapshot=%+v", snap)
	}
	if len(store.results) != 1 {
		t.Fatalf("stored %d results, want 1", len(store.results))
	}
}

func TestSubmitAssessmentValidation(t *testing.T) {
	svc := testAssessmentService(newStubAssessmentStore("u1"))
	cases := []struct {
		name      string
		userID    string
		category  string
		responses map[string]Answer
		wantCode  ErrorCode
	}{
		{"missing user", "", "mental", map[string]Answer{"sleep1": {Value: "poor"}}, ErrorUnauthorized},
		{"empty responses", "u1", "mental", map[string]Answer{}, ErrorInvalid},
		{"missing category", "u1", "", map[string]Answer{"sleep1": {Value: "poor"}}, ErrorInvalid},
		{"unknown user", "u9", "mental", map[string]Answer{"sleep1": {Value: "poor"}}, ErrorReferential},
	}
	for _, c := range cases {
		_, err := svc.Submit(c.userID, c.category, c.responses)
		se, ok := AsServiceError(err)
		if !ok || se.Code != c.wantCode {
			t.Fatalf("%s: err=%v, want code %s", c.name, err, c.wantCode)
		}
	}
}

func TestLatestAssessment(t *testing.T) {
	store := newStubAssessmentStore("u1")
	svc := testAssessmentService(store)

	if got, err := svc.Latest("u1"); err != nil || got != nil {
		t.Fatalf("empty history: got=%v err=%v, want nil,nil", got, err)
	}

	first, err := svc.Submit("u1", "mental", map[string]Answer{"sleep1": {Value: "excellent"}})
	if err != nil {
		t.Fatalf("first submit: %v", err)
	}
	second, err := svc.Submit("u1", "mental", map[string]Answer{"sleep1": {Value: "poor"}})
	if err != nil {
		t.Fatalf("second submit: %v", err)
	}

	got, err := svc.Latest("u1")
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if got == nil || got.ID != second.ID {
		t.Fatalf("latest=%v, want %s", got, second.ID)
	}
	if first.ID == second.ID {
		t.Fatal("submissions must get distinct IDs")
	}
	// earlier record is still there, untouched
	if len(store.results) != 2 {
		t.Fatalf("stored %d results, want 2", len(store.results))
	}
}

func TestSessionFlow(t *testing.T) {
	store := newStubAssessmentStore("u1")
	svc := testAssessmentService(store)

	st, err := svc.StartSession("u1")
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if st.Position != 0 || st.Total != len(svc.Catalog()) {
		t.Fatalf("fresh session state: %+v", st)
	}
	if st.Question == nil || st.Question.ID != "sleep1" {
		t.Fatalf("first question=%v", st.Question)
	}
	for _, c := range st.Question.Choices {
		_ = c.Label // views never expose scores; ChoiceView has no Score field
	}

	answers := map[string]Answer{
		"sleep1":           {Value: "poor"},
		"mood1":            {Value: "mostly_low"},
		"currentMood":      {Value: "2"},
		"stress1":          {Value: "constantly"},
		"energy1":          {Value: "very_low"},
		"social1":          {Value: "isolated"},
		"anxiety1":         {Value: "constantly"},
		"coping1":          {Value: "overwhelmed"},
		"hope1":            {Value: "hopeless"},
		"selfHarmThoughts": {Value: "no"},
	}
	var last *SessionState
	for i, q := range svc.Catalog() {
		last, err = svc.AnswerCurrent(st.SessionID, "u1", answers[q.ID])
		if err != nil {
			t.Fatalf("answer %d (%s): %v", i, q.ID, err)
		}
	}
	if last.Result == nil {
		t.Fatal("final answer did not produce a result")
	}
	if last.Result.RiskScore != 29 {
		t.Fatalf("session score=%d, want 29", last.Result.RiskScore)
	}
	if _, err := svc.AnswerCurrent(st.SessionID, "u1", Answer{Value: "poor"}); err == nil {
		t.Fatal("completed session should be gone")
	}
}

func TestSessionCrisisFiredAtAnswerTime(t *testing.T) {
	svc := testAssessmentService(newStubAssessmentStore("u1"))
	st, err := svc.StartSession("u1")
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	// walk to the safety question
	var state *SessionState
	for _, q := range svc.Catalog() {
		if q.ID == "selfHarmThoughts" {
			state, err = svc.AnswerCurrent(st.SessionID, "u1", Answer{Value: "yes"})
			break
		}
		if _, err = svc.AnswerCurrent(st.SessionID, "u1", Answer{Value: "excellent"}); err != nil {
			t.Fatalf("answer %s: %v", q.ID, err)
		}
	}
	if err != nil {
		t.Fatalf("safety answer: %v", err)
	}
	if state.Crisis == nil {
		t.Fatal("crisis notice not surfaced with the safety answer")
	}
	// the notice does not depend on the final score being high
	if state.Result != nil && ScoreTier(state.Result.RiskScore) != TierLow {
		t.Fatalf("unexpected tier %s", ScoreTier(state.Result.RiskScore))
	}
}

func TestSessionStepBack(t *testing.T) {
	svc := testAssessmentService(newStubAssessmentStore("u1"))
	st, _ := svc.StartSession("u1")

	// back at the first question is a no-op
	state, err := svc.StepBack(st.SessionID, "u1")
	if err != nil || state.Position != 0 {
		t.Fatalf("step back at first: pos=%d err=%v", state.Position, err)
	}

	if _, err := svc.AnswerCurrent(st.SessionID, "u1", Answer{Value: "poor"}); err != nil {
		t.Fatalf("answer: %v", err)
	}
	state, err = svc.StepBack(st.SessionID, "u1")
	if err != nil {
		t.Fatalf("step back: %v", err)
	}
	if state.Position != 0 || state.Question == nil || state.Question.ID != "sleep1" {
		t.Fatalf("after step back: %+v", state)
	}

	// revised answer replaces the old one
	if _, err := svc.AnswerCurrent(st.SessionID, "u1", Answer{Value: "excellent"}); err != nil {
		t.Fatalf("re-answer: %v", err)
	}

	if _, err := svc.StepBack(st.SessionID, "other"); err == nil {
		t.Fatal("session must not be reachable by another user")
	}
}

func TestSessionSubmitFailureKeepsSession(t *testing.T) {
	store := newStubAssessmentStore("u1")
	svc := testAssessmentService(store)
	st, _ := svc.StartSession("u1")

	catalog := svc.Catalog()
	for _, q := range catalog[:len(catalog)-1] {
		if _, err := svc.AnswerCurrent(st.SessionID, "u1", Answer{Value: "poor"}); err != nil {
			t.Fatalf("answer %s: %v", q.ID, err)
		}
	}
	store.insertErr = errors.New("disk full")
	if _, err := svc.AnswerCurrent(st.SessionID, "u1", Answer{Value: "no"}); err == nil {
		t.Fatal("expected storage error to surface")
	}
	// the session survives so the final answer can be retried
	store.insertErr = nil
	state, err := svc.AnswerCurrent(st.SessionID, "u1", Answer{Value: "no"})
	if err != nil {
		t.Fatalf("retry: %v", err)
	}
	if state.Result == nil {
		t.Fatal("retry did not complete the assessment")
	}
	if len(store.results) != 1 {
		t.Fatalf("stored %d results, want 1", len(store.results))
	}
}

func TestSessionConcurrentAnswers(t *testing.T) {
	store := newStubAssessmentStore("u1")
	svc := testAssessmentService(store)
	st, err := svc.StartSession("u1")
	if err != nil {
		t.Fatalf("start: %v", err)
	}

	// More writers than questions, all hammering the same session. Every
	// call must either succeed or fail with a known service error; the
	// answers map and wizard position must never be touched unguarded.
	workers := len(svc.Catalog()) + 4
	var wg sync.WaitGroup
	var mu sync.Mutex
	results := 0
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			state, err := svc.AnswerCurrent(st.SessionID, "u1", Answer{Value: "poor"})
			if err != nil {
				if _, ok := AsServiceError(err); !ok {
					t.Errorf("unexpected error kind: %v", err)
				}
				return
			}
			if state.Result != nil {
				mu.Lock()
				results++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if results != 1 {
		t.Fatalf("completed %d times, want exactly 1", results)
	}
	if len(store.results) != 1 {
		t.Fatalf("stored %d results, want 1", len(store.results))
	}
}

func TestSessionExpires(t *testing.T) {
	svc := testAssessmentService(newStubAssessmentStore("u1"))
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	now := base
	svc.now = func() time.Time { return now }

	st, err := svc.StartSession("u1")
	if err != nil {
		t.Fatalf("start: %v", err)
	}

	// still alive just inside the window
	now = base.Add(sessionTTL - time.Minute)
	if _, err := svc.AnswerCurrent(st.SessionID, "u1", Answer{Value: "poor"}); err != nil {
		t.Fatalf("answer before expiry: %v", err)
	}

	now = base.Add(sessionTTL + time.Minute)
	_, err = svc.AnswerCurrent(st.SessionID, "u1", Answer{Value: "poor"})
	se, ok := AsServiceError(err)
	if !ok || se.Code != ErrorNotFound {
		t.Fatalf("expired session err=%v, want not_found", err)
	}
	if _, err := svc.StepBack(st.SessionID, "u1"); err == nil {
		t.Fatal("expired session still reachable via StepBack")
	}
}

func TestQuestionViewsHideScoring(t *testing.T) {
	svc := testAssessmentService(newStubAssessmentStore())
	views := svc.QuestionViews()
	if len(views) != len(svc.Catalog()) {
		t.Fatalf("view count=%d", len(views))
	}
	for _, v := range views {
		if v.ID == "" || v.Prompt == "" {
			t.Fatalf("incomplete view %+v", v)
		}
	}
}
