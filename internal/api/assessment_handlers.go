package api

import (
	"net/http"
	"strings"

	"github.com/hervital/hervital/internal/services"
)

type submitAssessmentRequest struct {
	Responses map[string]services.Answer `json:"responses"`
	Category  string                     `json:"category"`
}

// POST /api/questionnaire
func (rt *Router) handleSubmitAssessment(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	var req submitAssessmentRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	result, err := rt.assessment.Submit(uid, req.Category, req.Responses)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// GET /api/questionnaire/questions
func (rt *Router) handleCatalog(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"questions": rt.assessment.QuestionViews()})
}

// GET /api/questionnaire/latest — JSON null when the user has no history.
func (rt *Router) handleLatest(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	latest, err := rt.assessment.Latest(uid)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, latest)
}

// POST /api/questionnaire/session
func (rt *Router) handleNewSession(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	state, err := rt.assessment.StartSession(uid)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

type answerRequest struct {
	Answer services.Answer `json:"answer"`
}

// POST /api/questionnaire/session/{id}/answer
// POST /api/questionnaire/session/{id}/back
func (rt *Router) handleSessionScoped(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	rest := strings.TrimPrefix(r.URL.Path, "/api/questionnaire/session/")
	parts := strings.Split(rest, "/")
	if len(parts) != 2 || parts[0] == "" {
		http.NotFound(w, r)
		return
	}
	sessionID := parts[0]

	switch parts[1] {
	case "answer":
		var req answerRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		state, err := rt.assessment.AnswerCurrent(sessionID, uid, req.Answer)
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, state)
	case "back":
		state, err := rt.assessment.StepBack(sessionID, uid)
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, state)
	default:
		http.NotFound(w, r)
	}
}
