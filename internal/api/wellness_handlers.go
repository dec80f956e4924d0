package api

import (
	"net/http"

	"github.com/hervital/hervital/internal/services"
)

type chatRequest struct {
	Message string `json:"message"`
}

// POST /api/chat
func (rt *Router) handleChat(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	var req chatRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	reply, err := rt.chat.Send(r.Context(), uid, req.Message)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, reply)
}

// GET, POST /api/appointments
func (rt *Router) handleAppointments(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	switch r.Method {
	case http.MethodGet:
		list, err := rt.appointment.List(uid)
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, list)
	case http.MethodPost:
		var in services.CreateAppointmentInput
		if !decodeJSON(w, r, &in) {
			return
		}
		a, err := rt.appointment.Create(uid, in)
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, a)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// GET /api/clinics
func (rt *Router) handleClinics(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}
	if _, ok := userID(w, r); !ok {
		return
	}
	list, err := rt.appointment.Clinics()
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// GET, POST /api/reminders
func (rt *Router) handleReminders(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	switch r.Method {
	case http.MethodGet:
		list, err := rt.reminder.List(uid)
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, list)
	case http.MethodPost:
		var in services.CreateReminderInput
		if !decodeJSON(w, r, &in) {
			return
		}
		rem, err := rt.reminder.Create(uid, in)
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, rem)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// GET /api/meditation/sessions
func (rt *Router) handleMeditations(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}
	if _, ok := userID(w, r); !ok {
		return
	}
	list, err := rt.meditation.Sessions()
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// GET /api/meditation/featured — JSON null when nothing is flagged.
func (rt *Router) handleFeatured(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}
	if _, ok := userID(w, r); !ok {
		return
	}
	featured, err := rt.meditation.Featured()
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, featured)
}

// GET /api/progress
func (rt *Router) handleProgress(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	p, err := rt.progress.Get(uid)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

type recordMeditationRequest struct {
	Duration int `json:"duration"` // minutes
}

// POST /api/progress/meditation
func (rt *Router) handleRecordMeditation(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	var req recordMeditationRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	p, err := rt.progress.RecordMeditation(uid, req.Duration)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}
