package api

import (
	"net/http"

	"github.com/hervital/hervital/internal/services"
)

// Router wires the feature services onto an http.ServeMux.
type Router struct {
	auth        *services.AuthService
	assessment  *services.AssessmentService
	chat        *services.ChatService
	appointment *services.AppointmentService
	reminder    *services.ReminderService
	meditation  *services.MeditationService
	progress    *services.ProgressService
}

func NewRouter(
	auth *services.AuthService,
	assessment *services.AssessmentService,
	chat *services.ChatService,
	appointment *services.AppointmentService,
	reminder *services.ReminderService,
	meditation *services.MeditationService,
	progress *services.ProgressService,
) *Router {
	return &Router{
		auth:        auth,
		assessment:  assessment,
		chat:        chat,
		appointment: appointment,
		reminder:    reminder,
		meditation:  meditation,
		progress:    progress,
	}
}

func (rt *Router) Register(mux *http.ServeMux) {
	mux.HandleFunc("/api/auth/register", rt.handleRegister)           // POST
	mux.HandleFunc("/api/auth/login", rt.handleLogin)                 // POST
	mux.HandleFunc("/api/auth/user", rt.handleCurrentUser)            // GET
	mux.HandleFunc("/api/questionnaire", rt.handleSubmitAssessment)   // POST
	mux.HandleFunc("/api/questionnaire/questions", rt.handleCatalog)  // GET
	mux.HandleFunc("/api/questionnaire/latest", rt.handleLatest)      // GET
	mux.HandleFunc("/api/questionnaire/session", rt.handleNewSession) // POST
	mux.HandleFunc("/api/questionnaire/session/", rt.handleSessionScoped)
	mux.HandleFunc("/api/chat", rt.handleChat)                        // POST
	mux.HandleFunc("/api/appointments", rt.handleAppointments)        // GET, POST
	mux.HandleFunc("/api/clinics", rt.handleClinics)                  // GET
	mux.HandleFunc("/api/reminders", rt.handleReminders)              // GET, POST
	mux.HandleFunc("/api/meditation/sessions", rt.handleMeditations)  // GET
	mux.HandleFunc("/api/meditation/featured", rt.handleFeatured)     // GET
	mux.HandleFunc("/api/progress", rt.handleProgress)                // GET
	mux.HandleFunc("/api/progress/meditation", rt.handleRecordMeditation) // POST
}
