package models

import "time"

// User is an account on the platform. PassHash never leaves the server.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	PassHash  []byte    `json:"-"`
	FirstName string    `json:"first_name,omitempty"`
	LastName  string    `json:"last_name,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Location  string    `json:"location,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Clinic is a bookable care location from the seeded directory.
type Clinic struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Address  string   `json:"address"`
	Distance string   `json:"distance,omitempty"`
	Rating   string   `json:"rating,omitempty"`
	IsOpen   bool     `json:"is_open"`
	Services []string `json:"services,omitempty"`
}

// Appointment is a scheduled consultation, in person or over video.
type Appointment struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	ClinicID   string    `json:"clinic_id,omitempty"`
	DoctorName string    `json:"doctor_name,omitempty"`
	Date       time.Time `json:"appointment_date"`
	Duration   int       `json:"duration"` // minutes
	Type       string    `json:"type"`     // "clinic" or "video"
	Status     string    `json:"status"`
	Notes      string    `json:"notes,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// ChatLog records one exchange with the assistant.
type ChatLog struct {
	ID               string    `json:"id"`
	UserID           string    `json:"user_id"`
	Message          string    `json:"message"`
	Response         string    `json:"response"`
	Sentiment        string    `json:"sentiment,omitempty"`
	EscalationNeeded bool      `json:"escalation_needed"`
	CreatedAt        time.Time `json:"created_at"`
}

// ResponseSnapshot is one answer as captured at submission time. The prompt
// and label are denormalized so stored results survive catalog edits.
type ResponseSnapshot struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Category string `json:"category"`
	Score    int    `json:"score"`
}

// AssessmentResult is one completed questionnaire pass. Results are
// append-only; a resubmission creates a new record.
type AssessmentResult struct {
	ID              string                      `json:"id"`
	UserID          string                      `json:"user_id"`
	Responses       map[string]ResponseSnapshot `json:"responses"`
	RiskScore       int                         `json:"risk_score"`
	Category        string                      `json:"category"`
	Recommendations []string                    `json:"recommendations"`
	CreatedAt       time.Time                   `json:"created_at"`
}

// Reminder is a user-scheduled nudge for an appointment, medication, or
// meditation practice.
type Reminder struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	RemindAt    time.Time `json:"reminder_time"`
	Type        string    `json:"type"`
	IsRecurring bool      `json:"is_recurring"`
	Frequency   string    `json:"frequency,omitempty"`
	IsCompleted bool      `json:"is_completed"`
	CreatedAt   time.Time `json:"created_at"`
}

// MeditationSession is one entry of the seeded guided-meditation library.
type MeditationSession struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Duration    int       `json:"duration"` // minutes
	Category    string    `json:"category"`
	AudioURL    string    `json:"audio_url,omitempty"`
	ImageURL    string    `json:"image_url,omitempty"`
	IsFeatured  bool      `json:"is_featured"`
	CreatedAt   time.Time `json:"created_at"`
}

// UserProgress tracks cumulative meditation activity and the day streak.
type UserProgress struct {
	UserID             string    `json:"user_id"`
	Streak             int       `json:"streak"`
	TotalSessions      int       `json:"total_sessions"`
	TotalMinutes       int       `json:"total_minutes"`
	LastMeditationDate time.Time `json:"last_meditation_date,omitempty"`
	UpdatedAt          time.Time `json:"updated_at"`
}
