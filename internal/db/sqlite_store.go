package db

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/hervital/hervital/internal/models"
	"github.com/hervital/hervital/internal/services"
)

// SQLiteStore backs every service store interface with one sqlite database.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(db *sql.DB) (*SQLiteStore, error) {
	if db == nil {
		return nil, errors.New("nil db")
	}
	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
	}
	for _, stmt := range pragmas {
		if _, err := db.Exec(stmt); err != nil {
			return nil, fmt.Errorf("apply sqlite pragma %q: %w", stmt, err)
		}
	}
	return &SQLiteStore{db: db}, nil
}

func toNullString(s string) sql.NullString {
	if strings.TrimSpace(s) == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func timeText(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTimeText(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		log.Printf("sqlite store: parse time %q: %v", s, err)
		return time.Time{}
	}
	return t
}

func encodeJSON(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// --- Users ---

const userColumns = `id, email, pass_hash, first_name, last_name, phone, location, created_at`

func scanUser(row interface{ Scan(...any) error }) (*models.User, error) {
	var u models.User
	var first, last, phone, location sql.NullString
	var created string
	err := row.Scan(&u.ID, &u.Email, &u.PassHash, &first, &last, &phone, &location, &created)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	u.FirstName = first.String
	u.LastName = last.String
	u.Phone = phone.String
	u.Location = location.String
	u.CreatedAt = parseTimeText(created)
	return &u, nil
}

func (s *SQLiteStore) AddUser(u *models.User) error {
	_, err := s.db.Exec(`INSERT INTO users (`+userColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		u.ID, u.Email, u.PassHash, toNullString(u.FirstName), toNullString(u.LastName),
		toNullString(u.Phone), toNullString(u.Location), timeText(u.CreatedAt))
	return err
}

func (s *SQLiteStore) GetUser(id string) (*models.User, error) {
	return scanUser(s.db.QueryRow(`SELECT `+userColumns+` FROM users WHERE id = ?`, id))
}

func (s *SQLiteStore) FindUserByEmail(email string) (*models.User, error) {
	return scanUser(s.db.QueryRow(`SELECT `+userColumns+` FROM users WHERE email = ? COLLATE NOCASE`, email))
}

// --- Assessment results ---

func (s *SQLiteStore) InsertResult(r *models.AssessmentResult) error {
	responses, err := encodeJSON(r.Responses)
	if err != nil {
		return err
	}
	recs, err := encodeJSON(r.Recommendations)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(`INSERT INTO questionnaire_results (id, user_id, responses, risk_score, category, recommendations, created_at)
      VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.UserID, responses, r.RiskScore, r.Category, recs, timeText(r.CreatedAt))
	return err
}

// LatestResult returns the newest result for a user. Identical timestamps
// tie-break on insertion order, last inserted wins.
func (s *SQLiteStore) LatestResult(userID string) (*models.AssessmentResult, error) {
	row := s.db.QueryRow(`SELECT id, user_id, responses, risk_score, category, recommendations, created_at
      FROM questionnaire_results WHERE user_id = ?
      ORDER BY created_at DESC, rowid DESC LIMIT 1`, userID)
	var r models.AssessmentResult
	var responses, recs, created string
	if err := row.Scan(&r.ID, &r.UserID, &responses, &r.RiskScore, &r.Category, &recs, &created); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	if err := json.Unmarshal([]byte(responses), &r.Responses); err != nil {
		return nil, fmt.Errorf("decode result responses: %w", err)
	}
	if err := json.Unmarshal([]byte(recs), &r.Recommendations); err != nil {
		return nil, fmt.Errorf("decode result recommendations: %w", err)
	}
	r.CreatedAt = parseTimeText(created)
	return &r, nil
}

// --- Chat logs ---

func (s *SQLiteStore) InsertChatLog(l *models.ChatLog) error {
	_, err := s.db.Exec(`INSERT INTO chat_logs (id, user_id, message, response, sentiment, escalation_needed, created_at)
      VALUES (?, ?, ?, ?, ?, ?, ?)`,
		l.ID, l.UserID, l.Message, l.Response, toNullString(l.Sentiment), l.EscalationNeeded, timeText(l.CreatedAt))
	return err
}

// --- Appointments & clinics ---

func (s *SQLiteStore) InsertAppointment(a *models.Appointment) error {
	_, err := s.db.Exec(`INSERT INTO appointments (id, user_id, clinic_id, doctor_name, appointment_date, duration, type, status, notes, created_at)
      VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.UserID, toNullString(a.ClinicID), toNullString(a.DoctorName), timeText(a.Date),
		a.Duration, a.Type, a.Status, toNullString(a.Notes), timeText(a.CreatedAt))
	return err
}

func (s *SQLiteStore) ListAppointments(userID string) ([]*models.Appointment, error) {
	rows, err := s.db.Query(`SELECT id, user_id, clinic_id, doctor_name, appointment_date, duration, type, status, notes, created_at
      FROM appointments WHERE user_id = ? ORDER BY appointment_date DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []*models.Appointment{}
	for rows.Next() {
		var a models.Appointment
		var clinicID, doctor, notes sql.NullString
		var date, created string
		if err := rows.Scan(&a.ID, &a.UserID, &clinicID, &doctor, &date, &a.Duration, &a.Type, &a.Status, &notes, &created); err != nil {
			return nil, err
		}
		a.ClinicID = clinicID.String
		a.DoctorName = doctor.String
		a.Notes = notes.String
		a.Date = parseTimeText(date)
		a.CreatedAt = parseTimeText(created)
		out = append(out, &a)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) ListClinics() ([]*models.Clinic, error) {
	rows, err := s.db.Query(`SELECT id, name, address, distance, rating, is_open, services FROM clinics ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []*models.Clinic{}
	for rows.Next() {
		var c models.Clinic
		var distance, rating, servicesJSON sql.NullString
		if err := rows.Scan(&c.ID, &c.Name, &c.Address, &distance, &rating, &c.IsOpen, &servicesJSON); err != nil {
			return nil, err
		}
		c.Distance = distance.String
		c.Rating = rating.String
		if servicesJSON.Valid && servicesJSON.String != "" {
			if err := json.Unmarshal([]byte(servicesJSON.String), &c.Services); err != nil {
				log.Printf("sqlite store: decode clinic services: %v", err)
			}
		}
		out = append(out, &c)
	}
	return out, rows.Err()
}

// --- Reminders ---

func (s *SQLiteStore) InsertReminder(r *models.Reminder) error {
	_, err := s.db.Exec(`INSERT INTO reminders (id, user_id, title, description, reminder_time, type, is_recurring, frequency, is_completed, created_at)
      VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.UserID, r.Title, toNullString(r.Description), timeText(r.RemindAt), r.Type,
		r.IsRecurring, toNullString(r.Frequency), r.IsCompleted, timeText(r.CreatedAt))
	return err
}

func (s *SQLiteStore) ListReminders(userID string) ([]*models.Reminder, error) {
	rows, err := s.db.Query(`SELECT id, user_id, title, description, reminder_time, type, is_recurring, frequency, is_completed, created_at
      FROM reminders WHERE user_id = ? ORDER BY reminder_time`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []*models.Reminder{}
	for rows.Next() {
		var r models.Reminder
		var description, frequency sql.NullString
		var remindAt, created string
		if err := rows.Scan(&r.ID, &r.UserID, &r.Title, &description, &remindAt, &r.Type, &r.IsRecurring, &frequency, &r.IsCompleted, &created); err != nil {
			return nil, err
		}
		r.Description = description.String
		r.Frequency = frequency.String
		r.RemindAt = parseTimeText(remindAt)
		r.CreatedAt = parseTimeText(created)
		out = append(out, &r)
	}
	return out, rows.Err()
}

// --- Meditation library ---

const meditationColumns = `id, title, description, duration, category, audio_url, image_url, is_featured, created_at`

func scanMeditation(row interface{ Scan(...any) error }) (*models.MeditationSession, error) {
	var m models.MeditationSession
	var description, audio, image sql.NullString
	var created string
	err := row.Scan(&m.ID, &m.Title, &description, &m.Duration, &m.Category, &audio, &image, &m.IsFeatured, &created)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	m.Description = description.String
	m.AudioURL = audio.String
	m.ImageURL = image.String
	m.CreatedAt = parseTimeText(created)
	return &m, nil
}

func (s *SQLiteStore) ListMeditationSessions() ([]*models.MeditationSession, error) {
	rows, err := s.db.Query(`SELECT ` + meditationColumns + ` FROM meditation_sessions ORDER BY title`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []*models.MeditationSession{}
	for rows.Next() {
		m, err := scanMeditation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) FeaturedMeditationSession() (*models.MeditationSession, error) {
	return scanMeditation(s.db.QueryRow(`SELECT ` + meditationColumns + ` FROM meditation_sessions WHERE is_featured = 1 LIMIT 1`))
}

// --- Progress ---

func (s *SQLiteStore) GetProgress(userID string) (*models.UserProgress, error) {
	row := s.db.QueryRow(`SELECT user_id, streak, total_sessions, total_minutes, last_meditation_date, updated_at
      FROM user_progress WHERE user_id = ?`, userID)
	var p models.UserProgress
	var lastDate sql.NullString
	var updated string
	if err := row.Scan(&p.UserID, &p.Streak, &p.TotalSessions, &p.TotalMinutes, &lastDate, &updated); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	if lastDate.Valid {
		p.LastMeditationDate = parseTimeText(lastDate.String)
	}
	p.UpdatedAt = parseTimeText(updated)
	return &p, nil
}

func (s *SQLiteStore) UpsertProgress(p *models.UserProgress) error {
	_, err := s.db.Exec(`INSERT INTO user_progress (user_id, streak, total_sessions, total_minutes, last_meditation_date, updated_at)
      VALUES (?, ?, ?, ?, ?, ?)
      ON CONFLICT(user_id) DO UPDATE SET
        streak = excluded.streak,
        total_sessions = excluded.total_sessions,
        total_minutes = excluded.total_minutes,
        last_meditation_date = excluded.last_meditation_date,
        updated_at = excluded.updated_at`,
		p.UserID, p.Streak, p.TotalSessions, p.TotalMinutes,
		toNullString(timeTextOrEmpty(p.LastMeditationDate)), timeText(p.UpdatedAt))
	return err
}

func timeTextOrEmpty(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return timeText(t)
}

var (
	_ services.AuthStore        = (*SQLiteStore)(nil)
	_ services.AssessmentStore  = (*SQLiteStore)(nil)
	_ services.ChatStore        = (*SQLiteStore)(nil)
	_ services.AppointmentStore = (*SQLiteStore)(nil)
	_ services.ReminderStore    = (*SQLiteStore)(nil)
	_ services.MeditationStore  = (*SQLiteStore)(nil)
	_ services.ProgressStore    = (*SQLiteStore)(nil)
)
