package main

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/joho/godotenv"
	_ "github.com/mattn/go-sqlite3"

	"github.com/hervital/hervital/internal/agent"
	"github.com/hervital/hervital/internal/api"
	"github.com/hervital/hervital/internal/db"
	"github.com/hervital/hervital/internal/middleware"
	"github.com/hervital/hervital/internal/services"
	"github.com/hervital/hervital/internal/utils"
)

func main() {
	// Optional .env for local development; real deployments set the
	// environment directly.
	_ = godotenv.Load()

	addr := utils.SafeEnv("HERVITAL_ADDR", ":8080")
	dbPath := utils.SafeEnv("HERVITAL_DB_PATH", "hervital.db")

	dsn := fmt.Sprintf("file:%s?cache=shared&_busy_timeout=5000", dbPath)
	sqlDB, err := sql.Open("sqlite3", dsn)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer sqlDB.Close()

	if err := db.RunMigrations(sqlDB, utils.SafeEnv("HERVITAL_MIGRATIONS_DIR", "")); err != nil {
		log.Fatalf("migrations: %v", err)
	}
	store, err := db.NewSQLiteStore(sqlDB)
	if err != nil {
		log.Fatalf("init store: %v", err)
	}

	assistant := agent.NewClient(
		utils.SafeEnv("HERVITAL_OPENAI_API_KEY", ""),
		utils.SafeEnv("HERVITAL_OPENAI_BASE_URL", ""),
		utils.SafeEnv("HERVITAL_OPENAI_MODEL", ""),
	)

	auth := services.NewAuthService(store, middleware.SignToken)
	assessment := services.NewAssessmentService(store, services.DefaultCatalog())
	chat := services.NewChatService(store, assistant)
	appointment := services.NewAppointmentService(store)
	reminder := services.NewReminderService(store)
	meditation := services.NewMeditationService(store)
	progress := services.NewProgressService(store)

	mux := http.NewServeMux()
	api.NewRouter(auth, assessment, chat, appointment, reminder, meditation, progress).Register(mux)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"ok":   true,
			"name": "HerVital API",
		})
	})

	handler := middleware.CORS(middleware.SecureHeaders(middleware.NoStore(middleware.WithAuth(mux))))

	log.Printf("HerVital server listening on %s", addr)
	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
