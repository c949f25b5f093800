package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hagxwon/internal/audio"
	"hagxwon/internal/config"
	"hagxwon/internal/database"
	"hagxwon/internal/handlers"
	"hagxwon/internal/health"
	"hagxwon/internal/repository"
	"hagxwon/internal/security"
	"hagxwon/internal/service"
	"hagxwon/internal/study"
	"hagxwon/internal/words"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database with config (supports sqlite, postgres, mysql)
	db, err := database.InitializeWithConfig(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	log.Printf("Database connection established (type: %s)", cfg.DatabaseType)

	// Run migrations
	if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	log.Println("Migrations completed successfully")

	// Initialize repositories and the study core
	stateRepo := repository.NewStateRepository(db)
	store := study.NewStore(stateRepo)
	defer store.Close()
	streak := study.NewStreakTracker(stateRepo)

	// Upstream capabilities
	wordsClient := words.NewClient(cfg.WordsAPIBaseURL, cfg.WordsAPITimeout)
	ttsService := audio.NewTTSService(cfg.AudioCachePath)

	// Background health monitor
	monitor := health.NewMonitor(db, wordsClient, cfg.HealthCheckInterval)
	monitorCtx, stopMonitor := context.WithCancel(context.Background())
	defer stopMonitor()
	go monitor.Run(monitorCtx)

	// Services
	authService := service.NewAuthService(cfg.AdminPasswordHash, cfg.JWTSecret, cfg.TokenDuration)
	if !authService.Enabled() {
		log.Println("Admin API disabled: ADMIN_PASSWORD_HASH or JWT_SECRET not configured")
	}
	emailService := service.NewEmailService(monitorCtx, cfg.AWSRegion, cfg.SESFromEmail, cfg.SESFromName)
	reportService := service.NewReportService(store, streak)

	reminderService := service.NewReminderService(emailService, store, streak, cfg.ReminderEmail)
	if err := reminderService.Start(cfg.ReminderHour); err != nil {
		log.Fatalf("Failed to start reminder scheduler: %v", err)
	}
	defer reminderService.Stop()

	// Handlers
	middleware := handlers.NewMiddleware(authService, security.NewRateLimiter(5, time.Minute))
	studyHandler := handlers.NewStudyHandler(store, streak)
	wordsHandler := handlers.NewWordsHandler(wordsClient)
	audioHandler := handlers.NewAudioHandler(ttsService)
	healthHandler := handlers.NewHealthHandler(monitor)
	adminHandler := handlers.NewAdminHandler(authService, reportService, store, streak, monitor)

	// Setup routes
	mux := http.NewServeMux()

	// Static files (built frontend bundle)
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.Dir(cfg.StaticFilesPath))))

	// Study routes
	mux.HandleFunc("POST /api/study/session/start", studyHandler.StartSession)
	mux.HandleFunc("POST /api/study/session/end", studyHandler.EndSession)
	mux.HandleFunc("GET /api/study/session", studyHandler.ActiveSession)
	mux.HandleFunc("POST /api/study/attempts", studyHandler.RecordAttempt)
	mux.HandleFunc("GET /api/study/stats", studyHandler.Stats)
	mux.HandleFunc("GET /api/study/streak", studyHandler.Streak)
	mux.HandleFunc("GET /api/study/history", studyHandler.History)
	mux.HandleFunc("POST /api/study/reset", studyHandler.Reset)

	// Word catalog routes
	mux.HandleFunc("GET /api/words", wordsHandler.List)
	mux.HandleFunc("GET /api/words/{id}", wordsHandler.Get)
	mux.HandleFunc("POST /api/words/search", wordsHandler.Search)
	mux.HandleFunc("POST /api/words/{id}/practice", wordsHandler.Practice)

	// Audio
	mux.HandleFunc("POST /api/tts", audioHandler.Speak)

	// Health
	mux.HandleFunc("GET /health", healthHandler.Health)

	// Admin routes
	mux.HandleFunc("POST /api/admin/login", middleware.RateLimit(adminHandler.Login))
	mux.HandleFunc("GET /api/admin/dashboard", middleware.RequireAdmin(adminHandler.Dashboard))
	mux.HandleFunc("GET /api/admin/export", middleware.RequireAdmin(adminHandler.Export))

	// Wrap with logging middleware
	handler := handlers.Logging(mux)

	// Start server
	addr := ":" + cfg.ServerPort
	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Prune stale audio clips once a day
	go cleanupAudioCache(ttsService)

	// Graceful shutdown
	go func() {
		log.Printf("Server starting on http://localhost%s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
}

// cleanupAudioCache periodically removes clips nobody has asked for lately
func cleanupAudioCache(tts *audio.TTSService) {
	ticker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()

	for range ticker.C {
		if err := tts.CleanupCache(30 * 24 * time.Hour); err != nil {
			log.Printf("Error cleaning up audio cache: %v", err)
		}
	}
}
