package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"training-portal/internal/auth"
	"training-portal/internal/models"
	"training-portal/internal/module"
	"training-portal/internal/progress"
	"training-portal/internal/quiz"
	"training-portal/internal/session"
	"training-portal/pkg/cache"
	"training-portal/pkg/database"
	"training-portal/pkg/websocket"

	"github.com/gorilla/mux"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found")
	}

	// Initialize database
	dbConfig := &database.Config{
		Host:     os.Getenv("DB_HOST"),
		Port:     os.Getenv("DB_PORT"),
		User:     os.Getenv("DB_USER"),
		Password: os.Getenv("DB_PASSWORD"),
		DBName:   os.Getenv("DB_NAME"),
		SSLMode:  os.Getenv("DB_SSLMODE"),
	}

	db, err := database.NewPostgresDB(dbConfig)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	err = db.AutoMigrate(
		&models.UserProfile{},
		&models.Module{},
		&models.ModuleProgress{},
		&models.TrainingSession{},
		&models.SessionEvaluation{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// Install the default catalog on first run
	if err := module.Seed(db); err != nil {
		log.Fatalf("Failed to seed module catalog: %v", err)
	}

	// Initialize Redis cache
	redisCache := cache.NewRedisCache(os.Getenv("REDIS_ADDR"))

	// Initialize WebSocket hub for the live session dashboards
	wsHub := websocket.NewHub()
	go wsHub.Run()

	// Initialize repositories
	authRepo := auth.NewRepository(db)
	moduleRepo := module.NewRepository(db)
	progressRepo := progress.NewRepository(db)
	sessionRepo := session.NewRepository(db)

	// Optional external question generator; modules without a fixed quiz
	// fall back to the static pool when this is unset or failing.
	var generator quiz.Generator
	if endpoint := os.Getenv("QUIZ_GENERATOR_URL"); endpoint != "" {
		generator = quiz.NewHTTPGenerator(endpoint, os.Getenv("QUIZ_GENERATOR_KEY"))
	}

	// Initialize services
	jwtSecret := os.Getenv("JWT_SECRET")
	authService := auth.NewService(authRepo, jwtSecret, os.Getenv("DELETE_PASSWORD_HASH"))
	moduleService := module.NewService(moduleRepo, redisCache)
	progressService := progress.NewService(progressRepo, redisCache)
	sessionService := session.NewService(sessionRepo, wsHub)
	quizService := quiz.NewService(redisCache, moduleService, progressService, sessionService, generator)

	// Initialize handlers
	authHandler := auth.NewHandler(authService)
	moduleHandler := module.NewHandler(moduleService)
	progressHandler := progress.NewHandler(progressService)
	sessionHandler := session.NewHandler(sessionService)
	quizHandler := quiz.NewHandler(quizService)

	// Setup router
	router := mux.NewRouter()

	// CORS middleware configuration
	corsOrigin := os.Getenv("CORS_ORIGIN")
	if corsOrigin == "" {
		corsOrigin = "http://localhost:3000"
	}
	corsMiddleware := cors.New(cors.Options{
		AllowedOrigins:   []string{corsOrigin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization", "X-Requested-With"},
		ExposedHeaders:   []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           300,
	})
	handler := corsMiddleware.Handler(router)

	// Public routes - no JWT required
	router.HandleFunc("/api/auth/register", authHandler.Register).Methods("POST", "OPTIONS")
	router.HandleFunc("/api/auth/login", authHandler.Login).Methods("POST", "OPTIONS")
	router.HandleFunc("/api/org/divisions", authHandler.Divisions).Methods("GET", "OPTIONS")

	// Authenticated routes
	apiRouter := router.PathPrefix("/api").Subrouter()
	apiRouter.Use(auth.JWTMiddleware(jwtSecret))

	apiRouter.HandleFunc("/profile", authHandler.GetProfile).Methods("GET")
	apiRouter.HandleFunc("/modules", moduleHandler.Dashboard).Methods("GET")
	apiRouter.HandleFunc("/modules/{moduleID}", moduleHandler.GetModule).Methods("GET")

	// Quiz flow
	apiRouter.HandleFunc("/modules/{moduleID}/quiz", quizHandler.State).Methods("GET")
	apiRouter.HandleFunc("/modules/{moduleID}/quiz/start", quizHandler.Start).Methods("POST")
	apiRouter.HandleFunc("/modules/{moduleID}/quiz/select", quizHandler.Select).Methods("POST")
	apiRouter.HandleFunc("/modules/{moduleID}/quiz/submit", quizHandler.Submit).Methods("POST")
	apiRouter.HandleFunc("/modules/{moduleID}/quiz/next", quizHandler.Next).Methods("POST")
	apiRouter.HandleFunc("/modules/{moduleID}/quiz/retake", quizHandler.Retake).Methods("POST")
	apiRouter.HandleFunc("/modules/{moduleID}/quiz/finish", quizHandler.Finish).Methods("POST")

	// Training sessions
	apiRouter.HandleFunc("/sessions", sessionHandler.Overview).Methods("GET")
	apiRouter.HandleFunc("/sessions/{sessionID}", sessionHandler.GetSession).Methods("GET")
	apiRouter.HandleFunc("/sessions/{sessionID}/join", sessionHandler.Join).Methods("POST")
	apiRouter.HandleFunc("/sessions/{sessionID}/evaluations", sessionHandler.SubmitEvaluation).Methods("POST")

	// Admin routes
	adminRouter := apiRouter.PathPrefix("/admin").Subrouter()
	adminRouter.Use(auth.RequireAdmin)

	adminRouter.HandleFunc("/modules", moduleHandler.ListCatalog).Methods("GET")
	adminRouter.HandleFunc("/modules", moduleHandler.CreateModule).Methods("POST")
	adminRouter.HandleFunc("/modules/{moduleID}", moduleHandler.UpdateModule).Methods("PUT")
	adminRouter.HandleFunc("/modules/{moduleID}", moduleHandler.DeleteModule).Methods("DELETE")

	adminRouter.HandleFunc("/users", authHandler.ListUsers).Methods("GET")
	adminRouter.HandleFunc("/users/{hospitalNumber}", authHandler.UpdateUser).Methods("PUT")
	adminRouter.HandleFunc("/users/{hospitalNumber}", authHandler.DeleteUser).Methods("DELETE")
	adminRouter.HandleFunc("/users/{hospitalNumber}/audit", progressHandler.AuditUser).Methods("GET")
	adminRouter.HandleFunc("/stats", progressHandler.CohortStats).Methods("GET")

	adminRouter.HandleFunc("/sessions", sessionHandler.CreateSession).Methods("POST")
	adminRouter.HandleFunc("/sessions/{sessionID}", sessionHandler.UpdateSession).Methods("PUT")
	adminRouter.HandleFunc("/sessions/{sessionID}", sessionHandler.DeleteSession).Methods("DELETE")
	adminRouter.HandleFunc("/sessions/{sessionID}/summary", sessionHandler.Summary).Methods("GET")

	// WebSocket endpoint for session dashboards
	router.HandleFunc("/ws/sessions/{sessionID}", wsHub.HandleWebSocket)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Server starting on port %s", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Graceful shutdown setup
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt)
	<-c

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	log.Println("Server shutdown gracefully")
}
