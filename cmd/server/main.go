package main

import (
	"log"
	"net/http"
	"os"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/learnhub/backend/internal/achievements"
	"github.com/learnhub/backend/internal/auth"
	"github.com/learnhub/backend/internal/courses"
	"github.com/learnhub/backend/internal/database"
	"github.com/learnhub/backend/internal/forum"
	"github.com/learnhub/backend/internal/middleware"
	"github.com/learnhub/backend/internal/progress"
	"github.com/learnhub/backend/internal/quizzes"
	"github.com/rs/cors"
)

func main() {
	// Optional .env for local development
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded environment from .env")
	}

	db, err := database.Connect()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Engine wiring: the achievement evaluator/awarder is the shared sink for
	// every trigger; the progress tracker feeds it on course completion.
	achievementStore := achievements.NewStore(db)
	achievementService := achievements.NewService(achievementStore)
	achievementHandler := achievements.NewHandler(achievementService)

	courseStore := courses.NewStore(db)
	progressService := progress.NewService(progress.NewStore(db), courseStore, achievementService)
	progressHandler := progress.NewHandler(progressService)

	courseService := courses.NewService(courseStore, achievementService, progressService)
	courseHandler := courses.NewHandler(courseService)

	forumHandler := forum.NewHandler(forum.NewService(forum.NewStore(db), achievementService))
	quizHandler := quizzes.NewHandler(quizzes.NewService(quizzes.NewStore(db), achievementService))

	authHandler := auth.NewHandler(db)

	r := mux.NewRouter()
	api := r.PathPrefix("/api/v1").Subrouter()

	// Public routes
	api.HandleFunc("/auth/register", authHandler.Register).Methods("POST")
	api.HandleFunc("/auth/login", authHandler.Login).Methods("POST")

	// Protected routes
	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.AuthMiddleware)
	protected.HandleFunc("/auth/me", authHandler.GetCurrentUser).Methods("GET")

	protected.HandleFunc("/achievements", achievementHandler.ListAchievements).Methods("GET")
	protected.HandleFunc("/achievements/me", achievementHandler.ListUserAchievements).Methods("GET")
	protected.HandleFunc("/achievements/evaluate", achievementHandler.Evaluate).Methods("POST")

	protected.HandleFunc("/progress/lessons", progressHandler.CompleteLesson).Methods("POST")
	protected.HandleFunc("/progress/courses/{courseID}", progressHandler.GetCourseProgress).Methods("GET")

	protected.HandleFunc("/courses", courseHandler.ListCourses).Methods("GET")
	protected.HandleFunc("/enrollments", courseHandler.Enroll).Methods("POST")
	protected.HandleFunc("/certificates", courseHandler.IssueCertificate).Methods("POST")
	protected.HandleFunc("/certificates/me", courseHandler.ListCertificates).Methods("GET")

	protected.HandleFunc("/forum/posts", forumHandler.CreatePost).Methods("POST")
	protected.HandleFunc("/forum/posts/{postID}/replies", forumHandler.CreateReply).Methods("POST")
	protected.HandleFunc("/forum/posts/{postID}/accept", forumHandler.AcceptAnswer).Methods("POST")

	protected.HandleFunc("/quizzes/{quizID}/attempts", quizHandler.SubmitAttempt).Methods("POST")
	protected.HandleFunc("/quizzes/attempts/me", quizHandler.ListAttempts).Methods("GET")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	handler := c.Handler(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on :%s", port)
	if err := http.ListenAndServe(":"+port, handler); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
