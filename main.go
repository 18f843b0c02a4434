package main

import (
	"log"
	"net/http"

	"github.com/Nuga25/interneefy-backend/config"
	"github.com/Nuga25/interneefy-backend/database"
	"github.com/Nuga25/interneefy-backend/handlers"
	"github.com/Nuga25/interneefy-backend/mailer"
	"github.com/Nuga25/interneefy-backend/middleware"
	"github.com/Nuga25/interneefy-backend/models"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment")
	}

	cfg := config.Load()

	// A missing signing secret is a fatal configuration error, not a
	// request-time failure.
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET must be set")
	}
	middleware.SetJWTSecret(cfg.JWTSecret)

	if err := database.Init(cfg.DatabaseURL); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	var mailService *mailer.Service
	if provider, err := mailer.NewSMTPProvider(cfg); err != nil {
		log.Printf("Mail disabled: %v", err)
	} else {
		mailService = mailer.NewService(provider, cfg.MailFrom)
		defer mailService.Close()
	}

	authHandler := handlers.NewAuthHandler(cfg)
	userHandler := handlers.NewUserHandler(cfg, mailService)
	taskHandler := handlers.NewTaskHandler(cfg)
	evaluationHandler := handlers.NewEvaluationHandler(cfg)
	companyHandler := handlers.NewCompanyHandler(cfg)
	statsHandler := handlers.NewStatsHandler(cfg)

	router := chi.NewRouter()
	router.Use(chimiddleware.Logger)
	router.Use(chimiddleware.Recoverer)

	// Public routes
	router.Post("/api/auth/register-company", authHandler.RegisterCompany)
	router.Post("/api/auth/login", authHandler.Login)

	// Protected routes
	router.Group(func(r chi.Router) {
		r.Use(middleware.AuthMiddleware)

		r.Post("/api/auth/change-password", authHandler.ChangePassword)

		r.Post("/api/users", userHandler.Create)
		r.Get("/api/users", userHandler.List)
		r.Get("/api/users/{id}", userHandler.Get)
		r.Delete("/api/users/{id}", userHandler.Delete)

		r.Post("/api/tasks", taskHandler.Create)
		r.Get("/api/tasks", taskHandler.ListMine)
		r.Get("/api/tasks/{id}", taskHandler.Get)
		r.Put("/api/tasks/{id}", taskHandler.Update)
		r.Delete("/api/tasks/{id}", taskHandler.Delete)
		r.Get("/api/supervision/tasks", taskHandler.ListSupervised)

		r.Post("/api/evaluations", evaluationHandler.Submit)
		r.Get("/api/evaluations/me", evaluationHandler.GetMine)
		r.Get("/api/supervision/evaluations", evaluationHandler.ListForSupervisor)

		r.Get("/api/company", companyHandler.Get)
		r.Put("/api/company", companyHandler.Update)

		// Admin only routes
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(models.RoleAdmin))
			r.Get("/api/statistics/enrollment", statsHandler.Enrollment)
			r.Get("/api/statistics/domains", statsHandler.Domains)
		})
	})

	log.Printf("Server starting on port %s", cfg.ServerPort)
	log.Fatal(http.ListenAndServe(":"+cfg.ServerPort, router))
}
