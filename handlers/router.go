package handlers

import (
	"net/http"

	"facultypay/config"
	"facultypay/middleware"
	"facultypay/models"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter wires every API route onto a chi router.
func NewRouter(cfg *config.Config, store Store) http.Handler {
	authHandler := NewAuthHandler(cfg, store)
	workloadHandler := NewWorkloadHandler(cfg, store)
	adminHandler := NewAdminHandler(cfg, store)

	router := chi.NewRouter()
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Logger)
	router.Use(chimiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Disposition", "X-Receipt-Number"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})

	router.Route("/api", func(r chi.Router) {
		// Public routes
		r.Post("/auth/login", authHandler.Login)
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/logout", authHandler.Logout)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(middleware.AuthMiddleware(store))

			// Reachable even when a password change is pending
			r.Post("/auth/change-password", authHandler.ChangePassword)
			r.Get("/me", authHandler.Me)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequirePasswordChange)

				r.Route("/faculty/{facultyID}", func(r chi.Router) {
					r.Get("/subjects", workloadHandler.Subjects)
					r.Post("/daily-workload", workloadHandler.CreateEntry)
					r.Put("/daily-workload/{entryID}", workloadHandler.UpdateEntry)
					r.Delete("/daily-workload/{entryID}", workloadHandler.DeleteEntry)
					r.Get("/monthly-summary", workloadHandler.MonthlySummary)
					r.Get("/receipt/pdf", workloadHandler.ReceiptPDF)
				})

				// Admin only routes
				r.Route("/admin", func(r chi.Router) {
					r.Use(middleware.RequireRole(models.RoleAdmin))
					r.Get("/faculty", adminHandler.ListFaculty)
					r.Post("/faculty", adminHandler.CreateFaculty)
					r.Delete("/faculty/{id}", adminHandler.DeleteFaculty)
					r.Get("/subjects", adminHandler.ListSubjects)
					r.Post("/subjects", adminHandler.CreateSubject)
					r.Delete("/subjects/{id}", adminHandler.DeleteSubject)
					r.Get("/workload", adminHandler.Workload)
					r.Get("/analytics", adminHandler.Analytics)
					r.Get("/export", adminHandler.Export)
				})
			})
		})
	})

	return router
}
