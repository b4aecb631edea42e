package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"physim-backend/internal/handlers"
	"physim-backend/internal/metrics"
	"physim-backend/internal/middleware"
	"physim-backend/internal/models"
)

func New(
	jwtAuth *middleware.JWTAuth,
	approvals middleware.ApprovalChecker,
	authHandler *handlers.AuthHandler,
	studentHandler *handlers.StudentHandler,
	teacherHandler *handlers.TeacherHandler,
	adminHandler *handlers.AdminHandler,
	logger *zap.Logger,
	frontendURL string,
	authRateLimit int,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.CORS(frontendURL))
	r.Use(middleware.RequestLogger(logger))
	r.Use(metrics.Middleware)

	authLimiter := middleware.NewRateLimiter(authRateLimit, time.Minute)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	r.Route("/api/v1", func(r chi.Router) {

		// ──── Auth Routes (public) ────
		r.Route("/auth", func(r chi.Router) {
			r.Use(authLimiter.Middleware)
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
			r.Post("/refresh", authHandler.Refresh)

			// Logout requires auth
			r.Group(func(r chi.Router) {
				r.Use(jwtAuth.Middleware)
				r.Post("/logout", authHandler.Logout)
			})
		})

		// ──── Student Routes ────
		r.Route("/student", func(r chi.Router) {
			r.Use(jwtAuth.Middleware)
			r.Use(middleware.RequireRole(models.RoleStudent))

			// Profile is reachable before approval
			r.Get("/profile", studentHandler.GetProfile)
			r.Put("/profile", studentHandler.UpdateProfile)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireApprovedStudent(approvals))
				r.Get("/simulations/available", studentHandler.AvailableSimulations)
				r.Post("/simulation/start", studentHandler.StartSimulation)
				r.Post("/simulation/observation", studentHandler.AddObservation)
				r.Post("/simulation/mark-done", studentHandler.MarkDone)
				r.Get("/simulation/recent", studentHandler.RecentSimulations)
				r.Get("/simulation/{name}", studentHandler.GetSimulation)
			})
		})

		// ──── Teacher Routes ────
		r.Route("/teacher", func(r chi.Router) {
			r.Use(jwtAuth.Middleware)
			r.Use(middleware.RequireRole(models.RoleTeacher))

			r.Get("/profile", teacherHandler.GetProfile)
			r.Put("/profile", teacherHandler.UpdateProfile)

			r.Get("/students/pending", teacherHandler.PendingStudents)
			r.Put("/student/{id}/approve", teacherHandler.ApproveStudent)

			r.Get("/stats", teacherHandler.SchoolStats)
			r.Get("/reports", teacherHandler.StudentReports)
			r.Get("/reports/export", teacherHandler.ExportStudentReports)

			r.Post("/simulations", teacherHandler.CreateSimulation)
			r.Get("/simulations", teacherHandler.ListSimulations)
			r.Put("/simulation/{id}", teacherHandler.UpdateSimulation)
			r.Delete("/simulation/{id}", teacherHandler.DeleteSimulation)
		})

		// ──── Admin Routes ────
		r.Route("/admin", func(r chi.Router) {
			r.Use(jwtAuth.Middleware)
			r.Use(middleware.RequireRole(models.RoleAdmin))

			r.Post("/teacher", adminHandler.CreateTeacher)
			r.Get("/teachers", adminHandler.ListTeachers)

			r.Get("/schools", adminHandler.Schools)
			r.Get("/school/{schoolName}", adminHandler.SchoolDetail)

			r.Get("/pending-students", adminHandler.PendingStudents)
			r.Put("/student/{id}/approval", adminHandler.DecideStudent)
		})
	})

	return r
}
