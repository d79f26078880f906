package http

import (
	"log/slog"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-attendance-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(
	logger *slog.Logger,
	allowedOrigins []string,
	JWTService jwt.Service,
	attendanceHandler AttendanceHandler,
	requestHandler RequestHandler,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(chiMiddleware.RequestID)
	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {
		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired)

			r.Route("/attendance", func(r chi.Router) {
				r.With(middleware.RequirePermission(user.PermissionAttendancePunch)).Post("/punches", attendanceHandler.SubmitPunch)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionAttendanceViewOwn))
					r.Get("/punches", attendanceHandler.ListPunches)

					r.Route("/summary", func(r chi.Router) {
						r.Get("/", attendanceHandler.GetSummary)
						r.Get("/weekly", attendanceHandler.GetWeeklySummary)
						r.Get("/monthly", attendanceHandler.GetMonthlySummary)
					})
				})
			})

			r.Route("/requests", func(r chi.Router) {
				r.With(middleware.RequirePermission(user.PermissionRequestViewOwn)).Get("/", requestHandler.List)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionRequestCreate))
					r.Post("/overtime", requestHandler.CreateOvertime)
					r.Post("/leave", requestHandler.CreateLeave)
				})

				r.Route("/{id}", func(r chi.Router) {
					r.With(middleware.RequirePermission(user.PermissionRequestViewOwn)).Get("/", requestHandler.Get)
					r.Post("/approve", requestHandler.Approve)
					r.Post("/reject", requestHandler.Reject)
					r.Post("/cancel", requestHandler.Cancel)
				})
			})
		})
	})
	return r
}
