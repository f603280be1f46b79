package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/staffdeck/staffdeck-backend-go/internal/handler/http/middleware"
	"github.com/staffdeck/staffdeck-backend-go/internal/pkg/jwt"
	"github.com/staffdeck/staffdeck-backend-go/internal/pkg/session"
)

type Handlers struct {
	Auth           AuthHandler
	Employee       EmployeeHandler
	Attendance     AttendanceHandler
	Reconciliation ReconciliationHandler
	Settings       SettingsHandler
	Payroll        PayrollHandler
	Ticket         TicketHandler
}

func NewRouter(jwtService jwt.Service, sessions *session.Store, h Handlers) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "staffdeck"),
		slog.String("version", "v1.0.0"),
		slog.String("env", os.Getenv("APP_ENV")),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Elevated-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok\n"))
	})

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", h.Auth.Login)
			r.Post("/refresh", h.Auth.RefreshToken)
			r.Post("/logout", h.Auth.Logout)

			// PIN enrollment and verification require a live access token
			r.Group(func(r chi.Router) {
				r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
				r.Use(middleware.AuthRequired(sessions))
				r.Post("/pin", h.Auth.SetPIN)
				r.Post("/pin/verify", h.Auth.VerifyPIN)
			})
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(sessions))

			r.Route("/employees", func(r chi.Router) {
				r.Get("/", h.Employee.List)
				r.Get("/{id}", h.Employee.Get)

				// HR/admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireManagement)
					r.Post("/", h.Employee.Create)
					r.Put("/{id}", h.Employee.Update)
					r.Delete("/{id}", h.Employee.Delete)

					// Bulk edits are sensitive: recent PIN re-auth required
					r.Group(func(r chi.Router) {
						r.Use(middleware.RequireElevated(jwtService, sessions))
						r.Patch("/bulk", h.Employee.BulkUpdate)
					})
				})
			})

			r.Route("/attendance", func(r chi.Router) {
				r.Get("/", h.Attendance.List)
				r.Get("/week", h.Attendance.GetWeek)

				r.Route("/reconciliation", func(r chi.Router) {
					r.Get("/", h.Reconciliation.Board)
					r.Post("/overrides", h.Reconciliation.ToggleOverride)
				})

				// HR/admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireManagement)
					r.Post("/", h.Attendance.MarkDay)
					r.Delete("/{id}", h.Attendance.Delete)
				})
			})

			r.Route("/settings", func(r chi.Router) {
				r.Get("/", h.Settings.Get)

				// Admin only, PIN-elevated
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireAdmin)
					r.Use(middleware.RequireElevated(jwtService, sessions))
					r.Put("/", h.Settings.Update)
				})
			})

			// Payroll is sensitive: admin/HR with recent PIN re-auth
			r.Route("/payroll", func(r chi.Router) {
				r.Use(middleware.RequireManagement)
				r.Use(middleware.RequireElevated(jwtService, sessions))
				r.Get("/overview", h.Payroll.Overview)
			})

			r.Route("/tickets", func(r chi.Router) {
				r.Get("/", h.Ticket.List)
				r.Get("/{id}", h.Ticket.Get)
				r.Post("/", h.Ticket.Create)

				// HR/admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireManagement)
					r.Patch("/{id}/status", h.Ticket.UpdateStatus)
				})
			})
		})
	})
	return r
}
