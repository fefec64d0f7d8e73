package http

import (
	"log/slog"

	"github.com/garagepro/garage-backend-go/internal/domain/user"
	"github.com/garagepro/garage-backend-go/internal/handler/http/middleware"
	"github.com/garagepro/garage-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

type Handlers struct {
	Auth       AuthHandler
	Employee   EmployeeHandler
	Attendance AttendanceHandler
	Leave      LeaveHandler
	Salary     SalaryHandler
}

func NewRouter(JWTService jwt.Service, logger *slog.Logger, allowedOrigins []string, h Handlers) *chi.Mux {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(chiMiddleware.RequestID)
	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelInfo,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/login", h.Auth.Login)

		// Kiosk scans carry no token. A TOTP code is checked by the service when configured.
		r.Post("/attendance/scan", h.Attendance.Scan)

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService))

			r.Route("/auth", func(r chi.Router) {
				r.Post("/logout", h.Auth.Logout)
				r.Get("/me", h.Auth.Me)
				r.With(middleware.RequirePermission(user.PermissionUserManage)).Post("/users", h.Auth.CreateUser)
			})

			r.With(middleware.RequirePermission(user.PermissionKioskView)).Get("/kiosk/code", h.Attendance.KioskCode)

			r.Route("/employees", func(r chi.Router) {
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionEmployeeView))
					r.Get("/", h.Employee.ListEmployees)
					r.Get("/{id}", h.Employee.GetEmployee)
				})
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionEmployeeManage))
					r.Post("/", h.Employee.CreateEmployee)
					r.Post("/import", h.Employee.ImportEmployees)
					r.Put("/{id}", h.Employee.UpdateEmployee)
					r.Post("/{id}/deactivate", h.Employee.InactivateEmployee)
				})
			})

			r.Route("/attendance", func(r chi.Router) {
				r.Use(middleware.RequirePermission(user.PermissionAttendanceView))
				r.Get("/", h.Attendance.List)
				r.Get("/summary", h.Attendance.Summary)
				r.Get("/export", h.Attendance.Export)
				r.Get("/stream", h.Attendance.Stream)
				r.Get("/{id}", h.Attendance.Get)
			})

			r.Route("/leaves", func(r chi.Router) {
				r.With(middleware.RequirePermission(user.PermissionLeaveView)).Get("/", h.Leave.ListRequests)
				r.With(middleware.RequirePermission(user.PermissionLeaveView)).Get("/{id}", h.Leave.GetRequest)
				r.With(middleware.RequirePermission(user.PermissionLeaveCreate)).Post("/", h.Leave.CreateRequest)
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionLeaveApprove))
					r.Post("/{id}/approve", h.Leave.ApproveRequest)
					r.Post("/{id}/reject", h.Leave.RejectRequest)
				})
			})

			r.Route("/salaries", func(r chi.Router) {
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionSalaryView))
					r.Get("/", h.Salary.List)
					r.Get("/export", h.Salary.Export)
					r.Get("/{id}", h.Salary.Get)
					r.Get("/{id}/payslip", h.Salary.Payslip)
				})
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionSalaryManage))
					r.Post("/generate", h.Salary.Generate)
					r.Patch("/{id}/status", h.Salary.UpdateStatus)
					r.Patch("/{id}/deductions", h.Salary.UpdateDeductions)
					r.Delete("/{id}", h.Salary.Delete)
				})
			})
		})
	})

	return r
}
