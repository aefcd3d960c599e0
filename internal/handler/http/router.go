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
	"github.com/peoplecore/hrms-backend-go/internal/domain/user"
	"github.com/peoplecore/hrms-backend-go/internal/handler/http/middleware"
	"github.com/peoplecore/hrms-backend-go/internal/pkg/jwt"
)

func NewRouter(
	jwtService jwt.Service,
	permissions *middleware.PermissionChecker,
	authHandler AuthHandler,
	attendanceHandler AttendanceHandler,
	leaveHandler LeaveHandler,
	payrollHandler PayrollHandler,
	employeeHandler EmployeeHandler,
	userHandler UserHandler,
	organizationHandler OrganizationHandler,
	profileHandler ProfileHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "hrms-backend"),
		slog.String("version", "v1.0.0"),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
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

	require := permissions.Require

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", authHandler.Login)
			r.Post("/refresh", authHandler.RefreshToken)
			r.Post("/logout", authHandler.Logout)
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/session", func(r chi.Router) {
				r.Post("/check-in", attendanceHandler.CheckIn)
				r.Post("/check-out", attendanceHandler.CheckOut)
				r.Post("/break/start", attendanceHandler.StartBreak)
				r.Post("/break/end", attendanceHandler.EndBreak)
				r.Get("/active", attendanceHandler.GetActiveSession)
			})

			r.Route("/attendance", func(r chi.Router) {
				r.Get("/my", attendanceHandler.GetMyMonth)

				r.Group(func(r chi.Router) {
					r.Use(require(user.ModuleAttendance, user.ActionRead))
					r.Get("/", attendanceHandler.ListSessions)
					r.Get("/summary/{employeeID}", attendanceHandler.GetMonthlySummary)
				})
			})

			r.Route("/leave", func(r chi.Router) {
				r.Post("/", leaveHandler.CreateLeave)
				r.Get("/my", leaveHandler.ListMyLeaves)
				r.Get("/balances/my", leaveHandler.GetMyBalances)
				r.Get("/{id}", leaveHandler.GetLeave)
				r.Post("/{id}/cancel", leaveHandler.CancelLeave)

				r.Group(func(r chi.Router) {
					r.Use(require(user.ModuleLeave, user.ActionRead))
					r.Get("/", leaveHandler.ListLeaves)
					r.Get("/balances/{employeeID}", leaveHandler.GetBalances)
				})

				r.Group(func(r chi.Router) {
					r.Use(require(user.ModuleLeave, user.ActionApprove))
					r.Post("/{id}/approve", leaveHandler.ApproveLeave)
					r.Post("/{id}/reject", leaveHandler.RejectLeave)
				})
			})

			r.Route("/payroll", func(r chi.Router) {
				r.Get("/payslips/my", payrollHandler.ListMyPayslips)

				r.Group(func(r chi.Router) {
					r.Use(require(user.ModulePayroll, user.ActionRead))
					r.Get("/payruns", payrollHandler.ListPayruns)
					r.Get("/payruns/{id}", payrollHandler.GetPayrun)
					r.Get("/payslips/{id}", payrollHandler.GetPayslip)
					r.Get("/components", payrollHandler.ListComponents)
				})

				r.Group(func(r chi.Router) {
					r.Use(require(user.ModulePayroll, user.ActionCreate))
					r.Post("/payruns", payrollHandler.GetOrCreatePayrun)
					r.Post("/payruns/{id}/generate", payrollHandler.GeneratePayslips)
					r.Post("/components", payrollHandler.CreateComponent)
				})

				r.Group(func(r chi.Router) {
					r.Use(require(user.ModulePayroll, user.ActionApprove))
					r.Post("/payruns/{id}/done", payrollHandler.MarkPayrunAsDone)
					r.Post("/payslips/{id}/approve", payrollHandler.ApprovePayslip)
				})

				r.Group(func(r chi.Router) {
					r.Use(require(user.ModulePayroll, user.ActionUpdate))
					r.Put("/components/{id}", payrollHandler.UpdateComponent)
					r.Delete("/components/{id}", payrollHandler.DeleteComponent)
				})
			})

			r.Route("/employee", func(r chi.Router) {
				r.Group(func(r chi.Router) {
					r.Use(require(user.ModuleEmployee, user.ActionRead))
					r.Get("/", employeeHandler.ListEmployees)
					r.Get("/{id}", employeeHandler.GetEmployee)
				})

				r.Group(func(r chi.Router) {
					r.Use(require(user.ModuleEmployee, user.ActionCreate))
					r.Post("/", employeeHandler.CreateEmployee)
				})

				r.Group(func(r chi.Router) {
					r.Use(require(user.ModuleEmployee, user.ActionUpdate))
					r.Put("/{id}", employeeHandler.UpdateEmployee)
				})

				r.Group(func(r chi.Router) {
					r.Use(require(user.ModuleEmployee, user.ActionDelete))
					r.Delete("/{id}", employeeHandler.DeleteEmployee)
				})
			})

			r.Route("/profile", func(r chi.Router) {
				r.Get("/", profileHandler.GetMyProfile)
				r.Put("/", profileHandler.UpdateMyProfile)
				r.Post("/avatar", profileHandler.UploadAvatar)
			})

			r.Route("/organization", func(r chi.Router) {
				r.Get("/", organizationHandler.GetOrganization)

				r.Group(func(r chi.Router) {
					r.Use(require(user.ModuleOrganization, user.ActionUpdate))
					r.Put("/", organizationHandler.UpdateOrganization)
				})
			})

			// Admin only
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAdmin)

				r.Route("/users", func(r chi.Router) {
					r.Get("/", userHandler.ListUsers)
					r.Put("/{id}/role", userHandler.UpdateUserRole)
				})

				r.Route("/permissions", func(r chi.Router) {
					r.Get("/", userHandler.ListPermissions)
					r.Put("/", userHandler.UpdatePermission)
				})
			})
		})
	})
	return r
}
