package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/metainnovalms-create/Meta-INNOVA-lms-sub002/internal/handler/http/middleware"
	"github.com/metainnovalms-create/Meta-INNOVA-lms-sub002/internal/pkg/jwt"
)

type RouterConfig struct {
	AppName        string
	Version        string
	Env            string
	AllowedOrigins []string
	LogLevel       slog.Level
}

type Handlers struct {
	Calendar     CalendarHandler
	Attendance   AttendanceHandler
	Leave        LeaveHandler
	Payroll      PayrollHandler
	Invoice      InvoiceHandler
	Report       ReportHandler
	Notification NotificationHandler
}

func NewRouter(cfg RouterConfig, JWTService jwt.Service, h Handlers) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", cfg.AppName),
		slog.String("version", cfg.Version),
		slog.String("env", cfg.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  cfg.LogLevel,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {
		// SSE authenticates with its own short-lived query token.
		r.Get("/notifications/stream", h.Notification.Stream)

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired)

			r.Route("/calendar", func(r chi.Router) {
				r.Get("/days", h.Calendar.ListDays)

				// Manager only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireManager)
					r.Put("/days", h.Calendar.UpsertDays)
					r.Post("/weekly-offs", h.Calendar.GenerateWeeklyOffs)
					r.Delete("/days/{id}", h.Calendar.DeleteDay)
				})
			})

			r.Route("/attendance", func(r chi.Router) {
				r.Get("/employees/{employeeID}/month", h.Attendance.GetMonth)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireEmployee)
					r.Post("/check-in", h.Attendance.CheckIn)
					r.Post("/check-out", h.Attendance.CheckOut)
				})

				// Manager only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireManager)
					r.Post("/employees/{employeeID}/overtime/backfill", h.Attendance.BackfillOvertime)
					r.Post("/overtime/backfill", h.Attendance.BackfillCompanyOvertime)
					r.Put("/{id}/correction", h.Attendance.Correct)
					r.Patch("/overtime-requests/{id}", h.Attendance.ReviewOvertime)
				})
			})

			r.Route("/leaves", func(r chi.Router) {
				r.Get("/", h.Leave.ListApplications)
				r.Get("/{id}", h.Leave.GetApplication)
				r.Get("/balances/{employeeID}", h.Leave.GetBalances)

				// Manager only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireManager)
					r.Post("/", h.Leave.CreateApplication)
					r.Put("/{id}", h.Leave.CorrectApplication)
					r.Delete("/{id}", h.Leave.DeleteApplication)
					r.Put("/balances", h.Leave.UpsertBalance)
				})
			})

			r.Route("/payroll", func(r chi.Router) {
				r.Get("/employees/{employeeID}/payout", h.Payroll.GetPayout)
				r.Get("/employees/{employeeID}/salary-structure", h.Payroll.GetSalaryStructure)
				r.Get("/payslips", h.Payroll.ListPayslips)
				r.Get("/payslips/{id}", h.Payroll.GetPayslip)

				// Manager only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireManager)
					r.Put("/employees/{employeeID}/salary-structure", h.Payroll.UpsertSalaryStructure)
					r.Post("/payslips", h.Payroll.GeneratePayslip)
					r.Post("/payslips/{id}/finalize", h.Payroll.FinalizePayslip)
				})
			})

			r.Route("/invoices", func(r chi.Router) {
				r.Use(middleware.RequireManager)
				r.Post("/preview", h.Invoice.Preview)
				r.Post("/", h.Invoice.Create)
				r.Get("/", h.Invoice.List)
				r.Get("/{id}", h.Invoice.Get)
				r.Post("/{id}/payments", h.Invoice.RecordPayment)
				r.Post("/{id}/issue", h.Invoice.Issue)
				r.Post("/{id}/cancel", h.Invoice.Cancel)
			})

			r.Route("/reports", func(r chi.Router) {
				r.Use(middleware.RequireManager)
				r.Get("/attendance-register", h.Report.GetAttendanceRegister)
			})

			r.Route("/notifications", func(r chi.Router) {
				r.Get("/", h.Notification.List)
				r.Patch("/read", h.Notification.MarkAsRead)
				r.Post("/sse-token", h.Notification.GetSSEToken)
			})
		})
	})
	return r
}
