package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"

	"github.com/silangan-hr/payroll-engine-go/internal/handler/http/middleware"
	"github.com/silangan-hr/payroll-engine-go/internal/pkg/jwt"
)

func NewRouter(
	JWTService jwt.Service,
	payrollHandler PayrollHandler,
	leaveHandler LeaveHandler,
	attendanceHandler AttendanceHandler,
	compensationHandler CompensationHandler,
	notificationHandler NotificationHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "payroll-engine"),
		slog.String("version", "v1.0.0"),
		slog.String("env", "development"),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
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

	r.Route("/api/v1", func(r chi.Router) {

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService.JWTAuth()))

			r.Route("/payroll", func(r chi.Router) {
				r.Route("/settings", func(r chi.Router) {
					r.Get("/", payrollHandler.GetSettings)
					r.Put("/", payrollHandler.UpdateSettings)
				})

				r.Route("/runs", func(r chi.Router) {
					r.Get("/", payrollHandler.ListRuns)
					r.Post("/", payrollHandler.CreateRun)

					r.Route("/{id}", func(r chi.Router) {
						r.Get("/", payrollHandler.GetRun)
						r.Put("/", payrollHandler.UpdateRun)
						r.Post("/status", payrollHandler.TransitionRun)
						r.Get("/summary", payrollHandler.GetRunSummary)
						r.Get("/payslips", payrollHandler.ListRunPayslips)
					})
				})

				r.Route("/payslips/{id}", func(r chi.Router) {
					r.Get("/", payrollHandler.GetPayslip)
					r.Put("/", payrollHandler.UpdatePayslip)
					r.Get("/pdf", payrollHandler.DownloadPayslipPDF)
				})
			})

			r.Route("/leave", func(r chi.Router) {
				r.Get("/balances/{employeeId}", leaveHandler.GetBalance)
				r.Post("/accruals", leaveHandler.Accrue)
				r.Post("/adjustments", leaveHandler.AdjustBalance)
				r.Get("/adjustments/{employeeId}", leaveHandler.ListAdjustments)
				r.Post("/conversions", leaveHandler.ConvertToCash)
			})

			r.Route("/attendance", func(r chi.Router) {
				r.Put("/", attendanceHandler.Upsert)
				r.Get("/{employeeId}", attendanceHandler.ListForEmployee)
			})

			r.Route("/compensation", func(r chi.Router) {
				r.Put("/", compensationHandler.UpsertProfile)
				r.Get("/{employeeId}", compensationHandler.GetProfile)
			})

			r.Get("/notifications/{employeeId}", notificationHandler.ListForEmployee)
		})
	})
	return r
}
