package http

import (
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/cmlabs-hris/payroll-engine/internal/config"
	"github.com/cmlabs-hris/payroll-engine/internal/handler/http/middleware"
	"github.com/cmlabs-hris/payroll-engine/internal/handler/http/response"
	"github.com/cmlabs-hris/payroll-engine/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/httprate"
	"github.com/go-chi/jwtauth/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func NewRouter(appConfig config.AppConfig, JWTService jwt.Service, attendanceHandler AttendanceHandler, payrollHandler PayrollHandler, leaveHandler LeaveHandler) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(appConfig.Env != "development")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", appConfig.Name),
		slog.String("version", appConfig.Version),
		slog.String("env", appConfig.Env),
	)

	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   appConfig.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition", "X-Payroll-Run-ID", "X-Payroll-Skipped"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelInfo,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api/v1/payroll", func(r chi.Router) {
		r.Use(chiMiddleware.Timeout(appConfig.RequestTimeout))
		r.Use(httprate.Limit(appConfig.RateLimit, time.Minute,
			httprate.WithKeyFuncs(httprate.KeyByIP),
			httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
				response.TooManyRequests(w, "Too many requests, slow down")
			}),
		))

		// Requires authentication
		r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
		r.Use(middleware.AuthRequired)

		r.Get("/deductions", payrollHandler.GetDeductions)
		r.Post("/time/parse", attendanceHandler.ParseTime)
		r.Post("/attendance/aggregate", attendanceHandler.Aggregate)
		r.Post("/payslips/compute", payrollHandler.ComputePayslip)

		r.Route("/employees/{employeeID}", func(r chi.Router) {
			r.Get("/payslip", payrollHandler.GetPayslip)
			r.Get("/months", attendanceHandler.ListMonths)
			r.Get("/leave", leaveHandler.GetBalance)
			r.With(middleware.RequireSelfOrRole("employeeID", jwt.RoleOwner, jwt.RoleManager)).
				Post("/leave", leaveHandler.RequestLeave)
		})

		// Whole-company registers: managers and owners only
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(jwt.RoleOwner, jwt.RoleManager))
			r.Get("/register", payrollHandler.GetRegister)
			r.Get("/register.xlsx", payrollHandler.ExportRegister)
		})
	})
	return r
}
