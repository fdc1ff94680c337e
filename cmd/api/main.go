package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cmlabs-hris/payroll-engine/internal/config"
	"github.com/cmlabs-hris/payroll-engine/internal/domain/attendance"
	"github.com/cmlabs-hris/payroll-engine/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-engine/internal/domain/leave"
	appHTTP "github.com/cmlabs-hris/payroll-engine/internal/handler/http"
	"github.com/cmlabs-hris/payroll-engine/internal/pkg/cron"
	"github.com/cmlabs-hris/payroll-engine/internal/pkg/database"
	"github.com/cmlabs-hris/payroll-engine/internal/pkg/jwt"
	"github.com/cmlabs-hris/payroll-engine/internal/pkg/storage"
	"github.com/cmlabs-hris/payroll-engine/internal/repository/filestore"
	"github.com/cmlabs-hris/payroll-engine/internal/repository/postgresql"
	attendanceService "github.com/cmlabs-hris/payroll-engine/internal/service/attendance"
	"github.com/cmlabs-hris/payroll-engine/internal/service/deduction"
	leaveService "github.com/cmlabs-hris/payroll-engine/internal/service/leave"
	payrollService "github.com/cmlabs-hris/payroll-engine/internal/service/payroll"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()})).With(
		slog.String("app", cfg.App.Name),
		slog.String("env", cfg.App.Env),
	))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err = run(ctx, cfg)
	stop()
	if err != nil {
		slog.Error("Server exited with error", "error", err)
		os.Exit(1)
	}
}

// run wires the application and serves until ctx is done. Every resource it
// opens is released before it returns, including on startup failures.
func run(ctx context.Context, cfg *config.Config) error {
	ctx, stop := context.WithCancel(ctx)
	defer stop()

	repos, err := openStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to open %s store: %w", cfg.Store.Driver, err)
	}
	defer repos.close()

	engine := deduction.Default()
	if cfg.Payroll.ScheduleFile != "" {
		schedule, err := deduction.LoadSchedule(cfg.Payroll.ScheduleFile)
		if err != nil {
			return fmt.Errorf("failed to load deduction schedule %s: %w", cfg.Payroll.ScheduleFile, err)
		}
		if engine, err = deduction.NewEngine(schedule); err != nil {
			return fmt.Errorf("invalid deduction schedule %s: %w", cfg.Payroll.ScheduleFile, err)
		}
		slog.Info("Deduction schedule loaded", "file", cfg.Payroll.ScheduleFile)
	}

	aggregator := attendanceService.NewAggregator(
		attendanceService.WithGraceEnd(cfg.Payroll.GraceEnd),
		attendanceService.WithShiftEnd(cfg.Payroll.ShiftEnd),
		attendanceService.WithBreakMinutes(cfg.Payroll.BreakMinutes),
	)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	attendanceSvc := attendanceService.NewAttendanceService(repos.attendance, aggregator)
	payrollSvc := payrollService.NewPayrollService(repos.employees, attendanceSvc, payrollService.NewCalculator(engine))
	leaveSvc := leaveService.NewLeaveService(repos.leave, repos.employees, leaveService.NewQuotaCalculator(leaveService.Quota{
		leave.TypeSick:      cfg.Leave.SickDays,
		leave.TypeVacation:  cfg.Leave.VacationDays,
		leave.TypeEmergency: cfg.Leave.EmergencyDays,
	}))

	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	payrollHandler := appHTTP.NewPayrollHandler(payrollSvc)
	leaveHandler := appHTTP.NewLeaveHandler(leaveSvc)

	router := appHTTP.NewRouter(cfg.App, JWTService, attendanceHandler, payrollHandler, leaveHandler)

	scheduler := cron.NewScheduler()
	if cfg.Payroll.ArchiveDir != "" {
		archive, err := storage.NewLocalStorage(cfg.Payroll.ArchiveDir)
		if err != nil {
			return fmt.Errorf("failed to open register archive %s: %w", cfg.Payroll.ArchiveDir, err)
		}
		job := cron.NewRegisterArchiveJob(payrollSvc, archive)
		if err := scheduler.AddJob("payroll-register-archive", cfg.Payroll.ArchiveSchedule, job.Run); err != nil {
			return err
		}
	}
	scheduler.Start(ctx)
	defer scheduler.Stop()

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		slog.Info("Server running", "addr", server.Addr, "store", cfg.Store.Driver)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
			stop()
		}
		close(serveErr)
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Graceful shutdown failed", "error", err)
	}
	slog.Info("Server stopped")

	return <-serveErr
}

// stores holds the repositories of the configured driver.
type stores struct {
	employees  employee.EmployeeRepository
	attendance attendance.AttendanceRepository
	leave      leave.BalanceRepository
	close      func()
}

// openStore builds the repositories for the configured driver.
func openStore(ctx context.Context, cfg *config.Config) (stores, error) {
	switch cfg.Store.Driver {
	case config.StoreDriverFile:
		employeePath, attendancePath := filestore.Paths(cfg.Store.DataDir)
		return stores{
			employees:  filestore.NewEmployeeRepository(employeePath),
			attendance: filestore.NewAttendanceRepository(attendancePath),
			leave:      filestore.NewLeaveBalanceRepository(),
			close:      func() {},
		}, nil

	case config.StoreDriverPostgres:
		db, err := database.NewPostgreSQLDB(ctx, database.PoolConfig{
			DSN:      cfg.DatabaseURL(),
			MaxConns: cfg.Database.MaxConns,
			MinConns: cfg.Database.MinConns,
		})
		if err != nil {
			return stores{}, err
		}
		if cfg.Database.AutoMigrate {
			if err := postgresql.EnsureSchema(ctx, db); err != nil {
				db.Close()
				return stores{}, err
			}
		}
		return stores{
			employees:  postgresql.NewEmployeeRepository(db),
			attendance: postgresql.NewAttendanceRepository(db),
			leave:      postgresql.NewLeaveBalanceRepository(db),
			close:      db.Close,
		}, nil

	default:
		return stores{}, fmt.Errorf("unsupported store driver %q", cfg.Store.Driver)
	}
}
