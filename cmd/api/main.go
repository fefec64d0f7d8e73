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

	"github.com/garagepro/garage-backend-go/internal/config"
	"github.com/garagepro/garage-backend-go/internal/domain/attendance"
	"github.com/garagepro/garage-backend-go/internal/domain/employee"
	"github.com/garagepro/garage-backend-go/internal/domain/leave"
	"github.com/garagepro/garage-backend-go/internal/domain/salary"
	"github.com/garagepro/garage-backend-go/internal/domain/user"
	appHTTP "github.com/garagepro/garage-backend-go/internal/handler/http"
	"github.com/garagepro/garage-backend-go/internal/pkg/cron"
	"github.com/garagepro/garage-backend-go/internal/pkg/database"
	"github.com/garagepro/garage-backend-go/internal/pkg/jwt"
	"github.com/garagepro/garage-backend-go/internal/pkg/kiosk"
	"github.com/garagepro/garage-backend-go/internal/pkg/logger"
	"github.com/garagepro/garage-backend-go/internal/pkg/sse"
	"github.com/garagepro/garage-backend-go/internal/pkg/storage"
	"github.com/garagepro/garage-backend-go/internal/pkg/workday"
	"github.com/garagepro/garage-backend-go/internal/repository/memory"
	"github.com/garagepro/garage-backend-go/internal/repository/postgresql"
	attendanceService "github.com/garagepro/garage-backend-go/internal/service/attendance"
	serviceAuth "github.com/garagepro/garage-backend-go/internal/service/auth"
	employeeService "github.com/garagepro/garage-backend-go/internal/service/employee"
	leaveService "github.com/garagepro/garage-backend-go/internal/service/leave"
	salaryService "github.com/garagepro/garage-backend-go/internal/service/salary"
)

type repositories struct {
	tx         database.Transactor
	users      user.UserRepository
	employees  employee.EmployeeRepository
	attendance attendance.AttendanceRepository
	leaves     leave.LeaveRequestRepository
	salaries   salary.SalaryRepository
	close      func()
}

func openRepositories(ctx context.Context, cfg *config.Config) (*repositories, error) {
	if cfg.Storage.Driver == config.StorageDriverMemory {
		slog.Warn("using in-memory storage; data is lost on restart")
		store := memory.NewStore()
		return &repositories{
			tx:         store,
			users:      memory.NewUserRepository(store),
			employees:  memory.NewEmployeeRepository(store),
			attendance: memory.NewAttendanceRepository(store),
			leaves:     memory.NewLeaveRequestRepository(store),
			salaries:   memory.NewSalaryRepository(store),
			close:      func() {},
		}, nil
	}

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL())
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := db.Migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return &repositories{
		tx:         postgresql.NewTransactor(db),
		users:      postgresql.NewUserRepository(db),
		employees:  postgresql.NewEmployeeRepository(db),
		attendance: postgresql.NewAttendanceRepository(db),
		leaves:     postgresql.NewLeaveRequestRepository(db),
		salaries:   postgresql.NewSalaryRepository(db),
		close:      db.Close,
	}, nil
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	log := logger.New(os.Stdout, cfg.App.Env, cfg.SlogLevel())
	slog.SetDefault(log)

	if err := run(cfg, log); err != nil {
		slog.Error("server stopped with error", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repos, err := openRepositories(ctx, cfg)
	if err != nil {
		return err
	}
	defer repos.close()

	calendar, err := workday.NewCalendar(cfg.Attendance.Timezone, cfg.Attendance.OffDays)
	if err != nil {
		return fmt.Errorf("build calendar: %w", err)
	}
	kioskVerifier, err := kiosk.NewVerifier(cfg.Kiosk.TOTPSecret)
	if err != nil {
		return fmt.Errorf("invalid KIOSK_TOTP_SECRET: %w", err)
	}
	JWTService, err := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	if err != nil {
		return fmt.Errorf("build jwt service: %w", err)
	}

	authService := serviceAuth.NewAuthService(repos.users, JWTService)
	if err := authService.SeedAdmin(ctx, cfg.Admin.Email, cfg.Admin.Password); err != nil {
		return err
	}

	employeeSvc := employeeService.NewEmployeeService(repos.employees)
	summarizer := attendanceService.NewSummarizer(
		repos.attendance,
		repos.leaves,
		attendanceService.NewAggregator(calendar, cfg.Attendance.GracePeriod),
		leaveService.NewReconciler(),
	)
	attendanceSvc := attendanceService.NewAttendanceService(
		repos.tx,
		repos.attendance,
		employeeSvc,
		calendar,
		summarizer,
		kioskVerifier,
		sse.NewHub(),
	)
	var payslipArchive storage.FileStorage
	if cfg.Payroll.ArchiveDir != "" {
		local, err := storage.NewLocalStorage(cfg.Payroll.ArchiveDir)
		if err != nil {
			return err
		}
		payslipArchive = local
	}

	leaveSvc := leaveService.NewLeaveService(repos.tx, repos.leaves, repos.employees)
	salarySvc := salaryService.NewSalaryService(
		repos.tx,
		repos.salaries,
		employeeSvc,
		calendar,
		summarizer,
		salaryService.NewCalculator(cfg.Payroll.TaxRate),
		payslipArchive,
	)

	router := appHTTP.NewRouter(JWTService, log, cfg.App.CORSAllowedOrigins, appHTTP.Handlers{
		Auth:       appHTTP.NewAuthHandler(authService),
		Employee:   appHTTP.NewEmployeeHandler(employeeSvc),
		Attendance: appHTTP.NewAttendanceHandler(attendanceSvc),
		Leave:      appHTTP.NewLeaveHandler(leaveSvc),
		Salary:     appHTTP.NewSalaryHandler(salarySvc),
	})

	scheduler := cron.NewScheduler()
	cron.NewAttendanceJobs(repos.attendance, calendar).RegisterJobs(scheduler)
	scheduler.Start(ctx)
	defer scheduler.Stop()

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server running", "addr", server.Addr, "storage", cfg.Storage.Driver, "timezone", cfg.Attendance.Timezone)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
