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

	"github.com/metainnovalms-create/Meta-INNOVA-lms-sub002/internal/config"
	"github.com/metainnovalms-create/Meta-INNOVA-lms-sub002/internal/domain/attendance"
	"github.com/metainnovalms-create/Meta-INNOVA-lms-sub002/internal/domain/payroll"
	appHTTP "github.com/metainnovalms-create/Meta-INNOVA-lms-sub002/internal/handler/http"
	"github.com/metainnovalms-create/Meta-INNOVA-lms-sub002/internal/pkg/cache"
	"github.com/metainnovalms-create/Meta-INNOVA-lms-sub002/internal/pkg/cron"
	"github.com/metainnovalms-create/Meta-INNOVA-lms-sub002/internal/pkg/database"
	"github.com/metainnovalms-create/Meta-INNOVA-lms-sub002/internal/pkg/jwt"
	"github.com/metainnovalms-create/Meta-INNOVA-lms-sub002/internal/pkg/sse"
	"github.com/metainnovalms-create/Meta-INNOVA-lms-sub002/internal/pkg/storage"
	"github.com/metainnovalms-create/Meta-INNOVA-lms-sub002/internal/repository/postgresql"
	attendanceService "github.com/metainnovalms-create/Meta-INNOVA-lms-sub002/internal/service/attendance"
	calendarService "github.com/metainnovalms-create/Meta-INNOVA-lms-sub002/internal/service/calendar"
	invoiceService "github.com/metainnovalms-create/Meta-INNOVA-lms-sub002/internal/service/invoice"
	leaveService "github.com/metainnovalms-create/Meta-INNOVA-lms-sub002/internal/service/leave"
	notificationService "github.com/metainnovalms-create/Meta-INNOVA-lms-sub002/internal/service/notification"
	payrollService "github.com/metainnovalms-create/Meta-INNOVA-lms-sub002/internal/service/payroll"
	reportService "github.com/metainnovalms-create/Meta-INNOVA-lms-sub002/internal/service/report"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		slog.Error("Error connecting to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	redisClient := cache.NewRedisClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	defer redisClient.Close()

	fileStorage, err := newFileStorage(ctx, cfg.Storage)
	if err != nil {
		slog.Error("Failed to initialize storage", "type", cfg.Storage.Type, "error", err)
		os.Exit(1)
	}

	tx := postgresql.NewTransactor(db)
	calendarRepo := postgresql.NewCalendarRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	overtimeRepo := postgresql.NewOvertimeRepository(db)
	leaveRepo := postgresql.NewLeaveRepository(db)
	leaveQuotaRepo := postgresql.NewLeaveQuotaRepository(db)
	payrollRepo := postgresql.NewPayrollRepository(db)
	invoiceRepo := postgresql.NewInvoiceRepository(db)
	notificationRepo := postgresql.NewNotificationRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	hub := sse.NewHub(16)
	notifSvc := notificationService.NewNotificationService(notificationRepo, hub, notificationService.Config{
		BatchSize:     cfg.Notification.BatchSize,
		FlushInterval: cfg.Notification.FlushInterval,
		WorkerCount:   cfg.Notification.WorkerCount,
		QueueSize:     cfg.Notification.QueueSize,
	})

	calendarSvc := calendarService.NewCalendarService(calendarRepo, cache.NewCalendarCache(redisClient, cfg.Redis.CalendarTTL))
	attendanceSvc := attendanceService.NewAttendanceService(
		tx,
		attendanceRepo,
		overtimeRepo,
		employeeRepo,
		leaveRepo,
		calendarSvc,
		notifSvc,
		attendance.ShiftPolicy{
			Location:         cfg.App.Timezone,
			ShiftStartHour:   cfg.Attendance.ShiftStartHour,
			ShiftStartMinute: cfg.Attendance.ShiftStartMinute,
			LateGraceMinutes: cfg.Attendance.LateGraceMinutes,
			StandardDayHours: cfg.Payroll.StandardHoursPerDay,
		},
	)
	leaveSvc := leaveService.NewLeaveService(tx, leaveRepo, leaveQuotaRepo, employeeRepo, notifSvc)
	payrollSvc := payrollService.NewPayrollService(
		payrollRepo,
		employeeRepo,
		attendanceSvc,
		fileStorage,
		notifSvc,
		payroll.Rules{
			OvertimeMultiplier:  cfg.Payroll.OvertimeMultiplier,
			StandardHoursPerDay: cfg.Payroll.StandardHoursPerDay,
			PFRate:              cfg.Payroll.PFRate,
			PFWageCeiling:       cfg.Payroll.PFWageCeiling,
			ESIRate:             cfg.Payroll.ESIRate,
		},
	)
	invoiceSvc := invoiceService.NewInvoiceService(tx, invoiceRepo, fileStorage, notifSvc, cfg.Invoice.DefaultGSTRate)
	reportSvc := reportService.NewReportService(employeeRepo, attendanceSvc)

	scheduler, err := cron.NewScheduler(cfg.App.Timezone)
	if err != nil {
		slog.Error("Failed to create cron scheduler", "error", err)
		os.Exit(1)
	}
	jobs := cron.NewAttendanceJobs(attendanceSvc, employeeRepo, cfg.Cron.LookbackDays, cfg.App.Timezone)
	if err := jobs.RegisterJobs(scheduler, cfg.Cron.OvertimeBackfillHour); err != nil {
		slog.Error("Failed to register cron jobs", "error", err)
		os.Exit(1)
	}
	scheduler.Start()

	router := appHTTP.NewRouter(appHTTP.RouterConfig{
		AppName:        cfg.App.Name,
		Version:        cfg.App.Version,
		Env:            cfg.App.Env,
		AllowedOrigins: cfg.App.AllowedOrigins,
		LogLevel:       cfg.SlogLevel(),
	}, JWTService, appHTTP.Handlers{
		Calendar:     appHTTP.NewCalendarHandler(calendarSvc),
		Attendance:   appHTTP.NewAttendanceHandler(attendanceSvc),
		Leave:        appHTTP.NewLeaveHandler(leaveSvc),
		Payroll:      appHTTP.NewPayrollHandler(payrollSvc),
		Invoice:      appHTTP.NewInvoiceHandler(invoiceSvc),
		Report:       appHTTP.NewReportHandler(reportSvc),
		Notification: appHTTP.NewNotificationHandler(notifSvc, JWTService),
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("Server running", "addr", server.Addr, "env", cfg.App.Env)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("Shutting down")

	// Open SSE streams never finish on their own.
	hub.Close()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server shutdown failed", "error", err)
	}
	if err := scheduler.Stop(); err != nil {
		slog.Error("Cron shutdown failed", "error", err)
	}
	notifSvc.Stop()
}

func newFileStorage(ctx context.Context, cfg config.StorageConfig) (storage.FileStorage, error) {
	switch cfg.Type {
	case "minio":
		return storage.NewMinioStorage(ctx, storage.MinioConfig{
			Endpoint:  cfg.MinioEndpoint,
			AccessKey: cfg.MinioAccessKey,
			SecretKey: cfg.MinioSecretKey,
			UseSSL:    cfg.MinioUseSSL,
			Bucket:    cfg.MinioBucket,
		})
	default:
		return storage.NewLocalStorage(cfg.BasePath, cfg.BaseURL)
	}
}
