package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/greythr-lite/hrms-backend-go/internal/config"
	appHTTP "github.com/greythr-lite/hrms-backend-go/internal/handler/http"
	"github.com/greythr-lite/hrms-backend-go/internal/handler/http/response"
	"github.com/greythr-lite/hrms-backend-go/internal/pkg/cron"
	"github.com/greythr-lite/hrms-backend-go/internal/pkg/database"
	"github.com/greythr-lite/hrms-backend-go/internal/pkg/jwt"
	"github.com/greythr-lite/hrms-backend-go/internal/pkg/oauth"
	"github.com/greythr-lite/hrms-backend-go/internal/pkg/sse"
	"github.com/greythr-lite/hrms-backend-go/internal/pkg/storage"
	"github.com/greythr-lite/hrms-backend-go/internal/repository/postgresql"
	announcementService "github.com/greythr-lite/hrms-backend-go/internal/service/announcement"
	attendanceService "github.com/greythr-lite/hrms-backend-go/internal/service/attendance"
	serviceAuth "github.com/greythr-lite/hrms-backend-go/internal/service/auth"
	chatService "github.com/greythr-lite/hrms-backend-go/internal/service/chat"
	dashboardService "github.com/greythr-lite/hrms-backend-go/internal/service/dashboard"
	employeeService "github.com/greythr-lite/hrms-backend-go/internal/service/employee"
	"github.com/greythr-lite/hrms-backend-go/internal/service/file"
	"github.com/greythr-lite/hrms-backend-go/internal/service/leave"
	notificationService "github.com/greythr-lite/hrms-backend-go/internal/service/notification"
	payrollService "github.com/greythr-lite/hrms-backend-go/internal/service/payroll"
	taskService "github.com/greythr-lite/hrms-backend-go/internal/service/task"
)

// autoCloseAfterHours is how long a session may stay open before the
// scheduler closes it with a credited standard day.
const autoCloseAfterHours = 12

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	// Outside production, 500 responses carry the underlying error detail.
	response.SetDebug(!cfg.IsProduction())

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	userRepo := postgresql.NewUserRepository(db)
	JWTRepository := postgresql.NewJWTRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	leaveRepo := postgresql.NewLeaveRepository(db)
	payrollRepo := postgresql.NewPayrollRepository(db)
	taskRepo := postgresql.NewTaskRepository(db)
	announcementRepo := postgresql.NewAnnouncementRepository(db)
	chatRepo := postgresql.NewChatRepository(db)
	messageRepo := postgresql.NewMessageRepository(db)
	notificationRepo := postgresql.NewNotificationRepository(db)
	dashboardRepo := postgresql.NewDashboardRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
	GoogleService := oauth.NewGoogleService(cfg.OAuth2Google.ClientID, cfg.OAuth2Google.ClientSecret, cfg.OAuth2Google.RedirectURL, cfg.OAuth2Google.Scopes)
	hub := sse.NewHub()

	fileStorage, err := storage.NewLocalStorage(cfg.Storage.BasePath, cfg.Storage.BaseURL)
	if err != nil {
		log.Fatal("Failed to initialize local storage:", err)
	}

	fileService := file.NewFileService(fileStorage)
	notificationSvc := notificationService.NewNotificationService(notificationRepo, hub, logger, notificationService.Config{})
	authService := serviceAuth.NewAuthService(db, userRepo, employeeRepo, JWTService, JWTRepository)
	employeeSvc := employeeService.NewEmployeeService(db, employeeRepo, fileService)
	attendanceSvc := attendanceService.NewAttendanceService(db, attendanceRepo)
	leaveSvc := leave.NewLeaveService(db, leaveRepo, employeeRepo, userRepo, notificationSvc)
	payrollSvc := payrollService.NewPayrollService(db, payrollRepo, employeeRepo, notificationSvc)
	taskSvc := taskService.NewTaskService(db, taskRepo, employeeRepo, notificationSvc)
	announcementSvc := announcementService.NewAnnouncementService(db, announcementRepo, userRepo, hub, notificationSvc)
	chatSvc := chatService.NewChatService(chatRepo, messageRepo, hub)
	dashboardSvc := dashboardService.NewDashboardService(dashboardRepo, attendanceRepo, leaveRepo, taskRepo, notificationRepo, hub)

	scheduler := cron.NewScheduler()
	scheduler.AddJob("sweep-expired-announcements", time.Hour, func(ctx context.Context) error {
		_, err := announcementSvc.SweepExpired(ctx)
		return err
	})
	scheduler.AddJob("auto-close-attendance", time.Hour, func(ctx context.Context) error {
		_, err := attendanceSvc.AutoCloseOpenSessions(ctx, autoCloseAfterHours)
		return err
	})
	scheduler.Start()

	handlers := appHTTP.Handlers{
		Auth:         appHTTP.NewAuthHandler(JWTService, authService, GoogleService, cfg.OAuthEnabled(), cfg.App.FrontendURL),
		Employee:     appHTTP.NewEmployeeHandler(employeeSvc),
		Attendance:   appHTTP.NewAttendanceHandler(attendanceSvc),
		Leave:        appHTTP.NewLeaveHandler(leaveSvc),
		Payroll:      appHTTP.NewPayrollHandler(payrollSvc),
		Task:         appHTTP.NewTaskHandler(taskSvc),
		Announcement: appHTTP.NewAnnouncementHandler(announcementSvc),
		Chat:         appHTTP.NewChatHandler(chatSvc, fileService),
		Notification: appHTTP.NewNotificationHandler(notificationSvc),
		Realtime:     appHTTP.NewRealtimeHandler(JWTService, hub),
		Dashboard:    appHTTP.NewDashboardHandler(dashboardSvc),
	}

	router := appHTTP.NewRouter(cfg, JWTService, handlers)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.App.Port),
		Handler: router,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("server starting", "port", cfg.App.Port, "env", cfg.App.Env)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", "error", err)
	}

	scheduler.Stop()
	notificationSvc.Stop()
}
