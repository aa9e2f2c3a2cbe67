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
	"github.com/greythr-lite/hrms-backend-go/internal/config"
	"github.com/greythr-lite/hrms-backend-go/internal/handler/http/middleware"
	"github.com/greythr-lite/hrms-backend-go/internal/pkg/jwt"
)

type Handlers struct {
	Auth         AuthHandler
	Employee     EmployeeHandler
	Attendance   AttendanceHandler
	Leave        LeaveHandler
	Payroll      PayrollHandler
	Task         TaskHandler
	Announcement AnnouncementHandler
	Chat         ChatHandler
	Notification NotificationHandler
	Realtime     RealtimeHandler
	Dashboard    DashboardHandler
}

func NewRouter(cfg *config.Config, jwtService jwt.Service, h Handlers) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "hrms-backend"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.App.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.App.CORSOrigins,
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

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	// Uploaded files (avatars, chat attachments)
	fileServer := http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.Storage.BasePath)))
	r.Get("/uploads/*", fileServer.ServeHTTP)

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", h.Auth.Register)
			r.Post("/login", h.Auth.Login)
			r.Post("/refresh", h.Auth.RefreshToken)
			r.Post("/logout", h.Auth.Logout)
			r.Get("/login/oauth/google", h.Auth.LoginWithGoogle)
			r.Get("/oauth/callback/google", h.Auth.OAuthCallbackGoogle)
		})

		// The stream endpoint authenticates with its own short-lived token
		// because EventSource cannot send headers.
		r.Get("/realtime/stream", h.Realtime.Stream)

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Post("/realtime/status", h.Realtime.UpdateStatus)

			r.Route("/employees", func(r chi.Router) {
				r.Get("/me", h.Employee.GetMe)
				r.Get("/user/{userId}", h.Employee.GetByUser)
				r.Get("/{id}", h.Employee.GetByID)
				r.Put("/{id}", h.Employee.Update)
				r.Post("/{id}/avatar", h.Employee.UploadAvatar)

				r.Group(func(r chi.Router) {
					r.Use(middleware.StaffOnly)
					r.Get("/", h.Employee.List)
				})
			})

			r.Route("/attendance", func(r chi.Router) {
				r.Post("/clock-in", h.Attendance.ClockIn)
				r.Post("/clock-out", h.Attendance.ClockOut)
				r.Get("/my", h.Attendance.ListMy)

				r.Group(func(r chi.Router) {
					r.Use(middleware.StaffOnly)
					r.Get("/", h.Attendance.List)
				})
			})

			r.Route("/leaves", func(r chi.Router) {
				r.Post("/", h.Leave.Request)
				r.Get("/my", h.Leave.ListMy)

				r.Group(func(r chi.Router) {
					r.Use(middleware.StaffOnly)
					r.Get("/", h.Leave.List)
					r.Put("/{id}/status", h.Leave.UpdateStatus)
				})
			})

			r.Route("/payrolls", func(r chi.Router) {
				r.Get("/my", h.Payroll.ListMy)
				r.Get("/{id}", h.Payroll.GetByID)
				r.Get("/{id}/payslip", h.Payroll.DownloadPayslip)

				r.Group(func(r chi.Router) {
					r.Use(middleware.StaffOnly)
					r.Get("/", h.Payroll.List)
					r.Post("/", h.Payroll.Generate)
					r.Put("/{id}", h.Payroll.Update)
					r.Put("/{id}/status", h.Payroll.UpdateStatus)
				})
			})

			r.Route("/tasks", func(r chi.Router) {
				r.Get("/my", h.Task.ListMy)
				r.Get("/{id}", h.Task.GetByID)
				r.Put("/{id}/status", h.Task.UpdateStatus)
				r.Post("/{id}/comments", h.Task.AddComment)

				r.Group(func(r chi.Router) {
					r.Use(middleware.StaffOnly)
					r.Get("/", h.Task.List)
					r.Post("/", h.Task.Create)
					r.Put("/{id}", h.Task.Update)
					r.Delete("/{id}", h.Task.Delete)
				})
			})

			r.Route("/announcements", func(r chi.Router) {
				r.Get("/", h.Announcement.List)
				r.Get("/{id}", h.Announcement.GetByID)

				r.Group(func(r chi.Router) {
					r.Use(middleware.StaffOnly)
					r.Post("/", h.Announcement.Create)
					r.Put("/{id}", h.Announcement.Update)
					r.Delete("/{id}", h.Announcement.Delete)
				})
			})

			r.Route("/chats", func(r chi.Router) {
				r.Post("/", h.Chat.Create)
				r.Get("/", h.Chat.ListMy)
				r.Post("/upload", h.Chat.Upload)
				r.Get("/{id}", h.Chat.GetByID)
				r.Get("/{id}/messages", h.Chat.History)
				r.Post("/{id}/messages", h.Chat.Send)
				r.Post("/{id}/join", h.Chat.Join)
				r.Post("/{id}/leave", h.Chat.Leave)
				r.Post("/{id}/typing", h.Chat.Typing)
				r.Post("/{id}/read", h.Chat.MarkRead)
			})

			r.Route("/notifications", func(r chi.Router) {
				r.Get("/", h.Notification.ListMy)
				r.Get("/unread-count", h.Notification.UnreadCount)
				r.Get("/stream-token", h.Realtime.StreamToken)
				r.Put("/{id}/read", h.Notification.MarkRead)
				r.Put("/read-all", h.Notification.MarkAllRead)
				r.Delete("/{id}", h.Notification.Delete)
			})

			r.Route("/dashboard", func(r chi.Router) {
				r.Get("/me", h.Dashboard.EmployeeSummary)

				r.Group(func(r chi.Router) {
					r.Use(middleware.StaffOnly)
					r.Get("/summary", h.Dashboard.AdminSummary)
				})
			})
		})
	})

	return r
}
