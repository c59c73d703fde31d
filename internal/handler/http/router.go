package http

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/rovicpogi/Stoninonew/internal/domain/user"
	"github.com/rovicpogi/Stoninonew/internal/handler/http/middleware"
	"github.com/rovicpogi/Stoninonew/internal/handler/http/response"
	"github.com/rovicpogi/Stoninonew/internal/pkg/jwt"
	"github.com/rovicpogi/Stoninonew/internal/pkg/metrics"
)

type Handlers struct {
	Auth       AuthHandler
	Attendance AttendanceHandler
	Dashboard  DashboardHandler
	Student    StudentHandler
	Assignment AssignmentHandler
	Journal    JournalHandler
}

type RouterOptions struct {
	Env         string
	CORSOrigins []string
	ScannerKey  string
	// UploadsDir is served under /uploads when set.
	UploadsDir string
	// GoogleEnabled mounts the Google sign-in routes.
	GoogleEnabled bool
	Healthy       func(ctx context.Context) bool
}

func NewRouter(JWTService jwt.Service, h Handlers, opts RouterOptions) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(opts.Env != "development")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "stonino-portal"),
		slog.String("version", "v1.0.0"),
		slog.String("env", opts.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.CORSOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token", middleware.ScannerKeyHeader},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
		// polled every couple of seconds per open monitor
		Skip: func(req *http.Request, respStatus int) bool {
			return respStatus < 400 && (req.URL.Path == "/metrics" || req.URL.Path == "/health")
		},
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if opts.Healthy != nil && !opts.Healthy(ctx) {
			response.LiveFeedError(w, http.StatusServiceUnavailable, "database unreachable")
			return
		}
		response.Success(w, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", metrics.Handler())

	if opts.UploadsDir != "" {
		r.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir(opts.UploadsDir))))
	}

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", h.Auth.Login)
			r.Post("/refresh", h.Auth.RefreshToken)
			r.Post("/logout", h.Auth.Logout)
			if opts.GoogleEnabled {
				r.Get("/login/oauth/google", h.Auth.LoginWithGoogle)
				r.Get("/oauth/callback/google", h.Auth.OAuthCallbackGoogle)
			}
		})

		// Gate readers authenticate with a shared key, not a user token.
		r.With(middleware.ScannerKey(opts.ScannerKey)).Post("/scans", h.Attendance.RecordScan)

		// Authenticated through ?token= since EventSource cannot send headers
		r.Get("/admin/attendance-live/stream", h.Attendance.Stream)

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService))

			r.Get("/auth/me", h.Auth.Me)

			r.Route("/admin", func(r chi.Router) {
				r.Use(middleware.RequireRole(user.RoleAdmin))

				r.Route("/attendance-live", func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionAttendanceLive))
					r.Get("/", h.Attendance.LiveFeed)
					r.Get("/sse-token", h.Attendance.GetSSEToken)
				})
				r.With(middleware.RequirePermission(user.PermissionAdminStats)).Get("/stats", h.Dashboard.GetAdminStats)

				r.Route("/students", func(r chi.Router) {
					r.With(middleware.RequirePermission(user.PermissionStudentViewAll)).Get("/", h.Student.List)
					r.With(middleware.RequirePermission(user.PermissionStudentManage)).Put("/{id}/photo", h.Student.UploadPhoto)
				})
			})

			r.Route("/teacher", func(r chi.Router) {
				r.Use(middleware.RequireRole(user.RoleTeacher))

				r.With(middleware.RequirePermission(user.PermissionTeacherStats)).Get("/stats", h.Dashboard.GetTeacherStats)

				r.Route("/assignments", func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionAssignmentManage))
					r.Get("/", h.Assignment.ListTeacherAssignments)
					r.Post("/", h.Assignment.CreateAssignment)
				})

				r.Route("/submissions", func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionSubmissionGrade))
					r.Get("/", h.Assignment.ListTeacherSubmissions)
					r.Put("/{id}/grade", h.Assignment.GradeSubmission)
				})

				r.Route("/journal", func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionJournalManage))
					r.Get("/", h.Journal.List)
					r.Post("/", h.Journal.Create)
					r.Delete("/{id}", h.Journal.Delete)
				})
			})

			r.Route("/student", func(r chi.Router) {
				r.Use(middleware.RequireRole(user.RoleStudent))

				r.With(middleware.RequirePermission(user.PermissionAssignmentView)).Get("/assignments", h.Assignment.ListStudentAssignments)
				r.Get("/submissions", h.Assignment.ListStudentSubmissions)
				r.With(middleware.RequirePermission(user.PermissionSubmissionCreate)).Post("/submissions", h.Assignment.SubmitAssignment)
			})
		})
	})
	return r
}
