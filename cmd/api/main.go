package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rovicpogi/Stoninonew/internal/config"
	appHTTP "github.com/rovicpogi/Stoninonew/internal/handler/http"
	"github.com/rovicpogi/Stoninonew/internal/pkg/broker"
	"github.com/rovicpogi/Stoninonew/internal/pkg/cache"
	"github.com/rovicpogi/Stoninonew/internal/pkg/cron"
	"github.com/rovicpogi/Stoninonew/internal/pkg/database"
	"github.com/rovicpogi/Stoninonew/internal/pkg/jwt"
	"github.com/rovicpogi/Stoninonew/internal/pkg/metrics"
	"github.com/rovicpogi/Stoninonew/internal/pkg/oauth"
	"github.com/rovicpogi/Stoninonew/internal/pkg/sse"
	"github.com/rovicpogi/Stoninonew/internal/pkg/storage"
	"github.com/rovicpogi/Stoninonew/internal/repository/postgresql"
	assignmentService "github.com/rovicpogi/Stoninonew/internal/service/assignment"
	attendanceService "github.com/rovicpogi/Stoninonew/internal/service/attendance"
	serviceAuth "github.com/rovicpogi/Stoninonew/internal/service/auth"
	dashboardService "github.com/rovicpogi/Stoninonew/internal/service/dashboard"
	"github.com/rovicpogi/Stoninonew/internal/service/file"
	journalService "github.com/rovicpogi/Stoninonew/internal/service/journal"
	studentService "github.com/rovicpogi/Stoninonew/internal/service/student"
	"golang.org/x/sync/errgroup"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Error loading config: ", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal("Invalid config: ", err)
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		log.Fatal("Error connecting to database: ", err)
	}
	defer db.Close()

	hub := sse.NewHub(sse.WithSubscriberHook(metrics.SetSSESubscribers))

	// Redis is optional: without it scans fan out in process and stats are cached in memory.
	var (
		scanBroker broker.Broker
		statsCache cache.Cache
	)
	if cfg.Redis.Addr != "" {
		redisClient := broker.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Fatal("Error connecting to redis: ", err)
		}
		scanBroker = broker.NewRedis(redisClient, hub, broker.DefaultChannel)
		statsCache = cache.NewRedis(redisClient, "stonino:")
		slog.Info("Using redis for scan fan-out and stats cache", "addr", cfg.Redis.Addr)
	} else {
		scanBroker = broker.NewLocal(hub)
		statsCache = cache.NewMemory()
	}
	defer scanBroker.Close()

	var fileStorage *storage.LocalStorage
	switch cfg.Storage.Type {
	case "local":
		fileStorage, err = storage.NewLocalStorage(cfg.Storage.BasePath, cfg.Storage.BaseURL)
		if err != nil {
			log.Fatal("Failed to initialize local storage: ", err)
		}
	default:
		log.Fatal("Unsupported storage type: ", cfg.Storage.Type)
	}

	userRepo := postgresql.NewUserRepository(db)
	tokenRepo := postgresql.NewTokenRepository(db)
	studentRepo := postgresql.NewStudentRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	assignmentRepo := postgresql.NewAssignmentRepository(db)
	submissionRepo := postgresql.NewSubmissionRepository(db)
	journalRepo := postgresql.NewJournalRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
	var GoogleService oauth.GoogleService
	if cfg.OAuth2Google.Enabled() {
		GoogleService = oauth.NewGoogleService(cfg.OAuth2Google.ClientID, cfg.OAuth2Google.ClientSecret, cfg.OAuth2Google.RedirectURL, cfg.OAuth2Google.Scopes)
	}

	fileService := file.NewFileService(fileStorage)
	authService := serviceAuth.NewAuthService(db, userRepo, JWTService, tokenRepo)
	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo, studentRepo, scanBroker)
	studentSvc := studentService.NewStudentService(studentRepo, fileService)
	assignmentSvc := assignmentService.NewAssignmentService(assignmentRepo, submissionRepo, fileService)
	journalSvc := journalService.NewJournalService(journalRepo)
	dashboardSvc := dashboardService.NewDashboardService(dashboardService.Repositories{
		Students:    studentRepo,
		Users:       userRepo,
		Attendance:  attendanceRepo,
		Assignments: assignmentRepo,
		Submissions: submissionRepo,
		Journal:     journalRepo,
	}, statsCache, cfg.Location())

	scheduler := cron.NewScheduler()
	scheduler.AddJob(dashboardService.RefreshJobName, dashboardService.RefreshInterval, dashboardSvc.RefreshAdminStats)

	router := appHTTP.NewRouter(JWTService, appHTTP.Handlers{
		Auth:       appHTTP.NewAuthHandler(JWTService, authService, GoogleService, cfg.App.FrontendURL),
		Attendance: appHTTP.NewAttendanceHandler(attendanceSvc, JWTService, hub),
		Dashboard:  appHTTP.NewDashboardHandler(dashboardSvc),
		Student:    appHTTP.NewStudentHandler(studentSvc),
		Assignment: appHTTP.NewAssignmentHandler(assignmentSvc, studentSvc),
		Journal:    appHTTP.NewJournalHandler(journalSvc),
	}, appHTTP.RouterOptions{
		Env:           cfg.App.Env,
		CORSOrigins:   cfg.App.CORSOrigins,
		ScannerKey:    cfg.Scanner.APIKey,
		UploadsDir:    fileStorage.BasePath(),
		GoogleEnabled: GoogleService != nil,
		Healthy:       db.Healthy,
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return scanBroker.Run(gctx)
	})

	g.Go(func() error {
		scheduler.Start(gctx)
		<-gctx.Done()
		scheduler.Stop()
		return nil
	})

	g.Go(func() error {
		slog.Info("Server running", "addr", server.Addr, "env", cfg.App.Env)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		slog.Info("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		slog.Error("Server stopped with error", "error", err)
		os.Exit(1)
	}
	slog.Info("Server stopped")
}
