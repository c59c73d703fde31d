package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rovicpogi/Stoninonew/internal/config"
	"github.com/rovicpogi/Stoninonew/internal/live"
	"github.com/rovicpogi/Stoninonew/internal/pkg/metrics"
	"golang.org/x/sync/errgroup"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Error loading config: ", err)
	}

	// stdout belongs to the board
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var creds live.Credentials
	switch {
	case cfg.Monitor.Email != "" && cfg.Monitor.Password != "":
		creds = live.NewPasswordLogin(cfg.Monitor.APIBaseURL, cfg.Monitor.Email, cfg.Monitor.Password, nil)
	case cfg.Monitor.AccessToken != "":
		logger.Warn("MONITOR_ACCESS_TOKEN cannot be renewed; set MONITOR_EMAIL and MONITOR_PASSWORD to keep the board running past token expiry")
		creds = live.StaticToken(cfg.Monitor.AccessToken)
	default:
		log.Fatal("MONITOR_EMAIL and MONITOR_PASSWORD (or MONITOR_ACCESS_TOKEN) are required")
	}

	renderer := live.NewTextRenderer(os.Stdout)
	source := live.NewHTTPSource(cfg.Monitor.APIBaseURL, creds, nil)
	monitor := live.NewMonitor(source, live.Options{
		PollInterval: cfg.Live.PollInterval,
		FlashFor:     cfg.Live.FlashFor,
		FadeFor:      cfg.Live.FadeFor,
		Limit:        cfg.Live.Limit,
		Logger:       logger,
		OnUpdate: func(v live.View) {
			if err := renderer.Render(v); err != nil {
				logger.Warn("Render failed", "error", err)
			}
		},
	})

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return monitor.Run(gctx)
	})

	if addr := cfg.Monitor.MetricsAddr; addr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", metrics.Handler())
		server := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

		g.Go(func() error {
			logger.Info("Monitor metrics listening", "addr", addr)
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
		g.Go(func() error {
			<-gctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		})
	}

	if err := g.Wait(); err != nil {
		logger.Error("Monitor stopped with error", "error", err)
		os.Exit(1)
	}
}
