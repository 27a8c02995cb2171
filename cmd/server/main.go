package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/cricstats/analytics-api/internal/config"
	"github.com/cricstats/analytics-api/internal/handlers"
	"github.com/cricstats/analytics-api/internal/logic"
	"github.com/cricstats/analytics-api/internal/store"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	var logger *zap.Logger
	if cfg.Env == "production" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	sugar := logger.Sugar()

	db, err := store.Open(cfg.DatabasePath, sugar)
	if err != nil {
		sugar.Fatalw("Failed to open record store", "error", err, "path", cfg.DatabasePath)
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := db.CreateTables(ctx); err != nil {
		sugar.Fatalw("Failed to ensure schema", "error", err)
	}

	kpi := logic.NewKPIService()
	predictor := logic.NewPredictorService(sugar)
	report := logic.NewReportService(db, kpi, predictor, sugar)

	h := handlers.New(handlers.Config{
		Store:     &handlers.StoreDeps{Pinger: db, Records: db},
		Logger:    logger,
		Report:    report,
		Predictor: predictor,
	})

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))
	r.Handle("/metrics", promhttp.Handler())
	h.Routes(r)

	// Warm the first report so read endpoints work immediately; an empty
	// store is a normal condition at first boot.
	if _, err := report.Generate(ctx); err != nil {
		sugar.Warnw("Initial report cycle skipped", "error", err)
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		sugar.Infow("Server listening", "port", cfg.Port, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			sugar.Fatalw("Server failed", "error", err)
		}
	}()

	<-ctx.Done()
	sugar.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		sugar.Errorw("Graceful shutdown failed", "error", err)
	}
}
