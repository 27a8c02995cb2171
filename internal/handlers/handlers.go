package handlers

import (
	"context"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/cricstats/analytics-api/internal/logic"
	"github.com/cricstats/analytics-api/internal/models"
)

// MaxBodySize limits the size of request bodies to 1MB
const MaxBodySize = 1048576

// Pinger reports whether the record store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// RecordReader serves the passthrough reads that bypass the report cycle.
type RecordReader interface {
	Standings(ctx context.Context) ([]models.Standing, error)
	Venues(ctx context.Context) ([]models.Venue, error)
}

type Config struct {
	Store  *StoreDeps
	Logger *zap.Logger
	// Services
	Report    logic.ReportService
	Predictor logic.PredictorService
}

// StoreDeps groups the store-facing interfaces so tests can swap them
// independently.
type StoreDeps struct {
	Pinger  Pinger
	Records RecordReader
}

type Handler struct {
	store     *StoreDeps
	logger    *zap.SugaredLogger
	validator *validator.Validate
	report    logic.ReportService
	predictor logic.PredictorService
}

func New(cfg Config) *Handler {
	return &Handler{
		store:     cfg.Store,
		logger:    cfg.Logger.Sugar(),
		validator: validator.New(),
		report:    cfg.Report,
		predictor: cfg.Predictor,
	}
}

// Routes mounts every endpoint of the presentation-layer contract.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/health", h.Health)
	r.Get("/ready", h.Ready)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/report/generate", h.GenerateReport)
		r.Get("/report", h.GetReport)

		r.Get("/stats/teams", h.GetTeamSummaries)
		r.Get("/stats/players", h.GetPlayerSummaries)

		r.Get("/standings", h.GetStandings)
		r.Get("/venues", h.GetVenues)

		r.Post("/predict", h.PredictWinner)
	})
}
