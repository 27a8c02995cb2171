package logic

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"

	"github.com/cricstats/analytics-api/internal/models"
)

var (
	reportsGenerated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cricstats_reports_generated_total",
		Help: "Completed report-generation cycles",
	})
	reportsFailed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cricstats_reports_failed_total",
		Help: "Aborted report-generation cycles",
	})
	reportDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "cricstats_report_generation_seconds",
		Help:    "Wall time of a full report cycle (load, aggregate, train)",
		Buckets: prometheus.DefBuckets,
	})
)

// ErrMissingData signals that a required record set is absent or empty. The
// pipeline emits no partial report; the presentation layer shows a single
// "data not available" state instead.
var ErrMissingData = errors.New("logic: required record sets are missing or empty")

type reportService struct {
	source    RecordSource
	kpi       KPIService
	predictor PredictorService
	logger    *zap.SugaredLogger

	mu     sync.RWMutex
	latest *models.Report
}

func NewReportService(source RecordSource, kpi KPIService, predictor PredictorService, logger *zap.SugaredLogger) ReportService {
	return &reportService{
		source:    source,
		kpi:       kpi,
		predictor: predictor,
		logger:    logger,
	}
}

// Generate runs one full report cycle: load every record set, recompute both
// KPI maps, retrain the outcome model, and package a versioned report. Pure
// orchestration; all aggregation lives in the KPI and predictor services.
func (s *reportService) Generate(ctx context.Context) (*models.Report, error) {
	start := time.Now()

	ds, err := s.source.LoadAll(ctx)
	if err != nil {
		reportsFailed.Inc()
		return nil, fmt.Errorf("load record sets: %w", err)
	}
	if len(ds.Matches) == 0 || len(ds.Deliveries) == 0 || len(ds.Players) == 0 {
		reportsFailed.Inc()
		s.logger.Warnw("Report cycle aborted",
			"matches", len(ds.Matches),
			"deliveries", len(ds.Deliveries),
			"players", len(ds.Players),
		)
		return nil, ErrMissingData
	}

	teamSummaries := s.kpi.TeamSummaries(ds.Matches, ds.Deliveries)
	playerSummaries := s.kpi.PlayerSummaries(ds.Deliveries, ds.Players)
	trained, accuracy := s.predictor.Rebuild(ds.Matches)

	report := &models.Report{
		ID:              uuid.NewString(),
		GeneratedAt:     time.Now().UTC(),
		TeamSummaries:   teamSummaries,
		PlayerSummaries: playerSummaries,
		Venues:          ds.Venues,
		ModelTrained:    trained,
		ModelAccuracy:   accuracy,
		TotalMatches:    len(ds.Matches),
		TotalDeliveries: len(ds.Deliveries),
		TotalPlayers:    len(ds.Players),
	}

	s.mu.Lock()
	s.latest = report
	s.mu.Unlock()

	reportsGenerated.Inc()
	reportDuration.Observe(time.Since(start).Seconds())
	s.logger.Infow("Report generated",
		"report_id", report.ID,
		"teams", len(teamSummaries),
		"players", len(playerSummaries),
		"model_trained", trained,
		"duration", time.Since(start),
	)

	return report, nil
}

// Latest returns the report from the most recent successful cycle, or nil.
func (s *reportService) Latest() *models.Report {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.latest
}
