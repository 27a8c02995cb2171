package logic

import (
	"context"

	"github.com/cricstats/analytics-api/internal/models"
)

// RecordSource is the read side of the record store. The full season archive
// is read once at the start of each report cycle and never mutated by the
// analytics core.
type RecordSource interface {
	LoadAll(ctx context.Context) (*models.Dataset, error)
}

// KPIService computes the derived team and player performance summaries.
// Both operations are pure functions of their inputs: empty inputs yield
// empty maps, never errors, and repeated calls yield identical output.
type KPIService interface {
	TeamSummaries(matches []models.Match, deliveries []models.Delivery) map[string]*models.TeamSummary
	PlayerSummaries(deliveries []models.Delivery, players []models.Player) map[string]*models.PlayerSummary
}

// PredictorService owns the match-outcome classifier lifecycle: rebuilt from
// the full match history each report cycle, serialized for inference because
// the encoders mutate on unseen values.
type PredictorService interface {
	// Rebuild retrains the model and returns whether training succeeded plus
	// the held-out accuracy diagnostic. A false result is a normal state.
	Rebuild(matches []models.Match) (trained bool, accuracy float64)
	// Predict serves one match query. Returns ErrModelNotReady when no
	// trained model is available.
	Predict(req models.PredictionRequest) (*models.Prediction, error)
	Ready() bool
}

// ReportService orchestrates aggregation and training into one consistent,
// versioned report.
type ReportService interface {
	Generate(ctx context.Context) (*models.Report, error)
	Latest() *models.Report
}
