package models

import "time"

// Report is the versioned output of one report-generation cycle: every
// consumer of the presentation layer reads from a single consistent report
// rather than mixing figures from different cycles.
type Report struct {
	ID          string    `json:"id"`
	GeneratedAt time.Time `json:"generated_at"`

	TeamSummaries   map[string]*TeamSummary   `json:"team_summaries"`
	PlayerSummaries map[string]*PlayerSummary `json:"player_summaries"`
	Venues          []Venue                   `json:"venues"`

	// ModelTrained reports whether the outcome predictor was rebuilt
	// successfully this cycle. A false value is a normal state, not an error.
	ModelTrained bool `json:"model_trained"`
	// ModelAccuracy is the held-out accuracy diagnostic; meaningful only
	// when ModelTrained is true.
	ModelAccuracy float64 `json:"model_accuracy"`

	TotalMatches    int `json:"total_matches"`
	TotalDeliveries int `json:"total_deliveries"`
	TotalPlayers    int `json:"total_players"`
}
