package models

// PlayerSummary holds the derived batting and bowling indicators for one
// player, recomputed from the delivery set each report cycle.
type PlayerSummary struct {
	Player string `json:"player"`

	// Batting
	RunsScored int `json:"runs_scored"`
	BallsFaced int `json:"balls_faced"`
	// BattingAverage equals RunsScored when the player was never dismissed
	// (never-out convention: the "average" of an undismissed player is their
	// total, not infinity).
	BattingAverage float64 `json:"batting_average"`
	StrikeRate     float64 `json:"strike_rate"`
	Dismissals     int     `json:"dismissals"`

	// Bowling
	RunsConceded int `json:"runs_conceded"`
	BallsBowled  int `json:"balls_bowled"`
	WicketsTaken int `json:"wickets_taken"`
	// BowlingAverage is nil when the player took no wickets, same sentinel
	// as TeamSummary.BowlingAverage.
	BowlingAverage *float64 `json:"bowling_average"`
	EconomyRate    float64  `json:"economy_rate"`
}
