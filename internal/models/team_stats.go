package models

import "strconv"

// TeamSummary holds the derived season performance indicators for one team.
// Recomputed each report cycle from the match and delivery sets.
type TeamSummary struct {
	Team            string  `json:"team"`
	TotalMatches    int     `json:"total_matches"`
	Wins            int     `json:"wins"`
	WinRate         float64 `json:"win_rate"`
	TossWins        int     `json:"toss_wins"`
	TossWinRate     float64 `json:"toss_win_rate"`
	TotalRunsScored int     `json:"total_runs_scored"`
	AvgRunRate      float64 `json:"avg_run_rate"`
	WicketsTaken    int     `json:"wickets_taken"`
	// BowlingAverage is nil when the team took no wickets. The nil sentinel
	// marshals as JSON null and must be rendered as "N/A", never as a number.
	BowlingAverage *float64 `json:"bowling_average"`
}

// FormatAverage renders a possibly-undefined average for display. A nil
// value means the denominator was zero and there is no meaningful number to
// show.
func FormatAverage(v *float64) string {
	if v == nil {
		return "N/A"
	}
	return strconv.FormatFloat(*v, 'f', 2, 64)
}
