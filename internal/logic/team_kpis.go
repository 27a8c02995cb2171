package logic

// Team KPI aggregation. One in-memory pass over matches and one over
// deliveries; every ratio is zero-guarded so no input shape can raise.

import (
	"github.com/cricstats/analytics-api/internal/models"
)

// ballsPerOver is the canonical over length, used as the rate multiplier
// regardless of extra-ball replays.
const ballsPerOver = 6

type kpiService struct{}

func NewKPIService() KPIService {
	return &kpiService{}
}

func (s *kpiService) TeamSummaries(matches []models.Match, deliveries []models.Delivery) map[string]*models.TeamSummary {
	summaries := make(map[string]*models.TeamSummary)

	// Team universe: union of team1/team2 across all matches, "" excluded.
	for _, m := range matches {
		for _, team := range []string{m.Team1, m.Team2} {
			if team == "" {
				continue
			}
			if _, ok := summaries[team]; !ok {
				summaries[team] = &models.TeamSummary{Team: team}
			}
		}
	}

	for _, m := range matches {
		for _, team := range []string{m.Team1, m.Team2} {
			t, ok := summaries[team]
			if !ok {
				continue
			}
			t.TotalMatches++
			if m.Winner == team {
				t.Wins++
			}
			if m.TossWinner == team {
				t.TossWins++
			}
		}
	}

	// Batting side: runs and balls faced as batting_team.
	// Bowling side: dismissals credited as bowling_team.
	battingBalls := make(map[string]int)
	for _, d := range deliveries {
		if t, ok := summaries[d.BattingTeam]; ok {
			t.TotalRunsScored += d.TotalRuns
			battingBalls[d.BattingTeam]++
		}
		if t, ok := summaries[d.BowlingTeam]; ok && d.PlayerDismissed != "" {
			t.WicketsTaken++
		}
	}

	for team, t := range summaries {
		if t.TotalMatches > 0 {
			t.WinRate = float64(t.Wins) / float64(t.TotalMatches)
			t.TossWinRate = float64(t.TossWins) / float64(t.TotalMatches)
		}
		if balls := battingBalls[team]; balls > 0 {
			t.AvgRunRate = float64(t.TotalRunsScored) / float64(balls) * ballsPerOver
		}
		// Runs-per-wicket over the team's season run total. Undefined (nil)
		// when the side never took a wicket.
		if t.WicketsTaken > 0 {
			avg := float64(t.TotalRunsScored) / float64(t.WicketsTaken)
			t.BowlingAverage = &avg
		}
	}

	return summaries
}
