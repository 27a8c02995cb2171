package logic

import (
	"github.com/cricstats/analytics-api/internal/models"
)

// PlayerSummaries recomputes batting and bowling indicators for every player
// appearing as striker or bowler in the delivery set. The players record set
// is consulted only for roster membership, not for statistics.
func (s *kpiService) PlayerSummaries(deliveries []models.Delivery, players []models.Player) map[string]*models.PlayerSummary {
	summaries := make(map[string]*models.PlayerSummary)

	get := func(name string) *models.PlayerSummary {
		if name == "" {
			return nil
		}
		p, ok := summaries[name]
		if !ok {
			p = &models.PlayerSummary{Player: name}
			summaries[name] = p
		}
		return p
	}

	for _, d := range deliveries {
		if p := get(d.Batsman); p != nil {
			p.RunsScored += d.BatsmanRuns
			p.BallsFaced++
			// A dismissal counts against the striker's average only when the
			// dismissed player is the striker of this delivery.
			if d.PlayerDismissed == d.Batsman {
				p.Dismissals++
			}
		}
		if p := get(d.Bowler); p != nil {
			p.RunsConceded += d.TotalRuns
			p.BallsBowled++
			if d.PlayerDismissed != "" {
				p.WicketsTaken++
			}
		}
	}

	for _, p := range summaries {
		if p.Dismissals > 0 {
			p.BattingAverage = float64(p.RunsScored) / float64(p.Dismissals)
		} else {
			// Never-out convention: an undismissed player's average is their
			// total, not infinity.
			p.BattingAverage = float64(p.RunsScored)
		}
		if p.BallsFaced > 0 {
			p.StrikeRate = float64(p.RunsScored) / float64(p.BallsFaced) * 100
		}
		if p.WicketsTaken > 0 {
			avg := float64(p.RunsConceded) / float64(p.WicketsTaken)
			p.BowlingAverage = &avg
		}
		if p.BallsBowled > 0 {
			p.EconomyRate = float64(p.RunsConceded) / float64(p.BallsBowled) * ballsPerOver
		}
	}

	return summaries
}
