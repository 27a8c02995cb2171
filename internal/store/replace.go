package store

import (
	"context"
	"fmt"

	"github.com/cricstats/analytics-api/internal/models"
)

// Bulk ingestion. Each record set is replaced wholesale inside one
// transaction: a season archive is reloaded, never patched.

func nullable(v string) any {
	if v == "" {
		return nil
	}
	return v
}

func (s *Store) replace(ctx context.Context, kind RecordKind, insert string, count int, bind func(i int) []any) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin %s replace: %w", kind.Table(), err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM "+kind.Table()); err != nil {
		return fmt.Errorf("clear %s: %w", kind.Table(), err)
	}

	stmt, err := tx.PrepareContext(ctx, insert)
	if err != nil {
		return fmt.Errorf("prepare %s insert: %w", kind.Table(), err)
	}
	defer stmt.Close()

	for i := 0; i < count; i++ {
		if _, err := stmt.ExecContext(ctx, bind(i)...); err != nil {
			return fmt.Errorf("insert %s row %d: %w", kind.Table(), i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit %s replace: %w", kind.Table(), err)
	}
	s.logger.Infow("Record set replaced", "table", kind.Table(), "rows", count)
	return nil
}

func (s *Store) ReplaceMatches(ctx context.Context, matches []models.Match) error {
	const insert = `INSERT INTO matches (
		id, season, city, date, team1, team2, toss_winner, toss_decision,
		result, dl_applied, winner, win_by_runs, win_by_wickets,
		player_of_match, venue, umpire1, umpire2, umpire3
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	return s.replace(ctx, KindMatches, insert, len(matches), func(i int) []any {
		m := matches[i]
		return []any{
			m.ID, m.Season, nullable(m.City), m.Date, m.Team1, m.Team2,
			m.TossWinner, m.TossDecision, m.Result, m.DLApplied,
			nullable(m.Winner), m.WinByRuns, m.WinByWickets,
			nullable(m.PlayerOfMatch), m.Venue,
			nullable(m.Umpire1), nullable(m.Umpire2), nullable(m.Umpire3),
		}
	})
}

func (s *Store) ReplaceDeliveries(ctx context.Context, deliveries []models.Delivery) error {
	const insert = `INSERT INTO deliveries (
		id, match_id, inning, batting_team, bowling_team, over, ball,
		batsman, non_striker, bowler, is_super_over, wide_runs, bye_runs,
		legbye_runs, noball_runs, penalty_runs, batsman_runs, extra_runs,
		total_runs, player_dismissed, dismissal_kind, fielder
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	return s.replace(ctx, KindDeliveries, insert, len(deliveries), func(i int) []any {
		d := deliveries[i]
		return []any{
			d.ID, d.MatchID, d.Inning, d.BattingTeam, d.BowlingTeam, d.Over,
			d.Ball, d.Batsman, d.NonStriker, d.Bowler, d.IsSuperOver,
			d.WideRuns, d.ByeRuns, d.LegByeRuns, d.NoBallRuns, d.PenaltyRuns,
			d.BatsmanRuns, d.ExtraRuns, d.TotalRuns,
			nullable(d.PlayerDismissed), nullable(d.DismissalKind), nullable(d.Fielder),
		}
	})
}

func (s *Store) ReplacePlayers(ctx context.Context, players []models.Player) error {
	const insert = `INSERT INTO players (
		id, player_name, team, role, batting_style, bowling_style, country,
		born_date, matches_played, runs_scored, wickets_taken, catches, stumpings
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	return s.replace(ctx, KindPlayers, insert, len(players), func(i int) []any {
		p := players[i]
		return []any{
			p.ID, p.PlayerName, p.Team, p.Role, p.BattingStyle,
			p.BowlingStyle, p.Country, nullable(p.BornDate), p.MatchesPlayed,
			p.RunsScored, p.WicketsTaken, p.Catches, p.Stumpings,
		}
	})
}

func (s *Store) ReplaceStandings(ctx context.Context, standings []models.Standing) error {
	const insert = `INSERT INTO points_table (
		id, season, team, matches_played, won, lost, tied, no_result,
		points, net_run_rate, for_overs, against_overs, position
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	return s.replace(ctx, KindStandings, insert, len(standings), func(i int) []any {
		st := standings[i]
		return []any{
			st.ID, st.Season, st.Team, st.MatchesPlayed, st.Won, st.Lost,
			st.Tied, st.NoResult, st.Points, st.NetRunRate, st.ForOvers,
			st.AgainstOvers, st.Position,
		}
	})
}

func (s *Store) ReplaceVenues(ctx context.Context, venues []models.Venue) error {
	const insert = `INSERT INTO venues (id, name, city, capacity, timezone)
		VALUES (?, ?, ?, ?, ?)`
	return s.replace(ctx, KindVenues, insert, len(venues), func(i int) []any {
		v := venues[i]
		return []any{v.ID, v.Name, v.City, v.Capacity, v.Timezone}
	})
}
