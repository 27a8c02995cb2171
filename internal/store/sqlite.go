// Package store is the Record Store: an embedded single-file relational
// store holding the five season record sets, read in full at the start of
// each report cycle.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	_ "modernc.org/sqlite"

	"github.com/cricstats/analytics-api/internal/models"
)

// RecordKind identifies one of the five record sets. The set of kinds is
// closed: ingestion dispatches over this enum with one handler per kind.
type RecordKind int

const (
	KindMatches RecordKind = iota
	KindDeliveries
	KindPlayers
	KindStandings
	KindVenues
)

func (k RecordKind) Table() string {
	switch k {
	case KindMatches:
		return "matches"
	case KindDeliveries:
		return "deliveries"
	case KindPlayers:
		return "players"
	case KindStandings:
		return "points_table"
	case KindVenues:
		return "venues"
	}
	return "unknown"
}

// Kinds lists every record kind in load order.
var Kinds = []RecordKind{KindMatches, KindDeliveries, KindPlayers, KindStandings, KindVenues}

type Store struct {
	db     *sql.DB
	logger *zap.SugaredLogger
}

// Open opens (creating if necessary) the season archive database.
func Open(path string, logger *zap.SugaredLogger) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create store dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)

	return &Store{db: db, logger: logger}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// CreateTables creates the five record-set tables if they do not exist.
func (s *Store) CreateTables(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS matches (
			id              INTEGER PRIMARY KEY,
			season          INTEGER,
			city            TEXT,
			date            TEXT,
			team1           TEXT,
			team2           TEXT,
			toss_winner     TEXT,
			toss_decision   TEXT,
			result          TEXT,
			dl_applied      INTEGER,
			winner          TEXT,
			win_by_runs     INTEGER,
			win_by_wickets  INTEGER,
			player_of_match TEXT,
			venue           TEXT,
			umpire1         TEXT,
			umpire2         TEXT,
			umpire3         TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS deliveries (
			id               INTEGER PRIMARY KEY,
			match_id         INTEGER,
			inning           INTEGER,
			batting_team     TEXT,
			bowling_team     TEXT,
			over             INTEGER,
			ball             INTEGER,
			batsman          TEXT,
			non_striker      TEXT,
			bowler           TEXT,
			is_super_over    INTEGER,
			wide_runs        INTEGER,
			bye_runs         INTEGER,
			legbye_runs      INTEGER,
			noball_runs      INTEGER,
			penalty_runs     INTEGER,
			batsman_runs     INTEGER,
			extra_runs       INTEGER,
			total_runs       INTEGER,
			player_dismissed TEXT,
			dismissal_kind   TEXT,
			fielder          TEXT,
			FOREIGN KEY (match_id) REFERENCES matches (id)
		)`,
		`CREATE TABLE IF NOT EXISTS players (
			id             INTEGER PRIMARY KEY,
			player_name    TEXT,
			team           TEXT,
			role           TEXT,
			batting_style  TEXT,
			bowling_style  TEXT,
			country        TEXT,
			born_date      TEXT,
			matches_played INTEGER,
			runs_scored    INTEGER,
			wickets_taken  INTEGER,
			catches        INTEGER,
			stumpings      INTEGER
		)`,
		`CREATE TABLE IF NOT EXISTS points_table (
			id             INTEGER PRIMARY KEY,
			season         INTEGER,
			team           TEXT,
			matches_played INTEGER,
			won            INTEGER,
			lost           INTEGER,
			tied           INTEGER,
			no_result      INTEGER,
			points         INTEGER,
			net_run_rate   REAL,
			for_overs      REAL,
			against_overs  REAL,
			position       INTEGER
		)`,
		`CREATE TABLE IF NOT EXISTS venues (
			id       INTEGER PRIMARY KEY,
			name     TEXT,
			city     TEXT,
			capacity INTEGER,
			timezone TEXT
		)`,
	}

	for _, stmt := range stmts {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("create tables: %w", err)
		}
	}
	return nil
}

// LoadAll reads the full contents of every record set. Any failure aborts
// the load: callers never see a partial dataset.
func (s *Store) LoadAll(ctx context.Context) (*models.Dataset, error) {
	ds := &models.Dataset{}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		ds.Matches, err = s.loadMatches(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		ds.Deliveries, err = s.loadDeliveries(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		ds.Players, err = s.loadPlayers(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		ds.Standings, err = s.loadStandings(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		ds.Venues, err = s.loadVenues(ctx)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("load record sets: %w", err)
	}
	return ds, nil
}

// Standings reads the points table alone, for passthrough queries that do
// not need a full report cycle.
func (s *Store) Standings(ctx context.Context) ([]models.Standing, error) {
	return s.loadStandings(ctx)
}

// Venues reads the venue set alone.
func (s *Store) Venues(ctx context.Context) ([]models.Venue, error) {
	return s.loadVenues(ctx)
}

// Counts returns the row count of every record set.
func (s *Store) Counts(ctx context.Context) (map[string]int, error) {
	counts := make(map[string]int, len(Kinds))
	for _, k := range Kinds {
		var n int
		if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+k.Table()).Scan(&n); err != nil {
			return nil, fmt.Errorf("count %s: %w", k.Table(), err)
		}
		counts[k.Table()] = n
	}
	return counts, nil
}

func (s *Store) loadMatches(ctx context.Context) ([]models.Match, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, season, city, date, team1, team2, toss_winner, toss_decision,
		       result, dl_applied, winner, win_by_runs, win_by_wickets,
		       player_of_match, venue, umpire1, umpire2, umpire3
		FROM matches ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query matches: %w", err)
	}
	defer rows.Close()

	var out []models.Match
	for rows.Next() {
		var m models.Match
		var city, winner, playerOfMatch, ump1, ump2, ump3 sql.NullString
		if err := rows.Scan(
			&m.ID, &m.Season, &city, &m.Date, &m.Team1, &m.Team2,
			&m.TossWinner, &m.TossDecision, &m.Result, &m.DLApplied,
			&winner, &m.WinByRuns, &m.WinByWickets, &playerOfMatch,
			&m.Venue, &ump1, &ump2, &ump3,
		); err != nil {
			return nil, fmt.Errorf("scan match: %w", err)
		}
		m.City = city.String
		m.Winner = winner.String
		m.PlayerOfMatch = playerOfMatch.String
		m.Umpire1, m.Umpire2, m.Umpire3 = ump1.String, ump2.String, ump3.String
		out = append(out, m)
	}
	return out, rows.Err()
}

func (s *Store) loadDeliveries(ctx context.Context) ([]models.Delivery, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, match_id, inning, batting_team, bowling_team, over, ball,
		       batsman, non_striker, bowler, is_super_over, wide_runs,
		       bye_runs, legbye_runs, noball_runs, penalty_runs, batsman_runs,
		       extra_runs, total_runs, player_dismissed, dismissal_kind, fielder
		FROM deliveries ORDER BY match_id, inning, over, ball`)
	if err != nil {
		return nil, fmt.Errorf("query deliveries: %w", err)
	}
	defer rows.Close()

	var out []models.Delivery
	for rows.Next() {
		var d models.Delivery
		var dismissed, kind, fielder sql.NullString
		if err := rows.Scan(
			&d.ID, &d.MatchID, &d.Inning, &d.BattingTeam, &d.BowlingTeam,
			&d.Over, &d.Ball, &d.Batsman, &d.NonStriker, &d.Bowler,
			&d.IsSuperOver, &d.WideRuns, &d.ByeRuns, &d.LegByeRuns,
			&d.NoBallRuns, &d.PenaltyRuns, &d.BatsmanRuns, &d.ExtraRuns,
			&d.TotalRuns, &dismissed, &kind, &fielder,
		); err != nil {
			return nil, fmt.Errorf("scan delivery: %w", err)
		}
		d.PlayerDismissed = dismissed.String
		d.DismissalKind = kind.String
		d.Fielder = fielder.String
		out = append(out, d)
	}
	return out, rows.Err()
}

func (s *Store) loadPlayers(ctx context.Context) ([]models.Player, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, player_name, team, role, batting_style, bowling_style,
		       country, born_date, matches_played, runs_scored, wickets_taken,
		       catches, stumpings
		FROM players ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query players: %w", err)
	}
	defer rows.Close()

	var out []models.Player
	for rows.Next() {
		var p models.Player
		var born sql.NullString
		if err := rows.Scan(
			&p.ID, &p.PlayerName, &p.Team, &p.Role, &p.BattingStyle,
			&p.BowlingStyle, &p.Country, &born, &p.MatchesPlayed,
			&p.RunsScored, &p.WicketsTaken, &p.Catches, &p.Stumpings,
		); err != nil {
			return nil, fmt.Errorf("scan player: %w", err)
		}
		p.BornDate = born.String
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *Store) loadStandings(ctx context.Context) ([]models.Standing, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, season, team, matches_played, won, lost, tied, no_result,
		       points, net_run_rate, for_overs, against_overs, position
		FROM points_table ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("query points_table: %w", err)
	}
	defer rows.Close()

	var out []models.Standing
	for rows.Next() {
		var st models.Standing
		if err := rows.Scan(
			&st.ID, &st.Season, &st.Team, &st.MatchesPlayed, &st.Won,
			&st.Lost, &st.Tied, &st.NoResult, &st.Points, &st.NetRunRate,
			&st.ForOvers, &st.AgainstOvers, &st.Position,
		); err != nil {
			return nil, fmt.Errorf("scan standing: %w", err)
		}
		out = append(out, st)
	}
	return out, rows.Err()
}

func (s *Store) loadVenues(ctx context.Context) ([]models.Venue, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, city, capacity, timezone FROM venues ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query venues: %w", err)
	}
	defer rows.Close()

	var out []models.Venue
	for rows.Next() {
		var v models.Venue
		if err := rows.Scan(&v.ID, &v.Name, &v.City, &v.Capacity, &v.Timezone); err != nil {
			return nil, fmt.Errorf("scan venue: %w", err)
		}
		out = append(out, v)
	}
	return out, rows.Err()
}
