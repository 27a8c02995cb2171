// The seeder is the batch ETL entrypoint: it reads the season CSV exports
// and replaces the record-store tables wholesale. Run it before the first
// report cycle and after every data refresh.
package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/cricstats/analytics-api/internal/config"
	"github.com/cricstats/analytics-api/internal/models"
	"github.com/cricstats/analytics-api/internal/store"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	logger, err := zap.NewDevelopment()
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	sugar := logger.Sugar()

	db, err := store.Open(cfg.DatabasePath, sugar)
	if err != nil {
		sugar.Fatalw("Failed to open record store", "error", err, "path", cfg.DatabasePath)
	}
	defer db.Close()

	ctx := context.Background()
	if err := db.CreateTables(ctx); err != nil {
		sugar.Fatalw("Failed to create tables", "error", err)
	}

	loaded := 0
	for _, kind := range store.Kinds {
		path := filepath.Join(cfg.DataDir, kind.Table()+".csv")
		rows, err := readCSV(path)
		if err != nil {
			if os.IsNotExist(err) && kind == store.KindVenues {
				// Venues are optional in the archive format.
				sugar.Warnw("Optional record set missing", "file", path)
				continue
			}
			sugar.Errorw("Failed to read record set", "file", path, "error", err)
			continue
		}

		if err := seed(ctx, db, kind, rows); err != nil {
			sugar.Errorw("Failed to load record set", "table", kind.Table(), "error", err)
			continue
		}
		loaded++
	}

	counts, err := db.Counts(ctx)
	if err != nil {
		sugar.Fatalw("Failed to count records", "error", err)
	}
	sugar.Infow("Seeding complete", "sets_loaded", loaded)
	for _, kind := range store.Kinds {
		fmt.Printf("  %-12s %d rows\n", kind.Table(), counts[kind.Table()])
	}
}

// seed dispatches one parsed CSV to the loader for its record kind. The kind
// set is closed; anything else is a programming error.
func seed(ctx context.Context, db *store.Store, kind store.RecordKind, rows []row) error {
	switch kind {
	case store.KindMatches:
		return db.ReplaceMatches(ctx, parseAll(rows, parseMatch))
	case store.KindDeliveries:
		return db.ReplaceDeliveries(ctx, parseAll(rows, parseDelivery))
	case store.KindPlayers:
		return db.ReplacePlayers(ctx, parseAll(rows, parsePlayer))
	case store.KindStandings:
		return db.ReplaceStandings(ctx, parseAll(rows, parseStanding))
	case store.KindVenues:
		return db.ReplaceVenues(ctx, parseAll(rows, parseVenue))
	}
	return fmt.Errorf("unknown record kind %d", kind)
}

// row is one CSV record addressed by header name.
type row map[string]string

func readCSV(path string) ([]row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	var rows []row
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		m := make(row, len(header))
		for i, col := range header {
			if i < len(rec) {
				m[col] = rec[i]
			}
		}
		rows = append(rows, m)
	}
	return rows, nil
}

func parseAll[T any](rows []row, parse func(row) T) []T {
	out := make([]T, len(rows))
	for i, r := range rows {
		out[i] = parse(r)
	}
	return out
}

func (r row) str(key string) string { return r[key] }

func (r row) num(key string) int {
	n, _ := strconv.Atoi(r[key])
	return n
}

func (r row) flt(key string) float64 {
	f, _ := strconv.ParseFloat(r[key], 64)
	return f
}

func parseMatch(r row) models.Match {
	return models.Match{
		ID:            r.num("id"),
		Season:        r.num("season"),
		City:          r.str("city"),
		Date:          r.str("date"),
		Team1:         r.str("team1"),
		Team2:         r.str("team2"),
		TossWinner:    r.str("toss_winner"),
		TossDecision:  r.str("toss_decision"),
		Result:        r.str("result"),
		DLApplied:     r.num("dl_applied"),
		Winner:        r.str("winner"),
		WinByRuns:     r.num("win_by_runs"),
		WinByWickets:  r.num("win_by_wickets"),
		PlayerOfMatch: r.str("player_of_match"),
		Venue:         r.str("venue"),
		Umpire1:       r.str("umpire1"),
		Umpire2:       r.str("umpire2"),
		Umpire3:       r.str("umpire3"),
	}
}

func parseDelivery(r row) models.Delivery {
	return models.Delivery{
		ID:              r.num("id"),
		MatchID:         r.num("match_id"),
		Inning:          r.num("inning"),
		BattingTeam:     r.str("batting_team"),
		BowlingTeam:     r.str("bowling_team"),
		Over:            r.num("over"),
		Ball:            r.num("ball"),
		Batsman:         r.str("batsman"),
		NonStriker:      r.str("non_striker"),
		Bowler:          r.str("bowler"),
		IsSuperOver:     r.num("is_super_over"),
		WideRuns:        r.num("wide_runs"),
		ByeRuns:         r.num("bye_runs"),
		LegByeRuns:      r.num("legbye_runs"),
		NoBallRuns:      r.num("noball_runs"),
		PenaltyRuns:     r.num("penalty_runs"),
		BatsmanRuns:     r.num("batsman_runs"),
		ExtraRuns:       r.num("extra_runs"),
		TotalRuns:       r.num("total_runs"),
		PlayerDismissed: r.str("player_dismissed"),
		DismissalKind:   r.str("dismissal_kind"),
		Fielder:         r.str("fielder"),
	}
}

func parsePlayer(r row) models.Player {
	return models.Player{
		ID:            r.num("id"),
		PlayerName:    r.str("player_name"),
		Team:          r.str("team"),
		Role:          r.str("role"),
		BattingStyle:  r.str("batting_style"),
		BowlingStyle:  r.str("bowling_style"),
		Country:       r.str("country"),
		BornDate:      r.str("born_date"),
		MatchesPlayed: r.num("matches_played"),
		RunsScored:    r.num("runs_scored"),
		WicketsTaken:  r.num("wickets_taken"),
		Catches:       r.num("catches"),
		Stumpings:     r.num("stumpings"),
	}
}

func parseStanding(r row) models.Standing {
	return models.Standing{
		ID:            r.num("id"),
		Season:        r.num("season"),
		Team:          r.str("team"),
		MatchesPlayed: r.num("matches_played"),
		Won:           r.num("won"),
		Lost:          r.num("lost"),
		Tied:          r.num("tied"),
		NoResult:      r.num("no_result"),
		Points:        r.num("points"),
		NetRunRate:    r.flt("net_run_rate"),
		ForOvers:      r.flt("for_overs"),
		AgainstOvers:  r.flt("against_overs"),
		Position:      r.num("position"),
	}
}

func parseVenue(r row) models.Venue {
	return models.Venue{
		ID:       r.num("id"),
		Name:     r.str("name"),
		City:     r.str("city"),
		Capacity: r.num("capacity"),
		Timezone: r.str("timezone"),
	}
}
