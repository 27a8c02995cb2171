package models

// The five season record sets, as stored in the record store. String fields
// holding "" correspond to SQL NULL; numeric zero values are real zeros.

// Match is one fixture from the season match log. Winner is "" for matches
// with no result.
type Match struct {
	ID            int    `json:"id"`
	Season        int    `json:"season"`
	City          string `json:"city"`
	Date          string `json:"date"`
	Team1         string `json:"team1"`
	Team2         string `json:"team2"`
	TossWinner    string `json:"toss_winner"`
	TossDecision  string `json:"toss_decision"`
	Result        string `json:"result"`
	DLApplied     int    `json:"dl_applied"`
	Winner        string `json:"winner"`
	WinByRuns     int    `json:"win_by_runs"`
	WinByWickets  int    `json:"win_by_wickets"`
	PlayerOfMatch string `json:"player_of_match"`
	Venue         string `json:"venue"`
	Umpire1       string `json:"umpire1"`
	Umpire2       string `json:"umpire2"`
	Umpire3       string `json:"umpire3"`
}

// Delivery is one ball of the ball-by-ball log. PlayerDismissed is "" when no
// wicket fell on the ball.
type Delivery struct {
	ID              int    `json:"id"`
	MatchID         int    `json:"match_id"`
	Inning          int    `json:"inning"`
	BattingTeam     string `json:"batting_team"`
	BowlingTeam     string `json:"bowling_team"`
	Over            int    `json:"over"`
	Ball            int    `json:"ball"`
	Batsman         string `json:"batsman"`
	NonStriker      string `json:"non_striker"`
	Bowler          string `json:"bowler"`
	IsSuperOver     int    `json:"is_super_over"`
	WideRuns        int    `json:"wide_runs"`
	ByeRuns         int    `json:"bye_runs"`
	LegByeRuns      int    `json:"legbye_runs"`
	NoBallRuns      int    `json:"noball_runs"`
	PenaltyRuns     int    `json:"penalty_runs"`
	BatsmanRuns     int    `json:"batsman_runs"`
	ExtraRuns       int    `json:"extra_runs"`
	TotalRuns       int    `json:"total_runs"`
	PlayerDismissed string `json:"player_dismissed"`
	DismissalKind   string `json:"dismissal_kind"`
	Fielder         string `json:"fielder"`
}

// Player is one roster entry.
type Player struct {
	ID            int    `json:"id"`
	PlayerName    string `json:"player_name"`
	Team          string `json:"team"`
	Role          string `json:"role"`
	BattingStyle  string `json:"batting_style"`
	BowlingStyle  string `json:"bowling_style"`
	Country       string `json:"country"`
	BornDate      string `json:"born_date"`
	MatchesPlayed int    `json:"matches_played"`
	RunsScored    int    `json:"runs_scored"`
	WicketsTaken  int    `json:"wickets_taken"`
	Catches       int    `json:"catches"`
	Stumpings     int    `json:"stumpings"`
}

// Standing is one row of the season points table. Served as-is; the
// analytics core never recomputes points or net run rate.
type Standing struct {
	ID            int     `json:"id"`
	Season        int     `json:"season"`
	Team          string  `json:"team"`
	MatchesPlayed int     `json:"matches_played"`
	Won           int     `json:"won"`
	Lost          int     `json:"lost"`
	Tied          int     `json:"tied"`
	NoResult      int     `json:"no_result"`
	Points        int     `json:"points"`
	NetRunRate    float64 `json:"net_run_rate"`
	ForOvers      float64 `json:"for_overs"`
	AgainstOvers  float64 `json:"against_overs"`
	Position      int     `json:"position"`
}

// Venue is one ground from the venue record set.
type Venue struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	City     string `json:"city"`
	Capacity int    `json:"capacity"`
	Timezone string `json:"timezone"`
}

// Dataset is the full contents of every record set, loaded atomically at the
// start of a report cycle.
type Dataset struct {
	Matches    []Match
	Deliveries []Delivery
	Players    []Player
	Standings  []Standing
	Venues     []Venue
}
