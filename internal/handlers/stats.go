package handlers

import (
	"net/http"
	"sort"
	"strconv"

	"github.com/cricstats/analytics-api/internal/models"
)

// GetTeamSummaries returns the team KPIs from the latest report
// @Summary Team Performance Summaries
// @Tags Stats
// @Produce json
// @Param sort query string false "Sort key" Enums(win_rate, run_rate, wickets)
// @Param top query int false "Limit to top N teams"
// @Success 200 {array} models.TeamSummary
// @Failure 404 {object} map[string]string "No Report"
// @Router /stats/teams [get]
func (h *Handler) GetTeamSummaries(w http.ResponseWriter, r *http.Request) {
	report := h.report.Latest()
	if report == nil {
		h.errorResponse(w, http.StatusNotFound, "no report generated yet")
		return
	}

	teams := make([]*models.TeamSummary, 0, len(report.TeamSummaries))
	for _, t := range report.TeamSummaries {
		teams = append(teams, t)
	}

	sortKey := r.URL.Query().Get("sort")
	sort.Slice(teams, func(i, j int) bool {
		switch sortKey {
		case "run_rate":
			return teams[i].AvgRunRate > teams[j].AvgRunRate
		case "wickets":
			return teams[i].WicketsTaken > teams[j].WicketsTaken
		case "win_rate":
			return teams[i].WinRate > teams[j].WinRate
		default:
			return teams[i].Team < teams[j].Team
		}
	})

	h.jsonResponse(w, http.StatusOK, limit(teams, r.URL.Query().Get("top")))
}

// GetPlayerSummaries returns the player KPIs from the latest report
// @Summary Player Performance Summaries
// @Tags Stats
// @Produce json
// @Param sort query string false "Sort key" Enums(runs, wickets, strike_rate, economy)
// @Param top query int false "Limit to top N players"
// @Success 200 {array} models.PlayerSummary
// @Failure 404 {object} map[string]string "No Report"
// @Router /stats/players [get]
func (h *Handler) GetPlayerSummaries(w http.ResponseWriter, r *http.Request) {
	report := h.report.Latest()
	if report == nil {
		h.errorResponse(w, http.StatusNotFound, "no report generated yet")
		return
	}

	players := make([]*models.PlayerSummary, 0, len(report.PlayerSummaries))
	for _, p := range report.PlayerSummaries {
		players = append(players, p)
	}

	sortKey := r.URL.Query().Get("sort")
	sort.Slice(players, func(i, j int) bool {
		switch sortKey {
		case "wickets":
			return players[i].WicketsTaken > players[j].WicketsTaken
		case "strike_rate":
			return players[i].StrikeRate > players[j].StrikeRate
		case "economy":
			// Lower is better; players who never bowled sink to the bottom.
			if (players[i].BallsBowled > 0) != (players[j].BallsBowled > 0) {
				return players[i].BallsBowled > 0
			}
			return players[i].EconomyRate < players[j].EconomyRate
		case "runs":
			return players[i].RunsScored > players[j].RunsScored
		default:
			return players[i].Player < players[j].Player
		}
	})

	h.jsonResponse(w, http.StatusOK, limit(players, r.URL.Query().Get("top")))
}

// limit truncates a slice to the top N entries when the query param parses.
func limit[T any](items []T, top string) []T {
	if top == "" {
		return items
	}
	n, err := strconv.Atoi(top)
	if err != nil || n < 0 || n >= len(items) {
		return items
	}
	return items[:n]
}
