package handlers

import (
	"net/http"
)

// Standings and venues are passthrough reads straight from the record store:
// the analytics core never recomputes points or net run rate.

// GetStandings returns the season points table
// @Summary Season Standings
// @Tags Stats
// @Produce json
// @Success 200 {array} models.Standing
// @Router /standings [get]
func (h *Handler) GetStandings(w http.ResponseWriter, r *http.Request) {
	standings, err := h.store.Records.Standings(r.Context())
	if err != nil {
		h.logger.Errorw("Failed to load standings", "error", err)
		h.errorResponse(w, http.StatusInternalServerError, "failed to load standings")
		return
	}
	h.jsonResponse(w, http.StatusOK, standings)
}

// GetVenues returns the venue record set
// @Summary Venues
// @Tags Stats
// @Produce json
// @Success 200 {array} models.Venue
// @Router /venues [get]
func (h *Handler) GetVenues(w http.ResponseWriter, r *http.Request) {
	venues, err := h.store.Records.Venues(r.Context())
	if err != nil {
		h.logger.Errorw("Failed to load venues", "error", err)
		h.errorResponse(w, http.StatusInternalServerError, "failed to load venues")
		return
	}
	h.jsonResponse(w, http.StatusOK, venues)
}
