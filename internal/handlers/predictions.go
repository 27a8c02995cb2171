package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/cricstats/analytics-api/internal/logic"
	"github.com/cricstats/analytics-api/internal/models"
)

// PredictWinner serves a single match-winner prediction
// @Summary Predict Match Winner
// @Tags Predictions
// @Accept json
// @Produce json
// @Param request body models.PredictionRequest true "Match conditions"
// @Success 200 {object} models.Prediction
// @Failure 400 {object} map[string]string "Invalid Request"
// @Failure 503 {object} map[string]string "Model Not Trained"
// @Router /predict [post]
func (h *Handler) PredictWinner(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodySize)

	var req models.PredictionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.errorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		h.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	pred, err := h.predictor.Predict(req)
	if err != nil {
		if errors.Is(err, logic.ErrModelNotReady) {
			// Warning state for the presentation layer, not a server fault.
			h.errorResponse(w, http.StatusServiceUnavailable, "model not trained")
			return
		}
		h.logger.Errorw("Prediction failed", "error", err, "team1", req.Team1, "team2", req.Team2)
		h.errorResponse(w, http.StatusInternalServerError, "prediction failed")
		return
	}

	h.jsonResponse(w, http.StatusOK, pred)
}
