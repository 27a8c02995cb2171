package models

// PredictionRequest is the single-match inference input. All five fields are
// required; toss_decision must be "bat" or "field".
type PredictionRequest struct {
	Team1        string `json:"team1" validate:"required"`
	Team2        string `json:"team2" validate:"required"`
	TossWinner   string `json:"toss_winner" validate:"required"`
	TossDecision string `json:"toss_decision" validate:"required,oneof=bat field"`
	Venue        string `json:"venue" validate:"required"`
}

// Prediction is the classifier output for one match query.
type Prediction struct {
	PredictedWinner string `json:"predicted_winner"`
	// Confidence is the probability mass of the predicted class, in (0, 1].
	Confidence float64 `json:"confidence"`
	// Probabilities maps every team label seen during training to its
	// probability. Values sum to 1 across the full label set.
	Probabilities map[string]float64 `json:"probabilities"`
}
