package logic

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"

	"github.com/cricstats/analytics-api/internal/ml"
	"github.com/cricstats/analytics-api/internal/models"
)

var (
	predictionsServed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cricstats_predictions_served_total",
		Help: "Match-winner predictions served",
	})
	predictionsRejected = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cricstats_predictions_rejected_total",
		Help: "Predictions refused because no trained model was available",
	})
	modelAccuracy = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "cricstats_model_holdout_accuracy",
		Help: "Held-out accuracy of the last trained outcome model",
	})
)

// ErrModelNotReady re-exports the ml sentinel so handlers depend on logic
// only.
var ErrModelNotReady = ml.ErrModelNotReady

type predictorService struct {
	logger *zap.SugaredLogger

	// The model's encoders grow when inference sees an unseen category, so
	// all access is serialized. Each report cycle swaps in a fresh model.
	mu    sync.Mutex
	model *ml.Model
}

func NewPredictorService(logger *zap.SugaredLogger) PredictorService {
	return &predictorService{logger: logger}
}

func (s *predictorService) Rebuild(matches []models.Match) (bool, float64) {
	examples, labels := ml.PrepareTrainingSet(matches)

	model, err := ml.Train(examples, labels)
	if err != nil {
		// Not trained is a handled outcome: the report carries the flag and
		// prediction endpoints surface a warning state.
		s.logger.Warnw("Outcome model not trained", "error", err, "examples", len(examples))
		s.mu.Lock()
		s.model = nil
		s.mu.Unlock()
		return false, 0
	}

	s.logger.Infow("Outcome model trained",
		"decided_matches", len(labels),
		"holdout_accuracy", model.Accuracy,
	)
	modelAccuracy.Set(model.Accuracy)

	s.mu.Lock()
	s.model = model
	s.mu.Unlock()
	return true, model.Accuracy
}

func (s *predictorService) Predict(req models.PredictionRequest) (*models.Prediction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pred, err := s.model.Predict(req)
	if err != nil {
		predictionsRejected.Inc()
		return nil, err
	}
	predictionsServed.Inc()
	return pred, nil
}

func (s *predictorService) Ready() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.model != nil
}
