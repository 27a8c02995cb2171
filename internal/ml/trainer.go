package ml

import (
	"errors"
	"fmt"
	"math/rand"

	"gonum.org/v1/gonum/floats"

	"github.com/cricstats/analytics-api/internal/models"
)

// Categorical feature columns, in feature-vector order. Each gets its own
// label encoder, persisted with the model so inference can encode inputs and
// decode the predicted class.
var categoricalColumns = []string{"team1", "team2", "toss_winner", "toss_decision", "venue"}

// Reserved venue score aggregates. Computing them needs a per-venue join
// against deliveries that this training path does not perform, so they are
// explicit always-zero placeholders rather than silently-wrong features.
const (
	reservedVenueFirstInningsAvg  = 0.0
	reservedVenueSecondInningsAvg = 0.0
)

// neutralVenueTossWinRate is the venue toss-batting win rate assumed at
// single-match inference, where aggregate history is not recomputed inline.
const neutralVenueTossWinRate = 0.5

const holdoutFraction = 0.2

// Example is one training or inference row before encoding.
type Example struct {
	Team1        string
	Team2        string
	TossWinner   string
	TossDecision string
	Venue        string

	Season                  float64
	VenueTotalMatches       float64
	VenueFirstInningsAvg    float64
	VenueSecondInningsAvg   float64
	VenueTossBattingWinRate float64
}

// ErrNoTrainingData is returned by Train when there are no winner-decided
// matches to learn from. Callers treat it as a normal "not trained" state.
var ErrNoTrainingData = errors.New("ml: no training data")

// ErrModelNotReady is returned by Predict before a successful Train.
var ErrModelNotReady = errors.New("ml: model not ready")

// venueStats aggregates match history per venue over the full match set,
// including unresolved matches.
type venueStats struct {
	totalMatches       int
	tossBattingWinRate float64
}

func computeVenueStats(matches []models.Match) map[string]venueStats {
	type tally struct {
		total       int
		batDecided  int
		batTossWins int
	}
	tallies := make(map[string]*tally)
	for _, m := range matches {
		t := tallies[m.Venue]
		if t == nil {
			t = &tally{}
			tallies[m.Venue] = t
		}
		t.total++
		if m.TossDecision == "bat" {
			t.batDecided++
			if m.TossWinner != "" && m.TossWinner == m.Winner {
				t.batTossWins++
			}
		}
	}

	stats := make(map[string]venueStats, len(tallies))
	for venue, t := range tallies {
		vs := venueStats{totalMatches: t.total}
		if t.batDecided > 0 {
			vs.tossBattingWinRate = float64(t.batTossWins) / float64(t.batDecided)
		}
		stats[venue] = vs
	}
	return stats
}

// PrepareTrainingSet builds one example per winner-decided match, with venue
// aggregates derived from the full match history. Labels are winning team
// names.
func PrepareTrainingSet(matches []models.Match) ([]Example, []string) {
	venues := computeVenueStats(matches)

	var examples []Example
	var labels []string
	for _, m := range matches {
		if m.Winner == "" {
			continue
		}
		vs := venues[m.Venue]
		examples = append(examples, Example{
			Team1:                   m.Team1,
			Team2:                   m.Team2,
			TossWinner:              m.TossWinner,
			TossDecision:            m.TossDecision,
			Venue:                   m.Venue,
			Season:                  float64(m.Season),
			VenueTotalMatches:       float64(vs.totalMatches),
			VenueFirstInningsAvg:    reservedVenueFirstInningsAvg,
			VenueSecondInningsAvg:   reservedVenueSecondInningsAvg,
			VenueTossBattingWinRate: vs.tossBattingWinRate,
		})
		labels = append(labels, m.Winner)
	}
	return examples, labels
}

// Model is the fitted classifier plus the per-column encoders required to
// reproduce training encodings and decode inference output. Built once per
// report cycle and discarded on the next; the encoders mutate on unseen
// inference values, so a Model must not be shared across concurrent
// predictions without external serialization.
type Model struct {
	forest   *Forest
	encoders map[string]*LabelEncoder
	target   *LabelEncoder

	// latestSeason is used as the season feature for single-match inference.
	latestSeason float64

	// Accuracy is the held-out diagnostic from training. It never gates
	// whether the model is kept.
	Accuracy float64
}

// Train fits the forest on an 80/20 shuffled split of the examples and
// reports held-out accuracy. It returns an error instead of a model when the
// inputs are empty or the fit fails; the caller treats that as "not
// trained", never as fatal.
func Train(examples []Example, labels []string) (*Model, error) {
	if len(examples) == 0 || len(labels) == 0 {
		return nil, ErrNoTrainingData
	}
	if len(examples) != len(labels) {
		return nil, fmt.Errorf("ml: %d examples but %d labels", len(examples), len(labels))
	}

	m := &Model{encoders: make(map[string]*LabelEncoder, len(categoricalColumns))}
	for _, col := range categoricalColumns {
		enc := NewLabelEncoder()
		enc.Fit(columnValues(examples, col))
		m.encoders[col] = enc
	}
	m.target = NewLabelEncoder()
	m.target.Fit(labels)

	x := make([][]float64, len(examples))
	y := make([]int, len(labels))
	for i, ex := range examples {
		x[i] = m.encode(ex)
		code, ok := m.target.Transform(labels[i])
		if !ok {
			return nil, fmt.Errorf("ml: label %q missing from target vocabulary", labels[i])
		}
		y[i] = code
		if ex.Season > m.latestSeason {
			m.latestSeason = ex.Season
		}
	}

	cfg := DefaultForestConfig()

	// Shuffled split, seeded like the fit itself so runs are reproducible.
	rng := rand.New(rand.NewSource(cfg.Seed))
	perm := rng.Perm(len(x))
	nTest := int(float64(len(x)) * holdoutFraction)
	nTrain := len(x) - nTest

	trainX := make([][]float64, 0, nTrain)
	trainY := make([]int, 0, nTrain)
	testX := make([][]float64, 0, nTest)
	testY := make([]int, 0, nTest)
	for i, p := range perm {
		if i < nTrain {
			trainX = append(trainX, x[p])
			trainY = append(trainY, y[p])
		} else {
			testX = append(testX, x[p])
			testY = append(testY, y[p])
		}
	}

	forest, err := FitForest(trainX, trainY, m.target.Len(), cfg)
	if err != nil {
		return nil, fmt.Errorf("ml: forest fit: %w", err)
	}
	m.forest = forest

	if len(testX) > 0 {
		correct := 0
		for i, row := range testX {
			if forest.Predict(row) == testY[i] {
				correct++
			}
		}
		m.Accuracy = float64(correct) / float64(len(testX))
	}

	return m, nil
}

// Predict classifies one match query. Venue-derived features default to
// neutral values and unseen categorical inputs extend their encoder
// vocabulary on the fly, so prediction never fails on a novel team or
// ground.
func (m *Model) Predict(req models.PredictionRequest) (*models.Prediction, error) {
	if m == nil || m.forest == nil {
		return nil, ErrModelNotReady
	}

	row := m.encode(Example{
		Team1:                   req.Team1,
		Team2:                   req.Team2,
		TossWinner:              req.TossWinner,
		TossDecision:            req.TossDecision,
		Venue:                   req.Venue,
		Season:                  m.latestSeason,
		VenueTotalMatches:       0,
		VenueFirstInningsAvg:    reservedVenueFirstInningsAvg,
		VenueSecondInningsAvg:   reservedVenueSecondInningsAvg,
		VenueTossBattingWinRate: neutralVenueTossWinRate,
	})

	proba := m.forest.Proba(row)
	best := floats.MaxIdx(proba)
	winner, ok := m.target.Inverse(best)
	if !ok {
		return nil, fmt.Errorf("ml: class %d missing from target vocabulary", best)
	}

	probabilities := make(map[string]float64, len(proba))
	for i, p := range proba {
		label, _ := m.target.Inverse(i)
		probabilities[label] = p
	}

	return &models.Prediction{
		PredictedWinner: winner,
		Confidence:      proba[best],
		Probabilities:   probabilities,
	}, nil
}

// encode turns an example into the fixed-order feature vector. Categorical
// values not present in a vocabulary are appended to it.
func (m *Model) encode(ex Example) []float64 {
	return []float64{
		float64(m.encoders["team1"].TransformOrExtend(ex.Team1)),
		float64(m.encoders["team2"].TransformOrExtend(ex.Team2)),
		float64(m.encoders["toss_winner"].TransformOrExtend(ex.TossWinner)),
		float64(m.encoders["toss_decision"].TransformOrExtend(ex.TossDecision)),
		float64(m.encoders["venue"].TransformOrExtend(ex.Venue)),
		ex.Season,
		ex.VenueTotalMatches,
		ex.VenueFirstInningsAvg,
		ex.VenueSecondInningsAvg,
		ex.VenueTossBattingWinRate,
	}
}

func columnValues(examples []Example, col string) []string {
	values := make([]string, len(examples))
	for i, ex := range examples {
		switch col {
		case "team1":
			values[i] = ex.Team1
		case "team2":
			values[i] = ex.Team2
		case "toss_winner":
			values[i] = ex.TossWinner
		case "toss_decision":
			values[i] = ex.TossDecision
		case "venue":
			values[i] = ex.Venue
		}
	}
	return values
}
