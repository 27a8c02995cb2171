package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/cricstats/analytics-api/internal/logic"
	"github.com/cricstats/analytics-api/internal/models"
)

// MockReportService implements logic.ReportService for testing
type MockReportService struct {
	GenerateFunc func(ctx context.Context) (*models.Report, error)
	LatestFunc   func() *models.Report
}

func (m *MockReportService) Generate(ctx context.Context) (*models.Report, error) {
	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx)
	}
	return sampleReport(), nil
}

func (m *MockReportService) Latest() *models.Report {
	if m.LatestFunc != nil {
		return m.LatestFunc()
	}
	return nil
}

// MockPredictorService implements logic.PredictorService for testing
type MockPredictorService struct {
	PredictFunc func(req models.PredictionRequest) (*models.Prediction, error)
	ReadyFunc   func() bool
}

func (m *MockPredictorService) Rebuild(matches []models.Match) (bool, float64) { return true, 1 }

func (m *MockPredictorService) Predict(req models.PredictionRequest) (*models.Prediction, error) {
	if m.PredictFunc != nil {
		return m.PredictFunc(req)
	}
	return nil, errors.New("unexpected call")
}

func (m *MockPredictorService) Ready() bool {
	if m.ReadyFunc != nil {
		return m.ReadyFunc()
	}
	return false
}

// MockPinger implements Pinger for testing
type MockPinger struct {
	PingFunc func(ctx context.Context) error
}

func (m *MockPinger) Ping(ctx context.Context) error {
	if m.PingFunc != nil {
		return m.PingFunc(ctx)
	}
	return nil
}

// MockRecordReader implements RecordReader for testing
type MockRecordReader struct {
	StandingsFunc func(ctx context.Context) ([]models.Standing, error)
	VenuesFunc    func(ctx context.Context) ([]models.Venue, error)
}

func (m *MockRecordReader) Standings(ctx context.Context) ([]models.Standing, error) {
	if m.StandingsFunc != nil {
		return m.StandingsFunc(ctx)
	}
	return nil, nil
}

func (m *MockRecordReader) Venues(ctx context.Context) ([]models.Venue, error) {
	if m.VenuesFunc != nil {
		return m.VenuesFunc(ctx)
	}
	return nil, nil
}

func sampleReport() *models.Report {
	avg := 21.5
	return &models.Report{
		ID:          "report-1",
		GeneratedAt: time.Now().UTC(),
		TeamSummaries: map[string]*models.TeamSummary{
			"Mumbai Indians": {Team: "Mumbai Indians", TotalMatches: 14, Wins: 9, WinRate: 9.0 / 14, AvgRunRate: 8.9, WicketsTaken: 80, BowlingAverage: &avg},
			"Chennai Super Kings": {Team: "Chennai Super Kings", TotalMatches: 14, Wins: 7, WinRate: 0.5, AvgRunRate: 8.1, WicketsTaken: 70},
		},
		PlayerSummaries: map[string]*models.PlayerSummary{
			"Rohit":  {Player: "Rohit", RunsScored: 550, BallsFaced: 400, StrikeRate: 137.5},
			"Bumrah": {Player: "Bumrah", WicketsTaken: 25, BallsBowled: 330, RunsConceded: 380, EconomyRate: 6.9},
		},
		ModelTrained:    true,
		ModelAccuracy:   0.7,
		TotalMatches:    70,
		TotalDeliveries: 17000,
		TotalPlayers:    180,
	}
}

func newTestHandler(report *MockReportService, predictor *MockPredictorService, store *StoreDeps) http.Handler {
	if report == nil {
		report = &MockReportService{}
	}
	if predictor == nil {
		predictor = &MockPredictorService{}
	}
	if store == nil {
		store = &StoreDeps{Pinger: &MockPinger{}, Records: &MockRecordReader{}}
	}

	h := New(Config{
		Store:     store,
		Logger:    zap.NewNop(),
		Report:    report,
		Predictor: predictor,
	})
	r := chi.NewRouter()
	h.Routes(r)
	return r
}

func TestHealth(t *testing.T) {
	router := newTestHandler(nil, nil, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

func TestReady(t *testing.T) {
	tests := []struct {
		name       string
		pingErr    error
		modelReady bool
		wantStatus int
	}{
		{"Store up and model trained", nil, true, http.StatusOK},
		{"Store up and model not trained", nil, false, http.StatusOK},
		{"Store unreachable", errors.New("locked"), true, http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &StoreDeps{
				Pinger:  &MockPinger{PingFunc: func(ctx context.Context) error { return tt.pingErr }},
				Records: &MockRecordReader{},
			}
			predictor := &MockPredictorService{ReadyFunc: func() bool { return tt.modelReady }}
			router := newTestHandler(nil, predictor, store)

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}

			var body struct {
				Checks map[string]bool `json:"checks"`
			}
			if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
				t.Fatalf("decode body: %v", err)
			}
			if body.Checks["model"] != tt.modelReady {
				t.Errorf("model check = %v, want %v", body.Checks["model"], tt.modelReady)
			}
		})
	}
}

func TestGenerateReport(t *testing.T) {
	tests := []struct {
		name       string
		generate   func(ctx context.Context) (*models.Report, error)
		wantStatus int
	}{
		{
			name:       "Success",
			generate:   func(ctx context.Context) (*models.Report, error) { return sampleReport(), nil },
			wantStatus: http.StatusOK,
		},
		{
			name:       "Missing record sets",
			generate:   func(ctx context.Context) (*models.Report, error) { return nil, logic.ErrMissingData },
			wantStatus: http.StatusServiceUnavailable,
		},
		{
			name:       "Store failure",
			generate:   func(ctx context.Context) (*models.Report, error) { return nil, errors.New("disk gone") },
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTestHandler(&MockReportService{GenerateFunc: tt.generate}, nil, nil)

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/report/generate", nil))

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}

func TestGetReport(t *testing.T) {
	t.Run("No report yet", func(t *testing.T) {
		router := newTestHandler(&MockReportService{LatestFunc: func() *models.Report { return nil }}, nil, nil)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/report", nil))

		if rec.Code != http.StatusNotFound {
			t.Fatalf("status = %d, want 404", rec.Code)
		}
	})

	t.Run("Latest report", func(t *testing.T) {
		router := newTestHandler(&MockReportService{LatestFunc: func() *models.Report { return sampleReport() }}, nil, nil)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/report", nil))

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		var report models.Report
		if err := json.NewDecoder(rec.Body).Decode(&report); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if report.ID != "report-1" {
			t.Errorf("report id = %q, want report-1", report.ID)
		}
		if report.TeamSummaries["Chennai Super Kings"].BowlingAverage != nil {
			t.Error("undefined bowling average did not survive as null")
		}
	})
}

func TestGetTeamSummaries(t *testing.T) {
	report := &MockReportService{LatestFunc: func() *models.Report { return sampleReport() }}

	tests := []struct {
		name      string
		query     string
		wantLen   int
		wantFirst string
	}{
		{"Alphabetical by default", "", 2, "Chennai Super Kings"},
		{"Sorted by win rate", "?sort=win_rate", 2, "Mumbai Indians"},
		{"Sorted by run rate", "?sort=run_rate", 2, "Mumbai Indians"},
		{"Top one", "?sort=wickets&top=1", 1, "Mumbai Indians"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTestHandler(report, nil, nil)

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/stats/teams"+tt.query, nil))

			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, want 200", rec.Code)
			}
			var teams []models.TeamSummary
			if err := json.NewDecoder(rec.Body).Decode(&teams); err != nil {
				t.Fatalf("decode body: %v", err)
			}
			if len(teams) != tt.wantLen {
				t.Fatalf("len = %d, want %d", len(teams), tt.wantLen)
			}
			if teams[0].Team != tt.wantFirst {
				t.Errorf("first team = %q, want %q", teams[0].Team, tt.wantFirst)
			}
		})
	}

	t.Run("No report yet", func(t *testing.T) {
		router := newTestHandler(&MockReportService{LatestFunc: func() *models.Report { return nil }}, nil, nil)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/stats/teams", nil))

		if rec.Code != http.StatusNotFound {
			t.Fatalf("status = %d, want 404", rec.Code)
		}
	})
}

func TestGetPlayerSummaries(t *testing.T) {
	report := &MockReportService{LatestFunc: func() *models.Report { return sampleReport() }}

	tests := []struct {
		name      string
		query     string
		wantFirst string
	}{
		{"Sorted by runs", "?sort=runs", "Rohit"},
		{"Sorted by wickets", "?sort=wickets", "Bumrah"},
		{"Bowlers first on economy", "?sort=economy", "Bumrah"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTestHandler(report, nil, nil)

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/stats/players"+tt.query, nil))

			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, want 200", rec.Code)
			}
			var players []models.PlayerSummary
			if err := json.NewDecoder(rec.Body).Decode(&players); err != nil {
				t.Fatalf("decode body: %v", err)
			}
			if players[0].Player != tt.wantFirst {
				t.Errorf("first player = %q, want %q", players[0].Player, tt.wantFirst)
			}
		})
	}
}

func TestPredictWinner(t *testing.T) {
	validBody := `{"team1":"Mumbai Indians","team2":"Chennai Super Kings","toss_winner":"Mumbai Indians","toss_decision":"bat","venue":"Wankhede Stadium"}`

	tests := []struct {
		name       string
		body       string
		predict    func(req models.PredictionRequest) (*models.Prediction, error)
		wantStatus int
	}{
		{
			name: "Success",
			body: validBody,
			predict: func(req models.PredictionRequest) (*models.Prediction, error) {
				return &models.Prediction{
					PredictedWinner: "Mumbai Indians",
					Confidence:      0.64,
					Probabilities:   map[string]float64{"Mumbai Indians": 0.64, "Chennai Super Kings": 0.36},
				}, nil
			},
			wantStatus: http.StatusOK,
		},
		{
			name:       "Malformed JSON",
			body:       `{"team1":`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "Missing required field",
			body:       `{"team1":"Mumbai Indians","team2":"Chennai Super Kings","toss_winner":"Mumbai Indians","toss_decision":"bat"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "Invalid toss decision",
			body:       strings.Replace(validBody, `"bat"`, `"declare"`, 1),
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "Model not trained",
			body: validBody,
			predict: func(req models.PredictionRequest) (*models.Prediction, error) {
				return nil, logic.ErrModelNotReady
			},
			wantStatus: http.StatusServiceUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			predictor := &MockPredictorService{PredictFunc: tt.predict}
			router := newTestHandler(nil, predictor, nil)

			req := httptest.NewRequest(http.MethodPost, "/api/v1/predict", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d: %s", rec.Code, tt.wantStatus, rec.Body.String())
			}

			if tt.wantStatus == http.StatusOK {
				var pred models.Prediction
				if err := json.NewDecoder(rec.Body).Decode(&pred); err != nil {
					t.Fatalf("decode body: %v", err)
				}
				if pred.PredictedWinner != "Mumbai Indians" {
					t.Errorf("winner = %q, want Mumbai Indians", pred.PredictedWinner)
				}
			}
		})
	}
}

func TestGetStandings(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		store := &StoreDeps{
			Pinger: &MockPinger{},
			Records: &MockRecordReader{
				StandingsFunc: func(ctx context.Context) ([]models.Standing, error) {
					return []models.Standing{{ID: 1, Team: "Mumbai Indians", Points: 18, Position: 1}}, nil
				},
			},
		}
		router := newTestHandler(nil, nil, store)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/standings", nil))

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		var standings []models.Standing
		if err := json.NewDecoder(rec.Body).Decode(&standings); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if len(standings) != 1 || standings[0].Team != "Mumbai Indians" {
			t.Errorf("standings = %+v", standings)
		}
	})

	t.Run("Store failure", func(t *testing.T) {
		store := &StoreDeps{
			Pinger: &MockPinger{},
			Records: &MockRecordReader{
				StandingsFunc: func(ctx context.Context) ([]models.Standing, error) {
					return nil, errors.New("locked")
				},
			},
		}
		router := newTestHandler(nil, nil, store)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/standings", nil))

		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("status = %d, want 500", rec.Code)
		}
	})
}

func TestGetVenues(t *testing.T) {
	store := &StoreDeps{
		Pinger: &MockPinger{},
		Records: &MockRecordReader{
			VenuesFunc: func(ctx context.Context) ([]models.Venue, error) {
				return []models.Venue{{ID: 1, Name: "Wankhede Stadium", City: "Mumbai"}}, nil
			},
		},
	}
	router := newTestHandler(nil, nil, store)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/venues", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var venues []models.Venue
	if err := json.NewDecoder(rec.Body).Decode(&venues); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(venues) != 1 || venues[0].City != "Mumbai" {
		t.Errorf("venues = %+v", venues)
	}
}
