package logic

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/cricstats/analytics-api/internal/models"
)

// MockRecordSource implements RecordSource for testing
type MockRecordSource struct {
	LoadAllFunc func(ctx context.Context) (*models.Dataset, error)
}

func (m *MockRecordSource) LoadAll(ctx context.Context) (*models.Dataset, error) {
	if m.LoadAllFunc != nil {
		return m.LoadAllFunc(ctx)
	}
	return &models.Dataset{}, nil
}

// MockPredictor implements PredictorService for testing
type MockPredictor struct {
	RebuildFunc func(matches []models.Match) (bool, float64)
}

func (m *MockPredictor) Rebuild(matches []models.Match) (bool, float64) {
	if m.RebuildFunc != nil {
		return m.RebuildFunc(matches)
	}
	return true, 0.75
}

func (m *MockPredictor) Predict(req models.PredictionRequest) (*models.Prediction, error) {
	return nil, ErrModelNotReady
}

func (m *MockPredictor) Ready() bool { return false }

func fullDataset() *models.Dataset {
	return &models.Dataset{
		Matches:    roundRobin(),
		Deliveries: ballLog(),
		Players: []models.Player{
			{ID: 1, PlayerName: "Rohit", Team: mi},
			{ID: 2, PlayerName: "Bumrah", Team: mi},
		},
		Standings: []models.Standing{{ID: 1, Team: mi, Points: 4, Position: 1}},
		Venues:    []models.Venue{{ID: 1, Name: "Wankhede Stadium", City: "Mumbai"}},
	}
}

func TestGenerateReport(t *testing.T) {
	logger := zap.NewNop().Sugar()

	tests := []struct {
		name        string
		load        func(ctx context.Context) (*models.Dataset, error)
		wantErr     error
		wantAnyErr  bool
		wantTrained bool
	}{
		{
			name:        "Happy path",
			load:        func(ctx context.Context) (*models.Dataset, error) { return fullDataset(), nil },
			wantTrained: true,
		},
		{
			name: "Missing deliveries",
			load: func(ctx context.Context) (*models.Dataset, error) {
				ds := fullDataset()
				ds.Deliveries = nil
				return ds, nil
			},
			wantErr: ErrMissingData,
		},
		{
			name: "Missing players",
			load: func(ctx context.Context) (*models.Dataset, error) {
				ds := fullDataset()
				ds.Players = nil
				return ds, nil
			},
			wantErr: ErrMissingData,
		},
		{
			name:       "Store failure aborts the pipeline",
			load:       func(ctx context.Context) (*models.Dataset, error) { return nil, errors.New("disk gone") },
			wantAnyErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewReportService(
				&MockRecordSource{LoadAllFunc: tt.load},
				NewKPIService(),
				&MockPredictor{},
				logger,
			)

			report, err := svc.Generate(context.Background())

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("err = %v, want %v", err, tt.wantErr)
				}
				if report != nil {
					t.Error("aborted cycle still produced a report")
				}
				if svc.Latest() != nil {
					t.Error("aborted cycle was cached as latest")
				}
				return
			}
			if tt.wantAnyErr {
				if err == nil {
					t.Fatal("expected an error")
				}
				if report != nil {
					t.Error("failed load still produced a report")
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if report.ID == "" {
				t.Error("report has no version identifier")
			}
			if report.ModelTrained != tt.wantTrained {
				t.Errorf("model_trained = %v, want %v", report.ModelTrained, tt.wantTrained)
			}
			if report.TotalMatches != 3 || report.TotalDeliveries != 6 || report.TotalPlayers != 2 {
				t.Errorf("row counts = %d/%d/%d, want 3/6/2",
					report.TotalMatches, report.TotalDeliveries, report.TotalPlayers)
			}
			if len(report.TeamSummaries) != 3 {
				t.Errorf("team summaries = %d, want 3", len(report.TeamSummaries))
			}
			if len(report.Venues) != 1 {
				t.Errorf("venues passthrough = %d, want 1", len(report.Venues))
			}
			if svc.Latest() != report {
				t.Error("generated report was not cached as latest")
			}
		})
	}
}

func TestGenerateReport_VenuesOptional(t *testing.T) {
	ds := fullDataset()
	ds.Venues = nil

	svc := NewReportService(
		&MockRecordSource{LoadAllFunc: func(ctx context.Context) (*models.Dataset, error) { return ds, nil }},
		NewKPIService(),
		&MockPredictor{},
		zap.NewNop().Sugar(),
	)

	report, err := svc.Generate(context.Background())
	if err != nil {
		t.Fatalf("missing venues aborted the cycle: %v", err)
	}
	if len(report.Venues) != 0 {
		t.Errorf("venues = %d, want empty passthrough", len(report.Venues))
	}
}
