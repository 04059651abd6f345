package recommender

import (
	"context"
	"encoding/json"
	"testing"

	"adventura/domain"
)

func TestFactorModelRoundTrip(t *testing.T) {
	inter := &fakeInterRepo{rows: []domain.ActivityInteraction{
		{UserID: 1, ActivityID: 10, InteractionType: "purchase"},
		{UserID: 2, ActivityID: 20, InteractionType: "like"},
	}}
	store := &fakeModelStore{}
	svc := newTestService(nil, inter, nil, store, nil)

	if err := svc.Train(context.Background()); err != nil {
		t.Fatalf("Train() error = %v", err)
	}
	original := store.model

	raw, err := json.Marshal(original)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var restored FactorModel
	if err := json.Unmarshal(raw, &restored); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if restored.FormatVersion != ModelFormatVersion {
		t.Errorf("format version = %d, want %d", restored.FormatVersion, ModelFormatVersion)
	}
	if restored.IsEmpty() {
		t.Fatal("restored model reports empty")
	}

	// The index map is rebuilt lazily; identity lookups must survive the
	// round trip.
	idx, ok := restored.Matrix.UserIndexOf(2)
	if !ok {
		t.Fatal("user 2 missing from restored matrix")
	}
	origIdx, _ := original.Matrix.UserIndexOf(2)
	if idx != origIdx {
		t.Errorf("user index = %d, want %d", idx, origIdx)
	}

	for i := range original.UserFactors {
		for j := range original.ItemFactors {
			if restored.predict(i, j) != original.predict(i, j) {
				t.Fatalf("prediction (%d,%d) drifted after round trip", i, j)
			}
		}
	}
}

func TestRetrainRebuildsShapes(t *testing.T) {
	inter := &fakeInterRepo{rows: []domain.ActivityInteraction{
		{UserID: 1, ActivityID: 10, InteractionType: "purchase"},
		{UserID: 2, ActivityID: 20, InteractionType: "like"},
	}}
	store := &fakeModelStore{}
	svc := newTestService(nil, inter, nil, store, nil)

	if err := svc.Train(context.Background()); err != nil {
		t.Fatalf("first Train() error = %v", err)
	}
	first := store.model

	// A new user and activity arrive between trains.
	inter.mu.Lock()
	inter.rows = append(inter.rows, domain.ActivityInteraction{
		UserID: 3, ActivityID: 30, InteractionType: "save",
	})
	inter.mu.Unlock()

	if err := svc.Train(context.Background()); err != nil {
		t.Fatalf("second Train() error = %v", err)
	}
	second := store.model

	if first == second {
		t.Fatal("retrain republished the same model instance")
	}
	if second.Matrix.NumUsers() != 3 || second.Matrix.NumActivities() != 3 {
		t.Errorf("matrix shape = %dx%d, want 3x3",
			second.Matrix.NumUsers(), second.Matrix.NumActivities())
	}
	if len(second.UserFactors) != 3 || len(second.ItemFactors) != 3 {
		t.Errorf("factor shapes = %dx%d, want 3x3",
			len(second.UserFactors), len(second.ItemFactors))
	}
	for _, v := range second.UserFactors {
		if len(v) != svc.cfg.LatentFactors {
			t.Fatalf("latent vector length = %d, want %d", len(v), svc.cfg.LatentFactors)
		}
	}
}

func TestFitALSReconstructsOrdering(t *testing.T) {
	m, err := buildInteractionMatrix([]ratedInteraction{
		{UserID: 1, ActivityID: 10, Rating: 5},
		{UserID: 1, ActivityID: 20, Rating: 1},
	})
	if err != nil {
		t.Fatalf("buildInteractionMatrix() error = %v", err)
	}

	cfg := testConfig()
	userFactors, itemFactors := fitALS(m, cfg)

	model := &FactorModel{
		UserFactors: userFactors,
		ItemFactors: itemFactors,
		Matrix:      m,
	}
	if model.predict(0, 0) <= model.predict(0, 1) {
		t.Errorf("predicted %.3f for the 5-rated item vs %.3f for the 1-rated",
			model.predict(0, 0), model.predict(0, 1))
	}
}

func TestSolveLinearSystem(t *testing.T) {
	A := [][]float64{{2, 1}, {1, 3}}
	b := []float64{5, 10}

	x, ok := solveLinearSystem(A, b)
	if !ok {
		t.Fatal("solver reported singular for a well-conditioned system")
	}
	// Exact solution is (1, 3).
	if diff := x[0] - 1; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("x[0] = %v, want 1", x[0])
	}
	if diff := x[1] - 3; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("x[1] = %v, want 3", x[1])
	}

	if _, ok := solveLinearSystem([][]float64{{0, 0}, {0, 0}}, []float64{1, 1}); ok {
		t.Error("solver solved a singular system")
	}
}
