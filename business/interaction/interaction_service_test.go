package interaction

import (
	"context"
	"errors"
	"testing"

	"adventura/domain"
)

type fakeInterRepo struct {
	saved []domain.ActivityInteraction
	err   error
}

func (r *fakeInterRepo) Upsert(_ context.Context, row *domain.ActivityInteraction) error {
	if r.err != nil {
		return r.err
	}
	r.saved = append(r.saved, *row)
	return nil
}

type fakeCatalog struct {
	activities map[uint64]domain.Activity
}

func (c *fakeCatalog) FindByID(_ context.Context, id uint64) (domain.Activity, error) {
	a, ok := c.activities[id]
	if !ok {
		return domain.Activity{}, errors.New("record not found")
	}
	return a, nil
}

type fakePrefRepo struct {
	prefs   map[uint64]domain.UserPreference
	findErr error
}

func newFakePrefRepo() *fakePrefRepo {
	return &fakePrefRepo{prefs: make(map[uint64]domain.UserPreference)}
}

func (r *fakePrefRepo) Find(_ context.Context, _ uint, categoryID uint64) (domain.UserPreference, bool, error) {
	if r.findErr != nil {
		return domain.UserPreference{}, false, r.findErr
	}
	p, ok := r.prefs[categoryID]
	return p, ok, nil
}

func (r *fakePrefRepo) Upsert(_ context.Context, pref *domain.UserPreference) error {
	r.prefs[pref.CategoryID] = *pref
	return nil
}

type countingSignal struct {
	notes int
}

func (s *countingSignal) NoteInteraction() { s.notes++ }

func newTestService() (*Service, *fakeInterRepo, *fakePrefRepo, *countingSignal) {
	interRepo := &fakeInterRepo{}
	catalog := &fakeCatalog{activities: map[uint64]domain.Activity{
		10: {ActivityID: 10, CategoryID: 1},
	}}
	prefRepo := newFakePrefRepo()
	signal := &countingSignal{}
	return NewService(interRepo, catalog, prefRepo, signal), interRepo, prefRepo, signal
}

func TestTrackRecordsInteraction(t *testing.T) {
	svc, interRepo, _, signal := newTestService()

	err := svc.Track(context.Background(), TrackInput{
		UserID: 1, ActivityID: 10, InteractionType: "like",
	})
	if err != nil {
		t.Fatalf("Track() error = %v", err)
	}

	if len(interRepo.saved) != 1 {
		t.Fatalf("saved %d interactions, want 1", len(interRepo.saved))
	}
	if interRepo.saved[0].InteractionType != "like" {
		t.Errorf("saved type = %q, want like", interRepo.saved[0].InteractionType)
	}
	if signal.notes != 1 {
		t.Errorf("retrain notes = %d, want 1", signal.notes)
	}
}

func TestTrackUnknownActivity(t *testing.T) {
	svc, interRepo, _, _ := newTestService()

	err := svc.Track(context.Background(), TrackInput{
		UserID: 1, ActivityID: 999, InteractionType: "view",
	})
	if !errors.Is(err, ErrActivityNotFound) {
		t.Fatalf("Track() error = %v, want ErrActivityNotFound", err)
	}
	if len(interRepo.saved) != 0 {
		t.Error("interaction persisted for an unknown activity")
	}
}

func TestTrackMissingType(t *testing.T) {
	svc, _, _, _ := newTestService()

	if err := svc.Track(context.Background(), TrackInput{UserID: 1, ActivityID: 10}); err == nil {
		t.Fatal("Track() accepted an empty interaction type")
	}
}

func TestTrackPreferenceBumpLadder(t *testing.T) {
	svc, _, prefRepo, _ := newTestService()
	in := TrackInput{UserID: 1, ActivityID: 10, InteractionType: "view"}

	steps := []struct {
		wantCount int
		wantLevel float64
	}{
		{1, 3}, // first contact starts at 3
		{2, 3},
		{3, 3},
		{4, 4}, // fourth interaction lifts to 4 (prior count reached 3)
		{5, 4},
		{6, 5}, // sixth lifts to 5 (prior count reached 5)
		{7, 5}, // and it stays there
	}

	for i, step := range steps {
		if err := svc.Track(context.Background(), in); err != nil {
			t.Fatalf("Track() #%d error = %v", i+1, err)
		}
		pref := prefRepo.prefs[1]
		if pref.InteractionCount != step.wantCount || pref.PreferenceLevel != step.wantLevel {
			t.Fatalf("after %d interactions: count=%d level=%v, want count=%d level=%v",
				i+1, pref.InteractionCount, pref.PreferenceLevel, step.wantCount, step.wantLevel)
		}
	}
}

func TestTrackSurvivesPreferenceFailure(t *testing.T) {
	svc, interRepo, prefRepo, signal := newTestService()
	prefRepo.findErr = errors.New("connection refused")

	err := svc.Track(context.Background(), TrackInput{
		UserID: 1, ActivityID: 10, InteractionType: "save",
	})
	if err != nil {
		t.Fatalf("Track() error = %v, want nil despite preference failure", err)
	}
	if len(interRepo.saved) != 1 {
		t.Error("interaction lost when the preference bump failed")
	}
	if signal.notes != 1 {
		t.Error("retrain signal lost when the preference bump failed")
	}
}
