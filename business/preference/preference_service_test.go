package preference

import (
	"context"
	"testing"

	"adventura/domain"
)

type fakePrefRepo struct {
	replaced map[uint][]domain.UserPreference
}

func newFakePrefRepo() *fakePrefRepo {
	return &fakePrefRepo{replaced: make(map[uint][]domain.UserPreference)}
}

func (r *fakePrefRepo) FindByUser(_ context.Context, userID uint) ([]domain.UserPreference, error) {
	return r.replaced[userID], nil
}

func (r *fakePrefRepo) ReplaceForUser(_ context.Context, userID uint, prefs []domain.UserPreference) error {
	r.replaced[userID] = prefs
	return nil
}

func TestReplace(t *testing.T) {
	repo := newFakePrefRepo()
	svc := NewService(repo)

	err := svc.Replace(context.Background(), 1, []PreferenceInput{
		{CategoryID: 10, PreferenceLevel: 5},
		{CategoryID: 20, PreferenceLevel: 1},
	})
	if err != nil {
		t.Fatalf("Replace() error = %v", err)
	}

	rows := repo.replaced[1]
	if len(rows) != 2 {
		t.Fatalf("stored %d rows, want 2", len(rows))
	}
	if rows[0].CategoryID != 10 || rows[0].PreferenceLevel != 5 {
		t.Errorf("row[0] = %+v", rows[0])
	}
	if rows[0].LastUpdated.IsZero() {
		t.Error("LastUpdated not set")
	}
}

func TestReplaceRejectsOutOfRangeLevel(t *testing.T) {
	svc := NewService(newFakePrefRepo())

	for _, level := range []float64{0, 0.5, 5.5, -1} {
		err := svc.Replace(context.Background(), 1, []PreferenceInput{
			{CategoryID: 10, PreferenceLevel: level},
		})
		if err == nil {
			t.Errorf("Replace() accepted level %v", level)
		}
	}
}

func TestReplaceRejectsEmpty(t *testing.T) {
	svc := NewService(newFakePrefRepo())

	if err := svc.Replace(context.Background(), 1, nil); err == nil {
		t.Fatal("Replace() accepted an empty preference list")
	}
}
