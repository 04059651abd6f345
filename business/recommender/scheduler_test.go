package recommender

import (
	"context"
	"testing"
	"time"

	"adventura/domain"
)

func TestSchedulerThresholdTrigger(t *testing.T) {
	inter := &fakeInterRepo{rows: []domain.ActivityInteraction{
		{UserID: 1, ActivityID: 10, InteractionType: "purchase"},
	}}
	store := &fakeModelStore{}
	svc := newTestService(nil, inter, nil, store, nil)

	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	clock := base
	svc.now = func() time.Time { return clock }

	sch := NewRetrainScheduler(svc, DefaultSchedulerConfig())
	sch.now = func() time.Time { return clock }

	// First tick: never trained, so the interval trigger fires.
	sch.tick(context.Background())
	if store.saveCount() != 1 {
		t.Fatalf("saves = %d after first tick, want 1", store.saveCount())
	}

	// Interactions below the threshold do not fire.
	clock = clock.Add(10 * time.Minute)
	for i := int64(0); i < sch.cfg.InteractionThreshold-1; i++ {
		svc.NoteInteraction()
	}
	sch.tick(context.Background())
	if store.saveCount() != 1 {
		t.Fatalf("saves = %d below threshold, want 1", store.saveCount())
	}

	// Crossing the threshold fires and resets the counter.
	svc.NoteInteraction()
	sch.tick(context.Background())
	if store.saveCount() != 2 {
		t.Fatalf("saves = %d at threshold, want 2", store.saveCount())
	}
	if svc.PendingInteractions() != 0 {
		t.Errorf("pending = %d after retrain, want 0", svc.PendingInteractions())
	}
}

func TestSchedulerMinIntervalGuard(t *testing.T) {
	inter := &fakeInterRepo{rows: []domain.ActivityInteraction{
		{UserID: 1, ActivityID: 10, InteractionType: "purchase"},
	}}
	store := &fakeModelStore{}
	svc := newTestService(nil, inter, nil, store, nil)

	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	clock := base
	svc.now = func() time.Time { return clock }

	sch := NewRetrainScheduler(svc, DefaultSchedulerConfig())
	sch.now = func() time.Time { return clock }

	sch.tick(context.Background())
	if store.saveCount() != 1 {
		t.Fatalf("saves = %d after first tick, want 1", store.saveCount())
	}

	// A burst of interactions one minute later trips the threshold, but
	// the guard suppresses the retrain.
	clock = clock.Add(time.Minute)
	for i := int64(0); i < sch.cfg.InteractionThreshold; i++ {
		svc.NoteInteraction()
	}
	sch.tick(context.Background())
	if store.saveCount() != 1 {
		t.Fatalf("saves = %d inside guard window, want 1", store.saveCount())
	}

	// Past the guard window the pending trigger fires.
	clock = clock.Add(sch.cfg.MinRetrainInterval)
	sch.tick(context.Background())
	if store.saveCount() != 2 {
		t.Fatalf("saves = %d past guard window, want 2", store.saveCount())
	}
}

func TestSchedulerIntervalTrigger(t *testing.T) {
	inter := &fakeInterRepo{rows: []domain.ActivityInteraction{
		{UserID: 1, ActivityID: 10, InteractionType: "purchase"},
	}}
	store := &fakeModelStore{}
	svc := newTestService(nil, inter, nil, store, nil)

	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	clock := base
	svc.now = func() time.Time { return clock }

	sch := NewRetrainScheduler(svc, DefaultSchedulerConfig())
	sch.now = func() time.Time { return clock }

	sch.tick(context.Background())

	// Just short of the retrain interval nothing happens.
	clock = clock.Add(sch.cfg.RetrainInterval - time.Minute)
	sch.tick(context.Background())
	if store.saveCount() != 1 {
		t.Fatalf("saves = %d before interval, want 1", store.saveCount())
	}

	clock = clock.Add(time.Minute)
	sch.tick(context.Background())
	if store.saveCount() != 2 {
		t.Fatalf("saves = %d at interval, want 2", store.saveCount())
	}
}

func TestSchedulerHonorsPersistedTrainAfterRestart(t *testing.T) {
	inter := &fakeInterRepo{rows: []domain.ActivityInteraction{
		{UserID: 1, ActivityID: 10, InteractionType: "purchase"},
	}}
	store := &fakeModelStore{}

	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	clock := base

	// First process trains and persists at t0.
	old := newTestService(nil, inter, nil, store, nil)
	old.now = func() time.Time { return clock }
	if err := old.Train(context.Background()); err != nil {
		t.Fatalf("Train() error = %v", err)
	}
	if store.saveCount() != 1 {
		t.Fatalf("saves = %d after initial train, want 1", store.saveCount())
	}

	// The process restarts one minute later; the stored model is still
	// fresh, so the first tick must not retrain.
	clock = clock.Add(time.Minute)
	svc := newTestService(nil, inter, nil, store, nil)
	svc.now = func() time.Time { return clock }
	sch := NewRetrainScheduler(svc, DefaultSchedulerConfig())
	sch.now = func() time.Time { return clock }

	sch.tick(context.Background())
	if store.saveCount() != 1 {
		t.Fatalf("saves = %d one minute after the persisted train, want 1", store.saveCount())
	}

	// An interaction burst inside the guard window stays suppressed too.
	for i := int64(0); i < sch.cfg.InteractionThreshold; i++ {
		svc.NoteInteraction()
	}
	sch.tick(context.Background())
	if store.saveCount() != 1 {
		t.Fatalf("saves = %d inside guard window after restart, want 1", store.saveCount())
	}

	// Once the stored train ages past the interval, the tick fires.
	clock = base.Add(sch.cfg.RetrainInterval)
	sch.tick(context.Background())
	if store.saveCount() != 2 {
		t.Fatalf("saves = %d past retrain interval, want 2", store.saveCount())
	}
}

func TestSchedulerEmptyDataKeepsPolling(t *testing.T) {
	store := &fakeModelStore{}
	svc := newTestService(nil, nil, nil, store, nil)

	sch := NewRetrainScheduler(svc, DefaultSchedulerConfig())

	// No interactions: the tick must swallow the empty-set error.
	sch.tick(context.Background())
	sch.tick(context.Background())
	if store.saveCount() != 0 {
		t.Errorf("saves = %d with no data, want 0", store.saveCount())
	}
}

func TestSchedulerRunStopsOnCancel(t *testing.T) {
	svc := newTestService(nil, nil, nil, nil, nil)

	cfg := DefaultSchedulerConfig()
	cfg.PollInterval = 5 * time.Millisecond
	sch := NewRetrainScheduler(svc, cfg)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		sch.Run(ctx)
		close(done)
	}()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("scheduler did not stop after cancellation")
	}
}
