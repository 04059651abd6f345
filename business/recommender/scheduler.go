package recommender

import (
	"context"
	"errors"
	"time"

	"adventura/pkg/logger"
)

type SchedulerConfig struct {
	// PollInterval is how often the loop re-evaluates the triggers.
	PollInterval time.Duration
	// RetrainInterval fires a retrain once this much time passed since
	// the last successful train.
	RetrainInterval time.Duration
	// MinRetrainInterval suppresses a fire when the last successful train
	// is more recent than this, so near-simultaneous triggers cannot
	// thrash the trainer.
	MinRetrainInterval time.Duration
	// InteractionThreshold fires a retrain once this many interactions
	// accumulated since the last train.
	InteractionThreshold int64
}

func DefaultSchedulerConfig() SchedulerConfig {
	return SchedulerConfig{
		PollInterval:         60 * time.Second,
		RetrainInterval:      3 * time.Hour,
		MinRetrainInterval:   5 * time.Minute,
		InteractionThreshold: 50,
	}
}

// RetrainScheduler is the single background loop that keeps the served
// model fresh. A failed retrain attempt is logged and the loop keeps
// polling.
type RetrainScheduler struct {
	svc *Service
	cfg SchedulerConfig
	now func() time.Time
}

func NewRetrainScheduler(svc *Service, cfg SchedulerConfig) *RetrainScheduler {
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = DefaultSchedulerConfig().PollInterval
	}
	return &RetrainScheduler{
		svc: svc,
		cfg: cfg,
		now: time.Now,
	}
}

// Run blocks until ctx is cancelled. Start it as a goroutine during
// service initialization.
func (sch *RetrainScheduler) Run(ctx context.Context) {
	ticker := time.NewTicker(sch.cfg.PollInterval)
	defer ticker.Stop()

	logger.Info("retrain_scheduler_started",
		"poll_interval", sch.cfg.PollInterval.String(),
		"retrain_interval", sch.cfg.RetrainInterval.String(),
		"interaction_threshold", sch.cfg.InteractionThreshold,
	)

	for {
		select {
		case <-ctx.Done():
			logger.Info("retrain_scheduler_stopped")
			return
		case <-ticker.C:
			sch.tick(ctx)
		}
	}
}

// tick evaluates the triggers once. Split out from Run so tests can drive
// it with a fake clock.
func (sch *RetrainScheduler) tick(ctx context.Context) {
	now := sch.now()
	last := sch.svc.LastTrainedAt()
	if last.IsZero() {
		// Fresh process: the previous train may be minutes old in the
		// store, and the guard must count from it.
		if m := sch.svc.resumeFromStore(ctx); m != nil {
			last = m.TrainedAt
		}
	}
	pending := sch.svc.PendingInteractions()

	intervalDue := last.IsZero() || now.Sub(last) >= sch.cfg.RetrainInterval
	thresholdDue := pending >= sch.cfg.InteractionThreshold
	if !intervalDue && !thresholdDue {
		return
	}

	if !last.IsZero() && now.Sub(last) < sch.cfg.MinRetrainInterval {
		logger.Debug("retrain_suppressed",
			"since_last_train", now.Sub(last).String(),
			"pending_interactions", pending,
		)
		return
	}

	trigger := "interval"
	if thresholdDue {
		trigger = "threshold"
	}

	if err := sch.svc.Train(ctx); err != nil {
		if errors.Is(err, ErrEmptyInteractionSet) {
			logger.Debug("retrain_skipped", "reason", "no interactions")
			return
		}
		logger.Error("retrain_failed", "trigger", trigger, "error", err)
		return
	}

	ModelRetrainsTotal.WithLabelValues(trigger).Inc()
}
