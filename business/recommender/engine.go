package recommender

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"adventura/domain"
	"adventura/pkg/logger"
)

// ---- Repository interfaces ----

type PreferenceRepository interface {
	FetchPreferences(ctx context.Context, userID uint) ([]domain.UserPreference, error)
}

type InteractionRepository interface {
	FetchInteractions(ctx context.Context) ([]domain.ActivityInteraction, error)
}

type ActivityRepository interface {
	FetchActivities(ctx context.Context) ([]domain.Activity, error)
}

// ModelStore persists the trained model. LoadLatest returns (nil, nil)
// when no model has been stored yet.
type ModelStore interface {
	Save(ctx context.Context, model *FactorModel) error
	LoadLatest(ctx context.Context) (*FactorModel, error)
}

// RecommendationCache memoizes merged rankings per user. Get reports a
// miss with ok=false; InvalidateAll drops every entry.
type RecommendationCache interface {
	Get(ctx context.Context, userID uint) ([]domain.RecommendedItem, bool, error)
	Put(ctx context.Context, userID uint, items []domain.RecommendedItem) error
	InvalidateAll(ctx context.Context) error
}

// ---- Service ----

// Service is the hybrid recommendation engine. The model pointer and the
// cache are the only state shared with the retrain scheduler; both are
// swapped, never mutated in place.
type Service struct {
	prefRepo     PreferenceRepository
	interRepo    InteractionRepository
	activityRepo ActivityRepository
	modelStore   ModelStore
	cache        RecommendationCache
	cfg          Config

	now func() time.Time

	mu          sync.RWMutex
	model       *FactorModel
	lastTrained time.Time

	// Incremented by the ingestion path, reset by a successful train.
	pendingInteractions atomic.Int64
}

func NewService(
	prefRepo PreferenceRepository,
	interRepo InteractionRepository,
	activityRepo ActivityRepository,
	modelStore ModelStore,
	cache RecommendationCache,
	cfg Config,
) *Service {
	return &Service{
		prefRepo:     prefRepo,
		interRepo:    interRepo,
		activityRepo: activityRepo,
		modelStore:   modelStore,
		cache:        cache,
		cfg:          cfg,
		now:          time.Now,
	}
}

// GetRecommendations returns the top-N ranked activities for a user. It
// never fails for a user without data; internal fetch or training
// problems degrade to an empty or partial ranking.
func (s *Service) GetRecommendations(ctx context.Context, userID uint) ([]domain.RecommendedItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	tid := TraceIDFromContext(ctx)

	if items, ok, err := s.cache.Get(ctx, userID); err != nil {
		logger.Warn("recommendation_cache_get_failed", "trace_id", tid, "user_id", userID, "error", err)
	} else if ok {
		CacheLookupsTotal.WithLabelValues("hit").Inc()
		return items, nil
	}
	CacheLookupsTotal.WithLabelValues("miss").Inc()

	model := s.ensureModel(ctx)

	cbf := s.contentBasedScores(ctx, userID)
	cf := s.collaborativeScores(userID, model)

	merged := mergeRanked(cbf, cf, s.cfg)

	logger.Debug("hybrid_recommend",
		"trace_id", tid,
		"user_id", userID,
		"cbf_count", len(cbf),
		"cf_count", len(cf),
		"merged_count", len(merged),
	)

	if err := s.cache.Put(ctx, userID, merged); err != nil {
		logger.Warn("recommendation_cache_put_failed", "trace_id", tid, "user_id", userID, "error", err)
	}

	return merged, nil
}

// NoteInteraction records that a new interaction was ingested; the
// scheduler reads the counter to decide when to retrain.
func (s *Service) NoteInteraction() {
	s.pendingInteractions.Add(1)
}

func (s *Service) PendingInteractions() int64 {
	return s.pendingInteractions.Load()
}

func (s *Service) LastTrainedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastTrained
}

func (s *Service) currentModel() *FactorModel {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.model
}

// ensureModel returns the served model, loading the persisted one on cold
// start and retraining synchronously when nothing usable is stored. A nil
// return means there is no collaborative signal yet.
func (s *Service) ensureModel(ctx context.Context) *FactorModel {
	if m := s.currentModel(); m != nil {
		return m
	}

	if m := s.resumeFromStore(ctx); m != nil {
		return m
	}

	// Missing or corrupt model: recover by training now instead of
	// failing the query.
	if err := s.Train(ctx); err != nil {
		if !errors.Is(err, ErrEmptyInteractionSet) {
			logger.Error("cold_start_train_failed", "error", err)
		}
		return nil
	}
	ModelRetrainsTotal.WithLabelValues("cold_start").Inc()

	return s.currentModel()
}

// resumeFromStore installs the persisted model after a process restart,
// so both serving and the retrain guard pick up where the previous
// process left off. Returns nil when nothing usable is stored.
func (s *Service) resumeFromStore(ctx context.Context) *FactorModel {
	stored, err := s.modelStore.LoadLatest(ctx)
	if err != nil {
		logger.Warn("model_load_failed", "error", err)
		return nil
	}
	if stored == nil || stored.IsEmpty() || stored.FormatVersion != ModelFormatVersion {
		return nil
	}

	s.mu.Lock()
	// Another caller may have installed a model meanwhile.
	if s.model == nil {
		s.model = stored
		s.lastTrained = stored.TrainedAt
	}
	m := s.model
	s.mu.Unlock()
	return m
}
