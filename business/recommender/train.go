package recommender

import (
	"context"
	"fmt"

	"adventura/pkg/logger"
)

// Train retrains the model from the current interaction data and
// publishes it. Training is never incremental: matrix, index map and
// factors are rebuilt from scratch on every call. On success the pending
// interaction counter resets and the cache is invalidated, so stale
// rankings cannot outlive the model they were computed with.
func (s *Service) Train(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	start := s.now()

	interactions, err := s.ratedInteractions(ctx)
	if err != nil {
		return err
	}

	matrix, err := buildInteractionMatrix(interactions)
	if err != nil {
		return err
	}

	userFactors, itemFactors := fitALS(matrix, s.cfg)

	model := &FactorModel{
		FormatVersion: ModelFormatVersion,
		Factors:       s.cfg.LatentFactors,
		TrainedAt:     s.now(),
		UserFactors:   userFactors,
		ItemFactors:   itemFactors,
		Matrix:        matrix,
	}

	if err := s.modelStore.Save(ctx, model); err != nil {
		return fmt.Errorf("persist model: %w", err)
	}

	// Swap the model and drop cached rankings in one critical section so
	// readers never pair the new model with pre-retrain cache entries.
	s.mu.Lock()
	s.model = model
	s.lastTrained = model.TrainedAt
	cacheErr := s.cache.InvalidateAll(ctx)
	s.mu.Unlock()

	s.pendingInteractions.Store(0)

	if cacheErr != nil {
		logger.Warn("cache_invalidation_failed", "error", cacheErr)
	}

	elapsed := s.now().Sub(start)
	ModelTrainDuration.Observe(elapsed.Seconds())
	logger.Info("model_retrained",
		"users", matrix.NumUsers(),
		"activities", matrix.NumActivities(),
		"factors", model.Factors,
		"duration_ms", elapsed.Milliseconds(),
	)

	return nil
}
