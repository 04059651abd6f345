package rest

import (
	"context"
	"net/http"
	"time"

	"adventura/domain"
	"adventura/pkg/logger"
	"adventura/pkg/metrics"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type (
	RecommendationHandler struct {
		validate        *validator.Validate
		recommender     RecommenderService
		activityService ActivityService
	}

	RecommenderService interface {
		GetRecommendations(ctx context.Context, userID uint) ([]domain.RecommendedItem, error)
	}

	ActivityService interface {
		PopularActivityIDs(ctx context.Context, limit int) ([]domain.RecommendedItem, error)
		ActivitiesByIDs(ctx context.Context, ids []uint64) ([]domain.Activity, error)
	}

	RecommendationQuery struct {
		UserID uint `query:"user_id" validate:"required,gt=0"`
	}

	RecommendationsResponse struct {
		Success         bool                     `json:"success"`
		Recommendations []domain.RecommendedItem `json:"recommendations"`
	}

	RecommendedActivitiesResponse struct {
		Success    bool              `json:"success"`
		Activities []domain.Activity `json:"activities"`
	}
)

func NewRecommendationHandler(recommender RecommenderService, activityService ActivityService) *RecommendationHandler {
	return &RecommendationHandler{
		validate:        validator.New(),
		recommender:     recommender,
		activityService: activityService,
	}
}

// GET /api/v1/recommendations?user_id=42
func (h *RecommendationHandler) Recommend(c echo.Context) error {
	start := time.Now()

	var q RecommendationQuery
	if err := c.Bind(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid user_id"})
	}
	if err := h.validate.Struct(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "missing or invalid user_id"})
	}

	ctx := c.Request().Context()

	recs, err := h.recommender.GetRecommendations(ctx, q.UserID)
	if err != nil {
		logger.Error("recommendation_query_failed", "user_id", q.UserID, "error", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: "failed to compute recommendations"})
	}

	// Popularity fallback for users the engine knows nothing about.
	if len(recs) == 0 {
		if popular, err := h.activityService.PopularActivityIDs(ctx, 10); err == nil {
			recs = popular
		}
	}
	if recs == nil {
		recs = []domain.RecommendedItem{}
	}

	metrics.RecommendRequests.Inc()
	metrics.RecommendLatency.Observe(time.Since(start).Seconds())

	return c.JSON(http.StatusOK, RecommendationsResponse{
		Success:         true,
		Recommendations: recs,
	})
}

// GET /api/v1/recommendations/activities?user_id=42
// Same ranking, joined with the full activity rows for feed rendering.
func (h *RecommendationHandler) RecommendActivities(c echo.Context) error {
	var q RecommendationQuery
	if err := c.Bind(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid user_id"})
	}
	if err := h.validate.Struct(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "missing or invalid user_id"})
	}

	ctx := c.Request().Context()

	recs, err := h.recommender.GetRecommendations(ctx, q.UserID)
	if err != nil {
		logger.Error("recommendation_query_failed", "user_id", q.UserID, "error", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: "failed to compute recommendations"})
	}

	if len(recs) == 0 {
		if popular, err := h.activityService.PopularActivityIDs(ctx, 10); err == nil {
			recs = popular
		}
	}

	ids := make([]uint64, 0, len(recs))
	for _, rec := range recs {
		ids = append(ids, rec.ID)
	}

	activities, err := h.activityService.ActivitiesByIDs(ctx, ids)
	if err != nil {
		logger.Error("recommendation_join_failed", "user_id", q.UserID, "error", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: "failed to load activities"})
	}

	return c.JSON(http.StatusOK, RecommendedActivitiesResponse{
		Success:    true,
		Activities: activities,
	})
}

// GET /api/v1/activities/popular?limit=10
func (h *RecommendationHandler) Popular(c echo.Context) error {
	limit := 10
	if raw := c.QueryParam("limit"); raw != "" {
		if err := echo.QueryParamsBinder(c).Int("limit", &limit).BindError(); err != nil || limit <= 0 {
			return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid limit"})
		}
	}

	items, err := h.activityService.PopularActivityIDs(c.Request().Context(), limit)
	if err != nil {
		logger.Error("popular_query_failed", "error", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: "failed to load popular activities"})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(items))
}
