package rest

import (
	"context"
	"errors"
	"net/http"
	"time"

	"adventura/business/interaction"
	"adventura/pkg/logger"
	"adventura/pkg/metrics"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type (
	InteractionHandler struct {
		validate           *validator.Validate
		interactionService InteractionService
	}

	InteractionService interface {
		Track(ctx context.Context, in interaction.TrackInput) error
	}

	TrackInteractionRequest struct {
		ActivityID      uint64   `json:"activity_id" validate:"required"`
		InteractionType string   `json:"interaction_type" validate:"required,oneof=view like share save rate purchase"`
		Rating          *float64 `json:"rating" validate:"omitempty,gte=0,lte=5"`
	}
)

func NewInteractionHandler(svc InteractionService) *InteractionHandler {
	return &InteractionHandler{
		validate:           validator.New(),
		interactionService: svc,
	}
}

// POST /api/v1/interactions
func (h *InteractionHandler) Track(c echo.Context) error {
	userID, ok := c.Get("user_id").(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	var req TrackInteractionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validate.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	err := h.interactionService.Track(ctx, interaction.TrackInput{
		UserID:          userID,
		ActivityID:      req.ActivityID,
		InteractionType: req.InteractionType,
		Rating:          req.Rating,
	})
	if err != nil {
		if errors.Is(err, interaction.ErrActivityNotFound) {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		logger.Error("Failed to track interaction", "user_id", userID, "error", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: "failed to record interaction"})
	}

	metrics.InteractionsIngested.Inc()

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated("interaction recorded"))
}
