package rest

import (
	"context"
	"net/http"
	"time"

	"adventura/business/preference"
	"adventura/domain"
	"adventura/pkg/logger"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type (
	PreferenceHandler struct {
		validate          *validator.Validate
		preferenceService PreferenceService
	}

	PreferenceService interface {
		Replace(ctx context.Context, userID uint, inputs []preference.PreferenceInput) error
		List(ctx context.Context, userID uint) ([]domain.UserPreference, error)
	}

	PreferenceEntry struct {
		CategoryID      uint64  `json:"category_id" validate:"required"`
		PreferenceLevel float64 `json:"preference_level" validate:"required,gte=1,lte=5"`
	}

	ReplacePreferencesRequest struct {
		Preferences []PreferenceEntry `json:"preferences" validate:"required,min=1,dive"`
	}
)

func NewPreferenceHandler(svc PreferenceService) *PreferenceHandler {
	return &PreferenceHandler{
		validate:          validator.New(),
		preferenceService: svc,
	}
}

// PUT /api/v1/preferences
func (h *PreferenceHandler) Replace(c echo.Context) error {
	userID, ok := c.Get("user_id").(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	var req ReplacePreferencesRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validate.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	inputs := make([]preference.PreferenceInput, 0, len(req.Preferences))
	for _, entry := range req.Preferences {
		inputs = append(inputs, preference.PreferenceInput{
			CategoryID:      entry.CategoryID,
			PreferenceLevel: entry.PreferenceLevel,
		})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	if err := h.preferenceService.Replace(ctx, userID, inputs); err != nil {
		logger.Error("Failed to replace preferences", "user_id", userID, "error", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: "failed to save preferences"})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK("preferences updated"))
}

// GET /api/v1/preferences
func (h *PreferenceHandler) List(c echo.Context) error {
	userID, ok := c.Get("user_id").(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	prefs, err := h.preferenceService.List(ctx, userID)
	if err != nil {
		logger.Error("Failed to list preferences", "user_id", userID, "error", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: "failed to load preferences"})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(prefs))
}
