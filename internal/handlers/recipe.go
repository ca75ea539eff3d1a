package handlers

import (
	"context"
	"net/http"
	"slices"

	"go.uber.org/zap"

	"rasoi-backend/internal/models"
)

type recipeRepository interface {
	List(ctx context.Context, region string) ([]*models.Recipe, error)
}

type RecipeHandler struct {
	recipeRepo recipeRepository
	log        *zap.Logger
}

func NewRecipeHandler(recipeRepo recipeRepository, log *zap.Logger) *RecipeHandler {
	return &RecipeHandler{recipeRepo: recipeRepo, log: log}
}

func (h *RecipeHandler) List(w http.ResponseWriter, r *http.Request) {
	region := r.URL.Query().Get("region")
	if region != "" && !slices.Contains(models.Regions, region) {
		writeJSON(w, http.StatusBadRequest, errorRespWithFields("VALIDATION_ERROR", "Unknown region",
			map[string]string{"region": "must be one of the listed regions"}, r))
		return
	}

	recipes, err := h.recipeRepo.List(r.Context(), region)
	if err != nil {
		h.log.Error("failed to list recipes", zap.String("region", region), zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to load recipes", r))
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"recipes": recipes,
		"regions": models.Regions,
	})
}
