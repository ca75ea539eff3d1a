package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"rasoi-backend/internal/middleware"
	"rasoi-backend/internal/models"
)

type dishRepository interface {
	Create(ctx context.Context, d *models.UserDish) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.UserDish, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.UserDish, error)
	SaveResult(ctx context.Context, id uuid.UUID, status string, healthierImageURL, recipe *string) error
}

// DishHandler manages a signed-in user's submitted dishes and runs the
// healthy transform on them.
type DishHandler struct {
	dishRepo dishRepository
	dishes   dishTransformer
	log      *zap.Logger
}

func NewDishHandler(dishRepo dishRepository, dishes dishTransformer, log *zap.Logger) *DishHandler {
	return &DishHandler{dishRepo: dishRepo, dishes: dishes, log: log}
}

func (h *DishHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateDishRequest
	if err := decodeAndValidate(r, &req); err != nil {
		handleServiceError(w, r, err)
		return
	}

	dish := &models.UserDish{
		UserID:           middleware.GetUserID(r.Context()),
		Title:            strings.TrimSpace(req.Title),
		Description:      strings.TrimSpace(req.Description),
		OriginalImageURL: req.OriginalImageURL,
	}
	if err := h.dishRepo.Create(r.Context(), dish); err != nil {
		h.log.Error("failed to create dish", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to save dish", r))
		return
	}

	writeJSON(w, http.StatusCreated, dish)
}

func (h *DishHandler) List(w http.ResponseWriter, r *http.Request) {
	dishes, err := h.dishRepo.ListByUser(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		h.log.Error("failed to list dishes", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to load dishes", r))
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"dishes": dishes})
}

func (h *DishHandler) Transform(w http.ResponseWriter, r *http.Request) {
	dishID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid dish ID", r))
		return
	}

	dish, err := h.dishRepo.GetByID(r.Context(), dishID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, errorResp("NOT_FOUND", "Dish not found", r))
			return
		}
		h.log.Error("failed to load dish", zap.String("dish_id", dishID.String()), zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to load dish", r))
		return
	}

	if dish.UserID != middleware.GetUserID(r.Context()) {
		writeJSON(w, http.StatusForbidden, errorResp("FORBIDDEN", "Access denied", r))
		return
	}

	res, err := h.dishes.Transform(r.Context(), models.DishTransformRequest{
		DishDescription:  dishPrompt(dish),
		OriginalImageURL: dish.OriginalImageURL,
	})

	// The result write must land even if the caller hung up during the
	// upstream calls, or the dish stays pending.
	saveCtx := context.WithoutCancel(r.Context())
	if err != nil {
		if saveErr := h.dishRepo.SaveResult(saveCtx, dish.ID, models.DishStatusFailed, nil, nil); saveErr != nil {
			h.log.Error("failed to mark dish failed", zap.String("dish_id", dish.ID.String()), zap.Error(saveErr))
		}
		h.log.Error("dish transform failed", zap.String("dish_id", dish.ID.String()), zap.Error(err))
		handleServiceError(w, r, err)
		return
	}

	imageURL := res.ImageURL
	if err := h.dishRepo.SaveResult(saveCtx, dish.ID, models.DishStatusCompleted, &imageURL, res.Recipe); err != nil {
		h.log.Error("failed to save dish result", zap.String("dish_id", dish.ID.String()), zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to save result", r))
		return
	}

	dish.Status = models.DishStatusCompleted
	dish.HealthierImageURL = &imageURL
	dish.Recipe = res.Recipe
	writeJSON(w, http.StatusOK, dish)
}

// dishPrompt describes a stored dish the way a user would type it into the
// transform form.
func dishPrompt(d *models.UserDish) string {
	if d.Description == "" {
		return d.Title
	}
	return d.Title + ", " + d.Description
}
