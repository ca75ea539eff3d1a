package models

import (
	"time"

	"github.com/google/uuid"
)

// DishTransformRequest is the payload of generate-healthy-dish.
type DishTransformRequest struct {
	DishDescription  string `json:"dishDescription" validate:"required,max=2000"`
	OriginalImageURL string `json:"originalImageUrl" validate:"omitempty,url"`
}

// DishTransformResult carries the generated image and, when the second
// generation step succeeded, the recipe. Recipe is nil on partial success and
// encodes as JSON null.
type DishTransformResult struct {
	ImageURL string  `json:"imageUrl"`
	Recipe   *string `json:"recipe"`
}

const (
	DishStatusPending   = "pending"
	DishStatusCompleted = "completed"
	DishStatusFailed    = "failed"
)

type UserDish struct {
	ID                uuid.UUID `json:"id"`
	UserID            uuid.UUID `json:"user_id"`
	Title             string    `json:"title"`
	Description       string    `json:"description"`
	OriginalImageURL  string    `json:"original_image_url"`
	HealthierImageURL *string   `json:"healthier_image_url"`
	Recipe            *string   `json:"recipe"`
	Status            string    `json:"status"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

type CreateDishRequest struct {
	Title            string `json:"title" validate:"required,max=200"`
	Description      string `json:"description" validate:"max=2000"`
	OriginalImageURL string `json:"original_image_url" validate:"required,url"`
}
