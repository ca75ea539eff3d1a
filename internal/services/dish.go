package services

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"rasoi-backend/internal/metrics"
	"rasoi-backend/internal/models"
)

// DishService turns a dish description into a healthier image and, best
// effort, a matching recipe.
type DishService struct {
	images  ImageGenerator
	text    TextGenerator
	log     *zap.Logger
	metrics *metrics.Metrics
}

func NewDishService(images ImageGenerator, text TextGenerator, log *zap.Logger, m *metrics.Metrics) *DishService {
	return &DishService{
		images:  images,
		text:    text,
		log:     log,
		metrics: m,
	}
}

// Transform runs the two generation steps in order. An image failure fails
// the call. A recipe failure is logged and yields a result with a nil Recipe.
func (s *DishService) Transform(ctx context.Context, req models.DishTransformRequest) (*models.DishTransformResult, error) {
	description := strings.TrimSpace(req.DishDescription)

	imageURL, err := s.images.GenerateImage(ctx, buildHealthyImagePrompt(description))
	if err != nil {
		s.metrics.RecordDishTransform("failed")
		return nil, err
	}

	result := &models.DishTransformResult{ImageURL: imageURL}

	recipe, err := s.text.Complete(ctx, []models.ChatMessage{
		{Role: "user", Content: buildHealthyRecipePrompt(description)},
	})
	if err != nil {
		s.log.Warn("Failed to generate recipe, returning image only",
			zap.String("image_url", imageURL),
			zap.Error(err),
		)
		s.metrics.RecordDishTransform("partial")
		return result, nil
	}

	result.Recipe = &recipe
	s.metrics.RecordDishTransform("full")
	return result, nil
}
