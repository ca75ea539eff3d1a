package services

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"rasoi-backend/internal/metrics"
	"rasoi-backend/internal/models"
)

type stubImages struct {
	generate func(ctx context.Context, prompt string) (string, error)
	prompts  []string
}

func (s *stubImages) GenerateImage(ctx context.Context, prompt string) (string, error) {
	s.prompts = append(s.prompts, prompt)
	return s.generate(ctx, prompt)
}

type stubText struct {
	complete func(ctx context.Context, messages []models.ChatMessage) (string, error)
	calls    [][]models.ChatMessage
}

func (s *stubText) Complete(ctx context.Context, messages []models.ChatMessage) (string, error) {
	s.calls = append(s.calls, messages)
	return s.complete(ctx, messages)
}

func newTestDishService(t *testing.T, images ImageGenerator, text TextGenerator) *DishService {
	return NewDishService(images, text, zaptest.NewLogger(t), metrics.New(prometheus.NewRegistry()))
}

func TestDishService_Transform_FullSuccess(t *testing.T) {
	images := &stubImages{generate: func(ctx context.Context, prompt string) (string, error) {
		return "https://cdn.example/healthy.png", nil
	}}
	text := &stubText{complete: func(ctx context.Context, messages []models.ChatMessage) (string, error) {
		return "1. Dry roast the spices...", nil
	}}

	res, err := newTestDishService(t, images, text).Transform(context.Background(), models.DishTransformRequest{
		DishDescription:  "Butter Chicken, creamy",
		OriginalImageURL: "https://x/y.jpg",
	})

	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example/healthy.png", res.ImageURL)
	require.NotNil(t, res.Recipe)
	assert.Equal(t, "1. Dry roast the spices...", *res.Recipe)

	require.Len(t, images.prompts, 1)
	assert.Contains(t, images.prompts[0], "Butter Chicken, creamy")
	assert.Contains(t, images.prompts[0], "oil-free")

	require.Len(t, text.calls, 1)
	require.Len(t, text.calls[0], 1)
	assert.Equal(t, "user", text.calls[0][0].Role)
	assert.Contains(t, text.calls[0][0].Content, "Butter Chicken, creamy")
	assert.Contains(t, text.calls[0][0].Content, "Step-by-step cooking instructions")
}

func TestDishService_Transform_RecipeFailureIsPartialSuccess(t *testing.T) {
	images := &stubImages{generate: func(ctx context.Context, prompt string) (string, error) {
		return "https://cdn.example/healthy.png", nil
	}}
	text := &stubText{complete: func(ctx context.Context, messages []models.ChatMessage) (string, error) {
		return "", errorForStatus(http.StatusInternalServerError, errors.New("boom"))
	}}

	res, err := newTestDishService(t, images, text).Transform(context.Background(), models.DishTransformRequest{DishDescription: "Aloo Paratha"})

	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example/healthy.png", res.ImageURL)
	assert.Nil(t, res.Recipe)
}

func TestDishService_Transform_ImageFailureSkipsRecipe(t *testing.T) {
	images := &stubImages{generate: func(ctx context.Context, prompt string) (string, error) {
		return "", errorForStatus(http.StatusTooManyRequests, nil)
	}}
	text := &stubText{complete: func(ctx context.Context, messages []models.ChatMessage) (string, error) {
		t.Fatal("recipe must not be generated when the image failed")
		return "", nil
	}}

	res, err := newTestDishService(t, images, text).Transform(context.Background(), models.DishTransformRequest{DishDescription: "Samosa"})

	assert.Nil(t, res)
	gerr, ok := AsGatewayError(err)
	require.True(t, ok)
	assert.Equal(t, ErrKindRateLimited, gerr.Kind)
}

func TestDishService_Transform_TrimsDescription(t *testing.T) {
	images := &stubImages{generate: func(ctx context.Context, prompt string) (string, error) {
		return "u", nil
	}}
	text := &stubText{complete: func(ctx context.Context, messages []models.ChatMessage) (string, error) {
		return "r", nil
	}}

	_, err := newTestDishService(t, images, text).Transform(context.Background(), models.DishTransformRequest{DishDescription: "  Dhokla \n"})

	require.NoError(t, err)
	assert.True(t, strings.Contains(images.prompts[0], "Indian dish: Dhokla."))
}

// End to end through the real gateway client against a fake upstream.
func TestDishService_Transform_ThroughGateway(t *testing.T) {
	fg := newFakeGateway(t, imageOK("https://mock/healthy-butter-chicken.png"), textOK("Mocked oil-free butter chicken recipe"))
	client := fg.client(t, "secret")

	res, err := newTestDishService(t, client, client).Transform(context.Background(), models.DishTransformRequest{
		DishDescription:  "Butter Chicken, creamy",
		OriginalImageURL: "https://x/y.jpg",
	})

	require.NoError(t, err)
	assert.Equal(t, "https://mock/healthy-butter-chicken.png", res.ImageURL)
	require.NotNil(t, res.Recipe)
	assert.Equal(t, "Mocked oil-free butter chicken recipe", *res.Recipe)
	assert.EqualValues(t, 1, fg.imageCalls.Load())
	assert.EqualValues(t, 1, fg.textCalls.Load())
}

func TestDishService_Transform_ThroughGateway_RecipeUpstreamDown(t *testing.T) {
	fg := newFakeGateway(t, imageOK("https://mock/img.png"), status(http.StatusServiceUnavailable))
	client := fg.client(t, "secret")

	res, err := newTestDishService(t, client, client).Transform(context.Background(), models.DishTransformRequest{DishDescription: "Chole"})

	require.NoError(t, err)
	assert.Equal(t, "https://mock/img.png", res.ImageURL)
	assert.Nil(t, res.Recipe)
}

func TestChatService_Reply_ForwardsHistoryThenMessage(t *testing.T) {
	text := &stubText{complete: func(ctx context.Context, messages []models.ChatMessage) (string, error) {
		return "Use a non-stick pan, beta.", nil
	}}

	reply, err := NewChatService(text).Reply(context.Background(), models.ChatRequest{
		Message: "How do I make it without oil?",
		History: []models.ChatMessage{
			{Role: "user", Content: "I want to cook poha"},
			{Role: "assistant", Content: "Wonderful choice!"},
			{Role: "system", Content: "ignored role becomes user"},
			{Role: "user", Content: "   "},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, "Use a non-stick pan, beta.", reply)
	require.Len(t, text.calls, 1)
	assert.Equal(t, []models.ChatMessage{
		{Role: "user", Content: "I want to cook poha"},
		{Role: "assistant", Content: "Wonderful choice!"},
		{Role: "user", Content: "ignored role becomes user"},
		{Role: "user", Content: "How do I make it without oil?"},
	}, text.calls[0])
}

func TestChatService_Reply_PropagatesError(t *testing.T) {
	text := &stubText{complete: func(ctx context.Context, messages []models.ChatMessage) (string, error) {
		return "", ErrNotConfigured
	}}

	_, err := NewChatService(text).Reply(context.Background(), models.ChatRequest{Message: "hi"})

	assert.ErrorIs(t, err, ErrNotConfigured)
}
