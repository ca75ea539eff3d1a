package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"go.uber.org/zap"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"rasoi-backend/internal/metrics"
	"rasoi-backend/internal/models"
)

// GeminiService is a TextGenerator backed by the Gemini API directly, for
// deployments that do not route text through the gateway.
type GeminiService struct {
	client  *genai.Client
	model   *genai.GenerativeModel
	log     *zap.Logger
	metrics *metrics.Metrics
}

func NewGeminiService(apiKey, modelName string, log *zap.Logger, m *metrics.Metrics) (*GeminiService, error) {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := client.GenerativeModel(modelName)
	model.SetTemperature(0.7)
	model.SetTopP(0.95)

	return &GeminiService{
		client:  client,
		model:   model,
		log:     log,
		metrics: m,
	}, nil
}

func (s *GeminiService) Close() {
	s.client.Close()
}

func (s *GeminiService) Complete(ctx context.Context, messages []models.ChatMessage) (reply string, err error) {
	if len(messages) == 0 {
		return "", fmt.Errorf("no messages to send")
	}

	start := time.Now()
	defer func() {
		outcome := "ok"
		if gerr, ok := AsGatewayError(err); ok {
			outcome = gerr.Kind.String()
		}
		s.metrics.RecordGatewayCall("gemini_text", outcome, time.Since(start))
	}()

	cs := s.model.StartChat()
	cs.History = toGeminiHistory(messages[:len(messages)-1])
	last := messages[len(messages)-1]

	resp, err := cs.SendMessage(ctx, genai.Text(last.Content))
	if err != nil {
		gerr := classifyGeminiError(err)
		s.log.Error("Gemini API error", zap.Int("status", gerr.StatusCode), zap.Error(err))
		return "", gerr
	}

	for i, cand := range resp.Candidates {
		if cand.FinishReason != genai.FinishReasonStop {
			s.log.Warn("Gemini stopped early",
				zap.Int("candidate", i),
				zap.String("finish_reason", cand.FinishReason.String()),
			)
		}
	}

	reply = extractText(resp)
	if reply == "" {
		return "", &GatewayError{Kind: ErrKindMissingOutput, Message: MsgNoReply}
	}
	return reply, nil
}

func toGeminiHistory(messages []models.ChatMessage) []*genai.Content {
	history := make([]*genai.Content, 0, len(messages))
	for _, m := range messages {
		role := "user"
		if m.Role == "assistant" {
			role = "model"
		}
		history = append(history, &genai.Content{
			Role:  role,
			Parts: []genai.Part{genai.Text(m.Content)},
		})
	}
	return history
}

func classifyGeminiError(err error) *GatewayError {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		return errorForStatus(apiErr.Code, err)
	}
	return &GatewayError{Kind: ErrKindUpstream, Message: MsgGatewayError, Err: err}
}

func extractText(resp *genai.GenerateContentResponse) string {
	var text strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content != nil {
			for _, part := range cand.Content.Parts {
				if t, ok := part.(genai.Text); ok {
					text.WriteString(string(t))
				}
			}
		}
	}
	return text.String()
}
