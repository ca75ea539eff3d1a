package services

import (
	"context"
	"strings"

	"rasoi-backend/internal/models"
)

// ChatService forwards one chat turn to the text model. It keeps no history;
// whatever the caller sends in History is passed through in order.
type ChatService struct {
	text TextGenerator
}

func NewChatService(text TextGenerator) *ChatService {
	return &ChatService{text: text}
}

func (s *ChatService) Reply(ctx context.Context, req models.ChatRequest) (string, error) {
	messages := make([]models.ChatMessage, 0, len(req.History)+1)
	for _, m := range req.History {
		if strings.TrimSpace(m.Content) == "" {
			continue
		}
		role := m.Role
		if role != "assistant" {
			role = "user"
		}
		messages = append(messages, models.ChatMessage{Role: role, Content: m.Content})
	}
	messages = append(messages, models.ChatMessage{Role: "user", Content: req.Message})

	return s.text.Complete(ctx, messages)
}
