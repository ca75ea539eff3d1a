package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"rasoi-backend/internal/metrics"
	"rasoi-backend/internal/models"
)

// TextGenerator produces a single text completion for a conversation whose
// last message is the user's turn.
type TextGenerator interface {
	Complete(ctx context.Context, messages []models.ChatMessage) (string, error)
}

// ImageGenerator synthesizes an image from a prompt and returns its URL.
type ImageGenerator interface {
	GenerateImage(ctx context.Context, prompt string) (string, error)
}

type GatewayConfig struct {
	BaseURL    string
	APIKey     string
	ImageModel string
	TextModel  string
	Timeout    time.Duration
}

// GatewayClient talks to the OpenAI-compatible AI gateway. Text completions go
// through go-openai; image synthesis needs the gateway's "modalities" request
// field and "images" response field, so it is sent as a plain JSON request.
type GatewayClient struct {
	cfg     GatewayConfig
	hc      *http.Client
	api     *openai.Client
	log     *zap.Logger
	metrics *metrics.Metrics
}

func NewGatewayClient(cfg GatewayConfig, log *zap.Logger, m *metrics.Metrics) *GatewayClient {
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	hc := &http.Client{Timeout: cfg.Timeout}

	c := &GatewayClient{
		cfg:     cfg,
		hc:      hc,
		log:     log,
		metrics: m,
	}

	if cfg.APIKey != "" {
		oc := openai.DefaultConfig(cfg.APIKey)
		oc.BaseURL = cfg.BaseURL
		oc.HTTPClient = hc
		c.api = openai.NewClientWithConfig(oc)
	}

	return c
}

type imageCompletionRequest struct {
	Model      string               `json:"model"`
	Messages   []models.ChatMessage `json:"messages"`
	Modalities []string             `json:"modalities"`
}

type imageCompletionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
			Images  []struct {
				Type     string `json:"type"`
				ImageURL struct {
					URL string `json:"url"`
				} `json:"image_url"`
			} `json:"images"`
		} `json:"message"`
	} `json:"choices"`
}

func (r *imageCompletionResponse) firstImageURL() string {
	if len(r.Choices) == 0 || len(r.Choices[0].Message.Images) == 0 {
		return ""
	}
	return r.Choices[0].Message.Images[0].ImageURL.URL
}

// GenerateImage asks the image model for a picture and returns the first image
// URL of the first choice.
func (c *GatewayClient) GenerateImage(ctx context.Context, prompt string) (url string, err error) {
	if c.cfg.APIKey == "" {
		return "", ErrNotConfigured
	}

	start := time.Now()
	defer func() { c.record("image", start, err) }()

	body, err := json.Marshal(imageCompletionRequest{
		Model:      c.cfg.ImageModel,
		Messages:   []models.ChatMessage{{Role: openai.ChatMessageRoleUser, Content: prompt}},
		Modalities: []string{"image", "text"},
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode image request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build image request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.hc.Do(req)
	if err != nil {
		c.log.Error("AI gateway unreachable", zap.String("call", "image"), zap.Error(err))
		return "", &GatewayError{Kind: ErrKindUpstream, Message: MsgGatewayError, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		c.log.Error("AI gateway error",
			zap.String("call", "image"),
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", detail),
		)
		return "", errorForStatus(resp.StatusCode, fmt.Errorf("upstream status %d", resp.StatusCode))
	}

	var out imageCompletionResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		c.log.Error("AI gateway returned malformed image response", zap.Error(err))
		return "", &GatewayError{Kind: ErrKindUpstream, StatusCode: resp.StatusCode, Message: MsgGatewayError, Err: err}
	}

	url = out.firstImageURL()
	if url == "" {
		return "", &GatewayError{Kind: ErrKindMissingOutput, StatusCode: resp.StatusCode, Message: MsgNoImage}
	}
	return url, nil
}

// Complete runs a text completion with the configured text model and returns
// the first choice's content verbatim.
func (c *GatewayClient) Complete(ctx context.Context, messages []models.ChatMessage) (reply string, err error) {
	if c.api == nil {
		return "", ErrNotConfigured
	}

	start := time.Now()
	defer func() { c.record("text", start, err) }()

	msgs := make([]openai.ChatCompletionMessage, 0, len(messages))
	for _, m := range messages {
		msgs = append(msgs, openai.ChatCompletionMessage{Role: m.Role, Content: m.Content})
	}

	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:    c.cfg.TextModel,
		Messages: msgs,
	})
	if err != nil {
		gerr := classifyOpenAIError(err)
		c.log.Error("AI gateway error",
			zap.String("call", "text"),
			zap.Int("status", gerr.StatusCode),
			zap.Error(err),
		)
		return "", gerr
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", &GatewayError{Kind: ErrKindMissingOutput, StatusCode: http.StatusOK, Message: MsgNoReply}
	}
	return resp.Choices[0].Message.Content, nil
}

func classifyOpenAIError(err error) *GatewayError {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return errorForStatus(apiErr.HTTPStatusCode, err)
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return errorForStatus(reqErr.HTTPStatusCode, err)
	}
	return &GatewayError{Kind: ErrKindUpstream, Message: MsgGatewayError, Err: err}
}

func (c *GatewayClient) record(call string, start time.Time, err error) {
	outcome := "ok"
	if err != nil {
		outcome = ErrKindUpstream.String()
		if gerr, ok := AsGatewayError(err); ok {
			outcome = gerr.Kind.String()
		}
	}
	c.metrics.RecordGatewayCall(call, outcome, time.Since(start))
}
