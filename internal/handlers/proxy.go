package handlers

import (
	"context"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"rasoi-backend/internal/models"
	"rasoi-backend/internal/services"
)

type dishTransformer interface {
	Transform(ctx context.Context, req models.DishTransformRequest) (*models.DishTransformResult, error)
}

type chatReplier interface {
	Reply(ctx context.Context, req models.ChatRequest) (string, error)
}

// ProxyHandler serves the two browser-facing AI functions. Both answer with
// a flat {"error": "..."} body on failure.
type ProxyHandler struct {
	dishes dishTransformer
	chat   chatReplier
	log    *zap.Logger
}

func NewProxyHandler(dishes dishTransformer, chat chatReplier, log *zap.Logger) *ProxyHandler {
	return &ProxyHandler{dishes: dishes, chat: chat, log: log}
}

func (h *ProxyHandler) GenerateHealthyDish(w http.ResponseWriter, r *http.Request) {
	var req models.DishTransformRequest
	if err := decodeAndValidate(r, &req); err != nil {
		h.writeError(w, r, "generate-healthy-dish", err)
		return
	}

	res, err := h.dishes.Transform(r.Context(), req)
	if err != nil {
		h.writeError(w, r, "generate-healthy-dish", err)
		return
	}

	writeJSON(w, http.StatusOK, res)
}

func (h *ProxyHandler) ChatRecipe(w http.ResponseWriter, r *http.Request) {
	var req models.ChatRequest
	if err := decodeAndValidate(r, &req); err != nil {
		h.writeError(w, r, "chat-recipe", err)
		return
	}

	reply, err := h.chat.Reply(r.Context(), req)
	if err != nil {
		h.writeError(w, r, "chat-recipe", chatError(err))
		return
	}

	writeJSON(w, http.StatusOK, models.ChatResponse{Reply: reply})
}

// Preflight answers CORS preflight requests when CORS middleware is not in
// front of the route.
func (h *ProxyHandler) Preflight(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func (h *ProxyHandler) writeError(w http.ResponseWriter, r *http.Request, function string, err error) {
	var verr *services.ValidationError
	if errors.As(err, &verr) {
		writeProxyError(w, http.StatusBadRequest, firstFieldMessage(verr))
		return
	}

	if gerr, ok := services.AsGatewayError(err); ok {
		h.log.Error("AI function failed",
			zap.String("function", function),
			zap.String("kind", gerr.Kind.String()),
			zap.Int("upstream_status", gerr.StatusCode),
			zap.Error(err),
		)
		writeProxyError(w, gerr.HTTPStatus(), gerr.Message)
		return
	}

	h.log.Error("AI function failed", zap.String("function", function), zap.Error(err))
	writeProxyError(w, http.StatusInternalServerError, "Unknown error")
}

// chatError collapses every chat failure except a missing API key into the
// generic gateway error. Unlike the dish transform, chat does not pass upstream
// 429/402 through.
func chatError(err error) error {
	gerr, ok := services.AsGatewayError(err)
	if ok && gerr.Kind == services.ErrKindConfig {
		return err
	}
	generic := &services.GatewayError{Kind: services.ErrKindUpstream, Message: services.MsgGatewayError, Err: err}
	if ok {
		generic.StatusCode = gerr.StatusCode
	}
	return generic
}
