package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"rasoi-backend/internal/middleware"
	"rasoi-backend/internal/settings"
)

type SettingsHandler struct {
	store settings.Store
	log   *zap.Logger
}

func NewSettingsHandler(store settings.Store, log *zap.Logger) *SettingsHandler {
	return &SettingsHandler{store: store, log: log}
}

func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	s, err := h.store.Load(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		h.log.Error("failed to load settings", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to load settings", r))
		return
	}
	writeJSON(w, http.StatusOK, s)
}

// Update replaces the caller's settings. Omitted fields keep their current
// values.
func (h *SettingsHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	s, err := h.store.Load(r.Context(), userID)
	if err != nil {
		h.log.Error("failed to load settings", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to load settings", r))
		return
	}

	if err := json.NewDecoder(r.Body).Decode(&s); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}
	if err := s.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", err.Error(), r))
		return
	}

	if err := h.store.Save(r.Context(), userID, s); err != nil {
		h.log.Error("failed to save settings", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to save settings", r))
		return
	}
	writeJSON(w, http.StatusOK, s)
}

func (h *SettingsHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	s, err := h.store.Load(r.Context(), userID)
	if err != nil {
		h.log.Error("failed to load settings", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to load settings", r))
		return
	}

	if err := s.Toggle(chi.URLParam(r, "feature")); err != nil {
		writeJSON(w, http.StatusNotFound, errorResp("NOT_FOUND", err.Error(), r))
		return
	}

	if err := h.store.Save(r.Context(), userID, s); err != nil {
		h.log.Error("failed to save settings", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to save settings", r))
		return
	}
	writeJSON(w, http.StatusOK, s)
}
