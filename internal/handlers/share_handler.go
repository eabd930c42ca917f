package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"screenguess/internal/service"
)

// ShareHandler saves and serves shared runs
type ShareHandler struct {
	shares *service.ShareService
	logger *zap.Logger
}

// NewShareHandler creates a new share handler
func NewShareHandler(shares *service.ShareService, logger *zap.Logger) *ShareHandler {
	return &ShareHandler{shares: shares, logger: logger}
}

type shareRequest struct {
	Email string `json:"email"`
}

// Share handles POST /api/endless/share
func (h *ShareHandler) Share(w http.ResponseWriter, r *http.Request) {
	player, ok := GetPlayerFromContext(r.Context())
	if !ok {
		respondJSON(w, http.StatusUnauthorized, errorResponse{Error: ErrUnauthorized})
		return
	}
	var req shareRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.shares.ShareRun(r.Context(), player, req.Email)
	if err != nil {
		respondWithServiceError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusCreated, result)
}

// GetShare handles GET /api/share/{id}
func (h *ShareHandler) GetShare(w http.ResponseWriter, r *http.Request) {
	run, err := h.shares.GetSharedRun(r.PathValue("id"))
	if err != nil {
		respondWithServiceError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, run)
}
