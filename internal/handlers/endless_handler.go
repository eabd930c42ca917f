package handlers

import (
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"screenguess/internal/endless"
	"screenguess/internal/models"
	"screenguess/internal/service"
)

// EndlessHandler serves Endless Mode actions for the calling player
type EndlessHandler struct {
	endless *service.EndlessService
	logger  *zap.Logger
}

// NewEndlessHandler creates a new endless handler
func NewEndlessHandler(endlessService *service.EndlessService, logger *zap.Logger) *EndlessHandler {
	return &EndlessHandler{endless: endlessService, logger: logger}
}

type guessRequest struct {
	GameID int64  `json:"gameId"`
	Name   string `json:"name"`
	Fatal  bool   `json:"fatal"`
}

type bonusRequest struct {
	GameID int64 `json:"gameId"`
}

// player pulls the caller out of the context; the Player middleware always sets it
func (h *EndlessHandler) player(w http.ResponseWriter, r *http.Request) (models.Player, bool) {
	player, ok := GetPlayerFromContext(r.Context())
	if !ok {
		respondJSON(w, http.StatusUnauthorized, errorResponse{Error: ErrUnauthorized})
	}
	return player, ok
}

// State handles GET /api/endless/state
func (h *EndlessHandler) State(w http.ResponseWriter, r *http.Request) {
	player, ok := h.player(w, r)
	if !ok {
		return
	}
	run, err := h.endless.State(r.Context(), player)
	if err != nil {
		respondWithServiceError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, run)
}

// Guess handles POST /api/endless/guess
func (h *EndlessHandler) Guess(w http.ResponseWriter, r *http.Request) {
	player, ok := h.player(w, r)
	if !ok {
		return
	}
	var req guessRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	out, err := h.endless.Guess(r.Context(), player, endless.Guess{GameID: req.GameID, Name: req.Name}, req.Fatal)
	if err != nil {
		respondWithServiceError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, out)
}

// Skip handles POST /api/endless/skip
func (h *EndlessHandler) Skip(w http.ResponseWriter, r *http.Request) {
	player, ok := h.player(w, r)
	if !ok {
		return
	}
	out, err := h.endless.Skip(r.Context(), player)
	if err != nil {
		respondWithServiceError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, out)
}

// UseLifeline handles POST /api/endless/lifelines/{type}
func (h *EndlessHandler) UseLifeline(w http.ResponseWriter, r *http.Request) {
	player, ok := h.player(w, r)
	if !ok {
		return
	}
	out, err := h.endless.UseLifeline(r.Context(), player, models.LifelineType(r.PathValue("type")))
	if err != nil {
		respondWithServiceError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, out)
}

// Shop handles GET /api/endless/shop, opening the visit when the streak allows
func (h *EndlessHandler) Shop(w http.ResponseWriter, r *http.Request) {
	player, ok := h.player(w, r)
	if !ok {
		return
	}
	out, err := h.endless.OpenShop(r.Context(), player)
	if err != nil {
		respondWithServiceError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, out)
}

// BuyShopItem handles POST /api/endless/shop/items/{id}
func (h *EndlessHandler) BuyShopItem(w http.ResponseWriter, r *http.Request) {
	player, ok := h.player(w, r)
	if !ok {
		return
	}
	out, err := h.endless.BuyShopItem(r.Context(), player, r.PathValue("id"))
	if err != nil {
		respondWithServiceError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, out)
}

// CloseShop handles POST /api/endless/shop/close
func (h *EndlessHandler) CloseShop(w http.ResponseWriter, r *http.Request) {
	player, ok := h.player(w, r)
	if !ok {
		return
	}
	run, err := h.endless.CloseShop(r.Context(), player)
	if err != nil {
		respondWithServiceError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, run)
}

// Next handles POST /api/endless/next
func (h *EndlessHandler) Next(w http.ResponseWriter, r *http.Request) {
	player, ok := h.player(w, r)
	if !ok {
		return
	}
	out, err := h.endless.Next(r.Context(), player)
	if err != nil {
		respondWithServiceError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, out)
}

// Bonus handles POST /api/endless/bonus
func (h *EndlessHandler) Bonus(w http.ResponseWriter, r *http.Request) {
	player, ok := h.player(w, r)
	if !ok {
		return
	}
	var req bonusRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	out, err := h.endless.Bonus(r.Context(), player, req.GameID)
	if err != nil {
		respondWithServiceError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, out)
}

// Leaderboard handles GET /api/leaderboard?limit=N
func (h *EndlessHandler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	limit := defaultLeaderboard
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			respondJSON(w, http.StatusBadRequest, errorResponse{Error: "limit must be a positive number", Field: "limit"})
			return
		}
		limit = min(n, maxLeaderboard)
	}

	entries, err := h.endless.Leaderboard(r.Context(), limit)
	if err != nil {
		respondWithServiceError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"entries": entries})
}
