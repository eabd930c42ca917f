package handlers

import (
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"screenguess/internal/models"
	"screenguess/internal/service"
	"screenguess/internal/validation"
)

// LevelHandler serves the standard-mode ladder
type LevelHandler struct {
	levels *service.LevelService
	logger *zap.Logger
}

// NewLevelHandler creates a new level handler
func NewLevelHandler(levels *service.LevelService, logger *zap.Logger) *LevelHandler {
	return &LevelHandler{levels: levels, logger: logger}
}

type levelsResponse struct {
	Levels   []models.Level             `json:"levels"`
	Progress map[int]models.LevelResult `json:"progress"`
}

type levelResultRequest struct {
	Status      models.HistoryStatus `json:"status"`
	GuessesUsed int                  `json:"guessesUsed"`
}

// Levels handles GET /api/levels
func (h *LevelHandler) Levels(w http.ResponseWriter, r *http.Request) {
	player, ok := GetPlayerFromContext(r.Context())
	if !ok {
		respondJSON(w, http.StatusUnauthorized, errorResponse{Error: ErrUnauthorized})
		return
	}

	progress, err := h.levels.Progress(player.ID)
	if err != nil {
		respondWithServiceError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, levelsResponse{Levels: h.levels.Levels(), Progress: progress})
}

// RecordResult handles POST /api/levels/{level}/result
func (h *LevelHandler) RecordResult(w http.ResponseWriter, r *http.Request) {
	player, ok := GetPlayerFromContext(r.Context())
	if !ok {
		respondJSON(w, http.StatusUnauthorized, errorResponse{Error: ErrUnauthorized})
		return
	}

	level, err := strconv.Atoi(r.PathValue("level"))
	if err != nil {
		respondWithServiceError(w, h.logger, validation.ValidationError{Field: "level", Message: "level must be a number"})
		return
	}
	var req levelResultRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.levels.RecordResult(player.ID, level, req.Status, req.GuessesUsed)
	if err != nil {
		respondWithServiceError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}
