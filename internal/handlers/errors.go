package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"go.uber.org/zap"

	"screenguess/internal/service"
	"screenguess/internal/validation"
)

type errorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func respondWithError(w http.ResponseWriter, logger *zap.Logger, status int, userMsg, logMsg string, err error) {
	if err != nil {
		if logMsg == "" {
			logMsg = userMsg
		}
		logger.Error(logMsg, zap.Int("status", status), zap.Error(err))
	}

	respondJSON(w, status, errorResponse{Error: userMsg})
}

// respondWithServiceError maps service-layer errors onto HTTP statuses
func respondWithServiceError(w http.ResponseWriter, logger *zap.Logger, err error) {
	var verr validation.ValidationError
	switch {
	case errors.As(err, &verr):
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: verr.Message, Field: verr.Field})
	case errors.Is(err, service.ErrInvalidLifeline), errors.Is(err, service.ErrUnknownShopItem):
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.Is(err, service.ErrShareNotFound):
		respondJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	case errors.Is(err, service.ErrEmailDisabled):
		respondJSON(w, http.StatusNotImplemented, errorResponse{Error: err.Error()})
	case errors.Is(err, service.ErrCatalogEmpty):
		respondWithError(w, logger, http.StatusServiceUnavailable, "No games are available yet", "", err)
	default:
		respondWithError(w, logger, http.StatusInternalServerError, ErrInternalServerError, "", err)
	}
}

// decodeJSON reads a size-limited JSON body into dst. An empty body leaves dst untouched.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return true
		}
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: ErrInvalidRequestBody})
		return false
	}
	return true
}
