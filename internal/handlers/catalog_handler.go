package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"screenguess/internal/service"
)

// CatalogHandler serves the game list and admin catalog imports
type CatalogHandler struct {
	catalog *service.CatalogService
	levels  *service.LevelService
	logger  *zap.Logger
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(catalog *service.CatalogService, levels *service.LevelService, logger *zap.Logger) *CatalogHandler {
	return &CatalogHandler{catalog: catalog, levels: levels, logger: logger}
}

// Games handles GET /api/games
func (h *CatalogHandler) Games(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{"games": h.catalog.Summaries()})
}

// Import handles POST /api/admin/catalog. The body is a JSON array of games.
func (h *CatalogHandler) Import(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxCatalogBodyBytes)

	imported, err := h.catalog.Import(r.Body, "admin")
	if err != nil {
		respondWithError(w, h.logger, http.StatusBadRequest, "Invalid catalog", "Catalog import failed", err)
		return
	}

	remapped, err := h.levels.SyncOrder()
	if err != nil {
		respondWithError(w, h.logger, http.StatusInternalServerError, ErrInternalServerError, "Failed to sync standard order", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]int{
		"imported":        imported,
		"playable":        len(h.catalog.Games()),
		"playersRemapped": remapped,
	})
}
