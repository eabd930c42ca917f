package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"screenguess/internal/service"
)

// Services bundles everything the HTTP API depends on
type Services struct {
	Catalog *service.CatalogService
	Endless *service.EndlessService
	Shares  *service.ShareService
	Levels  *service.LevelService
}

// NewRouter registers every API route and wraps the mux in request logging
func NewRouter(s Services, m *Middleware, logger *zap.Logger) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	catalogHandler := NewCatalogHandler(s.Catalog, s.Levels, logger)
	endlessHandler := NewEndlessHandler(s.Endless, logger)
	shareHandler := NewShareHandler(s.Shares, logger)
	levelHandler := NewLevelHandler(s.Levels, logger)

	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	mux.HandleFunc("GET /api/games", catalogHandler.Games)
	mux.HandleFunc("GET /api/leaderboard", endlessHandler.Leaderboard)
	mux.HandleFunc("GET /api/share/{id}", shareHandler.GetShare)

	// Endless Mode
	mux.HandleFunc("GET /api/endless/state", m.Player(endlessHandler.State))
	mux.HandleFunc("POST /api/endless/guess", m.RateLimit(m.Player(endlessHandler.Guess)))
	mux.HandleFunc("POST /api/endless/skip", m.RateLimit(m.Player(endlessHandler.Skip)))
	mux.HandleFunc("POST /api/endless/lifelines/{type}", m.RateLimit(m.Player(endlessHandler.UseLifeline)))
	mux.HandleFunc("GET /api/endless/shop", m.Player(endlessHandler.Shop))
	mux.HandleFunc("POST /api/endless/shop/items/{id}", m.RateLimit(m.Player(endlessHandler.BuyShopItem)))
	mux.HandleFunc("POST /api/endless/shop/close", m.RateLimit(m.Player(endlessHandler.CloseShop)))
	mux.HandleFunc("POST /api/endless/next", m.RateLimit(m.Player(endlessHandler.Next)))
	mux.HandleFunc("POST /api/endless/bonus", m.RateLimit(m.Player(endlessHandler.Bonus)))
	mux.HandleFunc("POST /api/endless/share", m.RateLimit(m.Player(shareHandler.Share)))

	// Standard Mode
	mux.HandleFunc("GET /api/levels", m.Player(levelHandler.Levels))
	mux.HandleFunc("POST /api/levels/{level}/result", m.RateLimit(m.Player(levelHandler.RecordResult)))

	// Admin
	mux.HandleFunc("POST /api/admin/catalog", m.RateLimit(m.RequireAdmin(catalogHandler.Import)))

	return Logging(logger, mux)
}
