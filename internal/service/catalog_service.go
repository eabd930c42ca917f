package service

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"

	"screenguess/internal/models"
)

// GameStore is the persistence the catalog is loaded from
type GameStore interface {
	GetAll() ([]models.Game, error)
	Count() (int, error)
	UpsertMany(games []models.Game, source string) (int64, error)
}

// CatalogService keeps the playable part of the game catalog in memory
type CatalogService struct {
	repo   GameStore
	logger *zap.Logger

	mu    sync.RWMutex
	games []models.Game
	byID  map[int64]models.Game
}

// NewCatalogService creates a new catalog service. Call Reload before use.
func NewCatalogService(repo GameStore, logger *zap.Logger) *CatalogService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CatalogService{
		repo:   repo,
		logger: logger,
		byID:   make(map[int64]models.Game),
	}
}

// Reload replaces the in-memory catalog with the playable games in the store
func (s *CatalogService) Reload() error {
	all, err := s.repo.GetAll()
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}

	playable := make([]models.Game, 0, len(all))
	byID := make(map[int64]models.Game, len(all))
	for _, g := range all {
		if !g.IsPlayable() {
			continue
		}
		playable = append(playable, g)
		byID[g.ID] = g
	}

	if skipped := len(all) - len(playable); skipped > 0 {
		s.logger.Info("Skipped games without a full screenshot set", zap.Int("skipped", skipped))
	}

	s.mu.Lock()
	s.games = playable
	s.byID = byID
	s.mu.Unlock()

	s.logger.Info("Catalog loaded", zap.Int("playable", len(playable)))
	return nil
}

// Games returns a copy of the playable games
func (s *CatalogService) Games() []models.Game {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Game, len(s.games))
	copy(out, s.games)
	return out
}

// Game looks up a playable game by id
func (s *CatalogService) Game(id int64) (models.Game, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	g, ok := s.byID[id]
	return g, ok
}

// Summaries returns the search-box view of every playable game, sorted by name
func (s *CatalogService) Summaries() []models.GameSummary {
	games := s.Games()
	out := make([]models.GameSummary, 0, len(games))
	for _, g := range games {
		out = append(out, g.Summarize())
	}
	sort.Slice(out, func(i, j int) bool {
		return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
	})
	return out
}

// SeedFromFile imports the JSON catalog at path when the store is still empty.
// It returns the number of games imported.
func (s *CatalogService) SeedFromFile(path string) (int, error) {
	count, err := s.repo.Count()
	if err != nil {
		return 0, fmt.Errorf("failed to count games: %w", err)
	}
	if count > 0 {
		return 0, nil
	}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			s.logger.Warn("Catalog seed file not found", zap.String("path", path))
			return 0, nil
		}
		return 0, fmt.Errorf("failed to open catalog seed: %w", err)
	}
	defer f.Close()

	return s.Import(f, path)
}

// Import decodes a JSON catalog from r, upserts it and reloads the in-memory view
func (s *CatalogService) Import(r io.Reader, source string) (int, error) {
	games, err := ParseCatalog(r)
	if err != nil {
		return 0, err
	}

	importID, err := s.repo.UpsertMany(games, source)
	if err != nil {
		return 0, fmt.Errorf("failed to store catalog: %w", err)
	}
	s.logger.Info("Catalog imported",
		zap.Int64("import_id", importID),
		zap.String("source", source),
		zap.Int("games", len(games)))

	if err := s.Reload(); err != nil {
		return len(games), err
	}
	return len(games), nil
}

// ParseCatalog decodes and checks a JSON array of games
func ParseCatalog(r io.Reader) ([]models.Game, error) {
	var games []models.Game
	if err := json.NewDecoder(r).Decode(&games); err != nil {
		return nil, fmt.Errorf("failed to decode catalog: %w", err)
	}
	if len(games) == 0 {
		return nil, ErrCatalogEmpty
	}

	seen := make(map[int64]bool, len(games))
	for i, g := range games {
		if g.ID <= 0 {
			return nil, fmt.Errorf("catalog entry %d has no id", i)
		}
		if strings.TrimSpace(g.Name) == "" {
			return nil, fmt.Errorf("catalog entry %d (id %d) has no name", i, g.ID)
		}
		if seen[g.ID] {
			return nil, fmt.Errorf("catalog id %d appears more than once", g.ID)
		}
		seen[g.ID] = true
	}
	return games, nil
}
