package service

import (
	"fmt"
	"slices"
	"time"

	"go.uber.org/zap"

	"screenguess/internal/models"
	"screenguess/internal/scheduler"
	"screenguess/internal/validation"
)

// StandardLevels is the length of the standard-mode ladder
const StandardLevels = 50

// ProgressStore persists standard-mode level results
type ProgressStore interface {
	Save(result models.LevelResult) error
	GetByPlayer(playerID string) (map[int]models.LevelResult, error)
	ListPlayers() ([]string, error)
	ReplaceForPlayer(playerID string, results map[int]models.LevelResult) error
}

// OrderStore remembers the last published standard-mode order
type OrderStore interface {
	GetStandardOrder() ([]int64, error)
	SetStandardOrder(order []int64) error
}

// LevelService serves the fixed standard-mode ordering and per-player progress
type LevelService struct {
	catalog  *CatalogService
	progress ProgressStore
	orders   OrderStore
	pinned   int
	seed     int64
	logger   *zap.Logger
	now      func() time.Time
}

// NewLevelService creates a new level service
func NewLevelService(catalog *CatalogService, progress ProgressStore, orders OrderStore, pinned int, seed int64, logger *zap.Logger) *LevelService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LevelService{
		catalog:  catalog,
		progress: progress,
		orders:   orders,
		pinned:   pinned,
		seed:     seed,
		logger:   logger,
		now:      time.Now,
	}
}

// Order returns the full standard-mode order as catalog ids
func (s *LevelService) Order() []int64 {
	return s.OrderFor(s.pinned)
}

// OrderFor returns the order produced by a given pinned-tier size
func (s *LevelService) OrderFor(pinned int) []int64 {
	return scheduler.FixedOrderIDs(s.catalog.Games(), pinned, s.seed)
}

// Levels lists the standard-mode ladder
func (s *LevelService) Levels() []models.Level {
	ordered := scheduler.FixedOrder(s.catalog.Games(), s.pinned, s.seed)
	if len(ordered) > StandardLevels {
		ordered = ordered[:StandardLevels]
	}

	levels := make([]models.Level, len(ordered))
	for i, g := range ordered {
		levels[i] = models.Level{Number: i + 1, Game: g.Summarize()}
	}
	return levels
}

// Level returns the full game behind a 1-indexed level
func (s *LevelService) Level(number int) (models.Game, error) {
	ordered := scheduler.FixedOrder(s.catalog.Games(), s.pinned, s.seed)
	if len(ordered) > StandardLevels {
		ordered = ordered[:StandardLevels]
	}
	if len(ordered) == 0 {
		return models.Game{}, ErrCatalogEmpty
	}
	if err := validation.ValidateLevel(number, len(ordered)); err != nil {
		return models.Game{}, err
	}
	return ordered[number-1], nil
}

// RecordResult saves the outcome of a standard-mode level
func (s *LevelService) RecordResult(playerID string, level int, status models.HistoryStatus, guessesUsed int) (models.LevelResult, error) {
	game, err := s.Level(level)
	if err != nil {
		return models.LevelResult{}, err
	}
	if status != models.HistoryWon && status != models.HistoryLost {
		return models.LevelResult{}, validation.ValidationError{Field: "status", Message: "status must be won or lost"}
	}
	if guessesUsed < 0 || guessesUsed > models.MaxGuesses {
		return models.LevelResult{}, validation.ValidationError{
			Field:   "guessesUsed",
			Message: fmt.Sprintf("guesses used must be between 0 and %d", models.MaxGuesses),
		}
	}

	result := models.LevelResult{
		PlayerID:    playerID,
		Level:       level,
		GameID:      game.ID,
		Status:      string(status),
		GuessesUsed: guessesUsed,
		UpdatedAt:   s.now(),
	}
	if err := s.progress.Save(result); err != nil {
		return models.LevelResult{}, fmt.Errorf("failed to save level result: %w", err)
	}
	return result, nil
}

// Progress returns the player's saved results keyed by level
func (s *LevelService) Progress(playerID string) (map[int]models.LevelResult, error) {
	progress, err := s.progress.GetByPlayer(playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load progress: %w", err)
	}
	return progress, nil
}

// SyncOrder compares the current order with the last published one and, when
// they differ, remaps every player's progress onto the new order. It returns
// the number of players remapped.
func (s *LevelService) SyncOrder() (int, error) {
	current := s.Order()
	if len(current) == 0 {
		return 0, nil
	}

	previous, err := s.orders.GetStandardOrder()
	if err != nil {
		return 0, fmt.Errorf("failed to read stored order: %w", err)
	}
	if slices.Equal(previous, current) {
		return 0, nil
	}

	remapped := 0
	if previous != nil {
		remapped, err = s.RemapAll(previous, current)
		if err != nil {
			return remapped, err
		}
	}

	if err := s.orders.SetStandardOrder(current); err != nil {
		return remapped, fmt.Errorf("failed to store order: %w", err)
	}
	s.logger.Info("Standard order published", zap.Int("levels", len(current)), zap.Int("players_remapped", remapped))
	return remapped, nil
}

// RemapProgress migrates saved progress from the order produced by oldPinned
// to the current order
func (s *LevelService) RemapProgress(oldPinned int) (int, error) {
	current := s.Order()
	remapped, err := s.RemapAll(s.OrderFor(oldPinned), current)
	if err != nil {
		return remapped, err
	}
	if err := s.orders.SetStandardOrder(current); err != nil {
		return remapped, fmt.Errorf("failed to store order: %w", err)
	}
	return remapped, nil
}

// RemapAll moves every player's progress from oldOrder to newOrder by catalog id
func (s *LevelService) RemapAll(oldOrder, newOrder []int64) (int, error) {
	players, err := s.progress.ListPlayers()
	if err != nil {
		return 0, fmt.Errorf("failed to list players: %w", err)
	}

	count := 0
	for _, playerID := range players {
		progress, err := s.progress.GetByPlayer(playerID)
		if err != nil {
			return count, fmt.Errorf("failed to load progress for %s: %w", playerID, err)
		}

		remapped := scheduler.RemapProgress(progress, oldOrder, newOrder)
		if err := s.progress.ReplaceForPlayer(playerID, remapped); err != nil {
			return count, fmt.Errorf("failed to save progress for %s: %w", playerID, err)
		}
		count++
	}

	if count > 0 {
		s.logger.Info("Remapped standard-mode progress", zap.Int("players", count))
	}
	return count, nil
}
