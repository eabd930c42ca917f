package service

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"go.uber.org/zap"

	"screenguess/internal/database"
	"screenguess/internal/models"
	"screenguess/internal/repository"
)

const backupVersion = "1.0"

// BackupData represents the complete database backup structure
type BackupData struct {
	Version       string                     `json:"version"`
	ExportedAt    time.Time                  `json:"exported_at"`
	DatabaseType  string                     `json:"database_type"`
	Games         []models.Game              `json:"games"`
	PlayerStates  []models.PlayerStateRecord `json:"player_states"`
	SharedRuns    []models.SharedRun         `json:"shared_runs"`
	LevelProgress []models.LevelResult       `json:"level_progress"`
	StandardOrder []int64                    `json:"standard_order,omitempty"`
}

// BackupService handles database export and import
type BackupService struct {
	db       *database.DB
	games    *repository.GameRepository
	states   *repository.StateRepository
	shares   *repository.ShareRepository
	progress *repository.ProgressRepository
	settings *repository.SettingsRepository
	logger   *zap.Logger
}

// NewBackupService creates a new backup service
func NewBackupService(db *database.DB, logger *zap.Logger) *BackupService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BackupService{
		db:       db,
		games:    repository.NewGameRepository(db),
		states:   repository.NewStateRepository(db),
		shares:   repository.NewShareRepository(db),
		progress: repository.NewProgressRepository(db),
		settings: repository.NewSettingsRepository(db),
		logger:   logger,
	}
}

// Export creates a complete backup of the database to a file
func (s *BackupService) Export(outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	if err := s.ExportToWriter(file); err != nil {
		return err
	}
	s.logger.Info("Database exported", zap.String("path", outputPath))
	return nil
}

// ExportToWriter writes a complete backup as indented JSON
func (s *BackupService) ExportToWriter(w io.Writer) error {
	backup, err := s.collect()
	if err != nil {
		return err
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(backup); err != nil {
		return fmt.Errorf("failed to encode backup: %w", err)
	}

	s.logger.Info("Export summary",
		zap.Int("games", len(backup.Games)),
		zap.Int("player_states", len(backup.PlayerStates)),
		zap.Int("shared_runs", len(backup.SharedRuns)),
		zap.Int("level_progress", len(backup.LevelProgress)))
	return nil
}

func (s *BackupService) collect() (*BackupData, error) {
	backup := &BackupData{
		Version:      backupVersion,
		ExportedAt:   time.Now(),
		DatabaseType: s.db.GetDialect().DriverName(),
	}

	var err error
	if backup.Games, err = s.games.GetAll(); err != nil {
		return nil, fmt.Errorf("failed to export games: %w", err)
	}
	if backup.PlayerStates, err = s.states.All(); err != nil {
		return nil, fmt.Errorf("failed to export player state: %w", err)
	}
	if backup.SharedRuns, err = s.shares.All(); err != nil {
		return nil, fmt.Errorf("failed to export shared runs: %w", err)
	}
	if backup.LevelProgress, err = s.exportProgress(); err != nil {
		return nil, fmt.Errorf("failed to export level progress: %w", err)
	}
	if backup.StandardOrder, err = s.settings.GetStandardOrder(); err != nil {
		return nil, fmt.Errorf("failed to export standard order: %w", err)
	}
	return backup, nil
}

func (s *BackupService) exportProgress() ([]models.LevelResult, error) {
	players, err := s.progress.ListPlayers()
	if err != nil {
		return nil, err
	}

	var results []models.LevelResult
	for _, playerID := range players {
		progress, err := s.progress.GetByPlayer(playerID)
		if err != nil {
			return nil, err
		}
		for _, result := range progress {
			results = append(results, result)
		}
	}
	return results, nil
}

// Import restores a database from a backup file
func (s *BackupService) Import(inputPath string) error {
	file, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("failed to open input file: %w", err)
	}
	defer file.Close()

	return s.ImportFromReader(file)
}

// ImportFromReader restores a database from a backup reader. Existing rows
// with the same keys are overwritten; everything else is left in place.
func (s *BackupService) ImportFromReader(reader io.Reader) error {
	var backup BackupData
	if err := json.NewDecoder(reader).Decode(&backup); err != nil {
		return fmt.Errorf("failed to decode backup: %w", err)
	}
	s.logger.Info("Importing backup",
		zap.String("version", backup.Version),
		zap.Time("exported_at", backup.ExportedAt))

	if len(backup.Games) > 0 {
		if _, err := s.games.UpsertMany(backup.Games, "backup"); err != nil {
			return fmt.Errorf("failed to import games: %w", err)
		}
	}
	for _, rec := range backup.PlayerStates {
		if err := s.states.Set(rec.PlayerID, rec.Key, rec.Value); err != nil {
			return fmt.Errorf("failed to import state for %s: %w", rec.PlayerID, err)
		}
	}
	for i := range backup.SharedRuns {
		if err := s.shares.Restore(&backup.SharedRuns[i]); err != nil {
			return fmt.Errorf("failed to import shared run %s: %w", backup.SharedRuns[i].ID, err)
		}
	}
	for _, result := range backup.LevelProgress {
		if err := s.progress.Save(result); err != nil {
			return fmt.Errorf("failed to import progress for %s: %w", result.PlayerID, err)
		}
	}
	if backup.StandardOrder != nil {
		if err := s.settings.SetStandardOrder(backup.StandardOrder); err != nil {
			return fmt.Errorf("failed to import standard order: %w", err)
		}
	}

	s.logger.Info("Import complete",
		zap.Int("games", len(backup.Games)),
		zap.Int("player_states", len(backup.PlayerStates)),
		zap.Int("shared_runs", len(backup.SharedRuns)),
		zap.Int("level_progress", len(backup.LevelProgress)))
	return nil
}

// Clear deletes all player data. The game catalog is kept.
func (s *BackupService) Clear() error {
	tables := []string{"level_progress", "shared_runs", "player_state", "settings"}
	return s.db.WithTx(func(tx *database.Tx) error {
		for _, table := range tables {
			if _, err := tx.Exec(fmt.Sprintf("DELETE FROM %s", table)); err != nil {
				return fmt.Errorf("failed to clear table %s: %w", table, err)
			}
			s.logger.Info("Cleared table", zap.String("table", table))
		}
		return nil
	})
}
