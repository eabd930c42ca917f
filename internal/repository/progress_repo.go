package repository

import (
	"screenguess/internal/database"
	"screenguess/internal/models"
)

var progressColumns = []string{"player_id", "level", "game_id", "status", "guesses"}

// ProgressRepository stores standard-mode level results
type ProgressRepository struct {
	db *database.DB
}

// NewProgressRepository creates a new progress repository
func NewProgressRepository(db *database.DB) *ProgressRepository {
	return &ProgressRepository{db: db}
}

// Save records the outcome of a level
func (r *ProgressRepository) Save(result models.LevelResult) error {
	return saveProgress(r.db, result)
}

func saveProgress(db database.DBTX, result models.LevelResult) error {
	query := db.GetDialect().Upsert("level_progress", progressColumns, []string{"player_id", "level"})
	_, err := db.Exec(query, result.PlayerID, result.Level, result.GameID, result.Status, result.GuessesUsed)
	return err
}

// GetByPlayer returns a player's results keyed by level
func (r *ProgressRepository) GetByPlayer(playerID string) (map[int]models.LevelResult, error) {
	rows, err := r.db.Query(`
		SELECT player_id, level, game_id, status, guesses, updated_at
		FROM level_progress
		WHERE player_id = ?
	`, playerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	results := make(map[int]models.LevelResult)
	for rows.Next() {
		var res models.LevelResult
		if err := rows.Scan(&res.PlayerID, &res.Level, &res.GameID, &res.Status, &res.GuessesUsed, &res.UpdatedAt); err != nil {
			return nil, err
		}
		results[res.Level] = res
	}
	return results, rows.Err()
}

// ListPlayers returns every player with saved progress
func (r *ProgressRepository) ListPlayers() ([]string, error) {
	rows, err := r.db.Query("SELECT DISTINCT player_id FROM level_progress ORDER BY player_id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var players []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		players = append(players, id)
	}
	return players, rows.Err()
}

// ReplaceForPlayer swaps a player's whole progress set atomically
func (r *ProgressRepository) ReplaceForPlayer(playerID string, results map[int]models.LevelResult) error {
	return r.db.WithTx(func(tx *database.Tx) error {
		if _, err := tx.Exec("DELETE FROM level_progress WHERE player_id = ?", playerID); err != nil {
			return err
		}
		for level, res := range results {
			res.PlayerID = playerID
			res.Level = level
			if err := saveProgress(tx, res); err != nil {
				return err
			}
		}
		return nil
	})
}
