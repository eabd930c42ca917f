package repository

import (
	"database/sql"
	"errors"

	"screenguess/internal/database"
	"screenguess/internal/endless"
	"screenguess/internal/models"
)

var stateColumns = []string{"player_id", "state_key", "state_value"}

// StateRepository stores per-player state blobs
type StateRepository struct {
	db *database.DB
}

// NewStateRepository creates a new state repository
func NewStateRepository(db *database.DB) *StateRepository {
	return &StateRepository{db: db}
}

// Get returns the stored value for a player's key
func (r *StateRepository) Get(playerID, key string) (string, bool, error) {
	var value string
	err := r.db.QueryRow(
		"SELECT state_value FROM player_state WHERE player_id = ? AND state_key = ?",
		playerID, key,
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

// Set writes a player's key
func (r *StateRepository) Set(playerID, key, value string) error {
	query := r.db.Dialect.Upsert("player_state", stateColumns, []string{"player_id", "state_key"})
	_, err := r.db.Exec(query, playerID, key, value)
	return err
}

// DeletePlayer removes every key for a player
func (r *StateRepository) DeletePlayer(playerID string) error {
	_, err := r.db.Exec("DELETE FROM player_state WHERE player_id = ?", playerID)
	return err
}

// All returns every stored record, for backups
func (r *StateRepository) All() ([]models.PlayerStateRecord, error) {
	rows, err := r.db.Query("SELECT player_id, state_key, state_value, updated_at FROM player_state ORDER BY player_id, state_key")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []models.PlayerStateRecord
	for rows.Next() {
		var rec models.PlayerStateRecord
		if err := rows.Scan(&rec.PlayerID, &rec.Key, &rec.Value, &rec.UpdatedAt); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// playerState scopes the repository to a single player
type playerState struct {
	repo     *StateRepository
	playerID string
}

// ForPlayer returns a key-value view over one player's records
func (r *StateRepository) ForPlayer(playerID string) endless.KeyValue {
	return &playerState{repo: r, playerID: playerID}
}

func (p *playerState) Get(key string) (string, bool, error) {
	return p.repo.Get(p.playerID, key)
}

func (p *playerState) Set(key, value string) error {
	return p.repo.Set(p.playerID, key, value)
}
