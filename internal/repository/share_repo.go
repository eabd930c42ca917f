package repository

import (
	"encoding/json"
	"fmt"

	"screenguess/internal/database"
	"screenguess/internal/models"
)

// ShareRepository stores shared run snapshots
type ShareRepository struct {
	db *database.DB
}

// NewShareRepository creates a new share repository
func NewShareRepository(db *database.DB) *ShareRepository {
	return &ShareRepository{db: db}
}

// Create inserts a shared run. The caller assigns the id.
func (r *ShareRepository) Create(run *models.SharedRun) error {
	history, err := json.Marshal(run.History)
	if err != nil {
		return fmt.Errorf("failed to encode history: %w", err)
	}

	query := `
		INSERT INTO shared_runs (id, player_id, nickname, score, streak, completed, history)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	_, err = r.db.Exec(query, run.ID, run.PlayerID, run.Nickname, run.Score, run.Streak, run.Completed, string(history))
	return err
}

// GetByID retrieves a shared run
func (r *ShareRepository) GetByID(id string) (*models.SharedRun, error) {
	query := `
		SELECT id, player_id, nickname, score, streak, completed, history, created_at
		FROM shared_runs
		WHERE id = ?
	`
	return scanSharedRun(r.db.QueryRow(query, id))
}

// ListByPlayer returns a player's shares, newest first
func (r *ShareRepository) ListByPlayer(playerID string, limit int) ([]models.SharedRun, error) {
	query := `
		SELECT id, player_id, nickname, score, streak, completed, history, created_at
		FROM shared_runs
		WHERE player_id = ?
		ORDER BY created_at DESC
		LIMIT ?
	`
	return r.list(query, playerID, limit)
}

// All returns every shared run, for backups
func (r *ShareRepository) All() ([]models.SharedRun, error) {
	query := `
		SELECT id, player_id, nickname, score, streak, completed, history, created_at
		FROM shared_runs
		ORDER BY created_at
	`
	return r.list(query)
}

// Restore inserts a shared run keeping its original timestamp
func (r *ShareRepository) Restore(run *models.SharedRun) error {
	history, err := json.Marshal(run.History)
	if err != nil {
		return fmt.Errorf("failed to encode history: %w", err)
	}

	query := `
		INSERT INTO shared_runs (id, player_id, nickname, score, streak, completed, history, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err = r.db.Exec(query, run.ID, run.PlayerID, run.Nickname, run.Score, run.Streak, run.Completed, string(history), run.CreatedAt)
	return err
}

func (r *ShareRepository) list(query string, args ...interface{}) ([]models.SharedRun, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []models.SharedRun
	for rows.Next() {
		run, err := scanSharedRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, *run)
	}
	return runs, rows.Err()
}

func scanSharedRun(row rowScanner) (*models.SharedRun, error) {
	run := &models.SharedRun{}
	var history string

	err := row.Scan(
		&run.ID,
		&run.PlayerID,
		&run.Nickname,
		&run.Score,
		&run.Streak,
		&run.Completed,
		&history,
		&run.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(history), &run.History); err != nil {
		return nil, fmt.Errorf("shared run %s has invalid history: %w", run.ID, err)
	}
	return run, nil
}
