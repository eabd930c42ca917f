package repository

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"screenguess/internal/database"
	"screenguess/internal/models"
)

var gameColumns = []string{
	"id", "name", "release_year", "platform", "genre", "rating",
	"screenshots", "cover", "crop_positions", "summary",
}

// GameRepository handles catalog database operations
type GameRepository struct {
	db *database.DB
}

// NewGameRepository creates a new game repository
func NewGameRepository(db *database.DB) *GameRepository {
	return &GameRepository{db: db}
}

// GetAll returns every catalog entry ordered by id
func (r *GameRepository) GetAll() ([]models.Game, error) {
	query := `
		SELECT id, name, release_year, platform, genre, rating,
		       screenshots, cover, crop_positions, summary
		FROM games
		ORDER BY id
	`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var games []models.Game
	for rows.Next() {
		g, err := scanGame(rows)
		if err != nil {
			return nil, err
		}
		games = append(games, g)
	}
	return games, rows.Err()
}

// GetByID retrieves a single game
func (r *GameRepository) GetByID(id int64) (*models.Game, error) {
	query := `
		SELECT id, name, release_year, platform, genre, rating,
		       screenshots, cover, crop_positions, summary
		FROM games
		WHERE id = ?
	`

	g, err := scanGame(r.db.QueryRow(query, id))
	if err != nil {
		return nil, err
	}
	return &g, nil
}

// Count returns the number of catalog entries
func (r *GameRepository) Count() (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM games").Scan(&count)
	return count, err
}

// UpsertMany writes games and records the import batch in one transaction
func (r *GameRepository) UpsertMany(games []models.Game, source string) (int64, error) {
	var importID int64

	err := r.db.WithTx(func(tx *database.Tx) error {
		query := tx.GetDialect().Upsert("games", gameColumns, []string{"id"})
		for _, g := range games {
			args, err := gameArgs(g)
			if err != nil {
				return err
			}
			if _, err := tx.Exec(query, args...); err != nil {
				return fmt.Errorf("failed to upsert game %d: %w", g.ID, err)
			}
		}

		id, err := tx.ExecReturningID("INSERT INTO catalog_imports (source, game_count) VALUES (?, ?)", source, len(games))
		if err != nil {
			return fmt.Errorf("failed to record import: %w", err)
		}
		importID = id
		return nil
	})

	return importID, err
}

// ListImports returns the recorded catalog imports, newest first
func (r *GameRepository) ListImports() ([]models.CatalogImport, error) {
	rows, err := r.db.Query("SELECT id, source, game_count, imported_at FROM catalog_imports ORDER BY id DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var imports []models.CatalogImport
	for rows.Next() {
		var imp models.CatalogImport
		if err := rows.Scan(&imp.ID, &imp.Source, &imp.GameCount, &imp.ImportedAt); err != nil {
			return nil, err
		}
		imports = append(imports, imp)
	}
	return imports, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanGame(row rowScanner) (models.Game, error) {
	var g models.Game
	var screenshots, crops string

	err := row.Scan(
		&g.ID,
		&g.Name,
		&g.Year,
		&g.Platform,
		&g.Genre,
		&g.Rating,
		&screenshots,
		&g.Cover,
		&crops,
		&g.Summary,
	)
	if err != nil {
		return g, err
	}

	if err := json.Unmarshal([]byte(screenshots), &g.Screenshots); err != nil {
		return g, fmt.Errorf("game %d has invalid screenshots: %w", g.ID, err)
	}
	if err := json.Unmarshal([]byte(crops), &g.CropPositions); err != nil {
		return g, fmt.Errorf("game %d has invalid crop positions: %w", g.ID, err)
	}
	return g, nil
}

func gameArgs(g models.Game) ([]interface{}, error) {
	screenshots := g.Screenshots
	if screenshots == nil {
		screenshots = []string{}
	}
	crops := g.CropPositions
	if crops == nil {
		crops = []models.CropPosition{}
	}

	screenshotsJSON, err := json.Marshal(screenshots)
	if err != nil {
		return nil, err
	}
	cropsJSON, err := json.Marshal(crops)
	if err != nil {
		return nil, err
	}

	return []interface{}{
		g.ID, g.Name, g.Year, g.Platform, g.Genre, g.Rating,
		string(screenshotsJSON), g.Cover, string(cropsJSON), g.Summary,
	}, nil
}

// IsNotFound reports whether err means the row does not exist
func IsNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
