package models

import "time"

// SharedRun is a saved run history addressable by an opaque share id
type SharedRun struct {
	ID        string         `json:"id"`
	PlayerID  string         `json:"playerId"`
	Nickname  string         `json:"nickname"`
	Score     int            `json:"score"`
	Streak    int            `json:"streak"`
	Completed bool           `json:"completed"`
	History   []HistoryEntry `json:"history"`
	CreatedAt time.Time      `json:"createdAt"`
}

// Player identifies an anonymous player
type Player struct {
	ID       string `json:"id"`
	Nickname string `json:"nickname"`
}

// LevelResult is a saved standard-mode level outcome
type LevelResult struct {
	PlayerID    string    `json:"playerId,omitempty"`
	Level       int       `json:"level"`
	GameID      int64     `json:"gameId"`
	Status      string    `json:"status"`
	GuessesUsed int       `json:"guessesUsed"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Level is one position in the standard-mode ordering
type Level struct {
	Number int         `json:"level"`
	Game   GameSummary `json:"game"`
}

// PlayerStateRecord is one persisted per-player blob
type PlayerStateRecord struct {
	PlayerID  string    `json:"playerId"`
	Key       string    `json:"key"`
	Value     string    `json:"value"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CatalogImport records a batch of games loaded into the catalog
type CatalogImport struct {
	ID         int64     `json:"id"`
	Source     string    `json:"source"`
	GameCount  int       `json:"gameCount"`
	ImportedAt time.Time `json:"importedAt"`
}
