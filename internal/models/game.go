package models

// ScreenshotsPerGame is the number of screenshots every playable game carries
const ScreenshotsPerGame = 5

// CropPosition is a percentage coordinate pair used by the screenshot viewer
type CropPosition struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Game represents a catalog entry. Games are immutable once fetched.
type Game struct {
	ID            int64          `json:"id"`
	Name          string         `json:"name"`
	Year          int            `json:"year"`
	Platform      string         `json:"platform"`
	Genre         string         `json:"genre"`
	Rating        int            `json:"rating"`
	Screenshots   []string       `json:"screenshots"`
	Cover         string         `json:"cover,omitempty"`
	CropPositions []CropPosition `json:"cropPositions"`
	Summary       string         `json:"summary,omitempty"`
}

// IsPlayable reports whether the game has the full set of screenshots
func (g Game) IsPlayable() bool {
	return len(g.Screenshots) == ScreenshotsPerGame
}

// GameSummary is the public, search-box view of a game
type GameSummary struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Year     int    `json:"year"`
	Platform string `json:"platform"`
}

// Summarize returns the search-box view of the game
func (g Game) Summarize() GameSummary {
	return GameSummary{
		ID:       g.ID,
		Name:     g.Name,
		Year:     g.Year,
		Platform: g.Platform,
	}
}
