package models

// GuessOutcome classifies a submitted guess
type GuessOutcome string

const (
	OutcomeWrong       GuessOutcome = "wrong"
	OutcomeSimilarName GuessOutcome = "similar-name"
	OutcomeCorrect     GuessOutcome = "correct"
	OutcomeSkipped     GuessOutcome = "skipped"
)

// RoundStatus is the state of the live round
type RoundStatus string

const (
	RoundPlaying RoundStatus = "playing"
	RoundWon     RoundStatus = "won"
	RoundLost    RoundStatus = "lost"
)

// HistoryStatus is the recorded decision of a completed round
type HistoryStatus string

const (
	HistoryWon     HistoryStatus = "won"
	HistoryLost    HistoryStatus = "lost"
	HistorySkipped HistoryStatus = "skipped"
)

// MaxGuesses is the per-round guess budget
const MaxGuesses = 5

// GuessRecord is a submitted guess and how it was classified
type GuessRecord struct {
	Name    string       `json:"name"`
	Outcome GuessOutcome `json:"outcome"`
}

// RoundState is the live round. It is discarded once the round is recorded into history.
type RoundState struct {
	Status              RoundStatus    `json:"status"`
	Guesses             []GuessRecord  `json:"guesses"`
	CropPositions       []CropPosition `json:"cropPositions"`
	DoubleTroubleGameID int64          `json:"doubleTroubleGameId,omitempty"`
	ZoomOutActive       bool           `json:"zoomOutActive"`
	LifelinesUsed       []LifelineType `json:"lifelinesUsed"`
}

// IsPlaying reports whether the round still accepts actions
func (r RoundState) IsPlaying() bool {
	return r.Status == RoundPlaying
}

// HistoryEntry summarises a completed round. Entries are never mutated after append.
type HistoryEntry struct {
	GameID        int64          `json:"gameId"`
	PointsAwarded int            `json:"pointsAwarded"`
	Status        HistoryStatus  `json:"status"`
	Guesses       []GuessRecord  `json:"guesses"`
	LifelinesUsed []LifelineType `json:"lifelinesUsed"`
	CorrectAnswer string         `json:"correctAnswer"`
	CropPositions []CropPosition `json:"cropPositions"`
	BonusRound    bool           `json:"bonusRound,omitempty"`
}

// BonusRound is the alternate pick-the-screenshot round
type BonusRound struct {
	GameIDs    []int64 `json:"gameIds"`
	TargetID   int64   `json:"targetId"`
	TargetName string  `json:"targetName"`
}

// RunState is the aggregate, persisted Endless Mode run
type RunState struct {
	Score                               int                  `json:"score"`
	Streak                              int                  `json:"streak"`
	HighScore                           int                  `json:"highScore"`
	Lifelines                           map[LifelineType]int `json:"lifelines"`
	GameOrder                           []int64              `json:"gameOrder"`
	CurrentIndex                        int                  `json:"currentIndex"`
	IsGameOver                          bool                 `json:"isGameOver"`
	HotStreakCount                      int                  `json:"hotStreakCount"`
	IsHotStreakActive                   bool                 `json:"isHotStreakActive"`
	LastShopStreak                      int                  `json:"lastShopStreak"`
	HasBonusRoundOccurredInCurrentBlock bool                 `json:"hasBonusRoundOccurredInCurrentBlock"`
	BonusRound                          *BonusRound          `json:"bonusRound,omitempty"`
	History                             []HistoryEntry       `json:"history"`
	Round                               RoundState           `json:"round"`
	Shop                                *ShopVisit           `json:"shop,omitempty"`
	AllInPurchased                      bool                 `json:"allInPurchased"`
	ScoreSubmitted                      bool                 `json:"scoreSubmitted"`
}

// CurrentGameID returns the catalog id of the current round's target
func (s *RunState) CurrentGameID() (int64, bool) {
	if s.CurrentIndex < 0 || s.CurrentIndex >= len(s.GameOrder) {
		return 0, false
	}
	return s.GameOrder[s.CurrentIndex], true
}
