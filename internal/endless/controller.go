// Package endless implements the Endless Mode run: rounds, scoring, lifelines,
// the streak shop and bonus rounds.
package endless

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"screenguess/internal/models"
	"screenguess/internal/scheduler"
	"screenguess/internal/similarity"
)

// RandomSource is the randomness the controller draws from
type RandomSource = scheduler.RandomSource

const (
	cropMin  = 10.0
	cropSpan = 80.0
)

// Guess is a submitted answer. GameID is set when the player picked a
// catalog entry from the search box; Name is used otherwise.
type Guess struct {
	GameID int64  `json:"gameId"`
	Name   string `json:"name"`
}

// GuessResult describes what a guess did to the round
type GuessResult struct {
	Accepted    bool                `json:"accepted"`
	Outcome     models.GuessOutcome `json:"outcome,omitempty"`
	Points      int                 `json:"points"`
	RoundStatus models.RoundStatus  `json:"roundStatus"`
	GameOver    bool                `json:"gameOver"`
}

// NextResult describes the transition performed by NextLevel
type NextResult struct {
	Accepted   bool `json:"accepted"`
	Reset      bool `json:"reset"`
	BonusRound bool `json:"bonusRound"`
}

// Controller owns one player's run. It is not safe for concurrent use;
// callers serialise access per player.
type Controller struct {
	games   []models.Game
	catalog map[int64]models.Game
	store   Store
	rng     RandomSource
	logger  *zap.Logger
	state   *models.RunState
}

// NewController loads the saved run from store, repairing missing fields, or
// starts a fresh run when nothing usable was saved.
func NewController(games []models.Game, store Store, rng RandomSource, logger *zap.Logger) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}

	c := &Controller{
		games:   games,
		catalog: make(map[int64]models.Game, len(games)),
		store:   store,
		rng:     rng,
		logger:  logger,
	}
	for _, g := range games {
		c.catalog[g.ID] = g
	}

	if c.load() {
		if err := c.persist(); err != nil {
			c.logger.Warn("Failed to save initialised run", zap.Error(err))
		}
	}
	return c
}

// load reads the run and reports whether it had to be created or repaired
func (c *Controller) load() bool {
	highScore, err := c.store.LoadHighScore()
	if err != nil {
		c.logger.Warn("Failed to load high score, starting from zero", zap.Error(err))
		highScore = 0
	}

	state, err := c.store.LoadRun()
	if err != nil {
		c.logger.Warn("Failed to load run state, starting a new run", zap.Error(err))
		state = nil
	}

	if state == nil {
		c.state = c.newRun(highScore)
		return true
	}

	c.state = state
	repaired := c.repair()
	if highScore > c.state.HighScore {
		c.state.HighScore = highScore
	}
	return repaired
}

// repair fills in fields missing from older or partial saves
func (c *Controller) repair() bool {
	s := c.state
	repaired := false

	if s.Lifelines == nil {
		s.Lifelines = make(map[models.LifelineType]int, len(models.AllLifelines))
	}
	for _, t := range models.AllLifelines {
		if _, ok := s.Lifelines[t]; !ok {
			s.Lifelines[t] = 1
			repaired = true
		}
	}

	if s.Score < 0 {
		s.Score = 0
		repaired = true
	}
	if s.Streak < 0 {
		s.Streak = 0
		repaired = true
	}
	if s.History == nil {
		s.History = []models.HistoryEntry{}
	}

	if c.repairOrder() {
		repaired = true
	}

	if s.Round.Status == "" {
		s.Round.Status = models.RoundPlaying
		repaired = true
	}
	if len(s.Round.CropPositions) == 0 {
		s.Round.CropPositions = c.cropPositions()
		repaired = true
	}
	if s.Round.Guesses == nil {
		s.Round.Guesses = []models.GuessRecord{}
	}
	if s.Round.LifelinesUsed == nil {
		s.Round.LifelinesUsed = []models.LifelineType{}
	}

	if hot := s.HotStreakCount >= hotStreakThreshold; hot != s.IsHotStreakActive {
		s.IsHotStreakActive = hot
		repaired = true
	}
	if s.BonusRound != nil && len(s.BonusRound.GameIDs) == 0 {
		s.BonusRound = nil
		repaired = true
	}

	return repaired
}

// repairOrder drops ids that left the catalog and regenerates an empty order
func (c *Controller) repairOrder() bool {
	s := c.state
	if len(s.GameOrder) == 0 {
		s.GameOrder = scheduler.EndlessOrder(c.games, c.rng)
		s.CurrentIndex = 0
		s.Round = c.newRound()
		return true
	}

	currentID, hadCurrent := s.CurrentGameID()
	kept := s.GameOrder[:0:0]
	for _, id := range s.GameOrder {
		if _, ok := c.catalog[id]; ok {
			kept = append(kept, id)
		}
	}
	if len(kept) == len(s.GameOrder) && hadCurrent {
		return false
	}

	if len(kept) == 0 {
		s.GameOrder = scheduler.EndlessOrder(c.games, c.rng)
		s.CurrentIndex = 0
		s.Round = c.newRound()
		return true
	}

	s.GameOrder = kept
	for i, id := range kept {
		if id == currentID {
			s.CurrentIndex = i
			return true
		}
	}

	// the current target is gone; start a fresh round at the same position
	if s.CurrentIndex >= len(kept) || s.CurrentIndex < 0 {
		s.CurrentIndex = 0
	}
	s.Round = c.newRound()
	return true
}

func (c *Controller) newRun(highScore int) *models.RunState {
	lifelines := make(map[models.LifelineType]int, len(models.AllLifelines))
	for _, t := range models.AllLifelines {
		lifelines[t] = 1
	}

	return &models.RunState{
		HighScore: highScore,
		Lifelines: lifelines,
		GameOrder: scheduler.EndlessOrder(c.games, c.rng),
		History:   []models.HistoryEntry{},
		Round:     c.newRound(),
	}
}

func (c *Controller) newRound() models.RoundState {
	return models.RoundState{
		Status:        models.RoundPlaying,
		Guesses:       []models.GuessRecord{},
		CropPositions: c.cropPositions(),
		LifelinesUsed: []models.LifelineType{},
	}
}

func (c *Controller) cropPositions() []models.CropPosition {
	positions := make([]models.CropPosition, models.ScreenshotsPerGame)
	for i := range positions {
		positions[i] = models.CropPosition{
			X: cropMin + c.rng.Float64()*cropSpan,
			Y: cropMin + c.rng.Float64()*cropSpan,
		}
	}
	return positions
}

// persist saves the run and the high score
func (c *Controller) persist() error {
	if err := c.store.SaveRun(c.state); err != nil {
		return fmt.Errorf("failed to save run: %w", err)
	}
	if err := c.store.SaveHighScore(c.state.HighScore); err != nil {
		return fmt.Errorf("failed to save high score: %w", err)
	}
	return nil
}

// State returns a snapshot of the run
func (c *Controller) State() models.RunState {
	return *c.state
}

// Target returns the game the current round is about
func (c *Controller) Target() (models.Game, bool) {
	id, ok := c.state.CurrentGameID()
	if !ok {
		return models.Game{}, false
	}
	g, ok := c.catalog[id]
	return g, ok
}

// Game looks up a catalog entry by id
func (c *Controller) Game(id int64) (models.Game, bool) {
	g, ok := c.catalog[id]
	return g, ok
}

// canAct reports whether the normal round accepts guesses, skips and lifelines
func (c *Controller) canAct() bool {
	s := c.state
	return !s.IsGameOver && s.BonusRound == nil && s.Round.IsPlaying()
}

// SubmitGuess classifies the guess against the current target. fatal makes
// any non-correct outcome end the run immediately.
func (c *Controller) SubmitGuess(guess Guess, fatal bool) (GuessResult, error) {
	if !c.canAct() {
		return GuessResult{RoundStatus: c.state.Round.Status, GameOver: c.state.IsGameOver}, nil
	}
	target, ok := c.Target()
	if !ok {
		return GuessResult{RoundStatus: c.state.Round.Status}, nil
	}

	name := strings.TrimSpace(guess.Name)
	if g, ok := c.catalog[guess.GameID]; ok {
		name = g.Name
	}
	if name == "" {
		return GuessResult{RoundStatus: c.state.Round.Status}, nil
	}

	c.dismissShop()

	s := c.state
	outcome := c.classify(guess.GameID, name, target)
	s.Round.Guesses = append(s.Round.Guesses, models.GuessRecord{Name: name, Outcome: outcome})

	result := GuessResult{Accepted: true, Outcome: outcome}
	switch {
	case outcome == models.OutcomeCorrect:
		result.Points = c.winRound(target)
	case fatal || len(s.Round.Guesses) >= models.MaxGuesses:
		c.loseRound(target)
	}

	result.RoundStatus = s.Round.Status
	result.GameOver = s.IsGameOver
	return result, c.persist()
}

func (c *Controller) classify(gameID int64, name string, target models.Game) models.GuessOutcome {
	alt, hasAlt := c.catalog[c.state.Round.DoubleTroubleGameID]

	if gameID != 0 {
		if gameID == target.ID || (hasAlt && gameID == alt.ID) {
			return models.OutcomeCorrect
		}
	} else if strings.EqualFold(name, target.Name) || (hasAlt && strings.EqualFold(name, alt.Name)) {
		return models.OutcomeCorrect
	}

	if similarity.IsSameSeries(name, target.Name) {
		return models.OutcomeSimilarName
	}
	return models.OutcomeWrong
}

// SkipGuess spends one guess without naming a game
func (c *Controller) SkipGuess() (GuessResult, error) {
	if !c.canAct() {
		return GuessResult{RoundStatus: c.state.Round.Status, GameOver: c.state.IsGameOver}, nil
	}
	target, ok := c.Target()
	if !ok {
		return GuessResult{RoundStatus: c.state.Round.Status}, nil
	}

	c.dismissShop()

	s := c.state
	s.Round.Guesses = append(s.Round.Guesses, models.GuessRecord{Outcome: models.OutcomeSkipped})
	if len(s.Round.Guesses) >= models.MaxGuesses {
		c.loseRound(target)
	}

	return GuessResult{
		Accepted:    true,
		Outcome:     models.OutcomeSkipped,
		RoundStatus: s.Round.Status,
		GameOver:    s.IsGameOver,
	}, c.persist()
}

// winRound scores the round using the streak and hot streak from before the win
func (c *Controller) winRound(target models.Game) int {
	s := c.state
	guessCount := len(s.Round.Guesses)
	points := RoundPoints(guessCount, s.Streak, s.IsHotStreakActive)

	s.Score += points
	s.Streak++
	if s.Score > s.HighScore {
		s.HighScore = s.Score
	}
	s.Round.Status = models.RoundWon
	c.record(target, models.HistoryWon, points)

	if guessCount <= hotStreakMaxGuess {
		s.HotStreakCount++
		if s.HotStreakCount >= hotStreakThreshold {
			s.IsHotStreakActive = true
		}
	} else {
		c.resetHotStreak()
	}
	return points
}

func (c *Controller) loseRound(target models.Game) {
	s := c.state
	s.Round.Status = models.RoundLost
	s.IsGameOver = true
	c.record(target, models.HistoryLost, 0)
	c.resetHotStreak()
	c.logger.Debug("Run ended", zap.Int("score", s.Score), zap.Int("streak", s.Streak))
}

func (c *Controller) resetHotStreak() {
	c.state.HotStreakCount = 0
	c.state.IsHotStreakActive = false
}

// record appends the decided round to history
func (c *Controller) record(target models.Game, status models.HistoryStatus, points int) {
	r := c.state.Round
	c.state.History = append(c.state.History, models.HistoryEntry{
		GameID:        target.ID,
		PointsAwarded: points,
		Status:        status,
		Guesses:       append([]models.GuessRecord{}, r.Guesses...),
		LifelinesUsed: append([]models.LifelineType{}, r.LifelinesUsed...),
		CorrectAnswer: target.Name,
		CropPositions: append([]models.CropPosition{}, r.CropPositions...),
	})
}

// NextLevel advances past a decided round. After game over it starts a new
// run; otherwise it may open a bonus round instead of advancing.
func (c *Controller) NextLevel() (NextResult, error) {
	s := c.state

	if s.IsGameOver {
		c.state = c.newRun(s.HighScore)
		return NextResult{Accepted: true, Reset: true}, c.persist()
	}
	if s.BonusRound != nil || s.Round.IsPlaying() {
		return NextResult{}, nil
	}

	if c.maybeStartBonus() {
		return NextResult{Accepted: true, BonusRound: true}, c.persist()
	}

	if s.Streak > 0 && s.Streak%difficultyStep == 0 {
		s.HasBonusRoundOccurredInCurrentBlock = false
	}

	s.CurrentIndex++
	if s.CurrentIndex >= len(s.GameOrder) {
		s.GameOrder = scheduler.EndlessOrder(c.games, c.rng)
		s.CurrentIndex = 0
	}
	s.Round = c.newRound()

	return NextResult{Accepted: true}, c.persist()
}

// MarkScoreSubmitted flags a finished run as already on the leaderboard
func (c *Controller) MarkScoreSubmitted() error {
	if !c.state.IsGameOver || c.state.ScoreSubmitted {
		return nil
	}
	c.state.ScoreSubmitted = true
	return c.persist()
}

// pickGames draws up to n distinct catalog ids other than exclude
func (c *Controller) pickGames(n int, exclude int64) []int64 {
	ids := make([]int64, 0, len(c.games))
	for _, g := range c.games {
		if g.ID != exclude {
			ids = append(ids, g.ID)
		}
	}
	c.rng.Shuffle(len(ids), func(i, j int) {
		ids[i], ids[j] = ids[j], ids[i]
	})
	if len(ids) > n {
		ids = ids[:n]
	}
	return ids
}
