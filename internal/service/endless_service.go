package service

import (
	"context"
	"fmt"
	"hash/fnv"
	"sync"

	"go.uber.org/zap"

	"screenguess/internal/cache"
	"screenguess/internal/endless"
	"screenguess/internal/models"
	"screenguess/internal/scheduler"
	"screenguess/internal/validation"
)

// playerLockStripes bounds the number of per-player mutexes
const playerLockStripes = 256

// PlayerStates hands out the key-value records backing one player's run
type PlayerStates interface {
	ForPlayer(playerID string) endless.KeyValue
}

// RoundView is the live round as the player may see it. Answer is only set
// once the round has been decided.
type RoundView struct {
	Status              models.RoundStatus    `json:"status"`
	Guesses             []models.GuessRecord  `json:"guesses"`
	Screenshots         []string              `json:"screenshots"`
	CropPositions       []models.CropPosition `json:"cropPositions"`
	ZoomOutActive       bool                  `json:"zoomOutActive"`
	LifelinesUsed       []models.LifelineType `json:"lifelinesUsed"`
	DoubleTroubleShots  []string              `json:"doubleTroubleScreenshots,omitempty"`
	RemainingGuesses    int                   `json:"remainingGuesses"`
	Answer              *models.GameSummary   `json:"answer,omitempty"`
	DoubleTroubleAnswer *models.GameSummary   `json:"doubleTroubleAnswer,omitempty"`
}

// BonusOption is one screenshot offered in a bonus round
type BonusOption struct {
	GameID     int64  `json:"gameId"`
	Screenshot string `json:"screenshot"`
}

// BonusView asks the player to find Prompt among the options
type BonusView struct {
	Prompt  string        `json:"prompt"`
	Options []BonusOption `json:"options"`
}

// RunView is the player-facing projection of a run
type RunView struct {
	Score             int                         `json:"score"`
	Streak            int                         `json:"streak"`
	HighScore         int                         `json:"highScore"`
	Lifelines         map[models.LifelineType]int `json:"lifelines"`
	RoundNumber       int                         `json:"roundNumber"`
	IsGameOver        bool                        `json:"isGameOver"`
	IsHotStreakActive bool                        `json:"isHotStreakActive"`
	HotStreakCount    int                         `json:"hotStreakCount"`
	ShopAvailable     bool                        `json:"shopAvailable"`
	ShopOpen          bool                        `json:"shopOpen"`
	Round             RoundView                   `json:"round"`
	Bonus             *BonusView                  `json:"bonus,omitempty"`
	History           []models.HistoryEntry       `json:"history"`
}

// Outcome pairs an operation's result with the run it left behind
type Outcome[T any] struct {
	Result T       `json:"result"`
	Run    RunView `json:"run"`
}

// EndlessService runs Endless Mode for many players. Each request rebuilds
// the player's controller from persisted state under a per-player lock.
type EndlessService struct {
	catalog     *CatalogService
	states      PlayerStates
	leaderboard cache.LeaderboardCache
	logger      *zap.Logger
	newRandom   func() scheduler.RandomSource

	locks [playerLockStripes]sync.Mutex
}

// NewEndlessService creates a new endless service. leaderboard may be nil.
func NewEndlessService(catalog *CatalogService, states PlayerStates, leaderboard cache.LeaderboardCache, logger *zap.Logger) *EndlessService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EndlessService{
		catalog:     catalog,
		states:      states,
		leaderboard: leaderboard,
		logger:      logger,
		newRandom:   scheduler.NewRandom,
	}
}

// lockFor maps a player onto one of a fixed set of mutexes, so memory stays
// flat however many anonymous players arrive
func (s *EndlessService) lockFor(playerID string) *sync.Mutex {
	h := fnv.New32a()
	h.Write([]byte(playerID))
	return &s.locks[h.Sum32()%playerLockStripes]
}

// withController runs fn against the player's controller while holding their lock
func (s *EndlessService) withController(ctx context.Context, player models.Player, fn func(c *endless.Controller) error) (RunView, error) {
	lock := s.lockFor(player.ID)
	lock.Lock()
	defer lock.Unlock()

	games := s.catalog.Games()
	if len(games) == 0 {
		return RunView{}, ErrCatalogEmpty
	}

	c := endless.NewController(
		games,
		endless.NewKeyValueStore(s.states.ForPlayer(player.ID)),
		s.newRandom(),
		s.logger.With(zap.String("player_id", player.ID)),
	)

	if err := fn(c); err != nil {
		return RunView{}, err
	}
	s.submitFinalScore(ctx, player, c)
	return s.view(c), nil
}

// submitFinalScore puts a finished run on the leaderboard once. A failed
// submission is retried on the player's next request.
func (s *EndlessService) submitFinalScore(ctx context.Context, player models.Player, c *endless.Controller) {
	state := c.State()
	if !state.IsGameOver || state.ScoreSubmitted || s.leaderboard == nil {
		return
	}

	if err := s.leaderboard.SubmitScore(ctx, player.ID, player.Nickname, state.Score); err != nil {
		s.logger.Warn("Failed to submit score to leaderboard",
			zap.String("player_id", player.ID),
			zap.Int("score", state.Score),
			zap.Error(err))
		return
	}
	if err := c.MarkScoreSubmitted(); err != nil {
		s.logger.Warn("Failed to mark score as submitted", zap.String("player_id", player.ID), zap.Error(err))
	}
}

func (s *EndlessService) view(c *endless.Controller) RunView {
	state := c.State()
	v := RunView{
		Score:             state.Score,
		Streak:            state.Streak,
		HighScore:         state.HighScore,
		Lifelines:         state.Lifelines,
		RoundNumber:       len(state.History) + 1,
		IsGameOver:        state.IsGameOver,
		IsHotStreakActive: state.IsHotStreakActive,
		HotStreakCount:    state.HotStreakCount,
		ShopAvailable:     c.ShopAvailable(),
		ShopOpen:          state.Shop != nil,
		History:           state.History,
	}
	if v.History == nil {
		v.History = []models.HistoryEntry{}
	}
	if !state.Round.IsPlaying() && len(state.History) > 0 {
		v.RoundNumber = len(state.History)
	}

	round := state.Round
	v.Round = RoundView{
		Status:           round.Status,
		Guesses:          round.Guesses,
		CropPositions:    round.CropPositions,
		ZoomOutActive:    round.ZoomOutActive,
		LifelinesUsed:    round.LifelinesUsed,
		RemainingGuesses: models.MaxGuesses - len(round.Guesses),
	}
	if target, ok := c.Target(); ok {
		v.Round.Screenshots = target.Screenshots
		if !round.IsPlaying() {
			answer := target.Summarize()
			v.Round.Answer = &answer
		}
	}
	if alt, ok := c.Game(round.DoubleTroubleGameID); ok && round.DoubleTroubleGameID != 0 {
		v.Round.DoubleTroubleShots = alt.Screenshots
		if !round.IsPlaying() {
			answer := alt.Summarize()
			v.Round.DoubleTroubleAnswer = &answer
		}
	}

	if bonus := state.BonusRound; bonus != nil {
		bv := &BonusView{Prompt: bonus.TargetName, Options: make([]BonusOption, 0, len(bonus.GameIDs))}
		for _, id := range bonus.GameIDs {
			g, ok := c.Game(id)
			if !ok || len(g.Screenshots) == 0 {
				continue
			}
			bv.Options = append(bv.Options, BonusOption{GameID: id, Screenshot: g.Screenshots[0]})
		}
		v.Bonus = bv
	}
	return v
}

// State returns the player's run, starting one if needed
func (s *EndlessService) State(ctx context.Context, player models.Player) (RunView, error) {
	return s.withController(ctx, player, func(*endless.Controller) error { return nil })
}

// Snapshot returns the full persisted run, including answers. It is meant for
// server-side consumers such as sharing, never for the player view.
func (s *EndlessService) Snapshot(ctx context.Context, player models.Player) (models.RunState, error) {
	var state models.RunState
	_, err := s.withController(ctx, player, func(c *endless.Controller) error {
		state = c.State()
		return nil
	})
	return state, err
}

// Guess submits a guess for the current round
func (s *EndlessService) Guess(ctx context.Context, player models.Player, guess endless.Guess, fatal bool) (Outcome[endless.GuessResult], error) {
	if err := validation.ValidateGuess(guess.GameID, guess.Name); err != nil {
		return Outcome[endless.GuessResult]{}, err
	}

	var out Outcome[endless.GuessResult]
	run, err := s.withController(ctx, player, func(c *endless.Controller) error {
		var err error
		out.Result, err = c.SubmitGuess(guess, fatal)
		if err != nil {
			return fmt.Errorf("failed to save guess: %w", err)
		}
		return nil
	})
	out.Run = run
	return out, err
}

// Skip spends a guess without naming a game
func (s *EndlessService) Skip(ctx context.Context, player models.Player) (Outcome[endless.GuessResult], error) {
	var out Outcome[endless.GuessResult]
	run, err := s.withController(ctx, player, func(c *endless.Controller) error {
		var err error
		out.Result, err = c.SkipGuess()
		if err != nil {
			return fmt.Errorf("failed to save skip: %w", err)
		}
		return nil
	})
	out.Run = run
	return out, err
}

// UseLifeline spends one lifeline charge on the current round
func (s *EndlessService) UseLifeline(ctx context.Context, player models.Player, t models.LifelineType) (Outcome[endless.LifelineResult], error) {
	if !t.IsValid() {
		return Outcome[endless.LifelineResult]{}, ErrInvalidLifeline
	}

	var out Outcome[endless.LifelineResult]
	run, err := s.withController(ctx, player, func(c *endless.Controller) error {
		var err error
		out.Result, err = c.UseLifeline(t)
		if err != nil {
			return fmt.Errorf("failed to save lifeline use: %w", err)
		}
		return nil
	})
	// the screenshots are exposed through the round view; the name stays hidden
	out.Result.DoubleTrouble = nil
	out.Run = run
	return out, err
}

// OpenShop opens the shop when the streak allows it and returns its offers
func (s *EndlessService) OpenShop(ctx context.Context, player models.Player) (Outcome[endless.ShopResult], error) {
	var out Outcome[endless.ShopResult]
	run, err := s.withController(ctx, player, func(c *endless.Controller) error {
		var err error
		out.Result, err = c.OpenShop()
		if err != nil {
			return fmt.Errorf("failed to save shop visit: %w", err)
		}
		return nil
	})
	out.Run = run
	return out, err
}

// BuyShopItem buys one item from the open shop
func (s *EndlessService) BuyShopItem(ctx context.Context, player models.Player, itemID string) (Outcome[endless.ShopResult], error) {
	if !isShopItem(itemID) {
		return Outcome[endless.ShopResult]{}, ErrUnknownShopItem
	}

	var out Outcome[endless.ShopResult]
	run, err := s.withController(ctx, player, func(c *endless.Controller) error {
		var err error
		out.Result, err = c.BuyShopItem(itemID)
		if err != nil {
			return fmt.Errorf("failed to save purchase: %w", err)
		}
		return nil
	})
	out.Run = run
	return out, err
}

// CloseShop closes the shop for the current streak boundary
func (s *EndlessService) CloseShop(ctx context.Context, player models.Player) (RunView, error) {
	return s.withController(ctx, player, func(c *endless.Controller) error {
		if err := c.CloseShop(); err != nil {
			return fmt.Errorf("failed to close shop: %w", err)
		}
		return nil
	})
}

// Next moves past a decided round, or starts over after game over
func (s *EndlessService) Next(ctx context.Context, player models.Player) (Outcome[endless.NextResult], error) {
	var out Outcome[endless.NextResult]
	run, err := s.withController(ctx, player, func(c *endless.Controller) error {
		var err error
		out.Result, err = c.NextLevel()
		if err != nil {
			return fmt.Errorf("failed to advance run: %w", err)
		}
		return nil
	})
	out.Run = run
	return out, err
}

// Bonus resolves the open bonus round with the picked game
func (s *EndlessService) Bonus(ctx context.Context, player models.Player, gameID int64) (Outcome[endless.BonusResult], error) {
	var out Outcome[endless.BonusResult]
	run, err := s.withController(ctx, player, func(c *endless.Controller) error {
		var err error
		out.Result, err = c.SubmitBonusGuess(gameID)
		if err != nil {
			return fmt.Errorf("failed to save bonus pick: %w", err)
		}
		return nil
	})
	out.Run = run
	return out, err
}

// Leaderboard returns the top submitted scores. Without a leaderboard backend
// the list is empty.
func (s *EndlessService) Leaderboard(ctx context.Context, limit int) ([]cache.LeaderboardEntry, error) {
	if s.leaderboard == nil {
		return []cache.LeaderboardEntry{}, nil
	}
	entries, err := s.leaderboard.GetTop(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to read leaderboard: %w", err)
	}
	return entries, nil
}

// Rank returns the player's 1-based leaderboard position, or -1 when unranked
func (s *EndlessService) Rank(ctx context.Context, playerID string) (int64, error) {
	if s.leaderboard == nil {
		return -1, nil
	}
	return s.leaderboard.GetRank(ctx, playerID)
}

func isShopItem(id string) bool {
	for _, item := range endless.ShopItems() {
		if item.ID == id {
			return true
		}
	}
	return false
}
