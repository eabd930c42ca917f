package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"go.uber.org/zap"

	"screenguess/internal/models"
	"screenguess/internal/repository"
	"screenguess/internal/validation"
)

const shareIDLength = 10

// ShareStore persists shared runs
type ShareStore interface {
	Create(run *models.SharedRun) error
	GetByID(id string) (*models.SharedRun, error)
	ListByPlayer(playerID string, limit int) ([]models.SharedRun, error)
}

// Mailer sends share links
type Mailer interface {
	IsEnabled() bool
	SendRunShare(ctx context.Context, toEmail, nickname, shareURL string, score, streak int) error
}

// ShareResult is returned after a run is saved for sharing
type ShareResult struct {
	ID      string `json:"id"`
	URL     string `json:"url"`
	Emailed bool   `json:"emailed"`
}

// ShareService saves run histories under opaque ids
type ShareService struct {
	store   ShareStore
	endless *EndlessService
	mailer  Mailer
	baseURL string
	logger  *zap.Logger
	newID   func() (string, error)
	now     func() time.Time
}

// NewShareService creates a new share service. mailer may be nil.
func NewShareService(store ShareStore, endless *EndlessService, mailer Mailer, appBaseURL string, logger *zap.Logger) *ShareService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ShareService{
		store:   store,
		endless: endless,
		mailer:  mailer,
		baseURL: strings.TrimRight(appBaseURL, "/"),
		logger:  logger,
		newID:   func() (string, error) { return gonanoid.New(shareIDLength) },
		now:     time.Now,
	}
}

// ShareRun snapshots the player's current run. When email is set the link is
// also mailed to that address.
func (s *ShareService) ShareRun(ctx context.Context, player models.Player, email string) (*ShareResult, error) {
	email = strings.TrimSpace(email)
	if email != "" {
		if err := validation.ValidateEmail(email); err != nil {
			return nil, err
		}
		if s.mailer == nil || !s.mailer.IsEnabled() {
			return nil, ErrEmailDisabled
		}
	}

	state, err := s.endless.Snapshot(ctx, player)
	if err != nil {
		return nil, err
	}

	id, err := s.newID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate share id: %w", err)
	}

	history := state.History
	if history == nil {
		history = []models.HistoryEntry{}
	}
	run := &models.SharedRun{
		ID:        id,
		PlayerID:  player.ID,
		Nickname:  player.Nickname,
		Score:     state.Score,
		Streak:    state.Streak,
		Completed: state.IsGameOver,
		History:   history,
		CreatedAt: s.now(),
	}
	if err := s.store.Create(run); err != nil {
		return nil, fmt.Errorf("failed to save shared run: %w", err)
	}

	result := &ShareResult{ID: id, URL: s.ShareURL(id)}
	s.logger.Info("Run shared",
		zap.String("share_id", id),
		zap.String("player_id", player.ID),
		zap.Int("score", run.Score))

	if email != "" {
		if err := s.mailer.SendRunShare(ctx, email, player.Nickname, result.URL, run.Score, run.Streak); err != nil {
			return result, err
		}
		result.Emailed = true
	}
	return result, nil
}

// ShareURL builds the public link for a shared run
func (s *ShareService) ShareURL(id string) string {
	return fmt.Sprintf("%s/share/%s", s.baseURL, id)
}

// GetSharedRun fetches a shared run by id
func (s *ShareService) GetSharedRun(id string) (*models.SharedRun, error) {
	run, err := s.store.GetByID(id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrShareNotFound
		}
		return nil, fmt.Errorf("failed to load shared run: %w", err)
	}
	return run, nil
}

// ListForPlayer returns the player's most recent shares
func (s *ShareService) ListForPlayer(playerID string, limit int) ([]models.SharedRun, error) {
	runs, err := s.store.ListByPlayer(playerID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list shared runs: %w", err)
	}
	return runs, nil
}
