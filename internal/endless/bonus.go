package endless

import "screenguess/internal/models"

const (
	bonusRoundChance  = 0.1
	bonusRoundOptions = 5
	bonusMinStreak    = 2
)

// BonusResult describes the outcome of a bonus-round pick
type BonusResult struct {
	Accepted bool   `json:"accepted"`
	Correct  bool   `json:"correct"`
	Points   int    `json:"points"`
	TargetID int64  `json:"targetId"`
	Answer   string `json:"answer"`
}

// maybeStartBonus rolls for a bonus round. The roll is only taken once the
// run is eligible, at most once per five-round block.
func (c *Controller) maybeStartBonus() bool {
	s := c.state
	if s.Streak < bonusMinStreak || s.Streak%difficultyStep == 0 || s.HasBonusRoundOccurredInCurrentBlock {
		return false
	}
	if c.rng.Float64() >= bonusRoundChance {
		return false
	}

	// keep the next round's answer out of the prompt
	var upcoming int64
	if i := s.CurrentIndex + 1; i < len(s.GameOrder) {
		upcoming = s.GameOrder[i]
	}
	ids := c.pickGames(bonusRoundOptions, upcoming)
	if len(ids) < bonusRoundOptions {
		return false
	}
	target := c.catalog[ids[c.rng.Intn(len(ids))]]

	s.BonusRound = &models.BonusRound{
		GameIDs:    ids,
		TargetID:   target.ID,
		TargetName: target.Name,
	}
	s.HasBonusRoundOccurredInCurrentBlock = true
	return true
}

// SubmitBonusGuess resolves the bonus round with the picked game. Either
// outcome extends the streak; a wrong pick never ends the run.
func (c *Controller) SubmitBonusGuess(pickedID int64) (BonusResult, error) {
	s := c.state
	bonus := s.BonusRound
	if bonus == nil || s.IsGameOver {
		return BonusResult{}, nil
	}

	offered := false
	for _, id := range bonus.GameIDs {
		if id == pickedID {
			offered = true
			break
		}
	}
	if !offered {
		return BonusResult{}, nil
	}

	correct := pickedID == bonus.TargetID
	points := 0
	status := models.HistoryLost
	outcome := models.OutcomeWrong
	if correct {
		points = BonusRoundPoints(s.Streak, s.IsHotStreakActive)
		status = models.HistoryWon
		outcome = models.OutcomeCorrect
	}

	s.Score += points
	if s.Score > s.HighScore {
		s.HighScore = s.Score
	}
	s.Streak++
	s.History = append(s.History, models.HistoryEntry{
		GameID:        bonus.TargetID,
		PointsAwarded: points,
		Status:        status,
		Guesses:       []models.GuessRecord{{Name: c.catalog[pickedID].Name, Outcome: outcome}},
		LifelinesUsed: []models.LifelineType{},
		CorrectAnswer: bonus.TargetName,
		CropPositions: []models.CropPosition{},
		BonusRound:    true,
	})
	s.BonusRound = nil
	if s.Streak%difficultyStep == 0 {
		s.HasBonusRoundOccurredInCurrentBlock = false
	}

	return BonusResult{
		Accepted: true,
		Correct:  correct,
		Points:   points,
		TargetID: bonus.TargetID,
		Answer:   bonus.TargetName,
	}, c.persist()
}
