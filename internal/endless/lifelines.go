package endless

import (
	"strings"

	"screenguess/internal/models"
	"screenguess/internal/redact"
)

const consultantOptions = 4

// LifelineResult carries whatever the lifeline revealed
type LifelineResult struct {
	Accepted      bool                 `json:"accepted"`
	Type          models.LifelineType  `json:"type"`
	Remaining     int                  `json:"remaining"`
	Anagram       string               `json:"anagram,omitempty"`
	Options       []models.GameSummary `json:"options,omitempty"`
	Cover         string               `json:"cover,omitempty"`
	Synopsis      string               `json:"synopsis,omitempty"`
	DoubleTrouble *models.Game         `json:"doubleTrouble,omitempty"`
	ZoomOut       bool                 `json:"zoomOut,omitempty"`
	RoundStatus   models.RoundStatus   `json:"roundStatus"`
}

// UseLifeline spends one charge of t on the current round
func (c *Controller) UseLifeline(t models.LifelineType) (LifelineResult, error) {
	s := c.state
	result := LifelineResult{Type: t, Remaining: s.Lifelines[t], RoundStatus: s.Round.Status}

	if !t.IsValid() || !c.canAct() || s.Lifelines[t] <= 0 {
		return result, nil
	}
	target, ok := c.Target()
	if !ok {
		return result, nil
	}

	c.dismissShop()

	s.Lifelines[t]--
	s.Round.LifelinesUsed = append(s.Round.LifelinesUsed, t)

	switch t {
	case models.LifelineSkip:
		s.Streak++
		s.Round.Status = models.RoundWon
		c.record(target, models.HistorySkipped, 0)
		c.resetHotStreak()
	case models.LifelineZoomOut:
		s.Round.ZoomOutActive = true
		result.ZoomOut = true
	case models.LifelineDoubleTrouble:
		if picked := c.pickGames(1, target.ID); len(picked) == 1 {
			s.Round.DoubleTroubleGameID = picked[0]
			alt := c.catalog[picked[0]]
			result.DoubleTrouble = &alt
		}
	case models.LifelineAnagram:
		result.Anagram = c.anagram(target.Name)
	case models.LifelineConsultant:
		result.Options = c.consultantOptions(target)
	case models.LifelineCoverPeek:
		result.Cover = target.Cover
	case models.LifelineSynopsis:
		result.Synopsis = redact.Redact(target.Summary, target.Name)
	}

	result.Accepted = true
	result.Remaining = s.Lifelines[t]
	result.RoundStatus = s.Round.Status
	return result, c.persist()
}

// anagram scrambles the letters of each word independently
func (c *Controller) anagram(name string) string {
	words := strings.Fields(strings.ToUpper(name))
	for i, w := range words {
		runes := []rune(w)
		c.rng.Shuffle(len(runes), func(a, b int) {
			runes[a], runes[b] = runes[b], runes[a]
		})
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}

// consultantOptions returns the target mixed with up to three decoys
func (c *Controller) consultantOptions(target models.Game) []models.GameSummary {
	ids := append(c.pickGames(consultantOptions-1, target.ID), target.ID)
	c.rng.Shuffle(len(ids), func(i, j int) {
		ids[i], ids[j] = ids[j], ids[i]
	})

	options := make([]models.GameSummary, 0, len(ids))
	for _, id := range ids {
		options = append(options, c.catalog[id].Summarize())
	}
	return options
}
