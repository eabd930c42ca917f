// Package scheduler decides the order in which catalog games are presented.
package scheduler

import "screenguess/internal/models"

const (
	minFriendlyRating  = 88.0
	friendlyRatingSpan = 3.0
	minFriendlyYear    = 2010
	friendlyYearSpan   = 6
)

// earlyFriendlyOdds is the chance that position i of a run draws from the friendly pools
var earlyFriendlyOdds = []float64{1.0, 0.9, 0.7, 0.4, 0.3}

// EndlessOrder returns every catalog id exactly once, biasing the first few
// positions towards well-rated or recent games.
func EndlessOrder(games []models.Game, rng RandomSource) []int64 {
	var rated, recent, standard []int64

	for _, g := range games {
		ratingThreshold := minFriendlyRating + rng.Float64()*friendlyRatingSpan
		yearThreshold := minFriendlyYear + rng.Intn(friendlyYearSpan)

		switch {
		case float64(g.Rating) >= ratingThreshold:
			rated = append(rated, g.ID)
		case g.Year >= yearThreshold:
			recent = append(recent, g.ID)
		default:
			standard = append(standard, g.ID)
		}
	}

	shuffleIDs(rated, rng)
	shuffleIDs(recent, rng)
	shuffleIDs(standard, rng)

	order := make([]int64, 0, len(games))
	pop := func(pool *[]int64) int64 {
		id := (*pool)[0]
		*pool = (*pool)[1:]
		return id
	}

	for i := 0; i < len(earlyFriendlyOdds); i++ {
		if len(rated)+len(recent)+len(standard) == 0 {
			break
		}

		wantFriendly := rng.Float64() < earlyFriendlyOdds[i]
		switch {
		case wantFriendly && len(rated) > 0 && len(recent) > 0:
			if rng.Float64() < 0.5 {
				order = append(order, pop(&rated))
			} else {
				order = append(order, pop(&recent))
			}
		case wantFriendly && len(rated) > 0:
			order = append(order, pop(&rated))
		case wantFriendly && len(recent) > 0:
			order = append(order, pop(&recent))
		case len(standard) > 0:
			order = append(order, pop(&standard))
		case len(rated) > 0:
			order = append(order, pop(&rated))
		default:
			order = append(order, pop(&recent))
		}
	}

	rest := make([]int64, 0, len(rated)+len(recent)+len(standard))
	rest = append(rest, rated...)
	rest = append(rest, recent...)
	rest = append(rest, standard...)
	shuffleIDs(rest, rng)

	return append(order, rest...)
}

func shuffleIDs(ids []int64, rng RandomSource) {
	rng.Shuffle(len(ids), func(i, j int) {
		ids[i], ids[j] = ids[j], ids[i]
	})
}
