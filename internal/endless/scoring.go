package endless

// basePoints is indexed by the 1-based winning guess count
var basePoints = []int{5, 3, 2, 1, 1}

const (
	difficultyStep     = 5
	hotStreakThreshold = 3
	hotStreakMaxGuess  = 2
	bonusRoundBase     = 2
)

// BasePoints returns the points for winning on the given attempt (floor of 1)
func BasePoints(guessCount int) int {
	if guessCount < 1 {
		guessCount = 1
	}
	if guessCount > len(basePoints) {
		return basePoints[len(basePoints)-1]
	}
	return basePoints[guessCount-1]
}

// DifficultyBonus is the flat bonus earned every five rounds of streak
func DifficultyBonus(streak int) int {
	if streak < 0 {
		return 0
	}
	return streak / difficultyStep
}

// RoundPoints is the award for a normal-round win
func RoundPoints(guessCount, streak int, hotStreak bool) int {
	points := BasePoints(guessCount) + DifficultyBonus(streak)
	if hotStreak {
		points *= 2
	}
	return points
}

// BonusRoundPoints is the award for a correct bonus-round pick
func BonusRoundPoints(streak int, hotStreak bool) int {
	points := bonusRoundBase + DifficultyBonus(streak)
	if hotStreak {
		points *= 2
	}
	return points
}
