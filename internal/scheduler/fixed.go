package scheduler

import "screenguess/internal/models"

// DefaultSeed keeps the standard-mode ordering identical for every player
const DefaultSeed int64 = 20240611

// FixedOrder keeps the first pinned catalog entries in place and permutes the
// remainder with a seeded shuffle, so every player sees the same levels.
func FixedOrder(games []models.Game, pinned int, seed int64) []models.Game {
	if pinned < 0 {
		pinned = 0
	}
	if pinned > len(games) {
		pinned = len(games)
	}

	ordered := make([]models.Game, len(games))
	copy(ordered, games)

	tail := ordered[pinned:]
	rng := NewSeededRandom(seed)
	rng.Shuffle(len(tail), func(i, j int) {
		tail[i], tail[j] = tail[j], tail[i]
	})

	return ordered
}

// FixedOrderIDs is FixedOrder reduced to catalog ids
func FixedOrderIDs(games []models.Game, pinned int, seed int64) []int64 {
	ordered := FixedOrder(games, pinned, seed)
	ids := make([]int64, len(ordered))
	for i, g := range ordered {
		ids[i] = g.ID
	}
	return ids
}

// RemapProgress moves progress keyed by 1-indexed level number from oldOrder
// to newOrder by catalog id. Levels whose id cannot be located keep their
// original number unless a remapped entry already claimed it.
func RemapProgress[T any](progress map[int]T, oldOrder, newOrder []int64) map[int]T {
	newPosition := make(map[int64]int, len(newOrder))
	for i, id := range newOrder {
		newPosition[id] = i + 1
	}

	remapped := make(map[int]T, len(progress))
	var unresolved []int

	for level, value := range progress {
		if level >= 1 && level <= len(oldOrder) {
			if target, ok := newPosition[oldOrder[level-1]]; ok {
				remapped[target] = value
				continue
			}
		}
		unresolved = append(unresolved, level)
	}

	for _, level := range unresolved {
		if _, taken := remapped[level]; !taken {
			remapped[level] = progress[level]
		}
	}

	return remapped
}
