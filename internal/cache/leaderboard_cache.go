// Package cache holds the Redis-backed endless-mode leaderboard.
package cache

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/redis/go-redis/v9"
)

// LeaderboardCache keeps each player's best finished-run score
type LeaderboardCache interface {
	SubmitScore(ctx context.Context, playerID, nickname string, score int) error
	GetTop(ctx context.Context, limit int) ([]LeaderboardEntry, error)
	GetRank(ctx context.Context, playerID string) (int64, error)
}

// LeaderboardEntry represents a single leaderboard entry
type LeaderboardEntry struct {
	PlayerID string `json:"playerId"`
	Nickname string `json:"nickname"`
	Score    int    `json:"score"`
	Rank     int    `json:"rank"`
}

type leaderboardCache struct {
	client *redis.Client
	key    string
}

// NewLeaderboardCache creates a Redis ZSET leaderboard stored under key
func NewLeaderboardCache(client *redis.Client, key string) LeaderboardCache {
	return &leaderboardCache{
		client: client,
		key:    key,
	}
}

func (c *leaderboardCache) namesKey() string {
	return c.key + ":names"
}

// SubmitScore only ever raises a player's stored score
func (c *leaderboardCache) SubmitScore(ctx context.Context, playerID, nickname string, score int) error {
	pipe := c.client.TxPipeline()
	pipe.ZAddGT(ctx, c.key, redis.Z{
		Score:  float64(score),
		Member: playerID,
	})
	if nickname != "" {
		pipe.HSet(ctx, c.namesKey(), playerID, nickname)
	}
	_, err := pipe.Exec(ctx)
	return err
}

func (c *leaderboardCache) GetTop(ctx context.Context, limit int) ([]LeaderboardEntry, error) {
	if limit <= 0 {
		return []LeaderboardEntry{}, nil
	}

	results, err := c.client.ZRevRangeWithScores(ctx, c.key, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, err
	}

	entries := make([]LeaderboardEntry, len(results))
	ids := make([]string, len(results))
	for i, z := range results {
		id, _ := z.Member.(string)
		ids[i] = id
		entries[i] = LeaderboardEntry{
			PlayerID: id,
			Score:    int(z.Score),
			Rank:     i + 1,
		}
	}

	if len(ids) > 0 {
		names, err := c.client.HMGet(ctx, c.namesKey(), ids...).Result()
		if err != nil {
			return nil, err
		}
		for i, n := range names {
			if s, ok := n.(string); ok {
				entries[i].Nickname = s
			}
		}
	}
	return entries, nil
}

func (c *leaderboardCache) GetRank(ctx context.Context, playerID string) (int64, error) {
	rank, err := c.client.ZRevRank(ctx, c.key, playerID).Result()
	if errors.Is(err, redis.Nil) {
		return -1, nil
	}
	if err != nil {
		return -1, err
	}
	return rank + 1, nil // 1-indexed
}

// MemoryLeaderboard is an in-process LeaderboardCache used when Redis is not configured
type MemoryLeaderboard struct {
	mu     sync.RWMutex
	scores map[string]int
	names  map[string]string
}

// NewMemoryLeaderboard creates an empty in-process leaderboard
func NewMemoryLeaderboard() *MemoryLeaderboard {
	return &MemoryLeaderboard{
		scores: make(map[string]int),
		names:  make(map[string]string),
	}
}

func (m *MemoryLeaderboard) SubmitScore(ctx context.Context, playerID, nickname string, score int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if current, ok := m.scores[playerID]; !ok || score > current {
		m.scores[playerID] = score
	}
	if nickname != "" {
		m.names[playerID] = nickname
	}
	return nil
}

func (m *MemoryLeaderboard) ranked() []LeaderboardEntry {
	entries := make([]LeaderboardEntry, 0, len(m.scores))
	for id, score := range m.scores {
		entries = append(entries, LeaderboardEntry{PlayerID: id, Nickname: m.names[id], Score: score})
	}
	// ties break the way a Redis ZSET does in reverse order: higher member first
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Score != entries[j].Score {
			return entries[i].Score > entries[j].Score
		}
		return entries[i].PlayerID > entries[j].PlayerID
	})
	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries
}

func (m *MemoryLeaderboard) GetTop(ctx context.Context, limit int) ([]LeaderboardEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	entries := m.ranked()
	if limit < 0 {
		limit = 0
	}
	if len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

func (m *MemoryLeaderboard) GetRank(ctx context.Context, playerID string) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, e := range m.ranked() {
		if e.PlayerID == playerID {
			return int64(e.Rank), nil
		}
	}
	return -1, nil
}
