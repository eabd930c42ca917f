package endless

import (
	"encoding/json"
	"fmt"
	"strconv"

	"screenguess/internal/models"
)

// Keys of the two persisted records
const (
	RunStateKey  = "endless_run_state"
	HighScoreKey = "endless_high_score"
)

// Store is the load/save port for a single player's run. LoadRun returns
// nil, nil when nothing has been saved yet.
type Store interface {
	LoadRun() (*models.RunState, error)
	SaveRun(state *models.RunState) error
	LoadHighScore() (int, error)
	SaveHighScore(score int) error
}

// KeyValue stores opaque string blobs under fixed keys
type KeyValue interface {
	Get(key string) (value string, found bool, err error)
	Set(key, value string) error
}

// KeyValueStore persists run state as JSON blobs in a KeyValue
type KeyValueStore struct {
	kv KeyValue
}

// NewKeyValueStore wraps kv as a Store
func NewKeyValueStore(kv KeyValue) *KeyValueStore {
	return &KeyValueStore{kv: kv}
}

// LoadRun decodes the saved run state
func (s *KeyValueStore) LoadRun() (*models.RunState, error) {
	raw, found, err := s.kv.Get(RunStateKey)
	if err != nil {
		return nil, fmt.Errorf("failed to read run state: %w", err)
	}
	if !found || raw == "" {
		return nil, nil
	}

	var state models.RunState
	if err := json.Unmarshal([]byte(raw), &state); err != nil {
		return nil, fmt.Errorf("failed to decode run state: %w", err)
	}
	return &state, nil
}

// SaveRun encodes and writes the run state
func (s *KeyValueStore) SaveRun(state *models.RunState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to encode run state: %w", err)
	}
	return s.kv.Set(RunStateKey, string(data))
}

// LoadHighScore reads the cumulative high score
func (s *KeyValueStore) LoadHighScore() (int, error) {
	raw, found, err := s.kv.Get(HighScoreKey)
	if err != nil {
		return 0, fmt.Errorf("failed to read high score: %w", err)
	}
	if !found || raw == "" {
		return 0, nil
	}

	score, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("failed to decode high score: %w", err)
	}
	return score, nil
}

// SaveHighScore writes the cumulative high score
func (s *KeyValueStore) SaveHighScore(score int) error {
	return s.kv.Set(HighScoreKey, strconv.Itoa(score))
}

// MemoryKV is an in-process KeyValue
type MemoryKV struct {
	values map[string]string
}

// NewMemoryKV creates an empty MemoryKV
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{values: make(map[string]string)}
}

func (m *MemoryKV) Get(key string) (string, bool, error) {
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *MemoryKV) Set(key, value string) error {
	m.values[key] = value
	return nil
}

// NewMemoryStore returns a Store backed by a fresh MemoryKV
func NewMemoryStore() *KeyValueStore {
	return NewKeyValueStore(NewMemoryKV())
}
