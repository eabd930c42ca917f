package repository

import (
	"database/sql"
	"encoding/json"
	"errors"

	"screenguess/internal/database"
)

const standardOrderKey = "standard_order"

type SettingsRepository struct {
	db *database.DB
}

func NewSettingsRepository(db *database.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// GetSetting retrieves a setting value by key
func (r *SettingsRepository) GetSetting(key string) (string, error) {
	var value string
	query := `SELECT setting_value FROM settings WHERE setting_key = ?`
	err := r.db.QueryRow(query, key).Scan(&value)
	return value, err
}

// SetSetting updates or inserts a setting
func (r *SettingsRepository) SetSetting(key, value string) error {
	query := r.db.Dialect.Upsert("settings", []string{"setting_key", "setting_value"}, []string{"setting_key"})
	_, err := r.db.Exec(query, key, value)
	return err
}

// GetStandardOrder returns the level ordering last used in standard mode.
// A nil slice means none has been recorded.
func (r *SettingsRepository) GetStandardOrder() ([]int64, error) {
	value, err := r.GetSetting(standardOrderKey)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var order []int64
	if err := json.Unmarshal([]byte(value), &order); err != nil {
		return nil, err
	}
	return order, nil
}

// SetStandardOrder records the level ordering in use
func (r *SettingsRepository) SetStandardOrder(order []int64) error {
	data, err := json.Marshal(order)
	if err != nil {
		return err
	}
	return r.SetSetting(standardOrderKey, string(data))
}
