package settingsstore

import (
	"errors"
	"os"

	"github.com/mrlokans/quotekeeper/internal/database"
	"gorm.io/gorm"
)

// Setting sources reported alongside effective values
const (
	SourceDatabase    = "database"
	SourceEnvironment = "environment"
	SourceDefault     = "default"
)

// Priority: database > environment > default
type SettingsStore struct {
	db *database.Database
}

func New(db *database.Database) *SettingsStore {
	return &SettingsStore{db: db}
}

// lookup resolves a setting and reports where its value came from.
func (s *SettingsStore) lookup(key, envName string) (string, string) {
	setting, err := s.db.GetSetting(key)
	if err == nil && setting.Value != "" {
		return setting.Value, SourceDatabase
	}
	if envVal := os.Getenv(envName); envVal != "" {
		return envVal, SourceEnvironment
	}
	return "", SourceDefault
}

func (s *SettingsStore) clear(keys ...string) error {
	for _, key := range keys {
		if err := s.db.DeleteSetting(key); err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
	}
	return nil
}
