package database

import (
	"fmt"

	"github.com/charmbracelet/log"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/quotekeeper/internal/database/activity"
	"github.com/mrlokans/quotekeeper/internal/database/settings"
	"github.com/mrlokans/quotekeeper/internal/entities"
)

// Database owns the gorm connection. It implements the key-value
// persistence adapter used by the quote service on top of the settings table.
type Database struct {
	DB       *gorm.DB
	settings *settings.Repository
	activity *activity.Repository
}

func NewDatabase(dbPath string) (*Database, error) {
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.AutoMigrate(&entities.Setting{}, &entities.ActivityEvent{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	log.Info("Database initialized", "path", dbPath)

	return &Database{
		DB:       db,
		settings: settings.NewRepository(db),
		activity: activity.NewRepository(db),
	}, nil
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Ping checks that the underlying connection is usable.
func (d *Database) Ping() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

func (d *Database) GetSetting(key string) (*entities.Setting, error) {
	return d.settings.GetSetting(key)
}

func (d *Database) SetSetting(key, value string) error {
	return d.settings.SetSetting(key, value)
}

func (d *Database) DeleteSetting(key string) error {
	return d.settings.DeleteSetting(key)
}

// Load returns the value saved under key, reporting whether it exists.
func (d *Database) Load(key string) (string, bool, error) {
	return d.settings.Load(key)
}

// Save overwrites the value stored under key.
func (d *Database) Save(key, value string) error {
	return d.settings.Save(key, value)
}

// Activity returns the import, export and sync history repository.
func (d *Database) Activity() *activity.Repository {
	return d.activity
}
