package entities

import (
	"time"
)

type Setting struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Key       string    `gorm:"uniqueIndex;size:100" json:"key"`
	Value     string    `gorm:"type:text" json:"value"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Setting) TableName() string {
	return "settings"
}

// Known setting keys
const (
	// Quote store snapshot and the selected category filter
	SettingKeyQuotes                 = "quotes"
	SettingKeySelectedCategoryFilter = "selectedCategoryFilter"

	// Quote sync settings
	SettingKeyQuoteSyncEnabled     = "quote_sync_enabled"
	SettingKeyQuoteSyncSchedule    = "quote_sync_schedule"
	SettingKeyQuoteSyncLastAt      = "quote_sync_last_at"
	SettingKeyQuoteSyncLastStatus  = "quote_sync_last_status"
	SettingKeyQuoteSyncLastMessage = "quote_sync_last_message"
	SettingKeyQuoteSyncConflicts   = "quote_sync_conflicts"
)

// SessionKeyLastViewedQuote is the session-scoped key holding the last displayed quote.
const SessionKeyLastViewedQuote = "lastViewedQuote"
