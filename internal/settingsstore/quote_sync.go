package settingsstore

import (
	"strconv"
	"time"

	"github.com/mrlokans/quotekeeper/internal/entities"
	"github.com/robfig/cron/v3"
)

const (
	envQuoteSyncEnabled  = "QUOTE_SYNC_ENABLED"
	envQuoteSyncSchedule = "QUOTE_SYNC_SCHEDULE"

	// DefaultQuoteSyncSchedule matches the 30 second polling interval
	DefaultQuoteSyncSchedule = "@every 30s"
)

// Sync outcomes stored in the status record
const (
	SyncStatusSuccess = "success"
	SyncStatusFailed  = "failed"
)

// QuoteSyncConfig represents the effective configuration for quote sync
type QuoteSyncConfig struct {
	Enabled  bool   `json:"enabled"`
	Schedule string `json:"schedule"`
}

// QuoteSyncConfigInfo includes source information for each field
type QuoteSyncConfigInfo struct {
	Enabled       bool   `json:"enabled"`
	EnabledSource string `json:"enabled_source"`

	Schedule            string `json:"schedule"`
	ScheduleSource      string `json:"schedule_source"`
	ScheduleDescription string `json:"schedule_description"`
}

// QuoteSyncStatus represents the outcome of the last sync
type QuoteSyncStatus struct {
	LastSyncAt *time.Time `json:"last_sync_at,omitempty"`
	Status     string     `json:"status,omitempty"`  // "success", "failed", ""
	Message    string     `json:"message,omitempty"` // Notification text of the last run
	Conflicts  int        `json:"conflicts"`
}

func parseBool(v string) bool {
	return v == "true" || v == "1"
}

// GetQuoteSyncEnabled returns whether periodic sync is enabled (database > env > default)
func (s *SettingsStore) GetQuoteSyncEnabled() bool {
	value, source := s.lookup(entities.SettingKeyQuoteSyncEnabled, envQuoteSyncEnabled)
	if source == SourceDefault {
		return true
	}
	return parseBool(value)
}

func (s *SettingsStore) GetQuoteSyncEnabledSource() string {
	_, source := s.lookup(entities.SettingKeyQuoteSyncEnabled, envQuoteSyncEnabled)
	return source
}

func (s *SettingsStore) SetQuoteSyncEnabled(enabled bool) error {
	return s.db.SetSetting(entities.SettingKeyQuoteSyncEnabled, strconv.FormatBool(enabled))
}

// GetQuoteSyncSchedule returns the cron schedule (database > env > default)
func (s *SettingsStore) GetQuoteSyncSchedule() string {
	value, source := s.lookup(entities.SettingKeyQuoteSyncSchedule, envQuoteSyncSchedule)
	if source == SourceDefault {
		return DefaultQuoteSyncSchedule
	}
	return value
}

func (s *SettingsStore) GetQuoteSyncScheduleSource() string {
	_, source := s.lookup(entities.SettingKeyQuoteSyncSchedule, envQuoteSyncSchedule)
	return source
}

func (s *SettingsStore) SetQuoteSyncSchedule(schedule string) error {
	return s.db.SetSetting(entities.SettingKeyQuoteSyncSchedule, schedule)
}

func (s *SettingsStore) GetQuoteSyncConfig() QuoteSyncConfig {
	return QuoteSyncConfig{
		Enabled:  s.GetQuoteSyncEnabled(),
		Schedule: s.GetQuoteSyncSchedule(),
	}
}

func (s *SettingsStore) GetQuoteSyncConfigInfo() QuoteSyncConfigInfo {
	schedule := s.GetQuoteSyncSchedule()
	return QuoteSyncConfigInfo{
		Enabled:             s.GetQuoteSyncEnabled(),
		EnabledSource:       s.GetQuoteSyncEnabledSource(),
		Schedule:            schedule,
		ScheduleSource:      s.GetQuoteSyncScheduleSource(),
		ScheduleDescription: GetCronDescription(schedule),
	}
}

// GetQuoteSyncStatus returns the last recorded sync outcome
func (s *SettingsStore) GetQuoteSyncStatus() QuoteSyncStatus {
	status := QuoteSyncStatus{}

	if setting, err := s.db.GetSetting(entities.SettingKeyQuoteSyncLastAt); err == nil && setting.Value != "" {
		if ts, err := time.Parse(time.RFC3339, setting.Value); err == nil {
			status.LastSyncAt = &ts
		}
	}
	if setting, err := s.db.GetSetting(entities.SettingKeyQuoteSyncLastStatus); err == nil {
		status.Status = setting.Value
	}
	if setting, err := s.db.GetSetting(entities.SettingKeyQuoteSyncLastMessage); err == nil {
		status.Message = setting.Value
	}
	if setting, err := s.db.GetSetting(entities.SettingKeyQuoteSyncConflicts); err == nil && setting.Value != "" {
		if count, err := strconv.Atoi(setting.Value); err == nil {
			status.Conflicts = count
		}
	}

	return status
}

// SetQuoteSyncStatus records the outcome of a sync run
func (s *SettingsStore) SetQuoteSyncStatus(status, message string, conflicts int) error {
	now := time.Now().UTC().Format(time.RFC3339)

	if err := s.db.SetSetting(entities.SettingKeyQuoteSyncLastAt, now); err != nil {
		return err
	}
	if err := s.db.SetSetting(entities.SettingKeyQuoteSyncLastStatus, status); err != nil {
		return err
	}
	if err := s.db.SetSetting(entities.SettingKeyQuoteSyncLastMessage, message); err != nil {
		return err
	}
	return s.db.SetSetting(entities.SettingKeyQuoteSyncConflicts, strconv.Itoa(conflicts))
}

// ClearQuoteSyncSettings removes database overrides, reverting to env/default
func (s *SettingsStore) ClearQuoteSyncSettings() error {
	return s.clear(entities.SettingKeyQuoteSyncEnabled, entities.SettingKeyQuoteSyncSchedule)
}

// Parser accepts standard 5-field expressions and descriptors such as "@every 30s"
var scheduleParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)

// ScheduleParser is shared with the scheduler so validation and execution agree.
func ScheduleParser() cron.Parser {
	return scheduleParser
}

func ValidateCronSchedule(schedule string) error {
	_, err := scheduleParser.Parse(schedule)
	return err
}

// GetCronDescription returns a human-readable description of a cron schedule
func GetCronDescription(schedule string) string {
	switch schedule {
	case "@every 30s":
		return "Every 30 seconds"
	case "@every 1m", "* * * * *":
		return "Every minute"
	case "*/5 * * * *":
		return "Every 5 minutes"
	case "*/15 * * * *":
		return "Every 15 minutes"
	case "@hourly", "0 * * * *":
		return "Every hour at :00"
	case "@daily", "0 0 * * *":
		return "Daily at midnight"
	default:
		return "Custom schedule: " + schedule
	}
}

// GetNextRunTime calculates when the next sync will run based on the schedule
func GetNextRunTime(schedule string) (*time.Time, error) {
	sched, err := scheduleParser.Parse(schedule)
	if err != nil {
		return nil, err
	}
	next := sched.Next(time.Now())
	return &next, nil
}
