// Package audit records the activity history of the quote store: imports,
// exports and syncs together with where they came from.
package audit

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/log"

	"github.com/mrlokans/quotekeeper/internal/database/activity"
	"github.com/mrlokans/quotekeeper/internal/entities"
)

// Service provides high-level activity logging.
type Service struct {
	repo   *activity.Repository
	logger *log.Logger
	wg     sync.WaitGroup
}

func NewService(repo *activity.Repository) *Service {
	return &Service{repo: repo, logger: log.Default().WithPrefix("audit")}
}

// Log records an event synchronously.
func (s *Service) Log(event *entities.ActivityEvent) error {
	return s.repo.LogEvent(event)
}

// LogAsync records an event in the background. Wait blocks until every
// pending write has finished.
func (s *Service) LogAsync(event *entities.ActivityEvent) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		if err := s.repo.LogEvent(event); err != nil {
			s.logger.Warn("Failed to log activity event", "type", event.Type, "err", err)
		}
	}()
}

func (s *Service) Wait() {
	s.wg.Wait()
}

// LogImport records an import of a quotes file.
func (s *Service) LogImport(source string, imported, total int, strict bool, err error) {
	event := newEvent(entities.ActivityImport, source, fmt.Sprintf("Imported %d quotes", imported), err)
	event.Metadata = metadata(map[string]any{
		"imported": imported,
		"total":    total,
		"strict":   strict,
	})
	if err != nil {
		event.Description = "Import rejected"
	}
	s.LogAsync(event)
}

// LogExport records an export of the store.
func (s *Service) LogExport(source string, count int, err error) {
	event := newEvent(entities.ActivityExport, source, fmt.Sprintf("Exported %d quotes", count), err)
	s.LogAsync(event)
}

// LogSync records the outcome of a sync.
func (s *Service) LogSync(source string, fetched, conflicts, added int, err error) {
	description := fmt.Sprintf("Synced %d server quotes, %d conflicts", fetched, conflicts)
	if err != nil {
		description = "Sync failed"
	}
	event := newEvent(entities.ActivitySync, source, description, err)
	if err == nil {
		event.Metadata = metadata(map[string]any{
			"fetched":   fetched,
			"conflicts": conflicts,
			"added":     added,
		})
	}
	s.LogAsync(event)
}

// Events returns a page of events, most recent first.
func (s *Service) Events(eventType entities.ActivityType, limit, offset int) ([]entities.ActivityEvent, int64, error) {
	return s.repo.GetEvents(eventType, limit, offset)
}

// DeleteOldEvents removes events older than retention.
func (s *Service) DeleteOldEvents(retention time.Duration) (int64, error) {
	return s.repo.DeleteOldEvents(time.Now().Add(-retention))
}

func newEvent(eventType entities.ActivityType, source, description string, err error) *entities.ActivityEvent {
	event := &entities.ActivityEvent{
		Type:        eventType,
		Source:      source,
		Description: description,
		Status:      entities.ActivityStatusSuccess,
	}
	if err != nil {
		event.Status = entities.ActivityStatusFailed
		event.ErrorMsg = truncate(err.Error(), 500)
	}
	return event
}

func metadata(fields map[string]any) string {
	data, err := json.Marshal(fields)
	if err != nil {
		return ""
	}
	return string(data)
}

// truncate shortens s to at most maxLen bytes without splitting a rune.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	cut := maxLen - 3
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}
