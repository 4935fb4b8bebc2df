package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/robfig/cron/v3"

	"github.com/mrlokans/quotekeeper/internal/services"
	"github.com/mrlokans/quotekeeper/internal/settingsstore"
)

// Syncer runs a single quote sync.
type Syncer interface {
	Sync(ctx context.Context) (services.SyncResult, error)
	IsSyncing() bool
}

// SyncConfigProvider resolves the effective sync settings.
type SyncConfigProvider interface {
	GetQuoteSyncConfig() settingsstore.QuoteSyncConfig
}

// QuoteSyncScheduler triggers periodic quote syncs
type QuoteSyncScheduler struct {
	settings SyncConfigProvider
	syncer   Syncer
	timeout  time.Duration
	logger   *log.Logger

	cron      *cron.Cron
	entryID   cron.EntryID
	mu        sync.RWMutex
	isRunning bool
	stopCh    chan struct{} // closed when the current run stops
}

// NewQuoteSyncScheduler creates a new scheduler instance. timeout bounds
// each scheduled run.
func NewQuoteSyncScheduler(settings SyncConfigProvider, syncer Syncer, timeout time.Duration) *QuoteSyncScheduler {
	if timeout <= 0 {
		timeout = time.Minute
	}
	return &QuoteSyncScheduler{
		settings: settings,
		syncer:   syncer,
		timeout:  timeout,
		logger:   log.Default().WithPrefix("scheduler"),
		cron:     newCron(),
	}
}

func newCron() *cron.Cron {
	return cron.New(cron.WithParser(settingsstore.ScheduleParser()))
}

// Start begins the scheduler if sync is enabled
func (s *QuoteSyncScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	config := s.settings.GetQuoteSyncConfig()
	if !config.Enabled {
		s.logger.Info("Quote sync scheduler disabled")
		return nil
	}

	if err := settingsstore.ValidateCronSchedule(config.Schedule); err != nil {
		return fmt.Errorf("invalid cron schedule '%s': %w", config.Schedule, err)
	}

	// A stopped cron cannot be reused for a new schedule
	s.cron = newCron()
	entryID, err := s.cron.AddFunc(config.Schedule, func() {
		s.runSync()
	})
	if err != nil {
		return fmt.Errorf("failed to schedule sync job: %w", err)
	}
	s.entryID = entryID

	stopCh := make(chan struct{})
	s.stopCh = stopCh

	s.cron.Start()
	s.isRunning = true

	nextRun, _ := settingsstore.GetNextRunTime(config.Schedule)
	s.logger.Info("Quote sync scheduler started",
		"schedule", config.Schedule,
		"description", settingsstore.GetCronDescription(config.Schedule),
		"next_run", nextRun)

	// Cancelling ctx stops this run only, never one started later
	go func() {
		select {
		case <-ctx.Done():
			s.stopRun(stopCh)
		case <-stopCh:
		}
	}()

	return nil
}

// Stop waits for a running job to complete before returning
func (s *QuoteSyncScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopLocked()
}

func (s *QuoteSyncScheduler) stopRun(stopCh chan struct{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopCh != stopCh {
		return
	}
	s.stopLocked()
}

func (s *QuoteSyncScheduler) stopLocked() {
	if !s.isRunning {
		return
	}

	ctx := s.cron.Stop()
	<-ctx.Done()

	s.isRunning = false
	close(s.stopCh)
	s.stopCh = nil

	s.logger.Info("Quote sync scheduler stopped")
}

// Reschedule applies changed settings
func (s *QuoteSyncScheduler) Reschedule() error {
	s.Stop()
	return s.Start(context.Background())
}

// RunNow triggers an immediate sync in the background
func (s *QuoteSyncScheduler) RunNow() {
	go s.runSync()
}

func (s *QuoteSyncScheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

func (s *QuoteSyncScheduler) IsSyncing() bool {
	return s.syncer.IsSyncing()
}

// GetNextRunTime returns when the next sync will occur
func (s *QuoteSyncScheduler) GetNextRunTime() *time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning {
		return nil
	}

	for _, entry := range s.cron.Entries() {
		if entry.ID == s.entryID {
			t := entry.Next
			return &t
		}
	}
	return nil
}

func (s *QuoteSyncScheduler) runSync() {
	ctx, cancel := context.WithTimeout(services.WithTrigger(context.Background(), services.TriggerScheduler), s.timeout)
	defer cancel()

	result, err := s.syncer.Sync(ctx)
	switch {
	case errors.Is(err, services.ErrSyncInProgress):
		s.logger.Info("Quote sync skipped (already syncing)")
	case err != nil:
		// Failure is already reported to the user; the next tick retries
		s.logger.Warn("Quote sync failed", "err", err)
	default:
		s.logger.Debug("Quote sync finished", "conflicts", result.Conflicts, "total", result.Total)
	}
}
