package services

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/charmbracelet/log"
)

// Notification texts shown after a sync
const (
	SyncNoConflictsMessage = "Quotes synced with server. No conflicts found."
	SyncFailedMessage      = "Sync failed: could not reach the server."
)

// Stored sync outcomes
const (
	syncStatusSuccess = "success"
	syncStatusFailed  = "failed"
)

// SyncConflictsMessage is the notification text for a sync that overwrote
// local records.
func SyncConflictsMessage(conflicts int) string {
	return fmt.Sprintf("Quotes synced with server. %d conflict(s) resolved, server data applied.", conflicts)
}

// SyncService pulls the server quote set and reconciles it into the local
// store. Only one sync runs at a time, whichever trigger started it.
type SyncService struct {
	quotes   *QuoteService
	source   QuoteSource
	notifier Notifier
	status   SyncStatusRecorder
	activity ActivityRecorder
	logger   *log.Logger

	inFlight atomic.Bool
}

func NewSyncService(quotes *QuoteService, source QuoteSource, notifier Notifier, status SyncStatusRecorder) *SyncService {
	return &SyncService{
		quotes:   quotes,
		source:   source,
		notifier: notifier,
		status:   status,
		logger:   log.Default().WithPrefix("sync"),
	}
}

// SetActivity enables activity logging of every sync outcome.
func (s *SyncService) SetActivity(activity ActivityRecorder) {
	s.activity = activity
}

// IsSyncing reports whether a sync is currently running.
func (s *SyncService) IsSyncing() bool {
	return s.inFlight.Load()
}

// Sync fetches the server set and applies it. ErrSyncInProgress is returned
// without side effects when another sync is running.
func (s *SyncService) Sync(ctx context.Context) (SyncResult, error) {
	if !s.inFlight.CompareAndSwap(false, true) {
		return SyncResult{}, ErrSyncInProgress
	}
	defer s.inFlight.Store(false)

	s.logger.Info("Fetching quotes from server")

	incoming, err := s.source.Fetch(ctx)
	if err != nil {
		s.logger.Error("Fetch failed", "err", err)
		s.fail()
		s.logActivity(ctx, 0, 0, 0, err)
		return SyncResult{}, fmt.Errorf("%w: %w", ErrSyncFailed, err)
	}

	result, err := s.quotes.Reconcile(incoming)
	if err != nil {
		s.logger.Error("Failed to apply server quotes", "err", err)
		s.fail()
		s.logActivity(ctx, len(incoming), 0, 0, err)
		return SyncResult{}, fmt.Errorf("%w: %w", ErrSyncFailed, err)
	}

	message := SyncNoConflictsMessage
	if result.Conflicts > 0 {
		message = SyncConflictsMessage(result.Conflicts)
	}
	s.notifier.Info(message)
	s.record(syncStatusSuccess, message, result.Conflicts)

	s.logActivity(ctx, len(incoming), result.Conflicts, result.Added, nil)

	s.logger.Info("Sync complete", "trigger", TriggerFrom(ctx), "fetched", len(incoming), "conflicts", result.Conflicts, "added", result.Added)

	return SyncResult{
		Fetched:   len(incoming),
		Conflicts: result.Conflicts,
		Added:     result.Added,
		Total:     len(result.Quotes),
		Message:   message,
	}, nil
}

func (s *SyncService) fail() {
	s.notifier.Error(SyncFailedMessage)
	s.record(syncStatusFailed, SyncFailedMessage, 0)
}

func (s *SyncService) record(status, message string, conflicts int) {
	if s.status == nil {
		return
	}
	if err := s.status.SetQuoteSyncStatus(status, message, conflicts); err != nil {
		s.logger.Warn("Failed to record sync status", "err", err)
	}
}

func (s *SyncService) logActivity(ctx context.Context, fetched, conflicts, added int, err error) {
	if s.activity == nil {
		return
	}
	s.activity.LogSync(TriggerFrom(ctx), fetched, conflicts, added, err)
}
