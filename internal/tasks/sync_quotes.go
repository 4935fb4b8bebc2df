package tasks

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mikestefanello/backlite"

	"github.com/mrlokans/quotekeeper/internal/services"
)

// SyncQuotesQueue is the name of the on-demand sync queue.
const SyncQuotesQueue = "sync_quotes"

// Syncer runs a single quote sync.
type Syncer interface {
	Sync(ctx context.Context) (services.SyncResult, error)
}

// SyncQuotesTask pulls the server quote set and reconciles it.
type SyncQuotesTask struct {
	// Trigger records what requested the sync, e.g. "api"
	Trigger string `json:"trigger"`
}

// Config returns the queue configuration for sync tasks. Failed syncs are
// not retried; the periodic schedule picks them up.
func (t SyncQuotesTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        SyncQuotesQueue,
		MaxAttempts: 1,
		Timeout:     time.Minute,
		Retention: &backlite.Retention{
			Duration:   time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// SyncQuotesProcessor runs the sync for a queued task. A sync that is
// already running counts as done.
func SyncQuotesProcessor(syncer Syncer) backlite.QueueProcessor[SyncQuotesTask] {
	return func(ctx context.Context, task SyncQuotesTask) error {
		if syncer == nil {
			return fmt.Errorf("syncer not configured")
		}

		result, err := syncer.Sync(services.WithTrigger(ctx, services.TriggerTask))
		if errors.Is(err, services.ErrSyncInProgress) {
			log.Info("Queued sync skipped, another sync is running", "trigger", task.Trigger)
			return nil
		}
		if err != nil {
			return fmt.Errorf("sync quotes: %w", err)
		}

		log.Info("Queued sync finished", "trigger", task.Trigger, "conflicts", result.Conflicts, "total", result.Total)
		return nil
	}
}

// NewSyncQuotesQueue creates a backlite queue for sync tasks.
func NewSyncQuotesQueue(syncer Syncer) backlite.Queue {
	return backlite.NewQueue(SyncQuotesProcessor(syncer))
}

// EnqueueSync adds a sync task and returns its id.
func (c *Client) EnqueueSync(trigger string) (string, error) {
	ids, err := c.Add(SyncQuotesTask{Trigger: trigger}).Save()
	if err != nil {
		return "", fmt.Errorf("enqueue sync: %w", err)
	}
	if len(ids) == 0 {
		return "", fmt.Errorf("enqueue sync: no task id returned")
	}
	return ids[0], nil
}
