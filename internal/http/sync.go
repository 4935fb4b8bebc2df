package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/mikestefanello/backlite"

	"github.com/mrlokans/quotekeeper/internal/notify"
	"github.com/mrlokans/quotekeeper/internal/services"
	"github.com/mrlokans/quotekeeper/internal/settingsstore"
)

// SyncController exposes manual sync, sync status and sync settings.
type SyncController struct {
	runner    SyncRunner
	scheduler SyncScheduler
	settings  SyncSettingsStore
	notifier  NotificationSource
	tasks     TaskQueue
}

func NewSyncController(runner SyncRunner, scheduler SyncScheduler, settings SyncSettingsStore, notifier NotificationSource, tasks TaskQueue) *SyncController {
	return &SyncController{
		runner:    runner,
		scheduler: scheduler,
		settings:  settings,
		notifier:  notifier,
		tasks:     tasks,
	}
}

// SchedulerState describes the periodic sync.
type SchedulerState struct {
	Running bool       `json:"running"`
	Syncing bool       `json:"syncing"`
	NextRun *time.Time `json:"next_run,omitempty"`
}

// SyncStatusResponse is the body of GET /api/sync/status.
type SyncStatusResponse struct {
	Config       settingsstore.QuoteSyncConfigInfo `json:"config"`
	LastSync     settingsstore.QuoteSyncStatus     `json:"last_sync"`
	Scheduler    SchedulerState                    `json:"scheduler"`
	Notification *notify.Notification              `json:"notification"`
}

// SyncSettingsRequest is the body of POST /api/sync/settings. Omitted
// fields are left unchanged.
type SyncSettingsRequest struct {
	Enabled  *bool   `json:"enabled"`
	Schedule *string `json:"schedule"`
}

// TriggerSync handles POST /api/sync
// With a task queue the sync is enqueued (202); otherwise it runs inline.
func (sc *SyncController) TriggerSync(c *gin.Context) {
	if sc.runner.IsSyncing() {
		respondError(c, http.StatusConflict, "sync_in_progress", services.ErrSyncInProgress.Error())
		return
	}

	if sc.tasks != nil {
		taskID, err := sc.tasks.EnqueueSync(services.TriggerAPI)
		if err != nil {
			respondInternalError(c, err, "enqueue sync")
			return
		}
		respondAccepted(c, "sync enqueued", gin.H{"task_id": taskID})
		return
	}

	result, err := sc.runner.Sync(services.WithTrigger(c.Request.Context(), services.TriggerAPI))
	switch {
	case errors.Is(err, services.ErrSyncInProgress):
		respondError(c, http.StatusConflict, "sync_in_progress", err.Error())
	case errors.Is(err, services.ErrSyncFailed):
		respondError(c, http.StatusBadGateway, "sync_failed", services.SyncFailedMessage)
	case err != nil:
		respondInternalError(c, err, "sync")
	default:
		c.JSON(http.StatusOK, result)
	}
}

// Status handles GET /api/sync/status
func (sc *SyncController) Status(c *gin.Context) {
	resp := SyncStatusResponse{
		Config:   sc.settings.GetQuoteSyncConfigInfo(),
		LastSync: sc.settings.GetQuoteSyncStatus(),
		Scheduler: SchedulerState{
			Syncing: sc.runner.IsSyncing(),
		},
	}
	if sc.scheduler != nil {
		resp.Scheduler.Running = sc.scheduler.IsRunning()
		resp.Scheduler.NextRun = sc.scheduler.GetNextRunTime()
	}
	if n, ok := sc.currentNotification(); ok {
		resp.Notification = &n
	}

	c.JSON(http.StatusOK, resp)
}

// UpdateSettings handles POST /api/sync/settings
func (sc *SyncController) UpdateSettings(c *gin.Context) {
	var req SyncSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	if req.Schedule != nil {
		if err := settingsstore.ValidateCronSchedule(*req.Schedule); err != nil {
			respondError(c, http.StatusBadRequest, "invalid_schedule", "invalid cron schedule: "+err.Error())
			return
		}
		if err := sc.settings.SetQuoteSyncSchedule(*req.Schedule); err != nil {
			respondInternalError(c, err, "save sync schedule")
			return
		}
	}
	if req.Enabled != nil {
		if err := sc.settings.SetQuoteSyncEnabled(*req.Enabled); err != nil {
			respondInternalError(c, err, "save sync enabled")
			return
		}
	}

	if sc.scheduler != nil {
		if err := sc.scheduler.Reschedule(); err != nil {
			log.Warn("Failed to reschedule quote sync", "err", err)
		}
	}

	c.JSON(http.StatusOK, sc.settings.GetQuoteSyncConfigInfo())
}

// Notification handles GET /api/notification
func (sc *SyncController) Notification(c *gin.Context) {
	n, ok := sc.currentNotification()
	if !ok {
		c.JSON(http.StatusOK, gin.H{"notification": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"notification": n})
}

// TaskStatus handles GET /api/sync/tasks/:id
func (sc *SyncController) TaskStatus(c *gin.Context) {
	if sc.tasks == nil {
		respondNotFound(c, "task queue disabled")
		return
	}

	taskID := c.Param("id")
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	status, err := sc.tasks.Status(ctx, taskID)
	if err != nil {
		respondInternalError(c, err, "task status")
		return
	}
	if status == backlite.TaskStatusNotFound {
		respondNotFound(c, "task not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":     taskID,
		"status": taskStatusToString(status),
	})
}

func (sc *SyncController) currentNotification() (notify.Notification, bool) {
	if sc.notifier == nil {
		return notify.Notification{}, false
	}
	return sc.notifier.Current()
}

func taskStatusToString(status backlite.TaskStatus) string {
	switch status {
	case backlite.TaskStatusPending:
		return "pending"
	case backlite.TaskStatusRunning:
		return "running"
	case backlite.TaskStatusSuccess:
		return "success"
	case backlite.TaskStatusFailure:
		return "failure"
	case backlite.TaskStatusNotFound:
		return "not_found"
	default:
		return "unknown"
	}
}
