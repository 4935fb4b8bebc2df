package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mikestefanello/backlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/quotekeeper/internal/notify"
	"github.com/mrlokans/quotekeeper/internal/services"
	"github.com/mrlokans/quotekeeper/internal/settingsstore"
)

type syncFixture struct {
	runner    *mockSyncRunner
	scheduler *mockScheduler
	settings  *mockSyncSettings
	notifier  *mockNotifications
	tasks     *mockTaskQueue
}

func newSyncFixture() *syncFixture {
	return &syncFixture{
		runner:    &mockSyncRunner{},
		scheduler: &mockScheduler{},
		settings:  newMockSyncSettings(),
		notifier:  &mockNotifications{},
	}
}

func (f *syncFixture) router() *gin.Engine {
	var tasks TaskQueue
	if f.tasks != nil {
		tasks = f.tasks
	}
	sc := NewSyncController(f.runner, f.scheduler, f.settings, f.notifier, tasks)

	router := gin.New()
	router.POST("/api/sync", sc.TriggerSync)
	router.GET("/api/sync/status", sc.Status)
	router.POST("/api/sync/settings", sc.UpdateSettings)
	router.GET("/api/sync/tasks/:id", sc.TaskStatus)
	router.GET("/api/notification", sc.Notification)
	return router
}

func TestSyncController_TriggerSync(t *testing.T) {
	t.Run("runs inline without task queue", func(t *testing.T) {
		f := newSyncFixture()
		f.runner.result = services.SyncResult{Fetched: 2, Conflicts: 1, Added: 1, Total: 4, Message: services.SyncConflictsMessage(1)}

		w := performRequest(f.router(), http.MethodPost, "/api/sync", nil, "")

		require.Equal(t, http.StatusOK, w.Code)
		var result services.SyncResult
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
		assert.Equal(t, f.runner.result, result)
		assert.Equal(t, 1, f.runner.calls)
	})

	t.Run("conflict while a sync is in flight", func(t *testing.T) {
		f := newSyncFixture()
		f.runner.syncing = true

		w := performRequest(f.router(), http.MethodPost, "/api/sync", nil, "")

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), "sync_in_progress")
		assert.Zero(t, f.runner.calls)
	})

	t.Run("lost race reports conflict", func(t *testing.T) {
		f := newSyncFixture()
		f.runner.err = services.ErrSyncInProgress

		w := performRequest(f.router(), http.MethodPost, "/api/sync", nil, "")

		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("remote failure is bad gateway", func(t *testing.T) {
		f := newSyncFixture()
		f.runner.err = fmt.Errorf("%w: %w", services.ErrSyncFailed, errors.New("connection refused"))

		w := performRequest(f.router(), http.MethodPost, "/api/sync", nil, "")

		assert.Equal(t, http.StatusBadGateway, w.Code)
		var resp ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, services.SyncFailedMessage, resp.Error)
		assert.Equal(t, "sync_failed", resp.Code)
	})

	t.Run("other errors are internal", func(t *testing.T) {
		f := newSyncFixture()
		f.runner.err = errors.New("disk full")

		w := performRequest(f.router(), http.MethodPost, "/api/sync", nil, "")

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})

	t.Run("enqueues with task queue", func(t *testing.T) {
		f := newSyncFixture()
		f.tasks = &mockTaskQueue{taskID: "task-1"}

		w := performRequest(f.router(), http.MethodPost, "/api/sync", nil, "")

		require.Equal(t, http.StatusAccepted, w.Code)
		assert.JSONEq(t, `{"message":"sync enqueued","data":{"task_id":"task-1"}}`, w.Body.String())
		assert.Equal(t, []string{"api"}, f.tasks.triggers)
		assert.Zero(t, f.runner.calls)
	})
}

func TestSyncController_Status(t *testing.T) {
	f := newSyncFixture()
	next := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	last := next.Add(-time.Minute)
	f.scheduler.running = true
	f.scheduler.next = &next
	f.settings.status = settingsstore.QuoteSyncStatus{LastSyncAt: &last, Status: settingsstore.SyncStatusSuccess, Message: services.SyncNoConflictsMessage}
	f.notifier.current = &notify.Notification{Message: services.SyncNoConflictsMessage, Level: notify.LevelInfo, CreatedAt: last}

	w := performRequest(f.router(), http.MethodGet, "/api/sync/status", nil, "")

	require.Equal(t, http.StatusOK, w.Code)
	var resp SyncStatusResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Config.Enabled)
	assert.Equal(t, "Every 30 seconds", resp.Config.ScheduleDescription)
	assert.Equal(t, settingsstore.SyncStatusSuccess, resp.LastSync.Status)
	assert.True(t, resp.Scheduler.Running)
	assert.False(t, resp.Scheduler.Syncing)
	require.NotNil(t, resp.Scheduler.NextRun)
	assert.True(t, next.Equal(*resp.Scheduler.NextRun))
	require.NotNil(t, resp.Notification)
	assert.Equal(t, services.SyncNoConflictsMessage, resp.Notification.Message)
}

func TestSyncController_UpdateSettings(t *testing.T) {
	t.Run("updates and reschedules", func(t *testing.T) {
		f := newSyncFixture()

		w := performRequest(f.router(), http.MethodPost, "/api/sync/settings",
			strings.NewReader(`{"enabled":false,"schedule":"@every 1m"}`), "application/json")

		require.Equal(t, http.StatusOK, w.Code)
		assert.False(t, f.settings.enabled)
		assert.Equal(t, "@every 1m", f.settings.schedule)
		assert.Equal(t, 1, f.scheduler.reschedules)

		var info settingsstore.QuoteSyncConfigInfo
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &info))
		assert.Equal(t, "Every minute", info.ScheduleDescription)
	})

	t.Run("omitted fields are unchanged", func(t *testing.T) {
		f := newSyncFixture()

		w := performRequest(f.router(), http.MethodPost, "/api/sync/settings",
			strings.NewReader(`{"enabled":false}`), "application/json")

		require.Equal(t, http.StatusOK, w.Code)
		assert.False(t, f.settings.enabled)
		assert.Equal(t, settingsstore.DefaultQuoteSyncSchedule, f.settings.schedule)
	})

	t.Run("rejects invalid schedule", func(t *testing.T) {
		f := newSyncFixture()

		w := performRequest(f.router(), http.MethodPost, "/api/sync/settings",
			strings.NewReader(`{"schedule":"every now and then"}`), "application/json")

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "invalid_schedule")
		assert.Equal(t, settingsstore.DefaultQuoteSyncSchedule, f.settings.schedule)
		assert.Zero(t, f.scheduler.reschedules)
	})

	t.Run("rejects malformed body", func(t *testing.T) {
		f := newSyncFixture()

		w := performRequest(f.router(), http.MethodPost, "/api/sync/settings", strings.NewReader(`{`), "application/json")

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestSyncController_Notification(t *testing.T) {
	f := newSyncFixture()
	router := f.router()

	w := performRequest(router, http.MethodGet, "/api/notification", nil, "")
	assert.JSONEq(t, `{"notification":null}`, w.Body.String())

	f.notifier.current = &notify.Notification{Message: services.SyncFailedMessage, Level: notify.LevelError}
	w = performRequest(router, http.MethodGet, "/api/notification", nil, "")

	var body struct {
		Notification notify.Notification `json:"notification"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, services.SyncFailedMessage, body.Notification.Message)
	assert.Equal(t, notify.LevelError, body.Notification.Level)
}

func TestSyncController_TaskStatus(t *testing.T) {
	t.Run("task queue disabled", func(t *testing.T) {
		w := performRequest(newSyncFixture().router(), http.MethodGet, "/api/sync/tasks/abc", nil, "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("reports status", func(t *testing.T) {
		f := newSyncFixture()
		f.tasks = &mockTaskQueue{status: backlite.TaskStatusRunning}

		w := performRequest(f.router(), http.MethodGet, "/api/sync/tasks/abc", nil, "")

		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"id":"abc","status":"running"}`, w.Body.String())
	})

	t.Run("unknown task", func(t *testing.T) {
		f := newSyncFixture()
		f.tasks = &mockTaskQueue{status: backlite.TaskStatusNotFound}

		w := performRequest(f.router(), http.MethodGet, "/api/sync/tasks/abc", nil, "")

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestTaskStatusToString(t *testing.T) {
	assert.Equal(t, "pending", taskStatusToString(backlite.TaskStatusPending))
	assert.Equal(t, "success", taskStatusToString(backlite.TaskStatusSuccess))
	assert.Equal(t, "failure", taskStatusToString(backlite.TaskStatusFailure))
}
