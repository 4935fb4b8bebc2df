package audit

import (
	"errors"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/mrlokans/quotekeeper/internal/database/activity"
	"github.com/mrlokans/quotekeeper/internal/entities"
)

func setupService(t *testing.T) *Service {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&entities.ActivityEvent{}))

	// A single connection keeps the in-memory database shared with the
	// background writers
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	return NewService(activity.NewRepository(db))
}

func TestService_LogImport(t *testing.T) {
	svc := setupService(t)

	svc.LogImport("api", 2, 5, true, nil)
	svc.LogImport("ui", 0, 3, false, errors.New("invalid quotes file: top-level JSON value must be an array"))
	svc.Wait()

	events, total, err := svc.Events(entities.ActivityImport, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)

	bySource := map[string]entities.ActivityEvent{}
	for _, e := range events {
		bySource[e.Source] = e
	}

	ok := bySource["api"]
	assert.Equal(t, entities.ActivityStatusSuccess, ok.Status)
	assert.Equal(t, "Imported 2 quotes", ok.Description)
	assert.JSONEq(t, `{"imported":2,"total":5,"strict":true}`, ok.Metadata)

	failed := bySource["ui"]
	assert.Equal(t, entities.ActivityStatusFailed, failed.Status)
	assert.Equal(t, "Import rejected", failed.Description)
	assert.Contains(t, failed.ErrorMsg, "top-level JSON value")
}

func TestService_LogSyncAndExport(t *testing.T) {
	svc := setupService(t)

	svc.LogSync("scheduler", 2, 1, 1, nil)
	svc.LogSync("api", 0, 0, 0, errors.New("connection refused"))
	svc.LogExport("cli", 3, nil)
	svc.Wait()

	syncs, total, err := svc.Events(entities.ActivitySync, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	for _, e := range syncs {
		switch e.Source {
		case "scheduler":
			assert.Equal(t, "Synced 2 server quotes, 1 conflicts", e.Description)
			assert.JSONEq(t, `{"fetched":2,"conflicts":1,"added":1}`, e.Metadata)
		case "api":
			assert.Equal(t, entities.ActivityStatusFailed, e.Status)
			assert.Empty(t, e.Metadata)
		default:
			t.Fatalf("unexpected source %q", e.Source)
		}
	}

	exports, _, err := svc.Events(entities.ActivityExport, 0, 0)
	require.NoError(t, err)
	require.Len(t, exports, 1)
	assert.Equal(t, "Exported 3 quotes", exports[0].Description)
}

func TestService_DeleteOldEvents(t *testing.T) {
	svc := setupService(t)

	require.NoError(t, svc.Log(&entities.ActivityEvent{Type: entities.ActivitySync, CreatedAt: time.Now().Add(-72 * time.Hour)}))
	require.NoError(t, svc.Log(&entities.ActivityEvent{Type: entities.ActivitySync}))

	deleted, err := svc.DeleteOldEvents(24 * time.Hour)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	long := strings.Repeat("a", 20)
	assert.Equal(t, strings.Repeat("a", 7)+"...", truncate(long, 10))
}

func TestTruncate_KeepsRunesWhole(t *testing.T) {
	msg := strings.Repeat("é", 10)

	got := truncate(msg, 6)

	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, "é...", got)
	assert.LessOrEqual(t, len(got), 6)
}
