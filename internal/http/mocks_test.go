package http

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/mikestefanello/backlite"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/quotekeeper/internal/entities"
	"github.com/mrlokans/quotekeeper/internal/notify"
	"github.com/mrlokans/quotekeeper/internal/services"
	"github.com/mrlokans/quotekeeper/internal/settingsstore"
)

var errStoreDown = errors.New("store unavailable")

// memoryKV is an in-memory KeyValueStore. Setting failSave makes every
// write fail.
type memoryKV struct {
	mu       sync.Mutex
	values   map[string]string
	failSave bool
}

func newMemoryKV() *memoryKV {
	return &memoryKV{values: make(map[string]string)}
}

func (m *memoryKV) Load(key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *memoryKV) Save(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failSave {
		return errStoreDown
	}
	m.values[key] = value
	return nil
}

// firstPicker always picks the first candidate.
type firstPicker struct{}

func (firstPicker) IntN(int) int { return 0 }

func newTestQuoteService(t *testing.T, kv *memoryKV) *services.QuoteService {
	t.Helper()
	svc := services.NewQuoteService(kv, services.WithPicker(firstPicker{}))
	require.NoError(t, svc.Load())
	return svc
}

type mockLastViewed struct {
	quote *entities.Quote
	puts  int
}

func (m *mockLastViewed) PutLastViewed(_ context.Context, q entities.Quote) error {
	m.puts++
	m.quote = &q
	return nil
}

func (m *mockLastViewed) LastViewed(context.Context) (entities.Quote, bool) {
	if m.quote == nil {
		return entities.Quote{}, false
	}
	return *m.quote, true
}

type mockSyncRunner struct {
	syncing bool
	result  services.SyncResult
	err     error
	calls   int
}

func (m *mockSyncRunner) Sync(context.Context) (services.SyncResult, error) {
	m.calls++
	return m.result, m.err
}

func (m *mockSyncRunner) IsSyncing() bool { return m.syncing }

type mockScheduler struct {
	running     bool
	next        *time.Time
	reschedules int
}

func (m *mockScheduler) Reschedule() error {
	m.reschedules++
	return nil
}

func (m *mockScheduler) IsRunning() bool { return m.running }

func (m *mockScheduler) GetNextRunTime() *time.Time { return m.next }

type mockSyncSettings struct {
	enabled  bool
	schedule string
	status   settingsstore.QuoteSyncStatus
}

func newMockSyncSettings() *mockSyncSettings {
	return &mockSyncSettings{enabled: true, schedule: settingsstore.DefaultQuoteSyncSchedule}
}

func (m *mockSyncSettings) GetQuoteSyncConfigInfo() settingsstore.QuoteSyncConfigInfo {
	return settingsstore.QuoteSyncConfigInfo{
		Enabled:             m.enabled,
		EnabledSource:       settingsstore.SourceDatabase,
		Schedule:            m.schedule,
		ScheduleSource:      settingsstore.SourceDatabase,
		ScheduleDescription: settingsstore.GetCronDescription(m.schedule),
	}
}

func (m *mockSyncSettings) GetQuoteSyncStatus() settingsstore.QuoteSyncStatus { return m.status }

func (m *mockSyncSettings) SetQuoteSyncEnabled(enabled bool) error {
	m.enabled = enabled
	return nil
}

func (m *mockSyncSettings) SetQuoteSyncSchedule(schedule string) error {
	m.schedule = schedule
	return nil
}

type mockNotifications struct {
	current *notify.Notification
}

func (m *mockNotifications) Current() (notify.Notification, bool) {
	if m.current == nil {
		return notify.Notification{}, false
	}
	return *m.current, true
}

type mockTaskQueue struct {
	taskID   string
	status   backlite.TaskStatus
	triggers []string
}

func (m *mockTaskQueue) EnqueueSync(trigger string) (string, error) {
	m.triggers = append(m.triggers, trigger)
	return m.taskID, nil
}

func (m *mockTaskQueue) Status(context.Context, string) (backlite.TaskStatus, error) {
	return m.status, nil
}

type loggedImport struct {
	source   string
	imported int
	total    int
	strict   bool
	failed   bool
}

type mockActivityLog struct {
	imports []loggedImport
	exports []string
	events  []entities.ActivityEvent
	gotType entities.ActivityType
	gotLim  int
	gotOff  int
}

func (m *mockActivityLog) LogImport(source string, imported, total int, strict bool, err error) {
	m.imports = append(m.imports, loggedImport{source, imported, total, strict, err != nil})
}

func (m *mockActivityLog) LogExport(source string, _ int, _ error) {
	m.exports = append(m.exports, source)
}

func (m *mockActivityLog) Events(eventType entities.ActivityType, limit, offset int) ([]entities.ActivityEvent, int64, error) {
	m.gotType, m.gotLim, m.gotOff = eventType, limit, offset
	return m.events, int64(len(m.events)), nil
}

type mockArchive struct {
	saved [][]byte
	err   error
}

func (m *mockArchive) SaveUpload(data []byte) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	m.saved = append(m.saved, data)
	return "upload.json", nil
}
