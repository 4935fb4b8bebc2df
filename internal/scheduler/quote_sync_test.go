package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/quotekeeper/internal/services"
	"github.com/mrlokans/quotekeeper/internal/settingsstore"
)

type mockConfig struct {
	mu     sync.Mutex
	config settingsstore.QuoteSyncConfig
}

func (m *mockConfig) GetQuoteSyncConfig() settingsstore.QuoteSyncConfig {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.config
}

func (m *mockConfig) set(cfg settingsstore.QuoteSyncConfig) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.config = cfg
}

type mockSyncer struct {
	mu      sync.Mutex
	calls   int
	trigger string
	err     error
	syncing bool
}

func (m *mockSyncer) Sync(ctx context.Context) (services.SyncResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	m.trigger = services.TriggerFrom(ctx)
	return services.SyncResult{}, m.err
}

func (m *mockSyncer) IsSyncing() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.syncing
}

func (m *mockSyncer) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

func TestStart_Disabled(t *testing.T) {
	cfg := &mockConfig{config: settingsstore.QuoteSyncConfig{Enabled: false, Schedule: "@every 30s"}}
	s := NewQuoteSyncScheduler(cfg, &mockSyncer{}, time.Second)

	require.NoError(t, s.Start(context.Background()))

	assert.False(t, s.IsRunning())
	assert.Nil(t, s.GetNextRunTime())
}

func TestStart_InvalidSchedule(t *testing.T) {
	cfg := &mockConfig{config: settingsstore.QuoteSyncConfig{Enabled: true, Schedule: "every now and then"}}
	s := NewQuoteSyncScheduler(cfg, &mockSyncer{}, time.Second)

	err := s.Start(context.Background())

	assert.Error(t, err)
	assert.False(t, s.IsRunning())
}

func TestStartStop(t *testing.T) {
	cfg := &mockConfig{config: settingsstore.QuoteSyncConfig{Enabled: true, Schedule: "@every 30s"}}
	s := NewQuoteSyncScheduler(cfg, &mockSyncer{}, time.Second)

	require.NoError(t, s.Start(context.Background()))
	assert.True(t, s.IsRunning())

	next := s.GetNextRunTime()
	require.NotNil(t, next)
	assert.WithinDuration(t, time.Now().Add(30*time.Second), *next, 2*time.Second)

	// Starting twice is a no-op
	require.NoError(t, s.Start(context.Background()))

	s.Stop()
	assert.False(t, s.IsRunning())
	assert.Nil(t, s.GetNextRunTime())

	// Stopping twice is a no-op
	s.Stop()
}

func TestStop_OnContextCancel(t *testing.T) {
	cfg := &mockConfig{config: settingsstore.QuoteSyncConfig{Enabled: true, Schedule: "@every 30s"}}
	s := NewQuoteSyncScheduler(cfg, &mockSyncer{}, time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, s.Start(ctx))

	cancel()

	assert.Eventually(t, func() bool { return !s.IsRunning() }, time.Second, 10*time.Millisecond)
}

func TestReschedule(t *testing.T) {
	cfg := &mockConfig{config: settingsstore.QuoteSyncConfig{Enabled: true, Schedule: "@every 30s"}}
	s := NewQuoteSyncScheduler(cfg, &mockSyncer{}, time.Second)
	require.NoError(t, s.Start(context.Background()))
	defer s.Stop()

	cfg.set(settingsstore.QuoteSyncConfig{Enabled: true, Schedule: "@every 1h"})
	require.NoError(t, s.Reschedule())

	next := s.GetNextRunTime()
	require.NotNil(t, next)
	assert.WithinDuration(t, time.Now().Add(time.Hour), *next, 2*time.Second)

	cfg.set(settingsstore.QuoteSyncConfig{Enabled: false, Schedule: "@every 1h"})
	require.NoError(t, s.Reschedule())
	assert.False(t, s.IsRunning())
}

func TestReschedule_StaysRunning(t *testing.T) {
	cfg := &mockConfig{config: settingsstore.QuoteSyncConfig{Enabled: true, Schedule: "@every 30s"}}
	s := NewQuoteSyncScheduler(cfg, &mockSyncer{}, time.Second)
	require.NoError(t, s.Start(context.Background()))
	defer s.Stop()

	for i := 0; i < 20; i++ {
		require.NoError(t, s.Reschedule())
	}

	assert.Never(t, func() bool { return !s.IsRunning() }, 200*time.Millisecond, 10*time.Millisecond)
	assert.NotNil(t, s.GetNextRunTime())
}

func TestReschedule_JobKeepsFiring(t *testing.T) {
	cfg := &mockConfig{config: settingsstore.QuoteSyncConfig{Enabled: true, Schedule: "@every 30s"}}
	syncer := &mockSyncer{}
	s := NewQuoteSyncScheduler(cfg, syncer, time.Second)
	require.NoError(t, s.Start(context.Background()))
	defer s.Stop()

	cfg.set(settingsstore.QuoteSyncConfig{Enabled: true, Schedule: "@every 1s"})
	require.NoError(t, s.Reschedule())

	assert.Eventually(t, func() bool { return syncer.callCount() > 0 }, 3*time.Second, 50*time.Millisecond)
	assert.True(t, s.IsRunning())
}

func TestReschedule_IgnoresStartContext(t *testing.T) {
	cfg := &mockConfig{config: settingsstore.QuoteSyncConfig{Enabled: true, Schedule: "@every 30s"}}
	s := NewQuoteSyncScheduler(cfg, &mockSyncer{}, time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, s.Start(ctx))
	require.NoError(t, s.Reschedule())
	defer s.Stop()

	cancel()

	assert.Never(t, func() bool { return !s.IsRunning() }, 200*time.Millisecond, 10*time.Millisecond)
}

func TestScheduledRunTriggersSync(t *testing.T) {
	cfg := &mockConfig{config: settingsstore.QuoteSyncConfig{Enabled: true, Schedule: "@every 1s"}}
	syncer := &mockSyncer{}
	s := NewQuoteSyncScheduler(cfg, syncer, time.Second)

	require.NoError(t, s.Start(context.Background()))
	defer s.Stop()

	assert.Eventually(t, func() bool { return syncer.callCount() > 0 }, 3*time.Second, 50*time.Millisecond)
}

func TestRunNow(t *testing.T) {
	cfg := &mockConfig{}
	syncer := &mockSyncer{}
	s := NewQuoteSyncScheduler(cfg, syncer, time.Second)

	s.RunNow()

	assert.Eventually(t, func() bool { return syncer.callCount() == 1 }, time.Second, 10*time.Millisecond)
}

func TestRunSync_ToleratesErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"in flight", services.ErrSyncInProgress},
		{"fetch failed", errors.Join(services.ErrSyncFailed, errors.New("timeout"))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			syncer := &mockSyncer{err: tt.err}
			s := NewQuoteSyncScheduler(&mockConfig{}, syncer, time.Second)

			s.runSync()

			assert.Equal(t, 1, syncer.callCount())
			assert.Equal(t, services.TriggerScheduler, syncer.trigger)
		})
	}
}

func TestIsSyncing_DelegatesToSyncer(t *testing.T) {
	syncer := &mockSyncer{syncing: true}
	s := NewQuoteSyncScheduler(&mockConfig{}, syncer, time.Second)

	assert.True(t, s.IsSyncing())
}
