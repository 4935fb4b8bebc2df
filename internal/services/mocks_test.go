package services

import (
	"context"
	"sync"

	"github.com/mrlokans/quotekeeper/internal/entities"
)

type memoryStore struct {
	mu      sync.Mutex
	values  map[string]string
	saves   int
	loadErr error
	saveErr error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{values: map[string]string{}}
}

func (m *memoryStore) Load(key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.loadErr != nil {
		return "", false, m.loadErr
	}
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *memoryStore) Save(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	m.values[key] = value
	m.saves++
	return nil
}

func (m *memoryStore) get(key string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.values[key]
}

// countingPicker always returns index and records how often it was asked.
type countingPicker struct {
	index int
	calls int
}

func (p *countingPicker) IntN(n int) int {
	p.calls++
	return p.index % n
}

type mockSource struct {
	quotes  []entities.Quote
	err     error
	calls   int
	block   chan struct{}
	started chan struct{}
}

func (m *mockSource) Fetch(ctx context.Context) ([]entities.Quote, error) {
	m.calls++
	if m.started != nil {
		close(m.started)
	}
	if m.block != nil {
		<-m.block
	}
	if m.err != nil {
		return nil, m.err
	}
	return m.quotes, nil
}

type mockNotifier struct {
	mu     sync.Mutex
	infos  []string
	errors []string
}

func (m *mockNotifier) Info(message string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.infos = append(m.infos, message)
}

func (m *mockNotifier) Error(message string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errors = append(m.errors, message)
}

type statusRecord struct {
	status    string
	message   string
	conflicts int
}

type mockStatusRecorder struct {
	records []statusRecord
	err     error
}

func (m *mockStatusRecorder) SetQuoteSyncStatus(status, message string, conflicts int) error {
	m.records = append(m.records, statusRecord{status, message, conflicts})
	return m.err
}

type activityRecord struct {
	source    string
	fetched   int
	conflicts int
	added     int
	failed    bool
}

type mockActivity struct {
	records []activityRecord
}

func (m *mockActivity) LogSync(source string, fetched, conflicts, added int, err error) {
	m.records = append(m.records, activityRecord{source, fetched, conflicts, added, err != nil})
}
