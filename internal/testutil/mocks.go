package testutil

import (
	"activitybot/internal/models"
	"activitybot/internal/providers"
	"context"
	"sync"
	"time"
)

// MockLogger implements providers.Logger and records calls.
type MockLogger struct {
	mu   sync.Mutex
	Logs []LogEntry
}

type LogEntry struct {
	Level  string
	Type   providers.TypeEnum
	Format string
	Args   []interface{}
}

func (m *MockLogger) record(level string, t providers.TypeEnum, format string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Logs = append(m.Logs, LogEntry{Level: level, Type: t, Format: format, Args: args})
}

func (m *MockLogger) Errorf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("error", t, format, args...)
}
func (m *MockLogger) Warnf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("warn", t, format, args...)
}
func (m *MockLogger) Debugf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("debug", t, format, args...)
}
func (m *MockLogger) Infof(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("info", t, format, args...)
}
func (m *MockLogger) Fatalf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("fatal", t, format, args...)
}
func (m *MockLogger) Close() {}

// Count returns how many entries were logged at level.
func (m *MockLogger) Count(level string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, l := range m.Logs {
		if l.Level == level {
			n++
		}
	}
	return n
}

// MockStorage implements interfaces.StorageInterface in memory. Every save
// keeps a deep copy of the document.
type MockStorage struct {
	mu      sync.Mutex
	Doc     *models.Document
	Saved   []*models.Document
	SaveErr error
}

func (m *MockStorage) Load() *models.Document {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Doc == nil {
		return models.NewDocument(time.Now().UTC())
	}
	return m.Doc.Clone()
}

func (m *MockStorage) Save(doc *models.Document) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.Saved = append(m.Saved, doc.Clone())
	return nil
}

func (m *MockStorage) SaveCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Saved)
}

// Last returns the most recently saved document, nil before the first save.
func (m *MockStorage) Last() *models.Document {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Saved) == 0 {
		return nil
	}
	return m.Saved[len(m.Saved)-1]
}

// MockCache implements providers.CacheProviderInterface.
type MockCache struct {
	mu   sync.Mutex
	Data map[string][]byte
}

func NewMockCache() *MockCache {
	return &MockCache{Data: make(map[string][]byte)}
}

func (m *MockCache) Get(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	val, ok := m.Data[key]
	return val, ok
}

func (m *MockCache) Set(key string, value []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Data[key] = value
}

func (m *MockCache) Purge() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Data = make(map[string][]byte)
}

// MockCompressor implements interfaces.CompressorInterface with injectable behavior.
type MockCompressor struct {
	CompressFn   func([]byte) ([]byte, error)
	DecompressFn func([]byte) ([]byte, error)
	Closed       bool
}

func (m *MockCompressor) Compress(val []byte) ([]byte, error) {
	if m.CompressFn != nil {
		return m.CompressFn(val)
	}
	// Default: return as-is (identity)
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (m *MockCompressor) Decompress(val []byte) ([]byte, error) {
	if m.DecompressFn != nil {
		return m.DecompressFn(val)
	}
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (m *MockCompressor) Close() {
	m.Closed = true
}

// MockMetrics implements providers.MetricsProviderInterface and counts calls.
type MockMetrics struct {
	mu            sync.Mutex
	Requests      int
	CacheHits     int
	CacheMisses   int
	Persists      int
	Events        map[string]int
	Reports       map[string]int
	FailedReports int
	TrackedUsers  int
	TrackedDays   int
	TrackedWeeks  int
}

func (m *MockMetrics) IncRequestsTotal(_ string, _ int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Requests++
}
func (m *MockMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (m *MockMetrics) IncCacheHits(_ string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheHits++
}
func (m *MockMetrics) IncCacheMisses(_ string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheMisses++
}
func (m *MockMetrics) ObservePersistenceDuration(_ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Persists++
}
func (m *MockMetrics) IncEventsTotal(eventType string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Events == nil {
		m.Events = make(map[string]int)
	}
	m.Events[eventType]++
}
func (m *MockMetrics) IncReportsTotal(report string, ok bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Reports == nil {
		m.Reports = make(map[string]int)
	}
	m.Reports[report]++
	if !ok {
		m.FailedReports++
	}
}
func (m *MockMetrics) SetTrackedTotals(users, days, weeks int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.TrackedUsers, m.TrackedDays, m.TrackedWeeks = users, days, weeks
}

// MockNotifier implements providers.NotifierInterface and records reports.
type MockNotifier struct {
	mu       sync.Mutex
	Disabled bool
	Err      error
	Daily    []*models.DayStats
	Weekly   []*models.WeeklyReport
}

func (m *MockNotifier) Enabled() bool {
	return !m.Disabled
}

func (m *MockNotifier) SendDailyReport(_ context.Context, report *models.DayStats) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.Daily = append(m.Daily, report)
	return nil
}

func (m *MockNotifier) SendWeeklyReport(_ context.Context, report *models.WeeklyReport) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.Weekly = append(m.Weekly, report)
	return nil
}

func (m *MockNotifier) Close(_ context.Context) {}

// Sent returns how many daily and weekly reports were delivered.
func (m *MockNotifier) Sent() (daily, weekly int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Daily), len(m.Weekly)
}
