package testutil

import (
	"context"
	"sync"
	"time"

	"untisd/internal/models"
	"untisd/internal/providers"
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

// CountLevel returns how many entries were recorded at the given level.
func (m *MockLogger) CountLevel(level string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	count := 0
	for _, e := range m.Logs {
		if e.Level == level {
			count++
		}
	}
	return count
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

// MockTimetableService implements services.TimetableServiceInterface.
type MockTimetableService struct {
	mu           sync.Mutex
	PollCalls    int
	PollErr      error
	EntitiesData []models.Entity
	EventsData   []models.CalendarEvent
	DaysData     []models.Day
	Fetched      time.Time
}

func (m *MockTimetableService) Poll(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PollCalls++
	return m.PollErr
}

func (m *MockTimetableService) Polls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.PollCalls
}

func (m *MockTimetableService) Entities() []models.Entity {
	return m.EntitiesData
}

func (m *MockTimetableService) Entity(id string) (models.Entity, bool) {
	for _, e := range m.EntitiesData {
		if e.EntityID == id {
			return e, true
		}
	}
	return models.Entity{}, false
}

func (m *MockTimetableService) Events() []models.CalendarEvent {
	return m.EventsData
}

func (m *MockTimetableService) Days() []models.Day {
	return m.DaysData
}

func (m *MockTimetableService) LastFetched() time.Time {
	return m.Fetched
}

func (m *MockTimetableService) LessonCount() int {
	total := 0
	for _, d := range m.DaysData {
		total += len(d.Lessons)
	}
	return total
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

// MockMetrics implements providers.MetricsProviderInterface and counts
// the calls the tests care about.
type MockMetrics struct {
	mu           sync.Mutex
	Requests     int
	CacheHits    int
	CacheMisses  int
	PollOutcomes map[string]int
	LessonsSet   int
	EventsSet    int
}

func NewMockMetrics() *MockMetrics {
	return &MockMetrics{PollOutcomes: make(map[string]int)}
}

func (m *MockMetrics) IncRequestsTotal(_ string, _ int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Requests++
}
func (m *MockMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (m *MockMetrics) IncCacheHits() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheHits++
}
func (m *MockMetrics) IncCacheMisses() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheMisses++
}
func (m *MockMetrics) IncPollsTotal(outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PollOutcomes[outcome]++
}
func (m *MockMetrics) ObservePollDuration(_ time.Duration) {}
func (m *MockMetrics) SetLessonsTotal(count int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LessonsSet = count
}
func (m *MockMetrics) SetCalendarEventsTotal(count int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.EventsSet = count
}
func (m *MockMetrics) SetLastPollSuccess(_ time.Time) {}

// MockUntisClient implements untis.ClientInterface.
type MockUntisClient struct {
	LoginErr      error
	LoginCalls    int
	LogoutCalls   int
	LoggedInState bool

	YearEnd    time.Time
	YearEndErr error

	Lessons      []models.Lesson
	TimetableErr error
	// TimetableErrOnce makes the first Timetable call fail, the next
	// succeed (session-expiry simulation).
	TimetableErrOnce error

	TimetableCalls int
}

func (m *MockUntisClient) Login(_ context.Context) error {
	m.LoginCalls++
	if m.LoginErr != nil {
		return m.LoginErr
	}
	m.LoggedInState = true
	return nil
}

func (m *MockUntisClient) Logout(_ context.Context) {
	m.LogoutCalls++
	m.LoggedInState = false
}

func (m *MockUntisClient) LoggedIn() bool {
	return m.LoggedInState
}

func (m *MockUntisClient) SchoolyearEnd(_ context.Context) (time.Time, error) {
	return m.YearEnd, m.YearEndErr
}

func (m *MockUntisClient) Timetable(_ context.Context, _, _ time.Time) ([]models.Lesson, error) {
	m.TimetableCalls++
	if m.TimetableErrOnce != nil {
		err := m.TimetableErrOnce
		m.TimetableErrOnce = nil
		return nil, err
	}
	if m.TimetableErr != nil {
		return nil, m.TimetableErr
	}
	return m.Lessons, nil
}
