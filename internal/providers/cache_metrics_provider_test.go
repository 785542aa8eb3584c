package providers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingMetrics struct {
	requests int
	hits     int
	misses   int
	polls    map[string]int
}

func newCountingMetrics() *countingMetrics {
	return &countingMetrics{polls: make(map[string]int)}
}

func (m *countingMetrics) IncRequestsTotal(_ string, _ int)                 { m.requests++ }
func (m *countingMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (m *countingMetrics) IncCacheHits()                                    { m.hits++ }
func (m *countingMetrics) IncCacheMisses()                                  { m.misses++ }
func (m *countingMetrics) IncPollsTotal(outcome string)                     { m.polls[outcome]++ }
func (m *countingMetrics) ObservePollDuration(_ time.Duration)              {}
func (m *countingMetrics) SetLessonsTotal(_ int)                            {}
func (m *countingMetrics) SetCalendarEventsTotal(_ int)                     {}
func (m *countingMetrics) SetLastPollSuccess(_ time.Time)                   {}

func TestInstrumentedCache_CountsHitsAndMisses(t *testing.T) {
	metrics := newCountingMetrics()
	cache := NewInstrumentedCacheProvider(cacheConfig(true), &recordLogger{}, metrics)

	_, ok := cache.Get("entities")
	require.False(t, ok)
	assert.Equal(t, 1, metrics.misses)

	cache.Set("entities", []byte("data"))
	_, ok = cache.Get("entities")
	require.True(t, ok)
	assert.Equal(t, 1, metrics.hits)
	assert.Equal(t, 1, metrics.misses)
}

func TestInstrumentedCache_DisabledCountsNothing(t *testing.T) {
	metrics := newCountingMetrics()
	cache := NewInstrumentedCacheProvider(cacheConfig(false), &recordLogger{}, metrics)

	_, _ = cache.Get("entities")
	cache.Set("entities", []byte("data"))
	_, _ = cache.Get("entities")

	assert.Zero(t, metrics.hits)
	assert.Zero(t, metrics.misses)
}
