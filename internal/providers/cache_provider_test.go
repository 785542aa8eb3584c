package providers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"untisd/internal/structures"
)

// recordLogger is the minimal in-package fake; the richer mock lives in
// testutil, which cannot be imported from here.
type recordLogger struct {
	messages []string
}

func (l *recordLogger) record(format string)                               { l.messages = append(l.messages, format) }
func (l *recordLogger) Errorf(_ TypeEnum, format string, _ ...interface{}) { l.record(format) }
func (l *recordLogger) Warnf(_ TypeEnum, format string, _ ...interface{})  { l.record(format) }
func (l *recordLogger) Infof(_ TypeEnum, format string, _ ...interface{})  { l.record(format) }
func (l *recordLogger) Debugf(_ TypeEnum, format string, _ ...interface{}) { l.record(format) }
func (l *recordLogger) Fatalf(_ TypeEnum, format string, _ ...interface{}) { l.record(format) }
func (l *recordLogger) Close()                                             {}

func cacheConfig(enabled bool) *structures.Config {
	return &structures.Config{
		Cache: structures.CacheConfig{Enabled: enabled, Size: 1},
		Poll:  structures.PollConfig{Interval: 5 * time.Minute},
	}
}

func TestCacheProvider_SetGet(t *testing.T) {
	cache := NewCacheProvider(cacheConfig(true), &recordLogger{})

	cache.Set("entities", []byte(`[{"entity_id":"binary_sensor.class"}]`))

	val, ok := cache.Get("entities")
	require.True(t, ok)
	assert.Equal(t, `[{"entity_id":"binary_sensor.class"}]`, string(val))
}

func TestCacheProvider_MissingKey(t *testing.T) {
	cache := NewCacheProvider(cacheConfig(true), &recordLogger{})

	_, ok := cache.Get("nope")

	assert.False(t, ok)
}

func TestCacheProvider_DisabledIsNoop(t *testing.T) {
	cache := NewCacheProvider(cacheConfig(false), &recordLogger{})

	cache.Set("entities", []byte("data"))

	_, ok := cache.Get("entities")
	assert.False(t, ok)
}

func TestCacheProvider_ZeroSizeIsNoop(t *testing.T) {
	conf := cacheConfig(true)
	conf.Cache.Size = 0

	cache := NewCacheProvider(conf, &recordLogger{})

	cache.Set("entities", []byte("data"))
	_, ok := cache.Get("entities")
	assert.False(t, ok)
}

func TestUnsafeStringToBytes(t *testing.T) {
	assert.Nil(t, unsafeStringToBytes(""))
	assert.Equal(t, []byte("entities"), unsafeStringToBytes("entities"))
}
