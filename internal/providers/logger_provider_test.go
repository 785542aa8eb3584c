package providers

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"untisd/internal/structures"
)

func loggerConfig(dir string) *structures.Config {
	return &structures.Config{
		Logger: structures.LoggerConfig{
			Level: "debug",
			Mode:  0644,
			Dir:   dir,
		},
	}
}

func TestNewLogProvider_CreatesLogFile(t *testing.T) {
	dir := t.TempDir()

	logger, err := NewLogProvider(loggerConfig(dir))
	require.NoError(t, err)
	defer logger.Close()

	logger.Infof(TypeApp, "started with %d routes", 7)

	data, err := os.ReadFile(filepath.Join(dir, "untisd.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "started with 7 routes")
	assert.Contains(t, string(data), `"type":"app"`)
}

func TestNewLogProvider_LevelFiltersOutput(t *testing.T) {
	dir := t.TempDir()
	conf := loggerConfig(dir)
	conf.Logger.Level = "warn"

	logger, err := NewLogProvider(conf)
	require.NoError(t, err)
	defer logger.Close()

	logger.Debugf(TypePoll, "below threshold")
	logger.Warnf(TypePoll, "above threshold")

	data, err := os.ReadFile(filepath.Join(dir, "untisd.log"))
	require.NoError(t, err)
	assert.NotContains(t, string(data), "below threshold")
	assert.Contains(t, string(data), "above threshold")
}

func TestNewLogProvider_InvalidLevel(t *testing.T) {
	conf := loggerConfig(t.TempDir())
	conf.Logger.Level = "noisy"

	_, err := NewLogProvider(conf)

	assert.Error(t, err)
}

func TestNewLogProvider_MissingDir(t *testing.T) {
	conf := loggerConfig(filepath.Join(t.TempDir(), "does", "not", "exist"))

	_, err := NewLogProvider(conf)

	assert.Error(t, err)
}

func TestGetLogTypeByRequestType(t *testing.T) {
	assert.Equal(t, TypeGet, GetLogTypeByRequestType("GET"))
	assert.Equal(t, TypeGet, GetLogTypeByRequestType("POST"))
}
