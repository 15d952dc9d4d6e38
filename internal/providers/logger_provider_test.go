package providers

import (
	"activitybot/internal/structures"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetLogTypeByRequestType_POST(t *testing.T) {
	assert.Equal(t, TypeEvent, GetLogTypeByRequestType("POST"))
}

func TestGetLogTypeByRequestType_GET(t *testing.T) {
	assert.Equal(t, TypeQuery, GetLogTypeByRequestType("GET"))
}

func TestGetLogTypeByRequestType_Other(t *testing.T) {
	assert.Equal(t, TypeQuery, GetLogTypeByRequestType("PUT"))
	assert.Equal(t, TypeQuery, GetLogTypeByRequestType("DELETE"))
}

func TestNewLogProvider_CreatesLogFiles(t *testing.T) {
	dir := t.TempDir()
	conf := &structures.Config{
		Logger: structures.LoggerConfig{
			Level: "info",
			Mode:  0644,
			Dir:   dir,
		},
	}

	logger, err := NewLogProvider(conf)
	require.NoError(t, err)
	defer logger.Close()

	logger.Infof(TypeApp, "test message")
	logger.Debugf(TypeQuery, "query message")
	logger.Warnf(TypeEvent, "event message")
	logger.Errorf(TypeReport, "report message")

	for _, name := range []string{"app.log", "events.log", "query.log", "report.log"} {
		_, err := os.Stat(filepath.Join(dir, name))
		assert.NoError(t, err, name)
	}

	data, err := os.ReadFile(filepath.Join(dir, "app.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "test message")

	// debug is below the configured level
	data, err = os.ReadFile(filepath.Join(dir, "query.log"))
	require.NoError(t, err)
	assert.NotContains(t, string(data), "query message")
}

func TestNewLogProvider_InvalidDir(t *testing.T) {
	// a regular file cannot hold a log directory, whoever runs the test
	blocker := filepath.Join(t.TempDir(), "not-a-dir")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	conf := &structures.Config{
		Logger: structures.LoggerConfig{
			Level: "info",
			Mode:  0644,
			Dir:   filepath.Join(blocker, "logs"),
		},
	}

	_, err := NewLogProvider(conf)
	assert.Error(t, err)
}

func TestNewLogProvider_CreatesMissingDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "logs")
	conf := &structures.Config{
		Logger: structures.LoggerConfig{
			Level: "info",
			Mode:  0644,
			Dir:   dir,
		},
	}

	logger, err := NewLogProvider(conf)
	require.NoError(t, err)
	defer logger.Close()

	_, err = os.Stat(filepath.Join(dir, "app.log"))
	assert.NoError(t, err)
}

func TestNewLogProvider_InvalidLevel(t *testing.T) {
	conf := &structures.Config{
		Logger: structures.LoggerConfig{
			Level: "loud",
			Mode:  0644,
			Dir:   t.TempDir(),
		},
	}

	_, err := NewLogProvider(conf)
	assert.Error(t, err)
}
