package core

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZerologLevel(t *testing.T) {
	assert.Equal(t, zerolog.InfoLevel, ZerologLevel(LogLevelInfo))
	assert.Equal(t, zerolog.WarnLevel, ZerologLevel(LogLevelWarn))
	assert.Equal(t, zerolog.ErrorLevel, ZerologLevel(LogLevelError))
	assert.Equal(t, zerolog.WarnLevel, ZerologLevel("warn"))
	assert.Equal(t, zerolog.InfoLevel, ZerologLevel("VERBOSE"))
}

func TestInitLoggingWithPath(t *testing.T) {
	previous := log.Logger
	previousLevel := zerolog.GlobalLevel()
	t.Cleanup(func() {
		log.Logger = previous
		zerolog.SetGlobalLevel(previousLevel)
	})

	path := filepath.Join(t.TempDir(), "nested", DefaultLogFileName)
	file, err := InitLoggingWithPath(path, false)
	require.NoError(t, err)
	defer file.Close()

	ApplyLogLevel(LogLevelWarn)
	logger := GetLogger("test")
	logger.Info().Msg("dropped")
	logger.Warn().Msg("kept")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "dropped")
	assert.Contains(t, string(data), `"component":"test"`)
	assert.Contains(t, string(data), "kept")
}
