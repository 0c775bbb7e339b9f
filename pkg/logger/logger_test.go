package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithOptions(t *testing.T) {
	t.Run("DefaultStdout", func(t *testing.T) {
		log, err := NewWithOptions(Options{})
		require.NoError(t, err)
		assert.NotNil(t, log)
		assert.NoError(t, log.Close())
	})

	t.Run("Console", func(t *testing.T) {
		log, err := NewWithOptions(Options{Level: "warn", Format: "console", Output: "stderr"})
		require.NoError(t, err)
		assert.Equal(t, zerolog.WarnLevel, log.Zerolog().GetLevel())
	})

	t.Run("File", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "service.log")
		log, err := New(path, "info")
		require.NoError(t, err)

		log.Info("booking id=%s created", "abc")
		require.NoError(t, log.Close())

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), "booking id=abc created")
	})

	t.Run("FileMissingPath", func(t *testing.T) {
		_, err := NewWithOptions(Options{Output: "file"})
		assert.Error(t, err)
	})

	t.Run("InvalidLevelFallsBackToInfo", func(t *testing.T) {
		log, err := NewWithOptions(Options{Level: "loud"})
		require.NoError(t, err)
		assert.Equal(t, zerolog.InfoLevel, log.Zerolog().GetLevel())
	})
}

func TestLogger_Levels(t *testing.T) {
	var buf bytes.Buffer
	log := FromZerolog(zerolog.New(&buf).Level(zerolog.WarnLevel))

	log.Info("skipped")
	log.Warn("room %d busy", 7)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "room 7 busy", entry["message"])
}
