package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FlatBartender/bis-solver/internal/errors"
)

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	log, err := NewWithWriter(Config{Level: WarnLevel, Format: JSONFormat}, &buf)
	require.NoError(t, err)

	log.Info("dropped")
	log.Warn("kept")
	require.NoError(t, log.Sync())

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "kept", entry["msg"])
	assert.Equal(t, "warn", entry["level"])
}

func TestNewConsole(t *testing.T) {
	var buf bytes.Buffer
	log, err := NewWithWriter(DefaultConfig(), &buf)
	require.NoError(t, err)

	log.Info("stage ranked")
	assert.Contains(t, buf.String(), "INFO")
	assert.Contains(t, buf.String(), "stage ranked")
}

func TestNewRejectsBadConfig(t *testing.T) {
	_, err := NewWithWriter(Config{Level: "loud", Format: JSONFormat}, &bytes.Buffer{})
	assert.True(t, errors.IsInvalidArgument(err))

	_, err = NewWithWriter(Config{Level: InfoLevel, Format: "xml"}, &bytes.Buffer{})
	assert.True(t, errors.IsInvalidArgument(err))
}
