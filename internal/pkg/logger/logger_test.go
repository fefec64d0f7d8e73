package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_WritesJSONWithAppAttrs(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "test", slog.LevelInfo)

	log.Warn("net salary clamped", slog.String("employee_id", "e-1"))

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "garage-backend", entry["app"])
	assert.Equal(t, "test", entry["env"])
	assert.Equal(t, "e-1", entry["employee_id"])
}

func TestNew_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "test", slog.LevelWarn)

	log.Info("ignored")
	assert.Zero(t, buf.Len())
}
