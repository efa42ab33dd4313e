package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_ProductionWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, true)
	logger.Info().Str("usuario", "ana").Msg("user registered")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "ana", entry["usuario"])
	assert.Equal(t, "user registered", entry["message"])
	assert.Contains(t, entry, "time")
}

func TestNew_DevelopmentIsHumanReadable(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, false)
	logger.Warn().Msg("csv header is incomplete")

	out := buf.String()
	assert.Contains(t, out, "csv header is incomplete")
	assert.False(t, json.Valid(bytes.TrimSpace(buf.Bytes())))
}
