package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "settings", "info", FormatJSON)

	log.Debug().Msg("hidden")
	log.Info().Str("file", "/etc/sensu/config.json").Msg("loaded")

	var line map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &line))
	assert.Equal(t, "info", line["level"])
	assert.Equal(t, "settings", line["role"])
	assert.Equal(t, "loaded", line["message"])
	assert.Contains(t, line, "time")
}

func TestNewDefaultsToWarn(t *testing.T) {
	for _, level := range []string{"", "verbose"} {
		var buf bytes.Buffer
		log := New(&buf, "settings", level, FormatJSON)
		log.Info().Msg("hidden")
		assert.Empty(t, buf.String(), "level %q", level)

		log.Warn().Msg("shown")
		assert.Contains(t, buf.String(), "shown")
	}
}

func TestNewConsole(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "settings", "WARN", FormatConsole)
	log.Warn().Msg("ignoring config file")

	assert.Contains(t, buf.String(), "ignoring config file")
	assert.Contains(t, buf.String(), "role=")
}

func TestNop(t *testing.T) {
	log := Nop()
	log.Error().Msg("discarded")
}
