// FILE: lixenwraith/settings/dump_test.go
package settings

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDump(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	writeFile(t, path, `{"api": {"port": 4567}, "checks": {"cpu": {"command": "x"}}}`)

	loader, _ := newTestLoader(map[string]string{EnvRabbitMQURL: "amqp://x"})
	loader.Load(LoadOptions{File: path})

	t.Run("JSON", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, loader.Dump(&buf, FormatJSON))
		assert.JSONEq(t, `{
			"api": {"port": 4567},
			"rabbitmq": "amqp://x",
			"checks": {"cpu": {"command": "x"}},
			"filters": {}, "mutators": {}, "handlers": {}
		}`, buf.String())
	})

	t.Run("TOML", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, loader.Dump(&buf, FormatTOML))
		assert.Contains(t, buf.String(), `rabbitmq = "amqp://x"`)
		assert.Contains(t, buf.String(), "[checks.cpu]")
	})

	t.Run("YAML", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, loader.Dump(&buf, FormatYAML))
		assert.Contains(t, buf.String(), "rabbitmq: amqp://x")
	})

	t.Run("UnknownFormat", func(t *testing.T) {
		var buf bytes.Buffer
		err := loader.Dump(&buf, "ini")
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrUnsupportedFormat)
		assert.Contains(t, err.Error(), "failed to dump settings as ini")
	})
}

func TestDebug(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	writeFile(t, path, `{"api": {"port": 4567}}`)

	loader, _ := newTestLoader(map[string]string{EnvRedisURL: "redis://x"})
	loader.Load(LoadOptions{File: path})

	debug := loader.Debug()
	assert.Contains(t, debug, "Settings Debug Info:")
	assert.Contains(t, debug, "  "+path+"\n")
	assert.Contains(t, debug, "  api.port: 4567\n")
	assert.Contains(t, debug, "  redis: redis://x\n")
	assert.Contains(t, debug, "  checks: map[]\n")
	assert.Contains(t, debug, MsgEnvRedis)
	assert.Contains(t, debug, MsgFileLoading)
}
