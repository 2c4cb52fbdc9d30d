package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hsiuhsiu/reqrep-go/pkg/reqrep"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	def := reqrep.DefaultConfig()
	assert.Equal(t, def.Driver, cfg.Driver)
	assert.Equal(t, def.Mode, cfg.Mode)
	assert.Equal(t, def.DialTimeout, cfg.DialTimeout)
	assert.Equal(t, def.PollInterval, cfg.PollInterval)
	assert.Zero(t, cfg.ExchangeTimeout)
	assert.False(t, cfg.DialAsync)
	assert.Equal(t, def.Log.Level, cfg.Log.Level)
	assert.Empty(t, cfg.Log.Outputs)
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "reqrep.yaml", `
driver: sp
mode: pair
dial_timeout: 2s
exchange_timeout: 750ms
dial_async: true
log:
  level: debug
  format: json
  outputs: [stderr]
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "sp", cfg.Driver)
	assert.Equal(t, "pair", cfg.Mode)
	assert.Equal(t, 2*time.Second, cfg.DialTimeout)
	assert.Equal(t, 750*time.Millisecond, cfg.ExchangeTimeout)
	assert.Equal(t, reqrep.DefaultPollInterval, cfg.PollInterval)
	assert.True(t, cfg.DialAsync)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, []string{"stderr"}, cfg.Log.Outputs)
}

func TestEnvOverridesFile(t *testing.T) {
	path := writeFile(t, "reqrep.json", `{"driver": "sp", "mode": "request", "log": {"level": "warn"}}`)
	t.Setenv("REQREP_MODE", "pair")
	t.Setenv("REQREP_EXCHANGE_TIMEOUT", "3s")
	t.Setenv("REQREP_LOG_LEVEL", "error")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "pair", cfg.Mode)
	assert.Equal(t, 3*time.Second, cfg.ExchangeTimeout)
	assert.Equal(t, "error", cfg.Log.Level)
}

func TestConfigPathFromEnv(t *testing.T) {
	path := writeFile(t, "reqrep.yaml", "mode: \"0\"\n")
	t.Setenv("REQREP_CONFIG", path)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "0", cfg.Mode)
}

func TestLoadInvalid(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := writeFile(t, "bad.yaml", "mode: sideways\n")
	_, err = Load(path)
	assert.ErrorIs(t, err, reqrep.ErrValidation)

	path = writeFile(t, "neg.yaml", "dial_timeout: -1s\n")
	_, err = Load(path)
	assert.ErrorIs(t, err, reqrep.ErrValidation)
}

func TestMustLoadPanics(t *testing.T) {
	assert.Panics(t, func() { MustLoad(filepath.Join(t.TempDir(), "missing.yaml")) })
}
