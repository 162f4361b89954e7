package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AidanWoolley/demikernel/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load(config.New())
	require.NoError(t, err)
	assert.Equal(t, config.DefaultStateDir, cfg.StateDir)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, "shaped", cfg.Custom)
	assert.Equal(t, "catniptopo", cfg.Topo)
}

func TestLoadPrecedence(t *testing.T) {
	file := filepath.Join(t.TempDir(), "catnet.toml")
	require.NoError(t, os.WriteFile(file, []byte(`
state_dir = "/tmp/from-file"
custom = "plain"

[log]
level = "debug"
`), 0o644))
	t.Setenv("CATNET_LOG_FORMAT", "json")
	t.Setenv("CATNET_CUSTOM", "bottleneck")

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String(config.KeyConfigFile, "", "")
	fs.String(config.KeyStateDir, "", "")
	require.NoError(t, fs.Parse([]string{"--config", file, "--state_dir", "/tmp/from-flag"}))

	v := config.New()
	require.NoError(t, config.BindFlags(v, fs))
	cfg, err := config.Load(v)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/from-flag", cfg.StateDir)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "bottleneck", cfg.Custom)
}

func TestLoadMissingFile(t *testing.T) {
	v := config.New()
	v.Set(config.KeyConfigFile, filepath.Join(t.TempDir(), "nope.yaml"))
	_, err := config.Load(v)
	assert.Error(t, err)
}
