package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexballas/imview/internal/config"
)

func execute(t *testing.T, args ...string) (config.Config, string, error) {
	t.Helper()
	var (
		gotCfg  config.Config
		gotPath string
	)
	cmd := newRootCmd(func(cfg config.Config, path string) error {
		gotCfg, gotPath = cfg, path
		return nil
	})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return gotCfg, gotPath, err
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestRootCmdPathArgument(t *testing.T) {
	cfgPath := writeConfig(t, "log_level: warn\n")

	cfg, path, err := execute(t, "--config", cfgPath, "/tmp/pics")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/pics", path)
	assert.Equal(t, "warn", cfg.LogLevel)

	_, path, err = execute(t, "--config", cfgPath)
	require.NoError(t, err)
	assert.Empty(t, path)
}

func TestRootCmdRejectsExtraArgs(t *testing.T) {
	_, _, err := execute(t, "a", "b")
	assert.Error(t, err)
}

func TestRootCmdFlagsOverrideFile(t *testing.T) {
	cfgPath := writeConfig(t, "log_level: warn\nwatch: false\nextensions: [.png]\n")

	cfg, _, err := execute(t, "--config", cfgPath, "--log-level", "debug", "--watch", "--ext", "jpg,gif")
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.True(t, cfg.Watch)
	assert.Equal(t, []string{"jpg", "gif"}, cfg.Extensions)
}

func TestRootCmdUnsetFlagsKeepFileValues(t *testing.T) {
	cfgPath := writeConfig(t, "watch: true\nextensions: [.png]\n")

	cfg, _, err := execute(t, "--config", cfgPath)
	require.NoError(t, err)
	assert.True(t, cfg.Watch)
	assert.Equal(t, []string{".png"}, cfg.Extensions)
}

func TestRootCmdInvalidSettings(t *testing.T) {
	cfgPath := writeConfig(t, "")

	_, _, err := execute(t, "--config", cfgPath, "--log-level", "loud")
	assert.ErrorIs(t, err, config.ErrInvalidConfig)

	_, _, err = execute(t, "--config", writeConfig(t, "cache_size: -1\n"))
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}
