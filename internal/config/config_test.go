package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/lingotype/internal/model"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	require.NoError(t, err)
	assert.Nil(t, cfg.Practice.Lang)
}

func TestLoadConfigEmptyPath(t *testing.T) {
	_, err := LoadConfig("")
	assert.Error(t, err)
}

func TestLoadConfigValues(t *testing.T) {
	path := writeConfig(t, `
[practice]
lang = "en"
file = "/tmp/text.txt"

[log]
level = "debug"

[store]
path = "/tmp/history.db"
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.NotNil(t, cfg.Practice.Lang)
	assert.Equal(t, "en", *cfg.Practice.Lang)
	require.NotNil(t, cfg.Practice.File)
	assert.Equal(t, "/tmp/text.txt", *cfg.Practice.File)
	require.NotNil(t, cfg.Log.Level)
	assert.Equal(t, "debug", *cfg.Log.Level)
	assert.Nil(t, cfg.Log.File)
	require.NotNil(t, cfg.Store.Path)
	assert.Equal(t, "/tmp/history.db", *cfg.Store.Path)
}

func TestLoadConfigRejectsUnknownKeys(t *testing.T) {
	path := writeConfig(t, "[practice]\nwords = 25\n")
	_, err := LoadConfig(path)
	assert.ErrorContains(t, err, "practice.words")
}

func TestLoadConfigInvalidTOML(t *testing.T) {
	path := writeConfig(t, "[practice\n")
	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestLoadEnv(t *testing.T) {
	t.Setenv("LINGOTYPE_LANG", "en")
	t.Setenv("LINGOTYPE_LOG_LEVEL", "warn")
	t.Setenv("LINGOTYPE_DB", "/tmp/env.db")

	cfg, err := LoadEnv()
	require.NoError(t, err)
	assert.Equal(t, "en", cfg.Lang)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, "/tmp/env.db", cfg.DBPath)
	assert.Empty(t, cfg.File)
}

func TestResolvePrecedence(t *testing.T) {
	fileLang := "en"
	fileLevel := "debug"
	defaults := model.Config{Lang: "zh", LogLevel: "info", DBPath: "/default.db"}
	file := FileConfig{
		Practice: PracticeConfig{Lang: &fileLang},
		Log:      LogConfig{Level: &fileLevel},
	}
	env := EnvConfig{LogLevel: "error"}

	cfg := Resolve(defaults, file, env)
	assert.Equal(t, "en", cfg.Lang, "file overrides default")
	assert.Equal(t, "error", cfg.LogLevel, "env overrides file")
	assert.Equal(t, "/default.db", cfg.DBPath, "default kept")
}

func TestXDGPaths(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/cfg")
	t.Setenv("XDG_DATA_HOME", "/data")
	t.Setenv("XDG_STATE_HOME", "/state")

	assert.Equal(t, filepath.Join("/cfg", "lingotype", "config.toml"), DefaultConfigPath())
	assert.Equal(t, filepath.Join("/data", "lingotype", "lingotype.db"), DefaultDBPath())
	assert.Equal(t, filepath.Join("/state", "lingotype", "lingotype.log"), DefaultLogPath())
}
