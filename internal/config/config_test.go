package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/kanaz/internal/corpus"
	"github.com/abhisek/kanaz/internal/drill"
)

// isolate points every lookup at a temp dir and clears KANAZ_* env vars.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("KANAZ_DATA_DIR", dir)
	for _, k := range []string{"TIER", "LEARNING_RATE", "LEARNING_LIMIT", "SECOND_WEIGHT", "SAVE", "CORPUS_URL", "DEBUG"} {
		t.Setenv(EnvPrefix+"_"+k, "")
	}
	return dir
}

func noEnvFile(t *testing.T) string {
	return filepath.Join(t.TempDir(), "missing.env")
}

func TestLoadDefaults(t *testing.T) {
	dir := isolate(t)

	cfg, err := Load(Options{EnvFile: noEnvFile(t)})
	require.NoError(t, err)

	assert.Equal(t, 1, cfg.Tier)
	assert.Equal(t, drill.DefaultParams(), cfg.Params())
	assert.True(t, cfg.Save)
	assert.False(t, cfg.Debug)
	assert.Equal(t, corpus.DefaultURL, cfg.CorpusURL)
	assert.Equal(t, corpus.DefaultTimeout, cfg.CorpusTimeout)
	assert.Equal(t, dir, cfg.DataDir)
	assert.Equal(t, filepath.Join(dir, "hiragana.json"), cfg.CorpusPath())
	assert.Equal(t, filepath.Join(dir, "userdata.json"), cfg.ProgressPath())
	assert.Equal(t, filepath.Join(dir, "kanaz.db"), cfg.DBPath())
	assert.Equal(t, filepath.Join(dir, "kanaz.log"), cfg.LogPath())
}

func TestLoadEnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("KANAZ_TIER", "3")
	t.Setenv("KANAZ_SAVE", "false")
	t.Setenv("KANAZ_LEARNING_RATE", "0.25")
	t.Setenv("KANAZ_CORPUS_TIMEOUT", "5s")

	cfg, err := Load(Options{EnvFile: noEnvFile(t)})
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.Tier)
	assert.False(t, cfg.Save)
	assert.InDelta(t, 0.25, cfg.LearningRate, 1e-12)
	assert.Equal(t, 5*time.Second, cfg.CorpusTimeout)
}

func TestLoadConfigFileInDataDir(t *testing.T) {
	dir := isolate(t)
	yaml := "tier: 2\nlearning_limit: 8\nsecond_weight: 0\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(yaml), 0o644))

	cfg, err := Load(Options{EnvFile: noEnvFile(t)})
	require.NoError(t, err)

	assert.Equal(t, 2, cfg.Tier)
	assert.InDelta(t, 8.0, cfg.LearningLimit, 1e-12)
	assert.Zero(t, cfg.SecondWeight)
}

func TestLoadExplicitConfigFile(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("tier: 3\n"), 0o644))

	cfg, err := Load(Options{ConfigFile: path, EnvFile: noEnvFile(t)})
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Tier)
}

func TestLoadMissingExplicitConfigFile(t *testing.T) {
	isolate(t)
	_, err := Load(Options{ConfigFile: filepath.Join(t.TempDir(), "nope.yaml"), EnvFile: noEnvFile(t)})
	assert.Error(t, err)
}

func TestLoadPrecedence(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte("tier: 2\n"), 0o644))
	t.Setenv("KANAZ_TIER", "3")

	cfg, err := Load(Options{EnvFile: noEnvFile(t)})
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Tier, "env beats config file")

	cfg, err = Load(Options{EnvFile: noEnvFile(t), Overrides: map[string]any{KeyTier: 1}})
	require.NoError(t, err)
	assert.Equal(t, 1, cfg.Tier, "overrides beat env")
}

func TestLoadDataDirOverrideFindsConfig(t *testing.T) {
	isolate(t)
	other := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(other, FileName), []byte("tier: 2\n"), 0o644))

	cfg, err := Load(Options{EnvFile: noEnvFile(t), Overrides: map[string]any{KeyDataDir: other}})
	require.NoError(t, err)
	assert.Equal(t, other, cfg.DataDir)
	assert.Equal(t, 2, cfg.Tier)
}

func TestLoadDotEnv(t *testing.T) {
	isolate(t)
	// godotenv never overrides variables already present, so start unset.
	require.NoError(t, os.Unsetenv("KANAZ_TIER"))
	t.Cleanup(func() { os.Unsetenv("KANAZ_TIER") })

	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("KANAZ_TIER=2\n"), 0o644))

	cfg, err := Load(Options{EnvFile: envFile})
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Tier)
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name      string
		overrides map[string]any
	}{
		{"tier too low", map[string]any{KeyTier: 0}},
		{"tier too high", map[string]any{KeyTier: 4}},
		{"zero rate", map[string]any{KeyLearningRate: 0.0}},
		{"negative rate", map[string]any{KeyLearningRate: -0.1}},
		{"limit at floor", map[string]any{KeyLearningLimit: 0.5}},
		{"negative second weight", map[string]any{KeySecondWeight: -1.0}},
		{"bad url", map[string]any{KeyCorpusURL: "not a url"}},
		{"zero corpus timeout", map[string]any{KeyCorpusTimeout: "0s"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			_, err := Load(Options{EnvFile: noEnvFile(t), Overrides: tt.overrides})
			assert.ErrorIs(t, err, ErrInvalid)
		})
	}
}
