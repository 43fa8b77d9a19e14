package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLoadConfig tests loading configuration from file
func TestLoadConfig(t *testing.T) {
	tempDir := t.TempDir()
	configFile := filepath.Join(tempDir, "test_config.yaml")

	configContent := `
fuzzing:
  seed: 12345
  max_input_size: 8192
  mutations_per_run: 4
  only_printable: true
  cmp_feedback: false
  max_iterations: 1000

corpus:
  input_dir: "/tmp/fuzz_in"
  output_dir: "/tmp/fuzz_out"
  persist: true

dictionary:
  path: "/tmp/http.dict"

log:
  directory: "/tmp/fuzz_logs"
  level: "debug"
`
	require.NoError(t, os.WriteFile(configFile, []byte(configContent), 0644))

	cfg, err := LoadConfig(configFile)
	require.NoError(t, err)

	assert.Equal(t, int64(12345), cfg.Fuzzing.Seed)
	assert.Equal(t, 8192, cfg.Fuzzing.MaxInputSize)
	assert.Equal(t, 4, cfg.Fuzzing.MutationsPerRun)
	assert.True(t, cfg.Fuzzing.OnlyPrintable)
	assert.False(t, cfg.Fuzzing.CmpFeedback)
	assert.Equal(t, 1000, cfg.Fuzzing.MaxIterations)

	assert.Equal(t, "/tmp/fuzz_in", cfg.Corpus.InputDir)
	assert.Equal(t, "/tmp/fuzz_out", cfg.Corpus.OutputDir)
	assert.Equal(t, "/tmp/fuzz_out", cfg.PersistDir())

	assert.True(t, cfg.HasDictionary())
	assert.Equal(t, "/tmp/http.dict", cfg.Dictionary.Path)

	assert.Equal(t, "/tmp/fuzz_logs", cfg.GetLogPath())
	assert.Equal(t, "debug", cfg.Log.Level)
}

// TestLoadConfigDefaults: omitted sections keep their defaults
func TestLoadConfigDefaults(t *testing.T) {
	configFile := filepath.Join(t.TempDir(), "minimal.yaml")
	require.NoError(t, os.WriteFile(configFile, []byte("fuzzing:\n  seed: 7\n"), 0644))

	cfg, err := LoadConfig(configFile)
	require.NoError(t, err)

	def := DefaultConfig()
	assert.Equal(t, int64(7), cfg.Fuzzing.Seed)
	assert.Equal(t, def.Fuzzing.MaxInputSize, cfg.Fuzzing.MaxInputSize)
	assert.Equal(t, def.Fuzzing.MutationsPerRun, cfg.Fuzzing.MutationsPerRun)
	assert.Equal(t, def.Log.Directory, cfg.Log.Directory)
	assert.False(t, cfg.HasDictionary())
}

// TestLoadConfigMissingFile tests error on a non-existent path
func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

// TestLoadConfigInvalidYAML tests error on malformed content
func TestLoadConfigInvalidYAML(t *testing.T) {
	configFile := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(configFile, []byte("fuzzing: [not a map"), 0644))

	_, err := LoadConfig(configFile)
	assert.Error(t, err)
}

// TestValidate covers the rejection rules
func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	cfg.Fuzzing.MaxInputSize = 0
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.Fuzzing.MutationsPerRun = -1
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.Fuzzing.MaxIterations = -5
	assert.Error(t, cfg.Validate())
}

// TestPersistDirDisabled: persistence off means no directory
func TestPersistDirDisabled(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Corpus.Persist = false
	assert.Equal(t, "", cfg.PersistDir())
}
