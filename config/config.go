package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the main configuration structure
type Config struct {
	Fuzzing    FuzzingConfig    `yaml:"fuzzing"`
	Corpus     CorpusConfig     `yaml:"corpus"`
	Dictionary DictionaryConfig `yaml:"dictionary"`
	Log        LogConfig        `yaml:"log"`
}

// FuzzingConfig holds mutation engine settings
type FuzzingConfig struct {
	Seed            int64 `yaml:"seed"` // Random seed, 0 means use current time
	MaxInputSize    int   `yaml:"max_input_size"`
	MutationsPerRun int   `yaml:"mutations_per_run"`
	OnlyPrintable   bool  `yaml:"only_printable"`
	CmpFeedback     bool  `yaml:"cmp_feedback"`
	MaxIterations   int   `yaml:"max_iterations"` // 0 means unbounded
}

// CorpusConfig holds corpus directories and persistence settings
type CorpusConfig struct {
	InputDir  string `yaml:"input_dir"`
	OutputDir string `yaml:"output_dir"`
	Persist   bool   `yaml:"persist"`
}

// DictionaryConfig points at the optional user dictionary file
type DictionaryConfig struct {
	Path string `yaml:"path"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Directory string `yaml:"directory"`
	Level     string `yaml:"level"`
}

// DefaultConfig returns a configuration with workable defaults
func DefaultConfig() *Config {
	return &Config{
		Fuzzing: FuzzingConfig{
			Seed:            0,
			MaxInputSize:    1 << 16,
			MutationsPerRun: 6,
			OnlyPrintable:   false,
			CmpFeedback:     true,
			MaxIterations:   0,
		},
		Corpus: CorpusConfig{
			InputDir:  "corpus",
			OutputDir: "corpus_out",
			Persist:   true,
		},
		Log: LogConfig{
			Directory: "logs",
			Level:     "info",
		},
	}
}

// LoadConfig loads configuration from the specified YAML file
func LoadConfig(configPath string) (*Config, error) {
	// Read the config file
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Parse YAML on top of the defaults
	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Fuzzing.MaxInputSize <= 0 {
		return fmt.Errorf("fuzzing.max_input_size must be positive, got %d", c.Fuzzing.MaxInputSize)
	}
	if c.Fuzzing.MutationsPerRun < 0 {
		return fmt.Errorf("fuzzing.mutations_per_run must not be negative, got %d", c.Fuzzing.MutationsPerRun)
	}
	if c.Fuzzing.MaxIterations < 0 {
		return fmt.Errorf("fuzzing.max_iterations must not be negative, got %d", c.Fuzzing.MaxIterations)
	}
	return nil
}

// GetLogPath returns the log directory path
func (c *Config) GetLogPath() string {
	return c.Log.Directory
}

// HasDictionary returns whether a user dictionary is configured
func (c *Config) HasDictionary() bool {
	return c.Dictionary.Path != ""
}

// PersistDir returns the corpus output directory, or empty when persistence
// is disabled
func (c *Config) PersistDir() string {
	if !c.Corpus.Persist {
		return ""
	}
	return c.Corpus.OutputDir
}
