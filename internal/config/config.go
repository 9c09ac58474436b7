// Package config loads kanaz settings from defaults, an optional .env file,
// an optional YAML config file, KANAZ_* environment variables and command
// line overrides, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/abhisek/kanaz/internal/corpus"
	"github.com/abhisek/kanaz/internal/difficulty"
	"github.com/abhisek/kanaz/internal/drill"
	"github.com/abhisek/kanaz/internal/progress"
	"github.com/abhisek/kanaz/internal/store"
)

// ErrInvalid is returned when a loaded setting fails validation.
var ErrInvalid = errors.New("config: invalid settings")

// Setting keys, shared by the config file, env vars and overrides.
const (
	KeyTier          = "tier"
	KeyLearningRate  = "learning_rate"
	KeyLearningLimit = "learning_limit"
	KeySecondWeight  = "second_weight"
	KeySave          = "save"
	KeyCorpusURL     = "corpus_url"
	KeyCorpusTimeout = "corpus_timeout"
	KeyDataDir       = "data_dir"
	KeyDebug         = "debug"
)

const (
	// EnvPrefix prefixes environment overrides, e.g. KANAZ_TIER.
	EnvPrefix = "KANAZ"

	// FileName is the config file looked up in the data directory.
	FileName = "config.yaml"

	// LogFileName is the log file inside the data directory.
	LogFileName = "kanaz.log"
)

// Config holds the resolved settings.
type Config struct {
	Tier          int           `mapstructure:"tier" validate:"min=1,max=3"`
	LearningRate  float64       `mapstructure:"learning_rate" validate:"gt=0"`
	LearningLimit float64       `mapstructure:"learning_limit" validate:"gt=0.5"`
	SecondWeight  float64       `mapstructure:"second_weight" validate:"gte=0"`
	Save          bool          `mapstructure:"save"`
	CorpusURL     string        `mapstructure:"corpus_url" validate:"required,url"`
	CorpusTimeout time.Duration `mapstructure:"corpus_timeout" validate:"gt=0"`
	DataDir       string        `mapstructure:"data_dir" validate:"required"`
	Debug         bool          `mapstructure:"debug"`
}

// Options controls where settings are read from.
type Options struct {
	// ConfigFile is an explicit config path. It must exist when set.
	ConfigFile string

	// EnvFile is the dotenv file to load. Empty means ".env"; a missing
	// file is ignored.
	EnvFile string

	// Overrides are applied last, keyed by the Key* constants.
	Overrides map[string]any
}

// Load resolves the configuration.
func Load(opts Options) (*Config, error) {
	envFile := opts.EnvFile
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load %s: %w", envFile, err)
	}

	v := viper.New()
	if err := setDefaults(v); err != nil {
		return nil, err
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	configFile := opts.ConfigFile
	if configFile == "" {
		dataDir := v.GetString(KeyDataDir)
		if d, ok := opts.Overrides[KeyDataDir].(string); ok && d != "" {
			dataDir = d
		}
		candidate := filepath.Join(dataDir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			configFile = candidate
		}
	}
	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", configFile, err)
		}
	}

	for k, val := range opts.Overrides {
		v.Set(k, val)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := validateStruct(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) error {
	dataDir, err := store.DataDir()
	if err != nil {
		return fmt.Errorf("resolve data dir: %w", err)
	}

	p := drill.DefaultParams()
	v.SetDefault(KeyTier, int(difficulty.TierGojuuon))
	v.SetDefault(KeyLearningRate, p.LearningRate)
	v.SetDefault(KeyLearningLimit, p.LearningLimit)
	v.SetDefault(KeySecondWeight, p.SecondWeight)
	v.SetDefault(KeySave, true)
	v.SetDefault(KeyCorpusURL, corpus.DefaultURL)
	v.SetDefault(KeyCorpusTimeout, corpus.DefaultTimeout)
	v.SetDefault(KeyDataDir, dataDir)
	v.SetDefault(KeyDebug, false)
	return nil
}

// DrillTier returns the configured tier.
func (c *Config) DrillTier() difficulty.Tier {
	return difficulty.Tier(c.Tier)
}

// Params returns the scheduler parameters.
func (c *Config) Params() drill.Params {
	return drill.Params{
		LearningRate:  c.LearningRate,
		LearningLimit: c.LearningLimit,
		SecondWeight:  c.SecondWeight,
	}
}

// CorpusPath is the local corpus file.
func (c *Config) CorpusPath() string {
	return filepath.Join(c.DataDir, corpus.FileName)
}

// ProgressPath is the progress snapshot file.
func (c *Config) ProgressPath() string {
	return filepath.Join(c.DataDir, progress.FileName)
}

// DBPath is the event database.
func (c *Config) DBPath() string {
	return filepath.Join(c.DataDir, store.DBFileName)
}

// LogPath is the log file.
func (c *Config) LogPath() string {
	return filepath.Join(c.DataDir, LogFileName)
}
