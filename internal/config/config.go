// Package config provides Viper-based hierarchical configuration: defaults,
// an optional YAML config file, environment variables, and an optional .env
// file for development.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"fpereira/extrato-csv/internal/logging"
)

var envOnce sync.Once

// Config is the complete application configuration.
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	Data struct {
		// Directory holds the profile files (rules.yaml, history.yaml).
		Directory string `mapstructure:"directory" yaml:"directory"`
	} `mapstructure:"data" yaml:"data"`

	Categorization struct {
		// RuleConfidence is the fixed confidence of a rule hit.
		RuleConfidence float64 `mapstructure:"rule_confidence" yaml:"rule_confidence"`
		// HistoryWeight is multiplied by a pattern's occurrence count.
		HistoryWeight float64 `mapstructure:"history_weight" yaml:"history_weight"`
		// HistoryCap bounds history confidence below a rule hit.
		HistoryCap float64 `mapstructure:"history_cap" yaml:"history_cap"`
		// MinCommonWords is the history overlap threshold.
		MinCommonWords int `mapstructure:"min_common_words" yaml:"min_common_words"`
		// MinWordLength excludes short words from overlap comparison.
		MinWordLength int `mapstructure:"min_word_length" yaml:"min_word_length"`
		// LearnedKeywordLimit bounds keywords taken from a manual override.
		LearnedKeywordLimit int `mapstructure:"learned_keyword_limit" yaml:"learned_keyword_limit"`
	} `mapstructure:"categorization" yaml:"categorization"`
}

// RulesFile returns the path of the rules profile file.
func (c *Config) RulesFile() string {
	return filepath.Join(c.Data.Directory, "rules.yaml")
}

// HistoryFile returns the path of the history profile file.
func (c *Config) HistoryFile() string {
	return filepath.Join(c.Data.Directory, "history.yaml")
}

// Initialize builds the configuration from defaults, an optional config file
// and EXTRATO_-prefixed environment variables.
func Initialize() (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("$HOME/.extrato-csv")
	v.AddConfigPath(".extrato-csv")
	v.AddConfigPath(".")

	v.SetEnvPrefix("EXTRATO")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// A broken config file should not kill the CLI; defaults and env
			// vars still apply.
			fmt.Fprintf(os.Stderr, "Warning: error reading config file %s: %v\n", v.ConfigFileUsed(), err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("data.directory", defaultDataDirectory())

	v.SetDefault("categorization.rule_confidence", 0.9)
	v.SetDefault("categorization.history_weight", 0.1)
	v.SetDefault("categorization.history_cap", 0.8)
	v.SetDefault("categorization.min_common_words", 2)
	v.SetDefault("categorization.min_word_length", 3)
	v.SetDefault("categorization.learned_keyword_limit", 3)
}

func defaultDataDirectory() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "data"
	}
	return filepath.Join(home, ".extrato-csv")
}

func validate(c *Config) error {
	if c.Categorization.RuleConfidence <= 0 || c.Categorization.RuleConfidence > 1 {
		return fmt.Errorf("categorization.rule_confidence must be in (0,1], got %v", c.Categorization.RuleConfidence)
	}
	if c.Categorization.HistoryCap <= 0 || c.Categorization.HistoryCap > 1 {
		return fmt.Errorf("categorization.history_cap must be in (0,1], got %v", c.Categorization.HistoryCap)
	}
	if c.Categorization.HistoryCap >= c.Categorization.RuleConfidence {
		return fmt.Errorf("categorization.history_cap (%v) must stay below rule_confidence (%v)",
			c.Categorization.HistoryCap, c.Categorization.RuleConfidence)
	}
	if c.Categorization.MinCommonWords < 1 {
		return fmt.Errorf("categorization.min_common_words must be at least 1")
	}
	return nil
}

// LoadEnv loads a .env file once, if one exists next to the working directory.
func LoadEnv() {
	envOnce.Do(func() {
		if _, err := os.Stat(".env"); err != nil {
			return
		}
		_ = godotenv.Load(".env")
	})
}

// NewLogger builds the application logger from the configured level/format.
func NewLogger(c *Config) logging.Logger {
	return logging.NewLogrusAdapter(c.Log.Level, c.Log.Format)
}
