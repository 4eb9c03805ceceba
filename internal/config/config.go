// Package config resolves perfil settings from flags, PERFIL_* environment
// variables, an optional YAML file and built-in defaults, in that order.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "PERFIL"

// Defaults.
const (
	DefaultEndpoint    = "http://localhost:5000/salvar-resposta"
	DefaultResultsPath = "/resultado"
	DefaultLogLevel    = "info"
)

// StderrLogFile as log_file sends human-readable logs to stderr instead of a file.
const StderrLogFile = "-"

// Config holds the resolved settings.
type Config struct {
	Endpoint    string        `mapstructure:"endpoint"`
	ResultsPath string        `mapstructure:"results_path"`
	DB          string        `mapstructure:"db"`
	BankFile    string        `mapstructure:"bank_file"`
	Timeout     time.Duration `mapstructure:"timeout"`
	LogLevel    string        `mapstructure:"log_level"`
	LogFile     string        `mapstructure:"log_file"`

	// File is the config file that was read, if any.
	File string `mapstructure:"-"`
}

// Keys lists every setting in display order.
var Keys = []string{"endpoint", "results_path", "db", "bank_file", "timeout", "log_level", "log_file"}

// flagKeys maps command-line flag names onto setting keys.
var flagKeys = map[string]string{
	"endpoint":  "endpoint",
	"db":        "db",
	"log-level": "log_level",
	"bank":      "bank_file",
	"timeout":   "timeout",
}

// Load resolves the configuration. configPath may be empty, in which case
// GlobalPath is tried. flags may be nil.
func Load(configPath string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigFile(GlobalPath())
	}
	v.SetConfigType("yaml")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	cfg := &Config{}
	if err := v.ReadInConfig(); err != nil {
		// An explicit path must exist; the global file is optional.
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !(errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist)) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	} else {
		cfg.File = v.ConfigFileUsed()
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("endpoint", DefaultEndpoint)
	v.SetDefault("results_path", DefaultResultsPath)
	v.SetDefault("db", "")
	v.SetDefault("bank_file", "")
	v.SetDefault("timeout", time.Duration(0))
	v.SetDefault("log_level", DefaultLogLevel)
	v.SetDefault("log_file", DefaultLogFile())
}

// Validate checks the settings that would otherwise fail late.
func (c *Config) Validate() error {
	if c.Endpoint == "" {
		return errors.New("endpoint is required")
	}
	u, err := url.Parse(c.Endpoint)
	if err != nil {
		return fmt.Errorf("invalid endpoint: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("endpoint must be http or https, got %q", c.Endpoint)
	}
	if u.Host == "" {
		return fmt.Errorf("endpoint has no host: %q", c.Endpoint)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative, got %s", c.Timeout)
	}
	if !strings.HasPrefix(c.ResultsPath, "/") {
		return fmt.Errorf("results_path must start with /, got %q", c.ResultsPath)
	}
	return nil
}

// Get returns the display value of key.
func (c *Config) Get(key string) string {
	switch key {
	case "endpoint":
		return c.Endpoint
	case "results_path":
		return c.ResultsPath
	case "db":
		return c.DB
	case "bank_file":
		return c.BankFile
	case "timeout":
		return c.Timeout.String()
	case "log_level":
		return c.LogLevel
	case "log_file":
		return c.LogFile
	}
	return ""
}

// EnvName returns the environment variable that overrides key.
func EnvName(key string) string {
	return EnvPrefix + "_" + strings.ToUpper(key)
}

// GlobalPath is the default config file location.
func GlobalPath() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return filepath.Join(".perfil", "config.yaml")
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "perfil", "config.yaml")
}

// DefaultLogFile is where logs go when log_file is unset.
func DefaultLogFile() string {
	dir := os.Getenv("XDG_STATE_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "perfil.log"
		}
		dir = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(dir, "perfil", "perfil.log")
}

// Write saves cfg as YAML at path.
func Write(cfg *Config, path string) error {
	v := viper.New()
	v.Set("endpoint", cfg.Endpoint)
	v.Set("results_path", cfg.ResultsPath)
	v.Set("db", cfg.DB)
	v.Set("bank_file", cfg.BankFile)
	v.Set("timeout", cfg.Timeout.String())
	v.Set("log_level", cfg.LogLevel)
	v.Set("log_file", cfg.LogFile)

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	return v.WriteConfigAs(path)
}
