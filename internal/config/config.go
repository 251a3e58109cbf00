package config

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the docchat client
type Config struct {
	Backend BackendConfig `mapstructure:"backend"`
	State   StateConfig   `mapstructure:"state"`
	Log     LogConfig     `mapstructure:"log"`
}

// BackendConfig holds remote RAG backend configuration
type BackendConfig struct {
	BaseURL        string        `mapstructure:"base_url"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	QueryTimeout   time.Duration `mapstructure:"query_timeout"`
}

// StateConfig holds client-scoped state configuration
type StateConfig struct {
	Dir string `mapstructure:"dir"`
}

// LogConfig holds log file configuration
type LogConfig struct {
	Path  string `mapstructure:"path"`
	Level string `mapstructure:"level"`
}

// Load loads configuration from file and environment
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Set defaults
	setDefaults(v)

	// Read config file if specified
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// Environment variables
	v.SetEnvPrefix("DOCCHAT")
	v.AutomaticEnv()

	// Read config
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		// Config file not found, use defaults
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("backend.base_url", "http://localhost:8000")
	v.SetDefault("backend.request_timeout", 30*time.Second)
	// Queries can take a while on large documents, but stay bounded so a
	// hung backend can never wedge the client.
	v.SetDefault("backend.query_timeout", 120*time.Second)

	v.SetDefault("state.dir", ".docchat")

	v.SetDefault("log.path", "")
	v.SetDefault("log.level", "info")
}

// DatabasePath returns the path of the client-scoped settings database.
func (c *Config) DatabasePath() string {
	return filepath.Join(c.State.Dir, "docchat.db")
}

// LogPath returns the log file path, defaulting into the state dir.
func (c *Config) LogPath() string {
	if c.Log.Path != "" {
		return c.Log.Path
	}
	return filepath.Join(c.State.Dir, "docchat.log")
}
