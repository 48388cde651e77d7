package config

import (
	stderrors "errors"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// DefaultEnvFile is read from the working directory unless TM_ENV_FILE says otherwise
const DefaultEnvFile = ".env"

// Loader handles loading configuration from multiple sources
type Loader struct {
	config  *Config
	envFile string
}

// NewLoader creates a new configuration loader
func NewLoader() *Loader {
	envFile := os.Getenv("TM_ENV_FILE")
	if envFile == "" {
		envFile = DefaultEnvFile
	}
	return &Loader{
		config:  NewConfig(),
		envFile: envFile,
	}
}

// WithEnvFile points the loader at a different dotenv file
func (l *Loader) WithEnvFile(path string) *Loader {
	l.envFile = path
	return l
}

// Load loads configuration using the cascading strategy:
// 1. Start with defaults
// 2. Fill unset environment variables from the dotenv file, if present
// 3. Override with environment variables
// 4. Override with command line flags (handled by cobra)
func (l *Loader) Load() (*Config, error) {
	if err := l.loadEnvFile(); err != nil {
		return nil, err
	}

	if err := l.config.LoadFromEnvironment(); err != nil {
		return nil, err
	}

	if err := l.config.Validate(); err != nil {
		return nil, err
	}

	return l.config, nil
}

// loadEnvFile never overrides variables that are already set
func (l *Loader) loadEnvFile() error {
	if l.envFile == "" {
		return nil
	}
	err := godotenv.Load(l.envFile)
	if err == nil || stderrors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return &ConfigError{Field: "env_file", Message: err.Error()}
}

// LoadWithOverrides loads configuration and applies command line overrides
func (l *Loader) LoadWithOverrides(overrides *ConfigOverrides) (*Config, error) {
	config, err := l.Load()
	if err != nil {
		return nil, err
	}

	if overrides != nil {
		overrides.Apply(config)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// ConfigOverrides holds command line flag overrides. Nil fields are not applied.
type ConfigOverrides struct {
	APIURL        *string
	APITimeout    *time.Duration
	TimeFormat    *string
	DueSoonWindow *time.Duration
	Color         *bool
	Verbose       *bool
	ServerAddr    *string
	DBDir         *string
}

// Apply applies the overrides to the configuration
func (o *ConfigOverrides) Apply(config *Config) {
	if o.APIURL != nil {
		config.API.BaseURL = *o.APIURL
	}
	if o.APITimeout != nil {
		config.API.Timeout = *o.APITimeout
	}
	if o.TimeFormat != nil {
		config.Display.TimeFormat = *o.TimeFormat
	}
	if o.DueSoonWindow != nil {
		config.Display.DueSoonWindow = *o.DueSoonWindow
	}
	if o.Color != nil {
		config.Display.Color = *o.Color
	}
	if o.Verbose != nil {
		config.Application.Verbose = *o.Verbose
	}
	if o.ServerAddr != nil {
		config.Server.Addr = *o.ServerAddr
	}
	if o.DBDir != nil {
		config.Server.DBDir = *o.DBDir
	}
}
