package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Environment selects where the reference server keeps its data
type Environment string

const (
	Development Environment = "development"
	Testing     Environment = "testing"
	Production  Environment = "production"
)

// Config holds all configuration options for the task manager
type Config struct {
	API         APIConfig
	Validation  ValidationConfig
	Display     DisplayConfig
	Application ApplicationConfig
	Commands    CommandsConfig
	Server      ServerConfig
}

// APIConfig describes how the client reaches the task backend
type APIConfig struct {
	BaseURL string        `env:"TM_API_URL"`
	Timeout time.Duration `env:"TM_API_TIMEOUT"` // zero means requests never time out
}

// ValidationConfig holds the truncate-on-write limits of the task form
type ValidationConfig struct {
	TitleMaxLength       int `env:"TM_VALIDATION_TITLE_MAX"`
	DescriptionMaxLength int `env:"TM_VALIDATION_DESCRIPTION_MAX"`
}

// DisplayConfig holds display formatting configuration
type DisplayConfig struct {
	TimeFormat    string        `env:"TM_DISPLAY_TIME_FORMAT"`
	DueSoonWindow time.Duration `env:"TM_DISPLAY_DUE_SOON_WINDOW"`
	Color         bool          `env:"TM_DISPLAY_COLOR"`
}

// ApplicationConfig holds application-level configuration
type ApplicationConfig struct {
	Environment Environment `env:"TM_ENV"`
	Verbose     bool        `env:"TM_APP_VERBOSE"`
}

// CommandsConfig holds command-specific defaults
type CommandsConfig struct {
	ListDefaultFilter   string `env:"TM_LIST_DEFAULT_FILTER"`
	ListDefaultSort     string `env:"TM_LIST_DEFAULT_SORT"`
	ExportDefaultFormat string `env:"TM_EXPORT_DEFAULT_FORMAT"`
}

// ServerConfig configures the reference backend started by `tm serve`
type ServerConfig struct {
	Addr           string        `env:"TM_SERVER_ADDR"`
	DBDir          string        `env:"TM_DB_DIR"`
	DBFilename     string        `env:"TM_DB_FILENAME"`
	QueryTimeout   time.Duration `env:"TM_DB_QUERY_TIMEOUT"`
	WriteTimeout   time.Duration `env:"TM_DB_WRITE_TIMEOUT"`
	AllowedOrigins []string      `env:"TM_CORS_ALLOWED_ORIGINS"`
}

// NewConfig creates a new configuration with sensible defaults
func NewConfig() *Config {
	homeDir, _ := os.UserHomeDir()

	return &Config{
		API: APIConfig{
			BaseURL: "http://localhost:8080/api/tasks",
			Timeout: 0,
		},
		Validation: ValidationConfig{
			TitleMaxLength:       100,
			DescriptionMaxLength: 500,
		},
		Display: DisplayConfig{
			TimeFormat:    "Jan 2, 2006 03:04 PM",
			DueSoonWindow: 24 * time.Hour,
			Color:         true,
		},
		Application: ApplicationConfig{
			Environment: Production,
			Verbose:     false,
		},
		Commands: CommandsConfig{
			ListDefaultFilter:   "all",
			ListDefaultSort:     "date",
			ExportDefaultFormat: "csv",
		},
		Server: ServerConfig{
			Addr:           ":8080",
			DBDir:          filepath.Join(homeDir, ".tm"),
			DBFilename:     "tm.db",
			QueryTimeout:   10 * time.Second,
			WriteTimeout:   5 * time.Second,
			AllowedOrigins: []string{"http://localhost:3000", "http://localhost:5173", "http://localhost:5174"},
		},
	}
}

// GetDatabasePath returns the full path to the server database file
func (c *Config) GetDatabasePath() string {
	return filepath.Join(c.Server.DBDir, c.Server.DBFilename)
}

// LoadFromEnvironment loads configuration from environment variables.
// Values that fail to parse leave the current setting untouched.
func (c *Config) LoadFromEnvironment() error {
	// API configuration
	if url := os.Getenv("TM_API_URL"); url != "" {
		c.API.BaseURL = url
	}
	if timeout := os.Getenv("TM_API_TIMEOUT"); timeout != "" {
		c.API.Timeout = ParseDurationWithFallback(timeout, c.API.Timeout)
	}

	// Validation configuration
	if maxLen := os.Getenv("TM_VALIDATION_TITLE_MAX"); maxLen != "" {
		c.Validation.TitleMaxLength = ParseIntWithFallback(maxLen, c.Validation.TitleMaxLength)
	}
	if maxLen := os.Getenv("TM_VALIDATION_DESCRIPTION_MAX"); maxLen != "" {
		c.Validation.DescriptionMaxLength = ParseIntWithFallback(maxLen, c.Validation.DescriptionMaxLength)
	}

	// Display configuration
	if format := os.Getenv("TM_DISPLAY_TIME_FORMAT"); format != "" {
		c.Display.TimeFormat = format
	}
	if window := os.Getenv("TM_DISPLAY_DUE_SOON_WINDOW"); window != "" {
		c.Display.DueSoonWindow = ParseDurationWithFallback(window, c.Display.DueSoonWindow)
	}
	if color := os.Getenv("TM_DISPLAY_COLOR"); color != "" {
		c.Display.Color = ParseBoolWithFallback(color, c.Display.Color)
	}
	if os.Getenv("NO_COLOR") != "" {
		c.Display.Color = false
	}

	// Application configuration
	if env := os.Getenv("TM_ENV"); env != "" {
		c.Application.Environment = parseEnvironment(env)
	}
	if verbose := os.Getenv("TM_APP_VERBOSE"); verbose != "" {
		c.Application.Verbose = ParseBoolWithFallback(verbose, c.Application.Verbose)
	}

	// Commands configuration
	if filter := os.Getenv("TM_LIST_DEFAULT_FILTER"); filter != "" {
		c.Commands.ListDefaultFilter = filter
	}
	if sortKey := os.Getenv("TM_LIST_DEFAULT_SORT"); sortKey != "" {
		c.Commands.ListDefaultSort = sortKey
	}
	if format := os.Getenv("TM_EXPORT_DEFAULT_FORMAT"); format != "" {
		c.Commands.ExportDefaultFormat = format
	}

	// Server configuration
	if addr := os.Getenv("TM_SERVER_ADDR"); addr != "" {
		c.Server.Addr = addr
	}
	if dir := os.Getenv("TM_DB_DIR"); dir != "" {
		c.Server.DBDir = dir
	}
	if filename := os.Getenv("TM_DB_FILENAME"); filename != "" {
		c.Server.DBFilename = filename
	}
	if timeout := os.Getenv("TM_DB_QUERY_TIMEOUT"); timeout != "" {
		c.Server.QueryTimeout = ParseDurationWithFallback(timeout, c.Server.QueryTimeout)
	}
	if timeout := os.Getenv("TM_DB_WRITE_TIMEOUT"); timeout != "" {
		c.Server.WriteTimeout = ParseDurationWithFallback(timeout, c.Server.WriteTimeout)
	}
	if origins := os.Getenv("TM_CORS_ALLOWED_ORIGINS"); origins != "" {
		c.Server.AllowedOrigins = splitList(origins)
	}

	return nil
}

// Validate validates the configuration and returns any errors
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return &ConfigError{Field: "api.base_url", Message: "API base URL cannot be empty"}
	}
	if c.API.Timeout < 0 {
		return &ConfigError{Field: "api.timeout", Message: "API timeout cannot be negative"}
	}

	if c.Validation.TitleMaxLength < 1 {
		return &ConfigError{Field: "validation.title_max_length", Message: "title maximum length must be at least 1"}
	}
	if c.Validation.DescriptionMaxLength < 0 {
		return &ConfigError{Field: "validation.description_max_length", Message: "description maximum length cannot be negative"}
	}

	if c.Display.TimeFormat == "" {
		return &ConfigError{Field: "display.time_format", Message: "time format cannot be empty"}
	}
	if c.Display.DueSoonWindow <= 0 {
		return &ConfigError{Field: "display.due_soon_window", Message: "due-soon window must be positive"}
	}

	if c.Server.Addr == "" {
		return &ConfigError{Field: "server.addr", Message: "server address cannot be empty"}
	}
	if c.Server.DBFilename == "" {
		return &ConfigError{Field: "server.db_filename", Message: "database filename cannot be empty"}
	}
	if c.Server.QueryTimeout < 0 || c.Server.WriteTimeout < 0 {
		return &ConfigError{Field: "server.timeouts", Message: "database timeouts cannot be negative"}
	}

	return nil
}

// ConfigError represents a configuration validation error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}

func parseEnvironment(s string) Environment {
	switch Environment(strings.ToLower(s)) {
	case Development:
		return Development
	case Testing:
		return Testing
	default:
		// Default to production for safety
		return Production
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// ParseDurationWithFallback parses a duration string with a fallback value
func ParseDurationWithFallback(s string, fallback time.Duration) time.Duration {
	if d, err := time.ParseDuration(s); err == nil {
		return d
	}
	return fallback
}

// ParseIntWithFallback parses an integer string with a fallback value
func ParseIntWithFallback(s string, fallback int) int {
	if i, err := strconv.Atoi(s); err == nil {
		return i
	}
	return fallback
}

// ParseBoolWithFallback parses a boolean string with a fallback value
func ParseBoolWithFallback(s string, fallback bool) bool {
	if b, err := strconv.ParseBool(s); err == nil {
		return b
	}
	return fallback
}
