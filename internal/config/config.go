package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/sirupsen/logrus"
)

// Create a new instance of the logger
// Configure it to log at the desired level
// and format it as JSON for structured logging
var log = logrus.New()

func init() {
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetLevel(levelForEnvironment(GetEnvWithDefault("APP_ENV", "development")))
}

// levelForEnvironment is the log level used when LOG_LEVEL is not set
func levelForEnvironment(environment string) logrus.Level {
	switch environment {
	case "development":
		return logrus.DebugLevel
	case "production":
		return logrus.ErrorLevel
	default:
		// Default to info level for other environments
		return logrus.InfoLevel
	}
}

// Defaults used when neither the config file nor the environment sets a value
const (
	DefaultPort             = 5555
	DefaultHost             = "localhost"
	DefaultDatabaseURI      = "sqlite:///app.db"
	DefaultEnvironment      = "development"
	DefaultLogLevel         = "" // empty follows APP_ENV, see Config.Level
	DefaultDBMaxRetries     = 5
	DefaultCORSAllowOrigins = "*"
)

// configFileEnv names the optional YAML file layered between defaults and environment
const configFileEnv = "CONFIG_FILE"

// knownKeys are the environment variables read into Config. Everything else in
// the environment is ignored.
var knownKeys = map[string]bool{
	"app_port":           true,
	"app_host":           true,
	"app_env":            true,
	"log_level":          true,
	"db_uri":             true,
	"db_max_retries":     true,
	"seed_database":      true,
	"cors_allow_origins": true,
}

// Config used for the application configuration
type Config struct {
	// Server Configuration
	Port        int    `json:"port" koanf:"app_port"`
	Host        string `json:"host" koanf:"app_host"`
	Environment string `json:"environment" koanf:"app_env"`

	// Database configuration
	DatabaseURI  string `json:"db_uri" koanf:"db_uri"`
	DBMaxRetries int    `json:"db_max_retries" koanf:"db_max_retries"`
	SeedDatabase bool   `json:"seed_database" koanf:"seed_database"`

	// Logging configuration
	LogLevel string `json:"log_level" koanf:"log_level"`

	// CORSAllowOrigins is a comma separated list, "*" allows any origin
	CORSAllowOrigins string `json:"cors_allow_origins" koanf:"cors_allow_origins"`
}

// New returns a Config populated with defaults
func New() *Config {
	return &Config{
		Port:             DefaultPort,
		Host:             DefaultHost,
		Environment:      DefaultEnvironment,
		DatabaseURI:      DefaultDatabaseURI,
		DBMaxRetries:     DefaultDBMaxRetries,
		SeedDatabase:     true,
		LogLevel:         DefaultLogLevel,
		CORSAllowOrigins: DefaultCORSAllowOrigins,
	}
}

// String returns a string representation of Config with sensitive data masked
func (c *Config) String() string {
	return fmt.Sprintf("Config{Port: %d, Host: %s, Environment: %s, DatabaseURI: %s, DBMaxRetries: %d, SeedDatabase: %t, LogLevel: %s, CORSAllowOrigins: %s}",
		c.Port, c.Host, c.Environment, maskDatabaseURL(c.DatabaseURI), c.DBMaxRetries, c.SeedDatabase, c.LogLevel, c.CORSAllowOrigins)
}

// Address returns the listen address in host:port form
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// AllowedOrigins splits CORSAllowOrigins into its entries
func (c *Config) AllowedOrigins() []string {
	var origins []string
	for _, origin := range strings.Split(c.CORSAllowOrigins, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}

// maskDatabaseURL masks password in database URL
func maskDatabaseURL(dbURL string) string {
	if dbURL == "" {
		return ""
	}

	parsed, err := url.Parse(dbURL)
	if err != nil {
		return "[REDACTED_INVALID_URL]"
	}

	if parsed.User != nil {
		if _, hasPassword := parsed.User.Password(); hasPassword {
			parsed.User = url.UserPassword(parsed.User.Username(), "REDACTED")
		}
	}

	return parsed.String()
}

// LoadConfig builds a Config by layering defaults, an optional YAML file named
// by CONFIG_FILE, and environment variables, in increasing precedence.
// Returns an error if a value cannot be parsed or fails validation.
func LoadConfig() (*Config, error) {
	log.Info("Loading configuration")
	k := koanf.New(".")

	if path := os.Getenv(configFileEnv); path != "" {
		log.WithField("path", path).Debug("Loading configuration file")
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	envProvider := env.Provider("", ".", func(s string) string {
		key := strings.ToLower(s)
		if !knownKeys[key] {
			return ""
		}
		return key
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	config := New()
	if err := k.UnmarshalWithConf("", config, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("decode configuration: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	log.Infof("Configuration loaded: %s", config.String())
	return config, nil
}

// Validate checks the values LoadConfig cannot check by type alone
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid APP_PORT %d: must be between 1 and 65535", c.Port)
	}
	if strings.TrimSpace(c.DatabaseURI) == "" {
		return errors.New("DB_URI must not be empty")
	}
	if c.DBMaxRetries < 1 {
		return fmt.Errorf("invalid DB_MAX_RETRIES %d: must be at least 1", c.DBMaxRetries)
	}
	if c.LogLevel != "" {
		if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
			return fmt.Errorf("invalid LOG_LEVEL: %w", err)
		}
	}
	return nil
}

// Level returns the configured log level from any layer, falling back to
// the environment's level when none is set
func (c *Config) Level() logrus.Level {
	if c.LogLevel != "" {
		if level, err := logrus.ParseLevel(c.LogLevel); err == nil {
			return level
		}
	}
	return levelForEnvironment(c.Environment)
}

// Helper to get environment with default values
func GetEnvWithDefault(key, defaultValue string) string {
	log.Tracef("Getting environment variable: %s", key)
	value := os.Getenv(key)
	if value == "" {
		log.Warnf("Environment variable %s not set, using default value: %s", key, defaultValue)
		return defaultValue
	}
	return value
}

// GetEnvAsType retrieves an environment variable and converts it to the specified type
// using generic type handling.
func GetEnvAsType[T any](key string, defaultValue T) T {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	var result T
	switch any(result).(type) {
	case int:
		intValue, err := strconv.Atoi(value)
		if err != nil {
			return defaultValue
		}
		return any(intValue).(T)
	case string:
		return any(value).(T)
	case bool:
		boolValue, err := strconv.ParseBool(value)
		if err != nil {
			return defaultValue
		}
		return any(boolValue).(T)
	default:
		return defaultValue // Fallback for unsupported types
	}
}
