package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config structure represents the application configuration
type Config struct {
	Server struct {
		Port string `yaml:"port"`
		Mode string `yaml:"mode"`
	} `yaml:"server"`

	Storage struct {
		// Driver selects the persistence backend: "csv" or "postgres"
		Driver string `yaml:"driver"`
		// DataDir holds students.csv and courses.csv when the csv driver is active
		DataDir string `yaml:"data_dir"`

		Postgres struct {
			Host     string `yaml:"host"`
			Port     string `yaml:"port"`
			User     string `yaml:"user"`
			Password string `yaml:"password"`
			DBName   string `yaml:"dbname"`
			SSLMode  string `yaml:"sslmode"`
			MaxConns int    `yaml:"max_conns"`
		} `yaml:"postgres"`
	} `yaml:"storage"`

	JWT struct {
		Secret                string `yaml:"secret"`
		AccessTokenExpiration string `yaml:"access_token_expiration"`
		Issuer                string `yaml:"issuer"`
	} `yaml:"jwt"`

	Logging struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"logging"`
}

// LoadConfig loads configuration from a file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}
	setDefaults(config)

	// Config file is optional; defaults plus env are a valid setup
	if _, err := os.Stat(configPath); err == nil {
		file, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		if err := yaml.Unmarshal(file, config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	loadFromEnv(config)

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// setDefaults sets default values for the configuration
func setDefaults(config *Config) {
	config.Server.Port = "8080"
	config.Server.Mode = "development"

	config.Storage.Driver = "csv"
	config.Storage.DataDir = "data"
	config.Storage.Postgres.Host = "localhost"
	config.Storage.Postgres.Port = "5432"
	config.Storage.Postgres.User = "postgres"
	config.Storage.Postgres.Password = "postgres"
	config.Storage.Postgres.DBName = "enrollhub"
	config.Storage.Postgres.SSLMode = "disable"
	config.Storage.Postgres.MaxConns = 10

	config.JWT.Secret = "dev-secret-change-me"
	config.JWT.AccessTokenExpiration = "12h"
	config.JWT.Issuer = "enrollhub.app"

	config.Logging.Level = "info"
	config.Logging.Format = "text"
}

// loadFromEnv overrides configuration with environment variables
func loadFromEnv(config *Config) {
	config.Server.Port = GetEnv("SERVER_PORT", config.Server.Port)
	config.Server.Mode = GetEnv("SERVER_MODE", config.Server.Mode)

	config.Storage.Driver = GetEnv("STORAGE_DRIVER", config.Storage.Driver)
	config.Storage.DataDir = GetEnv("STORAGE_DATA_DIR", config.Storage.DataDir)
	config.Storage.Postgres.Host = GetEnv("DB_HOST", config.Storage.Postgres.Host)
	config.Storage.Postgres.Port = GetEnv("DB_PORT", config.Storage.Postgres.Port)
	config.Storage.Postgres.User = GetEnv("DB_USER", config.Storage.Postgres.User)
	config.Storage.Postgres.Password = GetEnv("DB_PASSWORD", config.Storage.Postgres.Password)
	config.Storage.Postgres.DBName = GetEnv("DB_NAME", config.Storage.Postgres.DBName)
	config.Storage.Postgres.SSLMode = GetEnv("DB_SSLMODE", config.Storage.Postgres.SSLMode)
	config.Storage.Postgres.MaxConns = GetEnvAsInt("DB_MAX_CONNS", config.Storage.Postgres.MaxConns)

	config.JWT.Secret = GetEnv("JWT_SECRET", config.JWT.Secret)
	config.JWT.AccessTokenExpiration = GetEnv("JWT_ACCESS_TOKEN_EXPIRATION", config.JWT.AccessTokenExpiration)
	config.JWT.Issuer = GetEnv("JWT_ISSUER", config.JWT.Issuer)

	config.Logging.Level = GetEnv("LOG_LEVEL", config.Logging.Level)
	config.Logging.Format = GetEnv("LOG_FORMAT", config.Logging.Format)
}

// validateConfig ensures that the configuration is valid
func validateConfig(config *Config) error {
	switch config.Storage.Driver {
	case "csv":
		if config.Storage.DataDir == "" {
			return fmt.Errorf("data directory is required for the csv storage driver")
		}
	case "postgres":
		if config.Storage.Postgres.Host == "" {
			return fmt.Errorf("database host is required for the postgres storage driver")
		}
	default:
		return fmt.Errorf("unknown storage driver: %q", config.Storage.Driver)
	}

	if config.JWT.Secret == "" {
		return fmt.Errorf("JWT secret is required")
	}

	if _, err := time.ParseDuration(config.JWT.AccessTokenExpiration); err != nil {
		return fmt.Errorf("invalid JWT access token expiration format: %w", err)
	}

	return nil
}

// AccessTokenExpiration returns the parsed access token lifetime.
// validateConfig has already checked the format.
func (c *Config) AccessTokenExpiration() time.Duration {
	d, _ := time.ParseDuration(c.JWT.AccessTokenExpiration)
	return d
}

// GetPostgresConnectionString returns the postgres connection string
func (c *Config) GetPostgresConnectionString() string {
	sslMode := c.Storage.Postgres.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.Storage.Postgres.User,
		c.Storage.Postgres.Password,
		c.Storage.Postgres.Host,
		c.Storage.Postgres.Port,
		c.Storage.Postgres.DBName,
		sslMode,
	)
}

// GetEnv gets an environment variable or returns a default value
func GetEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// GetEnvAsInt gets an environment variable as an integer or returns a default value
func GetEnvAsInt(key string, defaultValue int) int {
	valueStr := GetEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// GetEnvAsBool gets an environment variable as a boolean or returns a default value
func GetEnvAsBool(key string, defaultValue bool) bool {
	valueStr := strings.ToLower(GetEnv(key, ""))
	if valueStr == "" {
		return defaultValue
	}
	if valueStr == "true" || valueStr == "1" || valueStr == "yes" {
		return true
	}
	if valueStr == "false" || valueStr == "0" || valueStr == "no" {
		return false
	}
	return defaultValue
}
