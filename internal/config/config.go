package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	BackendFile     = "file"
	BackendPostgres = "postgres"
)

type Config struct {
	Port            string        `koanf:"port"`
	StorageBackend  string        `koanf:"storage_backend"`
	DataFile        string        `koanf:"data_file"`
	AuthEnabled     bool          `koanf:"auth_enabled"`
	JWTSecret       string        `koanf:"jwt_secret"`
	TokenTTL        time.Duration `koanf:"token_ttl"`
	BcryptCost      int           `koanf:"bcrypt_cost"`
	Timezone        string        `koanf:"timezone"`
	LogLevel        string        `koanf:"log_level"`
	OperatorWorkers int           `koanf:"operator_workers"`
	RunMigrations   bool          `koanf:"run_migrations"`

	PostgresAddress  string `koanf:"postgres_address"`
	PostgresPort     string `koanf:"postgres_port"`
	PostgresDB       string `koanf:"postgres_db"`
	PostgresUsername string `koanf:"postgres_username"`
	PostgresPassword string `koanf:"postgres_password"`
	PostgresSSLMode  string `koanf:"postgres_sslmode"`
}

// In all cases the default behavior should be for the docker compose setup
var defaults = map[string]interface{}{
	"port":              "9446",
	"storage_backend":   BackendFile,
	"data_file":         "data/transactions.json",
	"auth_enabled":      true,
	"jwt_secret":        "",
	"token_ttl":         "1h",
	"bcrypt_cost":       10,
	"timezone":          "Local",
	"log_level":         "info",
	"operator_workers":  1,
	"run_migrations":    true,
	"postgres_address":  "localhost",
	"postgres_port":     "5433",
	"postgres_db":       "postgres",
	"postgres_username": "postgres",
	"postgres_password": "testpassword",
	"postgres_sslmode":  "disable",
}

// ProcessEnvironmentVariables layers defaults, the optional YAML file at
// configFile, then environment variables (PORT, POSTGRES_ADDRESS, ...).
// A .env file in the working directory is loaded first when present.
func ProcessEnvironmentVariables(configFile string) (*Config, error) {
	_ = godotenv.Load()

	k := koanf.New(".")
	if err := k.Load(confmap.Provider(defaults, "."), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	if configFile != "" {
		if err := k.Load(file.Provider(configFile), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", configFile, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.StorageBackend = strings.ToLower(cfg.StorageBackend)

	return &cfg, cfg.Validate()
}

// envKey maps known variables to config keys and drops the rest.
func envKey(name string) string {
	key := strings.ToLower(name)
	if _, ok := defaults[key]; !ok {
		return ""
	}
	if os.Getenv(name) == "" {
		return ""
	}
	return key
}

func (c *Config) Validate() error {
	var errs []error

	if c.Port == "" {
		errs = append(errs, errors.New("PORT is required"))
	}
	switch c.StorageBackend {
	case BackendFile:
		if c.DataFile == "" {
			errs = append(errs, errors.New("DATA_FILE is required for the file backend"))
		}
	case BackendPostgres:
		if c.PostgresAddress == "" || c.PostgresDB == "" {
			errs = append(errs, errors.New("POSTGRES_ADDRESS and POSTGRES_DB are required for the postgres backend"))
		}
	default:
		errs = append(errs, fmt.Errorf("STORAGE_BACKEND must be %q or %q, got %q", BackendFile, BackendPostgres, c.StorageBackend))
	}
	if c.AuthEnabled && c.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET is required when AUTH_ENABLED is true"))
	}
	if c.TokenTTL <= 0 {
		errs = append(errs, errors.New("TOKEN_TTL must be positive"))
	}
	if c.BcryptCost < 4 || c.BcryptCost > 31 {
		errs = append(errs, fmt.Errorf("BCRYPT_COST must be between 4 and 31, got %d", c.BcryptCost))
	}
	if c.OperatorWorkers < 1 {
		errs = append(errs, errors.New("OPERATOR_WORKERS must be at least 1"))
	}
	if _, err := c.Location(); err != nil {
		errs = append(errs, fmt.Errorf("TIMEZONE: %w", err))
	}

	return errors.Join(errs...)
}

// Location resolves Timezone, treating "Local" and "" as the host zone.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(c.Timezone)
}

// PostgresURL builds the lib/pq connection string.
func (c *Config) PostgresURL() string {
	return "postgres://" + c.PostgresUsername + ":" +
		c.PostgresPassword + "@" + c.PostgresAddress + ":" +
		c.PostgresPort + "/" + c.PostgresDB + "?sslmode=" + c.PostgresSSLMode
}

// Redacted returns a copy safe to log.
func (c Config) Redacted() Config {
	if c.JWTSecret != "" {
		c.JWTSecret = "***"
	}
	if c.PostgresPassword != "" {
		c.PostgresPassword = "***"
	}
	return c
}
