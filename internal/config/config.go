// Package config manages environment variables.
//
// It reads variables from the process environment (and a `.env` file when
// present), loads them into structured Go types and validates that required
// values are present so they can be reused across the application runtime.
package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	// Side-effect import: loads `.env` into the process env before it is read.
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix every configuration variable carries.
//
// The first underscore after the prefix separates the section from the key:
//
//	HBNB_API_HOST             -> api.host
//	HBNB_DATABASE_SSL_MODE    -> database.ssl_mode
//	HBNB_NEWRELIC_LICENSE_KEY -> newrelic.license_key
const EnvPrefix = "HBNB_"

const (
	StorageMemory = "memory"
	StorageDB     = "db"
)

// Config is the root configuration object for the application.
//
// Database is a pointer because it is only required when the relational
// storage backend is selected.
type Config struct {
	Primary       Primary              `koanf:"primary" validate:"required"`
	API           APIConfig            `koanf:"api" validate:"required"`
	Storage       StorageConfig        `koanf:"storage" validate:"required"`
	Database      *DatabaseConfig      `koanf:"database"`
	Redis         RedisConfig          `koanf:"redis"`
	Integration   IntegrationConfig    `koanf:"integration"`
	Observability *ObservabilityConfig `koanf:"-"`
}

// Primary holds top-level information about the runtime environment.
type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

// APIConfig groups settings for the HTTP server runtime.
// Timeouts are expressed in seconds.
type APIConfig struct {
	Host               string   `koanf:"host"`
	Port               string   `koanf:"port" validate:"required"`
	ReadTimeout        int      `koanf:"read_timeout" validate:"min=1"`
	WriteTimeout       int      `koanf:"write_timeout" validate:"min=1"`
	IdleTimeout        int      `koanf:"idle_timeout" validate:"min=1"`
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins" validate:"required"`

	// RateLimit is the sustained requests per second allowed per client IP,
	// RateBurst the bucket size. A zero RateLimit disables limiting.
	RateLimit float64 `koanf:"rate_limit" validate:"min=0"`
	RateBurst int     `koanf:"rate_burst" validate:"min=0"`
}

// StorageConfig selects the persistence backend.
type StorageConfig struct {
	Type string `koanf:"type" validate:"required,oneof=memory db"`
}

// DatabaseConfig contains PostgreSQL connection parameters and pool tuning.
type DatabaseConfig struct {
	Host            string `koanf:"host" validate:"required"`
	Port            int    `koanf:"port" validate:"required"`
	User            string `koanf:"user" validate:"required"`
	Password        string `koanf:"password" validate:"required"`
	Name            string `koanf:"name" validate:"required"`
	SSLMode         string `koanf:"ssl_mode" validate:"required"`
	MaxOpenConns    int    `koanf:"max_open_conns" validate:"required"`
	MaxIdleConns    int    `koanf:"max_idle_conns" validate:"required"`
	ConnMaxLifetime int    `koanf:"conn_max_lifetime" validate:"required"`
	ConnMaxIdleTime int    `koanf:"conn_max_idle_time" validate:"required"`
}

// RedisConfig contains Redis connection details.
// An empty Address runs the API without Redis and without background jobs.
type RedisConfig struct {
	Address string `koanf:"address"`
}

// IntegrationConfig stores third-party integration settings.
type IntegrationConfig struct {
	ResendAPIKey string `koanf:"resend_api_key"`
	EmailFrom    string `koanf:"email_from"`
}

// DefaultConfig returns the configuration used for every key the
// environment does not set.
func DefaultConfig() *Config {
	return &Config{
		Primary: Primary{Env: "development"},
		API: APIConfig{
			Host:               "0.0.0.0",
			Port:               "5000",
			ReadTimeout:        30,
			WriteTimeout:       30,
			IdleTimeout:        60,
			CORSAllowedOrigins: []string{"*"},
		},
		Storage: StorageConfig{Type: StorageMemory},
		Integration: IntegrationConfig{
			EmailFrom: "HBnB <onboarding@resend.dev>",
		},
	}
}

// Address returns the host:port pair the HTTP server binds to.
func (c *APIConfig) Address() string {
	return c.Host + ":" + c.Port
}

// envKey maps HBNB_SECTION_SOME_KEY to section.some_key.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.Replace(key, "_", ".", 1)
}

// listKeys hold comma-separated values, e.g.
// HBNB_API_CORS_ALLOWED_ORIGINS=https://a.com,https://b.com.
var listKeys = map[string]bool{
	"api.cors_allowed_origins": true,
	"health.checks":            true,
}

// envValue maps an environment variable to its koanf key and value,
// splitting list keys on commas.
func envValue(name, value string) (string, any) {
	key := envKey(name)
	if !listKeys[key] {
		return key, value
	}

	items := []string{}
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return key, items
}

// LoadConfig loads configuration from environment variables on top of
// DefaultConfig, validates it and fills in the observability block.
func LoadConfig() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(env.ProviderWithValue(EnvPrefix, ".", envValue), nil); err != nil {
		return nil, fmt.Errorf("could not load env variables: %w", err)
	}

	mainConfig := DefaultConfig()
	if err := k.Unmarshal("", mainConfig); err != nil {
		return nil, fmt.Errorf("could not unmarshal main config: %w", err)
	}

	validate := validator.New()
	if err := validate.Struct(mainConfig); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	if mainConfig.Storage.Type == StorageDB && mainConfig.Database == nil {
		return nil, fmt.Errorf("database config is required when storage type is %q", StorageDB)
	}

	// logging.* and newrelic.* live at the root of the key space.
	observability := DefaultObservabilityConfig()
	if err := k.Unmarshal("", observability); err != nil {
		return nil, fmt.Errorf("could not unmarshal observability config: %w", err)
	}

	observability.ServiceName = "hbnb-api"
	observability.Environment = mainConfig.Primary.Env

	if err := observability.Validate(); err != nil {
		return nil, fmt.Errorf("invalid observability config: %w", err)
	}
	mainConfig.Observability = observability

	return mainConfig, nil
}
