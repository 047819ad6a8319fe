package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	Database DatabaseConfig `yaml:"database"`
	Auth     AuthConfig     `yaml:"auth"`
	Places   PlacesConfig   `yaml:"places"`
}

// HTTPConfig contains HTTP server settings.
type HTTPConfig struct {
	Address string `yaml:"address"` // listen address (e.g., ":8080")
}

// DatabaseConfig contains database-related settings.
type DatabaseConfig struct {
	Path string `yaml:"path"` // SQLite database file path
}

// AuthConfig contains authentication settings.
type AuthConfig struct {
	JWTSecret string        `yaml:"jwt_secret"`
	TokenTTL  time.Duration `yaml:"token_ttl"`
}

// PlacesConfig points at the external place-details provider.
type PlacesConfig struct {
	BaseURL string `yaml:"base_url"`
	APIKey  string `yaml:"api_key"`
}

func defaults() *Config {
	return &Config{
		HTTP:     HTTPConfig{Address: ":8080"},
		Database: DatabaseConfig{Path: "truckfleet.db"},
		Auth:     AuthConfig{TokenTTL: 24 * time.Hour},
		Places:   PlacesConfig{BaseURL: "https://maps.googleapis.com/maps/api/place"},
	}
}

// Load builds configuration from defaults, an optional YAML file named by
// CONFIG_FILE, and environment variables, in increasing order of precedence.
// It fails when no JWT secret is configured.
func Load() (*Config, error) {
	cfg, err := load()
	if err != nil {
		return nil, err
	}
	if cfg.Auth.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is not set; required for production")
	}
	return cfg, nil
}

// LoadWithDefaults is like Load but uses an insecure default JWT secret when
// none is configured. Development only.
func LoadWithDefaults() (*Config, error) {
	cfg, err := load()
	if err != nil {
		return nil, err
	}
	if cfg.Auth.JWTSecret == "" {
		cfg.Auth.JWTSecret = "dev-secret-change-me"
	}
	return cfg, nil
}

func load() (*Config, error) {
	cfg := defaults()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	cfg.HTTP.Address = getEnv("HTTP_ADDRESS", cfg.HTTP.Address)
	cfg.Database.Path = getEnv("DB_PATH", cfg.Database.Path)
	cfg.Auth.JWTSecret = getEnv("JWT_SECRET", cfg.Auth.JWTSecret)
	cfg.Places.BaseURL = getEnv("PLACES_BASE_URL", cfg.Places.BaseURL)
	cfg.Places.APIKey = getEnv("PLACES_API_KEY", cfg.Places.APIKey)

	if v, exists := os.LookupEnv("JWT_TTL"); exists {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid duration for JWT_TTL: %w", err)
		}
		cfg.Auth.TokenTTL = ttl
	}
	if cfg.Auth.TokenTTL <= 0 {
		cfg.Auth.TokenTTL = 24 * time.Hour
	}

	return cfg, nil
}

// getEnv retrieves an environment variable with a default fallback.
func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}

// String returns a string representation of the config (secrets are masked).
func (c *Config) String() string {
	return fmt.Sprintf("Config{HTTP: %s, DB: %s, Auth: *** (masked) ***, Places: %s}",
		c.HTTP.Address, c.Database.Path, c.Places.BaseURL)
}
