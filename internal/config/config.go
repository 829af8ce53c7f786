package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server    ServerConfig
	Providers ProvidersConfig
	Database  DatabaseConfig
	Auth      AuthConfig
	Security  SecurityConfig
}

type ServerConfig struct {
	Port         string
	Host         string
	Environment  string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type ProvidersConfig struct {
	// BaseURLs maps provider IDs to their API roots, e.g.
	// vbank -> https://vbank.open.bankingapi.ru
	BaseURLs map[string]string
	ClientID string
	Secret   string
	Timeout  time.Duration
}

type DatabaseConfig struct {
	// Path of the local sqlite file standing in for the Mini-App's browser
	// storage. ":memory:" is accepted for tests.
	Path string
}

type AuthConfig struct {
	// PasswordHash is the bcrypt hash the session gate checks against
	PasswordHash    string
	JWTSecret       string
	SessionDuration time.Duration
	Issuer          string
}

type SecurityConfig struct {
	RateLimitPerSecond int
	RateLimitBurst     int
}

// defaultProviders are the three partner banks of the pilot. Overridable via
// PROVIDER_BASE_URLS as "id=url,id=url".
var defaultProviders = map[string]string{
	"vbank": "https://vbank.open.bankingapi.ru",
	"abank": "https://abank.open.bankingapi.ru",
	"sbank": "https://sbank.open.bankingapi.ru",
}

// Load reads configuration from the environment, with a .env file applied
// first when present
func Load() *Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: could not load .env file: %v", err)
	}

	return &Config{
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "8080"),
			Host:         getEnv("SERVER_HOST", "localhost"),
			Environment:  getEnv("APP_ENV", "development"),
			ReadTimeout:  getDurationEnv("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout: getDurationEnv("SERVER_WRITE_TIMEOUT", 15*time.Second),
		},
		Providers: ProvidersConfig{
			BaseURLs: getProvidersEnv("PROVIDER_BASE_URLS", defaultProviders),
			ClientID: getEnv("PROVIDER_CLIENT_ID", ""),
			Secret:   getEnv("PROVIDER_CLIENT_SECRET", ""),
			Timeout:  getDurationEnv("PROVIDER_TIMEOUT", 10*time.Second),
		},
		Database: DatabaseConfig{
			Path: getEnv("DB_PATH", "multibank.db"),
		},
		Auth: AuthConfig{
			PasswordHash:    getEnv("AUTH_PASSWORD_HASH", ""),
			JWTSecret:       getEnv("AUTH_JWT_SECRET", ""),
			SessionDuration: getDurationEnv("AUTH_SESSION_DURATION", 30*time.Minute),
			Issuer:          getEnv("AUTH_ISSUER", "multibank"),
		},
		Security: SecurityConfig{
			RateLimitPerSecond: getIntEnv("RATE_LIMIT_PER_SECOND", 5),
			RateLimitBurst:     getIntEnv("RATE_LIMIT_BURST", 10),
		},
	}
}

// Validate checks the settings that have no usable default
func (c *Config) Validate() error {
	if c.Server.Environment == "production" {
		if c.Auth.JWTSecret == "" {
			return fmt.Errorf("AUTH_JWT_SECRET is required in production")
		}
		if c.Auth.PasswordHash == "" {
			return fmt.Errorf("AUTH_PASSWORD_HASH is required in production")
		}
	}

	if len(c.Providers.BaseURLs) == 0 {
		return fmt.Errorf("at least one provider must be configured")
	}

	return nil
}

// Address returns the host:port the server listens on
func (c *ServerConfig) Address() string {
	return c.Host + ":" + c.Port
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	parsed, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Warning: invalid value for %s, using default %d", key, defaultValue)
		return defaultValue
	}
	return parsed
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	parsed, err := time.ParseDuration(value)
	if err != nil {
		log.Printf("Warning: invalid duration for %s, using default %s", key, defaultValue)
		return defaultValue
	}
	return parsed
}

// getProvidersEnv parses a "id=url,id=url" list; malformed entries are
// skipped with a warning
func getProvidersEnv(key string, defaultValue map[string]string) map[string]string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	providers := make(map[string]string)
	for _, entry := range strings.Split(value, ",") {
		parts := strings.SplitN(strings.TrimSpace(entry), "=", 2)
		if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
			log.Printf("Warning: skipping malformed provider entry %q in %s", entry, key)
			continue
		}
		providers[parts[0]] = parts[1]
	}

	if len(providers) == 0 {
		return defaultValue
	}
	return providers
}
