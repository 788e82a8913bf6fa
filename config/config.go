package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/guttosm/tradedesk/internal/schema"
)

// Store drivers accepted in STORE_DRIVER.
const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config holds the full application configuration loaded from environment variables or .env file.
//
// Example ENV equivalent:
//
//	SERVER_PORT=8080
//	REQUEST_TIMEOUT=10s
//	STORE_DRIVER=memory
//	FIXTURES_PATH=
//	SQLITE_PATH=tradedesk.db
//	COERCION_MODE=loose
//	RATE_LIMIT_RPS=10
//	RATE_LIMIT_BURST=20
//	POSTGRES_HOST=localhost
//	POSTGRES_PORT=5432
//	POSTGRES_USER=admin
//	POSTGRES_PASSWORD=secret
//	POSTGRES_DB=tradedesk
//	POSTGRES_SSLMODE=disable
type Config struct {
	Server    ServerConfig
	Store     StoreConfig
	Schema    SchemaConfig
	RateLimit RateLimitConfig
	Postgres  PostgresConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port           string        // The TCP port the HTTP server will listen on (e.g., "8080")
	RequestTimeout time.Duration // Per-request context deadline
}

// StoreConfig selects and configures the record store.
//
// Fields:
//   - Driver: memory, postgres or sqlite.
//   - FixturesPath: YAML/JSON fixtures seeded at startup; empty means built-in.
//   - SQLitePath: database file (or ":memory:") for the sqlite driver.
type StoreConfig struct {
	Driver       string
	FixturesPath string
	SQLitePath   string
}

// SchemaConfig tunes input validation.
type SchemaConfig struct {
	Coercion schema.Coercion
}

// RateLimitConfig sets per-client token buckets. RPS <= 0 disables limiting.
type RateLimitConfig struct {
	RPS   float64
	Burst int
}

// PostgresConfig defines connection details for PostgreSQL.
//
// Fields:
//   - Host: hostname of the database server.
//   - Port: port number of the database server (default 5432).
//   - User: username for authentication.
//   - Password: password for authentication.
//   - DBName: target database name.
//   - SSLMode: SSL mode (e.g., "disable", "require").
//   - URL: computed DSN used by database/sql to connect.
type PostgresConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
	URL      string
}

// AppConfig is the globally accessible configuration instance.
//
// It is populated once via LoadConfig() and used throughout the application.
var AppConfig Config

// LoadConfig initializes the global AppConfig by reading from .env file
// or directly from environment variables.
//
// Precedence (from lowest to highest):
//  1. Defaults set in this function.
//  2. Values from .env file (if present).
//  3. Environment variables.
//
// Fatal exit:
//   - If required variables are missing or invalid, validateConfig() will
//     terminate the app with a descriptive log message.
func LoadConfig() {
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("REQUEST_TIMEOUT", "10s")

	viper.SetDefault("STORE_DRIVER", DriverMemory)
	viper.SetDefault("FIXTURES_PATH", "")
	viper.SetDefault("SQLITE_PATH", "tradedesk.db")
	viper.SetDefault("COERCION_MODE", "loose")
	viper.SetDefault("RATE_LIMIT_RPS", 10)
	viper.SetDefault("RATE_LIMIT_BURST", 20)

	viper.SetDefault("POSTGRES_HOST", "localhost")
	viper.SetDefault("POSTGRES_PORT", 5432)
	viper.SetDefault("POSTGRES_USER", "postgres")
	viper.SetDefault("POSTGRES_PASSWORD", "postgres")
	viper.SetDefault("POSTGRES_DB", "tradedesk")
	viper.SetDefault("POSTGRES_SSLMODE", "disable")

	// Optionally read from .env if present (common in local dev)
	viper.SetConfigFile(".env")
	_ = viper.ReadInConfig() // ignore error if no .env

	viper.AutomaticEnv()

	var problems []string
	coercion, err := schema.ParseCoercion(viper.GetString("COERCION_MODE"))
	if err != nil {
		problems = append(problems, "COERCION_MODE: "+err.Error())
	}

	AppConfig = Config{
		Server: ServerConfig{
			Port:           viper.GetString("SERVER_PORT"),
			RequestTimeout: viper.GetDuration("REQUEST_TIMEOUT"),
		},
		Store: StoreConfig{
			Driver:       strings.ToLower(viper.GetString("STORE_DRIVER")),
			FixturesPath: viper.GetString("FIXTURES_PATH"),
			SQLitePath:   viper.GetString("SQLITE_PATH"),
		},
		Schema: SchemaConfig{Coercion: coercion},
		RateLimit: RateLimitConfig{
			RPS:   viper.GetFloat64("RATE_LIMIT_RPS"),
			Burst: viper.GetInt("RATE_LIMIT_BURST"),
		},
		Postgres: PostgresConfig{
			Host:     viper.GetString("POSTGRES_HOST"),
			Port:     viper.GetInt("POSTGRES_PORT"),
			User:     viper.GetString("POSTGRES_USER"),
			Password: viper.GetString("POSTGRES_PASSWORD"),
			DBName:   viper.GetString("POSTGRES_DB"),
			SSLMode:  viper.GetString("POSTGRES_SSLMODE"),
		},
	}
	AppConfig.Postgres.URL = AppConfig.Postgres.DSN()

	validateConfig(problems...)
}

// DSN builds the database/sql connection string.
func (p PostgresConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		p.User,
		p.Password,
		p.Host,
		p.Port,
		p.DBName,
		p.SSLMode,
	)
}

// Validate lists every missing or invalid setting of c.
func (c Config) Validate() []string {
	var problems []string

	if c.Server.Port == "" {
		problems = append(problems, "SERVER_PORT")
	}
	if c.Server.RequestTimeout <= 0 {
		problems = append(problems, "REQUEST_TIMEOUT")
	}
	if c.RateLimit.RPS > 0 && c.RateLimit.Burst < 1 {
		problems = append(problems, "RATE_LIMIT_BURST")
	}

	switch c.Store.Driver {
	case DriverMemory:
	case DriverSQLite:
		if c.Store.SQLitePath == "" {
			problems = append(problems, "SQLITE_PATH")
		}
	case DriverPostgres:
		if c.Postgres.Host == "" {
			problems = append(problems, "POSTGRES_HOST")
		}
		if c.Postgres.Port == 0 {
			problems = append(problems, "POSTGRES_PORT")
		}
		if c.Postgres.User == "" {
			problems = append(problems, "POSTGRES_USER")
		}
		if c.Postgres.Password == "" {
			problems = append(problems, "POSTGRES_PASSWORD")
		}
		if c.Postgres.DBName == "" {
			problems = append(problems, "POSTGRES_DB")
		}
	default:
		problems = append(problems, fmt.Sprintf("STORE_DRIVER (%q is not memory|postgres|sqlite)", c.Store.Driver))
	}
	return problems
}

// validateConfig terminates the application when AppConfig is incomplete.
//
// Behavior:
//   - Collects problems found while loading plus those of AppConfig.Validate().
//   - If any, logs them and terminates the app with log.Fatalf().
func validateConfig(extra ...string) {
	problems := append(extra, AppConfig.Validate()...)
	if len(problems) > 0 {
		log.Fatalf("invalid configuration: %v\n", problems)
	}
}
