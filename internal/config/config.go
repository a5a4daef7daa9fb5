package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type DatabaseDriver string

const (
	DatabaseDriverSQLite   DatabaseDriver = "sqlite"
	DatabaseDriverPostgres DatabaseDriver = "postgres"
)

type (
	Config struct {
		HTTP
		Global
		Database
		UI
		Auth
		Library
	}

	HTTP struct {
		Port int32
		Host string
	}
	Global struct {
		ShutdownTimeoutInSeconds int
	}
	Database struct {
		Driver DatabaseDriver
		Path   string // SQLite file
		DSN    string // PostgreSQL connection string
		LogSQL bool
	}
	UI struct {
		TemplatesPath string // Empty means the embedded templates
		StaticPath    string
	}
	Auth struct {
		SessionSecret   string
		SessionLifetime time.Duration
		BcryptCost      int
		SecureCookies   bool // Set to true when served over HTTPS

		// Seeded when the admin table is empty
		DefaultUsername string
		DefaultPassword string
	}
	Library struct {
		FinePerDay float64
		Currency   string
	}
)

// loadDotEnv loads a .env file from the working directory if there is one.
// Variables already present in the environment win.
func loadDotEnv(path string) {
	if err := godotenv.Load(path); err == nil {
		log.Printf("Loaded environment from %s", path)
	}
}

func NewConfig() *Config {
	loadDotEnv(".env")

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 5000)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("shutdown_timeout_in_seconds", 2)

	v.SetDefault("database_driver", string(DatabaseDriverSQLite))
	v.SetDefault("database_path", DefaultDatabasePath)
	v.SetDefault("database_dsn", "")
	v.SetDefault("database_log_sql", false)

	v.SetDefault("templates_path", "")
	v.SetDefault("static_path", "")

	// Auth defaults
	v.SetDefault("auth_session_secret", "") // Auto-generated if empty
	v.SetDefault("auth_session_lifetime", "24h")
	v.SetDefault("auth_bcrypt_cost", 10)
	v.SetDefault("auth_secure_cookies", false)
	v.SetDefault("auth_default_username", DefaultAdminUsername)
	v.SetDefault("auth_default_password", DefaultAdminPassword)

	v.SetDefault("library_fine_per_day", DefaultFinePerDay)
	v.SetDefault("library_currency", DefaultCurrency)

	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
		Database: Database{
			Driver: DatabaseDriver(v.GetString("DATABASE_DRIVER")),
			Path:   v.GetString("DATABASE_PATH"),
			DSN:    v.GetString("DATABASE_DSN"),
			LogSQL: v.GetBool("DATABASE_LOG_SQL"),
		},
		UI: UI{
			TemplatesPath: v.GetString("TEMPLATES_PATH"),
			StaticPath:    v.GetString("STATIC_PATH"),
		},
		Auth: Auth{
			SessionSecret:   v.GetString("AUTH_SESSION_SECRET"),
			SessionLifetime: v.GetDuration("AUTH_SESSION_LIFETIME"),
			BcryptCost:      v.GetInt("AUTH_BCRYPT_COST"),
			SecureCookies:   v.GetBool("AUTH_SECURE_COOKIES"),
			DefaultUsername: v.GetString("AUTH_DEFAULT_USERNAME"),
			DefaultPassword: v.GetString("AUTH_DEFAULT_PASSWORD"),
		},
		Library: Library{
			FinePerDay: v.GetFloat64("LIBRARY_FINE_PER_DAY"),
			Currency:   v.GetString("LIBRARY_CURRENCY"),
		},
	}
}
