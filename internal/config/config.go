package config

import (
	"fmt"
	"strings"
	"time"

	"bloodbank/pkg/logger"
	"github.com/spf13/viper"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	HTTPPort    string
	Env         string
	CORSOrigins []string
	Auth        AuthConfig
	Metrics     MetricsConfig
	DB          DBConfig
}

type AuthConfig struct {
	Required          bool
	MinPasswordLength int
	BcryptCost        int
	LoginRedirectURL  string
}

type MetricsConfig struct {
	Enabled bool
	Path    string
}

type DBConfig struct {
	Driver          string
	DSN             string
	Host            string
	Port            string
	User            string
	Password        string
	Name            string
	SSLMode         string
	TimeZone        string
	SQLitePath      string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	SlowQuery       time.Duration
}

var defaults = map[string]any{
	"HTTP_PORT":                "8080",
	"ENV":                      "development",
	"CORS_ALLOWED_ORIGINS":     "http://localhost:5173",
	"AUTH_REQUIRED":            false,
	"AUTH_MIN_PASSWORD_LENGTH": 6,
	"AUTH_BCRYPT_COST":         10,
	"AUTH_LOGIN_REDIRECT_URL":  "/dashboard",
	"METRICS_ENABLED":          true,
	"METRICS_PATH":             "/metrics",
	"DB_DRIVER":                DriverPostgres,
	"DB_DSN":                   "",
	"DB_HOST":                  "localhost",
	"DB_PORT":                  "5432",
	"DB_USER":                  "postgres",
	"DB_PASSWORD":              "postgres",
	"DB_NAME":                  "bloodbank",
	"DB_SSLMODE":               "disable",
	"DB_TIMEZONE":              "UTC",
	"DB_SQLITE_PATH":           "bloodbank.db",
	"DB_MAX_OPEN_CONNS":        10,
	"DB_MAX_IDLE_CONNS":        5,
	"DB_CONN_MAX_LIFETIME":     30 * time.Minute,
	"DB_SLOW_QUERY":            200 * time.Millisecond,
}

// Load resolves configuration from defaults, an optional .env file and the
// process environment, in increasing order of precedence.
func Load(log logger.Logger) (Config, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	if err := loadDotEnv(v, log); err != nil {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	return fromViper(v)
}

func fromViper(v *viper.Viper) (Config, error) {
	cfg := Config{
		HTTPPort:    v.GetString("HTTP_PORT"),
		Env:         v.GetString("ENV"),
		CORSOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		Auth: AuthConfig{
			Required:          v.GetBool("AUTH_REQUIRED"),
			MinPasswordLength: v.GetInt("AUTH_MIN_PASSWORD_LENGTH"),
			BcryptCost:        v.GetInt("AUTH_BCRYPT_COST"),
			LoginRedirectURL:  v.GetString("AUTH_LOGIN_REDIRECT_URL"),
		},
		Metrics: MetricsConfig{
			Enabled: v.GetBool("METRICS_ENABLED"),
			Path:    v.GetString("METRICS_PATH"),
		},
		DB: DBConfig{
			Driver:          strings.ToLower(strings.TrimSpace(v.GetString("DB_DRIVER"))),
			DSN:             v.GetString("DB_DSN"),
			Host:            v.GetString("DB_HOST"),
			Port:            v.GetString("DB_PORT"),
			User:            v.GetString("DB_USER"),
			Password:        v.GetString("DB_PASSWORD"),
			Name:            v.GetString("DB_NAME"),
			SSLMode:         v.GetString("DB_SSLMODE"),
			TimeZone:        v.GetString("DB_TIMEZONE"),
			SQLitePath:      v.GetString("DB_SQLITE_PATH"),
			MaxOpenConns:    v.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: v.GetDuration("DB_CONN_MAX_LIFETIME"),
			SlowQuery:       v.GetDuration("DB_SLOW_QUERY"),
		},
	}

	switch cfg.DB.Driver {
	case DriverPostgres, DriverSQLite:
	default:
		return Config{}, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DB.Driver)
	}

	return cfg, nil
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item != "" {
			result = append(result, item)
		}
	}
	return result
}

func (c DBConfig) GetDSN() string {
	if c.DSN != "" {
		return c.DSN
	}
	if c.Driver == DriverSQLite {
		return c.SQLitePath + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	}
	return "host=" + c.Host +
		" user=" + c.User +
		" password=" + c.Password +
		" dbname=" + c.Name +
		" port=" + c.Port +
		" sslmode=" + c.SSLMode +
		" TimeZone=" + c.TimeZone
}
