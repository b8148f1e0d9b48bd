package config

import (
	"errors"
	"strings"
	"time"
	"tracker/persistence"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const EnvironmentProduction = "production"

var ErrJWTSecretMissing = errors.New("JWT_SECRET is required in production")

type Config struct {
	Port        int
	Environment string
	ServiceName string
	LogLevel    string
	FrontendURL string

	JWTSecret    string
	TokenTTL     time.Duration
	CookieSecure bool

	Database persistence.DatabaseConfig

	RateLimitWindow time.Duration
	RateLimitMax    int

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	SentryDSN string
}

func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Environment, EnvironmentProduction)
}

// Load reads configuration from the environment, with a .env file as fallback outside production.
func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	if !strings.EqualFold(v.GetString("ENVIRONMENT"), EnvironmentProduction) {
		_ = godotenv.Load()
	}
	return parse(v)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", 7001)
	v.SetDefault("ENVIRONMENT", "development")
	v.SetDefault("SERVICE_NAME", "tracker")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("FRONTEND_URL", "http://localhost:3000")
	v.SetDefault("TOKEN_TTL", "168h")
	v.SetDefault("DB_DRIVER_TYPE", "mysql")
	v.SetDefault("DB_DRIVER_ARGS", "root:root@(127.0.0.1:3306)/tracker?charset=utf8mb4&parseTime=True&loc=Local&timeout=5s")
	v.SetDefault("RATE_LIMIT_WINDOW", "15m")
	v.SetDefault("RATE_LIMIT_MAX", 1000)
	v.SetDefault("REDIS_DB", 0)
}

func parse(v *viper.Viper) (*Config, error) {
	c := &Config{
		Port:        v.GetInt("PORT"),
		Environment: v.GetString("ENVIRONMENT"),
		ServiceName: v.GetString("SERVICE_NAME"),
		LogLevel:    v.GetString("LOG_LEVEL"),
		FrontendURL: v.GetString("FRONTEND_URL"),

		JWTSecret: v.GetString("JWT_SECRET"),
		TokenTTL:  v.GetDuration("TOKEN_TTL"),

		Database: persistence.DatabaseConfig{
			DriverType: v.GetString("DB_DRIVER_TYPE"),
			DriverArgs: v.GetString("DB_DRIVER_ARGS"),
		},

		RateLimitWindow: v.GetDuration("RATE_LIMIT_WINDOW"),
		RateLimitMax:    v.GetInt("RATE_LIMIT_MAX"),

		RedisAddr:     v.GetString("REDIS_ADDR"),
		RedisPassword: v.GetString("REDIS_PASSWORD"),
		RedisDB:       v.GetInt("REDIS_DB"),

		SentryDSN: v.GetString("SENTRY_DSN"),
	}
	c.Database.LogMode = !c.IsProduction()

	if v.IsSet("COOKIE_SECURE") {
		c.CookieSecure = v.GetBool("COOKIE_SECURE")
	} else {
		c.CookieSecure = c.IsProduction()
	}

	if c.JWTSecret == "" {
		if c.IsProduction() {
			return nil, ErrJWTSecretMissing
		}
		c.JWTSecret = "dev-secret"
	}
	return c, nil
}
