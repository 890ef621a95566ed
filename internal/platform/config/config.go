package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Serial lock modes.
const (
	SerialLockAdvisory = "advisory"
	SerialLockRedis    = "redis"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL       string
	Port              string
	IsProduction      bool
	EnableDBCheck     bool
	DBMaxConns        int32
	MigrationsPath    string
	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string
	LogLevel          string

	CORSAllowedOrigins []string
	LoginRateLimit     string
	ShutdownTimeout    time.Duration

	// Redis is optional; when set it backs the rate limiter and may back serial locks.
	RedisURL string

	SerialLockMode    string
	SerialLockTTL     time.Duration
	CreateMaxAttempts int
}

const defaultJWTSecret = "a-very-secret-key-should-be-longer-and-random"

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("DB_MAX_CONNS", 0)
	viper.SetDefault("MIGRATIONS_PATH", "file://migrations")
	viper.SetDefault("JWT_SECRET", defaultJWTSecret)
	viper.SetDefault("JWT_EXPIRY_DURATION", "24h")
	viper.SetDefault("JWT_ISSUER", "records-management-app")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "")
	viper.SetDefault("LOGIN_RATE_LIMIT", "5-M")
	viper.SetDefault("SHUTDOWN_TIMEOUT", "10s")
	viper.SetDefault("REDIS_URL", "")
	viper.SetDefault("SERIAL_LOCK_MODE", SerialLockAdvisory)
	viper.SetDefault("SERIAL_LOCK_TTL", "10s")
	viper.SetDefault("CREATE_MAX_ATTEMPTS", 3)

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "" || cfg.JWTSecret == defaultJWTSecret {
		cfg.JWTSecret = defaultJWTSecret // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	cfg.JWTExpiryDuration = durationOrDefault("JWT_EXPIRY_DURATION", 24*time.Hour)
	cfg.ShutdownTimeout = durationOrDefault("SHUTDOWN_TIMEOUT", 10*time.Second)
	cfg.SerialLockTTL = durationOrDefault("SERIAL_LOCK_TTL", 10*time.Second)

	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")
	if cfg.JWTIssuer == "" {
		cfg.JWTIssuer = "records-management-app"
		log.Printf("Warning: JWT_ISSUER not set. Defaulting to %s.\n", cfg.JWTIssuer)
	}

	cfg.CreateMaxAttempts = viper.GetInt("CREATE_MAX_ATTEMPTS")
	if cfg.CreateMaxAttempts < 1 {
		log.Printf("Warning: Invalid value for CREATE_MAX_ATTEMPTS (%d). Defaulting to 3.\n", cfg.CreateMaxAttempts)
		cfg.CreateMaxAttempts = 3
	}

	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")
	cfg.DBMaxConns = viper.GetInt32("DB_MAX_CONNS")
	cfg.MigrationsPath = viper.GetString("MIGRATIONS_PATH")
	cfg.LogLevel = strings.ToLower(viper.GetString("LOG_LEVEL"))
	cfg.LoginRateLimit = viper.GetString("LOGIN_RATE_LIMIT")
	cfg.RedisURL = viper.GetString("REDIS_URL")
	cfg.CORSAllowedOrigins = splitList(viper.GetString("CORS_ALLOWED_ORIGINS"))

	cfg.SerialLockMode = strings.ToLower(viper.GetString("SERIAL_LOCK_MODE"))
	switch cfg.SerialLockMode {
	case SerialLockAdvisory:
	case SerialLockRedis:
		if cfg.RedisURL == "" {
			return nil, fmt.Errorf("SERIAL_LOCK_MODE=%s requires REDIS_URL", SerialLockRedis)
		}
	default:
		return nil, fmt.Errorf("unknown SERIAL_LOCK_MODE %q (want %s or %s)", cfg.SerialLockMode, SerialLockAdvisory, SerialLockRedis)
	}

	return cfg, nil
}

// durationOrDefault parses a duration key, falling back with a warning.
func durationOrDefault(key string, def time.Duration) time.Duration {
	raw := viper.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		if raw != "" {
			log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, def.String())
		}
		return def
	}
	return d
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
