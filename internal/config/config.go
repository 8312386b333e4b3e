package config

import (
	"os"
	"strings"
	"time"
)

type Config struct {
	Port               string
	GinMode            string
	DBDriver           string
	DBHost             string
	DBPort             string
	DBUser             string
	DBPassword         string
	DBName             string
	DBSSLMode          string
	DBPath             string
	DBLogLevel         string
	JWTSecret          string
	AccessTokenTTL     time.Duration
	RefreshTokenTTL    time.Duration
	CORSAllowedOrigins []string
	OpenAIAPIKey       string
	OpenAIBaseURL      string
}

func Load() *Config {
	return &Config{
		Port:               getEnv("PORT", "8080"),
		GinMode:            getEnv("GIN_MODE", "debug"),
		DBDriver:           getEnv("DB_DRIVER", "mysql"),
		DBHost:             getEnv("DB_HOST", "localhost"),
		DBPort:             getEnv("DB_PORT", "3306"),
		DBUser:             getEnv("DB_USER", "taskuser"),
		DBPassword:         getEnv("DB_PASSWORD", "taskpassword"),
		DBName:             getEnv("DB_NAME", "task_tracker"),
		DBSSLMode:          getEnv("DB_SSLMODE", "disable"),
		DBPath:             getEnv("DB_PATH", "task_tracker.db"),
		DBLogLevel:         getEnv("DB_LOG_LEVEL", "warn"),
		JWTSecret:          getEnv("JWT_SECRET", ""),
		AccessTokenTTL:     getDuration("ACCESS_TOKEN_TTL", 5*time.Minute),
		RefreshTokenTTL:    getDuration("REFRESH_TOKEN_TTL", 24*time.Hour),
		CORSAllowedOrigins: getList("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000", "http://localhost:5173"}),
		OpenAIAPIKey:       getEnv("OPENAI_API_KEY", ""),
		OpenAIBaseURL:      getEnv("OPENAI_BASE_URL", ""),
	}
}

// IsRelease reports whether gin runs in release mode.
func (c *Config) IsRelease() bool {
	return c.GinMode == "release"
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		return defaultValue
	}
	return d
}

func getList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	if len(items) == 0 {
		return defaultValue
	}
	return items
}
