package config

import (
	"os"
	"time"
)

type Config struct {
	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// JWT
	JWTSecret        string
	JWTAccessExpiry  time.Duration
	JWTRefreshExpiry time.Duration

	// OAuth providers. StateSecret is the anti-forgery state token the
	// frontend must echo back on /authorize.
	OAuthStateSecret string

	GitHubClientID     string
	GitHubClientSecret string
	GitHubRedirectURL  string

	OsuClientID     string
	OsuClientSecret string
	OsuRedirectURL  string

	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURL  string

	// Server
	Port        string
	CORSOrigins string
	StaticDir   string
}

func Load() *Config {
	return &Config{
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "ishpytoing_db"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		JWTSecret:        getEnv("JWT_SECRET", ""),
		JWTAccessExpiry:  parseDuration(getEnv("JWT_ACCESS_EXPIRY", "15m")),
		JWTRefreshExpiry: parseDuration(getEnv("JWT_REFRESH_EXPIRY", "168h")),

		OAuthStateSecret: getEnv("OAUTH_STATE_SECRET", ""),

		GitHubClientID:     getEnv("GITHUB_OAUTH_CLIENT_ID", ""),
		GitHubClientSecret: getEnv("GITHUB_OAUTH_CLIENT_SECRET", ""),
		GitHubRedirectURL:  getEnv("GITHUB_OAUTH_REDIRECT_URL", ""),

		OsuClientID:     getEnv("OSU_OAUTH_CLIENT_ID", ""),
		OsuClientSecret: getEnv("OSU_OAUTH_CLIENT_SECRET", ""),
		OsuRedirectURL:  getEnv("OSU_OAUTH_REDIRECT_URL", ""),

		GoogleClientID:     getEnv("GOOGLE_OAUTH_CLIENT_ID", ""),
		GoogleClientSecret: getEnv("GOOGLE_OAUTH_CLIENT_SECRET", ""),
		GoogleRedirectURL:  getEnv("GOOGLE_OAUTH_REDIRECT_URL", ""),

		Port:        getEnv("PORT", "8080"),
		CORSOrigins: getEnv("CORS_ORIGINS", "*"),
		StaticDir:   getEnv("STATIC_DIR", "./frontend/build"),
	}
}

func (c *Config) DSN() string {
	return "host=" + c.DBHost +
		" user=" + c.DBUser +
		" password=" + c.DBPassword +
		" dbname=" + c.DBName +
		" port=" + c.DBPort +
		" sslmode=" + c.DBSSLMode +
		" TimeZone=UTC"
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func parseDuration(s string) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return 15 * time.Minute
	}
	return d
}
