package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	ServerPort string
	JWTSecret  string
	JWTExpiry  time.Duration

	Environment string
	LogLevel    string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	OAuthClientID     string
	OAuthClientSecret string
	OAuthAuthURL      string
	OAuthTokenURL     string
	OAuthRedirectURL  string
	OAuthUserInfoURL  string
	OAuthScopes       []string

	CORSOrigins []string

	// Requests per second allowed per client IP on signup and auth routes.
	AuthRateLimit float64
	AuthRateBurst int

	MockAIDelay      time.Duration
	DemoStepInterval time.Duration
}

func Load() *Config {
	err := godotenv.Load()
	if err != nil {
		log.Println("⚠️  No .env file found, using system environment variables")
	}

	return &Config{
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "vibealong"),
		DBPassword: getEnv("DB_PASSWORD", "vibealong"),
		DBName:     getEnv("DB_NAME", "vibealong"),
		ServerPort: getEnv("SERVER_PORT", "8080"),
		JWTSecret:  getEnv("JWT_SECRET", "supersecretkey"),
		JWTExpiry:  time.Duration(getEnvAsInt("JWT_EXPIRY_HOURS", 24)) * time.Hour,

		Environment: getEnv("APP_ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),

		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvAsInt("REDIS_DB", 0),

		OAuthClientID:     getEnv("OAUTH_CLIENT_ID", ""),
		OAuthClientSecret: getEnv("OAUTH_CLIENT_SECRET", ""),
		OAuthAuthURL:      getEnv("OAUTH_AUTH_URL", ""),
		OAuthTokenURL:     getEnv("OAUTH_TOKEN_URL", ""),
		OAuthRedirectURL:  getEnv("OAUTH_REDIRECT_URL", "http://localhost:8080/auth/callback"),
		OAuthUserInfoURL:  getEnv("OAUTH_USERINFO_URL", ""),
		OAuthScopes:       splitList(getEnv("OAUTH_SCOPES", "openid,email,profile")),

		CORSOrigins: splitList(getEnv("CORS_ORIGINS", "http://localhost:3000")),

		AuthRateLimit: getEnvAsFloat("AUTH_RATE_LIMIT", 5),
		AuthRateBurst: getEnvAsInt("AUTH_RATE_BURST", 10),

		MockAIDelay:      getEnvAsDuration("MOCK_AI_DELAY", 1500*time.Millisecond),
		DemoStepInterval: getEnvAsDuration("DEMO_STEP_INTERVAL", 4*time.Second),
	}
}

// Validate reports the first missing required setting.
func (c *Config) Validate() error {
	if c.ServerPort == "" {
		return fmt.Errorf("SERVER_PORT is required")
	}
	if c.DBHost == "" {
		return fmt.Errorf("DB_HOST is required")
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.DemoStepInterval < time.Second {
		return fmt.Errorf("DEMO_STEP_INTERVAL must be at least 1s")
	}
	return nil
}

// DSN builds the postgres connection string used by gorm.
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName,
	)
}

// MigrateURL is the same database in URL form, as golang-migrate expects it.
func (c *Config) MigrateURL() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.DBUser, c.DBPassword),
		Host:     c.DBHost + ":" + c.DBPort,
		Path:     "/" + c.DBName,
		RawQuery: "sslmode=disable",
	}
	return u.String()
}

// OAuthEnabled is false when no provider is configured; the callback then
// only accepts the built-in password login.
func (c *Config) OAuthEnabled() bool {
	return c.OAuthClientID != "" && c.OAuthTokenURL != "" && c.OAuthUserInfoURL != ""
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	raw := getEnv(key, "")
	if raw == "" {
		return defaultVal
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		log.Printf("⚠️  Invalid integer for %s, using default: %d", key, defaultVal)
		return defaultVal
	}
	return v
}

func getEnvAsFloat(key string, defaultVal float64) float64 {
	raw := getEnv(key, "")
	if raw == "" {
		return defaultVal
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		log.Printf("⚠️  Invalid number for %s, using default: %v", key, defaultVal)
		return defaultVal
	}
	return v
}

func getEnvAsDuration(key string, defaultVal time.Duration) time.Duration {
	raw := getEnv(key, "")
	if raw == "" {
		return defaultVal
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		log.Printf("⚠️  Invalid duration for %s, using default: %s", key, defaultVal)
		return defaultVal
	}
	return v
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
