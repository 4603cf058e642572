package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port   string
	AppEnv string
	DBUrl  string
	// Apply the embedded schema on startup
	DBAutoMigrate bool
	FrontendURL   string
	// Extra CORS origins, comma separated in ALLOWED_ORIGINS
	AllowedOrigins []string
	// Session tokens
	JWTSecret     string
	JWTTTLMinutes int
	JWKSURL       string // Optional external identity provider (RS256)
	JWKSIssuer    string
	JWKSAudience  string
	// SMTP Configuration
	SMTPHost               string
	SMTPPort               string
	SMTPUsername           string
	SMTPPassword           string
	SMTPFromEmail          string
	AdminNotificationEmail string
	// Redis Configuration
	RedisURL      string
	RedisPassword string
	// Rate Limiting Configuration
	RateLimitWindowSeconds   int
	RateLimitLoginThreshold  int
	RateLimitGlobalThreshold int
	// Bulk actions
	BulkLockTTLSeconds int
	// Development seeding
	SeedEnabled bool
	SeedFile    string
}

func LoadConfig() (*Config, error) {
	// .env is only picked up locally; missing file is fine
	_ = godotenv.Load()

	cfg := &Config{
		Port:          getEnv("PORT", "8080"),
		AppEnv:        strings.ToLower(getEnv("APP_ENV", "development")),
		DBUrl:         getEnv("DATABASE_URL", ""),
		DBAutoMigrate: getEnvBool("DB_AUTO_MIGRATE", false),
		FrontendURL:   strings.TrimRight(getEnv("FRONTEND_URL", "http://localhost:3000"), "/"),
		// CORS and session tokens
		AllowedOrigins: splitList(getEnv("ALLOWED_ORIGINS", "")),
		JWTSecret:      getEnv("JWT_SECRET", ""),
		JWTTTLMinutes:  getEnvInt("JWT_TTL_MINUTES", 480),
		JWKSURL:        strings.TrimRight(getEnv("JWKS_URL", ""), "/"),
		JWKSIssuer:     getEnv("JWKS_ISSUER", ""),
		JWKSAudience:   getEnv("JWKS_AUDIENCE", ""),
		// SMTP Configuration
		SMTPHost:               getEnv("SMTP_HOST", ""),
		SMTPPort:               getEnv("SMTP_PORT", "587"),
		SMTPUsername:           getEnv("SMTP_USERNAME", ""),
		SMTPPassword:           getEnv("SMTP_PASSWORD", ""),
		SMTPFromEmail:          getEnv("SMTP_FROM_EMAIL", "careers@jobboard.local"),
		AdminNotificationEmail: getEnv("ADMIN_NOTIFICATION_EMAIL", "admin@jobboard.local"),
		// Redis Configuration
		RedisURL:      getEnv("REDIS_URL", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		// Rate Limiting Configuration
		RateLimitWindowSeconds:   getEnvInt("RATE_LIMIT_WINDOW_SECONDS", 60),
		RateLimitLoginThreshold:  getEnvInt("RATE_LIMIT_LOGIN_THRESHOLD", 10),
		RateLimitGlobalThreshold: getEnvInt("RATE_LIMIT_GLOBAL_THRESHOLD", 100),
		BulkLockTTLSeconds:       getEnvInt("BULK_LOCK_TTL_SECONDS", 60),
		SeedEnabled:              getEnvBool("SEED_ENABLED", false),
		SeedFile:                 getEnv("SEED_FILE", ""),
	}

	// Seeding wipes every table, never in production
	if cfg.IsProduction() {
		cfg.SeedEnabled = false
	}

	if cfg.DBUrl == "" {
		log.Println("WARNING: DATABASE_URL is missing. Application may fail to connect.")
	}
	if cfg.JWTSecret == "" {
		log.Println("WARNING: JWT_SECRET is missing. Admin login will be unavailable.")
	}
	if cfg.RedisURL == "" {
		log.Println("WARNING: REDIS_URL not configured. Rate limiting and bulk locks will use in-memory fallback.")
	}

	return cfg, nil
}

// IsProduction reports whether the service runs with production settings
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production" || os.Getenv("GIN_MODE") == "release"
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt returns an integer environment variable or fallback if not set/invalid
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

// getEnvBool returns a boolean environment variable or fallback if not set/invalid
func getEnvBool(key string, fallback bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return fallback
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimRight(strings.TrimSpace(part), "/")
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
