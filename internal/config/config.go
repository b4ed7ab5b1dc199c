package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application. It is constructed
// once at process start and passed by injection; nothing mutates it at
// runtime.
type Config struct {
	AppMode   string
	Port      string
	Database  DatabaseConfig
	JWT       JWTConfig
	Security  SecurityConfig
	Cookie    CookieConfig
	RateLimit RateLimitConfig
}

// DatabaseConfig holds database configuration.
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

// JWTConfig holds the token signing surface: one shared symmetric secret,
// the algorithm identifier and the class-default lifetimes.
type JWTConfig struct {
	Secret           string
	Algorithm        string
	AccessTokenMins  int
	RefreshTokenDays int
}

// SecurityConfig holds credential hashing and data retention settings.
type SecurityConfig struct {
	BcryptCost    int
	RetentionDays int
	AdminEmail    string
	AdminPassword string
}

// CookieConfig holds cookie configuration for the transport layer.
type CookieConfig struct {
	Secure   bool
	SameSite string
	Domain   string
}

// RateLimitConfig holds request throttling knobs.
type RateLimitConfig struct {
	Requests     int
	AuthRequests int
}

// Load reads configuration from a .env file and environment variables. The
// signing secret has no default; startup fails without it.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	appMode := strings.TrimSpace(getEnv("APP_MODE", "dev"))
	if appMode != "dev" && appMode != "prod" {
		return nil, fmt.Errorf("invalid APP_MODE: '%s' (must be 'dev' or 'prod')", appMode)
	}

	jwtCfg, err := loadJWTConfig()
	if err != nil {
		return nil, err
	}

	config := &Config{
		AppMode:   appMode,
		Port:      getEnv("PORT", "8000"),
		Database:  loadDatabaseConfig(),
		JWT:       jwtCfg,
		Security:  loadSecurityConfig(),
		Cookie:    loadCookieConfig(),
		RateLimit: loadRateLimitConfig(),
	}

	log.Printf("✅ Configuration loaded successfully [MODE: %s]", appMode)
	return config, nil
}

func loadDatabaseConfig() DatabaseConfig {
	return DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnv("DB_PORT", "3306"),
		User:     getEnv("DB_USER", "root"),
		Password: getEnv("DB_PASS", ""),
		DBName:   getEnv("DB_NAME", "kyc_identity"),
	}
}

func loadJWTConfig() (JWTConfig, error) {
	secret := strings.TrimSpace(os.Getenv("JWT_SECRET"))
	if secret == "" {
		return JWTConfig{}, fmt.Errorf("JWT_SECRET is required")
	}

	accessMins := getEnvInt("ACCESS_TOKEN_MINUTES", 30)
	refreshDays := getEnvInt("REFRESH_TOKEN_DAYS", 7)
	if accessMins < 1 || refreshDays < 1 {
		return JWTConfig{}, fmt.Errorf("token lifetimes must be positive")
	}

	return JWTConfig{
		Secret:           secret,
		Algorithm:        getEnv("JWT_ALGORITHM", "HS256"),
		AccessTokenMins:  accessMins,
		RefreshTokenDays: refreshDays,
	}, nil
}

func loadSecurityConfig() SecurityConfig {
	return SecurityConfig{
		BcryptCost:    getEnvInt("BCRYPT_COST", 12),
		RetentionDays: getEnvInt("RETENTION_DAYS", 30),
		AdminEmail:    getEnv("BOOTSTRAP_ADMIN_EMAIL", ""),
		AdminPassword: getEnv("BOOTSTRAP_ADMIN_PASSWORD", ""),
	}
}

func loadCookieConfig() CookieConfig {
	secure, _ := strconv.ParseBool(getEnv("COOKIE_SECURE", "false"))

	return CookieConfig{
		Secure:   secure,
		SameSite: getEnv("COOKIE_SAMESITE", "lax"),
		Domain:   getEnv("COOKIE_DOMAIN", ""),
	}
}

func loadRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		Requests:     getEnvInt("RATE_LIMIT_REQUESTS", 100),
		AuthRequests: getEnvInt("RATE_LIMIT_AUTH_REQUESTS", 10),
	}
}

// getEnv gets environment variable with default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt gets an integer environment variable with default value.
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}

// IsDev returns true if running in development mode.
func (c *Config) IsDev() bool {
	return c.AppMode == "dev"
}

// IsProd returns true if running in production mode.
func (c *Config) IsProd() bool {
	return c.AppMode == "prod"
}

// GetAllowedOrigins returns allowed origins for CORS.
func (c *Config) GetAllowedOrigins() string {
	origins := getEnv("ALLOWED_ORIGINS", "")
	if origins == "" && c.IsDev() {
		return "*"
	}
	return origins
}
