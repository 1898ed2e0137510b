package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Environment Environment

	// Server configuration
	ServerPort     string
	ServerHost     string
	AllowedOrigins []string

	// Database configuration
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Redis configuration
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	RedisURL      string

	// Rate limiting for the meal endpoints, per client IP
	RateLimit       int
	RateLimitWindow time.Duration

	// Optional service token secret. Empty disables bearer auth.
	JWTSecret string

	// Generative text service
	LLMAPIKey  string
	LLMAPIURL  string
	LLMModel   string
	LLMTimeout time.Duration

	LogLevel string
}

const (
	defaultLLMModel   = "gpt-4-turbo"
	defaultLLMTimeout = 30 * time.Second
)

// LoadConfig creates a new Config instance with values from environment variables or secrets
func LoadConfig() (*Config, error) {
	// A missing .env file is normal outside local development
	_ = godotenv.Load()

	env := GetEnvironment()
	cfg := &Config{Environment: env}

	switch env {
	case CI:
		loadCIConfig(cfg)
	case Development, Test:
		loadDevConfig(cfg)
	case Production:
		loadProdConfig(cfg)
	default:
		return nil, fmt.Errorf("unknown environment: %s", env)
	}

	if err := loadLLMConfig(cfg); err != nil {
		return nil, fmt.Errorf("failed to load LLM configuration: %w", err)
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// loadCIConfig reads everything from environment variables
func loadCIConfig(cfg *Config) {
	cfg.ServerPort = getEnv("SERVER_PORT", "8080")
	cfg.ServerHost = getEnv("SERVER_HOST", "0.0.0.0")
	cfg.DBHost = os.Getenv("DB_HOST")
	cfg.DBPort = getEnv("DB_PORT", "5432")
	cfg.DBUser = os.Getenv("DB_USER")
	cfg.DBPassword = os.Getenv("DB_PASSWORD")
	cfg.DBName = os.Getenv("DB_NAME")
	cfg.DBSSLMode = getEnv("DB_SSL_MODE", "disable")
	cfg.RedisHost = os.Getenv("REDIS_HOST")
	cfg.RedisPort = getEnv("REDIS_PORT", "6379")
	cfg.RedisPassword = os.Getenv("REDIS_PASSWORD")
	cfg.RedisURL = os.Getenv("REDIS_URL")
	cfg.JWTSecret = os.Getenv("JWT_SECRET")
	loadCommon(cfg)
}

// loadDevConfig prefers environment variables and falls back to Docker secrets, then defaults
func loadDevConfig(cfg *Config) {
	cfg.ServerPort = setting("SERVER_PORT", "server_port", "8080")
	cfg.ServerHost = setting("SERVER_HOST", "server_host", "localhost")
	cfg.DBHost = setting("DB_HOST", "db_host", "localhost")
	cfg.DBPort = setting("DB_PORT", "db_port", "5432")
	cfg.DBUser = setting("DB_USER", "db_user", "postgres")
	cfg.DBPassword = setting("DB_PASSWORD", "db_password", "postgres")
	cfg.DBName = setting("DB_NAME", "db_name", "glycemic_assist")
	cfg.DBSSLMode = setting("DB_SSL_MODE", "db_ssl_mode", "disable")
	cfg.RedisHost = setting("REDIS_HOST", "redis_host", "localhost")
	cfg.RedisPort = setting("REDIS_PORT", "redis_port", "6379")
	cfg.RedisPassword = setting("REDIS_PASSWORD", "redis_password", "")
	cfg.RedisURL = setting("REDIS_URL", "redis_url", "")
	cfg.JWTSecret = setting("JWT_SECRET", "jwt_secret", "")
	loadCommon(cfg)
}

// loadProdConfig reads secrets from Docker secrets only; non-sensitive values may come from the environment
func loadProdConfig(cfg *Config) {
	cfg.ServerPort = setting("SERVER_PORT", "server_port", "8080")
	cfg.ServerHost = setting("SERVER_HOST", "server_host", "0.0.0.0")
	cfg.DBHost = setting("DB_HOST", "db_host", "")
	cfg.DBPort = setting("DB_PORT", "db_port", "5432")
	cfg.DBUser = readSecret("db_user")
	cfg.DBPassword = readSecret("db_password")
	cfg.DBName = setting("DB_NAME", "db_name", "")
	cfg.DBSSLMode = setting("DB_SSL_MODE", "db_ssl_mode", "require")
	cfg.RedisHost = setting("REDIS_HOST", "redis_host", "")
	cfg.RedisPort = setting("REDIS_PORT", "redis_port", "6379")
	cfg.RedisPassword = readSecret("redis_password")
	cfg.RedisURL = readSecret("redis_url")
	cfg.JWTSecret = readSecret("jwt_secret")
	loadCommon(cfg)
}

func loadCommon(cfg *Config) {
	cfg.RedisDB = getEnvInt("REDIS_DB", 0)
	cfg.RateLimit = getEnvInt("RATE_LIMIT", 60)
	cfg.RateLimitWindow = getEnvDuration("RATE_LIMIT_WINDOW", time.Minute)
	cfg.LogLevel = getEnv("LOG_LEVEL", "")

	origins := getEnv("ALLOWED_ORIGINS", "http://localhost:5173,http://frontend:5173")
	cfg.AllowedOrigins = nil
	for _, o := range strings.Split(origins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			cfg.AllowedOrigins = append(cfg.AllowedOrigins, o)
		}
	}
}

// loadLLMConfig resolves the generative service settings. The key may be given
// directly or through a file, the same way in every environment.
func loadLLMConfig(cfg *Config) error {
	cfg.LLMAPIURL = os.Getenv("LLM_API_URL")
	cfg.LLMModel = getEnv("LLM_MODEL", defaultLLMModel)
	cfg.LLMTimeout = getEnvDuration("LLM_TIMEOUT", defaultLLMTimeout)

	apiKey := os.Getenv("LLM_API_KEY")
	if apiKey == "" {
		if keyFile := os.Getenv("LLM_API_KEY_FILE"); keyFile != "" {
			data, err := os.ReadFile(keyFile)
			if err != nil {
				return fmt.Errorf("failed to read API key file: %w", err)
			}
			apiKey = strings.TrimSpace(string(data))
			if apiKey == "" {
				return fmt.Errorf("API key file is empty")
			}
		} else {
			apiKey = readSecret("llm_api_key")
		}
	}
	cfg.LLMAPIKey = apiKey
	return nil
}

// DSN returns the PostgreSQL connection string for lib/pq
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode,
	)
}

// Addr returns the listen address of the HTTP server
func (c *Config) Addr() string {
	return c.ServerHost + ":" + c.ServerPort
}

// setting reads an environment variable, then a Docker secret, then the default
func setting(envVar, secret, def string) string {
	if v := os.Getenv(envVar); v != "" {
		return v
	}
	if v := readSecret(secret); v != "" {
		return v
	}
	return def
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	secretPath := filepath.Join(secretsDir, name)
	if data, err := os.ReadFile(secretPath); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}
