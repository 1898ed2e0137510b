package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolateEnv(t *testing.T) string {
	t.Helper()
	secretsDir := t.TempDir()
	t.Setenv("SECRETS_DIR", secretsDir)
	t.Setenv("CI", "")
	for _, key := range []string{
		"SERVER_PORT", "SERVER_HOST", "DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD",
		"DB_NAME", "DB_SSL_MODE", "REDIS_HOST", "REDIS_PORT", "REDIS_PASSWORD", "REDIS_URL",
		"JWT_SECRET", "LLM_API_KEY", "LLM_API_KEY_FILE", "LLM_API_URL", "LLM_MODEL",
		"LLM_TIMEOUT", "RATE_LIMIT", "RATE_LIMIT_WINDOW", "ALLOWED_ORIGINS",
	} {
		t.Setenv(key, "")
	}
	return secretsDir
}

func TestLoadConfig(t *testing.T) {
	isolateEnv(t)
	t.Setenv("ENV", "test")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_PORT", "5433")
	t.Setenv("DB_USER", "glycemic")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("DB_NAME", "foods")
	t.Setenv("REDIS_URL", "redis://localhost:6379")
	t.Setenv("LLM_API_KEY", "test-key")
	t.Setenv("LLM_TIMEOUT", "5s")
	t.Setenv("RATE_LIMIT", "10")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, https://b.example")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, Test, cfg.Environment)
	assert.Equal(t, "db.internal", cfg.DBHost)
	assert.Equal(t, "5433", cfg.DBPort)
	assert.Equal(t, "glycemic", cfg.DBUser)
	assert.Equal(t, "secret", cfg.DBPassword)
	assert.Equal(t, "foods", cfg.DBName)
	assert.Equal(t, "disable", cfg.DBSSLMode)
	assert.Equal(t, "redis://localhost:6379", cfg.RedisURL)
	assert.Equal(t, "test-key", cfg.LLMAPIKey)
	assert.Equal(t, defaultLLMModel, cfg.LLMModel)
	assert.Equal(t, 5*time.Second, cfg.LLMTimeout)
	assert.Equal(t, 10, cfg.RateLimit)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
	assert.Contains(t, cfg.DSN(), "host=db.internal port=5433")
}

func TestLoadConfigWithDefaults(t *testing.T) {
	isolateEnv(t)
	t.Setenv("ENV", "development")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "localhost", cfg.DBHost)
	assert.Equal(t, "5432", cfg.DBPort)
	assert.Equal(t, "postgres", cfg.DBUser)
	assert.Equal(t, "glycemic_assist", cfg.DBName)
	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, 60, cfg.RateLimit)
	assert.Equal(t, time.Minute, cfg.RateLimitWindow)
	assert.Equal(t, defaultLLMTimeout, cfg.LLMTimeout)
	assert.Empty(t, cfg.JWTSecret)
}

func TestLoadConfigReadsSecrets(t *testing.T) {
	secretsDir := isolateEnv(t)
	t.Setenv("ENV", "production")
	t.Setenv("DB_HOST", "prod-db")
	t.Setenv("DB_NAME", "foods")

	secrets := map[string]string{
		"db_user":     "prod-user",
		"db_password": "prod-pass",
		"jwt_secret":  "prod-jwt",
		"llm_api_key": "prod-llm-key",
	}
	for name, value := range secrets {
		require.NoError(t, os.WriteFile(filepath.Join(secretsDir, name), []byte(value+"\n"), 0600))
	}

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, Production, cfg.Environment)
	assert.Equal(t, "prod-user", cfg.DBUser)
	assert.Equal(t, "prod-pass", cfg.DBPassword)
	assert.Equal(t, "prod-jwt", cfg.JWTSecret)
	assert.Equal(t, "prod-llm-key", cfg.LLMAPIKey)
	assert.Equal(t, "require", cfg.DBSSLMode)
}

func TestLoadConfigAPIKeyFile(t *testing.T) {
	isolateEnv(t)
	t.Setenv("ENV", "test")

	keyFile := filepath.Join(t.TempDir(), "key")
	require.NoError(t, os.WriteFile(keyFile, []byte("  from-file  "), 0600))
	t.Setenv("LLM_API_KEY_FILE", keyFile)

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "from-file", cfg.LLMAPIKey)

	require.NoError(t, os.WriteFile(keyFile, []byte("   "), 0600))
	_, err = LoadConfig()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "API key file is empty")
}

func TestValidateConfig(t *testing.T) {
	t.Run("production requires password and llm key", func(t *testing.T) {
		cfg := &Config{
			Environment: Production,
			ServerPort:  "8080",
			DBHost:      "db",
			DBPort:      "5432",
			DBName:      "foods",
			DBUser:      "user",
			LLMTimeout:  time.Second,
		}

		err := ValidateConfig(cfg)
		require.Error(t, err)

		var verrs ValidationErrors
		require.ErrorAs(t, err, &verrs)
		fields := make([]string, 0, len(verrs))
		for _, v := range verrs {
			fields = append(fields, v.Field)
		}
		assert.ElementsMatch(t, []string{"db_password", "LLM_API_KEY"}, fields)
	})

	t.Run("rejects non-positive timeout", func(t *testing.T) {
		cfg := &Config{
			Environment: Development,
			ServerPort:  "8080",
			DBHost:      "db",
			DBPort:      "5432",
			DBName:      "foods",
			DBUser:      "user",
		}
		err := ValidateConfig(cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "LLM_TIMEOUT")
	})

	t.Run("nil config", func(t *testing.T) {
		assert.Error(t, ValidateConfig(nil))
	})
}
